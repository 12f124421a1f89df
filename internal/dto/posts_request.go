package dto

// likes_count is not part of the request: a client-supplied value is
// dropped on decode and new posts always start at zero.
type CreatePostRequest struct {
	Title   string `json:"title" form:"title" validate:"required,max=100"`
	Content string `json:"content" form:"content" validate:"required"`
}

type EditPostRequest struct {
	Title   string `json:"title" form:"title" validate:"required,max=100"`
	Content string `json:"content" form:"content" validate:"required"`
}
