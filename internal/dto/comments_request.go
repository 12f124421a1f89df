package dto

type CreateCommentRequest struct {
	Content string `json:"content" form:"content" validate:"required"`
}

type EditCommentRequest struct {
	Content string `json:"content" form:"content" validate:"required"`
}
