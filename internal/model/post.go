package model

import (
	"time"

	"github.com/google/uuid"
)

type Post struct {
	ID         int64     `json:"id"`
	AuthorID   uuid.UUID `json:"author_id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	LikesCount int64     `json:"likes_count"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (p *Post) OwnerID() uuid.UUID {
	return p.AuthorID
}

// PostDetail is a post with its comments. LikesCount is recounted from the
// likes table rather than copied from the stored counter.
type PostDetail struct {
	Post
	Comments []*Comment `json:"comments"`
}
