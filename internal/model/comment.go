package model

import (
	"time"

	"github.com/google/uuid"
)

type Comment struct {
	ID        int64     `json:"id"`
	PostID    int64     `json:"post_id"`
	AuthorID  uuid.UUID `json:"author_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func (c *Comment) OwnerID() uuid.UUID {
	return c.AuthorID
}
