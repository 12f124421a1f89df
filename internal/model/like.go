package model

import (
	"time"

	"github.com/google/uuid"
)

type Like struct {
	AuthorID  uuid.UUID `json:"author_id"`
	PostID    int64     `json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

type LikeResult string

const (
	Liked   LikeResult = "liked"
	Unliked LikeResult = "unliked"
)

// LikeToggle is the outcome of a like/unlike click.
type LikeToggle struct {
	PostID     int64      `json:"post_id"`
	Result     LikeResult `json:"result"`
	LikesCount int64      `json:"likes_count"`
}
