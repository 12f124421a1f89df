package dto

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventPostCreated    = "post.created"
	EventPostUpdated    = "post.updated"
	EventPostDeleted    = "post.deleted"
	EventPostLiked      = "post.liked"
	EventPostUnliked    = "post.unliked"
	EventCommentCreated = "comment.created"
	EventCommentUpdated = "comment.updated"
	EventCommentDeleted = "comment.deleted"
)

type EventMsg struct {
	Type       string    `json:"type"`
	PostID     int64     `json:"post_id"`
	CommentID  *int64    `json:"comment_id,omitempty"`
	UserID     uuid.UUID `json:"user_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
