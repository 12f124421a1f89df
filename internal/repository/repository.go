package repository

import (
	"context"
	"time"

	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/google/uuid"
)

type Post interface {
	Create(ctx context.Context, post model.Post) (*model.Post, error)
	FindByID(ctx context.Context, id int64) (*model.Post, error)
	FindAll(ctx context.Context) ([]*model.Post, error)
	// LockByID reads the post and holds a row lock until the transaction ends.
	LockByID(ctx context.Context, id int64) (*model.Post, error)
	UpdateContent(ctx context.Context, id int64, title string, content string, updatedAt time.Time) (*model.Post, error)
	AddLikes(ctx context.Context, id int64, delta int64) (int64, error)
	Delete(ctx context.Context, id int64) error
}

type Comment interface {
	Create(ctx context.Context, comment model.Comment) (*model.Comment, error)
	FindByID(ctx context.Context, id int64) (*model.Comment, error)
	FindPostComments(ctx context.Context, postID int64) ([]*model.Comment, error)
	UpdateContent(ctx context.Context, id int64, content string) (*model.Comment, error)
	Delete(ctx context.Context, id int64) error
}

type Like interface {
	Create(ctx context.Context, authorID uuid.UUID, postID int64) (*model.Like, error)
	Delete(ctx context.Context, authorID uuid.UUID, postID int64) error
	Exists(ctx context.Context, authorID uuid.UUID, postID int64) (bool, error)
	CountByPost(ctx context.Context, postID int64) (int64, error)
	FindByPost(ctx context.Context, postID int64) ([]*model.Like, error)
	// FindInRange returns likes with from <= created_at <= to.
	FindInRange(ctx context.Context, from time.Time, to time.Time) ([]*model.Like, error)
}

type Backup interface {
	Create(ctx context.Context, backup model.PostBackup) (*model.PostBackup, error)
	FindByPost(ctx context.Context, postID int64) ([]*model.PostBackup, error)
}

// Store is the entity store the services run against. Transaction runs fn
// with a Store bound to a single transaction and rolls back if fn fails.
type Store interface {
	Posts() Post
	Comments() Comment
	Likes() Like
	Backups() Backup
	Transaction(ctx context.Context, fn func(tx Store) error) error
}
