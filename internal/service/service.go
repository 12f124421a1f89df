package service

import (
	"context"
	"time"

	"github.com/BloggingApp/blog-service/internal/dto"
	"github.com/BloggingApp/blog-service/internal/events"
	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/BloggingApp/blog-service/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Post interface {
	Create(ctx context.Context, authorID uuid.UUID, input dto.CreatePostRequest) (*model.Post, error)
	FindAll(ctx context.Context) ([]*model.Post, error)
	FindByID(ctx context.Context, id int64) (*model.PostDetail, error)
	Edit(ctx context.Context, actorID uuid.UUID, id int64, input dto.EditPostRequest) (*model.Post, error)
	Delete(ctx context.Context, actorID uuid.UUID, id int64) error
	ToggleLike(ctx context.Context, actorID uuid.UUID, id int64) (*model.LikeToggle, error)
	FindLikes(ctx context.Context, id int64) ([]*model.Like, error)
	FindBackups(ctx context.Context, id int64) ([]*model.PostBackup, error)
}

type Comment interface {
	Create(ctx context.Context, authorID uuid.UUID, postID int64, input dto.CreateCommentRequest) (*model.Comment, error)
	FindPostComments(ctx context.Context, postID int64) ([]*model.Comment, error)
	Edit(ctx context.Context, actorID uuid.UUID, id int64, input dto.EditCommentRequest) (*model.Comment, error)
	Delete(ctx context.Context, actorID uuid.UUID, id int64) error
}

type Analytics interface {
	CountLikes(ctx context.Context, dateFrom string, dateTo string) (*dto.AnalyticsResponse, error)
}

type Options struct {
	// BackupOnRejectedEdit keeps the legacy behaviour of snapshotting a post
	// before the edit is validated and authorized.
	BackupOnRejectedEdit bool
}

type Service struct {
	Post
	Comment
	Analytics
}

func New(logger *zap.Logger, store repository.Store, publisher events.Publisher, opts Options) *Service {
	if publisher == nil {
		publisher = events.NewNoop()
	}

	return &Service{
		Post:      newPostService(logger, store, publisher, opts),
		Comment:   newCommentService(logger, store, publisher),
		Analytics: newAnalyticsService(logger, store),
	}
}

func publish(ctx context.Context, logger *zap.Logger, publisher events.Publisher, eventType string, postID int64, commentID *int64, userID uuid.UUID) {
	msg := dto.EventMsg{
		Type:       eventType,
		PostID:     postID,
		CommentID:  commentID,
		UserID:     userID,
		OccurredAt: time.Now().UTC(),
	}
	if err := publisher.Publish(ctx, msg); err != nil {
		logger.Sugar().Errorf("failed to publish event(%s) for post(%d): %s", eventType, postID, err.Error())
	}
}
