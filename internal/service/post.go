package service

import (
	"context"
	"strings"
	"time"

	"github.com/BloggingApp/blog-service/internal/dto"
	"github.com/BloggingApp/blog-service/internal/events"
	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/BloggingApp/blog-service/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type postService struct {
	logger    *zap.Logger
	store     repository.Store
	publisher events.Publisher
	opts      Options
	now       func() time.Time
}

func newPostService(logger *zap.Logger, store repository.Store, publisher events.Publisher, opts Options) Post {
	return &postService{
		logger:    logger,
		store:     store,
		publisher: publisher,
		opts:      opts,
		now:       time.Now,
	}
}

func (s *postService) Create(ctx context.Context, authorID uuid.UUID, input dto.CreatePostRequest) (*model.Post, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Content = strings.TrimSpace(input.Content)
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	createdPost, err := s.store.Posts().Create(ctx, model.Post{
		AuthorID: authorID,
		Title:    input.Title,
		Content:  input.Content,
	})
	if err != nil {
		s.logger.Sugar().Errorf("failed to create user(%s) post: %s", authorID.String(), err.Error())
		return nil, ErrInternal
	}

	publish(ctx, s.logger, s.publisher, dto.EventPostCreated, createdPost.ID, nil, authorID)

	return createdPost, nil
}

func (s *postService) FindAll(ctx context.Context) ([]*model.Post, error) {
	posts, err := s.store.Posts().FindAll(ctx)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find posts: %s", err.Error())
		return nil, ErrInternal
	}

	return posts, nil
}

func (s *postService) FindByID(ctx context.Context, id int64) (*model.PostDetail, error) {
	post, err := s.store.Posts().FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(s.logger, err, "post", id)
	}

	likesCount, err := s.store.Likes().CountByPost(ctx, id)
	if err != nil {
		s.logger.Sugar().Errorf("failed to count post(%d) likes: %s", id, err.Error())
		return nil, ErrInternal
	}
	post.LikesCount = likesCount

	comments, err := s.store.Comments().FindPostComments(ctx, id)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find post(%d) comments: %s", id, err.Error())
		return nil, ErrInternal
	}

	return &model.PostDetail{
		Post:     *post,
		Comments: comments,
	}, nil
}

func (s *postService) Edit(ctx context.Context, actorID uuid.UUID, id int64, input dto.EditPostRequest) (*model.Post, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Content = strings.TrimSpace(input.Content)

	var (
		updatedPost *model.Post
		rejection   error
	)
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		post, err := tx.Posts().LockByID(ctx, id)
		if err != nil {
			return lookupError(s.logger, err, "post", id)
		}

		if s.opts.BackupOnRejectedEdit {
			if err := s.backup(ctx, tx, post); err != nil {
				return err
			}
			if rejection = validateStruct(input); rejection != nil {
				return nil
			}
			if !canMutate(actorID, post) {
				rejection = ErrForbidden
				return nil
			}
		} else {
			if !canMutate(actorID, post) {
				return ErrForbidden
			}
			if err := validateStruct(input); err != nil {
				return err
			}
			if err := s.backup(ctx, tx, post); err != nil {
				return err
			}
		}

		updatedPost, err = tx.Posts().UpdateContent(ctx, id, input.Title, input.Content, s.now())
		return err
	})
	if err != nil {
		return nil, operationError(s.logger, err, "failed to edit post(%d)", id)
	}
	if rejection != nil {
		return nil, rejection
	}

	publish(ctx, s.logger, s.publisher, dto.EventPostUpdated, id, nil, actorID)

	return updatedPost, nil
}

func (s *postService) Delete(ctx context.Context, actorID uuid.UUID, id int64) error {
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		post, err := tx.Posts().LockByID(ctx, id)
		if err != nil {
			return lookupError(s.logger, err, "post", id)
		}
		if !canMutate(actorID, post) {
			return ErrForbidden
		}

		return tx.Posts().Delete(ctx, id)
	})
	if err != nil {
		return operationError(s.logger, err, "failed to delete post(%d)", id)
	}

	publish(ctx, s.logger, s.publisher, dto.EventPostDeleted, id, nil, actorID)

	return nil
}
