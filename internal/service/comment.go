package service

import (
	"context"
	"strings"

	"github.com/BloggingApp/blog-service/internal/dto"
	"github.com/BloggingApp/blog-service/internal/events"
	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/BloggingApp/blog-service/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type commentService struct {
	logger    *zap.Logger
	store     repository.Store
	publisher events.Publisher
}

func newCommentService(logger *zap.Logger, store repository.Store, publisher events.Publisher) Comment {
	return &commentService{
		logger:    logger,
		store:     store,
		publisher: publisher,
	}
}

func (s *commentService) Create(ctx context.Context, authorID uuid.UUID, postID int64, input dto.CreateCommentRequest) (*model.Comment, error) {
	if _, err := s.store.Posts().FindByID(ctx, postID); err != nil {
		return nil, lookupError(s.logger, err, "post", postID)
	}

	input.Content = strings.TrimSpace(input.Content)
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	createdComment, err := s.store.Comments().Create(ctx, model.Comment{
		PostID:   postID,
		AuthorID: authorID,
		Content:  input.Content,
	})
	if err != nil {
		return nil, operationError(s.logger, err, "failed to create user(%s) comment on post(%d)", authorID.String(), postID)
	}

	publish(ctx, s.logger, s.publisher, dto.EventCommentCreated, postID, &createdComment.ID, authorID)

	return createdComment, nil
}

func (s *commentService) FindPostComments(ctx context.Context, postID int64) ([]*model.Comment, error) {
	comments, err := s.store.Comments().FindPostComments(ctx, postID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find post(%d) comments: %s", postID, err.Error())
		return nil, ErrInternal
	}

	return comments, nil
}

func (s *commentService) Edit(ctx context.Context, actorID uuid.UUID, id int64, input dto.EditCommentRequest) (*model.Comment, error) {
	comment, err := s.store.Comments().FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(s.logger, err, "comment", id)
	}
	if !canMutate(actorID, comment) {
		return nil, ErrForbidden
	}

	input.Content = strings.TrimSpace(input.Content)
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	updatedComment, err := s.store.Comments().UpdateContent(ctx, id, input.Content)
	if err != nil {
		return nil, operationError(s.logger, err, "failed to edit comment(%d)", id)
	}

	publish(ctx, s.logger, s.publisher, dto.EventCommentUpdated, updatedComment.PostID, &updatedComment.ID, actorID)

	return updatedComment, nil
}

func (s *commentService) Delete(ctx context.Context, actorID uuid.UUID, id int64) error {
	comment, err := s.store.Comments().FindByID(ctx, id)
	if err != nil {
		return lookupError(s.logger, err, "comment", id)
	}
	if !canMutate(actorID, comment) {
		return ErrForbidden
	}

	if err := s.store.Comments().Delete(ctx, id); err != nil {
		return operationError(s.logger, err, "failed to delete comment(%d)", id)
	}

	publish(ctx, s.logger, s.publisher, dto.EventCommentDeleted, comment.PostID, &comment.ID, actorID)

	return nil
}
