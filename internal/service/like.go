package service

import (
	"context"

	"github.com/BloggingApp/blog-service/internal/dto"
	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/BloggingApp/blog-service/internal/repository"
	"github.com/google/uuid"
)

// ToggleLike likes the post for the caller, or removes the like if it is
// already there. The post row stays locked for the whole toggle so that
// concurrent clicks on the same post are applied one after another.
func (s *postService) ToggleLike(ctx context.Context, actorID uuid.UUID, id int64) (*model.LikeToggle, error) {
	toggle := &model.LikeToggle{PostID: id}
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		if _, err := tx.Posts().LockByID(ctx, id); err != nil {
			return lookupError(s.logger, err, "post", id)
		}

		liked, err := tx.Likes().Exists(ctx, actorID, id)
		if err != nil {
			return err
		}

		delta := int64(1)
		if liked {
			if err := tx.Likes().Delete(ctx, actorID, id); err != nil {
				return err
			}
			delta = -1
			toggle.Result = model.Unliked
		} else {
			if _, err := tx.Likes().Create(ctx, actorID, id); err != nil {
				return err
			}
			toggle.Result = model.Liked
		}

		toggle.LikesCount, err = tx.Posts().AddLikes(ctx, id, delta)
		return err
	})
	if err != nil {
		return nil, operationError(s.logger, err, "failed to toggle user(%s) like on post(%d)", actorID.String(), id)
	}

	likeTogglesTotal.WithLabelValues(string(toggle.Result)).Inc()

	eventType := dto.EventPostLiked
	if toggle.Result == model.Unliked {
		eventType = dto.EventPostUnliked
	}
	publish(ctx, s.logger, s.publisher, eventType, id, nil, actorID)

	return toggle, nil
}

// FindLikes lists who liked the post, newest first.
func (s *postService) FindLikes(ctx context.Context, id int64) ([]*model.Like, error) {
	if _, err := s.store.Posts().FindByID(ctx, id); err != nil {
		return nil, lookupError(s.logger, err, "post", id)
	}

	likes, err := s.store.Likes().FindByPost(ctx, id)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find post(%d) likes: %s", id, err.Error())
		return nil, ErrInternal
	}

	return likes, nil
}
