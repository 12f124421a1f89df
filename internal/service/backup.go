package service

import (
	"context"
	"errors"

	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/BloggingApp/blog-service/internal/repository"
)

// backup snapshots the content that is live right before an edit.
func (s *postService) backup(ctx context.Context, tx repository.Store, post *model.Post) error {
	if _, err := tx.Backups().Create(ctx, model.PostBackup{
		PostID:  post.ID,
		Title:   post.Title,
		Content: post.Content,
		Date:    post.UpdatedAt,
	}); err != nil {
		return err
	}

	postBackupsTotal.Inc()

	return nil
}

func (s *postService) FindBackups(ctx context.Context, id int64) ([]*model.PostBackup, error) {
	backups, err := s.store.Backups().FindByPost(ctx, id)
	if err == nil {
		return backups, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		s.logger.Sugar().Errorf("failed to find post(%d) backups: %s", id, err.Error())
		return nil, ErrInternal
	}

	if _, err := s.store.Posts().FindByID(ctx, id); err != nil {
		return nil, lookupError(s.logger, err, "post", id)
	}

	return nil, ErrNoBackups
}
