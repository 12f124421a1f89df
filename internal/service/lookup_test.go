package service

import (
	"context"
	"errors"
	"testing"

	"github.com/BloggingApp/blog-service/internal/dto"
	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/BloggingApp/blog-service/internal/repository"
	"github.com/BloggingApp/blog-service/internal/repository/memory"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// brokenLockStore fails every row lock with a driver-level error.
type brokenLockStore struct {
	repository.Store
}

func (s brokenLockStore) Posts() repository.Post {
	return brokenLockPosts{Post: s.Store.Posts()}
}

func (s brokenLockStore) Transaction(ctx context.Context, fn func(tx repository.Store) error) error {
	return s.Store.Transaction(ctx, func(tx repository.Store) error {
		return fn(brokenLockStore{Store: tx})
	})
}

type brokenLockPosts struct {
	repository.Post
}

func (brokenLockPosts) LockByID(ctx context.Context, id int64) (*model.Post, error) {
	return nil, errors.New("connection reset by peer")
}

func TestLockFailureIsNotFound(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	authorID := uuid.New()
	post, err := store.Posts().Create(ctx, model.Post{AuthorID: authorID, Title: "title", Content: "body"})
	assert.NoError(t, err)

	services := New(zap.NewNop(), brokenLockStore{Store: store}, nil, Options{})

	_, err = services.Post.Edit(ctx, authorID, post.ID, dto.EditPostRequest{Title: "t", Content: "c"})
	assert.ErrorIs(t, err, ErrNotFound)

	err = services.Post.Delete(ctx, authorID, post.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = services.Post.ToggleLike(ctx, authorID, post.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
