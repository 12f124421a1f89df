package service

import (
	"context"
	"testing"

	"github.com/BloggingApp/blog-service/internal/dto"
	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/BloggingApp/blog-service/internal/repository/memory"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type publisherMock struct {
	mock.Mock
}

func (m *publisherMock) Publish(ctx context.Context, msg dto.EventMsg) error {
	return m.Called(ctx, msg).Error(0)
}

func (m *publisherMock) Close() error {
	return m.Called().Error(0)
}

func newTestService(t *testing.T, opts Options, storeOpts ...memory.Option) (*Service, *memory.Repository) {
	t.Helper()

	store := memory.New(storeOpts...)

	return New(zap.NewNop(), store, nil, opts), store
}

func createPost(t *testing.T, services *Service, authorID uuid.UUID, title string, content string) *model.Post {
	t.Helper()

	post, err := services.Post.Create(context.Background(), authorID, dto.CreatePostRequest{
		Title:   title,
		Content: content,
	})
	require.NoError(t, err)

	return post
}

// requireLikesConsistent checks that the stored counter equals the number of
// like rows for the post.
func requireLikesConsistent(t *testing.T, store *memory.Repository, postID int64) int64 {
	t.Helper()

	ctx := context.Background()
	post, err := store.Posts().FindByID(ctx, postID)
	require.NoError(t, err)
	count, err := store.Likes().CountByPost(ctx, postID)
	require.NoError(t, err)
	require.Equal(t, count, post.LikesCount)

	return count
}
