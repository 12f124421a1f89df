package service

import (
	"context"
	"testing"

	"github.com/BloggingApp/blog-service/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentCreate(t *testing.T) {
	ctx := context.Background()
	services, _ := newTestService(t, Options{})
	post := createPost(t, services, uuid.New(), "title", "body")
	authorID := uuid.New()

	comment, err := services.Comment.Create(ctx, authorID, post.ID, dto.CreateCommentRequest{Content: " first "})
	require.NoError(t, err)
	assert.NotZero(t, comment.ID)
	assert.Equal(t, post.ID, comment.PostID)
	assert.Equal(t, authorID, comment.AuthorID)
	assert.Equal(t, "first", comment.Content)

	_, err = services.Comment.Create(ctx, authorID, post.ID, dto.CreateCommentRequest{Content: "second"})
	require.NoError(t, err)

	comments, err := services.Comment.FindPostComments(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "second", comments[0].Content)
	assert.Equal(t, "first", comments[1].Content)
}

func TestCommentCreate_Rejections(t *testing.T) {
	ctx := context.Background()
	services, _ := newTestService(t, Options{})
	post := createPost(t, services, uuid.New(), "title", "body")

	_, err := services.Comment.Create(ctx, uuid.New(), post.ID+1, dto.CreateCommentRequest{Content: "hi"})
	assert.ErrorIs(t, err, ErrNotFound)

	// a missing post wins over an invalid body
	_, err = services.Comment.Create(ctx, uuid.New(), post.ID+1, dto.CreateCommentRequest{})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = services.Comment.Create(ctx, uuid.New(), post.ID, dto.CreateCommentRequest{Content: " \n "})
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, map[string]string{"content": "This field may not be blank."}, validationErr.Fields)
}

func TestCommentFindPostComments_UnknownPost(t *testing.T) {
	services, _ := newTestService(t, Options{})

	comments, err := services.Comment.FindPostComments(context.Background(), 7)

	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestCommentEdit(t *testing.T) {
	ctx := context.Background()
	services, _ := newTestService(t, Options{})
	post := createPost(t, services, uuid.New(), "title", "body")
	authorID := uuid.New()
	comment, err := services.Comment.Create(ctx, authorID, post.ID, dto.CreateCommentRequest{Content: "old"})
	require.NoError(t, err)

	_, err = services.Comment.Edit(ctx, uuid.New(), comment.ID, dto.EditCommentRequest{Content: "new"})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = services.Comment.Edit(ctx, authorID, comment.ID+1, dto.EditCommentRequest{Content: "new"})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = services.Comment.Edit(ctx, authorID, comment.ID, dto.EditCommentRequest{Content: ""})
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)

	updated, err := services.Comment.Edit(ctx, authorID, comment.ID, dto.EditCommentRequest{Content: "new"})
	require.NoError(t, err)
	assert.Equal(t, "new", updated.Content)
	assert.Equal(t, comment.CreatedAt, updated.CreatedAt)
}

func TestCommentDelete(t *testing.T) {
	ctx := context.Background()
	services, _ := newTestService(t, Options{})
	postAuthorID := uuid.New()
	post := createPost(t, services, postAuthorID, "title", "body")
	authorID := uuid.New()
	comment, err := services.Comment.Create(ctx, authorID, post.ID, dto.CreateCommentRequest{Content: "c"})
	require.NoError(t, err)

	// owning the post does not grant rights over its comments
	err = services.Comment.Delete(ctx, postAuthorID, comment.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	require.NoError(t, services.Comment.Delete(ctx, authorID, comment.ID))

	err = services.Comment.Delete(ctx, authorID, comment.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	comments, err := services.Comment.FindPostComments(ctx, post.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)
}
