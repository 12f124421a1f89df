package postgres

import (
	"context"
	"time"

	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/BloggingApp/blog-service/internal/repository"
	"github.com/google/uuid"
)

type likeRepo struct {
	db DBTX
}

func newLikeRepo(db DBTX) repository.Like {
	return &likeRepo{
		db: db,
	}
}

func (r *likeRepo) Create(ctx context.Context, authorID uuid.UUID, postID int64) (*model.Like, error) {
	like := model.Like{
		AuthorID:  authorID,
		PostID:    postID,
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
	if _, err := r.db.Exec(
		ctx,
		"INSERT INTO likes(author_id, post_id, created_at) VALUES($1, $2, $3)",
		like.AuthorID,
		like.PostID,
		like.CreatedAt,
	); err != nil {
		return nil, translate(err)
	}

	return &like, nil
}

func (r *likeRepo) Delete(ctx context.Context, authorID uuid.UUID, postID int64) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM likes WHERE author_id = $1 AND post_id = $2", authorID, postID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *likeRepo) Exists(ctx context.Context, authorID uuid.UUID, postID int64) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(
		ctx,
		"SELECT EXISTS(SELECT 1 FROM likes WHERE author_id = $1 AND post_id = $2)",
		authorID,
		postID,
	).Scan(&exists); err != nil {
		return false, err
	}

	return exists, nil
}

func (r *likeRepo) CountByPost(ctx context.Context, postID int64) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM likes WHERE post_id = $1", postID).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

func (r *likeRepo) FindByPost(ctx context.Context, postID int64) ([]*model.Like, error) {
	return r.find(ctx, "SELECT author_id, post_id, created_at FROM likes WHERE post_id = $1 ORDER BY created_at DESC", postID)
}

func (r *likeRepo) FindInRange(ctx context.Context, from time.Time, to time.Time) ([]*model.Like, error) {
	return r.find(
		ctx,
		"SELECT author_id, post_id, created_at FROM likes WHERE created_at BETWEEN $1 AND $2 ORDER BY created_at",
		from,
		to,
	)
}

func (r *likeRepo) find(ctx context.Context, query string, args ...any) ([]*model.Like, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	likes := []*model.Like{}
	for rows.Next() {
		var like model.Like
		if err := rows.Scan(&like.AuthorID, &like.PostID, &like.CreatedAt); err != nil {
			return nil, err
		}

		likes = append(likes, &like)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return likes, nil
}
