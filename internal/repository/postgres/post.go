package postgres

import (
	"context"
	"time"

	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/BloggingApp/blog-service/internal/repository"
)

const postColumns = "id, author_id, title, content, likes_count, created_at, updated_at"

type postRepo struct {
	db DBTX
}

func newPostRepo(db DBTX) repository.Post {
	return &postRepo{
		db: db,
	}
}

func scanPost(row scanner) (*model.Post, error) {
	var post model.Post
	if err := row.Scan(
		&post.ID,
		&post.AuthorID,
		&post.Title,
		&post.Content,
		&post.LikesCount,
		&post.CreatedAt,
		&post.UpdatedAt,
	); err != nil {
		return nil, translate(err)
	}

	return &post, nil
}

func (r *postRepo) Create(ctx context.Context, post model.Post) (*model.Post, error) {
	now := time.Now().UTC().Truncate(time.Microsecond)
	post.CreatedAt = now
	post.UpdatedAt = now
	post.LikesCount = 0
	if err := r.db.QueryRow(
		ctx,
		"INSERT INTO posts(author_id, title, content, likes_count, created_at, updated_at) VALUES($1, $2, $3, $4, $5, $6) RETURNING id",
		post.AuthorID,
		post.Title,
		post.Content,
		post.LikesCount,
		post.CreatedAt,
		post.UpdatedAt,
	).Scan(&post.ID); err != nil {
		return nil, translate(err)
	}

	return &post, nil
}

func (r *postRepo) FindByID(ctx context.Context, id int64) (*model.Post, error) {
	return scanPost(r.db.QueryRow(ctx, "SELECT "+postColumns+" FROM posts WHERE id = $1", id))
}

func (r *postRepo) LockByID(ctx context.Context, id int64) (*model.Post, error) {
	return scanPost(r.db.QueryRow(ctx, "SELECT "+postColumns+" FROM posts WHERE id = $1 FOR UPDATE", id))
}

func (r *postRepo) FindAll(ctx context.Context) ([]*model.Post, error) {
	rows, err := r.db.Query(ctx, "SELECT "+postColumns+" FROM posts ORDER BY likes_count DESC, created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []*model.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}

		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return posts, nil
}

func (r *postRepo) UpdateContent(ctx context.Context, id int64, title string, content string, updatedAt time.Time) (*model.Post, error) {
	return scanPost(r.db.QueryRow(
		ctx,
		"UPDATE posts SET title = $1, content = $2, updated_at = $3 WHERE id = $4 RETURNING "+postColumns,
		title,
		content,
		updatedAt.UTC().Truncate(time.Microsecond),
		id,
	))
}

func (r *postRepo) AddLikes(ctx context.Context, id int64, delta int64) (int64, error) {
	var likesCount int64
	if err := r.db.QueryRow(
		ctx,
		"UPDATE posts SET likes_count = likes_count + $1 WHERE id = $2 RETURNING likes_count",
		delta,
		id,
	).Scan(&likesCount); err != nil {
		return 0, translate(err)
	}

	return likesCount, nil
}

func (r *postRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM posts WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}
