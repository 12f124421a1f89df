package postgres

import (
	"context"
	"time"

	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/BloggingApp/blog-service/internal/repository"
)

const commentColumns = "id, post_id, author_id, content, created_at"

type commentRepo struct {
	db DBTX
}

func newCommentRepo(db DBTX) repository.Comment {
	return &commentRepo{
		db: db,
	}
}

func scanComment(row scanner) (*model.Comment, error) {
	var comment model.Comment
	if err := row.Scan(
		&comment.ID,
		&comment.PostID,
		&comment.AuthorID,
		&comment.Content,
		&comment.CreatedAt,
	); err != nil {
		return nil, translate(err)
	}

	return &comment, nil
}

func (r *commentRepo) Create(ctx context.Context, comment model.Comment) (*model.Comment, error) {
	comment.CreatedAt = time.Now().UTC().Truncate(time.Microsecond)
	if err := r.db.QueryRow(
		ctx,
		"INSERT INTO comments(post_id, author_id, content, created_at) VALUES($1, $2, $3, $4) RETURNING id",
		comment.PostID,
		comment.AuthorID,
		comment.Content,
		comment.CreatedAt,
	).Scan(&comment.ID); err != nil {
		return nil, translate(err)
	}

	return &comment, nil
}

func (r *commentRepo) FindByID(ctx context.Context, id int64) (*model.Comment, error) {
	return scanComment(r.db.QueryRow(ctx, "SELECT "+commentColumns+" FROM comments WHERE id = $1", id))
}

func (r *commentRepo) FindPostComments(ctx context.Context, postID int64) ([]*model.Comment, error) {
	rows, err := r.db.Query(
		ctx,
		"SELECT "+commentColumns+" FROM comments WHERE post_id = $1 ORDER BY created_at DESC, id DESC",
		postID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []*model.Comment{}
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, err
		}

		comments = append(comments, comment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return comments, nil
}

func (r *commentRepo) UpdateContent(ctx context.Context, id int64, content string) (*model.Comment, error) {
	return scanComment(r.db.QueryRow(
		ctx,
		"UPDATE comments SET content = $1 WHERE id = $2 RETURNING "+commentColumns,
		content,
		id,
	))
}

func (r *commentRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM comments WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}
