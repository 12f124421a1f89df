package postgres

import (
	"context"
	"time"

	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/BloggingApp/blog-service/internal/repository"
)

type backupRepo struct {
	db DBTX
}

func newBackupRepo(db DBTX) repository.Backup {
	return &backupRepo{
		db: db,
	}
}

func (r *backupRepo) Create(ctx context.Context, backup model.PostBackup) (*model.PostBackup, error) {
	backup.CreatedAt = time.Now().UTC().Truncate(time.Microsecond)
	if err := r.db.QueryRow(
		ctx,
		"INSERT INTO post_backups(post_id, title, content, date, created_at) VALUES($1, $2, $3, $4, $5) RETURNING id",
		backup.PostID,
		backup.Title,
		backup.Content,
		backup.Date,
		backup.CreatedAt,
	).Scan(&backup.ID); err != nil {
		return nil, translate(err)
	}

	return &backup, nil
}

func (r *backupRepo) FindByPost(ctx context.Context, postID int64) ([]*model.PostBackup, error) {
	rows, err := r.db.Query(
		ctx,
		"SELECT id, post_id, title, content, date, created_at FROM post_backups WHERE post_id = $1 ORDER BY date DESC, id DESC",
		postID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var backups []*model.PostBackup
	for rows.Next() {
		var backup model.PostBackup
		if err := rows.Scan(
			&backup.ID,
			&backup.PostID,
			&backup.Title,
			&backup.Content,
			&backup.Date,
			&backup.CreatedAt,
		); err != nil {
			return nil, err
		}

		backups = append(backups, &backup)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(backups) == 0 {
		return nil, repository.ErrNotFound
	}

	return backups, nil
}
