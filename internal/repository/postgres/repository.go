package postgres

import (
	"context"
	"fmt"

	"github.com/BloggingApp/blog-service/internal/config"
	"github.com/BloggingApp/blog-service/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DBTX is satisfied by *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

type scanner interface {
	Scan(dest ...any) error
}

type PostgresRepository struct {
	db      DBTX
	post    repository.Post
	comment repository.Comment
	like    repository.Like
	backup  repository.Backup
}

func New(db DBTX) *PostgresRepository {
	return &PostgresRepository{
		db:      db,
		post:    newPostRepo(db),
		comment: newCommentRepo(db),
		like:    newLikeRepo(db),
		backup:  newBackupRepo(db),
	}
}

func (r *PostgresRepository) Posts() repository.Post {
	return r.post
}

func (r *PostgresRepository) Comments() repository.Comment {
	return r.comment
}

func (r *PostgresRepository) Likes() repository.Like {
	return r.like
}

func (r *PostgresRepository) Backups() repository.Backup {
	return r.backup
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(tx repository.Store) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(New(tx)); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

func DB(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = cfg.MaxConns
	}

	return pgxpool.NewWithConfig(ctx, poolConfig)
}
