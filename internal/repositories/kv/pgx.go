package kv

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/orgball2608/reels-client/internal/repositories"
	"github.com/orgball2608/reels-client/pkg/logger"
)

const table = "kv_store"

type PgxRepository struct {
	pool   *pgxpool.Pool
	logger logger.Logger
}

func NewPgxRepository(pool *pgxpool.Pool, logger logger.Logger) *PgxRepository {
	return &PgxRepository{
		pool:   pool,
		logger: logger.WithComponent("PgxKV"),
	}
}

var _ Repository = (*PgxRepository)(nil)

func (r *PgxRepository) Get(ctx context.Context, key string) (string, error) {
	query, args, err := repositories.SqBuilder.
		Select("value").
		From(table).
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		return "", repositories.ErrBadQuery
	}

	var value string
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to get key %s: %w", key, err)
	}
	return value, nil
}

// SetAll upserts all entries inside one transaction.
func (r *PgxRepository) SetAll(ctx context.Context, entries map[string]string) error {
	if len(entries) == 0 {
		return nil
	}

	now := time.Now()
	builder := repositories.SqBuilder.
		Insert(table).
		Columns("key", "value", "updated_at").
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at")
	for k, v := range entries {
		builder = builder.Values(k, v, now)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return repositories.ErrBadQuery
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			r.logger.Warn("Rollback failed", "error", err)
		}
	}()

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to upsert keys: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit keys: %w", err)
	}
	return nil
}

func (r *PgxRepository) DeleteAll(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}

	query, args, err := repositories.SqBuilder.
		Delete(table).
		Where(sq.Eq{"key": keys}).
		ToSql()
	if err != nil {
		return repositories.ErrBadQuery
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to delete keys: %w", err)
	}
	return nil
}
