package kvstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"makwell-storefront/internal/logger"

	"go.uber.org/zap"
)

type postgres struct {
	db *sql.DB
}

// NewPostgres stores keys in the kv_store table created by cmd/migrate.
func NewPostgres(db *sql.DB) Store {
	return &postgres{db: db}
}

func (r *postgres) Get(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, ErrEmptyKey
	}

	var value string
	err := r.db.QueryRowContext(ctx, `
		SELECT value
		FROM kv_store
		WHERE key = $1
	`, key).Scan(&value)

	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		logger.FromCtx(ctx).Error("kv get failed",
			zap.String("layer", "repository"),
			zap.String("key", key),
			zap.Error(err),
		)
		return "", false, fmt.Errorf("%w: %v", ErrFailedRead, err)
	}

	return value, true, nil
}

func (r *postgres) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Set"),
		zap.String("key", key),
	)
	start := time.Now()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO kv_store (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`, key, value)
	if err != nil {
		log.Error("kv upsert failed", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrFailedWrite, err)
	}

	log.Debug("kv upsert success", zap.Duration("duration", time.Since(start)))
	return nil
}

func (r *postgres) Delete(ctx context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}

	if _, err := r.db.ExecContext(ctx, `DELETE FROM kv_store WHERE key = $1`, key); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedDelete, err)
	}
	return nil
}
