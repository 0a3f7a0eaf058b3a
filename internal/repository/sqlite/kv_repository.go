package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/deckflash/internal/logger"
	"github.com/vytor/deckflash/internal/repository"
)

type kvRepository struct {
	db *sql.DB
}

// NewKVRepository creates a KVRepository backed by the kv_store table.
func NewKVRepository(db *sql.DB) repository.KVRepository {
	return &kvRepository{db: db}
}

func (r *kvRepository) Get(ctx context.Context, key string) ([]byte, bool, error) {
	log := logger.FromContext(ctx).WithPrefix("kv_repo")
	log.Debug("reading key: %s", key)

	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM kv_store WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("key not found: %s", key)
		return nil, false, nil
	}
	if err != nil {
		log.Error("failed to read key %s: %v", key, err)
		return nil, false, err
	}
	return []byte(value), true, nil
}

func (r *kvRepository) Put(ctx context.Context, key string, value []byte) error {
	log := logger.FromContext(ctx).WithPrefix("kv_repo")
	log.Debug("writing key: %s (%d bytes)", key, len(value))

	query, args, err := sqlBuilder.
		Insert("kv_store").
		Columns("key", "value", "updated_at").
		Values(key, string(value), time.Now().UTC()).
		Suffix("ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at").
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return err
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.Error("failed to write key %s: %v", key, err)
		return err
	}
	return nil
}

func (r *kvRepository) Delete(ctx context.Context, key string) error {
	log := logger.FromContext(ctx).WithPrefix("kv_repo")
	log.Debug("deleting key: %s", key)

	query, args, err := sqlBuilder.Delete("kv_store").Where(squirrel.Eq{"key": key}).ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return err
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.Error("failed to delete key %s: %v", key, err)
		return err
	}
	return nil
}

func (r *kvRepository) Keys(ctx context.Context) ([]string, error) {
	log := logger.FromContext(ctx).WithPrefix("kv_repo")

	query, args, err := sqlBuilder.Select("key").From("kv_store").OrderBy("key").ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list keys: %v", err)
		return nil, err
	}
	defer rows.Close()
	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			log.Error("failed to scan key row: %v", err)
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}
