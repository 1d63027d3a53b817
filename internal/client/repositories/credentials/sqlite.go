package credentials

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/couponadmin/internal/dbx"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Load(ctx context.Context) (Entry, error) {
	return dbx.InTx(ctx, r.db, func(ctx context.Context, tx dbx.DBTX) (Entry, error) {
		token, err := get(ctx, tx, TokenKey)
		if err != nil {
			return Entry{}, err
		}
		user, err := get(ctx, tx, UserKey)
		if err != nil {
			return Entry{}, err
		}
		return Entry{Token: string(token), User: user}, nil
	})
}

func (r *SQLiteRepository) Save(ctx context.Context, e Entry) error {
	if !e.Complete() {
		return ErrIncomplete
	}
	return dbx.WithTx(ctx, r.db, func(ctx context.Context, tx dbx.DBTX) error {
		if err := set(ctx, tx, TokenKey, []byte(e.Token)); err != nil {
			return err
		}
		return set(ctx, tx, UserKey, e.User)
	})
}

func (r *SQLiteRepository) SaveUser(ctx context.Context, user []byte) error {
	if len(user) == 0 {
		return ErrIncomplete
	}
	return dbx.WithTx(ctx, r.db, func(ctx context.Context, tx dbx.DBTX) error {
		token, err := get(ctx, tx, TokenKey)
		if err != nil {
			return err
		}
		if len(token) == 0 {
			return ErrIncomplete
		}
		return set(ctx, tx, UserKey, user)
	})
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, r.db, func(ctx context.Context, tx dbx.DBTX) error {
		_, err := tx.ExecContext(ctx, `DELETE FROM credentials WHERE key IN (?, ?)`, TokenKey, UserKey)
		if err != nil {
			return fmt.Errorf("failed to clear credentials: %w", err)
		}
		return nil
	})
}

func get(ctx context.Context, q dbx.DBTX, key string) ([]byte, error) {
	var value []byte
	err := q.QueryRowContext(ctx, `SELECT value FROM credentials WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get credentials[%s]: %w", key, err)
	}
	return value, nil
}

func set(ctx context.Context, q dbx.DBTX, key string, value []byte) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO credentials (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set credentials[%s]: %w", key, err)
	}
	return nil
}
