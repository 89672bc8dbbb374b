package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/progrestian/izin/internal/common"
)

// PostgresRepository persists credentials in the users table. Atomicity of
// CreateIfAbsent is delegated to ON CONFLICT DO NOTHING.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CreateIfAbsent(ctx context.Context, c *Credential) (bool, error) {

	query :=
		`INSERT INTO users (username, salt, hash, updated_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (username) DO NOTHING
		 `

	res, err := r.db.ExecContext(ctx, query, c.Username, c.Salt, c.Hash, c.UpdatedAt)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	inserted, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return inserted > 0, nil
}

func (r *PostgresRepository) Get(ctx context.Context, username string) (*Credential, error) {
	query :=
		`SELECT username, salt, hash, updated_at FROM users
		 WHERE username = $1
		 `

	c := &Credential{}
	err := r.db.QueryRowContext(ctx, query, username).Scan(&c.Username, &c.Salt, &c.Hash, &c.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return c, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, username string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE username = $1`, username)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return deleted > 0, nil
}

func (r *PostgresRepository) ListNames(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT username FROM users ORDER BY username`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		names = append(names, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return names, nil
}
