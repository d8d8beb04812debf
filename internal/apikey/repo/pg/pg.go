package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/smartcover/quote-api/internal/apikey"
)

func New(dbConnStr string) (*Repo, error) {
	db, err := sqlx.Connect("postgres", dbConnStr)
	if err != nil {
		return nil, fmt.Errorf("sqlx.Connect: %w", err)
	}

	// sqlx default is 0 (unlimited), while postgresql by default accepts up to 100 connections
	db.SetMaxOpenConns(80)

	_, err = db.Exec(`
CREATE TABLE IF NOT EXISTS api_keys (
	id TEXT PRIMARY KEY,
	key TEXT NOT NULL UNIQUE,
	origin TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS keyidx ON api_keys(key);
    `)
	if err != nil {
		return nil, fmt.Errorf("db.Exec schema: %w", err)
	}

	return &Repo{
		db: db,
	}, nil
}

type Repo struct {
	db *sqlx.DB
}

func (r *Repo) CreateKey(ctx context.Context, k apikey.Key) (*apikey.Key, error) {
	if k.ID == "" {
		k.ID = uuid.New().String()
	}

	query, args, err := sqlx.Named(`INSERT INTO api_keys (id, key, origin, description)
VALUES (:id, :key, :origin, :description);`, k)
	if err != nil {
		return nil, fmt.Errorf("sqlx.Named createKey: %w", err)
	}
	query = r.db.Rebind(query)
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("db.Exec createKey: %w", err)
	}

	return r.GetKey(ctx, k.Key)
}

func (r *Repo) GetKey(ctx context.Context, key string) (*apikey.Key, error) {
	const query = "SELECT * FROM api_keys WHERE key=$1;"

	var k apikey.Key
	if err := r.db.GetContext(ctx, &k, query, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("db.Get key: %w", err)
	}

	return &k, nil
}

func (r *Repo) ListKeys(ctx context.Context) ([]apikey.Key, error) {
	const query = "SELECT * FROM api_keys ORDER BY created_at;"

	var keys []apikey.Key
	if err := r.db.SelectContext(ctx, &keys, query); err != nil {
		return nil, fmt.Errorf("db.Select keys: %w", err)
	}

	return keys, nil
}
