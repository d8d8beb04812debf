package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/smartcover/quote-api/internal/apikey"
)

func New(dbFile string) (*Repo, error) {
	if dbFile == "" {
		return nil, fmt.Errorf("must set key_store_db_file")
	}
	if _, err := os.Stat(dbFile); errors.Is(err, os.ErrNotExist) {
		fmt.Printf("creating db file %v\n", dbFile)
		f, err := os.Create(dbFile)
		if err != nil {
			return nil, err
		}
		f.Close()
	}

	db, err := sql.Open("sqlite3", dbFile)
	if err != nil {
		return nil, err
	}

	r := Repo{
		dbFile: dbFile,
		db:     db,
	}

	if err := r.createSchema(); err != nil {
		return nil, err
	}

	return &r, nil
}

type Repo struct {
	dbFile string
	db     *sql.DB
}

func (r *Repo) Close() error {
	return r.db.Close()
}

func (r *Repo) createSchema() error {
	const schema = `
CREATE TABLE IF NOT EXISTS api_keys (
    id TEXT PRIMARY KEY,
    key TEXT NOT NULL UNIQUE,
    origin TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    created_at DATETIME NOT NULL
);
	CREATE INDEX IF NOT EXISTS idx_api_keys_key ON api_keys(key);
	`

	if _, err := r.db.Exec(schema); err != nil {
		return err
	}

	return nil
}

func (r *Repo) CreateKey(ctx context.Context, k apikey.Key) (*apikey.Key, error) {
	stmt, err := r.db.PrepareContext(ctx, "INSERT INTO api_keys (id, key, origin, description, created_at) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	if k.ID == "" {
		k.ID = uuid.New().String()
	}
	if k.CreatedAt.IsZero() {
		k.CreatedAt = time.Now()
	}

	if _, err := stmt.ExecContext(ctx, k.ID, k.Key, k.Origin, k.Description, k.CreatedAt); err != nil {
		return nil, err
	}

	return &k, nil
}

func (r *Repo) GetKey(ctx context.Context, key string) (*apikey.Key, error) {
	var k apikey.Key

	row := r.db.QueryRowContext(ctx, "SELECT id, key, origin, description, created_at FROM api_keys WHERE key=?", key)

	err := row.Scan(&k.ID, &k.Key, &k.Origin, &k.Description, &k.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &k, nil
}

func (r *Repo) ListKeys(ctx context.Context) ([]apikey.Key, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, key, origin, description, created_at FROM api_keys")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []apikey.Key

	for rows.Next() {
		var k apikey.Key
		if err := rows.Scan(&k.ID, &k.Key, &k.Origin, &k.Description, &k.CreatedAt); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return keys, nil
}
