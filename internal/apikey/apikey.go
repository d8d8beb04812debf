// Package apikey verifies request keys and their allowed origins against a
// persisted store.
package apikey

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrKeyNotFound    = errors.New("api key not found")
	ErrOriginMismatch = errors.New("origin not allowed for api key")
)

// Key is a provisioned API credential bound to one origin.
type Key struct {
	ID          string    `db:"id"`
	Key         string    `db:"key"`
	Origin      string    `db:"origin"`
	Description string    `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
}

// Repo is the persisted key store. GetKey returns (nil, nil) when the key
// is unknown.
type Repo interface {
	CreateKey(ctx context.Context, k Key) (*Key, error)
	GetKey(ctx context.Context, key string) (*Key, error)
	ListKeys(ctx context.Context) ([]Key, error)
}

type Service struct {
	repo Repo
}

func New(repo Repo) (*Service, error) {
	return &Service{repo: repo}, nil
}

// Verify looks up key and checks that origin matches the one the key was
// provisioned for. Origin comparison is case insensitive.
func (s *Service) Verify(ctx context.Context, key, origin string) (*Key, error) {
	k, err := s.repo.GetKey(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("repo.GetKey: %w", err)
	}
	if k == nil {
		return nil, ErrKeyNotFound
	}

	if !strings.EqualFold(k.Origin, origin) {
		return nil, ErrOriginMismatch
	}

	return k, nil
}
