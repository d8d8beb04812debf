package apikey

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerify(t *testing.T) {
	var tests = []struct {
		name   string
		repo   Repo
		key    string
		origin string
		err    error
	}{
		{
			name: "known key and origin",
			repo: &mockRepo{
				GetKeyKey: &Key{
					ID:     "id-1",
					Key:    "secret",
					Origin: "https://app.example.com",
				},
			},
			key:    "secret",
			origin: "https://app.example.com",
		},
		{
			name: "origin compared case insensitively",
			repo: &mockRepo{
				GetKeyKey: &Key{
					ID:     "id-1",
					Key:    "secret",
					Origin: "https://App.Example.com",
				},
			},
			key:    "secret",
			origin: "https://app.example.com",
		},
		{
			name:   "unknown key",
			repo:   &mockRepo{},
			key:    "nope",
			origin: "https://app.example.com",
			err:    ErrKeyNotFound,
		},
		{
			name: "wrong origin",
			repo: &mockRepo{
				GetKeyKey: &Key{
					ID:     "id-1",
					Key:    "secret",
					Origin: "https://app.example.com",
				},
			},
			key:    "secret",
			origin: "https://evil.example.com",
			err:    ErrOriginMismatch,
		},
		{
			name:   "repo failure",
			repo:   &mockRepo{GetKeyErr: errors.New("db down")},
			key:    "secret",
			origin: "https://app.example.com",
			err:    errors.New("repo.GetKey: db down"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := New(tt.repo)
			assert.NoError(t, err)

			k, err := svc.Verify(context.Background(), tt.key, tt.origin)
			if tt.err != nil {
				assert.EqualError(t, err, tt.err.Error())
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.key, k.Key)
		})
	}
}
