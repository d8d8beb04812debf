package sqlite

import (
	"context"
	"os"
	"testing"

	"github.com/smartcover/quote-api/internal/apikey"
)

func TestNewRepo(t *testing.T) {
	const testDB = "./tmp.db"
	defer os.Remove(testDB)
	_, err := New(testDB)
	if err != nil {
		t.Fatal(err)
	}
}

func TestCreateAndGetKey(t *testing.T) {
	const testDB = "./tmp_keys.db"
	defer os.Remove(testDB)

	repo, err := New(testDB)
	if err != nil {
		t.Fatal(err)
	}
	defer repo.Close()

	ctx := context.Background()

	created, err := repo.CreateKey(ctx, apikey.Key{
		Key:         "secret",
		Origin:      "https://app.example.com",
		Description: "test key",
	})
	if err != nil {
		t.Fatal(err)
	}
	if created.ID == "" {
		t.Fatal("expected generated id")
	}

	got, err := repo.GetKey(ctx, "secret")
	if err != nil {
		t.Fatal(err)
	}
	if got == nil {
		t.Fatal("expected key, got nil")
	}
	if got.Origin != "https://app.example.com" {
		t.Fatalf("unexpected origin %q", got.Origin)
	}

	missing, err := repo.GetKey(ctx, "unknown")
	if err != nil {
		t.Fatal(err)
	}
	if missing != nil {
		t.Fatalf("expected nil for unknown key, got %+v", missing)
	}

	keys, err := repo.ListKeys(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(keys) != 1 {
		t.Fatalf("expected 1 key, got %d", len(keys))
	}
}
