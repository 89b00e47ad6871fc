package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}

	if _, err := s.Get(ctx, IssuesKey); !errors.Is(err, ErrNoBlob) {
		t.Fatalf("Get on empty store = %v, want ErrNoBlob", err)
	}

	payload := []byte(`[{"id":"1"}]`)
	if err := s.Put(ctx, IssuesKey, payload); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := s.Get(ctx, IssuesKey)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != string(payload) {
		t.Fatalf("Get = %q, want %q", got, payload)
	}

	// overwrite replaces the whole blob
	if err := s.Put(ctx, IssuesKey, []byte(`[]`)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	got, err = s.Get(ctx, IssuesKey)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != `[]` {
		t.Fatalf("Get after overwrite = %q, want []", got)
	}
}

func TestFileStoreDelete(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}

	if err := s.Put(ctx, SessionKey, []byte(`{}`)); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ctx, SessionKey); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := s.Get(ctx, SessionKey); !errors.Is(err, ErrNoBlob) {
		t.Fatalf("Get after Delete = %v, want ErrNoBlob", err)
	}

	// deleting an absent key is not an error
	if err := s.Delete(ctx, SessionKey); err != nil {
		t.Fatalf("Delete of absent key = %v, want nil", err)
	}
}

func TestFileStoreLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	if err := s.Put(context.Background(), UsersKey, []byte(`[]`)); err != nil {
		t.Fatal(err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".tmp" {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}
