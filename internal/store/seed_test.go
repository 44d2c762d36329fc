// ABOUTME: Tests for the mnemonic singleton
// ABOUTME: Covers idempotent save, not-initialized load, and the already-initialized guard

package store

import (
	"context"
	"errors"
	"testing"
)

func TestSaveMnemonic_SingletonIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.SaveMnemonic(ctx, "first-ciphertext"); err != nil {
		t.Fatalf("SaveMnemonic failed: %v", err)
	}
	if err := s.SaveMnemonic(ctx, "second-ciphertext"); err != nil {
		t.Fatalf("second SaveMnemonic failed: %v", err)
	}

	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM mnemonic`).Scan(&count); err != nil {
		t.Fatalf("counting rows: %v", err)
	}
	if count != 1 {
		t.Errorf("mnemonic table has %d rows, want exactly 1", count)
	}

	got, err := s.LoadMnemonic(ctx)
	if err != nil {
		t.Fatalf("LoadMnemonic failed: %v", err)
	}
	if got != "second-ciphertext" {
		t.Errorf("got %q, want the last saved value", got)
	}
}

func TestLoadMnemonic_NotInitialized(t *testing.T) {
	s := newTestStore(t)

	_, err := s.LoadMnemonic(context.Background())
	if !errors.Is(err, ErrNotInitialized) {
		t.Errorf("expected ErrNotInitialized, got %v", err)
	}
}

func TestCheckAlreadyInitialized(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CheckAlreadyInitialized(ctx); err != nil {
		t.Fatalf("expected nil before first save, got %v", err)
	}

	initialized, err := s.IsInitialized(ctx)
	if err != nil {
		t.Fatalf("IsInitialized failed: %v", err)
	}
	if initialized {
		t.Error("IsInitialized true before first save")
	}

	if err := s.SaveMnemonic(ctx, "ciphertext"); err != nil {
		t.Fatalf("SaveMnemonic failed: %v", err)
	}

	if err := s.CheckAlreadyInitialized(ctx); !errors.Is(err, ErrAlreadyInitialized) {
		t.Errorf("expected ErrAlreadyInitialized, got %v", err)
	}

	initialized, err = s.IsInitialized(ctx)
	if err != nil {
		t.Fatalf("IsInitialized failed: %v", err)
	}
	if !initialized {
		t.Error("IsInitialized false after save")
	}
}
