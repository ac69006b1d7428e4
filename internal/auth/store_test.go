package auth

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestStoreRoundTrip(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "session.enc")
	store := Store{Path: path}
	in := Session{Token: "tok-123", BackendURL: "http://bookings.campus.local", Account: "facilities"}
	if err := store.Save(in, "store-password"); err != nil {
		t.Fatalf("save: %v", err)
	}
	out, err := store.Load("store-password")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if out != in {
		t.Fatalf("round-trip mismatch: got %+v want %+v", out, in)
	}
	if _, err := store.Load("wrong-password"); err == nil {
		t.Fatal("expected decrypt error with wrong password")
	}
}

func TestStoreTokenNotStoredInClear(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "session.enc")
	store := Store{Path: path}
	if err := store.Save(Session{Token: "super-secret-token"}, "pw"); err != nil {
		t.Fatalf("save: %v", err)
	}
	blob, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if bytes.Contains(blob, []byte("super-secret-token")) {
		t.Fatal("token must not appear in the on-disk blob")
	}
}

func TestStoreRejectsTruncatedBlob(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "session.enc")
	if err := os.WriteFile(path, []byte("short"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := (Store{Path: path}).Load("pw"); err == nil {
		t.Fatal("expected error for truncated blob")
	}
}
