package auth

import (
	"path/filepath"
	"testing"

	"github.com/jwhulst/userbase/internal/database"
)

func newTestService(t *testing.T) *APIKeyService {
	t.Helper()
	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.Migrate(); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return NewAPIKeyService(db)
}

func TestEnsureKey_GeneratesOnce(t *testing.T) {
	s := newTestService(t)

	key, err := s.EnsureKey()
	if err != nil {
		t.Fatalf("EnsureKey returned error: %v", err)
	}
	if len(key) != APIKeyLength*2 {
		t.Fatalf("expected %d hex chars, got %d", APIKeyLength*2, len(key))
	}

	again, err := s.EnsureKey()
	if err != nil {
		t.Fatalf("EnsureKey returned error: %v", err)
	}
	if again != "" {
		t.Fatal("expected no key on second call")
	}
}

func TestValidate(t *testing.T) {
	s := newTestService(t)

	// No key stored yet
	ok, err := s.Validate("anything")
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if ok {
		t.Fatal("expected validation to fail with no stored key")
	}

	key, err := s.EnsureKey()
	if err != nil {
		t.Fatalf("EnsureKey returned error: %v", err)
	}

	ok, err = s.Validate(key)
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if !ok {
		t.Fatal("expected the generated key to validate")
	}

	ok, err = s.Validate("wrong-key")
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if ok {
		t.Fatal("expected a wrong key to fail validation")
	}

	ok, err = s.Validate("")
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if ok {
		t.Fatal("expected an empty key to fail validation")
	}
}

func TestRegenerateKey(t *testing.T) {
	s := newTestService(t)

	first, err := s.EnsureKey()
	if err != nil {
		t.Fatalf("EnsureKey returned error: %v", err)
	}

	second, err := s.RegenerateKey()
	if err != nil {
		t.Fatalf("RegenerateKey returned error: %v", err)
	}
	if second == "" || second == first {
		t.Fatalf("expected a new key, got %q", second)
	}

	ok, err := s.Validate(first)
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if ok {
		t.Fatal("expected the old key to stop validating")
	}
}
