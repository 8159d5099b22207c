package database

import (
	"path/filepath"
	"testing"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	tmp := t.TempDir()
	dbPath := filepath.Join(tmp, "test.db")

	db, err := New(dbPath)
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.Migrate(); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func TestCreateUser_AssignsID(t *testing.T) {
	db := newTestDB(t)

	created, err := db.CreateUser("Alice", "alice@example.com")
	if err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected non-zero id")
	}
	if created.Name != "Alice" || created.Email != "alice@example.com" {
		t.Fatalf("unexpected record: %+v", created)
	}
	if created.CreatedAt.IsZero() {
		t.Fatal("expected created_at to be set")
	}
}

func TestGetUserByID_MissingReturnsNil(t *testing.T) {
	db := newTestDB(t)

	user, err := db.GetUserByID(9999)
	if err != nil {
		t.Fatalf("GetUserByID returned error: %v", err)
	}
	if user != nil {
		t.Fatalf("expected nil for missing user, got %+v", user)
	}
}

func TestGetUserByEmail_RoundTrip(t *testing.T) {
	db := newTestDB(t)

	created, err := db.CreateUser("Bob", "bob@example.com")
	if err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}

	found, err := db.GetUserByEmail("bob@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail returned error: %v", err)
	}
	if found == nil {
		t.Fatal("expected user to be found")
	}
	if found.ID != created.ID {
		t.Fatalf("expected id %d, got %d", created.ID, found.ID)
	}

	missing, err := db.GetUserByEmail("nobody@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail returned error: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for missing email, got %+v", missing)
	}
}

func TestListUsers_OrderedByID(t *testing.T) {
	db := newTestDB(t)

	emails := []string{"a@example.com", "b@example.com", "c@example.com"}
	for _, email := range emails {
		if _, err := db.CreateUser("User", email); err != nil {
			t.Fatalf("CreateUser returned error: %v", err)
		}
	}

	users, err := db.ListUsers()
	if err != nil {
		t.Fatalf("ListUsers returned error: %v", err)
	}
	if len(users) != len(emails) {
		t.Fatalf("expected %d users, got %d", len(emails), len(users))
	}
	for i, u := range users {
		if u.Email != emails[i] {
			t.Fatalf("expected email %q at index %d, got %q", emails[i], i, u.Email)
		}
	}
}

func TestCreateUser_DuplicateEmailIsUniqueViolation(t *testing.T) {
	db := newTestDB(t)

	if _, err := db.CreateUser("Alice", "alice@example.com"); err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}

	_, err := db.CreateUser("Other Alice", "alice@example.com")
	if err == nil {
		t.Fatal("expected error for duplicate email")
	}
	if !IsUniqueViolation(err) {
		t.Fatalf("expected unique violation, got %v", err)
	}

	count, err := db.CountUsers()
	if err != nil {
		t.Fatalf("CountUsers returned error: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 row after duplicate insert, got %d", count)
	}
}

func TestIsUniqueViolation_OtherErrors(t *testing.T) {
	db := newTestDB(t)

	_, err := db.Exec("INSERT INTO no_such_table (x) VALUES (1)")
	if err == nil {
		t.Fatal("expected error for missing table")
	}
	if IsUniqueViolation(err) {
		t.Fatalf("expected non-unique-violation error, got %v", err)
	}
}
