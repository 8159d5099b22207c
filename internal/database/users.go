package database

import (
	"database/sql"
	"fmt"
	"time"
)

// UserRecord represents a user stored in the database.
type UserRecord struct {
	ID        int64
	Name      string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateUser inserts a new user record and returns the persisted row,
// including the system-assigned id.
func (db *DB) CreateUser(name, email string) (*UserRecord, error) {
	now := time.Now()
	result, err := db.Exec(`
		INSERT INTO users (name, email, created_at, updated_at)
		VALUES (?, ?, ?, ?)
	`, name, email, now, now)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get user id: %w", err)
	}

	// Re-read the row so callers get exactly what was persisted
	user, err := db.GetUserByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %d not found after insert", id)
	}
	return user, nil
}

// GetUserByID retrieves a user by ID. Returns nil without error when no
// such user exists.
func (db *DB) GetUserByID(id int64) (*UserRecord, error) {
	user := &UserRecord{}
	err := db.QueryRow(`
		SELECT id, name, email, created_at, updated_at
		FROM users WHERE id = ?
	`, id).Scan(&user.ID, &user.Name, &user.Email, &user.CreatedAt, &user.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// GetUserByEmail retrieves a user by email. Returns nil without error when
// no such user exists.
func (db *DB) GetUserByEmail(email string) (*UserRecord, error) {
	user := &UserRecord{}
	err := db.QueryRow(`
		SELECT id, name, email, created_at, updated_at
		FROM users WHERE email = ?
	`, email).Scan(&user.ID, &user.Name, &user.Email, &user.CreatedAt, &user.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// ListUsers returns all users ordered by id.
func (db *DB) ListUsers() ([]*UserRecord, error) {
	rows, err := db.Query(`
		SELECT id, name, email, created_at, updated_at
		FROM users
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*UserRecord
	for rows.Next() {
		u := &UserRecord{}
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// CountUsers returns the number of user rows.
func (db *DB) CountUsers() (int, error) {
	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}
