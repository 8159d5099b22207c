package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/jwhulst/userbase/internal/database"
)

const (
	// APIKeyLength is the length of generated API keys in bytes (will be hex encoded)
	APIKeyLength = 32
	// BcryptCost is the bcrypt cost factor for stored key hashes
	BcryptCost = 10

	enabledKey = "auth.api_key.enabled"
	hashKey    = "auth.api_key.hash"
)

// APIKeyService manages the admin API key. The key is generated once,
// returned to the operator at creation, and persisted only as a bcrypt hash.
type APIKeyService struct {
	db *database.DB
}

// NewAPIKeyService creates a new API key service
func NewAPIKeyService(db *database.DB) *APIKeyService {
	return &APIKeyService{db: db}
}

// GenerateAPIKey creates a new cryptographically secure API key
func GenerateAPIKey() (string, error) {
	bytes := make([]byte, APIKeyLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate api key: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

// Enabled reports whether API key auth is turned on.
func (s *APIKeyService) Enabled() (bool, error) {
	val, err := s.db.GetSetting(enabledKey)
	if err != nil {
		return false, err
	}
	return val == "true", nil
}

// EnsureKey generates and stores a key if none exists yet. It returns the
// plaintext key on first generation (the only time it is available) and an
// empty string when a key was already set.
func (s *APIKeyService) EnsureKey() (string, error) {
	existing, err := s.db.GetSetting(hashKey)
	if err != nil {
		return "", err
	}
	if existing != "" {
		return "", nil
	}

	key, err := GenerateAPIKey()
	if err != nil {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(key), BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash api key: %w", err)
	}

	if err := s.db.SetSetting(hashKey, string(hash)); err != nil {
		return "", err
	}
	return key, nil
}

// RegenerateKey replaces the stored key hash and returns the new plaintext key.
func (s *APIKeyService) RegenerateKey() (string, error) {
	if err := s.db.DeleteSetting(hashKey); err != nil {
		return "", err
	}
	return s.EnsureKey()
}

// Validate checks a presented key against the stored hash.
func (s *APIKeyService) Validate(key string) (bool, error) {
	if key == "" {
		return false, nil
	}

	hash, err := s.db.GetSetting(hashKey)
	if err != nil {
		return false, err
	}
	if hash == "" {
		return false, nil
	}

	err = bcrypt.CompareHashAndPassword([]byte(hash), []byte(key))
	return err == nil, nil
}
