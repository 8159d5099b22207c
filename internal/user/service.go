package user

import (
	"errors"
	"fmt"

	"github.com/jwhulst/userbase/internal/database"
)

// ErrNotConfigured is returned when the service was constructed without a
// store. It signals a bootstrap mistake, not a client error.
var ErrNotConfigured = errors.New("user store not configured")

// DuplicateEmailError is returned when registration would reuse an email.
type DuplicateEmailError struct {
	Email string
}

func (e *DuplicateEmailError) Error() string {
	return fmt.Sprintf("user with email %s already exists", e.Email)
}

// Store is the persistence surface the service needs.
type Store interface {
	CreateUser(name, email string) (*database.UserRecord, error)
	GetUserByID(id int64) (*database.UserRecord, error)
	GetUserByEmail(email string) (*database.UserRecord, error)
	ListUsers() ([]*database.UserRecord, error)
}

// Service applies the registry's business rules on top of a Store.
type Service struct {
	store Store
}

// NewService creates a new user service
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Register creates a new user. Registration with an email that is already
// taken fails with *DuplicateEmailError. The lookup-then-insert is not
// atomic; a unique-constraint violation from a concurrent registration is
// translated into the same duplicate error.
func (s *Service) Register(req CreateRequest) (*Response, error) {
	if s.store == nil {
		return nil, ErrNotConfigured
	}

	existing, err := s.store.GetUserByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &DuplicateEmailError{Email: req.Email}
	}

	rec := FromCreateRequest(req)
	created, err := s.store.CreateUser(rec.Name, rec.Email)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, &DuplicateEmailError{Email: req.Email}
		}
		return nil, err
	}

	resp := ToResponse(created)
	return &resp, nil
}

// ByID returns the user with the given id, or nil when absent.
func (s *Service) ByID(id int64) (*Response, error) {
	if s.store == nil {
		return nil, ErrNotConfigured
	}

	rec, err := s.store.GetUserByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}

	resp := ToResponse(rec)
	return &resp, nil
}

// ByEmail returns the user with the given email, or nil when absent.
func (s *Service) ByEmail(email string) (*Response, error) {
	if s.store == nil {
		return nil, ErrNotConfigured
	}

	rec, err := s.store.GetUserByEmail(email)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}

	resp := ToResponse(rec)
	return &resp, nil
}

// All returns every registered user.
func (s *Service) All() ([]Response, error) {
	if s.store == nil {
		return nil, ErrNotConfigured
	}

	recs, err := s.store.ListUsers()
	if err != nil {
		return nil, err
	}

	users := make([]Response, 0, len(recs))
	for _, rec := range recs {
		users = append(users, ToResponse(rec))
	}
	return users, nil
}
