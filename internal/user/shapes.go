// Package user implements the user registry: request/response shapes, the
// translation between those shapes and the stored record, and the
// registration business rule.
package user

// CreateRequest is the external shape for registering a user.
type CreateRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// Response is the external shape returned for a user.
type Response struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
