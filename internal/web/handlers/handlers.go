package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/jwhulst/userbase/internal/database"
	"github.com/jwhulst/userbase/internal/user"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	db       *database.DB
	users    *user.Service
	validate *validator.Validate
}

// New creates a new Handlers instance
func New(db *database.DB, users *user.Service) *Handlers {
	return &Handlers{
		db:       db,
		users:    users,
		validate: validator.New(),
	}
}

// respondJSON writes v as a JSON response with the given status
func (h *Handlers) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

// jsonError sends an error response shaped as {"detail": message}
func (h *Handlers) jsonError(w http.ResponseWriter, message string, status int) {
	h.respondJSON(w, status, map[string]string{"detail": message})
}
