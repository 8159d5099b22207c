package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/jwhulst/userbase/internal/user"
)

// CreateUser handles POST /users
func (h *Handlers) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req user.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			field := verrs[0]
			if field.Tag() == "email" {
				h.jsonError(w, "email must be a valid email address", http.StatusBadRequest)
				return
			}
			h.jsonError(w, field.Field()+" is required", http.StatusBadRequest)
			return
		}
		h.jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.users.Register(req)
	if err != nil {
		var dup *user.DuplicateEmailError
		if errors.As(err, &dup) {
			h.jsonError(w, dup.Error(), http.StatusBadRequest)
			return
		}
		log.Error().Err(err).Str("email", req.Email).Msg("Failed to create user")
		h.jsonError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	log.Info().Int64("id", created.ID).Str("email", created.Email).Msg("User created")
	h.respondJSON(w, http.StatusCreated, created)
}

// GetUser handles GET /users/{id}
func (h *Handlers) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.jsonError(w, "invalid user id", http.StatusBadRequest)
		return
	}

	found, err := h.users.ByID(id)
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("Failed to get user")
		h.jsonError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if found == nil {
		h.jsonError(w, "user not found", http.StatusNotFound)
		return
	}

	h.respondJSON(w, http.StatusOK, found)
}

// ListUsers handles GET /users. With an email query parameter it looks up
// the single matching user instead.
func (h *Handlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	if email := r.URL.Query().Get("email"); email != "" {
		found, err := h.users.ByEmail(email)
		if err != nil {
			log.Error().Err(err).Str("email", email).Msg("Failed to get user by email")
			h.jsonError(w, "internal server error", http.StatusInternalServerError)
			return
		}
		if found == nil {
			h.jsonError(w, "user not found", http.StatusNotFound)
			return
		}
		h.respondJSON(w, http.StatusOK, found)
		return
	}

	users, err := h.users.All()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list users")
		h.jsonError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.respondJSON(w, http.StatusOK, users)
}

// Health handles GET /healthz
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(); err != nil {
		log.Error().Err(err).Msg("Health check failed")
		h.jsonError(w, "database unavailable", http.StatusServiceUnavailable)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
