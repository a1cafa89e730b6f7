package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/auth"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/dmitrijs2005/gophauth/internal/server/services"
)

const maxBodyBytes = 1 << 20

// UserService is the business logic behind the auth endpoints.
type UserService interface {
	Register(ctx context.Context, username, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (*services.TokenPair, error)
	Refresh(ctx context.Context, identity *auth.Identity) (string, error)
}

// Pinger reports backend readiness for /healthz.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler serves the JSON auth endpoints.
type Handler struct {
	users  UserService
	health Pinger
	logger logging.Logger
}

func NewHandler(users UserService, health Pinger, logger logging.Logger) *Handler {
	return &Handler{users: users, health: health, logger: logger}
}

// decodeCredentials reads {username, password}. A malformed body is
// reported like a missing field.
func decodeCredentials(r *http.Request) (credentialsRequest, error) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, fmt.Errorf("%w: %v", common.ErrorMissingField, err)
	}
	if req.Username == "" || req.Password == "" {
		return req, common.ErrorMissingField
	}
	return req, nil
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	req, err := decodeCredentials(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, msgMissingField)
		return
	}

	u, err := h.users.Register(r.Context(), req.Username, req.Password)
	switch {
	case err == nil:
	case errors.Is(err, common.ErrorMissingField):
		writeMessage(w, http.StatusBadRequest, msgMissingField)
		return
	case errors.Is(err, common.ErrorAlreadyExists):
		writeMessage(w, http.StatusConflict, msgAlreadyExists)
		return
	default:
		h.logger.Error(r.Context(), "registration failed", "error", err.Error())
		writeMessage(w, http.StatusInternalServerError, msgInternal)
		return
	}

	h.logger.Info(r.Context(), "user registered", "username", u.UserName, "id", u.ID)
	writeMessage(w, http.StatusCreated, msgCreated)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	req, err := decodeCredentials(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, msgMissingField)
		return
	}

	pair, err := h.users.Login(r.Context(), req.Username, req.Password)
	switch {
	case err == nil:
	case errors.Is(err, common.ErrorMissingField):
		writeMessage(w, http.StatusBadRequest, msgMissingField)
		return
	case errors.Is(err, common.ErrorInvalidCredentials):
		h.logger.Info(r.Context(), "login rejected", "username", req.Username)
		writeMessage(w, http.StatusUnauthorized, msgInvalidCredentials)
		return
	default:
		h.logger.Error(r.Context(), "login failed", "error", err.Error())
		writeMessage(w, http.StatusInternalServerError, msgInternal)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Message:      msgLoginOK,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// Refresh must sit behind RequireToken(..., auth.TokenTypeRefresh, ...).
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	id, ok := IdentityFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	access, err := h.users.Refresh(r.Context(), id)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			writeMessage(w, http.StatusUnauthorized, msgUnauthorized)
			return
		}
		h.logger.Error(r.Context(), "refresh failed", "error", err.Error())
		writeMessage(w, http.StatusInternalServerError, msgInternal)
		return
	}

	writeJSON(w, http.StatusOK, refreshResponse{AccessToken: access})
}

// Protected must sit behind RequireToken(..., auth.TokenTypeAccess, ...).
func (h *Handler) Protected(w http.ResponseWriter, r *http.Request) {
	id, ok := IdentityFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	writeMessage(w, http.StatusOK, fmt.Sprintf("Hello %s, welcome to the success page!", id.Claims.Username))
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if h.health != nil {
		if err := h.health.Ping(r.Context()); err != nil {
			h.logger.Warn(r.Context(), "health check failed", "error", err.Error())
			writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}
