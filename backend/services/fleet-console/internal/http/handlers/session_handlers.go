package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"gestaocombustivel/backend/services/fleet-console/internal/auth"
	"gestaocombustivel/backend/services/fleet-console/internal/session"
)

// SessionController is the auth surface the gateway exposes.
type SessionController interface {
	IsLoading() bool
	IsAuthenticated() bool
	Session() session.Session
	Login(ctx context.Context, email, password string) error
	Logout(ctx context.Context) error
	TokenInfo() (*auth.TokenInfo, error)
}

// RouteSource yields the last redirect issued by the controller.
type RouteSource interface {
	Last() string
}

// SessionHandlers serves sign-in state, login and logout.
type SessionHandlers struct {
	ctrl   SessionController
	routes RouteSource
	logger *zap.Logger
}

// NewSessionHandlers returns handler struct.
func NewSessionHandlers(ctrl SessionController, routes RouteSource, logger *zap.Logger) *SessionHandlers {
	return &SessionHandlers{ctrl: ctrl, routes: routes, logger: logger}
}

type sessionState struct {
	IsAuthenticated bool                 `json:"isAuthenticated"`
	IsLoading       bool                 `json:"isLoading"`
	User            *session.UserProfile `json:"user"`
	Redirect        string               `json:"redirect,omitempty"`
	ExpiresAt       *time.Time           `json:"expiresAt,omitempty"`
}

func (h *SessionHandlers) state() sessionState {
	st := sessionState{
		IsAuthenticated: h.ctrl.IsAuthenticated(),
		IsLoading:       h.ctrl.IsLoading(),
	}
	if h.routes != nil {
		st.Redirect = h.routes.Last()
	}
	if st.IsAuthenticated {
		st.User = h.ctrl.Session().User
		if info, err := h.ctrl.TokenInfo(); err == nil && !info.ExpiresAt.IsZero() {
			exp := info.ExpiresAt
			st.ExpiresAt = &exp
		}
	}
	return st
}

// State handles GET /session.
func (h *SessionHandlers) State(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.state())
}

// Login handles POST /session/login.
func (h *SessionHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"senha"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and senha are required")
		return
	}

	if err := h.ctrl.Login(r.Context(), req.Email, req.Password); err != nil {
		writeUpstreamError(w, h.logger, "login", err)
		return
	}
	writeJSON(w, http.StatusOK, h.state())
}

// Logout handles POST /session/logout.
func (h *SessionHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.ctrl.Logout(r.Context()); err != nil {
		h.logger.Error("logout failed to remove the persisted session", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to sign out")
		return
	}
	writeJSON(w, http.StatusOK, h.state())
}
