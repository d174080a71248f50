package session

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/presence/internal/http/respond"
	"github.com/MrJamesThe3rd/presence/internal/session"
	"github.com/MrJamesThe3rd/presence/internal/validation"
)

type Handler struct {
	sessions *session.Manager
}

func NewHandler(sessions *session.Manager) *Handler {
	return &Handler{sessions: sessions}
}

// Routes registers the public login route.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.login)
}

// ProtectedRoutes registers the routes that need an authenticated session.
func (h *Handler) ProtectedRoutes(r chi.Router) {
	r.Delete("/", h.logout)
	r.Get("/", h.current)
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type sessionResponse struct {
	Token     string     `json:"token,omitempty"`
	Username  string     `json:"username"`
	Name      string     `json:"name"`
	Role      string     `json:"role"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

func toResponse(s *session.Session, token string) sessionResponse {
	resp := sessionResponse{
		Token:    token,
		Username: s.Username,
		Name:     s.Name,
		Role:     s.Role,
	}

	if !s.ExpiresAt.IsZero() {
		resp.ExpiresAt = new(s.ExpiresAt)
	}

	return resp
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := validation.Struct(req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	s, err := h.sessions.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, session.ErrMissingCredentials) {
			respond.Error(w, http.StatusBadRequest, err.Error())
			return
		}

		respond.BackendError(w, err)

		return
	}

	token, err := h.sessions.Issue(s)
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(s, token))
}

func (h *Handler) current(w http.ResponseWriter, r *http.Request) {
	s, ok := session.FromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "not logged in")
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(s, ""))
}

// logout revokes the current session token.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if s, ok := session.FromContext(r.Context()); ok {
		h.sessions.Revoke(s.ID)
	}

	w.WriteHeader(http.StatusNoContent)
}
