package employee

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/presence/internal/backend"
	"github.com/MrJamesThe3rd/presence/internal/http/respond"
	"github.com/MrJamesThe3rd/presence/internal/session"
)

type Handler struct {
	client *backend.Client
}

func NewHandler(client *backend.Client) *Handler {
	return &Handler{client: client}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	client := h.client
	if s, ok := session.FromContext(r.Context()); ok && s.BackendToken != "" {
		client = client.WithToken(s.BackendToken)
	}

	employees, err := client.Employees(r.Context())
	if err != nil {
		respond.BackendError(w, err)
		return
	}

	if employees == nil {
		employees = []backend.Employee{}
	}

	respond.JSON(w, http.StatusOK, employees)
}
