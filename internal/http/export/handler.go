package export

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/presence/internal/exportlog"
	"github.com/MrJamesThe3rd/presence/internal/http/respond"
)

type Handler struct {
	svc *exportlog.Service
}

func NewHandler(svc *exportlog.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
}

type entryResponse struct {
	ID        uuid.UUID `json:"id"`
	Filename  string    `json:"filename"`
	Format    string    `json:"format"`
	Layout    string    `json:"layout"`
	Scope     string    `json:"scope"`
	Rows      int       `json:"rows"`
	Username  string    `json:"username,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func toResponse(e *exportlog.Entry) entryResponse {
	return entryResponse{
		ID:        e.ID,
		Filename:  e.Filename,
		Format:    e.Format,
		Layout:    e.Layout,
		Scope:     e.Scope,
		Rows:      e.Rows,
		Username:  e.Username,
		CreatedAt: e.CreatedAt,
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := exportlog.ListFilter{}

	if s := r.URL.Query().Get("limit"); s != "" {
		limit, err := strconv.Atoi(s)
		if err != nil {
			respond.Error(w, http.StatusBadRequest, "invalid limit")
			return
		}

		filter.Limit = limit
	}

	if s := r.URL.Query().Get("username"); s != "" {
		filter.Username = new(s)
	}

	entries, err := h.svc.List(r.Context(), filter)
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	resp := make([]entryResponse, len(entries))
	for i, e := range entries {
		resp[i] = toResponse(e)
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	e, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, exportlog.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "export not found")
			return
		}

		respond.Error(w, http.StatusInternalServerError, "internal error")

		return
	}

	respond.JSON(w, http.StatusOK, toResponse(e))
}
