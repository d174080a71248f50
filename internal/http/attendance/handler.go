package attendance

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/presence/internal/attendance"
	"github.com/MrJamesThe3rd/presence/internal/backend"
	"github.com/MrJamesThe3rd/presence/internal/dashboard"
	"github.com/MrJamesThe3rd/presence/internal/export"
	"github.com/MrJamesThe3rd/presence/internal/exportlog"
	"github.com/MrJamesThe3rd/presence/internal/http/respond"
	"github.com/MrJamesThe3rd/presence/internal/session"
)

type Handler struct {
	client  *backend.Client
	exports *export.Service
	history *exportlog.Service
	now     func() time.Time
}

// NewHandler creates the attendance handler. history may be nil, in which
// case exports are not recorded.
func NewHandler(client *backend.Client, exports *export.Service, history *exportlog.Service, now func() time.Time) *Handler {
	if now == nil {
		now = time.Now
	}

	return &Handler{
		client:  client,
		exports: exports,
		history: history,
		now:     now,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/export", h.export)
}

// Stats proxies the backend statistics object.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.clientFor(r).Stats(r.Context())
	if err != nil {
		respond.BackendError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if _, err := w.Write(stats); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q, err := ParseQuery(r.URL.Query())
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	view, err := dashboard.Fetch(r.Context(), h.clientFor(r), h.now, q)
	if err != nil {
		respond.BackendError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toViewResponse(view))
}

func (h *Handler) export(w http.ResponseWriter, r *http.Request) {
	q, err := ParseQuery(r.URL.Query())
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	view, err := dashboard.Fetch(r.Context(), h.clientFor(r), h.now, q)
	if err != nil {
		respond.BackendError(w, err)
		return
	}

	file, err := h.exports.Export(format, view.Rows, q.Scope, q.Facets)
	if err != nil {
		if errors.Is(err, export.ErrNoRows) {
			respond.Error(w, http.StatusUnprocessableEntity, export.NoRowsNotice)
			return
		}

		respond.Error(w, http.StatusInternalServerError, "internal error")

		return
	}

	if h.history != nil {
		var username string
		if s, ok := session.FromContext(r.Context()); ok {
			username = s.Username
		}

		if _, err := h.history.Record(r.Context(), file, username); err != nil {
			slog.Error("failed to record export", "file", file.Name, "error", err)
		}
	}

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Data)))

	if _, err := w.Write(file.Data); err != nil {
		slog.Error("failed to write export", "error", err)
	}
}

// clientFor returns the backend client authenticated as the request session.
func (h *Handler) clientFor(r *http.Request) *backend.Client {
	if s, ok := session.FromContext(r.Context()); ok && s.BackendToken != "" {
		return h.client.WithToken(s.BackendToken)
	}

	return h.client
}

// ParseQuery reads scope, checkin, checkout, department, q and status.
func ParseQuery(values url.Values) (dashboard.Query, error) {
	scope, err := attendance.ParseScope(values.Get("scope"))
	if err != nil {
		return dashboard.Query{}, err
	}

	checkIn, err := parseFlag(values, "checkin")
	if err != nil {
		return dashboard.Query{}, err
	}

	checkOut, err := parseFlag(values, "checkout")
	if err != nil {
		return dashboard.Query{}, err
	}

	status, err := attendance.ParseStatus(values.Get("status"))
	if err != nil {
		return dashboard.Query{}, err
	}

	return dashboard.Query{
		Scope:  scope,
		Facets: attendance.Facets{CheckIn: checkIn, CheckOut: checkOut},
		Filter: attendance.Filter{
			Department: values.Get("department"),
			Query:      values.Get("q"),
			Status:     status,
		},
	}, nil
}

func parseFlag(values url.Values, key string) (bool, error) {
	v := values.Get(key)
	if v == "" {
		return false, nil
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q", key, v)
	}

	return b, nil
}
