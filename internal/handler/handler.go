// Package handler contains the chi HTTP handlers of the activities API.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Shivanand-hulikatti/activity-board/internal/model"
	"github.com/Shivanand-hulikatti/activity-board/internal/repository"
	"github.com/Shivanand-hulikatti/activity-board/internal/service"
)

// ActivityHandler holds all HTTP handlers for the activities API.
type ActivityHandler struct {
	svc *service.ActivityService
	log *zap.Logger
}

// NewActivityHandler constructs an ActivityHandler.
func NewActivityHandler(svc *service.ActivityService, log *zap.Logger) *ActivityHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &ActivityHandler{svc: svc, log: log}
}

// Routes mounts the activity endpoints on r.
func (h *ActivityHandler) Routes(r chi.Router) {
	r.Route("/activities", func(r chi.Router) {
		r.Get("/", h.ListActivities)
		r.Post("/{activity_name}/signup", h.Signup)
		r.Delete("/{activity_name}/unregister", h.Unregister)
	})
}

// ─── Helper utilities ─────────────────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, model.ErrorResponse{Detail: detail})
}

// activityParam returns the decoded activity name. chi matches on the raw
// path when the request carries escaped slashes, so decode in that case.
func activityParam(r *http.Request) (string, bool) {
	raw := chi.URLParam(r, "activity_name")
	if r.URL.RawPath == "" {
		return raw, true
	}
	name, err := url.PathUnescape(raw)
	if err != nil {
		return "", false
	}
	return name, true
}

// ─── Handlers ─────────────────────────────────────────────────────────────────

// ListActivities handles GET /activities
func (h *ActivityHandler) ListActivities(w http.ResponseWriter, r *http.Request) {
	catalog, err := h.svc.ListActivities(r.Context())
	if err != nil {
		h.log.Error("list activities failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to list activities")
		return
	}
	writeJSON(w, http.StatusOK, catalog)
}

// Signup handles POST /activities/{activity_name}/signup?email=
func (h *ActivityHandler) Signup(w http.ResponseWriter, r *http.Request) {
	h.enrolment(w, r, h.svc.Signup)
}

// Unregister handles DELETE /activities/{activity_name}/unregister?email=
func (h *ActivityHandler) Unregister(w http.ResponseWriter, r *http.Request) {
	h.enrolment(w, r, h.svc.Unregister)
}

// enrolment runs a signup or unregister call and maps domain errors to the
// status codes and detail strings clients expect.
func (h *ActivityHandler) enrolment(w http.ResponseWriter, r *http.Request, op func(context.Context, string, string) (string, error)) {
	activity, ok := activityParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid activity name")
		return
	}
	if !r.URL.Query().Has("email") {
		writeError(w, http.StatusUnprocessableEntity, "email query parameter is required")
		return
	}

	msg, err := op(r.Context(), activity, r.URL.Query().Get("email"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailRequired):
			writeError(w, http.StatusUnprocessableEntity, "email query parameter is required")
		case errors.Is(err, repository.ErrNotFound):
			writeError(w, http.StatusNotFound, "Activity not found")
		case errors.Is(err, repository.ErrAlreadySignedUp):
			writeError(w, http.StatusBadRequest, "Student already signed up for this activity")
		case errors.Is(err, repository.ErrNotSignedUp):
			writeError(w, http.StatusBadRequest, "Student not signed up for this activity")
		case errors.Is(err, repository.ErrActivityFull):
			writeError(w, http.StatusBadRequest, "Activity is full")
		default:
			h.log.Error("enrolment change failed",
				zap.Error(err),
				zap.String("method", r.Method),
				zap.String("activity", activity),
			)
			writeError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, model.MessageResponse{Message: msg})
}

// ─── Health check ─────────────────────────────────────────────────────────────

// HealthCheck handles GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Redirect returns a handler that sends the browser to target, the way the
// API root points visitors at the board.
func Redirect(target string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, target, http.StatusTemporaryRedirect)
	}
}
