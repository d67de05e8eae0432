package checks

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/upwatch/upwatch/internal/obs"
	"github.com/upwatch/upwatch/internal/validate"
)

// Error bodies kept verbatim from the legacy API so existing clients keep
// parsing them.
const (
	msgBadRequest  = "You have a problem in your request"
	msgAuthFailure = "Authentication problem!"
	msgQuota       = "User has already reached max check limit!"
	msgNotFound    = "Requested token was not found!"
	msgNoFields    = "You must provide at least one field to update!"
	msgServerError = "There was a problem in the server side!"
)

type Handler struct {
	log *zap.Logger
	uc  *Usecase
}

func NewHandler(log *zap.Logger, uc *Usecase) *Handler {
	return &Handler{log: log, uc: uc}
}

// Register mounts the check endpoints. chi answers 405 for any verb
// outside GET/POST/PUT/DELETE on the route.
func (h *Handler) Register(r chi.Router) {
	r.Route("/v1/checks", func(r chi.Router) {
		r.Get("/", h.fetch)
		r.Post("/", h.create)
		r.Put("/", h.modify)
		r.Delete("/", h.delete)
	})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	op, start := "create", time.Now()
	body, ok := decodeBody(w, r, op)
	if !ok {
		return
	}
	c, err := h.uc.Create(r.Context(), callerToken(r), ParseCreateInput(body))
	if err != nil {
		h.writeErr(r, w, op, err, start)
		return
	}
	h.writeJSON(w, op, http.StatusOK, c, start)
}

func (h *Handler) fetch(w http.ResponseWriter, r *http.Request) {
	op, start := "fetch", time.Now()
	id := validate.CheckID(queryID(r))
	c, err := h.uc.Fetch(r.Context(), callerToken(r), id)
	if err != nil {
		h.writeErr(r, w, op, err, start)
		return
	}
	h.writeJSON(w, op, http.StatusOK, c, start)
}

func (h *Handler) modify(w http.ResponseWriter, r *http.Request) {
	op, start := "modify", time.Now()
	body, ok := decodeBody(w, r, op)
	if !ok {
		return
	}
	c, err := h.uc.Modify(r.Context(), callerToken(r), ParseModifyInput(body))
	if err != nil {
		h.writeErr(r, w, op, err, start)
		return
	}
	h.writeJSON(w, op, http.StatusOK, c, start)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	op, start := "delete", time.Now()
	id := validate.CheckID(queryID(r))
	if err := h.uc.Delete(r.Context(), callerToken(r), id); err != nil {
		h.writeErr(r, w, op, err, start)
		return
	}
	h.writeJSON(w, op, http.StatusOK, map[string]any{}, start)
}

// callerToken returns the opaque credential from the token header.
func callerToken(r *http.Request) string { return r.Header.Get("token") }

func queryID(r *http.Request) any {
	if !r.URL.Query().Has("id") {
		return nil
	}
	return r.URL.Query().Get("id")
}

func decodeBody(w http.ResponseWriter, r *http.Request, op string) (map[string]any, bool) {
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, msgBadRequest)
		obs.CheckOps.WithLabelValues(op, "400").Inc()
		return nil, false
	}
	return body, true
}

func (h *Handler) writeJSON(w http.ResponseWriter, op string, status int, v any, start time.Time) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error("encode response", zap.String("op", op), zap.Error(err))
	}
	h.observe(op, status, start)
}

func (h *Handler) writeErr(r *http.Request, w http.ResponseWriter, op string, err error, start time.Time) {
	status, msg := mapError(err)
	if status == http.StatusInternalServerError {
		obs.WithTrace(r.Context(), h.log).Error("check operation failed",
			zap.String("op", op), zap.Error(err))
	}
	writeError(w, status, msg)
	h.observe(op, status, start)
}

func (h *Handler) observe(op string, status int, start time.Time) {
	obs.CheckOps.WithLabelValues(op, strconv.Itoa(status)).Inc()
	obs.CheckOpDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

func mapError(err error) (int, string) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest, msgBadRequest
	case errors.Is(err, ErrNoFields):
		return http.StatusBadRequest, msgNoFields
	case errors.Is(err, ErrAuth):
		return http.StatusForbidden, msgAuthFailure
	case errors.Is(err, ErrQuotaExceeded):
		// The legacy API answered 401 here; kept for client compatibility.
		return http.StatusUnauthorized, msgQuota
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, msgNotFound
	default:
		return http.StatusInternalServerError, msgServerError
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
