package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/ttnguyen-dev/bankcore/internal/commons"
	"github.com/ttnguyen-dev/bankcore/internal/logger"
	"github.com/ttnguyen-dev/bankcore/internal/metrics"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// statusForError maps the closed error set to HTTP statuses. Anything not in
// the set is a server fault.
func statusForError(err error) int {
	switch {
	case errors.Is(err, commons.ErrRecordNotFound), errors.Is(err, commons.ErrAccountNotFound):
		return http.StatusNotFound
	case errors.Is(err, commons.ErrInsufficientBalance), errors.Is(err, commons.ErrAuthorizationDenied):
		return http.StatusUnprocessableEntity
	case errors.Is(err, commons.ErrDuplicateRecord):
		return http.StatusConflict
	case errors.Is(err, commons.ErrInvalidAmount), errors.Is(err, commons.ErrInvalidLoanTransition), errors.Is(err, commons.ErrInvalidPin):
		return http.StatusBadRequest
	case errors.Is(err, commons.ErrTransferFailed):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// statusFor refines statusForError with the envelope message: validation
// failures are reported through the envelope rather than a typed error.
func statusFor(err error, message string) int {
	if message == "validation failed" {
		return http.StatusBadRequest
	}
	return statusForError(err)
}

func pathID(r *http.Request, name string) (int64, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New(name + " must be a positive integer")
	}
	return id, nil
}

// requestPrincipal identifies the acting caller from the authenticated
// channel credentials. It is threaded explicitly into every service call
// that records an actor.
func requestPrincipal(r *http.Request) string {
	if id, _, ok := r.BasicAuth(); ok && id != "" {
		return id
	}
	return "anonymous"
}

func logRequest(r *http.Request, payload any) {
	logger.Info("http request", logger.Fields{
		"method":  r.Method,
		"path":    r.URL.Path,
		"query":   r.URL.RawQuery,
		"payload": logger.SanitizePayload(payload),
	})
}

func logResponse(r *http.Request, route string, status int, payload any, start time.Time) {
	metrics.ObserveHTTPRequest(r.Method, route, strconv.Itoa(status), start)
	logger.Info("http response", logger.Fields{
		"method":     r.Method,
		"path":       r.URL.Path,
		"status":     status,
		"durationMs": time.Since(start).Milliseconds(),
		"response":   logger.SanitizePayload(payload),
	})
}

func logError(r *http.Request, err error, extra logger.Fields) {
	fields := logger.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
		"query":  r.URL.RawQuery,
	}
	for k, v := range extra {
		fields[k] = v
	}
	logger.Error("http handler error", err, fields)
}
