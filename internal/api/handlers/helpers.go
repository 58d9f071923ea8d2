package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"consolidation-planner/internal/domain"

	"github.com/sirupsen/logrus"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.WithFields(logrus.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
		}).WithError(err).Warn("encode failed")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// writeServiceError maps planning errors to HTTP statuses. Anything
// unrecognized is logged and reported as a 500 without details.
func writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	var cfgErr *domain.ConfigurationError
	switch {
	case errors.As(err, &cfgErr):
		writeError(w, r, http.StatusBadRequest, cfgErr.Error())
	case errors.Is(err, domain.ErrInfeasibleSelection), errors.Is(err, domain.ErrTooManyRoutes):
		writeError(w, r, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, domain.ErrPlanNotFound):
		writeError(w, r, http.StatusNotFound, "plan not found")
	case errors.Is(err, context.DeadlineExceeded):
		writeError(w, r, http.StatusServiceUnavailable, "planning timed out")
	default:
		logrus.WithError(err).WithField("op", op).Error("request failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}
