package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"es-server/export"
	services "es-server/service"

	"go.uber.org/zap"
)

const (
	STATUS_OK             = "ok"
	STATUS_STALE          = "stale"
	STATUS_UNAVAILABLE    = "unavailable"
	STATUS_NOT_READY      = "not_ready"
	STATUS_TOKEN_REQUIRED = "token_required"
)

const TOKEN_REQUIRED_MESSAGE = "Please set a PredictHQ API Token."

// StatusResponse is the body of every short-circuited request.
type StatusResponse struct {
	Status   string   `json:"status"`
	Message  string   `json:"message,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, logger *zap.Logger, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("[Handlers] Error encoding response", zap.Error(err))
	}
}

// writeServiceError maps service errors onto responses. Missing credentials
// and incomplete selections are normal states of the dashboard, not failures.
func writeServiceError(w http.ResponseWriter, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, services.ErrMissingCredential):
		writeJSON(w, logger, http.StatusOK, StatusResponse{Status: STATUS_TOKEN_REQUIRED, Message: TOKEN_REQUIRED_MESSAGE})
	case errors.Is(err, services.ErrNotReady):
		resp := StatusResponse{Status: STATUS_NOT_READY}
		var notReady *services.NotReadyError
		if errors.As(err, &notReady) {
			resp.Warnings = notReady.Warnings
		}
		writeJSON(w, logger, http.StatusOK, resp)
	case errors.Is(err, services.ErrSessionNotFound):
		writeJSON(w, logger, http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, services.ErrInvalidSelection), errors.Is(err, export.ErrUnsupportedFormat):
		writeJSON(w, logger, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		logger.Error("[Handlers] Internal error", zap.Error(err))
		writeJSON(w, logger, http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
	}
}
