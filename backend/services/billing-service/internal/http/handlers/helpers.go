package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"meterdesk/backend/services/billing-service/internal/service"
)

const maxBodyBytes = 64 << 10

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(dst)
}

// writeServiceError maps service errors to HTTP statuses.
func writeServiceError(w http.ResponseWriter, logger *zap.Logger, err error, action string) {
	switch {
	case service.IsClientError(err):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNumberExhausted):
		logger.Warn("invoice numbers exhausted", zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, "invoice number unavailable, retry")
	case errors.Is(err, service.ErrNoTariff):
		writeError(w, http.StatusServiceUnavailable, "no tariff configured, send rate_per_reading")
	default:
		logger.Error(action+" failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, action+" failed")
	}
}
