package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"meterdesk/backend/services/auth-service/internal/service"
)

func loginMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, service.ErrMissingCredentials):
		return "Both email and password are required", true
	case errors.Is(err, service.ErrInvalidEmail):
		return "Please enter a valid email", true
	case errors.Is(err, service.ErrPasswordTooShort):
		return "Password must be at least 6 characters", true
	default:
		return "", false
	}
}

// NewLoginHandler handles POST /auth/login.
func NewLoginHandler(authService *service.AuthService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req service.LoginInput
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		result, err := authService.Login(r.Context(), req)
		if err != nil {
			if msg, ok := loginMessage(err); ok {
				writeError(w, http.StatusBadRequest, msg)
				return
			}
			if errors.Is(err, service.ErrInvalidCredentials) {
				writeError(w, http.StatusUnauthorized, "Invalid credentials")
				return
			}
			logger.Error("login failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to login")
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}
