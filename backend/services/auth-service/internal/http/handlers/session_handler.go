package handlers

import (
	"net/http"

	"meterdesk/backend/services/auth-service/internal/service"
)

type sessionResponse struct {
	Authenticated bool   `json:"authenticated"`
	UserID        int64  `json:"user_id"`
	Email         string `json:"email"`
	Role          string `json:"role"`
}

// NewSessionHandler handles GET /auth/session.
func NewSessionHandler(authService *service.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := authService.Session(bearerToken(r))
		if err != nil {
			writeError(w, http.StatusUnauthorized, "not authenticated")
			return
		}
		writeJSON(w, http.StatusOK, sessionResponse{
			Authenticated: true,
			UserID:        claims.UserID,
			Email:         claims.Email,
			Role:          claims.Role,
		})
	}
}
