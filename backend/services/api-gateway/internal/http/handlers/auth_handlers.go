package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"meterdesk/backend/services/api-gateway/internal/clients"
	"meterdesk/backend/services/api-gateway/internal/http/middleware"
)

// AuthHandlers proxies auth-service endpoints.
type AuthHandlers struct {
	client *clients.AuthClient
	logger *zap.Logger
}

// NewAuthHandlers returns handler struct.
func NewAuthHandlers(client *clients.AuthClient, logger *zap.Logger) *AuthHandlers {
	return &AuthHandlers{client: client, logger: logger}
}

// Login handles POST /api/auth/login.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	resp, err := h.client.Login(r.Context(), body)
	if err != nil {
		h.logger.Error("login proxy failed", zap.Error(err))
		writeError(w, http.StatusBadGateway, "auth service unavailable")
		return
	}
	writeUpstream(w, resp)
}

// Session handles GET /api/auth/session.
func (h *AuthHandlers) Session(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	resp, err := h.client.Session(r.Context(), principal.Token)
	if err != nil {
		h.logger.Error("session proxy failed", zap.Error(err))
		writeError(w, http.StatusBadGateway, "auth service unavailable")
		return
	}
	writeUpstream(w, resp)
}
