package httpserver

import (
	"net/http"

	"meterdesk/backend/services/api-gateway/internal/http/handlers"
	"meterdesk/backend/services/api-gateway/internal/http/middleware"
)

// RouterDeps collects handler dependencies.
type RouterDeps struct {
	AuthHandlers    *handlers.AuthHandlers
	BillingHandlers *handlers.BillingHandlers
	LiveProxy       http.HandlerFunc
	HealthHandler   http.HandlerFunc
}

// NewRouter wires HTTP routes with middleware. Everything under /api/billing and the session
// check require a valid token.
func NewRouter(deps RouterDeps, authMiddleware middleware.Middleware) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("/health", method(http.MethodGet, deps.HealthHandler))
	mux.Handle("/api/auth/login", method(http.MethodPost, http.HandlerFunc(deps.AuthHandlers.Login)))

	authenticated := func(handler http.HandlerFunc) http.Handler {
		return middleware.Chain(handler, authMiddleware)
	}

	mux.Handle("/api/auth/session", method(http.MethodGet, authenticated(deps.AuthHandlers.Session)))
	mux.Handle("/api/billing/invoices/quote", method(http.MethodPost, authenticated(deps.BillingHandlers.Quote)))
	mux.Handle("/api/billing/invoices", method(http.MethodPost, authenticated(deps.BillingHandlers.Issue)))
	mux.Handle("/api/billing/invoices/pdf", method(http.MethodPost, authenticated(deps.BillingHandlers.PDF)))
	if deps.LiveProxy != nil {
		mux.Handle("/api/billing/invoices/live", method(http.MethodGet, authenticated(deps.LiveProxy)))
	}

	return mux
}

func method(expected string, handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != expected {
			w.Header().Set("Allow", expected)
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		handler.ServeHTTP(w, r)
	})
}
