package handlers

import "net/http"

// NewHealthHandler returns GET /health handler. users names the credential source
// ("static" for the seeded admin, "postgres" otherwise).
func NewHealthHandler(users string) http.HandlerFunc {
	body := map[string]string{"status": "ok", "users": users}
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, body)
	}
}
