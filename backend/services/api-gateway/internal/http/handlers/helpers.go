package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"meterdesk/backend/services/api-gateway/internal/clients"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

// writeUpstream relays an upstream reply, keeping its content type and download headers.
func writeUpstream(w http.ResponseWriter, resp *clients.Response) {
	w.Header().Set("Content-Type", resp.ContentType())
	for _, h := range []string{"Content-Disposition", "X-Invoice-Number"} {
		if v := resp.Header.Get(h); v != "" {
			w.Header().Set(h, v)
		}
	}
	w.WriteHeader(resp.StatusCode)
	if resp.Body != nil {
		_, _ = w.Write(resp.Body)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return nil, false
	}
	return body, true
}
