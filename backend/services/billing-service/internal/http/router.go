package httpserver

import "net/http"

// Routes groups HTTP handlers.
type Routes struct {
	Quote   http.HandlerFunc
	Issue   http.HandlerFunc
	PDF     http.HandlerFunc
	Live    http.HandlerFunc
	Health  http.HandlerFunc
	Metrics http.Handler
}

// NewRouter registers service endpoints.
func NewRouter(routes Routes) http.Handler {
	mux := http.NewServeMux()
	if routes.Quote != nil {
		mux.Handle("/billing/invoices/quote", method(http.MethodPost, routes.Quote))
	}
	if routes.Issue != nil {
		mux.Handle("/billing/invoices", method(http.MethodPost, routes.Issue))
	}
	if routes.PDF != nil {
		mux.Handle("/billing/invoices/pdf", method(http.MethodPost, routes.PDF))
	}
	if routes.Live != nil {
		mux.Handle("/billing/invoices/live", method(http.MethodGet, routes.Live))
	}
	if routes.Health != nil {
		mux.Handle("/health", method(http.MethodGet, routes.Health))
	}
	if routes.Metrics != nil {
		mux.Handle("/metrics", routes.Metrics)
	}
	return mux
}

func method(expected string, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != expected {
			w.Header().Set("Allow", expected)
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		handler(w, r)
	}
}
