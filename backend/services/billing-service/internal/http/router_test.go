package httpserver

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRouter_MethodGuard(t *testing.T) {
	t.Parallel()

	called := false
	router := NewRouter(Routes{
		Quote: func(w http.ResponseWriter, r *http.Request) {
			called = true
			w.WriteHeader(http.StatusOK)
		},
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/billing/invoices/quote", nil))
	if got, want := rec.Code, http.StatusMethodNotAllowed; got != want {
		t.Fatalf("status=%d want %d", got, want)
	}
	if got, want := rec.Header().Get("Allow"), http.MethodPost; got != want {
		t.Fatalf("allow=%q want %q", got, want)
	}
	if called {
		t.Fatalf("handler called for wrong method")
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/billing/invoices/quote", nil))
	if got, want := rec.Code, http.StatusOK; got != want {
		t.Fatalf("status=%d want %d", got, want)
	}
}

func TestRouter_UnregisteredRouteIsNotFound(t *testing.T) {
	t.Parallel()

	router := NewRouter(Routes{})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/billing/invoices", nil))
	if got, want := rec.Code, http.StatusNotFound; got != want {
		t.Fatalf("status=%d want %d", got, want)
	}
}
