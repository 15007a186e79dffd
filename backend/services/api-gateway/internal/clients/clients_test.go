package clients

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestBillingClient_ForwardsBodyAndUser(t *testing.T) {
	t.Parallel()

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got, want := r.URL.Path, "/billing/invoices/pdf"; got != want {
			t.Errorf("path=%q want %q", got, want)
		}
		if got, want := r.Header.Get("X-User-ID"), "42"; got != want {
			t.Errorf("user header=%q want %q", got, want)
		}
		body, _ := io.ReadAll(r.Body)
		if got, want := string(body), `{"current_reading":1}`; got != want {
			t.Errorf("body=%q want %q", got, want)
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("%PDF-1.3"))
	}))
	defer upstream.Close()

	client := NewBillingClient(upstream.URL+"/", NewDefaultHTTPClient(time.Second))
	resp, err := client.PDF(context.Background(), 42, []byte(`{"current_reading":1}`))
	if err != nil {
		t.Fatalf("PDF: %v", err)
	}
	if got, want := resp.StatusCode, http.StatusCreated; got != want {
		t.Fatalf("status=%d want %d", got, want)
	}
	if got, want := resp.ContentType(), "application/pdf"; got != want {
		t.Fatalf("content type=%q want %q", got, want)
	}
}

func TestAuthClient_SessionSendsBearer(t *testing.T) {
	t.Parallel()

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got, want := r.Header.Get("Authorization"), "Bearer abc"; got != want {
			t.Errorf("authorization=%q want %q", got, want)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer upstream.Close()

	resp, err := NewAuthClient(upstream.URL, NewDefaultHTTPClient(time.Second)).Session(context.Background(), "abc")
	if err != nil {
		t.Fatalf("Session: %v", err)
	}
	if got, want := resp.StatusCode, http.StatusOK; got != want {
		t.Fatalf("status=%d want %d", got, want)
	}
	if got, want := resp.ContentType(), "application/json"; got != want {
		t.Fatalf("default content type=%q want %q", got, want)
	}
}
