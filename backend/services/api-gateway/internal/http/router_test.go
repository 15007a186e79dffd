package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"meterdesk/backend/services/api-gateway/internal/clients"
	"meterdesk/backend/services/api-gateway/internal/http/handlers"
	"meterdesk/backend/services/api-gateway/internal/http/middleware"
)

const testSecret = "gateway-secret"

func testToken(t *testing.T) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": 1,
		"email":   "admin@gmail.com",
		"role":    "admin",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return signed
}

// fakeBilling stands in for billing-service: JSON echo for quotes, a PDF body for /pdf and a
// websocket echo for the live stream.
func fakeBilling(t *testing.T) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}
	mux := http.NewServeMux()
	mux.HandleFunc("/billing/invoices/quote", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"user":"` + r.Header.Get("X-User-ID") + `"}`))
	})
	mux.HandleFunc("/billing/invoices/pdf", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="INV-12345.pdf"`)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("%PDF-1.3"))
	})
	mux.HandleFunc("/billing/invoices/live", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get(middleware.AccessTokenParam) != "" {
			t.Errorf("access token leaked upstream")
		}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			mt, msg, err := conn.ReadMessage()
			if err != nil {
				return
			}
			if err := conn.WriteMessage(mt, append([]byte("user "+r.Header.Get("X-User-ID")+": "), msg...)); err != nil {
				return
			}
		}
	})
	return httptest.NewServer(mux)
}

func newGateway(t *testing.T, billingURL, authURL string) *httptest.Server {
	t.Helper()
	httpClient := clients.NewDefaultHTTPClient(2 * time.Second)
	live, err := handlers.NewLiveProxy(billingURL, zap.NewNop())
	if err != nil {
		t.Fatalf("NewLiveProxy: %v", err)
	}
	router := NewRouter(RouterDeps{
		AuthHandlers:    handlers.NewAuthHandlers(clients.NewAuthClient(authURL, httpClient), zap.NewNop()),
		BillingHandlers: handlers.NewBillingHandlers(clients.NewBillingClient(billingURL, httpClient), zap.NewNop()),
		LiveProxy:       live,
		HealthHandler:   handlers.NewHealthHandler(),
	}, middleware.AuthMiddleware(testSecret))
	return httptest.NewServer(middleware.Chain(router,
		middleware.RecoveryMiddleware(zap.NewNop()),
		middleware.LoggingMiddleware(zap.NewNop()),
	))
}

func TestGateway_BillingRequiresLogin(t *testing.T) {
	t.Parallel()

	billing := fakeBilling(t)
	defer billing.Close()
	gw := newGateway(t, billing.URL, billing.URL)
	defer gw.Close()

	resp, err := http.Post(gw.URL+"/api/billing/invoices/quote", "application/json", strings.NewReader(`{}`))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	resp.Body.Close()
	if got, want := resp.StatusCode, http.StatusUnauthorized; got != want {
		t.Fatalf("status=%d want %d", got, want)
	}
}

func TestGateway_ProxiesQuoteAndPDF(t *testing.T) {
	t.Parallel()

	billing := fakeBilling(t)
	defer billing.Close()
	gw := newGateway(t, billing.URL, billing.URL)
	defer gw.Close()
	token := testToken(t)

	req, _ := http.NewRequest(http.MethodPost, gw.URL+"/api/billing/invoices/quote", strings.NewReader(`{}`))
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	var body map[string]string
	_ = json.NewDecoder(resp.Body).Decode(&body)
	resp.Body.Close()
	if got, want := body["user"], "1"; got != want {
		t.Fatalf("forwarded user=%q want %q", got, want)
	}

	req, _ = http.NewRequest(http.MethodPost, gw.URL+"/api/billing/invoices/pdf", strings.NewReader(`{}`))
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("pdf: %v", err)
	}
	resp.Body.Close()
	if got, want := resp.StatusCode, http.StatusCreated; got != want {
		t.Fatalf("status=%d want %d", got, want)
	}
	if got, want := resp.Header.Get("Content-Type"), "application/pdf"; got != want {
		t.Fatalf("content type=%q want %q", got, want)
	}
	if got := resp.Header.Get("Content-Disposition"); !strings.Contains(got, "INV-12345.pdf") {
		t.Fatalf("content disposition=%q", got)
	}
}

func TestGateway_UpstreamDownIsBadGateway(t *testing.T) {
	t.Parallel()

	billing := fakeBilling(t)
	deadURL := billing.URL
	billing.Close()

	gw := newGateway(t, deadURL, deadURL)
	defer gw.Close()

	resp, err := http.Post(gw.URL+"/api/auth/login", "application/json", strings.NewReader(`{"email":"a@b.c","password":"secret1"}`))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	resp.Body.Close()
	if got, want := resp.StatusCode, http.StatusBadGateway; got != want {
		t.Fatalf("status=%d want %d", got, want)
	}
}

func TestGateway_LiveQuotesThroughProxy(t *testing.T) {
	t.Parallel()

	billing := fakeBilling(t)
	defer billing.Close()
	gw := newGateway(t, billing.URL, billing.URL)
	defer gw.Close()

	wsURL := "ws" + strings.TrimPrefix(gw.URL, "http") + "/api/billing/invoices/live?access_token=" + testToken(t)
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"current_reading":150}`)); err != nil {
		t.Fatalf("write: %v", err)
	}
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got, want := string(msg), `user 1: {"current_reading":150}`; got != want {
		t.Fatalf("reply=%q want %q", got, want)
	}

	if _, _, err := websocket.DefaultDialer.Dial(strings.Split(wsURL, "?")[0], nil); err == nil {
		t.Fatalf("dial without token succeeded")
	}
}
