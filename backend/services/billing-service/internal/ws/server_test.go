package ws

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"meterdesk/backend/services/billing-service/internal/service"
)

func TestServer_LiveQuotes(t *testing.T) {
	t.Parallel()

	tariffs := service.NewTariffService(nil, decimal.NewFromInt(1), zap.NewNop())
	numbers := service.NewNumberAllocator("INV", time.Hour, service.NewMemoryReserver())
	quotes := service.NewInvoiceService(tariffs, numbers, service.InvoiceOptions{}, zap.NewNop())

	srv := NewServer(NewQuoteProcessor(quotes, zap.NewNop()), time.Second, zap.NewNop())
	ts := httptest.NewServer(http.HandlerFunc(srv.HandleLive))
	defer ts.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http"), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	frames := []struct {
		body      string
		wantTotal string
		wantError bool
	}{
		{body: `{"current_reading": 150, "previous_reading": 100, "rate_per_reading": "2", "tax_scheme": "UNIFIED"}`, wantTotal: "118.00"},
		{body: `{"current_reading": 150, "previous_reading": 100, "rate_per_reading": "2", "include_rent": true, "rent_amount": 500, "free_copies": 10}`, wantTotal: "684.40"},
		{body: `{"current_reading": 150, "tax_scheme": "VAT"}`, wantError: true},
		{body: `not json`, wantError: true},
	}

	for i, frame := range frames {
		if err := conn.WriteMessage(websocket.TextMessage, []byte(frame.body)); err != nil {
			t.Fatalf("frame %d: write: %v", i, err)
		}
		_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, raw, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("frame %d: read: %v", i, err)
		}

		var reply struct {
			Quote *struct {
				Display struct {
					GrandTotal string `json:"grand_total"`
				} `json:"display"`
			} `json:"quote"`
			Error string `json:"error"`
		}
		if err := json.Unmarshal(raw, &reply); err != nil {
			t.Fatalf("frame %d: decode: %v", i, err)
		}
		if frame.wantError {
			if reply.Error == "" || reply.Quote != nil {
				t.Fatalf("frame %d: want error reply, got %s", i, raw)
			}
			continue
		}
		if reply.Quote == nil {
			t.Fatalf("frame %d: missing quote: %s", i, raw)
		}
		if got, want := reply.Quote.Display.GrandTotal, frame.wantTotal; got != want {
			t.Fatalf("frame %d: grand total=%q want %q", i, got, want)
		}
	}
}

func TestServer_CloseEndsLiveConnections(t *testing.T) {
	t.Parallel()

	tariffs := service.NewTariffService(nil, decimal.NewFromInt(1), zap.NewNop())
	numbers := service.NewNumberAllocator("INV", time.Hour, service.NewMemoryReserver())
	quotes := service.NewInvoiceService(tariffs, numbers, service.InvoiceOptions{}, zap.NewNop())

	srv := NewServer(NewQuoteProcessor(quotes, zap.NewNop()), time.Second, zap.NewNop())
	ts := httptest.NewServer(http.HandlerFunc(srv.HandleLive))
	defer ts.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http"), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// one round trip so the server side is inside its read loop
	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"current_reading": 1}`)); err != nil {
		t.Fatalf("write: %v", err)
	}
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := conn.ReadMessage(); err != nil {
		t.Fatalf("read: %v", err)
	}

	srv.Close()

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err = conn.ReadMessage()
	if !websocket.IsCloseError(err, websocket.CloseGoingAway) {
		t.Fatalf("err=%v want going-away close", err)
	}
}
