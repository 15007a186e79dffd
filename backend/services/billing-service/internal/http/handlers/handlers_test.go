package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"meterdesk/backend/services/billing-service/internal/service"
)

const issueBody = `{
	"current_reading": 150,
	"previous_reading": 100,
	"rate_per_reading": "2",
	"include_rent": true,
	"rent_amount": 500,
	"free_copies": 10,
	"tax_scheme": "SPLIT",
	"customer": {"name": "Ravi", "mobile": "9800000000", "address": "12 MG Road"},
	"date": "2024-03-09"
}`

func newTestService() *service.InvoiceService {
	tariffs := service.NewTariffService(nil, decimal.NewFromInt(1), zap.NewNop())
	numbers := service.NewNumberAllocator("INV", time.Hour, service.NewMemoryReserver())
	return service.NewInvoiceService(tariffs, numbers, service.InvoiceOptions{Company: "Acme Copiers"}, zap.NewNop())
}

func TestQuoteHandler(t *testing.T) {
	t.Parallel()

	handler := NewQuoteHandler(newTestService(), zap.NewNop())

	tests := []struct {
		name      string
		body      string
		status    int
		wantTotal string
		wantError string
	}{
		{
			name:      "unified without rent",
			body:      `{"current_reading": 150, "previous_reading": 100, "rate_per_reading": "2", "tax_scheme": "UNIFIED"}`,
			status:    http.StatusOK,
			wantTotal: "118.00",
		},
		{
			name:      "unknown scheme",
			body:      `{"current_reading": 150, "previous_reading": 100, "tax_scheme": "VAT"}`,
			status:    http.StatusBadRequest,
			wantError: "unknown scheme",
		},
		{
			name:      "negative reading",
			body:      `{"current_reading": -1}`,
			status:    http.StatusBadRequest,
			wantError: "current_reading",
		},
		{
			name:      "huge exponent",
			body:      `{"current_reading": "1e30000000", "previous_reading": 100}`,
			status:    http.StatusBadRequest,
			wantError: "current_reading must be <=",
		},
		{
			name:      "negative underflow",
			body:      `{"current_reading": 150, "rate_per_reading": "-1e-400"}`,
			status:    http.StatusBadRequest,
			wantError: "rate_per_reading must be >= 0",
		},
		{
			name:      "malformed body",
			body:      `{`,
			status:    http.StatusBadRequest,
			wantError: "invalid JSON body",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodPost, "/billing/invoices/quote", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			handler(rec, req)

			if got, want := rec.Code, tc.status; got != want {
				t.Fatalf("status=%d want %d body=%s", got, want, rec.Body.String())
			}

			var payload struct {
				Display struct {
					GrandTotal string `json:"grand_total"`
				} `json:"display"`
				Error string `json:"error"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if tc.wantTotal != "" && payload.Display.GrandTotal != tc.wantTotal {
				t.Fatalf("grand total=%q want %q", payload.Display.GrandTotal, tc.wantTotal)
			}
			if tc.wantError != "" && !strings.Contains(payload.Error, tc.wantError) {
				t.Fatalf("error=%q want it to contain %q", payload.Error, tc.wantError)
			}
		})
	}
}

func TestInvoiceHandlers_Issue(t *testing.T) {
	t.Parallel()

	h := NewInvoiceHandlers(newTestService(), zap.NewNop())
	req := httptest.NewRequest(http.MethodPost, "/billing/invoices", strings.NewReader(issueBody))
	rec := httptest.NewRecorder()
	h.Issue(rec, req)

	if got, want := rec.Code, http.StatusCreated; got != want {
		t.Fatalf("status=%d want %d body=%s", got, want, rec.Body.String())
	}

	var doc struct {
		Header struct {
			Number string `json:"number"`
			Date   string `json:"date"`
		} `json:"header"`
		BillTo struct {
			GSTNo string `json:"gst_no"`
		} `json:"bill_to"`
		Lines []struct {
			Description string `json:"description"`
			Display     string `json:"display"`
		} `json:"lines"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !strings.HasPrefix(doc.Header.Number, "INV-") || len(doc.Header.Number) != len("INV-12345") {
		t.Fatalf("invoice number=%q", doc.Header.Number)
	}
	if got, want := doc.Header.Date, "2024-03-09"; got != want {
		t.Fatalf("date=%q want %q", got, want)
	}
	if got, want := doc.BillTo.GSTNo, "N/A"; got != want {
		t.Fatalf("gst=%q want %q", got, want)
	}
	if got, want := len(doc.Lines), 5; got != want {
		t.Fatalf("len(lines)=%d want %d", got, want)
	}
	last := doc.Lines[len(doc.Lines)-1]
	if last.Description != "Total Amount" || last.Display != "684.40" {
		t.Fatalf("total line=%+v", last)
	}
}

func TestInvoiceHandlers_PDF(t *testing.T) {
	t.Parallel()

	h := NewInvoiceHandlers(newTestService(), zap.NewNop())
	req := httptest.NewRequest(http.MethodPost, "/billing/invoices/pdf", strings.NewReader(issueBody))
	rec := httptest.NewRecorder()
	h.PDF(rec, req)

	if got, want := rec.Code, http.StatusCreated; got != want {
		t.Fatalf("status=%d want %d body=%s", got, want, rec.Body.String())
	}
	if got, want := rec.Header().Get("Content-Type"), "application/pdf"; got != want {
		t.Fatalf("content type=%q want %q", got, want)
	}
	number := rec.Header().Get("X-Invoice-Number")
	if !strings.Contains(rec.Header().Get("Content-Disposition"), number+".pdf") {
		t.Fatalf("content disposition=%q number=%q", rec.Header().Get("Content-Disposition"), number)
	}
	if !strings.HasPrefix(rec.Body.String(), "%PDF-") {
		t.Fatalf("body is not a PDF")
	}
}

func TestInvoiceHandlers_IssueRejectsBadDate(t *testing.T) {
	t.Parallel()

	h := NewInvoiceHandlers(newTestService(), zap.NewNop())
	body := strings.Replace(issueBody, "2024-03-09", "09/03/2024", 1)
	req := httptest.NewRequest(http.MethodPost, "/billing/invoices", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Issue(rec, req)

	if got, want := rec.Code, http.StatusBadRequest; got != want {
		t.Fatalf("status=%d want %d", got, want)
	}
}
