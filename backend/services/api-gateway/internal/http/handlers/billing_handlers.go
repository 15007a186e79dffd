package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"meterdesk/backend/services/api-gateway/internal/clients"
	"meterdesk/backend/services/api-gateway/internal/http/middleware"
)

// BillingHandlers proxies billing-service endpoints.
type BillingHandlers struct {
	client *clients.BillingClient
	logger *zap.Logger
}

// NewBillingHandlers returns handler.
func NewBillingHandlers(client *clients.BillingClient, logger *zap.Logger) *BillingHandlers {
	return &BillingHandlers{client: client, logger: logger}
}

type billingCall func(ctx context.Context, userID int64, body []byte) (*clients.Response, error)

// Quote handles POST /api/billing/invoices/quote.
func (h *BillingHandlers) Quote(w http.ResponseWriter, r *http.Request) {
	h.forward(w, r, "quote", h.client.Quote)
}

// Issue handles POST /api/billing/invoices.
func (h *BillingHandlers) Issue(w http.ResponseWriter, r *http.Request) {
	h.forward(w, r, "issue", h.client.Issue)
}

// PDF handles POST /api/billing/invoices/pdf.
func (h *BillingHandlers) PDF(w http.ResponseWriter, r *http.Request) {
	h.forward(w, r, "pdf", h.client.PDF)
}

func (h *BillingHandlers) forward(w http.ResponseWriter, r *http.Request, op string, call billingCall) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	resp, err := call(r.Context(), principal.UserID, body)
	if err != nil {
		h.logger.Error("billing proxy failed", zap.String("op", op), zap.Error(err))
		writeError(w, http.StatusBadGateway, "billing service unavailable")
		return
	}
	writeUpstream(w, resp)
}
