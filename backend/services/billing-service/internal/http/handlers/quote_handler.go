package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"meterdesk/backend/services/billing-service/internal/metrics"
	"meterdesk/backend/services/billing-service/internal/service"
)

// NewQuoteHandler handles POST /billing/invoices/quote.
func NewQuoteHandler(svc *service.InvoiceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in service.QuoteInput
		if err := decodeJSON(w, r, &in); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		quote, err := svc.Quote(r.Context(), in)
		if err != nil {
			writeServiceError(w, logger, err, "quote")
			return
		}
		metrics.ObserveQuote(string(quote.Result.TaxScheme), metrics.SourceHTTP)

		writeJSON(w, http.StatusOK, quote)
	}
}
