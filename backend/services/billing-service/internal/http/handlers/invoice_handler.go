package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"meterdesk/backend/services/billing-service/internal/document"
	"meterdesk/backend/services/billing-service/internal/metrics"
	"meterdesk/backend/services/billing-service/internal/service"
)

// InvoiceHandlers issues invoice documents.
type InvoiceHandlers struct {
	service *service.InvoiceService
	logger  *zap.Logger
}

// NewInvoiceHandlers builds handlers.
func NewInvoiceHandlers(svc *service.InvoiceService, logger *zap.Logger) *InvoiceHandlers {
	return &InvoiceHandlers{service: svc, logger: logger}
}

// Issue handles POST /billing/invoices and returns the document as JSON.
func (h *InvoiceHandlers) Issue(w http.ResponseWriter, r *http.Request) {
	doc, ok := h.issue(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusCreated, doc)
}

// PDF handles POST /billing/invoices/pdf and returns the printable invoice.
func (h *InvoiceHandlers) PDF(w http.ResponseWriter, r *http.Request) {
	doc, ok := h.issue(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := document.RenderPDF(&buf, *doc); err != nil {
		h.logger.Error("pdf render failed", zap.String("invoice_no", doc.Header.Number), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "pdf render failed")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Header.Number+".pdf"))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("X-Invoice-Number", doc.Header.Number)
	w.WriteHeader(http.StatusCreated)
	_, _ = w.Write(buf.Bytes())
}

func (h *InvoiceHandlers) issue(w http.ResponseWriter, r *http.Request) (*document.Document, bool) {
	var in service.IssueInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return nil, false
	}

	doc, err := h.service.Issue(r.Context(), in)
	if err != nil {
		writeServiceError(w, h.logger, err, "issue invoice")
		return nil, false
	}
	metrics.ObserveQuote(string(doc.Result.TaxScheme), metrics.SourceIssue)
	return doc, true
}
