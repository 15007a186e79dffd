// Package document assembles the printable invoice from a computed result.
package document

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"meterdesk/backend/services/billing-service/internal/models"
)

const (
	notAvailable = "N/A"
	footerText   = "Thank you for your business!"
)

// LineKind tags each invoice line so renderers can style it.
type LineKind string

const (
	LineRent     LineKind = "rent"
	LineReading  LineKind = "reading"
	LineSubtotal LineKind = "subtotal"
	LineTax      LineKind = "tax"
	LineTotal    LineKind = "total"
)

// Header identifies the invoice and its issuer.
type Header struct {
	Number   string `json:"number"`
	Date     string `json:"date"`
	Company  string `json:"company,omitempty"`
	Currency string `json:"currency"`
}

// MeterDetails is the reading block shown next to the bill-to address.
type MeterDetails struct {
	PreviousReading   string `json:"previous_reading"`
	CurrentReading    string `json:"current_reading"`
	FreeCopies        int64  `json:"free_copies"`
	NetPayableReading string `json:"net_payable_reading"`
}

// LineItem is one row of the invoice table.
type LineItem struct {
	Kind        LineKind        `json:"kind"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Display     string          `json:"display"`
}

// Document is a complete, render-ready invoice.
type Document struct {
	Header  Header                `json:"header"`
	BillTo  models.Customer       `json:"bill_to"`
	Meter   MeterDetails          `json:"meter"`
	Lines   []LineItem            `json:"lines"`
	Result  models.InvoiceResult  `json:"result"`
	Summary models.InvoiceDisplay `json:"summary"`
	Footer  string                `json:"footer"`
}

// Build lays out the invoice. Line order is fixed: rent (only when charged), reading charges,
// subtotal, tax, total.
func Build(header Header, customer models.Customer, reading models.CustomerReading, cfg models.InvoiceConfig, result models.InvoiceResult) Document {
	billTo := customer
	if strings.TrimSpace(billTo.GSTNo) == "" {
		billTo.GSTNo = notAvailable
	}

	lines := make([]LineItem, 0, 5)
	if cfg.IncludeRent {
		lines = append(lines, newLine(LineRent, "Rent Amount", cfg.RentAmount))
	}
	lines = append(lines,
		newLine(LineReading, fmt.Sprintf("Reading Charges (%s x %s)", result.NetPayableReading.String(), cfg.RatePerReading.String()), result.ReadingCharge),
		newLine(LineSubtotal, "Subtotal", result.Subtotal),
		newLine(LineTax, fmt.Sprintf("GST (%s)", result.TaxScheme.Label()), result.TaxAmount),
		newLine(LineTotal, "Total Amount", result.GrandTotal),
	)

	return Document{
		Header: header,
		BillTo: billTo,
		Meter: MeterDetails{
			PreviousReading:   cfg.PreviousReading.String(),
			CurrentReading:    reading.CurrentReading.String(),
			FreeCopies:        cfg.FreeCopies,
			NetPayableReading: result.NetPayableReading.String(),
		},
		Lines:   lines,
		Result:  result,
		Summary: result.Display(),
		Footer:  footerText,
	}
}

func newLine(kind LineKind, description string, amount decimal.Decimal) LineItem {
	return LineItem{
		Kind:        kind,
		Description: description,
		Amount:      amount,
		Display:     models.Money(amount),
	}
}
