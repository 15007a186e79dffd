package service

import (
	"github.com/shopspring/decimal"

	"meterdesk/backend/services/billing-service/internal/models"
)

// NetPayableReading returns the billable units between two meter readings after the free
// allowance. A shortfall never produces a credit.
func NetPayableReading(previous, current, allowance decimal.Decimal) decimal.Decimal {
	net := current.Sub(previous).Sub(allowance)
	if net.IsNegative() {
		return decimal.Zero
	}
	return net
}

// ComputeInvoice derives the invoice figures from one reading and one configuration.
// It is pure: every figure is derived from the net reading computed in this call and nothing
// is rounded, so tax is charged on the exact subtotal.
func ComputeInvoice(reading models.CustomerReading, cfg models.InvoiceConfig) models.InvoiceResult {
	allowance := decimal.Zero
	if cfg.IncludeRent {
		allowance = decimal.NewFromInt(cfg.FreeCopies)
	}

	net := NetPayableReading(cfg.PreviousReading, reading.CurrentReading, allowance)
	readingCharge := net.Mul(cfg.RatePerReading)

	subtotal := readingCharge
	if cfg.IncludeRent {
		subtotal = subtotal.Add(cfg.RentAmount)
	}

	components := cfg.TaxScheme.Components()
	lines := make([]models.TaxLine, 0, len(components))
	tax := decimal.Zero
	for _, c := range components {
		amount := subtotal.Mul(c.Rate)
		tax = tax.Add(amount)
		lines = append(lines, models.TaxLine{Name: c.Name, Rate: c.Rate, Amount: amount})
	}

	scheme := cfg.TaxScheme
	if !scheme.Valid() {
		scheme = models.TaxSchemeUnified
	}

	return models.InvoiceResult{
		NetPayableReading: net,
		ReadingCharge:     readingCharge,
		Subtotal:          subtotal,
		TaxAmount:         tax,
		GrandTotal:        subtotal.Add(tax),
		TaxScheme:         scheme,
		TaxLines:          lines,
	}
}
