package models

import "github.com/shopspring/decimal"

// CustomerReading is the meter reading supplied for one billing cycle.
type CustomerReading struct {
	CurrentReading decimal.Decimal `json:"current_reading"`
}

// InvoiceConfig holds the billing parameters entered on the invoice form.
// RentAmount and FreeCopies only apply when IncludeRent is set.
type InvoiceConfig struct {
	PreviousReading decimal.Decimal `json:"previous_reading"`
	RatePerReading  decimal.Decimal `json:"rate_per_reading"`
	IncludeRent     bool            `json:"include_rent"`
	RentAmount      decimal.Decimal `json:"rent_amount"`
	FreeCopies      int64           `json:"free_copies"`
	TaxScheme       TaxScheme       `json:"tax_scheme"`
}

// TaxLine is the amount charged for a single tax component.
type TaxLine struct {
	Name   string          `json:"name"`
	Rate   decimal.Decimal `json:"rate"`
	Amount decimal.Decimal `json:"amount"`
}

// InvoiceResult holds the derived invoice figures. Values are unrounded.
type InvoiceResult struct {
	NetPayableReading decimal.Decimal `json:"net_payable_reading"`
	ReadingCharge     decimal.Decimal `json:"reading_charge"`
	Subtotal          decimal.Decimal `json:"subtotal"`
	TaxAmount         decimal.Decimal `json:"tax_amount"`
	GrandTotal        decimal.Decimal `json:"grand_total"`
	TaxScheme         TaxScheme       `json:"tax_scheme"`
	TaxLines          []TaxLine       `json:"tax_lines"`
}

// InvoiceDisplay is InvoiceResult rounded for presentation.
type InvoiceDisplay struct {
	NetPayableReading string `json:"net_payable_reading"`
	ReadingCharge     string `json:"reading_charge"`
	Subtotal          string `json:"subtotal"`
	TaxAmount         string `json:"tax_amount"`
	GrandTotal        string `json:"grand_total"`
	TaxLabel          string `json:"tax_label"`
}

// Display rounds every monetary figure to two decimals.
func (r InvoiceResult) Display() InvoiceDisplay {
	return InvoiceDisplay{
		NetPayableReading: r.NetPayableReading.String(),
		ReadingCharge:     Money(r.ReadingCharge),
		Subtotal:          Money(r.Subtotal),
		TaxAmount:         Money(r.TaxAmount),
		GrandTotal:        Money(r.GrandTotal),
		TaxLabel:          r.TaxScheme.ShortLabel(),
	}
}

// Money formats an amount with two decimal places.
func Money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
