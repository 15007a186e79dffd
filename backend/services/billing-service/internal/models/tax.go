package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TaxScheme selects how GST is applied to an invoice subtotal.
type TaxScheme string

const (
	// TaxSchemeSplit is intra-state GST: CGST and SGST at half rate each.
	TaxSchemeSplit TaxScheme = "SPLIT"
	// TaxSchemeUnified is inter-state GST: a single IGST component at the full rate.
	TaxSchemeUnified TaxScheme = "UNIFIED"
)

// ErrUnknownTaxScheme is returned by ParseTaxScheme for values outside the closed set.
var ErrUnknownTaxScheme = errors.New("tax: unknown scheme")

// TaxComponent is one independently displayed tax line.
type TaxComponent struct {
	Name string          `json:"name"`
	Rate decimal.Decimal `json:"rate"`
}

var (
	halfGSTRate = decimal.RequireFromString("0.09")
	fullGSTRate = decimal.RequireFromString("0.18")
	hundred     = decimal.NewFromInt(100)
)

var taxRules = map[TaxScheme][]TaxComponent{
	TaxSchemeSplit: {
		{Name: "CGST", Rate: halfGSTRate},
		{Name: "SGST", Rate: halfGSTRate},
	},
	TaxSchemeUnified: {
		{Name: "IGST", Rate: fullGSTRate},
	},
}

// ParseTaxScheme accepts the scheme names and the console's legacy form values
// ("cgst" for SPLIT, "igst" for UNIFIED). An empty value means SPLIT.
func ParseTaxScheme(raw string) (TaxScheme, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "", string(TaxSchemeSplit), "CGST":
		return TaxSchemeSplit, nil
	case string(TaxSchemeUnified), "IGST":
		return TaxSchemeUnified, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownTaxScheme, raw)
	}
}

// Valid reports whether s is one of the known schemes.
func (s TaxScheme) Valid() bool {
	_, ok := taxRules[s]
	return ok
}

// Components returns the tax lines applied under s. Anything that is not SPLIT is taxed as
// UNIFIED, which keeps ComputeInvoice total over the zero value.
func (s TaxScheme) Components() []TaxComponent {
	components, ok := taxRules[s]
	if !ok {
		components = taxRules[TaxSchemeUnified]
	}
	out := make([]TaxComponent, len(components))
	copy(out, components)
	return out
}

// Label renders the components for invoice lines, e.g. "CGST 9% + SGST 9%".
func (s TaxScheme) Label() string {
	components := s.Components()
	parts := make([]string, 0, len(components))
	for _, c := range components {
		parts = append(parts, fmt.Sprintf("%s %s%%", c.Name, c.Rate.Mul(hundred).String()))
	}
	return strings.Join(parts, " + ")
}

// ShortLabel joins only the component names, e.g. "CGST+SGST".
func (s TaxScheme) ShortLabel() string {
	components := s.Components()
	names := make([]string, 0, len(components))
	for _, c := range components {
		names = append(names, c.Name)
	}
	return strings.Join(names, "+")
}
