package models

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseTaxScheme(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want TaxScheme
	}{
		{raw: "", want: TaxSchemeSplit},
		{raw: "SPLIT", want: TaxSchemeSplit},
		{raw: "split", want: TaxSchemeSplit},
		{raw: "cgst", want: TaxSchemeSplit},
		{raw: " UNIFIED ", want: TaxSchemeUnified},
		{raw: "igst", want: TaxSchemeUnified},
	}
	for _, tc := range tests {
		got, err := ParseTaxScheme(tc.raw)
		if err != nil {
			t.Fatalf("ParseTaxScheme(%q): %v", tc.raw, err)
		}
		if got != tc.want {
			t.Fatalf("ParseTaxScheme(%q)=%q want %q", tc.raw, got, tc.want)
		}
	}

	if _, err := ParseTaxScheme("vat"); !errors.Is(err, ErrUnknownTaxScheme) {
		t.Fatalf("err=%v want ErrUnknownTaxScheme", err)
	}
}

func TestTaxScheme_Labels(t *testing.T) {
	t.Parallel()

	if got, want := TaxSchemeSplit.Label(), "CGST 9% + SGST 9%"; got != want {
		t.Fatalf("split label=%q want %q", got, want)
	}
	if got, want := TaxSchemeUnified.Label(), "IGST 18%"; got != want {
		t.Fatalf("unified label=%q want %q", got, want)
	}
	if got, want := TaxSchemeSplit.ShortLabel(), "CGST+SGST"; got != want {
		t.Fatalf("split short label=%q want %q", got, want)
	}
}

func TestTaxScheme_ComponentsSumToFullRate(t *testing.T) {
	t.Parallel()

	for _, scheme := range []TaxScheme{TaxSchemeSplit, TaxSchemeUnified} {
		if !scheme.Valid() {
			t.Fatalf("%q not valid", scheme)
		}
		total := decimal.Zero
		for _, c := range scheme.Components() {
			total = total.Add(c.Rate)
		}
		if !total.Equal(fullGSTRate) {
			t.Fatalf("%q components sum to %s want %s", scheme, total, fullGSTRate)
		}
	}
}

func TestTaxScheme_ComponentsAreCopies(t *testing.T) {
	t.Parallel()

	c := TaxSchemeSplit.Components()
	c[0].Name = "changed"
	if got := TaxSchemeSplit.Components()[0].Name; got != "CGST" {
		t.Fatalf("rule mutated through returned slice: %q", got)
	}
}
