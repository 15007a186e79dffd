package service

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// ErrInvalidRequest wraps every input validation failure.
var ErrInvalidRequest = errors.New("billing: invalid request")

// Bounds for form amounts. Checked on exponent and digit count only, so an oversized value is
// rejected without ever being expanded.
const (
	maxAmountIntDigits = 12
	maxAmountScale     = 8
	maxAmountLabel     = "999999999999"
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	v.RegisterStructValidation(validateQuoteAmounts, QuoteInput{})
	return v
}

func validateQuoteAmounts(sl validator.StructLevel) {
	in, ok := sl.Current().Interface().(QuoteInput)
	if !ok {
		return
	}
	checkAmount(sl, in.CurrentReading, "current_reading", "CurrentReading")
	checkAmount(sl, in.PreviousReading, "previous_reading", "PreviousReading")
	if in.RatePerReading != nil {
		checkAmount(sl, *in.RatePerReading, "rate_per_reading", "RatePerReading")
	}
	checkAmount(sl, in.RentAmount, "rent_amount", "RentAmount")
}

// checkAmount reports the first violated bound: sign, then scale, then magnitude.
func checkAmount(sl validator.StructLevel, d decimal.Decimal, name, field string) {
	switch {
	case d.IsNegative():
		sl.ReportError(d, name, field, "dgte", "0")
	case d.Exponent() < -maxAmountScale:
		sl.ReportError(d, name, field, "dscale", strconv.Itoa(maxAmountScale))
	case !d.IsZero() && d.NumDigits()+int(d.Exponent()) > maxAmountIntDigits:
		sl.ReportError(d, name, field, "dmax", maxAmountLabel)
	case d.IsZero() && d.Exponent() > maxAmountIntDigits:
		sl.ReportError(d, name, field, "dmax", maxAmountLabel)
	}
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describeField(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalidRequest, strings.Join(msgs, "; "))
}

func describeField(fe validator.FieldError) string {
	switch fe.Tag() {
	case "gte", "dgte":
		return fmt.Sprintf("%s must be >= %s", fe.Field(), fe.Param())
	case "lte", "dmax":
		return fmt.Sprintf("%s must be <= %s", fe.Field(), fe.Param())
	case "dscale":
		return fmt.Sprintf("%s allows at most %s decimal places", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s is too long (max %s)", fe.Field(), fe.Param())
	case "datetime":
		return fmt.Sprintf("%s must be a date in YYYY-MM-DD format", fe.Field())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}
