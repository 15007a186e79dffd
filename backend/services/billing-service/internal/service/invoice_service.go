package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"meterdesk/backend/services/billing-service/internal/document"
	"meterdesk/backend/services/billing-service/internal/models"
)

const dateLayout = "2006-01-02"

// QuoteInput is the invoice form as submitted by the console. A nil RatePerReading means
// "use the active tariff". Amounts are bounded by validateQuoteAmounts: non-negative, at most
// 12 integer digits and 8 decimal places.
type QuoteInput struct {
	CurrentReading  decimal.Decimal  `json:"current_reading"`
	PreviousReading decimal.Decimal  `json:"previous_reading"`
	RatePerReading  *decimal.Decimal `json:"rate_per_reading,omitempty"`
	IncludeRent     bool             `json:"include_rent"`
	RentAmount      decimal.Decimal  `json:"rent_amount"`
	FreeCopies      int64            `json:"free_copies" validate:"gte=0,lte=999999999999"`
	TaxScheme       string           `json:"tax_scheme"`
}

// IssueInput adds the bill-to details and invoice date to a quote.
type IssueInput struct {
	QuoteInput
	Customer models.Customer `json:"customer"`
	Date     string          `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// Quote is a computed result together with the inputs it was computed from.
type Quote struct {
	Reading models.CustomerReading `json:"reading"`
	Config  models.InvoiceConfig   `json:"config"`
	Result  models.InvoiceResult   `json:"result"`
	Display models.InvoiceDisplay  `json:"display"`
}

// InvoiceOptions carries issuer details printed on every invoice.
type InvoiceOptions struct {
	Company  string
	Currency string
}

// InvoiceService turns console form input into quotes and invoice documents.
type InvoiceService struct {
	tariffs  *TariffService
	numbers  *NumberAllocator
	options  InvoiceOptions
	validate *validator.Validate
	now      func() time.Time
	logger   *zap.Logger
}

// NewInvoiceService builds the service.
func NewInvoiceService(tariffs *TariffService, numbers *NumberAllocator, opts InvoiceOptions, logger *zap.Logger) *InvoiceService {
	if opts.Currency == "" {
		opts.Currency = "INR"
	}
	return &InvoiceService{
		tariffs:  tariffs,
		numbers:  numbers,
		options:  opts,
		validate: newValidator(),
		now:      time.Now,
		logger:   logger,
	}
}

// Quote validates the form and computes the invoice figures.
func (s *InvoiceService) Quote(ctx context.Context, in QuoteInput) (*Quote, error) {
	if err := s.validate.StructCtx(ctx, in); err != nil {
		return nil, validationError(err)
	}

	reading, cfg, err := s.resolve(ctx, in)
	if err != nil {
		return nil, err
	}

	result := ComputeInvoice(reading, cfg)
	return &Quote{
		Reading: reading,
		Config:  cfg,
		Result:  result,
		Display: result.Display(),
	}, nil
}

// Issue computes the invoice, allocates its number and lays out the printable document.
func (s *InvoiceService) Issue(ctx context.Context, in IssueInput) (*document.Document, error) {
	if err := s.validate.StructCtx(ctx, in); err != nil {
		return nil, validationError(err)
	}

	quote, err := s.Quote(ctx, in.QuoteInput)
	if err != nil {
		return nil, err
	}

	date := strings.TrimSpace(in.Date)
	if date == "" {
		date = s.now().UTC().Format(dateLayout)
	}

	number, err := s.numbers.Next(ctx)
	if err != nil {
		return nil, err
	}

	doc := document.Build(document.Header{
		Number:   number,
		Date:     date,
		Company:  s.options.Company,
		Currency: s.options.Currency,
	}, in.Customer, quote.Reading, quote.Config, quote.Result)

	s.logger.Info("invoice issued",
		zap.String("invoice_no", number),
		zap.String("tax_scheme", string(quote.Result.TaxScheme)),
		zap.String("net_payable_reading", quote.Result.NetPayableReading.String()),
		zap.String("grand_total", models.Money(quote.Result.GrandTotal)),
	)
	return &doc, nil
}

func (s *InvoiceService) resolve(ctx context.Context, in QuoteInput) (models.CustomerReading, models.InvoiceConfig, error) {
	scheme, err := models.ParseTaxScheme(in.TaxScheme)
	if err != nil {
		return models.CustomerReading{}, models.InvoiceConfig{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	var rate decimal.Decimal
	if in.RatePerReading != nil {
		rate = *in.RatePerReading
	} else {
		tariff, err := s.tariffs.ActiveTariff(ctx)
		if err != nil {
			return models.CustomerReading{}, models.InvoiceConfig{}, err
		}
		rate = tariff.PricePerReading
	}

	return models.CustomerReading{CurrentReading: in.CurrentReading}, models.InvoiceConfig{
		PreviousReading: in.PreviousReading,
		RatePerReading:  rate,
		IncludeRent:     in.IncludeRent,
		RentAmount:      in.RentAmount,
		FreeCopies:      in.FreeCopies,
		TaxScheme:       scheme,
	}, nil
}

// IsClientError reports whether err was caused by the caller's input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidRequest)
}
