package ws

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"meterdesk/backend/services/billing-service/internal/metrics"
	"meterdesk/backend/services/billing-service/internal/service"
)

// Quoter computes one quote per form snapshot.
type Quoter interface {
	Quote(ctx context.Context, in service.QuoteInput) (*service.Quote, error)
}

// QuoteProcessor answers every frame with a freshly computed quote or an error message.
type QuoteProcessor struct {
	quoter Quoter
	logger *zap.Logger
}

type liveReply struct {
	Quote *service.Quote `json:"quote,omitempty"`
	Error string         `json:"error,omitempty"`
}

// NewQuoteProcessor returns processor.
func NewQuoteProcessor(quoter Quoter, logger *zap.Logger) *QuoteProcessor {
	return &QuoteProcessor{quoter: quoter, logger: logger}
}

// Process implements MessageProcessor.
func (p *QuoteProcessor) Process(ctx context.Context, raw []byte) []byte {
	var in service.QuoteInput
	if err := json.Unmarshal(raw, &in); err != nil {
		return p.encode(liveReply{Error: "invalid JSON frame"})
	}

	quote, err := p.quoter.Quote(ctx, in)
	if err != nil {
		if !service.IsClientError(err) {
			p.logger.Error("live quote failed", zap.Error(err))
		}
		return p.encode(liveReply{Error: err.Error()})
	}
	metrics.ObserveQuote(string(quote.Result.TaxScheme), metrics.SourceLive)
	return p.encode(liveReply{Quote: quote})
}

func (p *QuoteProcessor) encode(reply liveReply) []byte {
	data, err := json.Marshal(reply)
	if err != nil {
		p.logger.Error("encode live reply", zap.Error(err))
		return nil
	}
	return data
}
