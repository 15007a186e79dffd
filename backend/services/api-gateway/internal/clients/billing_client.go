package clients

import (
	"context"
	"net/http"
	"strconv"
)

// BillingClient proxies requests to billing-service.
type BillingClient struct {
	base *BaseClient
}

// NewBillingClient returns client instance.
func NewBillingClient(baseURL string, httpClient HTTPDoer) *BillingClient {
	return &BillingClient{base: NewBaseClient(baseURL, httpClient)}
}

// Quote forwards a calculator request.
func (c *BillingClient) Quote(ctx context.Context, userID int64, body []byte) (*Response, error) {
	return c.base.Do(ctx, http.MethodPost, "/billing/invoices/quote", body, userHeaders(userID))
}

// Issue forwards an invoice issue request.
func (c *BillingClient) Issue(ctx context.Context, userID int64, body []byte) (*Response, error) {
	return c.base.Do(ctx, http.MethodPost, "/billing/invoices", body, userHeaders(userID))
}

// PDF forwards an invoice request and returns the rendered PDF.
func (c *BillingClient) PDF(ctx context.Context, userID int64, body []byte) (*Response, error) {
	headers := userHeaders(userID)
	headers["Accept"] = "application/pdf"
	return c.base.Do(ctx, http.MethodPost, "/billing/invoices/pdf", body, headers)
}

func userHeaders(userID int64) map[string]string {
	return map[string]string{
		"X-User-ID": strconv.FormatInt(userID, 10),
	}
}
