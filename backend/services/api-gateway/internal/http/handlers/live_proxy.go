package handlers

import (
	"net/http"
	"net/http/httputil"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"meterdesk/backend/services/api-gateway/internal/http/middleware"
)

const livePath = "/billing/invoices/live"

// NewLiveProxy forwards the live quote websocket to billing-service. The access token is
// stripped from the upstream URL and the caller is passed as X-User-ID.
func NewLiveProxy(billingURL string, logger *zap.Logger) (http.HandlerFunc, error) {
	target, err := url.Parse(billingURL)
	if err != nil {
		return nil, err
	}

	proxy := &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(target)
			pr.Out.URL.Path = livePath
			pr.Out.URL.RawPath = ""
			query := pr.Out.URL.Query()
			query.Del(middleware.AccessTokenParam)
			pr.Out.URL.RawQuery = query.Encode()
			pr.Out.Header.Del("Authorization")
			if principal, ok := middleware.PrincipalFromContext(pr.In.Context()); ok {
				pr.Out.Header.Set("X-User-ID", strconv.FormatInt(principal.UserID, 10))
			}
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			logger.Error("live proxy failed", zap.Error(err))
			writeError(w, http.StatusBadGateway, "billing service unavailable")
		},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		// Lift the server's per-request deadlines for the long-lived stream.
		rc := http.NewResponseController(w)
		_ = rc.SetReadDeadline(time.Time{})
		_ = rc.SetWriteDeadline(time.Time{})
		proxy.ServeHTTP(w, r)
	}, nil
}
