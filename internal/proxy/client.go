package proxy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"wakili/internal/config"
)

var tracer = otel.Tracer("wakili.proxy")

var callsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "wakili_proxy_calls_total",
		Help: "Total number of outbound proxy calls by outcome.",
	},
	[]string{"outcome"},
)

// HTTPClient is the production Client implementation. It POSTs to a fixed
// configured endpoint with a static bearer credential, enforces a response
// size cap, and classifies every failure into the proxy error taxonomy.
type HTTPClient struct {
	httpClient       *http.Client
	url              string
	authToken        string
	maxResponseBytes int64
}

// NewHTTPClient builds a Client from deployment configuration. The endpoint
// URL and bearer token must come from the environment; there are no baked-in
// fallbacks for either.
func NewHTTPClient(cfg config.ProxyConfig) (*HTTPClient, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("proxy URL is required")
	}
	if cfg.AuthToken == "" {
		return nil, fmt.Errorf("proxy auth token is required")
	}

	timeout := time.Duration(cfg.TimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	maxBytes := cfg.MaxResponseBytes
	if maxBytes <= 0 {
		maxBytes = 8192
	}

	slog.Info("initializing proxy client", "url", cfg.URL, "timeout", timeout, "max_response_bytes", maxBytes)

	return &HTTPClient{
		httpClient: &http.Client{
			Timeout: timeout,
			// Sanitize response headers below the otel layer so nothing
			// between this service and the proxy can smuggle caching or
			// tracking directives into downstream infrastructure.
			Transport: NewSanitizingTransport(otelhttp.NewTransport(http.DefaultTransport)),
		},
		url:              cfg.URL,
		authToken:        cfg.AuthToken,
		maxResponseBytes: maxBytes,
	}, nil
}

var _ Client = (*HTTPClient)(nil)

// Complete performs one round-trip. On success it returns the result payload;
// every failure is wrapped in exactly one of ErrTransport, ErrEncoding,
// ErrProtocol, or ErrProxy.
func (c *HTTPClient) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	ctx, span := tracer.Start(ctx, "HTTPClient.Complete")
	defer span.End()
	span.SetAttributes(attribute.Bool("proxy.is_legal", req.IsLegal))

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal proxy request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create proxy request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.authToken)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fail(span, "transport_error", fmt.Errorf("%w: %v", ErrTransport, err))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, c.maxResponseBytes))
	if err != nil {
		return "", fail(span, "transport_error", fmt.Errorf("%w: read body: %v", ErrTransport, err))
	}

	if resp.StatusCode != http.StatusOK {
		slog.Error("proxy returned non-200 status", "status_code", resp.StatusCode)
		return "", fail(span, "transport_error", fmt.Errorf("%w: status %d", ErrTransport, resp.StatusCode))
	}

	if !utf8.Valid(respBody) {
		return "", fail(span, "encoding_error", fmt.Errorf("%w: body is not valid UTF-8", ErrEncoding))
	}

	var proxyResp completionResponse
	if err := json.Unmarshal(respBody, &proxyResp); err != nil {
		slog.Error("failed to parse proxy response", "error", err)
		return "", fail(span, "protocol_error", fmt.Errorf("%w: %v", ErrProtocol, err))
	}

	if proxyResp.Success {
		if proxyResp.Result == nil {
			return "", fail(span, "protocol_error", fmt.Errorf("%w: no result in successful response", ErrProtocol))
		}
		callsTotal.WithLabelValues("ok").Inc()
		slog.Debug("received proxy completion")
		return *proxyResp.Result, nil
	}

	msg := "unknown proxy error"
	if proxyResp.Error != nil {
		msg = *proxyResp.Error
	}
	return "", fail(span, "proxy_error", fmt.Errorf("%w: %s", ErrProxy, msg))
}

func fail(span trace.Span, outcome string, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	callsTotal.WithLabelValues(outcome).Inc()
	return err
}
