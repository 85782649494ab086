package proxy

import (
	"context"
	"errors"
)

// Package proxy implements the outbound call to the intermediary AI
// completion proxy. One call per invocation; no retries, no backoff — a
// failed attempt is surfaced immediately.

// CompletionRequest is the wire-level request body sent to the proxy.
type CompletionRequest struct {
	Prompt      string   `json:"prompt"`
	MaxTokens   *int     `json:"max_tokens,omitempty"`
	Temperature *float64 `json:"temperature,omitempty"`
	IsLegal     bool     `json:"is_legal"`
}

// completionResponse is the wire-level response body. success=true requires
// a result; success=false carries an optional error message.
type completionResponse struct {
	Success bool    `json:"success"`
	Result  *string `json:"result,omitempty"`
	Error   *string `json:"error,omitempty"`
}

// Failure taxonomy for one proxy round-trip. Wrapped errors carry detail;
// callers classify with errors.Is.
var (
	// ErrTransport covers network failures and non-200 status codes.
	ErrTransport = errors.New("proxy transport error")
	// ErrEncoding indicates the response body is not valid UTF-8.
	ErrEncoding = errors.New("proxy response encoding error")
	// ErrProtocol indicates malformed or contractually inconsistent proxy JSON.
	ErrProtocol = errors.New("proxy protocol error")
	// ErrProxy indicates the proxy itself reported a failure.
	ErrProxy = errors.New("proxy reported failure")
)

// Client performs a single completion round-trip against the proxy.
type Client interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
