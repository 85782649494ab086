package proxy

import "net/http"

// sanitizingTransport rewrites the headers of every inbound proxy response
// before any transport-level cache above it can observe them. The original
// header set is dropped entirely and replaced with a minimal fixed set, so
// the intermediary cannot inject caching directives, cookies, or tracking
// headers. Status code and body pass through unchanged.
type sanitizingTransport struct {
	next http.RoundTripper
}

// NewSanitizingTransport wraps next with response-header sanitization.
func NewSanitizingTransport(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return &sanitizingTransport{next: next}
}

func (t *sanitizingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.next.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	resp.Header = http.Header{}
	resp.Header.Set("Content-Security-Policy", "default-src 'self'")
	resp.Header.Set("Referrer-Policy", "strict-origin")
	return resp, nil
}
