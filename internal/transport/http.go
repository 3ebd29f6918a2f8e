package transport

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"go-variant-cache/internal/interfaces"
)

// Ensure HTTPTransport implements interfaces.Transport
var _ interfaces.Transport = (*HTTPTransport)(nil)

// HTTPTransport fetches rendered fragments over HTTP. Each call is a single
// in-flight operation cancelled through its context.
type HTTPTransport struct {
	client  *http.Client
	baseURL string
	logger  *zap.Logger
}

// New creates an HTTPTransport. baseURL prefixes relative request URLs (the
// engine works with product paths); timeout bounds each fetch independently
// of caller cancellation.
func New(baseURL string, timeout time.Duration, logger *zap.Logger) *HTTPTransport {
	return &HTTPTransport{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
		logger:  logger,
	}
}

// Fetch performs a cancellable GET for the given URL and returns the raw
// body. Non-2xx responses and empty bodies are transport failures.
func (t *HTTPTransport) Fetch(ctx context.Context, url string) ([]byte, error) {
	target := url
	if len(url) > 0 && url[0] == '/' {
		target = t.baseURL + url
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %q: %w", url, err)
	}
	req.Header.Set("Accept", "text/html")

	resp, err := t.client.Do(req)
	if err != nil {
		// Unwrap so context.Canceled survives for errors.Is checks.
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("fetch %q failed: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch %q returned status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("failed to read response for %q: %w", url, err)
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("fetch %q returned an empty body", url)
	}

	t.logger.Debug("fetched fragment", zap.String("url", url), zap.Int("bytes", len(body)))
	return body, nil
}
