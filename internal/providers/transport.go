package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"
)

const (
	requestTimeout = 10 * time.Second
	retryBackoff   = 250 * time.Millisecond
)

// Transport is the single outbound HTTP pool shared by every provider
// adapter in the process. The underlying client is built lazily on first
// request and torn down exactly once via Close; it is never request-scoped.
type Transport struct {
	once    sync.Once
	client  *http.Client
	retries int
}

// NewTransport constructs a Transport with two retries per request.
func NewTransport() *Transport {
	return &Transport{retries: 2}
}

// NewTransportWithRetries constructs a Transport with a custom retry count.
// Zero disables retries entirely.
func NewTransportWithRetries(retries int) *Transport {
	if retries < 0 {
		retries = 0
	}
	return &Transport{retries: retries}
}

func (t *Transport) httpClient() *http.Client {
	t.once.Do(func() {
		if t.client == nil {
			t.client = &http.Client{Timeout: requestTimeout}
		}
	})
	return t.client
}

// Close releases idle connections. Call once at process shutdown.
func (t *Transport) Close() {
	if t.client != nil {
		t.client.CloseIdleConnections()
	}
}

// getJSON performs a GET with query parameters and decodes the JSON body
// into dst, retrying transient failures with doubling backoff.
func (t *Transport) getJSON(ctx context.Context, rawURL string, params url.Values, headers http.Header, dst any) error {
	if len(params) > 0 {
		rawURL = rawURL + "?" + params.Encode()
	}
	return t.doJSON(ctx, http.MethodGet, rawURL, headers, nil, dst)
}

// postJSON performs a POST with a JSON body and decodes the JSON response
// into dst, with the same retry policy as getJSON.
func (t *Transport) postJSON(ctx context.Context, rawURL string, body, dst any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshaling request body for %s: %w", rawURL, err)
	}
	return t.doJSON(ctx, http.MethodPost, rawURL, nil, payload, dst)
}

func (t *Transport) doJSON(ctx context.Context, method, rawURL string, headers http.Header, body []byte, dst any) error {
	var lastErr error
	backoff := retryBackoff

	for attempt := 0; attempt <= t.retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}

		lastErr = t.doOnce(ctx, method, rawURL, headers, body, dst)
		if lastErr == nil {
			return nil
		}
	}

	return lastErr
}

func (t *Transport) doOnce(ctx context.Context, method, rawURL string, headers http.Header, body []byte, dst any) error {
	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return fmt.Errorf("creating request for %s: %w", rawURL, err)
	}
	for k, vs := range headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if method == http.MethodPost {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := t.httpClient().Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s %s returned status %d", method, rawURL, resp.StatusCode)
	}

	if dst == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decoding response from %s: %w", rawURL, err)
	}
	return nil
}
