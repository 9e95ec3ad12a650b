package parser

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// Fetcher retrieves the spreadsheet export payload. One attempt per run,
// no retries: callers running in a request context impose their own
// timeout through the request context and the client's Timeout.
type Fetcher struct {
	client   *http.Client
	maxBytes int64
}

// NewFetcher creates a Fetcher. A nil client falls back to a default one;
// maxBytes caps how much of the payload is read into memory.
func NewFetcher(client *http.Client, maxBytes int64) *Fetcher {
	if client == nil {
		client = &http.Client{}
	}
	return &Fetcher{client: client, maxBytes: maxBytes}
}

// Fetch downloads sourceURL and returns the payload bytes. Cancelling ctx
// aborts the in-flight request. Non-2xx responses fail with the HTTP
// status code and reason phrase.
func (f *Fetcher) Fetch(ctx context.Context, sourceURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch spreadsheet: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	payload, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read payload: %w", err)
	}
	if int64(len(payload)) > f.maxBytes {
		return nil, fmt.Errorf("payload exceeds %d byte limit", f.maxBytes)
	}

	return payload, nil
}
