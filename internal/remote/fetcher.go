// Package remote fetches the published word sheet as raw CSV text.
package remote

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrFetchFailed wraps every transport-level failure so callers can treat
// the whole class as one retryable condition.
var ErrFetchFailed = errors.New("fetch failed")

// maxBodySize caps how much of the response is read. A published word sheet
// is a few hundred KB at most; anything larger is a misconfigured URL.
const maxBodySize = 10 << 20

// Fetcher downloads the remote CSV payload over plain GET, no auth.
type Fetcher struct {
	url    string
	client *http.Client
}

// NewFetcher creates a Fetcher for the given sheet URL with a bounded
// request timeout.
func NewFetcher(url string, timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Fetcher{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// Fetch retrieves the raw CSV text. Any network or HTTP failure is
// reported as ErrFetchFailed; the caller's state must remain untouched.
func (f *Fetcher) Fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	req.Header.Set("User-Agent", "linguapp-sync")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: remote returned %s", ErrFetchFailed, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", fmt.Errorf("%w: reading body: %v", ErrFetchFailed, err)
	}

	return string(body), nil
}
