// Package download fetches the chosen release asset into the scratch
// directory. This is the only stage in the pipeline that retries: bounded
// attempts with exponential backoff, resuming partially written files via
// Range requests instead of restarting from zero.
package download

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/hashicorp/go-cleanhttp"

	"github.com/chazuruo/binget/internal/errors"
)

const (
	// connectTimeout bounds connection establishment per attempt.
	connectTimeout = 10 * time.Second
	// overallTimeout bounds a whole transfer attempt.
	overallTimeout = 300 * time.Second
	// maxAttempts is the total number of download attempts.
	maxAttempts = 5
	// initialBackoff is the wait before the second attempt; it doubles
	// after each retry (2, 4, 8, 16s).
	initialBackoff = 2 * time.Second
)

// Downloader fetches a URL to a local file with retry and resume.
type Downloader struct {
	client      *http.Client
	maxAttempts int
	backoff     time.Duration
	sleep       func(time.Duration)
}

// New creates a downloader with the default transfer limits.
func New() *Downloader {
	transport := cleanhttp.DefaultTransport()
	transport.DialContext = (&net.Dialer{
		Timeout:   connectTimeout,
		KeepAlive: 30 * time.Second,
	}).DialContext

	return &Downloader{
		client:      &http.Client{Timeout: overallTimeout, Transport: transport},
		maxAttempts: maxAttempts,
		backoff:     initialBackoff,
		sleep:       time.Sleep,
	}
}

// SetHTTPClient sets the HTTP client (useful for testing).
func (d *Downloader) SetHTTPClient(client *http.Client) {
	d.client = client
}

// Fetch downloads url to destPath and returns the final byte size. A
// transfer that completes with zero bytes is treated as a transient failure
// and retried like any other. Exhausting all attempts yields a
// DownloadError naming the URL.
func (d *Downloader) Fetch(ctx context.Context, url, destPath string) (int64, error) {
	var lastErr error
	backoff := d.backoff

	for attempt := 1; attempt <= d.maxAttempts; attempt++ {
		if attempt > 1 {
			d.sleep(backoff)
			backoff *= 2
		}
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}

		size, err := d.attempt(ctx, url, destPath)
		if err == nil {
			if size > 0 {
				return size, nil
			}
			// A "succeeded but empty" response cannot be resumed.
			lastErr = fmt.Errorf("empty response body")
			os.Remove(destPath)
			continue
		}

		lastErr = err
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}
	}

	return 0, &errors.DownloadError{URL: url, Attempts: d.maxAttempts, Err: lastErr}
}

// attempt performs one transfer, continuing from whatever a previous
// attempt already wrote.
func (d *Downloader) attempt(ctx context.Context, url, destPath string) (int64, error) {
	var offset int64
	if info, err := os.Stat(destPath); err == nil {
		offset = info.Size()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "binget")
	if offset > 0 {
		req.Header.Set("Range", fmt.Sprintf("bytes=%d-", offset))
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	var flags int
	switch resp.StatusCode {
	case http.StatusPartialContent:
		flags = os.O_WRONLY | os.O_APPEND
	case http.StatusOK:
		// Server ignored the Range header; start over.
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
		offset = 0
	case http.StatusRequestedRangeNotSatisfiable:
		// The partial file already holds the full body.
		return offset, nil
	default:
		return 0, fmt.Errorf("unexpected status code %d", resp.StatusCode)
	}

	f, err := os.OpenFile(destPath, flags|os.O_CREATE, 0644)
	if err != nil {
		return 0, fmt.Errorf("open destination: %w", err)
	}

	written, copyErr := io.Copy(f, resp.Body)
	if closeErr := f.Close(); copyErr == nil {
		copyErr = closeErr
	}
	if copyErr != nil {
		// Keep the partial file so the next attempt can resume it.
		return 0, fmt.Errorf("copy response body: %w", copyErr)
	}

	return offset + written, nil
}
