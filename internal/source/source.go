// Package source reads raw input for the record generators: CSV tables
// and scripture corpora, fetched over HTTP or from local files.
package source

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// DefaultFetchTimeout bounds a single source download.
const DefaultFetchTimeout = 60 * time.Second

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// IsURL reports whether ref should be fetched over HTTP rather than
// read from the local filesystem.
func IsURL(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

// Fetch reads the raw bytes behind ref. An http(s) ref is downloaded
// with client (or a default client when nil); anything else is treated
// as a local file path. A leading UTF-8 BOM is stripped either way.
func Fetch(ctx context.Context, client *http.Client, ref string) ([]byte, error) {
	if !IsURL(ref) {
		data, err := os.ReadFile(ref)
		if err != nil {
			return nil, fmt.Errorf("failed to read source file: %w", err)
		}
		return bytes.TrimPrefix(data, utf8BOM), nil
	}

	if client == nil {
		client = &http.Client{Timeout: DefaultFetchTimeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", ref, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", ref, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return bytes.TrimPrefix(data, utf8BOM), nil
}
