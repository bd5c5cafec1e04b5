// Package fetch implements the Fetcher interface.
// It performs a single bounded HTTP GET with a desktop-browser header set.
// Non-2xx responses are reported as *StatusError, everything that prevents a
// response from being read is a *TransportError.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
	"golang.org/x/net/html/charset"

	"github.com/Fichusgg/casa-score-br/core"
)

const (
	defaultTimeout   = 20 * time.Second
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

	// maxBodyBytes caps how much of a page is read; the rest is dropped.
	maxBodyBytes = 10 << 20
)

// browserHeaders are sent on every request. User-Agent is set separately.
var browserHeaders = map[string]string{
	"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8",
	"Accept-Language":           "pt-BR,pt;q=0.9,en-US;q=0.8,en;q=0.7",
	"Accept-Encoding":           "gzip, deflate, zstd",
	"Cache-Control":             "no-cache",
	"Upgrade-Insecure-Requests": "1",
	"Sec-Fetch-Dest":            "document",
	"Sec-Fetch-Mode":            "navigate",
	"Sec-Fetch-Site":            "none",
	"Sec-Fetch-User":            "?1",
}

// Config holds the fetcher settings. Zero values are replaced by defaults.
type Config struct {
	Timeout      time.Duration     `yaml:"timeout"`
	UserAgent    string            `yaml:"user_agent"`
	ExtraHeaders map[string]string `yaml:"extra_headers"`
}

// WithDefaults returns a copy of the config with default values applied for zero-value fields.
func (c Config) WithDefaults() Config {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.UserAgent == "" {
		c.UserAgent = defaultUserAgent
	}
	return c
}

// StatusError is returned when the server answers with a non-2xx status.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d for %s", e.StatusCode, e.URL)
}

// TransportError wraps DNS, connection, timeout and body read failures.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// HTTPFetcher fetches listing pages via HTTP.
type HTTPFetcher struct {
	cfg    Config
	client *http.Client
}

// New creates an HTTPFetcher from cfg.
func New(cfg Config) *HTTPFetcher {
	cfg = cfg.WithDefaults()
	return &HTTPFetcher{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// Fetch retrieves the markup of the given URL with exactly one request.
// Cancelling ctx aborts the request and releases the connection.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*core.FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &TransportError{URL: url, Err: fmt.Errorf("creating request: %w", err)}
	}
	for k, v := range browserHeaders {
		req.Header.Set(k, v)
	}
	req.Header.Set("User-Agent", f.cfg.UserAgent)
	for k, v := range f.cfg.ExtraHeaders {
		req.Header.Set(k, v)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := readBody(resp)
	if err != nil {
		return nil, &TransportError{URL: url, Err: fmt.Errorf("reading response body: %w", err)}
	}

	return &core.FetchResult{
		URL:        url,
		StatusCode: resp.StatusCode,
		HTML:       string(body),
	}, nil
}

// readBody decodes the response according to its Content-Encoding and
// returns UTF-8. The
// transport only decompresses transparently when it chose the
// Accept-Encoding itself, which is not the case here.
func readBody(resp *http.Response) ([]byte, error) {
	var r io.Reader = resp.Body

	switch strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Encoding"))) {
	case "", "identity":
	case "gzip":
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		defer gz.Close()
		r = gz
	case "deflate":
		zr, err := zlib.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("deflate: %w", err)
		}
		defer zr.Close()
		r = zr
	case "zstd":
		zr, err := zstd.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		defer zr.Close()
		r = zr
	default:
		return nil, fmt.Errorf("unsupported content encoding %q", resp.Header.Get("Content-Encoding"))
	}

	// Marketplace pages are not always UTF-8; transcode from the declared
	// or sniffed charset so downstream text matching sees real characters.
	cr, err := charset.NewReader(io.LimitReader(r, maxBodyBytes), resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("charset: %w", err)
	}
	return io.ReadAll(cr)
}
