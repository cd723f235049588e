package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"wordcharts/internal/validation"
)

// Document is a single fetched page. It lives until text extraction.
type Document struct {
	URL       string
	Markup    string
	Encoding  string
	Truncated bool // body was cut at MaxBodyBytes
}

// Options configures a Fetcher.
type Options struct {
	UserAgent         string
	Timeout           time.Duration // 0 keeps the http.Client default
	MaxBodyBytes      int64         // 0 means unlimited
	AllowPrivateHosts bool
}

// Fetcher downloads pages over HTTP.
type Fetcher struct {
	client *http.Client
	opts   Options
}

// New creates a fetcher.
func New(opts Options) *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: opts.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return errors.New("too many redirects")
				}
				return nil
			},
		},
		opts: opts,
	}
}

// Fetch issues a GET for url and returns its body decoded as UTF-8.
// Failures wrap ErrNetwork or ErrUnsupportedContent.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*Document, error) {
	if valid, msg := validation.ValidateURLForFetch(url, f.opts.AllowPrivateHosts); !valid {
		return nil, fmt.Errorf("%w: %s", ErrNetwork, msg)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid request: %v", ErrNetwork, err)
	}
	if f.opts.UserAgent != "" {
		req.Header.Set("User-Agent", f.opts.UserAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: HTTP %s", ErrNetwork, resp.Status)
	}

	contentType := resp.Header.Get("Content-Type")
	if !IsUTF8Text(contentType) {
		return nil, fmt.Errorf("%w: content-type %q", ErrUnsupportedContent, contentType)
	}

	var body io.Reader = resp.Body
	if f.opts.MaxBodyBytes > 0 {
		body = io.LimitReader(resp.Body, f.opts.MaxBodyBytes+1)
	}
	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %v", ErrNetwork, err)
	}

	truncated := f.opts.MaxBodyBytes > 0 && int64(len(raw)) > f.opts.MaxBodyBytes
	if truncated {
		slog.Warn("response body exceeds limit, truncating", "url", url, "limit", f.opts.MaxBodyBytes)
		raw = trimPartialRune(raw[:f.opts.MaxBodyBytes])
	}

	return &Document{
		URL:       url,
		Markup:    strings.ToValidUTF8(string(raw), "�"),
		Encoding:  "utf-8",
		Truncated: truncated,
	}, nil
}

// trimPartialRune drops a multi-byte sequence cut off at the end of b.
func trimPartialRune(b []byte) []byte {
	for i := 0; i < utf8.UTFMax-1 && len(b) > 0; i++ {
		if r, size := utf8.DecodeLastRune(b); r != utf8.RuneError || size > 1 {
			return b
		}
		b = b[:len(b)-1]
	}
	return b
}

// IsUTF8Text reports whether a Content-Type header declares UTF-8 text.
// Both tokens are matched as substrings, case-insensitively.
func IsUTF8Text(contentType string) bool {
	ct := strings.ToLower(contentType)
	return strings.Contains(ct, "text") && strings.Contains(ct, "charset=utf-8")
}
