package fetcher

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"wordcharts/internal/testutil"
)

func newTestFetcher() *Fetcher {
	return New(Options{
		UserAgent:         "test-agent/1.0",
		AllowPrivateHosts: true,
	})
}

func TestIsUTF8Text(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		want        bool
	}{
		{"html utf-8", "text/html; charset=utf-8", true},
		{"uppercase", "TEXT/HTML; CHARSET=UTF-8", true},
		{"plain text", "text/plain;charset=utf-8", true},
		{"gbk", "text/html; charset=gbk", false},
		{"no charset", "text/html", false},
		{"json utf-8", "application/json; charset=utf-8", false},
		{"spaced charset", "text/html; charset = utf-8", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUTF8Text(tt.contentType); got != tt.want {
				t.Errorf("IsUTF8Text(%q) = %v, want %v", tt.contentType, got, tt.want)
			}
		})
	}
}

func TestFetchSuccess(t *testing.T) {
	srv := testutil.NewPageServer(t, http.StatusOK, testutil.UTF8HTML, testutil.ChinesePage)

	doc, err := newTestFetcher().Fetch(context.Background(), srv.URL+"/article")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if doc.Markup != testutil.ChinesePage {
		t.Error("markup does not match served body")
	}
	if doc.Encoding != "utf-8" {
		t.Errorf("Encoding = %q, want utf-8", doc.Encoding)
	}

	reqs := srv.Requests()
	if len(reqs) != 1 {
		t.Fatalf("expected 1 request, got %d", len(reqs))
	}
	if reqs[0].Method != http.MethodGet {
		t.Errorf("method = %s, want GET", reqs[0].Method)
	}
	if reqs[0].UserAgent != "test-agent/1.0" {
		t.Errorf("User-Agent = %q", reqs[0].UserAgent)
	}
}

func TestFetchFailures(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		contentType string
		wantErr     error
	}{
		{"not found", http.StatusNotFound, testutil.UTF8HTML, ErrNetwork},
		{"server error", http.StatusInternalServerError, testutil.UTF8HTML, ErrNetwork},
		{"gbk page", http.StatusOK, "text/html; charset=gbk", ErrUnsupportedContent},
		{"missing charset", http.StatusOK, "text/html", ErrUnsupportedContent},
		{"binary", http.StatusOK, "image/png", ErrUnsupportedContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := testutil.NewPageServer(t, tt.status, tt.contentType, testutil.ChinesePage)

			_, err := newTestFetcher().Fetch(context.Background(), srv.URL)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Fetch() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestFetchInvalidURL(t *testing.T) {
	f := newTestFetcher()
	for _, u := range []string{"", "ftp://example.com", "not a url"} {
		if _, err := f.Fetch(context.Background(), u); !errors.Is(err, ErrNetwork) {
			t.Errorf("Fetch(%q) error = %v, want ErrNetwork", u, err)
		}
	}
}

func TestFetchBlocksPrivateHosts(t *testing.T) {
	srv := testutil.NewPageServer(t, http.StatusOK, testutil.UTF8HTML, testutil.ChinesePage)

	f := New(Options{})
	_, err := f.Fetch(context.Background(), srv.URL)
	if !errors.Is(err, ErrNetwork) {
		t.Fatalf("Fetch() error = %v, want ErrNetwork", err)
	}
	if srv.Hits() != 0 {
		t.Error("blocked URL must not be requested")
	}
}

func TestFetchUnreachable(t *testing.T) {
	srv := testutil.NewPageServer(t, http.StatusOK, testutil.UTF8HTML, "")
	url := srv.URL
	srv.Close()

	if _, err := newTestFetcher().Fetch(context.Background(), url); !errors.Is(err, ErrNetwork) {
		t.Fatalf("Fetch() error = %v, want ErrNetwork", err)
	}
}

func TestFetchForcesUTF8AndLimitsBody(t *testing.T) {
	body := "中文\xff\xfe内容" + strings.Repeat("x", 100)
	srv := testutil.NewPageServer(t, http.StatusOK, testutil.UTF8HTML, body)

	f := New(Options{AllowPrivateHosts: true, MaxBodyBytes: 16})
	doc, err := f.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(doc.Markup) > 16+len("�")*2 {
		t.Errorf("body not limited: %d bytes", len(doc.Markup))
	}
	if !strings.HasPrefix(doc.Markup, "中文�内容") {
		t.Errorf("invalid bytes not replaced: %q", doc.Markup)
	}
}

func TestFetchTruncatesOnRuneBoundary(t *testing.T) {
	srv := testutil.NewPageServer(t, http.StatusOK, testutil.UTF8HTML, "苹果香蕉")

	// 7 bytes ends one byte into 香.
	f := New(Options{AllowPrivateHosts: true, MaxBodyBytes: 7})
	doc, err := f.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if doc.Markup != "苹果" {
		t.Errorf("Markup = %q, want %q", doc.Markup, "苹果")
	}
	if !doc.Truncated {
		t.Error("Truncated = false, want true")
	}

	exact := New(Options{AllowPrivateHosts: true, MaxBodyBytes: int64(len("苹果香蕉"))})
	doc, err = exact.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if doc.Truncated || doc.Markup != "苹果香蕉" {
		t.Errorf("body at the limit: Markup %q Truncated %v", doc.Markup, doc.Truncated)
	}
}
