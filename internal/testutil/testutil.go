// Package testutil provides test utilities and helpers.
package testutil

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// UTF8HTML is the content type most test pages are served with.
const UTF8HTML = "text/html; charset=utf-8"

// ChinesePage is a small article whose visible text is Chinese, with script and
// style content that must not be extracted.
const ChinesePage = `<!DOCTYPE html>
<html>
<head>
  <title>苹果 香蕉</title>
  <style>.苹果 { color: red; }</style>
  <script>var 香蕉 = "樱桃";</script>
</head>
<body>
  <h1>苹果 香蕉</h1>
  <p>苹果 苹果 樱桃</p>
  <p>Only English here</p>
  <!-- 注释 注释 -->
  <p>  苹果 香蕉 樱桃  </p>
</body>
</html>`

// EnglishPage contains no CJK characters at all.
const EnglishPage = `<html><body><h1>Hello</h1><p>Nothing to see here.</p></body></html>`

// Request captures what a PageServer received.
type Request struct {
	Method    string
	Path      string
	UserAgent string
}

// PageServer serves body with the given status and content type and records
// every request it sees.
type PageServer struct {
	*httptest.Server

	mu       sync.Mutex
	requests []Request
}

// NewPageServer starts a PageServer and registers its shutdown with t.Cleanup.
func NewPageServer(t *testing.T, status int, contentType, body string) *PageServer {
	t.Helper()

	ps := &PageServer{}
	ps.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ps.mu.Lock()
		ps.requests = append(ps.requests, Request{Method: r.Method, Path: r.URL.Path, UserAgent: r.UserAgent()})
		ps.mu.Unlock()

		if contentType != "" {
			w.Header().Set("Content-Type", contentType)
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(ps.Close)

	return ps
}

// Requests returns a copy of the recorded requests.
func (ps *PageServer) Requests() []Request {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return append([]Request(nil), ps.requests...)
}

// Hits returns how many requests the server received.
func (ps *PageServer) Hits() int {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return len(ps.requests)
}

// FakeSegmenter splits on whitespace, which is enough to drive the counting
// logic without loading a dictionary.
type FakeSegmenter struct {
	mu    sync.Mutex
	calls int
}

// Segment implements the segmenter contract.
func (f *FakeSegmenter) Segment(text string) []string {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	return strings.Fields(text)
}

// Calls returns how many times Segment ran.
func (f *FakeSegmenter) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}
