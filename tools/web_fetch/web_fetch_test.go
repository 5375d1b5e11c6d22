package web_fetch

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"github.com/mohammad-safakhou/loopcast/tools/web_fetch/models"
)

type scriptedFetcher struct {
	results []models.Result
	calls   int
}

func (s *scriptedFetcher) Exec(ctx context.Context, url string) (models.Result, error) {
	r := s.results[s.calls]
	if s.calls < len(s.results)-1 {
		s.calls++
	}
	return r, nil
}

func newTestFetcher(f WebFetcher) *ContentFetcher {
	cf := NewContentFetcher(f, nil, 0, 3, log.New(os.Stderr, "[FETCH-TEST] ", log.LstdFlags))
	cf.backoff = time.Millisecond
	return cf
}

func TestFetchContentSuccess(t *testing.T) {
	t.Parallel()
	cf := newTestFetcher(&scriptedFetcher{results: []models.Result{
		{URL: "https://example.com", Status: 200, Text: "article body"},
	}})

	text, ok := cf.FetchContent(context.Background(), "https://example.com")
	if !ok {
		t.Fatalf("expected content")
	}
	if text != "article body" {
		t.Fatalf("got %q", text)
	}
}

func TestFetchContentRetriesRateLimit(t *testing.T) {
	t.Parallel()
	f := &scriptedFetcher{results: []models.Result{
		{URL: "u", Status: 429},
		{URL: "u", Status: 429},
		{URL: "u", Status: 200, Text: "late arrival"},
	}}
	cf := newTestFetcher(f)

	text, ok := cf.FetchContent(context.Background(), "https://slow.example.com")
	if !ok || text != "late arrival" {
		t.Fatalf("expected recovery after rate limits, got ok=%v text=%q", ok, text)
	}
	if f.calls != 2 {
		t.Fatalf("expected 2 retries before success, got %d", f.calls)
	}
}

func TestFetchContentGivesUpAfterAttemptCap(t *testing.T) {
	t.Parallel()
	cf := newTestFetcher(&scriptedFetcher{results: []models.Result{
		{URL: "u", Status: 429},
	}})

	if _, ok := cf.FetchContent(context.Background(), "https://limited.example.com"); ok {
		t.Fatalf("expected absence after persistent rate limiting")
	}
}

func TestFetchContentAbsenceOnPermanentFailure(t *testing.T) {
	t.Parallel()
	cf := newTestFetcher(&scriptedFetcher{results: []models.Result{
		{URL: "u", Status: 404},
	}})

	if _, ok := cf.FetchContent(context.Background(), "https://gone.example.com"); ok {
		t.Fatalf("404 must yield absence, not content")
	}
}

func TestNewWebFetcherRejectsUnknownType(t *testing.T) {
	t.Parallel()
	if _, err := NewWebFetcher("carrier-pigeon", 0, 0); err == nil {
		t.Fatalf("expected error for unknown fetcher type")
	}
}
