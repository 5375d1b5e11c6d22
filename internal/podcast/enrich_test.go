package podcast

import (
	"context"
	"errors"
	"testing"

	"github.com/mohammad-safakhou/loopcast/models"
)

type mapFetcher map[string]string

func (m mapFetcher) FetchContent(_ context.Context, url string) (string, bool) {
	text, ok := m[url]
	return text, ok
}

func TestGatherURLs(t *testing.T) {
	t.Parallel()

	post := models.RawPost{
		SelfText: "see https://news.example.com/a and https://imgur.com/x",
		URL:      "https://blog.example.com/post",
		Comments: []models.Comment{
			{Body: "context at https://news.example.com/a"},
			{Body: "also https://other.example.org/b"},
		},
	}

	got := GatherURLs(post)
	want := []string{
		"https://news.example.com/a",
		"https://blog.example.com/post",
		"https://other.example.org/b",
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("url %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestEnrichTolerantFetchFatalSummary(t *testing.T) {
	t.Parallel()

	post := models.RawPost{
		Title:    "What happened with the thing",
		SelfText: "links: https://up.example.com/a https://down.example.com/b",
	}
	fetcher := mapFetcher{"https://up.example.com/a": "article text"}

	llm := &fakeLLM{response: "a summary"}
	e := NewEnricher(fetcher, llm, 0.7, 0, nil)

	enriched, err := e.Enrich(context.Background(), post)
	if err != nil {
		t.Fatalf("Enrich: %v", err)
	}
	if enriched.Summary != "a summary" {
		t.Errorf("Summary = %q", enriched.Summary)
	}
	if len(enriched.ExtractedURLs) != 2 {
		t.Errorf("ExtractedURLs = %v", enriched.ExtractedURLs)
	}

	// Only the fetchable URL lands in URLContent; the failed one is skipped,
	// and every key must be one of the extracted URLs.
	if len(enriched.URLContent) != 1 {
		t.Fatalf("URLContent = %v", enriched.URLContent)
	}
	for u := range enriched.URLContent {
		found := false
		for _, x := range enriched.ExtractedURLs {
			if u == x {
				found = true
			}
		}
		if !found {
			t.Errorf("URLContent key %s not among extracted URLs", u)
		}
	}

	// A failed summary is fatal for the post.
	bad := NewEnricher(fetcher, &fakeLLM{err: errors.New("model overloaded")}, 0.7, 0, nil)
	if _, err := bad.Enrich(context.Background(), post); err == nil {
		t.Fatal("expected error from summary failure")
	}
}
