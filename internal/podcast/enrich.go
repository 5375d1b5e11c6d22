package podcast

import (
	"context"
	"fmt"
	"log"

	"github.com/mohammad-safakhou/loopcast/models"
	"github.com/mohammad-safakhou/loopcast/provider"
)

// ContentFetcher is the slice of the scraping collaborator the enricher needs.
// ok=false means the URL yielded nothing; it never aborts the post.
type ContentFetcher interface {
	FetchContent(ctx context.Context, url string) (string, bool)
}

// Enricher turns one RawPost into an EnrichedPost: extract and scrape the
// post's links, then summarize the whole thing with the completion provider.
type Enricher struct {
	fetcher     ContentFetcher
	llm         provider.CompletionProvider
	temperature float64
	maxTokens   int
	logger      *log.Logger
}

func NewEnricher(fetcher ContentFetcher, llm provider.CompletionProvider, temperature float64, maxTokens int, logger *log.Logger) *Enricher {
	if logger == nil {
		logger = log.New(log.Writer(), "[ENRICH] ", log.LstdFlags)
	}
	return &Enricher{
		fetcher:     fetcher,
		llm:         llm,
		temperature: temperature,
		maxTokens:   maxTokens,
		logger:      logger,
	}
}

// GatherURLs collects candidate URLs from the post body, its canonical URL and
// every comment body, validated and deduplicated.
func GatherURLs(post models.RawPost) []string {
	urls := ExtractURLs(post.SelfText)
	if post.URL != "" && IsValidURL(post.URL) {
		urls = append(urls, post.URL)
	}
	for _, comment := range post.Comments {
		urls = append(urls, ExtractURLs(comment.Body)...)
	}
	return DedupeURLs(urls)
}

// Enrich processes one post. Per-URL fetch failures are logged and skipped; a
// summary completion failure is fatal because the post is useless downstream
// without one.
func (e *Enricher) Enrich(ctx context.Context, post models.RawPost) (models.EnrichedPost, error) {
	urls := GatherURLs(post)

	urlContent := make(map[string]string, len(urls))
	for _, u := range urls {
		content, ok := e.fetcher.FetchContent(ctx, u)
		if !ok {
			e.logger.Printf("skipping url %s for post %q", u, post.Title)
			continue
		}
		urlContent[u] = content
	}

	summary, err := e.llm.Complete(ctx, BuildSummaryPrompt(post, urlContent), e.temperature, e.maxTokens)
	if err != nil {
		return models.EnrichedPost{}, fmt.Errorf("summary failed for post %q: %w", post.Title, err)
	}

	return models.EnrichedPost{
		Title:         post.Title,
		SelfText:      post.SelfText,
		URL:           post.URL,
		Comments:      post.Comments,
		ExtractedURLs: urls,
		URLContent:    urlContent,
		Summary:       summary,
	}, nil
}
