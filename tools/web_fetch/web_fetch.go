package web_fetch

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"log"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mohammad-safakhou/loopcast/tools/web_fetch/chromedp"
	"github.com/mohammad-safakhou/loopcast/tools/web_fetch/httpfetch"
	"github.com/mohammad-safakhou/loopcast/tools/web_fetch/models"
)

const (
	DefaultTimeoutMS = 15000 * time.Millisecond
	MaxCharsDefault  = 20000

	// Backoff applied to rate-limited fetches before giving up on a URL.
	backoffBase     = 4 * time.Second
	backoffCap      = 60 * time.Second
	DefaultAttempts = 3
)

type WebFetcher interface {
	Exec(ctx context.Context, url string) (models.Result, error)
}

type FetcherType string

const (
	ChromedpFetcherType FetcherType = "chromedp"
	HTTPFetcherType     FetcherType = "http"
)

func NewWebFetcher(fetcherType FetcherType, timeoutMS time.Duration, maxChars int) (WebFetcher, error) {
	if timeoutMS <= 0 {
		timeoutMS = DefaultTimeoutMS
	}
	if maxChars <= 0 {
		maxChars = MaxCharsDefault
	}

	switch fetcherType {
	case ChromedpFetcherType:
		return &chromedp.Fetch{TimeoutMS: timeoutMS, MaxChars: maxChars}, nil
	case HTTPFetcherType:
		return &httpfetch.Fetch{TimeoutMS: timeoutMS, MaxChars: maxChars}, nil
	default:
		return nil, &Error{"unsupported fetcher type"}
	}
}

type Error struct {
	Message string
}

func (e *Error) Error() string { return e.Message }

// ContentFetcher wraps a WebFetcher with the per-URL failure policy the
// pipeline relies on: rate-limited fetches are retried with exponential
// backoff up to MaxAttempts, every other failure is an absence. Successful
// fetches are optionally cached in redis.
type ContentFetcher struct {
	fetcher     WebFetcher
	cache       *redis.Client
	cacheTTL    time.Duration
	maxAttempts int
	backoff     time.Duration
	logger      *log.Logger
}

// NewContentFetcher builds the wrapper. cache may be nil to disable caching.
func NewContentFetcher(fetcher WebFetcher, cache *redis.Client, cacheTTL time.Duration, maxAttempts int, logger *log.Logger) *ContentFetcher {
	if maxAttempts <= 0 {
		maxAttempts = DefaultAttempts
	}
	if logger == nil {
		logger = log.New(log.Writer(), "[FETCH] ", log.LstdFlags)
	}
	return &ContentFetcher{
		fetcher:     fetcher,
		cache:       cache,
		cacheTTL:    cacheTTL,
		maxAttempts: maxAttempts,
		backoff:     backoffBase,
		logger:      logger,
	}
}

// FetchContent returns the extracted article text for a URL, or ok=false when
// the URL could not be fetched. Absence is not an error: a dead link must not
// abort the posts that reference it.
func (c *ContentFetcher) FetchContent(ctx context.Context, url string) (string, bool) {
	if text, ok := c.cacheGet(ctx, url); ok {
		return text, true
	}

	delay := c.backoff
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		result, err := c.fetcher.Exec(ctx, url)
		if err != nil {
			c.logger.Printf("fetch failed for %s: %v", url, err)
			return "", false
		}

		if result.Status == http.StatusTooManyRequests {
			if attempt == c.maxAttempts {
				c.logger.Printf("rate limit persisted for %s after %d attempts, giving up", url, attempt)
				return "", false
			}
			c.logger.Printf("rate limit hit for %s, retrying in %s", url, delay)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return "", false
			}
			delay *= 2
			if delay > backoffCap {
				delay = backoffCap
			}
			continue
		}

		if !result.Usable() {
			c.logger.Printf("no usable content for %s (status %d)", url, result.Status)
			return "", false
		}

		c.cacheSet(ctx, url, result.Text)
		return result.Text, true
	}
	return "", false
}

func cacheKey(url string) string {
	sum := sha1.Sum([]byte(url))
	return "loopcast:url:" + hex.EncodeToString(sum[:])
}

func (c *ContentFetcher) cacheGet(ctx context.Context, url string) (string, bool) {
	if c.cache == nil {
		return "", false
	}
	text, err := c.cache.Get(ctx, cacheKey(url)).Result()
	if err == redis.Nil {
		return "", false
	}
	if err != nil {
		c.logger.Printf("cache read failed for %s: %v", url, err)
		return "", false
	}
	return text, true
}

func (c *ContentFetcher) cacheSet(ctx context.Context, url, text string) {
	if c.cache == nil {
		return
	}
	if err := c.cache.Set(ctx, cacheKey(url), text, c.cacheTTL).Err(); err != nil {
		c.logger.Printf("cache write failed for %s: %v", url, err)
	}
}
