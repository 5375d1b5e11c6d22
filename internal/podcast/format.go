package podcast

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mohammad-safakhou/loopcast/models"
)

// FormatComments renders comments for prompt context, one per line.
func FormatComments(comments []models.Comment) string {
	lines := make([]string, 0, len(comments))
	for _, c := range comments {
		lines = append(lines, fmt.Sprintf("- %s (Score: %d): %s", c.Author, c.Score, c.Body))
	}
	return strings.Join(lines, "\n")
}

// FormatURLContent renders fetched link content for prompt context. Each entry
// is truncated to 500 characters and suffixed with an ellipsis. Entries are
// ordered by URL so the output is deterministic.
func FormatURLContent(urlContent map[string]string) string {
	urls := make([]string, 0, len(urlContent))
	for u := range urlContent {
		urls = append(urls, u)
	}
	sort.Strings(urls)

	parts := make([]string, 0, len(urls))
	for _, u := range urls {
		content := urlContent[u]
		// Truncation counts runes so a multi-byte character is never split.
		if runes := []rune(content); len(runes) > 500 {
			content = string(runes[:500])
		}
		parts = append(parts, fmt.Sprintf("URL: %s\nContent: %s...", u, content))
	}
	return strings.Join(parts, "\n\n")
}

// FormatPostsForPlan renders enriched posts as the planning prompt's input.
func FormatPostsForPlan(posts []models.EnrichedPost) string {
	parts := make([]string, 0, len(posts))
	for i, post := range posts {
		parts = append(parts, fmt.Sprintf(`Post %d:
Title: %s
Summary: %s

Key Points from Related Content:
%s

Notable Discussion:
%s

---`, i+1, post.Title, post.Summary, FormatURLContent(post.URLContent), FormatComments(post.Comments)))
	}
	return strings.Join(parts, "\n")
}
