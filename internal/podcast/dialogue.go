package podcast

import (
	"context"
	"fmt"
	"strings"

	"github.com/mohammad-safakhou/loopcast/models"
	"github.com/mohammad-safakhou/loopcast/provider"
)

// DialogueWriter generates the introduction and per-section dialogue blocks.
// It holds no mutable state, so concurrent calls across sections are safe.
type DialogueWriter struct {
	llm         provider.CompletionProvider
	temperature float64
	maxTokens   int
}

func NewDialogueWriter(llm provider.CompletionProvider, temperature float64, maxTokens int) *DialogueWriter {
	return &DialogueWriter{llm: llm, temperature: temperature, maxTokens: maxTokens}
}

// MatchPost finds the first enriched post whose title contains the section
// title, case-insensitively. This is best effort, not a foreign key: no match
// is legal and yields nil.
func MatchPost(section models.Section, posts []models.EnrichedPost) *models.EnrichedPost {
	want := strings.ToLower(section.Title)
	for i := range posts {
		if strings.Contains(strings.ToLower(posts[i].Title), want) {
			return &posts[i]
		}
	}
	return nil
}

// BuildIntroductionContext collects (topic, summary) pairs for every section
// with a matching post. Pure: no I/O.
func BuildIntroductionContext(sections []models.Section, posts []models.EnrichedPost) string {
	var parts []string
	for _, section := range sections {
		post := MatchPost(section, posts)
		if post == nil {
			continue
		}
		parts = append(parts, fmt.Sprintf("Topic: %s\nSummary: %s", section.Title, post.Summary))
	}
	return strings.Join(parts, "\n\n")
}

// BuildSectionContext renders the matched post's full context block for one
// section, or "" when no post matches. Pure: no I/O.
func BuildSectionContext(section models.Section, posts []models.EnrichedPost) string {
	post := MatchPost(section, posts)
	if post == nil {
		return ""
	}
	return fmt.Sprintf(`
Relevant Context:
Title: %s
Summary: %s

Key URLs and their content:
%s

Top Comments:
%s
`, post.Title, post.Summary, FormatURLContent(post.URLContent), FormatComments(post.Comments))
}

// GenerateIntroduction produces the episode opening, constrained to exactly
// three speaker interactions.
func (d *DialogueWriter) GenerateIntroduction(ctx context.Context, sections []models.Section, posts []models.EnrichedPost) (string, error) {
	prompt := BuildIntroductionPrompt(BuildIntroductionContext(sections, posts))
	intro, err := d.llm.Complete(ctx, prompt, d.temperature, d.maxTokens)
	if err != nil {
		return "", fmt.Errorf("introduction generation failed: %w", err)
	}
	return intro, nil
}

// GenerateSectionDialogue produces the dialogue block for one section.
func (d *DialogueWriter) GenerateSectionDialogue(ctx context.Context, section models.Section, posts []models.EnrichedPost) (string, error) {
	prompt := BuildSectionDialoguePrompt(section, BuildSectionContext(section, posts))
	dialogue, err := d.llm.Complete(ctx, prompt, d.temperature, d.maxTokens)
	if err != nil {
		return "", fmt.Errorf("dialogue generation failed for section %q: %w", section.Title, err)
	}
	return dialogue, nil
}
