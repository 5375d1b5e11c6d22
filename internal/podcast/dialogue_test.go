package podcast

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/mohammad-safakhou/loopcast/models"
)

func TestMatchPost(t *testing.T) {
	t.Parallel()
	posts := []models.EnrichedPost{
		{Title: "Unrelated", Summary: "s0"},
		{Title: "This Is An Exact Match Case", Summary: "s1"},
		{Title: "Another Exact Match Somewhere", Summary: "s2"},
	}

	t.Run("case-insensitive substring, first match wins", func(t *testing.T) {
		got := MatchPost(models.Section{Title: "exact match"}, posts)
		if got == nil || got.Summary != "s1" {
			t.Fatalf("expected first matching post, got %+v", got)
		}
	})

	t.Run("no match is legal", func(t *testing.T) {
		if got := MatchPost(models.Section{Title: "nothing like this"}, posts); got != nil {
			t.Fatalf("expected nil, got %+v", got)
		}
	})
}

func TestBuildIntroductionContext(t *testing.T) {
	t.Parallel()
	sections := []models.Section{
		{Title: "Exact Match"},
		{Title: "Unmatched Topic"},
	}
	posts := []models.EnrichedPost{
		{Title: "This Is An Exact Match Case", Summary: "the summary"},
	}

	got := BuildIntroductionContext(sections, posts)
	if !strings.Contains(got, "Topic: Exact Match") || !strings.Contains(got, "Summary: the summary") {
		t.Fatalf("context missing matched pair: %q", got)
	}
	if strings.Contains(got, "Unmatched Topic") {
		t.Fatalf("unmatched section leaked into context: %q", got)
	}
}

func TestBuildSectionContext(t *testing.T) {
	t.Parallel()
	section := models.Section{Title: "Match", Points: []string{"a"}}
	posts := []models.EnrichedPost{{
		Title:      "A Match Indeed",
		Summary:    "sum",
		URLContent: map[string]string{"https://example.com": "content"},
		Comments:   []models.Comment{{Author: "u1", Score: 7, Body: "hot take"}},
	}}

	got := BuildSectionContext(section, posts)
	for _, want := range []string{"Title: A Match Indeed", "Summary: sum", "URL: https://example.com", "- u1 (Score: 7): hot take"} {
		if !strings.Contains(got, want) {
			t.Fatalf("section context missing %q in %q", want, got)
		}
	}

	if got := BuildSectionContext(models.Section{Title: "zzz"}, posts); got != "" {
		t.Fatalf("expected empty context for unmatched section, got %q", got)
	}
}

type fakeLLM struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeLLM) Complete(ctx context.Context, prompt string, temperature float64, maxTokens int) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func TestGenerateSectionDialoguePromptContents(t *testing.T) {
	t.Parallel()
	llm := &fakeLLM{response: "Host: hi"}
	w := NewDialogueWriter(llm, 0.7, 0)

	section := models.Section{Title: "Topic", Points: []string{"first point", "second point"}}
	out, err := w.GenerateSectionDialogue(context.Background(), section, nil)
	if err != nil {
		t.Fatalf("GenerateSectionDialogue() error = %v", err)
	}
	if out != "Host: hi" {
		t.Fatalf("got %q", out)
	}
	prompt := llm.prompts[0]
	if !strings.Contains(prompt, "Section Title: Topic") || !strings.Contains(prompt, "- first point") {
		t.Fatalf("prompt missing section material: %q", prompt)
	}
}

func TestAssembleScriptOrder(t *testing.T) {
	t.Parallel()
	got := AssembleScript("intro", []string{"d1", "d2"})
	want := "intro\n\nd1\n\nd2\n\n"
	if got != want {
		t.Fatalf("AssembleScript() = %q, want %q", got, want)
	}
}

func TestFormatURLContentTruncates(t *testing.T) {
	t.Parallel()
	long := strings.Repeat("x", 600)
	got := FormatURLContent(map[string]string{"https://a.example": long})
	if !strings.Contains(got, strings.Repeat("x", 500)+"...") {
		t.Fatalf("expected 500-char truncation with ellipsis")
	}
	if strings.Contains(got, strings.Repeat("x", 501)) {
		t.Fatalf("content not truncated at 500 chars")
	}
}

func TestFormatURLContentTruncatesOnRuneBoundary(t *testing.T) {
	t.Parallel()
	long := strings.Repeat("é", 600)
	got := FormatURLContent(map[string]string{"https://a.example": long})
	if !utf8.ValidString(got) {
		t.Fatalf("truncation produced invalid UTF-8")
	}
	if !strings.Contains(got, strings.Repeat("é", 500)+"...") {
		t.Fatalf("expected 500-rune truncation with ellipsis")
	}
	if strings.Contains(got, strings.Repeat("é", 501)) {
		t.Fatalf("content not truncated at 500 runes")
	}
}
