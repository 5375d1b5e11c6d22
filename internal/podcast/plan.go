package podcast

import (
	"context"
	"fmt"
	"strings"

	"github.com/mohammad-safakhou/loopcast/models"
	"github.com/mohammad-safakhou/loopcast/provider"
)

// ParseScriptPlan parses a markdown-like plan into ordered sections. Lines
// starting with '#' (any header level) open a section, lines starting with '-'
// add a point to the open section. Bullets before the first header are dropped.
// Malformed input degrades to fewer sections, never an error.
func ParseScriptPlan(content string) []models.Section {
	var sections []models.Section
	var current *models.Section

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, "#"):
			if current != nil {
				sections = append(sections, *current)
			}
			title := strings.TrimSpace(strings.TrimLeft(line, "#"))
			current = &models.Section{Title: title, Points: []string{}}
		case strings.HasPrefix(line, "-"):
			if current != nil {
				point := strings.TrimSpace(strings.TrimLeft(line, "- "))
				current.Points = append(current.Points, point)
			}
		}
	}

	if current != nil {
		sections = append(sections, *current)
	}
	return sections
}

// Planner asks the completion provider for an episode plan and parses it.
type Planner struct {
	llm         provider.CompletionProvider
	temperature float64
	maxTokens   int
}

func NewPlanner(llm provider.CompletionProvider, temperature float64, maxTokens int) *Planner {
	return &Planner{llm: llm, temperature: temperature, maxTokens: maxTokens}
}

// GeneratePlan returns the raw plan text and its parsed sections.
func (p *Planner) GeneratePlan(ctx context.Context, posts []models.EnrichedPost) (string, []models.Section, error) {
	plan, err := p.llm.Complete(ctx, BuildPlanPrompt(posts), p.temperature, p.maxTokens)
	if err != nil {
		return "", nil, fmt.Errorf("plan generation failed: %w", err)
	}
	return plan, ParseScriptPlan(plan), nil
}
