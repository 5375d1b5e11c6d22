package podcast

import (
	"context"
	"fmt"
	"strings"

	"github.com/mohammad-safakhou/loopcast/provider"
)

// Enhancer assembles the raw script and runs the final formatting pass that
// pins the output to strict "Speaker: text" lines.
type Enhancer struct {
	llm         provider.CompletionProvider
	temperature float64
	maxTokens   int
}

func NewEnhancer(llm provider.CompletionProvider, temperature float64, maxTokens int) *Enhancer {
	return &Enhancer{llm: llm, temperature: temperature, maxTokens: maxTokens}
}

// AssembleScript concatenates the introduction and dialogue blocks, each
// followed by a blank line. dialogues must already be in section order; the
// orchestrator reassembles them by index before calling this.
func AssembleScript(introduction string, dialogues []string) string {
	var b strings.Builder
	b.WriteString(introduction)
	b.WriteString("\n\n")
	for _, d := range dialogues {
		b.WriteString(d)
		b.WriteString("\n\n")
	}
	return b.String()
}

// EnhanceScript runs the last language-model step of a run. Its output format
// is what the segmenter downstream depends on.
func (e *Enhancer) EnhanceScript(ctx context.Context, introduction string, dialogues []string) (string, error) {
	prompt := BuildEnhancementPrompt(AssembleScript(introduction, dialogues))
	script, err := e.llm.Complete(ctx, prompt, e.temperature, e.maxTokens)
	if err != nil {
		return "", fmt.Errorf("script enhancement failed: %w", err)
	}
	return script, nil
}
