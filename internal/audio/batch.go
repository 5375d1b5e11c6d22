package audio

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mohammad-safakhou/loopcast/models"
)

// Batcher synthesizes an ordered list of segments into WAV files inside a
// run directory. Each filename embeds a 13-digit ordering key so a later
// merge can restore script order regardless of directory listing order.
type Batcher struct {
	synth  Synthesizer
	logger *log.Logger

	// now is swapped in tests for deterministic keys.
	now func() time.Time
}

func NewBatcher(synth Synthesizer) *Batcher {
	return &Batcher{
		synth:  synth,
		logger: log.New(log.Writer(), "[AUDIO] ", log.LstdFlags),
		now:    time.Now,
	}
}

// SynthesizeAll writes one WAV per non-empty segment into dir and returns the
// written paths in segment order. Any synthesis or write failure aborts the
// whole batch.
func (b *Batcher) SynthesizeAll(ctx context.Context, segments []models.Segment, dir string) ([]string, error) {
	base := b.now().UnixMilli()

	paths := make([]string, 0, len(segments))
	for _, seg := range segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			b.logger.Printf("skipping empty segment %d (%s)", seg.Ordinal, seg.Speaker)
			continue
		}

		data, err := b.synth.Synthesize(ctx, text, seg.Speaker)
		if err != nil {
			return nil, fmt.Errorf("synthesizing segment %d (%s): %w", seg.Ordinal, seg.Speaker, err)
		}

		name := fmt.Sprintf("%s_%013d.wav", strings.ToLower(string(seg.Speaker)), base+int64(seg.Ordinal))
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return nil, fmt.Errorf("writing segment %d: %w", seg.Ordinal, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
