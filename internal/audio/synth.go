package audio

import (
	"context"
	"fmt"

	"github.com/mohammad-safakhou/loopcast/config"
	"github.com/mohammad-safakhou/loopcast/models"
)

// Synthesizer turns one utterance into WAV audio for the given speaker.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string, speaker models.Speaker) ([]byte, error)
}

// NewSynthesizer builds a synthesizer for the configured speech service.
func NewSynthesizer(cfg config.SpeechConfig) (Synthesizer, error) {
	switch cfg.Service {
	case "azure":
		return newAzureSynthesizer(cfg)
	case "elevenlabs":
		return newElevenLabsSynthesizer(cfg)
	default:
		return nil, fmt.Errorf("unknown speech service: %s", cfg.Service)
	}
}

func voiceFor(cfg config.SpeechConfig, speaker models.Speaker, defaults map[models.Speaker]config.VoiceConfig) config.VoiceConfig {
	if v, ok := cfg.Voices[string(speaker)]; ok {
		return v
	}
	return defaults[speaker]
}
