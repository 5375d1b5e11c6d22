package audio

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/mohammad-safakhou/loopcast/config"
	"github.com/mohammad-safakhou/loopcast/models"
)

var elevenDefaultVoices = map[models.Speaker]config.VoiceConfig{
	models.SpeakerHost:    {VoiceID: "cjVigY5qzO86Huf0OWal", Stability: 0.75, SimilarityBoost: 0.75, StyleDegree: 0.35},
	models.SpeakerLearner: {VoiceID: "cgSgspJ2msm6clMCkdW9", Stability: 0.65, SimilarityBoost: 0.70, StyleDegree: 0.45},
	models.SpeakerExpert:  {VoiceID: "onwK4e9ZLuTAKqWW03F9", Stability: 0.85, SimilarityBoost: 0.80, StyleDegree: 0.25},
}

const elevenLabsAPIBase = "https://api.elevenlabs.io"

// default PCM rate when speech.sample_rate is unset.
const defaultSampleRate = 24000

type elevenLabsSynthesizer struct {
	key        string
	baseURL    string
	sampleRate int
	cfg        config.SpeechConfig
	httpClient *http.Client
}

type elevenLabsRequest struct {
	Text          string             `json:"text"`
	ModelID       string             `json:"model_id"`
	VoiceSettings elevenVoiceSetting `json:"voice_settings"`
}

type elevenVoiceSetting struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
	Style           float64 `json:"style"`
}

func newElevenLabsSynthesizer(cfg config.SpeechConfig) (*elevenLabsSynthesizer, error) {
	rate := cfg.SampleRate
	if rate <= 0 {
		rate = defaultSampleRate
	}
	return &elevenLabsSynthesizer{
		key:        cfg.ElevenKey,
		baseURL:    elevenLabsAPIBase,
		sampleRate: rate,
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

func (e *elevenLabsSynthesizer) Synthesize(ctx context.Context, text string, speaker models.Speaker) ([]byte, error) {
	voice := voiceFor(e.cfg, speaker, elevenDefaultVoices)

	payload := elevenLabsRequest{
		Text:    text,
		ModelID: "eleven_multilingual_v2",
		VoiceSettings: elevenVoiceSetting{
			Stability:       voice.Stability,
			SimilarityBoost: voice.SimilarityBoost,
			Style:           voice.StyleDegree,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	// The requested PCM rate and the WAV header rate must agree or the merged
	// episode plays pitch-shifted.
	url := fmt.Sprintf("%s/v1/text-to-speech/%s?output_format=pcm_%d", e.baseURL, voice.VoiceID, e.sampleRate)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("xi-api-key", e.key)
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	pcm, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("speech API returned status code %d: %s", resp.StatusCode, string(pcm))
	}
	return wrapPCM(pcm, e.sampleRate), nil
}

// wrapPCM prefixes raw 16-bit mono PCM with a RIFF/WAVE header so the rest of
// the pipeline only ever handles WAV files.
func wrapPCM(pcm []byte, sampleRate int) []byte {
	const (
		channels      = 1
		bitsPerSample = 16
	)
	byteRate := sampleRate * channels * bitsPerSample / 8

	var buf bytes.Buffer
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+len(pcm)))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(channels))
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(&buf, binary.LittleEndian, uint32(byteRate))
	binary.Write(&buf, binary.LittleEndian, uint16(channels*bitsPerSample/8))
	binary.Write(&buf, binary.LittleEndian, uint16(bitsPerSample))
	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(len(pcm)))
	buf.Write(pcm)
	return buf.Bytes()
}
