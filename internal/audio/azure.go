package audio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/mohammad-safakhou/loopcast/config"
	"github.com/mohammad-safakhou/loopcast/models"
)

var azureDefaultVoices = map[models.Speaker]config.VoiceConfig{
	models.SpeakerHost:    {VoiceName: "en-US-JasonNeural", Style: "chat"},
	models.SpeakerLearner: {VoiceName: "en-US-JennyNeural", Style: "friendly"},
	models.SpeakerExpert:  {VoiceName: "en-US-GuyNeural", Style: "professional"},
}

type azureSynthesizer struct {
	key        string
	endpoint   string
	cfg        config.SpeechConfig
	httpClient *http.Client
}

func newAzureSynthesizer(cfg config.SpeechConfig) (*azureSynthesizer, error) {
	return &azureSynthesizer{
		key:        cfg.AzureKey,
		endpoint:   fmt.Sprintf("https://%s.tts.speech.microsoft.com/cognitiveservices/v1", cfg.AzureRegion),
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

func (a *azureSynthesizer) Synthesize(ctx context.Context, text string, speaker models.Speaker) ([]byte, error) {
	voice := voiceFor(a.cfg, speaker, azureDefaultVoices)

	ssml := fmt.Sprintf(`<speak version="1.0" xmlns="http://www.w3.org/2001/10/synthesis" xmlns:mstts="https://www.w3.org/2001/mstts" xml:lang="en-US">`+
		`<voice name="%s"><mstts:express-as style="%s">%s</mstts:express-as></voice></speak>`,
		voice.VoiceName, voice.Style, escapeSSML(text))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, bytes.NewBufferString(ssml))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", a.key)
	req.Header.Set("Content-Type", "application/ssml+xml")
	req.Header.Set("X-Microsoft-OutputFormat", "riff-24khz-16bit-mono-pcm")
	req.Header.Set("User-Agent", "loopcast")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("speech API returned status code %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}

var ssmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func escapeSSML(text string) string {
	return ssmlEscaper.Replace(text)
}
