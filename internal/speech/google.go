package speech

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

const defaultLanguage = "en-US"

// GoogleSynthesizer calls the Google Cloud text-to-speech REST API and
// caches results on disk keyed by text, language and voice, so repeated
// playback of the same prompt costs one API call.
type GoogleSynthesizer struct {
	apiKey     string
	cacheDir   string
	httpClient *http.Client
}

func NewGoogleSynthesizer(apiKey, cacheDir string) *GoogleSynthesizer {
	os.MkdirAll(cacheDir, 0o755)
	return &GoogleSynthesizer{
		apiKey:   apiKey,
		cacheDir: cacheDir,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (g *GoogleSynthesizer) cacheKey(req Request) string {
	h := sha256.Sum256([]byte(req.Language + ":" + req.Voice + ":" + req.Text))
	return hex.EncodeToString(h[:16])
}

func (g *GoogleSynthesizer) Synthesize(ctx context.Context, req Request) (Audio, error) {
	cachePath := filepath.Join(g.cacheDir, g.cacheKey(req)+".mp3")
	if data, err := os.ReadFile(cachePath); err == nil {
		return Audio{Data: data, MIME: "audio/mpeg"}, nil
	}

	data, err := g.call(ctx, req)
	if err != nil {
		return Audio{}, err
	}

	// Cache successes only.
	os.WriteFile(cachePath, data, 0o644)
	return Audio{Data: data, MIME: "audio/mpeg"}, nil
}

func (g *GoogleSynthesizer) call(ctx context.Context, req Request) ([]byte, error) {
	lang := req.Language
	if lang == "" {
		lang = defaultLanguage
	}

	voice := map[string]interface{}{"languageCode": lang}
	if req.Voice != "" {
		voice["name"] = req.Voice
	}
	audioConfig := map[string]interface{}{"audioEncoding": "MP3"}
	if req.Rate != 0 {
		audioConfig["speakingRate"] = req.Rate
	}
	if req.Pitch != 0 {
		audioConfig["pitch"] = req.Pitch
	}

	body, err := json.Marshal(map[string]interface{}{
		"input":       map[string]string{"text": req.Text},
		"voice":       voice,
		"audioConfig": audioConfig,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := "https://texttospeech.googleapis.com/v1/text:synthesize?key=" + g.apiKey
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("tts request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tts api error %d: %s", resp.StatusCode, string(respBody))
	}

	var result struct {
		AudioContent string `json:"audioContent"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	audio, err := base64.StdEncoding.DecodeString(result.AudioContent)
	if err != nil {
		return nil, fmt.Errorf("decode audio: %w", err)
	}
	return audio, nil
}

// Voices lists the API's voices for the requested language prefix.
func (g *GoogleSynthesizer) Voices(ctx context.Context) ([]Voice, error) {
	url := "https://texttospeech.googleapis.com/v1/voices?key=" + g.apiKey
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("voices request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("voices api error %d: %s", resp.StatusCode, string(respBody))
	}

	var result struct {
		Voices []struct {
			Name          string   `json:"name"`
			LanguageCodes []string `json:"languageCodes"`
		} `json:"voices"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	voices := make([]Voice, 0, len(result.Voices))
	for _, v := range result.Voices {
		lang := ""
		if len(v.LanguageCodes) > 0 {
			lang = v.LanguageCodes[0]
		}
		voices = append(voices, Voice{Name: v.Name, Language: lang})
	}
	return voices, nil
}
