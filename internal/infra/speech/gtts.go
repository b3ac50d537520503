package speech

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultBaseURL = "https://translate.google.com/translate_tts"

// supported holds the language codes the TTS endpoint accepts directly.
var supported = map[string]struct{}{
	"en": {}, "es": {}, "fr": {}, "de": {}, "it": {}, "pt": {}, "ru": {},
	"ja": {}, "ko": {}, "ar": {}, "hi": {}, "bn": {}, "gu": {}, "kn": {},
	"ml": {}, "mr": {}, "pa": {}, "ta": {}, "te": {}, "ur": {},
}

// aliases maps codes the endpoint spells differently.
var aliases = map[string]string{
	"zh": "zh-CN",
}

// Client fetches MP3 speech audio for short texts.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a TTS client.
func NewClient(baseURL string) *Client {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(trimmed, "/"),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Synthesize renders text to MP3 bytes in the best available language.
func (c *Client) Synthesize(ctx context.Context, text, lang string) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("empty text for speech synthesis")
	}

	params := url.Values{}
	params.Set("ie", "UTF-8")
	params.Set("client", "tw-ob")
	params.Set("tl", pickLang(lang))
	params.Set("q", text)

	endpoint := fmt.Sprintf("%s?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build tts request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tts request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("tts request error: status=%d body=%s", resp.StatusCode, string(payload))
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read tts response: %w", err)
	}
	if len(audio) == 0 {
		return nil, fmt.Errorf("tts response empty")
	}
	return audio, nil
}

// pickLang chooses the best synthesis language: the requested one, its
// alias, then the Hindi fallback.
func pickLang(lang string) string {
	if _, ok := supported[lang]; ok {
		return lang
	}
	if alias, ok := aliases[lang]; ok {
		return alias
	}
	return "hi"
}
