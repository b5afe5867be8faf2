package providers

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/KumarAkash26/BOOK-RECOMMENDER-WITH-AI-QUIZ-GENERATOR/internal/mcq"
	"github.com/KumarAkash26/BOOK-RECOMMENDER-WITH-AI-QUIZ-GENERATOR/internal/telemetry"
)

const AnthropicKeyEnv = "ANTHROPIC_API_KEY"

type Anthropic struct {
	Key, Model, BaseURL string
	DryRun              bool
	transport
}

func NewAnthropic(key, model, baseURL string, timeout time.Duration, rps, burst int) *Anthropic {
	if model == "" {
		model = "claude-3-5-sonnet-latest"
	}
	if baseURL == "" {
		baseURL = "https://api.anthropic.com/v1"
	}
	return &Anthropic{
		Key:       key,
		Model:     model,
		BaseURL:   strings.TrimRight(baseURL, "/"),
		transport: newTransport(timeout, rps, burst),
	}
}

func (c *Anthropic) Name() SourceName { return SourceClaude }

func (c *Anthropic) Generate(ctx context.Context, prompt string) (string, error) {
	log := telemetry.L().With().Str("provider", string(c.Name())).Logger()
	if c.DryRun {
		log.Info().Msg("anthropic_dry_run_enabled")
		return DryRunText, nil
	}

	key, err := ResolveKey(c.Key, AnthropicKeyEnv)
	if err != nil {
		return "", err
	}

	body := map[string]any{
		"model":      c.Model,
		"max_tokens": 2048,
		"messages": []map[string]any{
			{"role": "user", "content": prompt},
		},
	}
	b, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("%w: anthropic encode: %v", mcq.ErrTransport, err)
	}

	raw, err := c.do(ctx, c.Name(), func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/messages", bytes.NewReader(b))
		if err != nil {
			return nil, err
		}
		req.Header.Set("x-api-key", key)
		req.Header.Set("anthropic-version", "2023-06-01")
		req.Header.Set("Content-Type", "application/json")
		return req, nil
	})
	if err != nil {
		log.Error().Err(err).Msg("anthropic_request_failed")
		return "", err
	}

	var out struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	_ = json.Unmarshal(raw, &out)

	var text strings.Builder
	for _, c := range out.Content {
		if c.Type == "" || c.Type == "text" {
			text.WriteString(c.Text)
		}
	}
	if strings.TrimSpace(text.String()) == "" {
		return "", fmt.Errorf("%w: anthropic empty content", mcq.ErrEmptyResponse)
	}
	return text.String(), nil
}
