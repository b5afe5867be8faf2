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

const OpenAIKeyEnv = "OPENAI_API_KEY"

type OpenAI struct {
	Key, Model, BaseURL string
	DryRun              bool
	transport
}

func NewOpenAI(key, model, baseURL string, timeout time.Duration, rps, burst int) *OpenAI {
	if model == "" {
		model = "gpt-4o-mini"
	}
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	return &OpenAI{
		Key:       key,
		Model:     model,
		BaseURL:   strings.TrimRight(baseURL, "/"),
		transport: newTransport(timeout, rps, burst),
	}
}

func (c *OpenAI) Name() SourceName { return SourceOpenAI }

func (c *OpenAI) Generate(ctx context.Context, prompt string) (string, error) {
	log := telemetry.L().With().Str("provider", string(c.Name())).Logger()
	if c.DryRun {
		log.Info().Msg("openai_dry_run_enabled")
		return DryRunText, nil
	}

	key, err := ResolveKey(c.Key, OpenAIKeyEnv)
	if err != nil {
		return "", err
	}

	body := map[string]any{
		"model": c.Model,
		"messages": []map[string]any{
			{"role": "user", "content": prompt},
		},
		"temperature": 0.7,
	}
	b, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("%w: openai encode: %v", mcq.ErrTransport, err)
	}

	raw, err := c.do(ctx, c.Name(), func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/chat/completions", bytes.NewReader(b))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+key)
		req.Header.Set("Content-Type", "application/json")
		return req, nil
	})
	if err != nil {
		log.Error().Err(err).Msg("openai_request_failed")
		return "", err
	}
	log.Debug().Int("body_len", len(raw)).Msg("openai_response")

	text := extractOpenAIText(raw)
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: openai returned no text", mcq.ErrEmptyResponse)
	}
	return text, nil
}

// extractOpenAIText reads chat completions output, falling back to the
// Responses API shapes.
func extractOpenAIText(raw []byte) string {
	var r1 struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if json.Unmarshal(raw, &r1) == nil && len(r1.Choices) > 0 && strings.TrimSpace(r1.Choices[0].Message.Content) != "" {
		return r1.Choices[0].Message.Content
	}

	var r2 struct {
		OutputText string `json:"output_text"`
	}
	if json.Unmarshal(raw, &r2) == nil && strings.TrimSpace(r2.OutputText) != "" {
		return r2.OutputText
	}

	// output[].content[].text
	var r3 struct {
		Output []struct {
			Content []struct {
				Text string `json:"text"`
			} `json:"content"`
		} `json:"output"`
	}
	if json.Unmarshal(raw, &r3) == nil && len(r3.Output) > 0 {
		for _, c := range r3.Output[0].Content {
			if strings.TrimSpace(c.Text) != "" {
				return c.Text
			}
		}
	}
	return ""
}
