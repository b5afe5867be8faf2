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

const (
	GeminiKeyEnv     = "GOOGLE_API_KEY"
	GeminiDefaultURL = "https://generativelanguage.googleapis.com/v1beta"
)

type Gemini struct {
	// Key overrides the GOOGLE_API_KEY environment variable when set.
	Key, Model, BaseURL string
	DryRun              bool
	transport
}

func NewGemini(key, model, baseURL string, timeout time.Duration, rps, burst int) *Gemini {
	if model == "" {
		model = "gemini-pro"
	}
	if baseURL == "" {
		baseURL = GeminiDefaultURL
	}
	return &Gemini{
		Key:       key,
		Model:     model,
		BaseURL:   strings.TrimRight(baseURL, "/"),
		transport: newTransport(timeout, rps, burst),
	}
}

func (c *Gemini) Name() SourceName { return SourceGemini }

func (c *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	log := telemetry.L().With().Str("provider", string(c.Name())).Logger()

	// DRY_RUN mode: skip API call
	if c.DryRun {
		log.Info().Msg("gemini_dry_run_enabled")
		return DryRunText, nil
	}

	key, err := ResolveKey(c.Key, GeminiKeyEnv)
	if err != nil {
		return "", err
	}

	body := map[string]any{
		"contents": []any{
			map[string]any{
				"role": "user",
				"parts": []any{
					map[string]string{"text": prompt},
				},
			},
		},
		"generationConfig": map[string]any{
			"temperature":     0.7,
			"maxOutputTokens": 2048,
		},
	}
	b, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("%w: gemini encode: %v", mcq.ErrTransport, err)
	}
	log.Debug().Int("body_len", len(b)).Msg("gemini_request")

	url := fmt.Sprintf("%s/models/%s:generateContent", c.BaseURL, c.Model)
	t0 := time.Now()
	raw, err := c.do(ctx, c.Name(), func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-goog-api-key", key)
		return req, nil
	})
	if err != nil {
		log.Error().Err(err).Int("body_len", len(raw)).Msg("gemini_request_failed")
		return "", err
	}
	log.Debug().Int("body_len", len(raw)).Dur("latency", time.Since(t0)).Msg("gemini_response")

	var out struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
			FinishReason string `json:"finishReason"`
		} `json:"candidates"`
		PromptFeedback *struct {
			BlockReason string `json:"blockReason"`
		} `json:"promptFeedback"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("%w: gemini decode: %v", mcq.ErrTransport, err)
	}

	if out.PromptFeedback != nil && out.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("%w: gemini blocked: %s", mcq.ErrTransport, out.PromptFeedback.BlockReason)
	}

	var text strings.Builder
	if len(out.Candidates) > 0 {
		for _, p := range out.Candidates[0].Content.Parts {
			text.WriteString(p.Text)
		}
	}
	if strings.TrimSpace(text.String()) == "" {
		return "", fmt.Errorf("%w: gemini returned no text", mcq.ErrEmptyResponse)
	}
	return text.String(), nil
}

// DryRunText is what every source returns in dry-run mode.
const DryRunText = `Q1. Which data structure serves items in first-in, first-out order?
A. Stack
B. Queue
C. Heap
D. Tree
Correct Answer: B

Q2. What does HTTP status 404 mean?
A. Server error
B. Redirect
C. Not found
D. Unauthorized
Correct Answer: C`
