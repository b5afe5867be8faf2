package quiz

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KumarAkash26/BOOK-RECOMMENDER-WITH-AI-QUIZ-GENERATOR/internal/config"
	"github.com/KumarAkash26/BOOK-RECOMMENDER-WITH-AI-QUIZ-GENERATOR/internal/mcq"
	"github.com/KumarAkash26/BOOK-RECOMMENDER-WITH-AI-QUIZ-GENERATOR/internal/providers"
)

func TestBuildClientSelectsProvider(t *testing.T) {
	for provider, want := range map[string]providers.SourceName{
		"":          providers.SourceGemini,
		"gemini":    providers.SourceGemini,
		"openai":    providers.SourceOpenAI,
		"anthropic": providers.SourceClaude,
		"claude":    providers.SourceClaude,
	} {
		c := BuildClient(&config.Config{GenerationProvider: provider, GenerationDryRun: true})
		assert.Equal(t, want, c.Name(), provider)

		text, err := c.Generate(context.Background(), "p")
		require.NoError(t, err, provider)
		assert.Equal(t, providers.DryRunText, text, "dry run applies to %q", provider)
	}
}

func TestBuildClientUsesSelectedProviderKey(t *testing.T) {
	t.Setenv(providers.OpenAIKeyEnv, "")
	t.Setenv(providers.GeminiKeyEnv, "")

	cfg := &config.Config{GenerationProvider: "openai", GenerationTimeout: time.Second}
	cfg.GoogleAPIKey = "gemini-only"
	_, err := BuildClient(cfg).Generate(context.Background(), "p")
	assert.True(t, errors.Is(err, mcq.ErrMissingCredential), "a gemini key does not satisfy openai")
}

func TestCheckTrimsAndBounds(t *testing.T) {
	h := NewHandler(&config.Config{MCQMaxQuestions: 3}, nil, nil)

	f := generateForm{Topic: "  Go  ", NumQuestions: 2}
	assert.Empty(t, h.check(&f))
	assert.Equal(t, "Go", f.Topic)

	assert.NotEmpty(t, h.check(&generateForm{Topic: "   ", NumQuestions: 2}))
	assert.NotEmpty(t, h.check(&generateForm{Topic: "Go", NumQuestions: 0}))
	assert.NotEmpty(t, h.check(&generateForm{Topic: "Go", NumQuestions: 4}))
}
