package mcq

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPrompt(t *testing.T) {
	p, err := BuildPrompt("  Go channels ", 3)
	require.NoError(t, err)
	assert.Contains(t, p, "Generate 3 multiple-choice questions about Go channels.")
	assert.Contains(t, p, "4 options (A, B, C, D)")
	assert.Contains(t, p, "Correct Answer:")
	assert.Contains(t, p, "Q1. Question text\nA. Option A\nB. Option B\nC. Option C\nD. Option D\n")
}

func TestBuildPromptIsPure(t *testing.T) {
	a, _ := BuildPrompt("history", 5)
	b, _ := BuildPrompt("history", 5)
	assert.Equal(t, a, b)
}

func TestBuildPromptRejectsBadInput(t *testing.T) {
	tests := []struct {
		name  string
		topic string
		count int
	}{
		{"zero count", "history", 0},
		{"negative count", "history", -2},
		{"empty topic", "", 5},
		{"blank topic", "   ", 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := BuildPrompt(tt.topic, tt.count)
			assert.Empty(t, p)
			assert.True(t, errors.Is(err, ErrInvalidArgument))
			assert.Equal(t, "invalid_argument", Kind(err))
		})
	}
}

func TestKind(t *testing.T) {
	assert.Equal(t, "ok", Kind(nil))
	assert.Equal(t, "transport_error", Kind(errors.Join(errors.New("dial"), ErrTransport)))
	assert.Equal(t, "empty_response", Kind(ErrEmptyResponse))
	assert.Equal(t, "missing_credential", Kind(ErrMissingCredential))
	assert.Equal(t, "unknown", Kind(errors.New("boom")))

	assert.True(t, Recoverable(ErrTransport))
	assert.True(t, Recoverable(ErrEmptyResponse))
	assert.False(t, Recoverable(ErrMissingCredential))
}
