package providers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KumarAkash26/BOOK-RECOMMENDER-WITH-AI-QUIZ-GENERATOR/internal/mcq"
)

type seenRequest struct {
	mu     sync.Mutex
	path   string
	header http.Header
}

func (s *seenRequest) Path() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.path
}

func (s *seenRequest) Header(k string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.header.Get(k)
}

func geminiServer(t *testing.T, status int, body string) (*httptest.Server, *seenRequest) {
	t.Helper()
	seen := &seenRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen.mu.Lock()
		seen.path = r.URL.Path
		seen.header = r.Header.Clone()
		seen.mu.Unlock()
		_, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, seen
}

func TestGeminiGenerate(t *testing.T) {
	srv, seen := geminiServer(t, http.StatusOK, `{"candidates":[{"content":{"parts":[{"text":"Q1. Hi?\n"},{"text":"A. a"}]}}]}`)

	g := NewGemini("test-key", "gemini-pro", srv.URL, time.Second, 100, 10)
	text, err := g.Generate(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "Q1. Hi?\nA. a", text)
	assert.Equal(t, "/models/gemini-pro:generateContent", seen.Path())
	assert.Equal(t, "test-key", seen.Header("X-goog-api-key"))
}

func TestGeminiErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"http error", http.StatusInternalServerError, `{"error":"boom"}`, mcq.ErrTransport},
		{"blocked prompt", http.StatusOK, `{"promptFeedback":{"blockReason":"SAFETY"}}`, mcq.ErrTransport},
		{"no candidates", http.StatusOK, `{"candidates":[]}`, mcq.ErrEmptyResponse},
		{"blank text", http.StatusOK, `{"candidates":[{"content":{"parts":[{"text":"  \n"}]}}]}`, mcq.ErrEmptyResponse},
		{"garbage body", http.StatusOK, `not json`, mcq.ErrTransport},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := geminiServer(t, tt.status, tt.body)
			g := NewGemini("k", "", srv.URL, time.Second, 100, 10)
			text, err := g.Generate(context.Background(), "prompt")
			assert.Empty(t, text)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestGeminiTimeoutIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	g := NewGemini("k", "", srv.URL, 50*time.Millisecond, 100, 10)
	_, err := g.Generate(context.Background(), "prompt")
	assert.True(t, errors.Is(err, mcq.ErrTransport), "got %v", err)
}

func TestGeminiUnreachableIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	g := NewGemini("k", "", url, time.Second, 100, 10)
	_, err := g.Generate(context.Background(), "prompt")
	assert.True(t, errors.Is(err, mcq.ErrTransport))
}

func TestGeminiMissingCredential(t *testing.T) {
	t.Setenv(GeminiKeyEnv, "")
	g := NewGemini("", "", "http://127.0.0.1:1", time.Second, 100, 10)
	_, err := g.Generate(context.Background(), "prompt")
	assert.True(t, errors.Is(err, mcq.ErrMissingCredential))
}

func TestGeminiKeyFromEnv(t *testing.T) {
	t.Setenv(GeminiKeyEnv, "env-key")
	srv, seen := geminiServer(t, http.StatusOK, `{"candidates":[{"content":{"parts":[{"text":"ok"}]}}]}`)

	g := NewGemini("", "", srv.URL, time.Second, 100, 10)
	_, err := g.Generate(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "env-key", seen.Header("X-goog-api-key"))
}

func TestGeminiDryRun(t *testing.T) {
	g := NewGemini("", "", "http://127.0.0.1:1", time.Second, 1, 1)
	g.DryRun = true
	text, err := g.Generate(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Len(t, mcq.Parse(text), 2)
}

func TestResolveKey(t *testing.T) {
	t.Setenv("BOOKQUIZ_TEST_API_KEY", "from-env")

	k, err := ResolveKey(" explicit ", "BOOKQUIZ_TEST_API_KEY")
	require.NoError(t, err)
	assert.Equal(t, "explicit", k, "override wins")

	k, err = ResolveKey("", "BOOKQUIZ_TEST_API_KEY")
	require.NoError(t, err)
	assert.Equal(t, "from-env", k)

	t.Setenv("BOOKQUIZ_TEST_API_KEY", "")
	_, err = ResolveKey("", "BOOKQUIZ_TEST_API_KEY")
	assert.True(t, errors.Is(err, mcq.ErrMissingCredential))
	assert.True(t, strings.Contains(err.Error(), "BOOKQUIZ_TEST_API_KEY"))
}
