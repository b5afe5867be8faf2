package quiz

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KumarAkash26/BOOK-RECOMMENDER-WITH-AI-QUIZ-GENERATOR/internal/cache"
	"github.com/KumarAkash26/BOOK-RECOMMENDER-WITH-AI-QUIZ-GENERATOR/internal/mcq"
	"github.com/KumarAkash26/BOOK-RECOMMENDER-WITH-AI-QUIZ-GENERATOR/internal/providers"
)

const sampleReply = `Q1. What is 2+2?
A. 3
B. 4
C. 5
D. 6
Correct Answer: B`

type stubClient struct {
	text    string
	err     error
	calls   int
	prompts []string
}

func (s *stubClient) Name() providers.SourceName { return "STUB" }

func (s *stubClient) Generate(_ context.Context, prompt string) (string, error) {
	s.calls++
	s.prompts = append(s.prompts, prompt)
	return s.text, s.err
}

type memCache struct {
	data   map[string][]mcq.Question
	getErr error
}

func newMemCache() *memCache { return &memCache{data: map[string][]mcq.Question{}} }

func (m *memCache) Get(_ context.Context, key string) ([]mcq.Question, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	qs, ok := m.data[key]
	if !ok {
		return nil, cache.ErrMiss
	}
	return qs, nil
}

func (m *memCache) Put(_ context.Context, key string, qs []mcq.Question) error {
	m.data[key] = qs
	return nil
}

func TestGenerateParsesReply(t *testing.T) {
	stub := &stubClient{text: sampleReply}
	svc := NewService(stub, nil)

	qs, err := svc.Generate(context.Background(), "arithmetic", 1)
	require.NoError(t, err)
	require.Len(t, qs, 1)
	assert.Equal(t, "What is 2+2?", qs[0].Question)
	assert.Equal(t, "B", qs[0].CorrectAnswer)
	require.Len(t, stub.prompts, 1)
	assert.Contains(t, stub.prompts[0], "Generate 1 multiple-choice questions about arithmetic.")
}

func TestGenerateInvalidArgument(t *testing.T) {
	stub := &stubClient{text: sampleReply}
	svc := NewService(stub, nil)

	_, err := svc.Generate(context.Background(), "", 3)
	assert.True(t, errors.Is(err, mcq.ErrInvalidArgument))
	_, err = svc.Generate(context.Background(), "topic", 0)
	assert.True(t, errors.Is(err, mcq.ErrInvalidArgument))
	assert.Zero(t, stub.calls, "bad input never reaches the source")
}

func TestGenerateRecoversTransportAndEmpty(t *testing.T) {
	for _, err := range []error{
		fmt.Errorf("%w: connection refused", mcq.ErrTransport),
		fmt.Errorf("%w: no text", mcq.ErrEmptyResponse),
		errors.New("something unexpected"),
	} {
		svc := NewService(&stubClient{err: err}, nil)
		qs, gerr := svc.Generate(context.Background(), "topic", 2)
		assert.NoError(t, gerr)
		assert.NotNil(t, qs)
		assert.Empty(t, qs)
	}
}

func TestGenerateMissingCredentialPropagates(t *testing.T) {
	svc := NewService(&stubClient{err: fmt.Errorf("%w: set GOOGLE_API_KEY", mcq.ErrMissingCredential)}, nil)
	qs, err := svc.Generate(context.Background(), "topic", 2)
	assert.Nil(t, qs)
	assert.True(t, errors.Is(err, mcq.ErrMissingCredential))
}

func TestGenerateUnparseableReplyIsEmpty(t *testing.T) {
	svc := NewService(&stubClient{text: "I cannot help with that."}, nil)
	qs, err := svc.Generate(context.Background(), "topic", 2)
	require.NoError(t, err)
	assert.Empty(t, qs)
}

func TestGenerateUsesCache(t *testing.T) {
	stub := &stubClient{text: sampleReply}
	c := newMemCache()
	svc := NewService(stub, c)

	first, err := svc.Generate(context.Background(), "Arithmetic", 1)
	require.NoError(t, err)
	second, err := svc.Generate(context.Background(), "arithmetic ", 1)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, stub.calls)
}

func TestGenerateDoesNotCacheEmpty(t *testing.T) {
	stub := &stubClient{err: mcq.ErrTransport}
	c := newMemCache()
	svc := NewService(stub, c)

	_, _ = svc.Generate(context.Background(), "topic", 1)
	assert.Empty(t, c.data)
}

func TestGenerateCacheErrorFallsThrough(t *testing.T) {
	stub := &stubClient{text: sampleReply}
	c := newMemCache()
	c.getErr = errors.New("redis down")
	svc := NewService(stub, c)

	qs, err := svc.Generate(context.Background(), "topic", 1)
	require.NoError(t, err)
	assert.Len(t, qs, 1)
	assert.Equal(t, 1, stub.calls)
}
