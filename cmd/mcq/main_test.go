package main

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KumarAkash26/BOOK-RECOMMENDER-WITH-AI-QUIZ-GENERATOR/internal/mcq"
	"github.com/KumarAkash26/BOOK-RECOMMENDER-WITH-AI-QUIZ-GENERATOR/internal/providers"
)

func sample(t *testing.T) []mcq.Question {
	t.Helper()
	qs := mcq.Parse(providers.DryRunText)
	require.Len(t, qs, 2)
	return qs
}

func TestDisplayEmpty(t *testing.T) {
	var buf bytes.Buffer
	assert.False(t, display(&buf, nil))
	assert.Equal(t, "No MCQs to display.\n", buf.String())
}

func TestDisplayListsOptionsInOrder(t *testing.T) {
	var buf bytes.Buffer
	require.True(t, display(&buf, sample(t)))

	out := buf.String()
	assert.Contains(t, out, "Q2. What does HTTP status 404 mean?")
	assert.Less(t, strings.Index(out, "A. Stack"), strings.Index(out, "D. Tree"))
	assert.Contains(t, out, "Correct Answer: C")
}

func TestRunQuizScores(t *testing.T) {
	var buf bytes.Buffer
	in := bufio.NewReader(strings.NewReader("x\nb\nA\n"))

	score := runQuiz(in, &buf, sample(t))
	assert.Equal(t, mcq.Score{Correct: 1, Total: 2}, score)
	assert.Contains(t, buf.String(), "Please answer with A, B, C or D.")
	assert.Contains(t, buf.String(), "The correct answer is C.")
}

func TestRunQuizStopsAtEOF(t *testing.T) {
	var buf bytes.Buffer
	in := bufio.NewReader(strings.NewReader("B"))

	score := runQuiz(in, &buf, sample(t))
	assert.Equal(t, mcq.Score{Correct: 1, Total: 2}, score)
}

func TestAskInt(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, 3, askInt(bufio.NewReader(strings.NewReader("zero\n-1\n3\n")), &buf, "n: ", 5))
	assert.Equal(t, 2, strings.Count(buf.String(), "positive number"))

	assert.Equal(t, 5, askInt(bufio.NewReader(strings.NewReader("")), &buf, "n: ", 5))
}
