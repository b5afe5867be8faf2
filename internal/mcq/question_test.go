package mcq

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckAnswer(t *testing.T) {
	q := Question{Question: "?", Options: opts("1", "2", "3", "4"), CorrectAnswer: "C"}

	assert.True(t, CheckAnswer(q, "C"))
	assert.True(t, CheckAnswer(q, " c "))
	assert.False(t, CheckAnswer(q, "A"))
	assert.False(t, CheckAnswer(Question{}, ""), "no answer never matches")
}

func TestGrade(t *testing.T) {
	qs := []Question{
		{CorrectAnswer: "A"},
		{CorrectAnswer: "B"},
		{},
	}
	assert.Equal(t, Score{Correct: 1, Total: 3}, Grade(qs, []string{"a", "C", "A"}))
	assert.Equal(t, Score{Correct: 0, Total: 3}, Grade(qs, nil))
}
