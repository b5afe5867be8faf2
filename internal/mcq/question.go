// Package mcq holds the multiple-choice question model, the prompt sent to the
// generation source, and the parser that turns free-text model output back
// into questions.
package mcq

import "strings"

// Letters is the fixed, ordered option key set.
var Letters = []string{"A", "B", "C", "D"}

type Question struct {
	Question string            `json:"question"`
	Options  map[string]string `json:"options"`
	// CorrectAnswer is one of Letters, or empty when the source gave none.
	CorrectAnswer string `json:"correct_answer,omitempty"`
}

func (q Question) HasAnswer() bool { return q.CorrectAnswer != "" }

// IsLetter reports whether s is an option key.
func IsLetter(s string) bool {
	for _, l := range Letters {
		if s == l {
			return true
		}
	}
	return false
}

// CheckAnswer compares a user's answer case-insensitively against the
// question's correct answer. A question without an answer never matches.
func CheckAnswer(q Question, answer string) bool {
	if !q.HasAnswer() {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(answer), q.CorrectAnswer)
}

type Score struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// Grade scores answers against questions by position. Missing answers count
// as wrong.
func Grade(questions []Question, answers []string) Score {
	s := Score{Total: len(questions)}
	for i, q := range questions {
		if i < len(answers) && CheckAnswer(q, answers[i]) {
			s.Correct++
		}
	}
	return s
}
