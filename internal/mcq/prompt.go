package mcq

import (
	"fmt"
	"strings"
)

// BuildPrompt returns the instruction sent to the generation source for count
// questions about topic.
func BuildPrompt(topic string, count int) (string, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return "", fmt.Errorf("%w: topic must not be empty", ErrInvalidArgument)
	}
	if count < 1 {
		return "", fmt.Errorf("%w: question count must be at least 1, got %d", ErrInvalidArgument, count)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Generate %d multiple-choice questions about %s.\n", count, topic)
	b.WriteString("Each question should have 4 options (A, B, C, D).\n")
	b.WriteString("Indicate the correct option on its own line with the text \"Correct Answer:\" after the options.\n")
	b.WriteString("No Markdown, no numbering other than shown, no extra text.\n")
	b.WriteString("Format as follows:\n")
	b.WriteString("Q1. Question text\n")
	b.WriteString("A. Option A\n")
	b.WriteString("B. Option B\n")
	b.WriteString("C. Option C\n")
	b.WriteString("D. Option D\n")
	b.WriteString("Correct Answer: (A or B or C or D)\n")
	return b.String(), nil
}
