package mcq

import (
	"fmt"
	"regexp"
	"strings"
)

// Parse scans model output for question blocks of the shape
//
//	Q1. Question text
//	A. Option
//	B. Option
//	C. Option
//	D. Option
//	Correct Answer: B
//
// and returns them in source order. A block whose option lines are missing or
// out of order is abandoned and scanning resumes on the following line. The
// answer line is optional. Parse never fails; text with no usable blocks
// yields an empty slice.
func Parse(text string) []Question {
	qs, _ := ParseWithReport(text)
	return qs
}

// ParseReport counts what the scanner saw.
type ParseReport struct {
	Blocks        int // question lines found
	Emitted       int
	Abandoned     int // blocks dropped for missing options
	MissingAnswer int // emitted without a usable answer
}

// Err returns ErrParseIncomplete when any block was dropped or came back
// without an answer, nil otherwise.
func (r ParseReport) Err() error {
	if r.Abandoned == 0 && r.MissingAnswer == 0 {
		return nil
	}
	return fmt.Errorf("%w: %d of %d blocks abandoned, %d without answer",
		ErrParseIncomplete, r.Abandoned, r.Blocks, r.MissingAnswer)
}

var (
	rxQuestion = regexp.MustCompile(`^Q\d+\.\s+(.+)$`)
	rxOption   = regexp.MustCompile(`^([A-D])\.\s*(.*)$`)
	rxAnswer   = regexp.MustCompile(`(?i)^correct answer\s*:\s*(.*)$`)

	// "B", "(B)", "B.", "b:"
	rxLetterOnly = regexp.MustCompile(`^\(?([A-Da-d])\)?[.:]?$`)
	// "B. 4", "B) 4", "(B) 4", "B: 4"
	rxLetterText = regexp.MustCompile(`^\(?([A-Da-d])[.):]\s+\S.*$`)
	// "Option B", "choice (b)"
	rxLetterPrefix = regexp.MustCompile(`(?i)^(?:option|choice)\s+`)
)

func ParseWithReport(text string) ([]Question, ParseReport) {
	var rep ParseReport
	lines := splitLines(text)
	out := []Question{}

	for i := 0; i < len(lines); {
		m := rxQuestion.FindStringSubmatch(lines[i])
		if m == nil {
			i++
			continue
		}
		rep.Blocks++

		q, consumed, ok := parseBlock(lines, i, strings.TrimSpace(m[1]))
		if !ok {
			rep.Abandoned++
			i++
			continue
		}
		if !q.HasAnswer() {
			rep.MissingAnswer++
		}
		out = append(out, q)
		rep.Emitted++
		i += consumed
	}
	return out, rep
}

// parseBlock reads the four option lines and the optional answer line after
// the question at lines[at]. It reports how many lines the block used.
func parseBlock(lines []string, at int, question string) (Question, int, bool) {
	q := Question{Question: question, Options: make(map[string]string, len(Letters))}

	for k, letter := range Letters {
		idx := at + 1 + k
		if idx >= len(lines) {
			return Question{}, 0, false
		}
		om := rxOption.FindStringSubmatch(lines[idx])
		if om == nil || om[1] != letter {
			return Question{}, 0, false
		}
		q.Options[letter] = strings.TrimSpace(om[2])
	}

	idx := at + 1 + len(Letters)
	if idx < len(lines) {
		if am := rxAnswer.FindStringSubmatch(lines[idx]); am != nil {
			q.CorrectAnswer = answerLetter(am[1])
			return q, len(Letters) + 2, true
		}
	}
	return q, len(Letters) + 1, true
}

// answerLetter extracts a single option letter from the text after the
// answer marker, or returns "" when it does not name exactly one.
func answerLetter(s string) string {
	s = rxLetterPrefix.ReplaceAllString(strings.TrimSpace(s), "")
	if m := rxLetterOnly.FindStringSubmatch(s); m != nil {
		return strings.ToUpper(m[1])
	}
	if m := rxLetterText.FindStringSubmatch(s); m != nil {
		return strings.ToUpper(m[1])
	}
	return ""
}

// splitLines breaks text on newlines and trims each line for classification.
func splitLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, len(raw))
	for i, l := range raw {
		lines[i] = strings.TrimSpace(l)
	}
	return lines
}
