package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/KumarAkash26/BOOK-RECOMMENDER-WITH-AI-QUIZ-GENERATOR/internal/mcq"
)

var (
	questionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	optionStyle   = lipgloss.NewStyle().PaddingLeft(2)
	answerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	promptStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	errStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	scoreStyle    = lipgloss.NewStyle().Bold(true).Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// display prints every question with its options and known answer. It
// reports false when there was nothing to show.
func display(w io.Writer, qs []mcq.Question) bool {
	if len(qs) == 0 {
		fmt.Fprintln(w, "No MCQs to display.")
		return false
	}
	for i, q := range qs {
		fmt.Fprintln(w, questionStyle.Render(fmt.Sprintf("Q%d. %s", i+1, q.Question)))
		for _, l := range mcq.Letters {
			fmt.Fprintln(w, optionStyle.Render(fmt.Sprintf("%s. %s", l, q.Options[l])))
		}
		if q.HasAnswer() {
			fmt.Fprintln(w, answerStyle.Render("Correct Answer: "+q.CorrectAnswer))
		}
		fmt.Fprintln(w)
	}
	return true
}

// runQuiz asks each question in turn. Answers outside A-D are asked again;
// EOF counts the remaining questions as wrong.
func runQuiz(in *bufio.Reader, w io.Writer, qs []mcq.Question) mcq.Score {
	answers := make([]string, len(qs))
	for i, q := range qs {
		fmt.Fprintln(w, questionStyle.Render(fmt.Sprintf("Q%d. %s", i+1, q.Question)))
		for _, l := range mcq.Letters {
			fmt.Fprintln(w, optionStyle.Render(fmt.Sprintf("%s. %s", l, q.Options[l])))
		}

		ans, ok := readLetter(in, w)
		if !ok {
			break
		}
		answers[i] = ans
		switch {
		case !q.HasAnswer():
			fmt.Fprintln(w, "No answer key for this question.")
		case mcq.CheckAnswer(q, ans):
			fmt.Fprintln(w, answerStyle.Render("Correct!"))
		default:
			fmt.Fprintln(w, errStyle.Render("Wrong! The correct answer is "+q.CorrectAnswer+"."))
		}
		fmt.Fprintln(w)
	}
	return mcq.Grade(qs, answers)
}

func readLetter(in *bufio.Reader, w io.Writer) (string, bool) {
	for {
		fmt.Fprint(w, promptStyle.Render("Your answer (A/B/C/D): "))
		line, err := in.ReadString('\n')
		ans := strings.ToUpper(strings.TrimSpace(line))
		if mcq.IsLetter(ans) {
			return ans, true
		}
		if err != nil {
			return "", false
		}
		fmt.Fprintln(w, errStyle.Render("Please answer with A, B, C or D."))
	}
}
