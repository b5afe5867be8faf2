// Command mcq generates multiple-choice questions in the terminal and can run
// them as a scored quiz.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/KumarAkash26/BOOK-RECOMMENDER-WITH-AI-QUIZ-GENERATOR/internal/config"
	"github.com/KumarAkash26/BOOK-RECOMMENDER-WITH-AI-QUIZ-GENERATOR/internal/mcq"
	"github.com/KumarAkash26/BOOK-RECOMMENDER-WITH-AI-QUIZ-GENERATOR/internal/quiz"
	"github.com/KumarAkash26/BOOK-RECOMMENDER-WITH-AI-QUIZ-GENERATOR/internal/telemetry"
)

func main() {
	topic := flag.String("topic", "", "quiz topic (prompted when empty)")
	n := flag.Int("n", 0, "number of questions (prompted when 0)")
	apiKey := flag.String("api-key", "", "overrides the selected provider's key ("+config.APIKeyEnv+" for gemini)")
	play := flag.Bool("quiz", false, "run a scored quiz after listing the questions")
	flag.Parse()

	cfg := config.Load()
	if *apiKey != "" {
		cfg.SetAPIKey(*apiKey)
	}
	// warnings only, so log lines do not interleave with the quiz
	telemetry.Init(telemetry.Config{Level: "warn"})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	in := bufio.NewReader(os.Stdin)
	out := os.Stdout

	if *topic == "" {
		*topic = ask(in, out, "Enter the topic for the MCQs: ")
	}
	if *n <= 0 {
		*n = askInt(in, out, "Enter the number of questions: ", cfg.MCQDefaultQuestions)
	}

	svc := quiz.NewService(quiz.BuildClient(cfg), nil)
	qs, err := svc.Generate(ctx, *topic, *n)
	if err != nil {
		if errors.Is(err, mcq.ErrMissingCredential) {
			fmt.Fprintln(os.Stderr, errStyle.Render("No API key: set "+config.APIKeyEnv+" or pass -api-key."))
		} else {
			fmt.Fprintln(os.Stderr, errStyle.Render(err.Error()))
		}
		os.Exit(1)
	}

	if !display(out, qs) {
		return
	}
	if *play {
		score := runQuiz(in, out, qs)
		fmt.Fprintln(out, scoreStyle.Render(fmt.Sprintf("Quiz finished. Your score: %d/%d", score.Correct, score.Total)))
	}
}

func ask(in *bufio.Reader, out io.Writer, label string) string {
	fmt.Fprint(out, promptStyle.Render(label))
	line, _ := in.ReadString('\n')
	return strings.TrimSpace(line)
}

// askInt re-prompts until it reads a positive number. EOF yields def.
func askInt(in *bufio.Reader, out io.Writer, label string, def int) int {
	for {
		fmt.Fprint(out, promptStyle.Render(label))
		line, err := in.ReadString('\n')
		if v, cerr := strconv.Atoi(strings.TrimSpace(line)); cerr == nil && v > 0 {
			return v
		}
		if err != nil {
			return def
		}
		fmt.Fprintln(out, errStyle.Render("Please enter a positive number."))
	}
}
