package providers

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/KumarAkash26/BOOK-RECOMMENDER-WITH-AI-QUIZ-GENERATOR/internal/mcq"
	"github.com/KumarAkash26/BOOK-RECOMMENDER-WITH-AI-QUIZ-GENERATOR/internal/metrics"
	"github.com/KumarAkash26/BOOK-RECOMMENDER-WITH-AI-QUIZ-GENERATOR/internal/telemetry"
)

var _ Client = (*Breaker)(nil)

// Breaker wraps a Client with a circuit breaker. Only transport failures count
// against the circuit; while it is open calls fail fast with mcq.ErrTransport.
// It never retries.
type Breaker struct {
	next Client
	cb   *gobreaker.CircuitBreaker[string]
}

func NewBreaker(next Client, maxFailures int, cooldown time.Duration) *Breaker {
	if maxFailures <= 0 {
		maxFailures = 5
	}
	if cooldown <= 0 {
		cooldown = 30 * time.Second
	}
	name := "generation-" + string(next.Name())
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(maxFailures)
		},
		IsSuccessful: func(err error) bool {
			return err == nil || !errors.Is(err, mcq.ErrTransport)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log := telemetry.L()
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("breaker_state_change")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateValue(to))
		},
	})
	return &Breaker{next: next, cb: cb}
}

func (b *Breaker) Name() SourceName { return b.next.Name() }

func (b *Breaker) Generate(ctx context.Context, prompt string) (string, error) {
	text, err := b.cb.Execute(func() (string, error) {
		return b.next.Generate(ctx, prompt)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return "", fmt.Errorf("%w: %s circuit %v", mcq.ErrTransport, b.cb.Name(), err)
	}
	return text, err
}

// State is "closed", "half-open" or "open"; /healthz reports it.
func (b *Breaker) State() string { return b.cb.State().String() }

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
