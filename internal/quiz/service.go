package quiz

import (
	"context"
	"errors"
	"time"

	"github.com/KumarAkash26/BOOK-RECOMMENDER-WITH-AI-QUIZ-GENERATOR/internal/cache"
	"github.com/KumarAkash26/BOOK-RECOMMENDER-WITH-AI-QUIZ-GENERATOR/internal/mcq"
	"github.com/KumarAkash26/BOOK-RECOMMENDER-WITH-AI-QUIZ-GENERATOR/internal/metrics"
	"github.com/KumarAkash26/BOOK-RECOMMENDER-WITH-AI-QUIZ-GENERATOR/internal/providers"
	"github.com/KumarAkash26/BOOK-RECOMMENDER-WITH-AI-QUIZ-GENERATOR/internal/telemetry"
)

// Cache is optional; a nil Cache disables caching.
type Cache interface {
	Get(ctx context.Context, key string) ([]mcq.Question, error)
	Put(ctx context.Context, key string, qs []mcq.Question) error
}

type Service struct {
	client providers.Client
	cache  Cache
}

func NewService(client providers.Client, c Cache) *Service {
	return &Service{client: client, cache: c}
}

// Generate asks the generation source for count questions about topic and
// parses the reply. Transport and empty-response failures are logged and come
// back as an empty slice with a nil error, so callers cannot tell them apart
// from a reply with no usable questions. Only mcq.ErrInvalidArgument and
// mcq.ErrMissingCredential are returned.
func (s *Service) Generate(ctx context.Context, topic string, count int) ([]mcq.Question, error) {
	provider := string(s.client.Name())
	log := telemetry.L().With().Str("provider", provider).Str("topic", topic).Int("count", count).Logger()

	prompt, err := mcq.BuildPrompt(topic, count)
	if err != nil {
		metrics.GenerationTotal.WithLabelValues(provider, mcq.Kind(err)).Inc()
		return nil, err
	}

	key := cache.Key(provider, topic, count)
	if s.cache != nil {
		qs, err := s.cache.Get(ctx, key)
		switch {
		case err == nil:
			metrics.QuizCacheLookups.WithLabelValues("hit").Inc()
			log.Debug().Int("questions", len(qs)).Msg("mcq_cache_hit")
			return qs, nil
		case errors.Is(err, cache.ErrMiss):
			metrics.QuizCacheLookups.WithLabelValues("miss").Inc()
		default:
			metrics.QuizCacheLookups.WithLabelValues("error").Inc()
			log.Warn().Err(err).Msg("mcq_cache_get_err")
		}
	}

	t0 := time.Now()
	text, err := s.client.Generate(ctx, prompt)
	metrics.GenerationDuration.WithLabelValues(provider).Observe(time.Since(t0).Seconds())
	if err != nil {
		metrics.GenerationTotal.WithLabelValues(provider, mcq.Kind(err)).Inc()
		if errors.Is(err, mcq.ErrMissingCredential) {
			return nil, err
		}
		// unclassified errors are handled like transport failures
		log.Error().Err(err).Str("kind", mcq.Kind(err)).Bool("recoverable", mcq.Recoverable(err)).Msg("mcq_generation_failed")
		return []mcq.Question{}, nil
	}

	qs, rep := mcq.ParseWithReport(text)
	metrics.QuestionsParsed.Observe(float64(len(qs)))
	metrics.ParseAbandonedBlocks.Add(float64(rep.Abandoned))
	metrics.GenerationTotal.WithLabelValues(provider, "ok").Inc()

	if perr := rep.Err(); perr != nil {
		log.Warn().Err(perr).Int("questions", len(qs)).Msg("mcq_parse_incomplete")
	}
	log.Info().Int("questions", len(qs)).Int("latency_ms", int(time.Since(t0)/time.Millisecond)).Msg("mcq_generated")

	if s.cache != nil && len(qs) > 0 {
		if err := s.cache.Put(ctx, key, qs); err != nil {
			log.Warn().Err(err).Msg("mcq_cache_set_err")
		}
	}
	return qs, nil
}

// Source names the generation source and, when it sits behind a circuit
// breaker, the breaker state.
func (s *Service) Source() (name, state string) {
	if b, ok := s.client.(interface{ State() string }); ok {
		state = b.State()
	}
	return string(s.client.Name()), state
}
