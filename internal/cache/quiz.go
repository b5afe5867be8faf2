package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/KumarAkash26/BOOK-RECOMMENDER-WITH-AI-QUIZ-GENERATOR/internal/mcq"
)

// ErrMiss is returned by Get when nothing is cached under the key.
var ErrMiss = errors.New("cache miss")

// KV is the subset of redis the quiz cache needs.
type KV interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// QuizCache stores parsed question sets keyed by provider, topic and count.
type QuizCache struct {
	kv  KV
	ttl time.Duration
}

func NewQuizCache(kv KV, ttl time.Duration) *QuizCache {
	return &QuizCache{kv: kv, ttl: ttl}
}

// Key normalises topic case and spacing so "Go  Lang" and "go lang" share an entry.
func Key(provider, topic string, count int) string {
	norm := strings.Join(strings.Fields(strings.ToLower(topic)), " ")
	sum := sha256.Sum256([]byte(norm))
	return "mcq:" + strings.ToLower(provider) + ":" + strconv.Itoa(count) + ":" + hex.EncodeToString(sum[:12])
}

func (c *QuizCache) Get(ctx context.Context, key string) ([]mcq.Question, error) {
	raw, err := c.kv.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, err
	}
	var qs []mcq.Question
	if err := json.Unmarshal(raw, &qs); err != nil {
		return nil, err
	}
	return qs, nil
}

// Put stores qs; empty sets are never cached so a failed generation is retried.
func (c *QuizCache) Put(ctx context.Context, key string, qs []mcq.Question) error {
	if len(qs) == 0 || c.ttl <= 0 {
		return nil
	}
	b, err := json.Marshal(qs)
	if err != nil {
		return err
	}
	return c.kv.Set(ctx, key, b, c.ttl).Err()
}
