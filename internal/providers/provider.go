package providers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/KumarAkash26/BOOK-RECOMMENDER-WITH-AI-QUIZ-GENERATOR/internal/mcq"
)

type SourceName string

const (
	SourceGemini SourceName = "GEMINI"
	SourceOpenAI SourceName = "OPENAI"
	SourceClaude SourceName = "CLAUDE"
)

// Client is a text generation source: prompt in, one block of free text out.
// Errors wrap one of mcq.ErrMissingCredential, mcq.ErrTransport or
// mcq.ErrEmptyResponse.
type Client interface {
	Name() SourceName
	Generate(ctx context.Context, prompt string) (string, error)
}

// ResolveKey returns override when set, else the value of envName.
func ResolveKey(override, envName string) (string, error) {
	if k := strings.TrimSpace(override); k != "" {
		return k, nil
	}
	if envName != "" {
		if k := strings.TrimSpace(os.Getenv(envName)); k != "" {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: set %s or pass a key explicitly", mcq.ErrMissingCredential, envName)
}

// transport holds what every HTTP-backed source shares.
type transport struct {
	Client  *http.Client
	Limiter *rate.Limiter
	Timeout time.Duration
}

func newTransport(timeout time.Duration, rps, burst int) transport {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	if rps <= 0 {
		rps = 2
	}
	if burst <= 0 {
		burst = 2
	}
	return transport{
		// context deadline is the effective limit; the client timeout backs it up
		Client:  &http.Client{Timeout: timeout + 5*time.Second},
		Limiter: rate.NewLimiter(rate.Limit(rps), burst),
		Timeout: timeout,
	}
}

// do waits for the limiter, sends req under the configured timeout and
// returns the body of a 2xx response. Anything else is mcq.ErrTransport.
func (t transport) do(ctx context.Context, name SourceName, build func(ctx context.Context) (*http.Request, error)) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, t.Timeout)
	defer cancel()

	if t.Limiter != nil {
		if err := t.Limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: %s rate limit wait: %v", mcq.ErrTransport, name, err)
		}
	}

	req, err := build(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %s build request: %v", mcq.ErrTransport, name, err)
	}

	client := t.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", mcq.ErrTransport, name, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s read body: %v", mcq.ErrTransport, name, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return raw, fmt.Errorf("%w: %s http %s", mcq.ErrTransport, strings.ToLower(string(name)), resp.Status)
	}
	return raw, nil
}
