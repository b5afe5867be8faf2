package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"

	"github.com/KumarAkash26/BOOK-RECOMMENDER-WITH-AI-QUIZ-GENERATOR/internal/telemetry"
)

// Artifact file names inside a catalog directory.
const (
	PopularFile    = "popular.json"
	TitlesFile     = "titles.json"
	SimilarityFile = "similarity.json"
	BooksFile      = "books.json"
)

// LoadDir reads the four table artifacts from dir in parallel.
func LoadDir(ctx context.Context, dir string) (Tables, error) {
	var t Tables
	g, _ := errgroup.WithContext(ctx)

	g.Go(func() error { return readJSON(filepath.Join(dir, PopularFile), &t.Popular) })
	g.Go(func() error { return readJSON(filepath.Join(dir, TitlesFile), &t.Titles) })
	g.Go(func() error { return readJSON(filepath.Join(dir, SimilarityFile), &t.Scores) })
	g.Go(func() error { return readJSON(filepath.Join(dir, BooksFile), &t.Books) })

	if err := g.Wait(); err != nil {
		return Tables{}, err
	}
	log := telemetry.L()
	log.Info().Str("dir", dir).
		Int("popular", len(t.Popular)).
		Int("titles", len(t.Titles)).
		Int("books", len(t.Books)).
		Msg("catalog_loaded")
	return t, nil
}

// WriteDir stores t as artifacts in dir, creating it if needed.
func WriteDir(dir string, t Tables) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for name, v := range map[string]any{
		PopularFile:    t.Popular,
		TitlesFile:     t.Titles,
		SimilarityFile: t.Scores,
		BooksFile:      t.Books,
	} {
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode %s: %w", name, err)
		}
		if err := os.WriteFile(filepath.Join(dir, name), b, 0o644); err != nil {
			return err
		}
	}
	return nil
}

func readJSON(path string, v any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
