package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"golang.org/x/sync/errgroup"

	"github.com/KumarAkash26/BOOK-RECOMMENDER-WITH-AI-QUIZ-GENERATOR/internal/catalog"
)

type titleRow struct {
	Idx   int    `db:"idx"`
	Title string `db:"title"`
}

type scoreRow struct {
	Row   int     `db:"row_idx"`
	Col   int     `db:"col_idx"`
	Score float64 `db:"score"`
}

// LoadTables reads the catalog tables in parallel. The result still has to go
// through catalog.New to be validated.
func LoadTables(ctx context.Context, db *sqlx.DB) (catalog.Tables, error) {
	var (
		t      catalog.Tables
		titles []titleRow
		scores []scoreRow
	)
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return db.SelectContext(ctx, &t.Popular,
			`SELECT title, author, image_url, num_ratings, avg_rating FROM popular_books ORDER BY rank_no`)
	})
	g.Go(func() error {
		return db.SelectContext(ctx, &t.Books, `SELECT title, author, image_url FROM books ORDER BY id`)
	})
	g.Go(func() error {
		return db.SelectContext(ctx, &titles, `SELECT idx, title FROM pivot_titles ORDER BY idx`)
	})
	g.Go(func() error {
		return db.SelectContext(ctx, &scores, `SELECT row_idx, col_idx, score FROM similarity`)
	})
	if err := g.Wait(); err != nil {
		return catalog.Tables{}, fmt.Errorf("load catalog: %w", err)
	}

	var err error
	if t.Titles, err = orderTitles(titles); err != nil {
		return catalog.Tables{}, err
	}
	if t.Scores, err = assembleScores(len(t.Titles), scores); err != nil {
		return catalog.Tables{}, err
	}
	return t, nil
}

// ImportTables replaces the stored catalog with t in one transaction.
func ImportTables(ctx context.Context, db *sqlx.DB, t catalog.Tables) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"similarity", "pivot_titles", "popular_books", "books"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for i, p := range t.Popular {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO popular_books (rank_no, title, author, image_url, num_ratings, avg_rating) VALUES (?, ?, ?, ?, ?, ?)`,
			i, p.Title, p.Author, p.ImageURL, p.NumRatings, p.AvgRating); err != nil {
			return fmt.Errorf("insert popular: %w", err)
		}
	}
	for _, b := range t.Books {
		if _, err := tx.NamedExecContext(ctx,
			`INSERT INTO books (title, author, image_url) VALUES (:title, :author, :image_url)`, b); err != nil {
			return fmt.Errorf("insert book: %w", err)
		}
	}
	for i, title := range t.Titles {
		if _, err := tx.ExecContext(ctx, `INSERT INTO pivot_titles (idx, title) VALUES (?, ?)`, i, title); err != nil {
			return fmt.Errorf("insert title: %w", err)
		}
	}
	for _, r := range flattenScores(t.Scores) {
		if _, err := tx.NamedExecContext(ctx,
			`INSERT INTO similarity (row_idx, col_idx, score) VALUES (:row_idx, :col_idx, :score)`, r); err != nil {
			return fmt.Errorf("insert similarity: %w", err)
		}
	}
	return tx.Commit()
}

// orderTitles expects rows sorted by idx and requires idx to run 0..n-1.
func orderTitles(rows []titleRow) ([]string, error) {
	out := make([]string, len(rows))
	for i, r := range rows {
		if r.Idx != i {
			return nil, fmt.Errorf("%w: pivot title index %d at position %d", catalog.ErrInvalidSnapshot, r.Idx, i)
		}
		out[i] = r.Title
	}
	return out, nil
}

// assembleScores builds an n*n matrix. Every cell must be present exactly once.
func assembleScores(n int, rows []scoreRow) ([][]float64, error) {
	if len(rows) != n*n {
		return nil, fmt.Errorf("%w: %d similarity cells for %d titles", catalog.ErrInvalidSnapshot, len(rows), n)
	}
	m := make([][]float64, n)
	seen := make([][]bool, n)
	for i := range m {
		m[i] = make([]float64, n)
		seen[i] = make([]bool, n)
	}
	for _, r := range rows {
		if r.Row < 0 || r.Row >= n || r.Col < 0 || r.Col >= n {
			return nil, fmt.Errorf("%w: similarity cell (%d,%d) out of range", catalog.ErrInvalidSnapshot, r.Row, r.Col)
		}
		if seen[r.Row][r.Col] {
			return nil, fmt.Errorf("%w: duplicate similarity cell (%d,%d)", catalog.ErrInvalidSnapshot, r.Row, r.Col)
		}
		seen[r.Row][r.Col] = true
		m[r.Row][r.Col] = r.Score
	}
	return m, nil
}

func flattenScores(m [][]float64) []scoreRow {
	var out []scoreRow
	for i, row := range m {
		for j, v := range row {
			out = append(out, scoreRow{Row: i, Col: j, Score: v})
		}
	}
	return out
}
