// Package catalog serves the precomputed book recommendation tables. The
// tables are built offline; this package only loads them into an immutable
// Snapshot and answers lookups against it.
package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrUnknownTitle    = errors.New("unknown book title")
	ErrInvalidSnapshot = errors.New("invalid catalog snapshot")
)

// DefaultRecommendations is how many similar books Recommend returns when
// asked for n <= 0.
const DefaultRecommendations = 8

type Book struct {
	Title    string `json:"title" db:"title"`
	Author   string `json:"author" db:"author"`
	ImageURL string `json:"image_url" db:"image_url"`
}

type PopularBook struct {
	Book
	NumRatings int     `json:"num_ratings" db:"num_ratings"`
	AvgRating  float64 `json:"avg_rating" db:"avg_rating"`
}

// Tables is the raw offline output, in the shape it is stored.
type Tables struct {
	Popular []PopularBook `json:"popular"`
	// Titles indexes the rows and columns of Scores.
	Titles []string    `json:"titles"`
	Scores [][]float64 `json:"scores"`
	Books  []Book      `json:"books"`
}

// Snapshot is a read-only view over Tables. It is safe for concurrent use
// because nothing mutates it after New.
type Snapshot struct {
	popular []PopularBook
	titles  []string
	index   map[string]int
	folded  map[string]int
	scores  [][]float64
	books   map[string]Book
}

// New validates t and builds a Snapshot that shares no memory with it.
func New(t Tables) (*Snapshot, error) {
	n := len(t.Titles)
	if len(t.Scores) != n {
		return nil, fmt.Errorf("%w: %d titles but %d similarity rows", ErrInvalidSnapshot, n, len(t.Scores))
	}

	s := &Snapshot{
		popular: append([]PopularBook(nil), t.Popular...),
		titles:  append([]string(nil), t.Titles...),
		index:   make(map[string]int, n),
		folded:  make(map[string]int, n),
		scores:  make([][]float64, n),
		books:   make(map[string]Book, len(t.Books)),
	}
	for i, title := range t.Titles {
		if _, dup := s.index[title]; dup {
			return nil, fmt.Errorf("%w: duplicate title %q", ErrInvalidSnapshot, title)
		}
		s.index[title] = i
		if _, seen := s.folded[fold(title)]; !seen {
			s.folded[fold(title)] = i
		}
		if len(t.Scores[i]) != n {
			return nil, fmt.Errorf("%w: similarity row %d has %d columns, want %d", ErrInvalidSnapshot, i, len(t.Scores[i]), n)
		}
		s.scores[i] = append([]float64(nil), t.Scores[i]...)
	}
	// first occurrence wins, as with a drop-duplicates on title
	for _, b := range t.Books {
		if _, ok := s.books[b.Title]; !ok {
			s.books[b.Title] = b
		}
	}
	return s, nil
}

// Popular returns the popularity table in stored order.
func (s *Snapshot) Popular() []PopularBook {
	return append([]PopularBook(nil), s.popular...)
}

// Titles returns the titles that Recommend accepts.
func (s *Snapshot) Titles() []string {
	return append([]string(nil), s.titles...)
}

// Stats reports row counts per table.
func (s *Snapshot) Stats() map[string]int {
	return map[string]int{
		"popular": len(s.popular),
		"titles":  len(s.titles),
		"books":   len(s.books),
	}
}

// Recommend returns up to n books most similar to title, best first. The
// title itself is never included. Ties keep title index order. Titles
// without book metadata are skipped.
func (s *Snapshot) Recommend(title string, n int) ([]Book, error) {
	row, ok := s.lookup(title)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTitle, title)
	}
	if n <= 0 {
		n = DefaultRecommendations
	}

	scores := s.scores[row]
	order := make([]int, 0, len(scores))
	for i := range scores {
		if i != row {
			order = append(order, i)
		}
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	out := make([]Book, 0, n)
	for _, i := range order {
		if len(out) == n {
			break
		}
		if b, ok := s.books[s.titles[i]]; ok {
			out = append(out, b)
		}
	}
	return out, nil
}

// lookup tries an exact match, then a case and space insensitive one.
func (s *Snapshot) lookup(title string) (int, bool) {
	if i, ok := s.index[title]; ok {
		return i, true
	}
	i, ok := s.folded[fold(title)]
	return i, ok
}

func fold(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
