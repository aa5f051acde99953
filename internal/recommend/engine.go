// Package recommend answers filter-and-rank queries over the corpus: by
// genre, mood, occasion, person, release year, popularity, rating, and
// free text.
package recommend

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/RoBiul-Hasan-Jisan/FlickFusion/internal/corpus"
)

// Role selects which credit field ByPerson matches against.
type Role string

const (
	Actor    Role = "actor"
	Director Role = "director"
)

// Default result caps.
const (
	DefaultTopN = 10
	PersonTopN  = 8
	SearchTopN  = 5
)

// Result is a ranked, capped list of movies. An empty Movies slice is the
// explicit no-match outcome; Query echoes the parameter that produced it.
type Result struct {
	Query  string
	Movies []corpus.Movie
}

// NoMatch reports whether the query matched nothing.
func (r Result) NoMatch() bool { return len(r.Movies) == 0 }

// Options configures New.
type Options struct {
	// PersonTopN caps ByPerson and ByYear. Zero means PersonTopN.
	PersonTopN int
	Logger     *slog.Logger
}

// Engine runs queries over an immutable corpus. It is safe for concurrent use.
type Engine struct {
	movies     []corpus.Movie
	search     *searchIndex
	personTopN int
}

// New builds an Engine, including the in-memory full-text index.
func New(ctx context.Context, c *corpus.Corpus, opts Options) (*Engine, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	movies := c.Movies()
	si, err := newSearchIndex(ctx, movies)
	if err != nil {
		return nil, fmt.Errorf("building search index: %w", err)
	}
	e := &Engine{movies: movies, search: si, personTopN: opts.PersonTopN}
	if e.personTopN <= 0 {
		e.personTopN = PersonTopN
	}
	logger.Info("query engine ready", "movies", len(movies))
	return e, nil
}

// Close releases the full-text index.
func (e *Engine) Close() error {
	return e.search.close()
}

// ByGenre returns movies whose genres contain genre, best rated first.
func (e *Engine) ByGenre(genre string, topN int) Result {
	return Result{Query: genre, Movies: e.rankFiltered(genreFilter([]string{genre}), byRatingThenPopularity, topN)}
}

// ByMood maps mood to a genre set and returns movies matching any of them.
func (e *Engine) ByMood(mood string, topN int) Result {
	return Result{Query: mood, Movies: e.rankFiltered(genreFilter(MoodGenres(mood)), byRatingThenPopularity, topN)}
}

// ByOccasion maps occasion to a genre set and returns movies matching any
// of them.
func (e *Engine) ByOccasion(occasion string, topN int) Result {
	return Result{Query: occasion, Movies: e.rankFiltered(genreFilter(OccasionGenres(occasion)), byRatingThenPopularity, topN)}
}

// ByPerson matches name against the top cast or the director.
func (e *Engine) ByPerson(name string, role Role) Result {
	needle := corpus.CleanName(name)
	if needle == "" {
		return Result{Query: name}
	}
	keep := func(m corpus.Movie) bool {
		if role == Director {
			return strings.Contains(m.Director, needle)
		}
		return strings.Contains(m.TopCast, needle)
	}
	return Result{Query: name, Movies: e.rankFiltered(keep, byRatingThenPopularity, e.personTopN)}
}

// ByYear matches year against the release date.
func (e *Engine) ByYear(year string) Result {
	year = strings.TrimSpace(year)
	if year == "" {
		return Result{Query: year}
	}
	keep := func(m corpus.Movie) bool { return strings.Contains(m.ReleaseDate, year) }
	return Result{Query: year, Movies: e.rankFiltered(keep, byRatingThenPopularity, e.personTopN)}
}

// Popular returns the most popular movies.
func (e *Engine) Popular(topN int) Result {
	return Result{Movies: e.rankFiltered(nil, byPopularity, topN)}
}

// TopRated returns the best rated movies.
func (e *Engine) TopRated(topN int) Result {
	return Result{Movies: e.rankFiltered(nil, byRating, topN)}
}

// Search returns movies whose title or overview match every term of text,
// best rated first.
func (e *Engine) Search(ctx context.Context, text string, topN int) (Result, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Result{Query: text}, nil
	}
	rows, err := e.search.match(ctx, text)
	if err != nil {
		return Result{}, err
	}
	hits := make([]corpus.Movie, 0, len(rows))
	for _, r := range rows {
		hits = append(hits, e.movies[r])
	}
	return Result{Query: text, Movies: rank(hits, byRatingThenPopularity, topN)}, nil
}

func genreFilter(genres []string) func(corpus.Movie) bool {
	needles := make([]string, len(genres))
	for i, g := range genres {
		needles[i] = strings.ToLower(strings.TrimSpace(g))
	}
	return func(m corpus.Movie) bool {
		hay := strings.ToLower(m.GenresClean)
		for _, n := range needles {
			if n != "" && strings.Contains(hay, n) {
				return true
			}
		}
		return false
	}
}

func (e *Engine) rankFiltered(keep func(corpus.Movie) bool, cmp func(a, b corpus.Movie) int, topN int) []corpus.Movie {
	var hits []corpus.Movie
	for _, m := range e.movies {
		if keep == nil || keep(m) {
			hits = append(hits, m)
		}
	}
	return rank(hits, cmp, topN)
}

// rank sorts hits stably so ties keep corpus order, then caps the result.
func rank(hits []corpus.Movie, cmp func(a, b corpus.Movie) int, topN int) []corpus.Movie {
	if topN <= 0 {
		return nil
	}
	slices.SortStableFunc(hits, cmp)
	if len(hits) > topN {
		hits = hits[:topN]
	}
	return hits
}

func byRatingThenPopularity(a, b corpus.Movie) int {
	if c := descending(a.VoteAverage, b.VoteAverage); c != 0 {
		return c
	}
	return descending(a.Popularity, b.Popularity)
}

func byPopularity(a, b corpus.Movie) int { return descending(a.Popularity, b.Popularity) }

func byRating(a, b corpus.Movie) int { return descending(a.VoteAverage, b.VoteAverage) }

func descending(a, b float64) int {
	switch {
	case a > b:
		return -1
	case a < b:
		return 1
	}
	return 0
}
