package corpus

import (
	"strings"
)

// Movie is one ingested record. Every Movie in a Corpus has a non-empty
// overview and genre payload.
type Movie struct {
	ID          int
	Title       string
	Overview    string
	Genres      []string // display names, e.g. "Science Fiction"
	ReleaseDate string
	VoteAverage float64
	Popularity  float64

	GenresClean   string
	KeywordsClean string
	TopCast       string
	Director      string

	CombinedFeatures string
}

// Features assembles the text blob used for similarity from the cleaned
// fields of m.
func Features(m Movie) string {
	parts := make([]string, 0, 5)
	for _, p := range []string{m.Overview, m.GenresClean, m.KeywordsClean, m.TopCast, m.Director} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// Corpus is the immutable, ordered movie collection plus its title index.
// It is safe for concurrent use once constructed.
type Corpus struct {
	movies     []Movie
	byTitle    map[string]int
	byFolded   map[string]int
	collisions int
}

// New builds a Corpus over movies in the given order. When several rows
// share a title, the earliest row owns the title.
func New(movies []Movie) *Corpus {
	c := &Corpus{
		movies:   make([]Movie, len(movies)),
		byTitle:  make(map[string]int, len(movies)),
		byFolded: make(map[string]int, len(movies)),
	}
	copy(c.movies, movies)

	f := newFolder()
	for i, m := range c.movies {
		if _, dup := c.byTitle[m.Title]; dup {
			c.collisions++
		} else {
			c.byTitle[m.Title] = i
		}
		key := f.fold(m.Title)
		if _, dup := c.byFolded[key]; !dup {
			c.byFolded[key] = i
		}
	}
	return c
}

// Len returns the number of movies.
func (c *Corpus) Len() int { return len(c.movies) }

// Movie returns the movie at row i.
func (c *Corpus) Movie(i int) Movie { return c.movies[i] }

// Movies returns a copy of the movies in row order.
func (c *Corpus) Movies() []Movie {
	out := make([]Movie, len(c.movies))
	copy(out, c.movies)
	return out
}

// Collisions reports how many rows lost their title to an earlier row.
func (c *Corpus) Collisions() int { return c.collisions }

// Lookup resolves a title to its row. An exact match is tried first, then a
// case- and width-insensitive match.
func (c *Corpus) Lookup(title string) (int, bool) {
	if i, ok := c.byTitle[title]; ok {
		return i, true
	}
	i, ok := c.byFolded[newFolder().fold(title)]
	return i, ok
}
