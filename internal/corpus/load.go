package corpus

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// InitializationError reports a dataset that could not be loaded. The corpus
// is unusable when Load returns one.
type InitializationError struct {
	Path string
	Err  error
}

func (e *InitializationError) Error() string {
	return fmt.Sprintf("initializing corpus from %s: %v", e.Path, e.Err)
}

func (e *InitializationError) Unwrap() error { return e.Err }

// Options configures Load.
type Options struct {
	MoviesPath  string
	CreditsPath string
	Logger      *slog.Logger
}

var (
	movieColumns   = []string{"id", "title", "overview", "genres", "keywords", "release_date", "vote_average", "popularity"}
	creditsColumns = []string{"movie_id", "cast", "crew"}
)

const topCastSize = 3

type credits struct {
	topCast  string
	director string
}

// Load reads the movies and credits datasets, joins them on movie ID, and
// returns the cleaned corpus. Both files are read concurrently.
func Load(ctx context.Context, opts Options) (*Corpus, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	start := time.Now()

	var (
		raws          []Movie
		dropped       int
		movieFailures int
		byID          map[int]credits
		creditFails   int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		raws, dropped, movieFailures, err = readMovies(gctx, opts.MoviesPath)
		return err
	})
	g.Go(func() error {
		var err error
		byID, creditFails, err = readCredits(gctx, opts.CreditsPath)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	movies := make([]Movie, 0, len(raws))
	unmatched := 0
	for _, m := range raws {
		if cr, ok := byID[m.ID]; ok {
			m.TopCast = cr.topCast
			m.Director = cr.director
		} else {
			unmatched++
		}
		m.CombinedFeatures = Features(m)
		movies = append(movies, m)
	}

	c := New(movies)
	logger.Info("corpus loaded",
		"movies", c.Len(),
		"dropped", dropped,
		"without_credits", unmatched,
		"payload_parse_failures", movieFailures+creditFails,
		"title_collisions", c.Collisions(),
		"duration", time.Since(start),
	)
	return c, nil
}

func readMovies(ctx context.Context, path string) ([]Movie, int, int, error) {
	header, rows, err := readTable(ctx, path, movieColumns)
	if err != nil {
		return nil, 0, 0, err
	}
	col := func(row []string, name string) string { return strings.TrimSpace(row[header[name]]) }

	var (
		out      []Movie
		dropped  int
		failures int
		seen     = make(map[int]struct{}, len(rows))
	)
	for _, row := range rows {
		overview := col(row, "overview")
		genrePayload := col(row, "genres")
		if overview == "" || genrePayload == "" {
			dropped++
			continue
		}
		id, err := strconv.Atoi(col(row, "id"))
		if err != nil {
			dropped++
			continue
		}
		if _, dup := seen[id]; dup {
			dropped++
			continue
		}
		seen[id] = struct{}{}

		genres, err := parseEntries(genrePayload)
		if err != nil {
			failures++
		}
		keywords, err := parseEntries(col(row, "keywords"))
		if err != nil {
			failures++
		}

		genreNames := names(genres)
		m := Movie{
			ID:            id,
			Title:         col(row, "title"),
			Overview:      overview,
			Genres:        genreNames,
			ReleaseDate:   col(row, "release_date"),
			VoteAverage:   parseFloat(col(row, "vote_average")),
			Popularity:    parseFloat(col(row, "popularity")),
			GenresClean:   cleanGenres(genreNames),
			KeywordsClean: cleanKeywords(names(keywords)),
		}
		out = append(out, m)
	}
	return out, dropped, failures, nil
}

func readCredits(ctx context.Context, path string) (map[int]credits, int, error) {
	header, rows, err := readTable(ctx, path, creditsColumns)
	if err != nil {
		return nil, 0, err
	}

	out := make(map[int]credits, len(rows))
	failures := 0
	for _, row := range rows {
		id, err := strconv.Atoi(strings.TrimSpace(row[header["movie_id"]]))
		if err != nil {
			continue
		}
		if _, dup := out[id]; dup {
			continue
		}
		cast, err := parseEntries(row[header["cast"]])
		if err != nil {
			failures++
		}
		crew, err := parseEntries(row[header["crew"]])
		if err != nil {
			failures++
		}
		out[id] = credits{
			topCast:  cleanCast(names(cast)),
			director: CleanName(directorOf(crew)),
		}
	}
	return out, failures, nil
}

// readTable reads a CSV file with a header row and checks that every
// required column is present. Rows shorter than the header are padded.
func readTable(ctx context.Context, path string, required []string) (map[string]int, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, &InitializationError{Path: path, Err: err}
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	head, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("empty file")
		}
		return nil, nil, &InitializationError{Path: path, Err: fmt.Errorf("reading header: %w", err)}
	}
	header := make(map[string]int, len(head))
	for i, name := range head {
		header[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}
	var missing []string
	for _, name := range required {
		if _, ok := header[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, nil, &InitializationError{Path: path, Err: fmt.Errorf("missing columns: %s", strings.Join(missing, ", "))}
	}

	var rows [][]string
	for n := 0; ; n++ {
		if n%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, nil, err
			}
		}
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, &InitializationError{Path: path, Err: fmt.Errorf("reading row %d: %w", n+2, err)}
		}
		for len(rec) < len(head) {
			rec = append(rec, "")
		}
		rows = append(rows, rec)
	}
	return header, rows, nil
}

func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

func cleanGenres(genres []string) string {
	out := make([]string, len(genres))
	for i, g := range genres {
		out[i] = strings.ToLower(g)
	}
	return strings.Join(out, " ")
}

func cleanKeywords(keywords []string) string {
	out := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k = CleanName(k); k != "" {
			out = append(out, k)
		}
	}
	return strings.Join(out, " ")
}

func cleanCast(cast []string) string {
	if len(cast) > topCastSize {
		cast = cast[:topCastSize]
	}
	out := make([]string, 0, len(cast))
	for _, name := range cast {
		if name = CleanName(name); name != "" {
			out = append(out, name)
		}
	}
	return strings.Join(out, " ")
}
