package dialogue

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/RoBiul-Hasan-Jisan/FlickFusion/internal/corpus"
)

const (
	synopsisLen   = 100
	noMoviesFound = "No movies found matching your criteria."
)

// formatMovies renders a ranked list, one numbered block per movie.
func formatMovies(movies []corpus.Movie) string {
	if len(movies) == 0 {
		return noMoviesFound
	}
	var b strings.Builder
	for i, m := range movies {
		fmt.Fprintf(&b, "%d. **%s** ⭐ %s/10\n", i+1, m.Title, formatRating(m.VoteAverage))
		fmt.Fprintf(&b, "   🎭 %s\n", genreNames(m.Genres))
		fmt.Fprintf(&b, "   📅 %s\n", m.ReleaseDate)
		fmt.Fprintf(&b, "   📖 %s...\n\n", truncate(m.Overview, synopsisLen))
	}
	return b.String()
}

// formatRating always keeps one decimal for whole numbers so 8 prints as 8.0.
func formatRating(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

func genreNames(genres []string) string {
	if len(genres) == 0 {
		return "Various Genres"
	}
	return strings.Join(genres, ", ")
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
