package dialogue

import (
	"strings"
	"testing"

	"github.com/RoBiul-Hasan-Jisan/FlickFusion/internal/corpus"
)

func TestFormatMovies(t *testing.T) {
	movies := []corpus.Movie{
		{Title: "Avatar", VoteAverage: 7.2, Genres: []string{"Action", "Adventure"}, ReleaseDate: "2009-12-10",
			Overview: "In the 22nd century, a paraplegic Marine is dispatched to the moon Pandora on a unique mission, but becomes torn."},
		{Title: "Untitled", VoteAverage: 8, ReleaseDate: "2001-01-01", Overview: "Short."},
	}
	got := formatMovies(movies)
	want := "1. **Avatar** ⭐ 7.2/10\n" +
		"   🎭 Action, Adventure\n" +
		"   📅 2009-12-10\n" +
		"   📖 In the 22nd century, a paraplegic Marine is dispatched to the moon Pandora on a unique mission, but ...\n\n" +
		"2. **Untitled** ⭐ 8.0/10\n" +
		"   🎭 Various Genres\n" +
		"   📅 2001-01-01\n" +
		"   📖 Short....\n\n"
	if got != want {
		t.Errorf("formatMovies =\n%s\nwant\n%s", got, want)
	}
}

func TestFormatMoviesEmpty(t *testing.T) {
	if got := formatMovies(nil); got != noMoviesFound {
		t.Errorf("formatMovies(nil) = %q", got)
	}
}

func TestTruncateCountsRunes(t *testing.T) {
	s := strings.Repeat("é", 150)
	if got := truncate(s, 100); got != strings.Repeat("é", 100) {
		t.Errorf("truncate kept %d runes", len([]rune(got)))
	}
	if got := truncate("short", 100); got != "short" {
		t.Errorf("truncate(short) = %q", got)
	}
}

func TestFormatRating(t *testing.T) {
	tests := map[float64]string{8: "8.0", 7.25: "7.25", 0: "0.0", 6.5: "6.5"}
	for in, want := range tests {
		if got := formatRating(in); got != want {
			t.Errorf("formatRating(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestPickIsStable(t *testing.T) {
	a := pick(jokes, "tell me a joke")
	for range 10 {
		if b := pick(jokes, "tell me a joke"); b != a {
			t.Fatalf("pick changed from %q to %q", a, b)
		}
	}
}
