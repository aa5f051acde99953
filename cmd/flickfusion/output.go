package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/RoBiul-Hasan-Jisan/FlickFusion/internal/api"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorBold   = "\033[1m"
)

func colorize(color, text string) string {
	if noColor {
		return text
	}
	return color + text + colorReset
}

func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(os.Stderr, colorize(colorGreen, "✓ "+msg))
}

func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(os.Stderr, colorize(colorRed, "✗ "+msg))
}

func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(os.Stderr, colorize(colorYellow, "⚠ "+msg))
}

func printStatus(label string, format string, args ...any) {
	val := fmt.Sprintf(format, args...)
	l := colorize(colorBold, label+":")
	fmt.Fprintf(os.Stderr, "  %s %s\n", l, val)
}

func printStep(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(os.Stderr, colorize(colorCyan, "→ "+msg))
}

// printMovies writes one line per movie: rank, title, year, rating and,
// for similarity results, the score.
func printMovies(w io.Writer, movies []api.MovieView) {
	if len(movies) == 0 {
		fmt.Fprintln(w, "No movies found.")
		return
	}
	for i, m := range movies {
		line := fmt.Sprintf("%2d. %s", i+1, colorize(colorBold, m.Title))
		if year := releaseYear(m.ReleaseDate); year != "" {
			line += " (" + year + ")"
		}
		line += fmt.Sprintf("  ⭐ %.1f", m.VoteAverage)
		if m.Score != nil {
			line += colorize(colorCyan, fmt.Sprintf("  similarity %.3f", *m.Score))
		}
		if len(m.Genres) > 0 {
			line += "  " + strings.Join(m.Genres, ", ")
		}
		fmt.Fprintln(w, line)
	}
}

func releaseYear(date string) string {
	if len(date) >= 4 {
		return date[:4]
	}
	return ""
}
