package intent

import (
	"regexp"
	"strings"
)

// Extraction patterns are tried in order on the lowercased utterance; the
// first capture that is non-empty after trimming wins.
var (
	titlePatterns = compile(
		`movies like (.+)`,
		`similar to (.+)`,
		`recommend.*like (.+)`,
		`like (.+)`,
		`comparable to (.+)`,
	)

	personPatterns = compile(
		`movies with (.+)`,
		`films with (.+)`,
		`actor.*?([a-z\s]+)`,
		`director.*?([a-z\s]+)`,
		`starring.*?([a-z\s]+)`,
		`directed by (.+)`,
		`films by (.+)`,
	)

	yearPattern = regexp.MustCompile(`\b(?:19|20)\d{2}`)
)

// ExtractTitle returns the movie title referenced by a similar-movies request.
func ExtractTitle(text string) (string, bool) {
	return firstCapture(titlePatterns, text)
}

// ExtractPerson returns the actor or director name in text.
func ExtractPerson(text string) (string, bool) {
	return firstCapture(personPatterns, text)
}

// ExtractYear returns the first year between 1900 and 2099 in text.
func ExtractYear(text string) (string, bool) {
	y := yearPattern.FindString(text)
	return y, y != ""
}

func firstCapture(patterns []*regexp.Regexp, text string) (string, bool) {
	s := strings.ToLower(strings.TrimSpace(text))
	for _, p := range patterns {
		m := p.FindStringSubmatch(s)
		if len(m) < 2 {
			continue
		}
		if v := cleanEntity(m[1]); v != "" {
			return v, true
		}
	}
	return "", false
}

// cleanEntity trims whitespace and trailing punctuation from a capture.
func cleanEntity(s string) string {
	return strings.TrimSpace(strings.TrimRight(strings.TrimSpace(s), "?!.,;:"))
}
