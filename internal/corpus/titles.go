package corpus

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// folder produces comparison keys for titles. A Caser carries state, so a
// folder must not be shared between goroutines.
type folder struct {
	caser cases.Caser
}

func newFolder() folder {
	return folder{caser: cases.Fold()}
}

func (f folder) fold(s string) string {
	s = norm.NFKC.String(strings.TrimSpace(s))
	return strings.Join(strings.Fields(f.caser.String(s)), " ")
}

// CleanName lowercases a person name and removes all whitespace, the form
// used for cast and director tokens.
func CleanName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "")
}
