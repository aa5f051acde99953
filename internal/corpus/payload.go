package corpus

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// entry is one object of a nested genre, keyword, cast, or crew payload.
type entry struct {
	Name string `json:"name"`
	Job  string `json:"job"`
}

// parseEntries decodes a list-of-objects payload. Payloads written with
// single-quoted literals are rewritten to JSON before a second attempt.
func parseEntries(raw string) ([]entry, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	var out []entry
	err := json.Unmarshal([]byte(raw), &out)
	if err == nil {
		return out, nil
	}
	converted, convErr := literalToJSON(raw)
	if convErr != nil {
		return nil, fmt.Errorf("decoding payload: %w", err)
	}
	out = nil
	if err := json.Unmarshal([]byte(converted), &out); err != nil {
		return nil, fmt.Errorf("decoding payload: %w", err)
	}
	return out, nil
}

var errUnterminated = errors.New("unterminated string literal")

// literalToJSON rewrites a literal-style list (single or double quoted
// strings, True/False/None) into JSON text.
func literalToJSON(s string) (string, error) {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case c == '\'' || c == '"':
			str, next, err := readQuoted(s, i)
			if err != nil {
				return "", err
			}
			enc, err := json.Marshal(str)
			if err != nil {
				return "", err
			}
			b.Write(enc)
			i = next
		case strings.HasPrefix(s[i:], "True"):
			b.WriteString("true")
			i += 4
		case strings.HasPrefix(s[i:], "False"):
			b.WriteString("false")
			i += 5
		case strings.HasPrefix(s[i:], "None"):
			b.WriteString("null")
			i += 4
		default:
			b.WriteByte(c)
			i++
		}
	}
	return b.String(), nil
}

// readQuoted reads the string literal starting at s[start] and returns its
// value and the index just past the closing quote.
func readQuoted(s string, start int) (string, int, error) {
	quote := s[start]
	var b strings.Builder
	for i := start + 1; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\\' && i+1 < len(s):
			i++
			switch n := s[i]; n {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case '\\', '\'', '"':
				b.WriteByte(n)
			default:
				b.WriteByte('\\')
				b.WriteByte(n)
			}
		case c == quote:
			return b.String(), i + 1, nil
		default:
			b.WriteByte(c)
		}
	}
	return "", 0, errUnterminated
}

func names(entries []entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Name != "" {
			out = append(out, e.Name)
		}
	}
	return out
}

func directorOf(crew []entry) string {
	for _, e := range crew {
		if e.Job == "Director" {
			return e.Name
		}
	}
	return ""
}
