package corpus

import "testing"

func TestParseEntriesJSON(t *testing.T) {
	got, err := parseEntries(`[{"id": 18, "name": "Drama"}, {"id": 10749, "name": "Romance"}]`)
	if err != nil {
		t.Fatalf("parseEntries: %v", err)
	}
	if n := names(got); len(n) != 2 || n[0] != "Drama" || n[1] != "Romance" {
		t.Errorf("names = %v", n)
	}
}

func TestParseEntriesLiteral(t *testing.T) {
	got, err := parseEntries(`[{'name': 'O\'Brien', 'job': 'Director', 'credit': None, 'adult': False}]`)
	if err != nil {
		t.Fatalf("parseEntries: %v", err)
	}
	if directorOf(got) != "O'Brien" {
		t.Errorf("directorOf = %q, want %q", directorOf(got), "O'Brien")
	}
}

func TestParseEntriesEmpty(t *testing.T) {
	got, err := parseEntries("  ")
	if err != nil || len(got) != 0 {
		t.Errorf("parseEntries(blank) = (%v, %v), want (empty, nil)", got, err)
	}
}

func TestParseEntriesMalformed(t *testing.T) {
	for _, raw := range []string{"[{bad", "[{'name': 'open", "not a list"} {
		if _, err := parseEntries(raw); err == nil {
			t.Errorf("parseEntries(%q) returned nil error", raw)
		}
	}
}

func TestDirectorOfNoDirector(t *testing.T) {
	if got := directorOf([]entry{{Name: "A", Job: "Editor"}}); got != "" {
		t.Errorf("directorOf = %q, want empty", got)
	}
}
