package intent

import "testing"

func TestExtractTitle(t *testing.T) {
	tests := []struct {
		text string
		want string
		ok   bool
	}{
		{"recommend movies like Inception", "inception", true},
		{"something similar to The Dark Knight?", "the dark knight", true},
		{"I'd like Avatar", "avatar", true},
		{"comparable to Up", "up", true},
		{"movies like", "", false},
		{"similar movies please", "", false},
	}
	for _, tt := range tests {
		got, ok := ExtractTitle(tt.text)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ExtractTitle(%q) = (%q, %v), want (%q, %v)", tt.text, got, ok, tt.want, tt.ok)
		}
	}
}

func TestExtractPerson(t *testing.T) {
	tests := []struct {
		text string
		want string
		ok   bool
	}{
		{"movies with Tom Cruise", "tom cruise", true},
		{"films with Meryl Streep.", "meryl streep", true},
		{"starring Keanu Reeves", "keanu reeves", true},
		{"directed by Christopher Nolan", "christopher nolan", true},
		{"movies with", "", false},
		{"director", "", false},
	}
	for _, tt := range tests {
		got, ok := ExtractPerson(tt.text)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ExtractPerson(%q) = (%q, %v), want (%q, %v)", tt.text, got, ok, tt.want, tt.ok)
		}
	}
}

func TestExtractYear(t *testing.T) {
	tests := []struct {
		text string
		want string
		ok   bool
	}{
		{"movies from 2020", "2020", true},
		{"released in 1994 or 1995", "1994", true},
		{"films from 1850", "", false},
		{"room 12345", "", false},
		{"movies from the nineties", "", false},
		{"movies from the 2020s", "2020", true},
		{"best of 1990-1999", "1990", true},
	}
	for _, tt := range tests {
		got, ok := ExtractYear(tt.text)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ExtractYear(%q) = (%q, %v), want (%q, %v)", tt.text, got, ok, tt.want, tt.ok)
		}
	}
}
