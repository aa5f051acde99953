package recommend

// Genre sets are matched as case-insensitive substrings of a movie's
// cleaned genre string.
var moodGenres = map[string][]string{
	"sad":      {"comedy", "animation", "family"},
	"happy":    {"comedy", "animation", "adventure"},
	"romantic": {"romance", "drama"},
	"bored":    {"action", "adventure", "thriller"},
	"stressed": {"comedy", "family", "animation"},
	"angry":    {"comedy", "animation"},
	"tired":    {"comedy", "family"},
	"scared":   {"horror", "thriller"},
	"fantasy":  {"fantasy", "adventure"},
	"action":   {"action", "adventure", "thriller"},
}

var occasionGenres = map[string][]string{
	"birthday":    {"comedy", "animation", "musical"},
	"date_night":  {"romance", "comedy", "drama"},
	"friends":     {"comedy", "action", "horror"},
	"family_time": {"family", "animation", "comedy"},
	"alone":       {"drama", "documentary", "fantasy"},
}

var fallbackGenres = []string{"comedy"}

// MoodGenres returns the genre set recommended for mood, or the fallback
// set when the mood is unknown.
func MoodGenres(mood string) []string {
	if g, ok := moodGenres[mood]; ok {
		return g
	}
	return fallbackGenres
}

// OccasionGenres returns the genre set recommended for occasion, or the
// fallback set when the occasion is unknown.
func OccasionGenres(occasion string) []string {
	if g, ok := occasionGenres[occasion]; ok {
		return g
	}
	return fallbackGenres
}
