// Package intent classifies chat utterances into a fixed, ordered set of
// intents and extracts the entities their handlers need.
package intent

// Intent is one classification tag.
type Intent string

// Genre intents.
const (
	ActionMovies      Intent = "action_movies"
	RomanticMovies    Intent = "romantic_movies"
	ComedyMovies      Intent = "comedy_movies"
	HorrorMovies      Intent = "horror_movies"
	SciFiMovies       Intent = "sci-fi_movies"
	DramaMovies       Intent = "drama_movies"
	FantasyMovies     Intent = "fantasy_movies"
	AnimationMovies   Intent = "animation_movies"
	FamilyMovies      Intent = "family_movies"
	DocumentaryMovies Intent = "documentary_movies"
)

// Mood intents.
const (
	SadMood       Intent = "sad_mood"
	HappyMood     Intent = "happy_mood"
	BoredMood     Intent = "bored_mood"
	StressedMood  Intent = "stressed_mood"
	RomanticMood  Intent = "romantic_mood"
	EnergeticMood Intent = "energetic_mood"
	RelaxedMood   Intent = "relaxed_mood"
)

// Occasion intents.
const (
	Birthday       Intent = "birthday"
	DateNight      Intent = "date_night"
	FriendsHangout Intent = "friends_hangout"
	FamilyTime     Intent = "family_time"
	AloneTime      Intent = "alone_time"
)

// Search intents.
const (
	SimilarMovies  Intent = "similar_movies"
	ActorMovies    Intent = "actor_movies"
	DirectorMovies Intent = "director_movies"
	YearMovies     Intent = "year_movies"
	PopularMovies  Intent = "popular_movies"
	AwardMovies    Intent = "award_movies"
)

// General conversation intents.
const (
	Greeting     Intent = "greeting"
	Thanks       Intent = "thanks"
	Farewell     Intent = "farewell"
	Help         Intent = "help"
	JokeRequest  Intent = "joke_request"
	FactRequest  Intent = "fact_request"
	StoryRequest Intent = "story_request"
	TimeRequest  Intent = "time_request"
	DateRequest  Intent = "date_request"
)

// Bengali locale intents.
const (
	BengaliMovies Intent = "bengali_movies"
	BengaliSad    Intent = "bengali_sad"
	BengaliHappy  Intent = "bengali_happy"
)

// GeneralConversation is returned when nothing else matches.
const GeneralConversation Intent = "general_conversation"

// Group is the handler family an intent belongs to.
type Group int

const (
	GroupUnknown Group = iota
	GroupGenre
	GroupMood
	GroupOccasion
	GroupSearch
	GroupGeneral
	GroupLocale
)

func (g Group) String() string {
	switch g {
	case GroupGenre:
		return "genre"
	case GroupMood:
		return "mood"
	case GroupOccasion:
		return "occasion"
	case GroupSearch:
		return "search"
	case GroupGeneral:
		return "general"
	case GroupLocale:
		return "locale"
	}
	return "unknown"
}

// Group returns the handler family of i.
func (i Intent) Group() Group {
	for _, r := range rules {
		if r.intent == i {
			return r.group
		}
	}
	return GroupUnknown
}

// Genre returns the corpus genre name for a genre intent.
func (i Intent) Genre() (string, bool) {
	g, ok := genreOf[i]
	return g, ok
}

// Mood returns the mood table key for a mood intent. Intents describe how
// the user feels; the key names what to recommend for it.
func (i Intent) Mood() (string, bool) {
	m, ok := moodOf[i]
	return m, ok
}

// Occasion returns the occasion table key for an occasion intent.
func (i Intent) Occasion() (string, bool) {
	o, ok := occasionOf[i]
	return o, ok
}
