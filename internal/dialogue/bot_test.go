package dialogue

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/RoBiul-Hasan-Jisan/FlickFusion/internal/corpus"
	"github.com/RoBiul-Hasan-Jisan/FlickFusion/internal/recommend"
	"github.com/RoBiul-Hasan-Jisan/FlickFusion/internal/retrieval"
	"github.com/RoBiul-Hasan-Jisan/FlickFusion/internal/storage"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

var testNow = time.Date(2026, 3, 14, 15, 4, 5, 0, time.UTC)

type fakeJournal struct {
	mu    sync.Mutex
	saved []storage.Interaction
	err   error
	panic bool
}

func (j *fakeJournal) SaveInteraction(_ context.Context, i storage.Interaction) error {
	if j.panic {
		panic("journal exploded")
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	j.saved = append(j.saved, i)
	return j.err
}

func fixtureCorpus() *corpus.Corpus {
	movies := []corpus.Movie{
		{ID: 1, Title: "Inception", Overview: "A thief steals corporate secrets through dream sharing technology.",
			Genres: []string{"Action", "Science Fiction"}, GenresClean: "action science fiction",
			ReleaseDate: "2010-07-14", VoteAverage: 8.1, Popularity: 167.6,
			TopCast: "leonardodicaprio josephgordonlevitt", Director: "christophernolan"},
		{ID: 2, Title: "Interstellar", Overview: "Explorers travel through a wormhole in space to save humanity.",
			Genres: []string{"Adventure", "Drama", "Science Fiction"}, GenresClean: "adventure drama science fiction",
			ReleaseDate: "2014-11-05", VoteAverage: 8.1, Popularity: 724.2,
			TopCast: "matthewmcconaughey annehathaway", Director: "christophernolan"},
		{ID: 3, Title: "Top Gun", Overview: "A hotshot pilot trains at an elite flight school.",
			Genres: []string{"Action", "Drama"}, GenresClean: "action drama",
			ReleaseDate: "1986-05-16", VoteAverage: 6.6, Popularity: 45.0,
			TopCast: "tomcruise kellymcgillis", Director: "tonyscott"},
		{ID: 4, Title: "Toy Story", Overview: "A cowboy doll feels threatened by a new toy.",
			Genres: []string{"Animation", "Comedy", "Family"}, GenresClean: "animation comedy family",
			ReleaseDate: "1995-10-30", VoteAverage: 7.7, Popularity: 73.6,
			TopCast: "tomhanks timallen", Director: "johnlasseter"},
		{ID: 5, Title: "The Notebook", Overview: "A poor young man falls for a rich young woman.",
			Genres: []string{"Romance", "Drama"}, GenresClean: "romance drama",
			ReleaseDate: "2004-06-25", VoteAverage: 7.7, Popularity: 46.8,
			TopCast: "ryangosling rachelmcadams", Director: "nickcassavetes"},
	}
	for i := range movies {
		movies[i].CombinedFeatures = corpus.Features(movies[i])
	}
	return corpus.New(movies)
}

func newTestBot(t *testing.T, journal Journal, history int) *Bot {
	t.Helper()
	ctx := context.Background()
	c := fixtureCorpus()
	idx, err := retrieval.Build(ctx, c, retrieval.Options{})
	if err != nil {
		t.Fatalf("retrieval.Build: %v", err)
	}
	eng, err := recommend.New(ctx, c, recommend.Options{})
	if err != nil {
		t.Fatalf("recommend.New: %v", err)
	}
	t.Cleanup(func() { eng.Close() })

	b, err := New(Options{
		Index:       idx,
		Engine:      eng,
		Journal:     journal,
		Clock:       fixedClock{testNow},
		HistorySize: history,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return b
}

func ask(b *Bot, text string) string {
	return b.ProcessQuery(context.Background(), text, "test-session")
}

func TestNewRequiresIndexAndEngine(t *testing.T) {
	if _, err := New(Options{}); err == nil {
		t.Error("expected error without index and engine")
	}
}

func TestEmptyInputShortCircuits(t *testing.T) {
	j := &fakeJournal{}
	b := newTestBot(t, j, 0)

	for _, in := range []string{"", "   ", "\n\t"} {
		if got := ask(b, in); got != emptyInput {
			t.Errorf("ProcessQuery(%q) = %q, want %q", in, got, emptyInput)
		}
	}
	if h := b.History("test-session"); len(h) != 0 {
		t.Errorf("history = %q, want empty", h)
	}
	if len(j.saved) != 0 {
		t.Errorf("journaled %d turns for empty input", len(j.saved))
	}
}

func TestGenreReply(t *testing.T) {
	b := newTestBot(t, nil, 0)

	got := ask(b, "I want action movies")
	if !strings.HasPrefix(got, "**Action Movie Recommendations!**") {
		t.Errorf("reply does not open with the action header:\n%s", got)
	}
	want := "1. **Inception** ⭐ 8.1/10\n   🎭 Action, Science Fiction\n   📅 2010-07-14\n"
	if !strings.Contains(got, want) {
		t.Errorf("reply missing first entry %q:\n%s", want, got)
	}
	if !strings.Contains(got, "2. **Top Gun** ⭐ 6.6/10") {
		t.Errorf("reply missing second entry:\n%s", got)
	}
}

func TestGenreNoMatch(t *testing.T) {
	b := newTestBot(t, nil, 0)
	want := "I couldn't find any documentary movies. Try another genre!"
	if got := ask(b, "documentary"); got != want {
		t.Errorf("reply = %q, want %q", got, want)
	}
}

func TestSimilarMovies(t *testing.T) {
	b := newTestBot(t, nil, 0)

	got := ask(b, "recommend movies like Inception")
	if !strings.HasPrefix(got, "**Movies similar to 'inception'**\n\n") {
		t.Errorf("unexpected header:\n%s", got)
	}
	if !strings.Contains(got, "1. **Interstellar**") {
		t.Errorf("expected Interstellar ranked first:\n%s", got)
	}
	if strings.Contains(got, "**Inception**") {
		t.Errorf("query movie listed among its own neighbors:\n%s", got)
	}
}

func TestSimilarMoviesUnknownTitle(t *testing.T) {
	b := newTestBot(t, nil, 0)
	want := "Movie 'qwerty' not found. Please check the spelling."
	if got := ask(b, "movies like qwerty"); got != want {
		t.Errorf("reply = %q, want %q", got, want)
	}
}

func TestClarifyingPrompts(t *testing.T) {
	b := newTestBot(t, nil, 0)
	tests := []struct {
		text string
		want string
	}{
		{"movies like", askTitle},
		{"movies with", askPerson},
		{"movies from the nineties", askYear},
	}
	for _, tt := range tests {
		if got := ask(b, tt.text); got != tt.want {
			t.Errorf("ProcessQuery(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestPersonReplies(t *testing.T) {
	b := newTestBot(t, nil, 0)

	got := ask(b, "films with Tom Cruise")
	if !strings.HasPrefix(got, "**Actor Tom Cruise's Movies**\n\n1. **Top Gun**") {
		t.Errorf("actor reply:\n%s", got)
	}

	got = ask(b, "directed by Christopher Nolan")
	if !strings.HasPrefix(got, "**Director Christopher Nolan's Movies**\n\n1. **Interstellar**") {
		t.Errorf("director reply:\n%s", got)
	}
	if !strings.Contains(got, "2. **Inception**") {
		t.Errorf("director reply missing Inception:\n%s", got)
	}

	want := "Sorry, I couldn't find any movies with actor nobody known."
	if got := ask(b, "films with Nobody Known"); got != want {
		t.Errorf("reply = %q, want %q", got, want)
	}
}

func TestYearReplies(t *testing.T) {
	b := newTestBot(t, nil, 0)

	if got := ask(b, "movies from 1995"); !strings.HasPrefix(got, "**Movies from 1995**\n\n1. **Toy Story**") {
		t.Errorf("year reply:\n%s", got)
	}
	want := "Sorry, I couldn't find any movies from 1950."
	if got := ask(b, "movies from 1950"); got != want {
		t.Errorf("reply = %q, want %q", got, want)
	}
}

func TestPopularAndAward(t *testing.T) {
	b := newTestBot(t, nil, 0)

	if got := ask(b, "show me popular movies"); !strings.HasPrefix(got, popularHeader+"1. **Interstellar**") {
		t.Errorf("popular reply:\n%s", got)
	}
	if got := ask(b, "oscar winners"); !strings.HasPrefix(got, awardHeader+"1. **Inception**") {
		t.Errorf("award reply:\n%s", got)
	}
}

func TestMoodAndOccasion(t *testing.T) {
	b := newTestBot(t, nil, 0)

	got := ask(b, "i feel so miserable")
	if !strings.HasPrefix(got, headers["sad_mood"]+"1. **Interstellar**") {
		t.Errorf("sad mood reply:\n%s", got)
	}
	if !strings.Contains(got, "2. **Toy Story**") {
		t.Errorf("sad mood reply missing Toy Story:\n%s", got)
	}

	got = ask(b, "movie for my birthday")
	if !strings.HasPrefix(got, headers["birthday"]+"1. **Toy Story**") {
		t.Errorf("birthday reply:\n%s", got)
	}
}

func TestGeneralConversation(t *testing.T) {
	b := newTestBot(t, nil, 0)

	if got := ask(b, "hello there"); !slices.Contains(greetings, got) {
		t.Errorf("greeting = %q", got)
	}
	if got := ask(b, "thanks a lot"); got != thanksReply {
		t.Errorf("thanks = %q", got)
	}
	if got := ask(b, "what can you do"); got != helpText {
		t.Errorf("help = %q", got)
	}
	if got := ask(b, "what time is it"); got != "Current time: 03:04 PM" {
		t.Errorf("time = %q", got)
	}
	if got := ask(b, "what day is today"); got != "Today is: Saturday, March 14, 2026" {
		t.Errorf("date = %q", got)
	}
}

func TestUnclassifiedFallbacks(t *testing.T) {
	b := newTestBot(t, nil, 0)

	if got := ask(b, "xyzzy"); got != helpText {
		t.Errorf("unclassified without movie words = %q, want help text", got)
	}
	if got := ask(b, "what should i watch"); !strings.HasPrefix(got, popularHeader) {
		t.Errorf("unclassified with movie word:\n%s", got)
	}
}

func TestBengaliSad(t *testing.T) {
	b := newTestBot(t, nil, 0)
	if got := ask(b, "আমার মন খারাপ"); !strings.HasPrefix(got, bengaliSadHead+"1. **Interstellar**") {
		t.Errorf("bengali reply:\n%s", got)
	}
}

func TestProcessQueryIdempotent(t *testing.T) {
	b := newTestBot(t, nil, 0)
	for _, q := range []string{"recommend movies like Inception", "tell me a joke", "hello there", "comedy"} {
		first := ask(b, q)
		if second := ask(b, q); second != first {
			t.Errorf("ProcessQuery(%q) changed between calls:\n%s\n---\n%s", q, first, second)
		}
	}
}

func TestJournalRecordsTurn(t *testing.T) {
	j := &fakeJournal{}
	b := newTestBot(t, j, 0)

	reply := b.ProcessQuery(context.Background(), "films with Tom Cruise", "s1")
	if len(j.saved) != 1 {
		t.Fatalf("journaled %d turns, want 1", len(j.saved))
	}
	got := j.saved[0]
	if got.ID == "" {
		t.Error("interaction ID is empty")
	}
	if got.SessionID != "s1" || got.Intent != "actor_movies" || got.Entity != "tom cruise" || got.ResultCount != 1 {
		t.Errorf("interaction = %+v", got)
	}
	if !got.CreatedAt.Equal(testNow) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, testNow)
	}
	if got.Response != reply {
		t.Errorf("Response does not match reply")
	}
}

func TestJournalFailureDoesNotAffectReply(t *testing.T) {
	b := newTestBot(t, &fakeJournal{err: errors.New("disk full")}, 0)
	if got := ask(b, "thanks"); got != thanksReply {
		t.Errorf("reply = %q, want %q", got, thanksReply)
	}
}

func TestPanicBecomesApology(t *testing.T) {
	b := newTestBot(t, &fakeJournal{panic: true}, 0)
	if got := ask(b, "comedy"); got != apology {
		t.Errorf("reply = %q, want apology", got)
	}
}

func TestHistoryBounded(t *testing.T) {
	b := newTestBot(t, nil, 3)
	for i := range 5 {
		ask(b, fmt.Sprintf("hello %d", i))
	}
	want := []string{"User: hello 2", "User: hello 3", "User: hello 4"}
	if got := b.History("test-session"); !slices.Equal(got, want) {
		t.Errorf("History = %q, want %q", got, want)
	}
	if got := b.History("other"); got != nil {
		t.Errorf("History(other) = %q, want nil", got)
	}
}

func TestSessionRegistryBounded(t *testing.T) {
	b := newTestBot(t, nil, 3)
	b.sessions = newSessions(3, 10, 0)
	for i := range 100 {
		b.ProcessQuery(context.Background(), "hello", fmt.Sprintf("s-%d", i))
	}
	if got := b.sessions.count(); got != 10 {
		t.Errorf("sessions retained = %d, want 10", got)
	}
	if b.History("s-0") != nil {
		t.Error("oldest session should have been evicted")
	}
}

func TestConcurrentSessions(t *testing.T) {
	b := newTestBot(t, &fakeJournal{}, 4)

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			session := fmt.Sprintf("s%d", i%2)
			for range 10 {
				b.ProcessQuery(context.Background(), "popular movies", session)
			}
		}()
	}
	wg.Wait()

	for _, s := range []string{"s0", "s1"} {
		if got := len(b.History(s)); got != 4 {
			t.Errorf("History(%s) has %d entries, want 4", s, got)
		}
	}
}
