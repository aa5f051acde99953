// Package dialogue turns a chat utterance into a text reply: it classifies
// the utterance, runs the matching query against the similarity index or
// the query engine, and formats the result.
package dialogue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/RoBiul-Hasan-Jisan/FlickFusion/internal/corpus"
	"github.com/RoBiul-Hasan-Jisan/FlickFusion/internal/intent"
	"github.com/RoBiul-Hasan-Jisan/FlickFusion/internal/recommend"
	"github.com/RoBiul-Hasan-Jisan/FlickFusion/internal/retrieval"
	"github.com/RoBiul-Hasan-Jisan/FlickFusion/internal/storage"
)

// DefaultHistorySize is the number of utterances kept per session.
const DefaultHistorySize = 20

// Journal records answered turns. Implemented by storage.Store and
// journal.Writer.
type Journal interface {
	SaveInteraction(ctx context.Context, i storage.Interaction) error
}

// Clock abstracts time for testability.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Options configures New. Index and Engine are required.
type Options struct {
	Router  *intent.Router
	Index   *retrieval.Index
	Engine  *recommend.Engine
	Journal Journal
	Clock   Clock
	Logger  *slog.Logger

	// TopN caps genre, mood, popular and similar-movie lists.
	TopN int
	// ShortTopN caps occasion, award and Bengali lists.
	ShortTopN   int
	HistorySize int
	// MaxSessions caps the conversation logs held at once; the least
	// recently used log is dropped first.
	MaxSessions int
	// SessionIdle drops a log after this long without a turn.
	SessionIdle time.Duration
}

// Bot answers chat turns. It is safe for concurrent use.
type Bot struct {
	router    *intent.Router
	index     *retrieval.Index
	engine    *recommend.Engine
	journal   Journal
	clock     Clock
	logger    *slog.Logger
	topN      int
	shortTopN int
	sessions  *sessions
}

// New returns a Bot over an already built index and engine.
func New(opts Options) (*Bot, error) {
	if opts.Index == nil || opts.Engine == nil {
		return nil, errors.New("dialogue: index and engine are required")
	}
	b := &Bot{
		router:    opts.Router,
		index:     opts.Index,
		engine:    opts.Engine,
		journal:   opts.Journal,
		clock:     opts.Clock,
		logger:    opts.Logger,
		topN:      opts.TopN,
		shortTopN: opts.ShortTopN,
	}
	if b.logger == nil {
		b.logger = slog.Default()
	}
	if b.router == nil {
		b.router = intent.NewRouter(b.logger)
	}
	if b.clock == nil {
		b.clock = realClock{}
	}
	if b.topN <= 0 {
		b.topN = recommend.DefaultTopN
	}
	if b.shortTopN <= 0 {
		b.shortTopN = recommend.PersonTopN
	}
	history := opts.HistorySize
	if history <= 0 {
		history = DefaultHistorySize
	}
	b.sessions = newSessions(history, opts.MaxSessions, opts.SessionIdle)
	return b, nil
}

// turn is the outcome of one classified utterance.
type turn struct {
	intent intent.Intent
	entity string
	reply  string
	count  int
}

// ProcessQuery answers text for sessionID. It always returns a reply;
// internal failures become an apology. ctx only bounds the journal write.
func (b *Bot) ProcessQuery(ctx context.Context, text, sessionID string) (reply string) {
	if strings.TrimSpace(text) == "" {
		return emptyInput
	}
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			panicsTotal.Inc()
			b.logger.Error("chat turn panicked", "session", sessionID, "panic", r, "stack", string(debug.Stack()))
			reply = apology
		}
		turnDuration.Observe(time.Since(start).Seconds())
	}()

	b.sessions.record(sessionID, text, b.clock.Now())
	activeSessions.Set(float64(b.sessions.count()))

	t := b.answer(text)
	turnsTotal.WithLabelValues(string(t.intent)).Inc()
	b.logger.Debug("chat turn answered", "session", sessionID, "intent", t.intent, "entity", t.entity, "results", t.count)
	b.record(ctx, sessionID, text, t)
	return t.reply
}

// History returns a copy of the utterances logged for sessionID, oldest first.
func (b *Bot) History(sessionID string) []string {
	return b.sessions.history(sessionID)
}

func (b *Bot) record(ctx context.Context, sessionID, text string, t turn) {
	if b.journal == nil {
		return
	}
	err := b.journal.SaveInteraction(ctx, storage.Interaction{
		ID:          uuid.NewString(),
		SessionID:   sessionID,
		CreatedAt:   b.clock.Now(),
		UserQuery:   text,
		Intent:      string(t.intent),
		Entity:      t.entity,
		Response:    t.reply,
		ResultCount: t.count,
	})
	if err != nil {
		journalErrorsTotal.Inc()
		b.logger.Warn("journaling chat turn failed", "session", sessionID, "error", err)
	}
}

func (b *Bot) answer(text string) turn {
	in := b.router.Classify(text)
	t := turn{intent: in}

	switch in.Group() {
	case intent.GroupGenre:
		genre, _ := in.Genre()
		res := b.engine.ByGenre(genre, b.topN)
		t.entity, t.count = genre, len(res.Movies)
		if res.NoMatch() {
			t.reply = fmt.Sprintf("I couldn't find any %s movies. Try another genre!", genre)
			return t
		}
		t.reply = headers[in] + formatMovies(res.Movies)

	case intent.GroupMood:
		mood, _ := in.Mood()
		res := b.engine.ByMood(mood, b.topN)
		t.entity, t.count = mood, len(res.Movies)
		if res.NoMatch() {
			t.reply = moodFallback + b.popular(&t)
			return t
		}
		t.reply = headers[in] + formatMovies(res.Movies)

	case intent.GroupOccasion:
		occasion, _ := in.Occasion()
		res := b.engine.ByOccasion(occasion, b.shortTopN)
		t.entity, t.count = occasion, len(res.Movies)
		if res.NoMatch() {
			t.reply = b.popular(&t)
			return t
		}
		t.reply = headers[in] + formatMovies(res.Movies)

	case intent.GroupSearch:
		b.search(text, &t)

	case intent.GroupGeneral:
		t.reply = b.converse(in, text)

	case intent.GroupLocale:
		t.reply = b.bengali(in, text, &t)

	default:
		lower := strings.ToLower(text)
		for _, w := range movieWords {
			if strings.Contains(lower, w) {
				t.reply = b.popular(&t)
				return t
			}
		}
		t.reply = helpText
	}
	return t
}

func (b *Bot) search(text string, t *turn) {
	switch t.intent {
	case intent.SimilarMovies:
		title, ok := intent.ExtractTitle(text)
		if !ok {
			t.reply = askTitle
			return
		}
		t.entity = title
		t.reply = b.similar(title, t)

	case intent.ActorMovies, intent.DirectorMovies:
		name, ok := intent.ExtractPerson(text)
		if !ok {
			t.reply = askPerson
			return
		}
		role := recommend.Actor
		if t.intent == intent.DirectorMovies {
			role = recommend.Director
		}
		t.entity = name
		res := b.engine.ByPerson(name, role)
		t.count = len(res.Movies)
		if res.NoMatch() {
			t.reply = fmt.Sprintf("Sorry, I couldn't find any movies with %s %s.", role, name)
			return
		}
		t.reply = fmt.Sprintf("**%s %s's Movies**\n\n", titleCase(string(role)), titleCase(name)) + formatMovies(res.Movies)

	case intent.YearMovies:
		year, ok := intent.ExtractYear(text)
		if !ok {
			t.reply = askYear
			return
		}
		t.entity = year
		res := b.engine.ByYear(year)
		t.count = len(res.Movies)
		if res.NoMatch() {
			t.reply = fmt.Sprintf("Sorry, I couldn't find any movies from %s.", year)
			return
		}
		t.reply = fmt.Sprintf("**Movies from %s**\n\n", year) + formatMovies(res.Movies)

	case intent.PopularMovies:
		t.reply = b.popular(t)

	case intent.AwardMovies:
		res := b.engine.TopRated(b.shortTopN)
		t.count = len(res.Movies)
		t.reply = awardHeader + formatMovies(res.Movies)

	default:
		t.reply = helpText
	}
}

func (b *Bot) similar(title string, t *turn) string {
	neighbors, err := b.index.NearestNeighbors(title, b.topN)
	switch {
	case errors.Is(err, retrieval.ErrNotFound):
		return fmt.Sprintf("Movie '%s' not found. Please check the spelling.", title)
	case err != nil:
		b.logger.Warn("similar movies lookup failed", "title", title, "error", err)
		return fmt.Sprintf("Sorry, I couldn't find movies similar to '%s'. Try another movie title!", title)
	}
	movies := make([]corpus.Movie, len(neighbors))
	for i, n := range neighbors {
		movies[i] = n.Movie
	}
	t.count = len(movies)
	return fmt.Sprintf("**Movies similar to '%s'**\n\n", title) + formatMovies(movies)
}

func (b *Bot) popular(t *turn) string {
	res := b.engine.Popular(b.topN)
	t.count = len(res.Movies)
	return popularHeader + formatMovies(res.Movies)
}

func (b *Bot) converse(in intent.Intent, text string) string {
	switch in {
	case intent.Greeting:
		return pick(greetings, text)
	case intent.Thanks:
		return thanksReply
	case intent.Farewell:
		return farewellReply
	case intent.JokeRequest:
		return jokeHeader + pick(jokes, text)
	case intent.FactRequest:
		return factHeader + pick(facts, text)
	case intent.StoryRequest:
		return storyReply
	case intent.TimeRequest:
		return "Current time: " + b.clock.Now().Format("03:04 PM")
	case intent.DateRequest:
		return "Today is: " + b.clock.Now().Format("Monday, January 02, 2006")
	}
	return helpText
}

func (b *Bot) bengali(in intent.Intent, text string, t *turn) string {
	switch {
	case in == intent.BengaliSad || strings.Contains(text, bengaliSadWord):
		res := b.engine.ByMood("happy", b.topN)
		t.count = len(res.Movies)
		return bengaliSadHead + formatMovies(res.Movies)
	case in == intent.BengaliMovies || strings.Contains(text, bengaliFilmWord):
		res := b.engine.Popular(b.shortTopN)
		t.count = len(res.Movies)
		return bengaliTopHead + formatMovies(res.Movies)
	}
	return bengaliFallback
}

// titleCase builds a Caser per call; Casers are not safe for concurrent use.
func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}
