package dialogue

import (
	"container/list"
	"sync"
	"time"
)

const (
	// DefaultMaxSessions bounds how many conversation logs are kept at once.
	DefaultMaxSessions = 10000
	// DefaultSessionIdle is how long a log survives without a new turn.
	DefaultSessionIdle = 30 * time.Minute
)

// conversation is one session's bounded utterance log. Nothing reads it
// back into routing; it exists for History and diagnostics.
type conversation struct {
	id       string
	lastSeen time.Time

	mu      sync.Mutex
	entries []string
}

func (c *conversation) append(entry string, limit int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = append(c.entries, entry)
	if over := len(c.entries) - limit; over > 0 {
		c.entries = append(c.entries[:0], c.entries[over:]...)
	}
}

func (c *conversation) snapshot() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.entries))
	copy(out, c.entries)
	return out
}

// sessions maps session IDs to their logs. The registry lock guards the
// map and the recency list; each log serializes its own appends.
//
// The list runs from most to least recently used, so idle and overflow
// eviction both pop from the back.
type sessions struct {
	mu    sync.Mutex
	limit int
	max   int
	idle  time.Duration
	logs  map[string]*list.Element
	order *list.List
}

func newSessions(limit, max int, idle time.Duration) *sessions {
	if max <= 0 {
		max = DefaultMaxSessions
	}
	if idle <= 0 {
		idle = DefaultSessionIdle
	}
	return &sessions{
		limit: limit,
		max:   max,
		idle:  idle,
		logs:  make(map[string]*list.Element),
		order: list.New(),
	}
}

func (s *sessions) get(id string, now time.Time) *conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	if el, ok := s.logs[id]; ok {
		c := el.Value.(*conversation)
		c.lastSeen = now
		s.order.MoveToFront(el)
		return c
	}
	s.evictIdle(now)
	for s.order.Len() >= s.max {
		s.remove(s.order.Back())
	}
	c := &conversation{id: id, lastSeen: now}
	s.logs[id] = s.order.PushFront(c)
	return c
}

// evictIdle drops logs without a turn inside the idle window. Callers hold mu.
func (s *sessions) evictIdle(now time.Time) {
	for el := s.order.Back(); el != nil; el = s.order.Back() {
		if now.Sub(el.Value.(*conversation).lastSeen) <= s.idle {
			return
		}
		s.remove(el)
	}
}

func (s *sessions) remove(el *list.Element) {
	c := s.order.Remove(el).(*conversation)
	delete(s.logs, c.id)
	sessionsEvicted.Inc()
}

func (s *sessions) record(id, utterance string, now time.Time) {
	s.get(id, now).append("User: "+utterance, s.limit)
}

func (s *sessions) history(id string) []string {
	s.mu.Lock()
	el, ok := s.logs[id]
	s.mu.Unlock()
	if !ok {
		return nil
	}
	return el.Value.(*conversation).snapshot()
}

func (s *sessions) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.logs)
}
