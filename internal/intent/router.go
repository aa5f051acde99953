package intent

import (
	"log/slog"
	"strings"
)

// Router classifies utterances. The zero value is not usable; call NewRouter.
type Router struct {
	logger *slog.Logger
}

// NewRouter returns a Router backed by the package rule table.
func NewRouter(logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{logger: logger}
}

// Classify returns the intent of text. Whole-utterance phrases are checked
// first, then the ordered rules; anything unmatched is GeneralConversation.
func (r *Router) Classify(text string) Intent {
	s := strings.ToLower(strings.TrimSpace(text))
	if s == "" {
		return GeneralConversation
	}
	if in, ok := exactPhrases[s]; ok {
		r.logger.Debug("intent classified", "intent", in, "via", "exact")
		return in
	}
	for _, rule := range rules {
		for _, p := range rule.patterns {
			if p.MatchString(s) {
				r.logger.Debug("intent classified", "intent", rule.intent, "pattern", p.String())
				return rule.intent
			}
		}
	}
	r.logger.Debug("intent classified", "intent", GeneralConversation)
	return GeneralConversation
}
