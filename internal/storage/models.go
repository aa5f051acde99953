package storage

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Interaction is one journaled chat turn.
type Interaction struct {
	ID            string    `json:"id"`
	SessionID     string    `json:"session_id"`
	CreatedAt     time.Time `json:"created_at"`
	UserQuery     string    `json:"user_query"`
	Intent        string    `json:"intent"`
	Entity        string    `json:"entity,omitempty"`
	Response      string    `json:"response"`
	ResultCount   int       `json:"result_count"`
	FeedbackScore int       `json:"feedback_score"`
	FeedbackNotes string    `json:"feedback_notes,omitempty"`
}

// IntentCount is the number of journaled turns classified as Intent.
type IntentCount struct {
	Intent string `json:"intent"`
	Count  int    `json:"count"`
}
