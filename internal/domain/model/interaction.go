package model

import "time"

// Interaction is one completed audio-to-answer exchange, persisted so the
// client can list conversation history.
type Interaction struct {
	ID          string
	UserID      string
	Transcript  string
	Answer      string
	ContextUsed ContextSource
	CreatedAt   time.Time
}
