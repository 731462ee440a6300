package model

import "time"

// KnowledgeDocument is a read-only record from the knowledge base.
type KnowledgeDocument struct {
	ID        string
	Title     string
	Content   string
	CreatedAt time.Time
}
