package model

// ContextSource labels which context candidate actually grounded the answer.
type ContextSource string

const (
	SourceUserContext      ContextSource = "user_context"
	SourceRetrievedContext ContextSource = "retrieved_context"
	SourceNoContext        ContextSource = "no_context"
)

// ContextCandidate is a (source, text) pair considered by the resolver.
// Either candidate may be empty.
type ContextCandidate struct {
	Source ContextSource
	Text   string
}

// ResolvedContext is the single candidate chosen for answer generation.
// Immutable once computed; exactly one is produced per request.
type ResolvedContext struct {
	Text   string
	Source ContextSource
}
