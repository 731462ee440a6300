package model

// AnswerResult is the terminal artifact of one pipeline run.
// ContextUsed must match the branch the resolver actually took.
type AnswerResult struct {
	UserID             string
	SubscriptionStatus string
	Transcript         string
	Answer             string
	ContextUsed        ContextSource
}
