package model

import "time"

type SubscriptionStatus string

const (
	SubscriptionPremium SubscriptionStatus = "premium"
	SubscriptionFree    SubscriptionStatus = "gratuito"
)

// Subscription is the entitlement record for a caller.
type Subscription struct {
	UserID    string
	Status    SubscriptionStatus
	ExpiresAt *time.Time
}

func (s *Subscription) Premium() bool { return s.Status == SubscriptionPremium }

// Active reports whether the status grants access at all. Anything outside
// the two known plans is treated as inactive.
func (s *Subscription) Active() bool {
	return s.Status == SubscriptionPremium || s.Status == SubscriptionFree
}
