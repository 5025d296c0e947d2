package billing

import (
	"slices"
	"time"
)

const day = 24 * time.Hour

// transitions lists the stored status changes the engine performs.
// Expiry is derived at read time and is never a stored transition.
var transitions = map[Status][]Status{
	StatusTrial:  {StatusActive, StatusCancelled},
	StatusActive: {StatusCancelled},
}

// CanTransition reports whether a stored subscription may move from one status to another.
func CanTransition(from, to Status) bool {
	return slices.Contains(transitions[from], to)
}

// IsSubscriptionActive reports whether sub is paid and still inside its window.
// A stored active status alone is not enough once now reaches EndDate.
func IsSubscriptionActive(sub *Subscription, now time.Time) bool {
	if sub == nil {
		return false
	}
	return sub.Status == StatusActive && now.Before(sub.EndDate)
}

// IsInTrial reports whether sub is a trial that has not yet ended.
func IsInTrial(sub *Subscription, now time.Time) bool {
	if sub == nil || sub.Status != StatusTrial || sub.TrialEndDate == nil {
		return false
	}
	return now.Before(*sub.TrialEndDate)
}

// DaysUntilNextBilling returns the whole days, rounded up, until the next
// billing date. Never negative.
func DaysUntilNextBilling(sub *Subscription, now time.Time) int {
	if sub == nil {
		return 0
	}
	remaining := sub.NextBillingDate.Sub(now)
	if remaining <= 0 {
		return 0
	}
	days := int(remaining / day)
	if remaining%day != 0 {
		days++
	}
	return days
}

// CancelSubscription returns a cancelled copy of sub with auto-renew switched
// off. Dates and amount are kept as the historical record. sub is not modified.
func CancelSubscription(sub *Subscription) *Subscription {
	if sub == nil {
		return nil
	}
	c := sub.Clone()
	c.Status = StatusCancelled
	c.AutoRenew = false
	return c
}

// DisplayStatus resolves the human-visible status of sub at now.
// Precedence: running trial, effectively active, cancelled, then expired.
func DisplayStatus(sub *Subscription, now time.Time) Status {
	switch {
	case IsInTrial(sub, now):
		return StatusTrial
	case IsSubscriptionActive(sub, now):
		return StatusActive
	case sub != nil && sub.Status == StatusCancelled:
		return StatusCancelled
	default:
		return StatusExpired
	}
}
