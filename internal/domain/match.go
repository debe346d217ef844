package domain

import "time"

// MatchStatus is the lifecycle state of a Match.
type MatchStatus string

const (
	MatchPending  MatchStatus = "pending"
	MatchAccepted MatchStatus = "accepted"
	MatchRejected MatchStatus = "rejected"
	MatchExpired  MatchStatus = "expired"
)

// Valid reports whether s is a known match status.
func (s MatchStatus) Valid() bool {
	switch s {
	case MatchPending, MatchAccepted, MatchRejected, MatchExpired:
		return true
	}
	return false
}

// Terminal reports whether no further transition is possible.
func (s MatchStatus) Terminal() bool {
	return s == MatchAccepted || s == MatchRejected || s == MatchExpired
}

// CanTransition reports whether a match may move from s to next.
func (s MatchStatus) CanTransition(next MatchStatus) bool {
	return s == MatchPending && next.Terminal()
}

// Score is the compatibility breakdown. All values are integers in [0, 100].
type Score struct {
	Total                 int      `json:"total"`
	ItemCompatibility     int      `json:"item_compatibility"`
	ProviderCompatibility int      `json:"provider_compatibility"`
	Reasons               []string `json:"reasons"`
}

// Match is created from a positive swipe and awaits the provider's decision.
// There is at most one per (SeekerID, ProviderID, ItemID).
type Match struct {
	ID         string
	SeekerID   string
	ProviderID string
	ItemID     string
	Score      Score
	Status     MatchStatus
	CreatedAt  time.Time
	AcceptedAt *time.Time
}

// FilterMatches returns the matches in the given status, preserving order.
func FilterMatches(matches []Match, status MatchStatus) []Match {
	out := make([]Match, 0, len(matches))
	for _, m := range matches {
		if m.Status == status {
			out = append(out, m)
		}
	}
	return out
}
