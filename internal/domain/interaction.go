package domain

import (
	"fmt"
	"time"
)

// InteractionType is the kind of swipe a seeker made.
type InteractionType string

const (
	Like      InteractionType = "like"
	Dislike   InteractionType = "dislike"
	SuperLike InteractionType = "super_like"
)

// ParseInteractionType validates a raw action string.
func ParseInteractionType(s string) (InteractionType, error) {
	switch t := InteractionType(s); t {
	case Like, Dislike, SuperLike:
		return t, nil
	}
	return "", fmt.Errorf("unknown interaction type %q", s)
}

// Positive reports whether the swipe expresses interest.
func (t InteractionType) Positive() bool {
	return t == Like || t == SuperLike
}

// Interaction is an immutable swipe record. There is at most one per
// (UserID, ItemID) pair.
type Interaction struct {
	UserID    string
	ItemID    string
	Type      InteractionType
	CreatedAt time.Time
}
