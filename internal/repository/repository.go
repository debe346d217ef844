package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/oggyb/spacematch/internal/domain"
)

// UserRepository is the persistence contract for users.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (domain.User, error)
	// FindByIDs returns the users that exist, keyed by id. Missing ids are
	// simply absent from the map.
	FindByIDs(ctx context.Context, ids []string) (map[string]domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	Create(ctx context.Context, u domain.User) (domain.User, error)
	UpdateAttributes(ctx context.Context, id string, attributes []string) (domain.User, error)
	UpdatePreferences(ctx context.Context, id string, prefs *domain.Preferences) (domain.User, error)
}

// ItemFilter holds the hard filters for candidate search. Nil pointers and
// empty strings mean "no constraint".
type ItemFilter struct {
	Status     domain.ItemStatus
	City       string
	MinPrice   *float64
	MaxPrice   *float64
	ExcludeIDs []string
	Limit      int
	Offset     int
}

// ItemRepository is the persistence contract for listings.
type ItemRepository interface {
	FindByID(ctx context.Context, id string) (domain.Item, error)
	Search(ctx context.Context, f ItemFilter) ([]domain.Item, error)
	Create(ctx context.Context, it domain.Item) (domain.Item, error)
	UpdateTags(ctx context.Context, id string, attributes, vibes []string) (domain.Item, error)
	UpdateStatus(ctx context.Context, id string, next domain.ItemStatus) (domain.Item, error)
}

// InteractionRepository is the append-only swipe log.
type InteractionRepository interface {
	// Create fails with a Conflict error if the (user, item) pair exists.
	Create(ctx context.Context, in domain.Interaction) (domain.Interaction, error)
	HasInteracted(ctx context.Context, userID, itemID string) (bool, error)
	// Find returns the user's swipe on item, or a NotFound error.
	Find(ctx context.Context, userID, itemID string) (domain.Interaction, error)
	ItemIDsByUser(ctx context.Context, userID string) ([]string, error)
}

// MatchQuery selects one side's matches.
type MatchQuery struct {
	UserID          string
	Role            domain.Role
	Status          *domain.MatchStatus
	PaginationToken *string
	Limit           int
}

// MatchRepository is the persistence contract for matches.
type MatchRepository interface {
	// Create fails with a Conflict error if the (seeker, provider, item) triple exists.
	Create(ctx context.Context, m domain.Match) (domain.Match, error)
	FindByID(ctx context.Context, id string) (domain.Match, error)
	FindByTriple(ctx context.Context, seekerID, providerID, itemID string) (domain.Match, error)
	List(ctx context.Context, q MatchQuery) ([]domain.Match, *string, error)
	// TransitionStatus moves a match from -> to only if it is still in from.
	// AcceptedAt is stamped with at when to is accepted.
	TransitionStatus(ctx context.Context, id string, from, to domain.MatchStatus, at time.Time) (domain.Match, error)
	CountByProvider(ctx context.Context, providerID string, status domain.MatchStatus) (int64, error)
}

// isDuplicate reports whether err is a unique constraint violation.
// gorm translates it when TranslateError is on; the string checks cover
// connections opened without it.
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "Duplicate entry")
}

// getString safely dereferences a string pointer for pagination tokens.
func getString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
