// Package profile stores the tags produced by the analysis collaborators,
// seeker onboarding answers and listing status changes.
package profile

import (
	"context"
	"log/slog"

	"github.com/oggyb/spacematch/internal/domain"
	svcErr "github.com/oggyb/spacematch/internal/errors"
	"github.com/oggyb/spacematch/internal/repository"
	"github.com/oggyb/spacematch/internal/validation"
)

type Service struct {
	users  repository.UserRepository
	items  repository.ItemRepository
	logger *slog.Logger
}

func NewService(users repository.UserRepository, items repository.ItemRepository, logger *slog.Logger) *Service {
	return &Service{users: users, items: items, logger: logger}
}

// ApplyUserTraits replaces a user's personality traits with the normalized set.
func (s *Service) ApplyUserTraits(ctx context.Context, userID string, traits []string) (domain.User, error) {
	u, err := s.users.UpdateAttributes(ctx, userID, traits)
	if err != nil {
		return domain.User{}, err
	}
	s.logger.Debug("user traits applied", "user", userID, "traits", u.Attributes)
	return u, nil
}

// ApplyItemTags replaces an item's style attributes and vibes.
func (s *Service) ApplyItemTags(ctx context.Context, itemID string, attributes, vibes []string) (domain.Item, error) {
	it, err := s.items.UpdateTags(ctx, itemID, attributes, vibes)
	if err != nil {
		return domain.Item{}, err
	}
	s.logger.Debug("item tags applied", "item", itemID, "attributes", it.Attributes, "vibes", it.Vibes)
	return it, nil
}

// UpdatePreferences stores a seeker's onboarding answers.
//
// Behavior:
//   - Invalid values (max < min, negative numbers, cleanliness outside 1..5) → Validation.
//   - Unknown user → NotFound. Providers → Forbidden.
func (s *Service) UpdatePreferences(ctx context.Context, userID string, prefs domain.Preferences) (domain.User, error) {
	if err := validation.Struct(prefs); err != nil {
		return domain.User{}, err
	}

	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return domain.User{}, err
	}
	if !u.IsSeeker() {
		return domain.User{}, svcErr.Forbidden("only seekers have preferences")
	}

	return s.users.UpdatePreferences(ctx, userID, &prefs)
}

// UpdateItemStatus takes a listing off the market. Only the owning
// provider may do so, and only from the active state.
func (s *Service) UpdateItemStatus(ctx context.Context, itemID, providerID string, next domain.ItemStatus) (domain.Item, error) {
	if !next.Valid() {
		return domain.Item{}, svcErr.Validation("unknown item status %q", next)
	}

	it, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return domain.Item{}, err
	}
	if it.ProviderID != providerID {
		return domain.Item{}, svcErr.Forbidden("item %s is not owned by %s", itemID, providerID)
	}

	return s.items.UpdateStatus(ctx, itemID, next)
}
