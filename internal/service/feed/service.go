// Package feed builds a seeker's ranked discovery feed.
package feed

import (
	"context"
	"log/slog"
	"time"

	"github.com/oggyb/spacematch/internal/domain"
	svcErr "github.com/oggyb/spacematch/internal/errors"
	"github.com/oggyb/spacematch/internal/matching"
	"github.com/oggyb/spacematch/internal/metrics"
	"github.com/oggyb/spacematch/internal/repository"
)

// SwipeCache remembers which items a user has already swiped on.
// Any error is treated as a miss. SetSwipedItems only writes if no swipe
// moved the version returned by SwipeVersion in the meantime.
type SwipeCache interface {
	SwipedItems(ctx context.Context, userID string) ([]string, error)
	SwipeVersion(ctx context.Context, userID string) (int64, error)
	SetSwipedItems(ctx context.Context, userID string, itemIDs []string, version int64) (bool, error)
}

// Config bounds page sizes and the candidate over-fetch.
type Config struct {
	DefaultLimit    int
	MaxLimit        int
	OverFetchFactor int
}

// Page is one window of the ranked feed.
type Page struct {
	Items   []matching.Ranked
	Limit   int
	Offset  int
	HasMore bool
}

// Service generates feeds. Swipes may be nil, in which case every request
// reads the swipe log from the database.
type Service struct {
	users        repository.UserRepository
	items        repository.ItemRepository
	interactions repository.InteractionRepository
	swipes       SwipeCache
	engine       *matching.Engine
	cfg          Config
	logger       *slog.Logger
}

func NewService(
	users repository.UserRepository,
	items repository.ItemRepository,
	interactions repository.InteractionRepository,
	swipes SwipeCache,
	engine *matching.Engine,
	cfg Config,
	logger *slog.Logger,
) *Service {
	if cfg.OverFetchFactor < 1 {
		cfg.OverFetchFactor = 1
	}
	return &Service{
		users:        users,
		items:        items,
		interactions: interactions,
		swipes:       swipes,
		engine:       engine,
		cfg:          cfg,
		logger:       logger,
	}
}

// Generate returns the page [offset, offset+limit) of the seeker's ranked feed.
//
// Behavior:
//   - Unknown seeker → NotFound. An empty page is not an error.
//   - Items already swiped on are never returned.
//   - Hard filters from preferences: active status, city, price within budget.
//   - Candidates whose provider no longer exists are skipped.
//   - offset is applied after ranking, so pages never overlap for a fixed
//     candidate set. limit <= 0 uses the default and is capped at MaxLimit.
func (s *Service) Generate(ctx context.Context, seekerID string, limit, offset int) (*Page, error) {
	start := time.Now()
	page, scored, err := s.generate(ctx, seekerID, limit, offset)

	outcome := "ok"
	if err != nil {
		outcome = svcErr.KindOf(err).String()
	}
	metrics.RecordFeed(outcome, scored, time.Since(start))
	return page, err
}

func (s *Service) generate(ctx context.Context, seekerID string, limit, offset int) (*Page, int, error) {
	if offset < 0 {
		return nil, 0, svcErr.Validation("offset must be >= 0")
	}
	limit = s.clampLimit(limit)

	seeker, err := s.users.FindByID(ctx, seekerID)
	if err != nil {
		return nil, 0, err
	}

	swiped, err := s.swipedItems(ctx, seekerID)
	if err != nil {
		return nil, 0, err
	}

	filter := repository.ItemFilter{
		Status:     domain.ItemActive,
		ExcludeIDs: swiped,
		Limit:      (offset + limit) * s.cfg.OverFetchFactor,
	}
	if prefs, ok := seeker.Prefs(); ok {
		filter.City = prefs.City
		filter.MinPrice = &prefs.Budget.Min
		filter.MaxPrice = &prefs.Budget.Max
	}

	items, err := s.items.Search(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	candidates, err := s.resolveProviders(ctx, items)
	if err != nil {
		return nil, 0, err
	}

	ranked := s.engine.Rank(seeker, candidates, offset+limit+1)

	page := &Page{Limit: limit, Offset: offset, Items: []matching.Ranked{}}
	if offset < len(ranked) {
		end := min(offset+limit, len(ranked))
		page.Items = ranked[offset:end]
	}
	page.HasMore = len(ranked) > offset+limit

	s.logger.Debug("feed generated",
		"seeker", seekerID,
		"candidates", len(candidates),
		"returned", len(page.Items),
		"has_more", page.HasMore,
	)
	return page, len(candidates), nil
}

func (s *Service) clampLimit(limit int) int {
	if limit <= 0 {
		limit = s.cfg.DefaultLimit
	}
	if s.cfg.MaxLimit > 0 && limit > s.cfg.MaxLimit {
		limit = s.cfg.MaxLimit
	}
	return limit
}

// swipedItems reads the cache first and repopulates it from the database on a miss.
// The version is read before the database so a swipe committed during the
// read invalidates the refill.
func (s *Service) swipedItems(ctx context.Context, userID string) ([]string, error) {
	refill := false
	var version int64
	if s.swipes != nil {
		if ids, err := s.swipes.SwipedItems(ctx, userID); err == nil {
			return ids, nil
		}
		v, err := s.swipes.SwipeVersion(ctx, userID)
		refill, version = err == nil, v
	}

	ids, err := s.interactions.ItemIDsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if refill {
		written, err := s.swipes.SetSwipedItems(ctx, userID, ids, version)
		switch {
		case err != nil:
			s.logger.Warn("swipe cache refill failed", "user", userID, "err", err)
		case !written && len(ids) > 0:
			s.logger.Debug("swipe cache refill skipped, swiped meanwhile", "user", userID)
		}
	}
	return ids, nil
}

// resolveProviders loads every distinct provider in one query and pairs it
// with its items. Items with a dangling provider are dropped.
func (s *Service) resolveProviders(ctx context.Context, items []domain.Item) ([]matching.Candidate, error) {
	if len(items) == 0 {
		return nil, nil
	}

	seen := make(map[string]struct{}, len(items))
	ids := make([]string, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it.ProviderID]; ok {
			continue
		}
		seen[it.ProviderID] = struct{}{}
		ids = append(ids, it.ProviderID)
	}

	providers, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]matching.Candidate, 0, len(items))
	for _, it := range items {
		p, ok := providers[it.ProviderID]
		if !ok {
			s.logger.Warn("skipping item with missing provider", "item", it.ID, "provider", it.ProviderID)
			continue
		}
		out = append(out, matching.Candidate{Item: it, Provider: p})
	}
	return out, nil
}
