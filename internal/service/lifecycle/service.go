// Package lifecycle moves matches out of the pending state and lists them.
package lifecycle

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/oggyb/spacematch/internal/domain"
	svcErr "github.com/oggyb/spacematch/internal/errors"
	"github.com/oggyb/spacematch/internal/metrics"
	"github.com/oggyb/spacematch/internal/notify"
	"github.com/oggyb/spacematch/internal/repository"
)

// RejectPolicy decides who may reject a pending match.
type RejectPolicy string

const (
	// RejectAny performs no ownership check.
	RejectAny RejectPolicy = "any"
	// RejectProvider allows only the owning provider.
	RejectProvider RejectPolicy = "provider"
	// RejectParticipant allows the provider or the seeker.
	RejectParticipant RejectPolicy = "participant"
)

// ParseRejectPolicy validates a configured policy name.
func ParseRejectPolicy(s string) (RejectPolicy, error) {
	switch p := RejectPolicy(s); p {
	case RejectAny, RejectProvider, RejectParticipant:
		return p, nil
	case "":
		return RejectAny, nil
	}
	return "", fmt.Errorf("unknown reject policy %q", s)
}

func (p RejectPolicy) allows(m domain.Match, actorID string) bool {
	switch p {
	case RejectProvider:
		return m.ProviderID == actorID
	case RejectParticipant:
		return m.ProviderID == actorID || m.SeekerID == actorID
	}
	return true
}

// PendingCache caches each provider's pending match count.
type PendingCache interface {
	PendingCount(ctx context.Context, providerID string) (int64, error)
	SetPendingCount(ctx context.Context, providerID string, count int64) error
	InvalidatePendingCount(ctx context.Context, providerID string) error
}

type Service struct {
	matches  repository.MatchRepository
	cache    PendingCache
	notifier notify.Notifier
	policy   RejectPolicy
	logger   *slog.Logger
	now      func() time.Time
}

// NewService builds the lifecycle service. cache and notifier may be nil.
func NewService(
	matches repository.MatchRepository,
	cache PendingCache,
	notifier notify.Notifier,
	policy RejectPolicy,
	logger *slog.Logger,
) *Service {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	if policy == "" {
		policy = RejectAny
	}
	return &Service{
		matches:  matches,
		cache:    cache,
		notifier: notifier,
		policy:   policy,
		logger:   logger,
		now:      time.Now,
	}
}

// WithClock overrides the time source used for AcceptedAt.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Accept moves a pending match owned by providerID to accepted.
//
// Behavior:
//   - Unknown match → NotFound.
//   - providerID is not the match's provider → Forbidden.
//   - Match not pending, or a concurrent transition won → InvalidState.
func (s *Service) Accept(ctx context.Context, matchID, providerID string) (domain.Match, error) {
	m, err := s.matches.FindByID(ctx, matchID)
	if err != nil {
		return domain.Match{}, err
	}
	if m.ProviderID != providerID {
		return domain.Match{}, svcErr.Forbidden("match %s is not owned by %s", matchID, providerID)
	}
	m, err = s.transition(ctx, m, domain.MatchAccepted)
	if err != nil {
		return domain.Match{}, err
	}
	s.notifier.MatchAccepted(ctx, m)
	return m, nil
}

// Reject moves a pending match to rejected, subject to the RejectPolicy.
func (s *Service) Reject(ctx context.Context, matchID, actorID string) (domain.Match, error) {
	m, err := s.matches.FindByID(ctx, matchID)
	if err != nil {
		return domain.Match{}, err
	}
	if !s.policy.allows(m, actorID) {
		return domain.Match{}, svcErr.Forbidden("%s may not reject match %s", actorID, matchID)
	}
	m, err = s.transition(ctx, m, domain.MatchRejected)
	if err != nil {
		return domain.Match{}, err
	}
	s.notifier.MatchRejected(ctx, m)
	return m, nil
}

// Expire moves a pending match to expired. Called by an external sweeper.
func (s *Service) Expire(ctx context.Context, matchID string) (domain.Match, error) {
	m, err := s.matches.FindByID(ctx, matchID)
	if err != nil {
		return domain.Match{}, err
	}
	return s.transition(ctx, m, domain.MatchExpired)
}

func (s *Service) transition(ctx context.Context, m domain.Match, to domain.MatchStatus) (domain.Match, error) {
	if !m.Status.CanTransition(to) {
		return domain.Match{}, svcErr.InvalidState("match %s is already %s", m.ID, m.Status)
	}

	updated, err := s.matches.TransitionStatus(ctx, m.ID, m.Status, to, s.now().UTC())
	if err != nil {
		return domain.Match{}, err
	}

	metrics.RecordMatchTransition(string(to))
	if s.cache != nil {
		if err := s.cache.InvalidatePendingCount(ctx, updated.ProviderID); err != nil {
			s.logger.Warn("pending count invalidation failed", "provider", updated.ProviderID, "err", err)
		}
	}
	s.logger.Debug("match transitioned", "match", updated.ID, "from", m.Status, "to", to)
	return updated, nil
}

// ListQuery selects matches for List.
type ListQuery struct {
	UserID          string
	Role            domain.Role
	Status          *domain.MatchStatus
	PaginationToken *string
	Limit           int
}

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// List returns the user's matches newest first and a token for the next page.
func (s *Service) List(ctx context.Context, q ListQuery) ([]domain.Match, *string, error) {
	if q.UserID == "" {
		return nil, nil, svcErr.Validation("user id is required")
	}
	if !q.Role.Valid() {
		return nil, nil, svcErr.Validation("unknown role %q", q.Role)
	}
	if q.Status != nil && !q.Status.Valid() {
		return nil, nil, svcErr.Validation("unknown status %q", *q.Status)
	}

	limit := q.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	limit = min(limit, maxListLimit)

	return s.matches.List(ctx, repository.MatchQuery{
		UserID:          q.UserID,
		Role:            q.Role,
		Status:          q.Status,
		PaginationToken: q.PaginationToken,
		Limit:           limit,
	})
}

// CountPending returns how many pending matches await providerID.
// Cache-first strategy:
//  1. Attempts to read from Redis (matches:pending:count:providerID).
//  2. On a miss or cache error, falls back to the database.
//  3. On DB fetch, repopulates Redis.
func (s *Service) CountPending(ctx context.Context, providerID string) (int64, error) {
	if s.cache != nil {
		if n, err := s.cache.PendingCount(ctx, providerID); err == nil {
			return n, nil
		}
	}

	n, err := s.matches.CountByProvider(ctx, providerID, domain.MatchPending)
	if err != nil {
		return 0, err
	}

	if s.cache != nil {
		if err := s.cache.SetPendingCount(ctx, providerID, n); err != nil {
			s.logger.Warn("pending count cache fill failed", "provider", providerID, "err", err)
		}
	}
	return n, nil
}
