package lifecycle_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oggyb/spacematch/internal/cache"
	"github.com/oggyb/spacematch/internal/config"
	"github.com/oggyb/spacematch/internal/domain"
	svcErr "github.com/oggyb/spacematch/internal/errors"
	"github.com/oggyb/spacematch/internal/repository"
	"github.com/oggyb/spacematch/internal/service/lifecycle"
	"github.com/oggyb/spacematch/internal/testinfra"
)

var acceptedAt = time.Date(2026, 5, 4, 10, 30, 0, 0, time.UTC)

type env struct {
	svc   *lifecycle.Service
	fx    *testinfra.Fixtures
	cache *cache.RedisCache
}

func setup(t *testing.T, policy lifecycle.RejectPolicy) env {
	t.Helper()
	database := testinfra.SQLite(t)

	cfg := config.Default()
	cfg.Redis.Addr = testinfra.Redis(t).Addr()
	rc := cache.NewRedisCache(cfg)
	t.Cleanup(func() { rc.Client.Close() })

	svc := lifecycle.NewService(repository.NewMatchRepository(database), rc, nil, policy, testinfra.Logger()).
		WithClock(func() time.Time { return acceptedAt })
	return env{svc: svc, fx: testinfra.NewFixtures(t, database), cache: rc}
}

func (e env) match(seeker, provider, item string, status domain.MatchStatus, created time.Time) domain.Match {
	return e.fx.Match(domain.Match{
		SeekerID: seeker, ProviderID: provider, ItemID: item,
		Status: status, CreatedAt: created,
		Score: domain.Score{Total: 70, Reasons: []string{"Within your budget"}},
	})
}

func TestAcceptStampsAcceptedAt(t *testing.T) {
	e := setup(t, lifecycle.RejectAny)
	ctx := testinfra.Ctx(t)
	m := e.match("s1", "p1", "i1", domain.MatchPending, acceptedAt.Add(-time.Hour))

	got, err := e.svc.Accept(ctx, m.ID, "p1")
	require.NoError(t, err)
	assert.Equal(t, domain.MatchAccepted, got.Status)
	require.NotNil(t, got.AcceptedAt)
	assert.True(t, acceptedAt.Equal(*got.AcceptedAt))
}

func TestAcceptByAnotherProviderIsForbidden(t *testing.T) {
	e := setup(t, lifecycle.RejectAny)
	ctx := testinfra.Ctx(t)
	m := e.match("s1", "provider-b", "i1", domain.MatchPending, acceptedAt)

	_, err := e.svc.Accept(ctx, m.ID, "provider-a")
	assert.ErrorIs(t, err, svcErr.ErrForbidden)

	// nothing changed
	n, err := e.svc.CountPending(ctx, "provider-b")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestAcceptUnknownMatch(t *testing.T) {
	e := setup(t, lifecycle.RejectAny)
	_, err := e.svc.Accept(testinfra.Ctx(t), "missing", "p1")
	assert.ErrorIs(t, err, svcErr.ErrNotFound)
}

func TestTerminalMatchesCannotMove(t *testing.T) {
	for _, status := range []domain.MatchStatus{domain.MatchAccepted, domain.MatchRejected, domain.MatchExpired} {
		t.Run(string(status), func(t *testing.T) {
			e := setup(t, lifecycle.RejectAny)
			ctx := testinfra.Ctx(t)
			m := e.match("s1", "p1", "i1", status, acceptedAt)

			_, err := e.svc.Accept(ctx, m.ID, "p1")
			assert.ErrorIs(t, err, svcErr.ErrInvalidState)
			_, err = e.svc.Reject(ctx, m.ID, "p1")
			assert.ErrorIs(t, err, svcErr.ErrInvalidState)
			_, err = e.svc.Expire(ctx, m.ID)
			assert.ErrorIs(t, err, svcErr.ErrInvalidState)
		})
	}
}

func TestRejectPolicies(t *testing.T) {
	tests := []struct {
		policy  lifecycle.RejectPolicy
		actor   string
		allowed bool
	}{
		{lifecycle.RejectAny, "stranger", true},
		{lifecycle.RejectProvider, "p1", true},
		{lifecycle.RejectProvider, "s1", false},
		{lifecycle.RejectParticipant, "s1", true},
		{lifecycle.RejectParticipant, "p1", true},
		{lifecycle.RejectParticipant, "stranger", false},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%s", tt.policy, tt.actor), func(t *testing.T) {
			e := setup(t, tt.policy)
			m := e.match("s1", "p1", "i1", domain.MatchPending, acceptedAt)

			got, err := e.svc.Reject(testinfra.Ctx(t), m.ID, tt.actor)
			if !tt.allowed {
				assert.ErrorIs(t, err, svcErr.ErrForbidden)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, domain.MatchRejected, got.Status)
			assert.Nil(t, got.AcceptedAt)
		})
	}
}

func TestParseRejectPolicy(t *testing.T) {
	p, err := lifecycle.ParseRejectPolicy("")
	require.NoError(t, err)
	assert.Equal(t, lifecycle.RejectAny, p)

	p, err = lifecycle.ParseRejectPolicy("participant")
	require.NoError(t, err)
	assert.Equal(t, lifecycle.RejectParticipant, p)

	_, err = lifecycle.ParseRejectPolicy("seeker")
	assert.Error(t, err)
}

func TestExpire(t *testing.T) {
	e := setup(t, lifecycle.RejectAny)
	m := e.match("s1", "p1", "i1", domain.MatchPending, acceptedAt)

	got, err := e.svc.Expire(testinfra.Ctx(t), m.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.MatchExpired, got.Status)
}

func TestCountPendingIsCachedAndInvalidated(t *testing.T) {
	e := setup(t, lifecycle.RejectAny)
	ctx := testinfra.Ctx(t)
	m1 := e.match("s1", "p1", "i1", domain.MatchPending, acceptedAt)
	e.match("s2", "p1", "i1", domain.MatchPending, acceptedAt)
	e.match("s3", "p1", "i1", domain.MatchAccepted, acceptedAt)

	n, err := e.svc.CountPending(ctx, "p1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	cached, err := e.cache.PendingCount(ctx, "p1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, cached)

	_, err = e.svc.Accept(ctx, m1.ID, "p1")
	require.NoError(t, err)

	_, err = e.cache.PendingCount(ctx, "p1")
	assert.ErrorIs(t, err, cache.ErrMiss)

	n, err = e.svc.CountPending(ctx, "p1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestListByRoleAndStatus(t *testing.T) {
	e := setup(t, lifecycle.RejectAny)
	ctx := testinfra.Ctx(t)
	base := acceptedAt.Add(-24 * time.Hour)
	for i := range 5 {
		status := domain.MatchPending
		if i%2 == 1 {
			status = domain.MatchRejected
		}
		e.match(fmt.Sprintf("s%d", i), "p1", "i1", status, base.Add(time.Duration(i)*time.Minute))
	}

	var all []domain.Match
	var token *string
	for {
		page, next, err := e.svc.List(ctx, lifecycle.ListQuery{UserID: "p1", Role: domain.RoleProvider, PaginationToken: token, Limit: 2})
		require.NoError(t, err)
		all = append(all, page...)
		if next == nil {
			break
		}
		token = next
	}
	require.Len(t, all, 5)
	assert.Equal(t, "s4", all[0].SeekerID)
	assert.Equal(t, "s0", all[4].SeekerID)

	pending := domain.MatchPending
	got, _, err := e.svc.List(ctx, lifecycle.ListQuery{UserID: "p1", Role: domain.RoleProvider, Status: &pending})
	require.NoError(t, err)
	assert.Len(t, got, 3)

	got, _, err = e.svc.List(ctx, lifecycle.ListQuery{UserID: "s1", Role: domain.RoleSeeker})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestListValidation(t *testing.T) {
	e := setup(t, lifecycle.RejectAny)
	ctx := testinfra.Ctx(t)

	_, _, err := e.svc.List(ctx, lifecycle.ListQuery{Role: domain.RoleProvider})
	assert.ErrorIs(t, err, svcErr.ErrValidation)

	_, _, err = e.svc.List(ctx, lifecycle.ListQuery{UserID: "p1", Role: "admin"})
	assert.ErrorIs(t, err, svcErr.ErrValidation)

	bogus := domain.MatchStatus("archived")
	_, _, err = e.svc.List(ctx, lifecycle.ListQuery{UserID: "p1", Role: domain.RoleSeeker, Status: &bogus})
	assert.ErrorIs(t, err, svcErr.ErrValidation)
}
