package repository_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oggyb/spacematch/internal/domain"
	svcErr "github.com/oggyb/spacematch/internal/errors"
	"github.com/oggyb/spacematch/internal/repository"
	"github.com/oggyb/spacematch/internal/testinfra"
)

func TestInteractionCreateRejectsDuplicate(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewInteractionRepository(testinfra.SQLite(t))

	_, err := repo.Create(ctx, domain.Interaction{UserID: "s1", ItemID: "i1", Type: domain.Like, CreatedAt: time.Now()})
	require.NoError(t, err)

	// a second swipe never overwrites, whatever the action
	_, err = repo.Create(ctx, domain.Interaction{UserID: "s1", ItemID: "i1", Type: domain.Dislike, CreatedAt: time.Now()})
	assert.ErrorIs(t, err, svcErr.ErrConflict)

	ok, err := repo.HasInteracted(ctx, "s1", "i1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.HasInteracted(ctx, "s1", "i2")
	require.NoError(t, err)
	assert.False(t, ok)

	ids, err := repo.ItemIDsByUser(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, []string{"i1"}, ids)
}

func TestInteractionFind(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewInteractionRepository(testinfra.SQLite(t))

	_, err := repo.Create(ctx, domain.Interaction{UserID: "s1", ItemID: "i1", Type: domain.SuperLike, CreatedAt: time.Now()})
	require.NoError(t, err)

	got, err := repo.Find(ctx, "s1", "i1")
	require.NoError(t, err)
	assert.Equal(t, domain.SuperLike, got.Type)

	_, err = repo.Find(ctx, "s1", "i2")
	assert.ErrorIs(t, err, svcErr.ErrNotFound)
}

func TestInteractionConcurrentDuplicate(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewInteractionRepository(testinfra.SQLite(t))

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = repo.Create(ctx, domain.Interaction{UserID: "s1", ItemID: "i1", Type: domain.Like, CreatedAt: time.Now()})
		}(i)
	}
	wg.Wait()

	failures := 0
	for _, err := range errs {
		if err != nil {
			assert.ErrorIs(t, err, svcErr.ErrConflict)
			failures++
		}
	}
	assert.Equal(t, 1, failures)
}

func TestItemSearchFilters(t *testing.T) {
	ctx := context.Background()
	database := testinfra.SQLite(t)
	fx := testinfra.NewFixtures(t, database)
	repo := repository.NewItemRepository(database)

	cheap := fx.Item(domain.Item{ProviderID: "p1", Title: "cheap", Price: 250, Location: domain.Location{City: "Berlin"}})
	mid := fx.Item(domain.Item{ProviderID: "p1", Title: "mid", Price: 350, Location: domain.Location{City: "berlin"}})
	fx.Item(domain.Item{ProviderID: "p1", Title: "pricey", Price: 900, Location: domain.Location{City: "Berlin"}})
	fx.Item(domain.Item{ProviderID: "p1", Title: "elsewhere", Price: 300, Location: domain.Location{City: "Lisbon"}})
	fx.Item(domain.Item{ProviderID: "p1", Title: "gone", Price: 300, Location: domain.Location{City: "Berlin"}, Status: domain.ItemRented})

	minP, maxP := 200.0, 400.0
	got, err := repo.Search(ctx, repository.ItemFilter{
		Status:   domain.ItemActive,
		City:     "BERLIN",
		MinPrice: &minP,
		MaxPrice: &maxP,
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{cheap.ID, mid.ID}, ids(got))

	// exclusion
	got, err = repo.Search(ctx, repository.ItemFilter{
		Status:     domain.ItemActive,
		City:       "Berlin",
		MinPrice:   &minP,
		MaxPrice:   &maxP,
		ExcludeIDs: []string{cheap.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{mid.ID}, ids(got))

	// empty exclusion list excludes nothing
	got, err = repo.Search(ctx, repository.ItemFilter{Status: domain.ItemActive, ExcludeIDs: []string{}})
	require.NoError(t, err)
	assert.Len(t, got, 4)

	got, err = repo.Search(ctx, repository.ItemFilter{Status: domain.ItemActive, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestItemUpdateStatusIsForwardOnly(t *testing.T) {
	ctx := context.Background()
	database := testinfra.SQLite(t)
	repo := repository.NewItemRepository(database)

	it, err := repo.Create(ctx, domain.Item{ProviderID: "p1", Title: "room", Price: 300})
	require.NoError(t, err)
	assert.Equal(t, domain.ItemActive, it.Status)

	it, err = repo.UpdateStatus(ctx, it.ID, domain.ItemRented)
	require.NoError(t, err)
	assert.Equal(t, domain.ItemRented, it.Status)

	_, err = repo.UpdateStatus(ctx, it.ID, domain.ItemRemoved)
	assert.ErrorIs(t, err, svcErr.ErrInvalidState)

	_, err = repo.UpdateStatus(ctx, it.ID, domain.ItemActive)
	assert.ErrorIs(t, err, svcErr.ErrInvalidState)

	_, err = repo.UpdateStatus(ctx, "missing", domain.ItemRemoved)
	assert.ErrorIs(t, err, svcErr.ErrNotFound)

	_, err = repo.Create(ctx, domain.Item{ProviderID: "p1", Price: -1})
	assert.ErrorIs(t, err, svcErr.ErrValidation)
}

func TestItemUpdateTags(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewItemRepository(testinfra.SQLite(t))

	it, err := repo.Create(ctx, domain.Item{ProviderID: "p1", Title: "room", Price: 300})
	require.NoError(t, err)

	it, err = repo.UpdateTags(ctx, it.ID, []string{"Quiet", "quiet", "Minimalist"}, []string{"Cozy"})
	require.NoError(t, err)
	assert.Equal(t, []string{"quiet", "minimalist"}, it.Attributes)
	assert.Equal(t, []string{"cozy"}, it.Vibes)

	_, err = repo.UpdateTags(ctx, "missing", nil, nil)
	assert.ErrorIs(t, err, svcErr.ErrNotFound)
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewUserRepository(testinfra.SQLite(t))

	seeker, err := repo.Create(ctx, domain.User{
		Email: "s@test.com",
		Name:  "Sam",
		Role:  domain.RoleSeeker,
		Preferences: &domain.Preferences{
			Budget:    domain.Budget{Min: 200, Max: 400},
			City:      "Berlin",
			Lifestyle: domain.Lifestyle{EarlyBird: true},
		},
	})
	require.NoError(t, err)
	require.NotEmpty(t, seeker.ID)

	_, err = repo.Create(ctx, domain.User{Email: "s@test.com", Name: "Dup", Role: domain.RoleSeeker})
	assert.ErrorIs(t, err, svcErr.ErrConflict)

	byEmail, err := repo.FindByEmail(ctx, "s@test.com")
	require.NoError(t, err)
	p, ok := byEmail.Prefs()
	require.True(t, ok)
	assert.Equal(t, 400.0, p.Budget.Max)
	assert.True(t, p.Lifestyle.EarlyBird)

	u, err := repo.UpdateAttributes(ctx, seeker.ID, []string{"Introvert", "studious"})
	require.NoError(t, err)
	assert.Equal(t, []string{"introvert", "studious"}, u.Attributes)

	u, err = repo.UpdatePreferences(ctx, seeker.ID, nil)
	require.NoError(t, err)
	_, ok = u.Prefs()
	assert.False(t, ok)

	_, err = repo.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, svcErr.ErrNotFound)

	found, err := repo.FindByIDs(ctx, []string{seeker.ID, "missing"})
	require.NoError(t, err)
	assert.Len(t, found, 1)
	assert.Contains(t, found, seeker.ID)
}

func TestMatchUniquenessAndTransitions(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMatchRepository(testinfra.SQLite(t))

	m, err := repo.Create(ctx, domain.Match{SeekerID: "s1", ProviderID: "p1", ItemID: "i1", Score: domain.Score{Total: 70, Reasons: []string{"Within your budget"}}})
	require.NoError(t, err)
	assert.Equal(t, domain.MatchPending, m.Status)
	assert.Equal(t, []string{"Within your budget"}, m.Score.Reasons)

	_, err = repo.Create(ctx, domain.Match{SeekerID: "s1", ProviderID: "p1", ItemID: "i1"})
	assert.ErrorIs(t, err, svcErr.ErrConflict)

	byTriple, err := repo.FindByTriple(ctx, "s1", "p1", "i1")
	require.NoError(t, err)
	assert.Equal(t, m.ID, byTriple.ID)

	at := time.Now().UTC().Truncate(time.Millisecond)
	accepted, err := repo.TransitionStatus(ctx, m.ID, domain.MatchPending, domain.MatchAccepted, at)
	require.NoError(t, err)
	assert.Equal(t, domain.MatchAccepted, accepted.Status)
	require.NotNil(t, accepted.AcceptedAt)
	assert.True(t, accepted.AcceptedAt.Equal(at))

	// CAS lost: no longer pending
	_, err = repo.TransitionStatus(ctx, m.ID, domain.MatchPending, domain.MatchRejected, at)
	assert.ErrorIs(t, err, svcErr.ErrInvalidState)

	_, err = repo.TransitionStatus(ctx, "missing", domain.MatchPending, domain.MatchRejected, at)
	assert.ErrorIs(t, err, svcErr.ErrNotFound)

	_, err = repo.TransitionStatus(ctx, m.ID, domain.MatchAccepted, domain.MatchPending, at)
	assert.ErrorIs(t, err, svcErr.ErrInvalidState)
}

func TestMatchListAndPagination(t *testing.T) {
	ctx := context.Background()
	database := testinfra.SQLite(t)
	fx := testinfra.NewFixtures(t, database)
	repo := repository.NewMatchRepository(database)

	base := time.Now().UTC().Truncate(time.Millisecond)
	for i, item := range []string{"i1", "i2", "i3"} {
		fx.Match(domain.Match{SeekerID: "s1", ProviderID: "p1", ItemID: item, CreatedAt: base.Add(time.Duration(i) * time.Second)})
	}
	rejected := domain.MatchRejected
	fx.Match(domain.Match{SeekerID: "s2", ProviderID: "p1", ItemID: "i1", Status: rejected, CreatedAt: base})

	page1, next, err := repo.List(ctx, repository.MatchQuery{UserID: "s1", Role: domain.RoleSeeker, Limit: 2})
	require.NoError(t, err)
	require.Len(t, page1, 2)
	assert.Equal(t, "i3", page1[0].ItemID)
	assert.Equal(t, "i2", page1[1].ItemID)
	require.NotNil(t, next)

	page2, next, err := repo.List(ctx, repository.MatchQuery{UserID: "s1", Role: domain.RoleSeeker, Limit: 2, PaginationToken: next})
	require.NoError(t, err)
	require.Len(t, page2, 1)
	assert.Equal(t, "i1", page2[0].ItemID)
	assert.Nil(t, next)

	pending := domain.MatchPending
	provider, _, err := repo.List(ctx, repository.MatchQuery{UserID: "p1", Role: domain.RoleProvider, Status: &pending})
	require.NoError(t, err)
	assert.Len(t, provider, 3)

	count, err := repo.CountByProvider(ctx, "p1", domain.MatchRejected)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	_, _, err = repo.List(ctx, repository.MatchQuery{UserID: "s1", Role: "admin"})
	assert.ErrorIs(t, err, svcErr.ErrValidation)

	bad := "garbage!!"
	_, _, err = repo.List(ctx, repository.MatchQuery{UserID: "s1", Role: domain.RoleSeeker, PaginationToken: &bad})
	assert.ErrorIs(t, err, svcErr.ErrValidation)
}

func ids(items []domain.Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}
