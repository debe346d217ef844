package profile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oggyb/spacematch/internal/domain"
	svcErr "github.com/oggyb/spacematch/internal/errors"
	"github.com/oggyb/spacematch/internal/repository"
	"github.com/oggyb/spacematch/internal/service/profile"
	"github.com/oggyb/spacematch/internal/testinfra"
)

func setup(t *testing.T) (*profile.Service, *testinfra.Fixtures) {
	t.Helper()
	database := testinfra.SQLite(t)
	svc := profile.NewService(
		repository.NewUserRepository(database),
		repository.NewItemRepository(database),
		testinfra.Logger(),
	)
	return svc, testinfra.NewFixtures(t, database)
}

func TestApplyUserTraitsNormalizes(t *testing.T) {
	svc, fx := setup(t)
	u := fx.User(domain.User{Email: "s@example.com", Name: "Sam", Role: domain.RoleSeeker})

	got, err := svc.ApplyUserTraits(testinfra.Ctx(t), u.ID, []string{" Introvert", "studious", "introvert"})
	require.NoError(t, err)
	assert.Equal(t, []string{"introvert", "studious"}, got.Attributes)

	_, err = svc.ApplyUserTraits(testinfra.Ctx(t), "missing", []string{"x"})
	assert.ErrorIs(t, err, svcErr.ErrNotFound)
}

func TestApplyItemTags(t *testing.T) {
	svc, fx := setup(t)
	it := fx.Item(domain.Item{ProviderID: "p1", Title: "Loft", Price: 500, Status: domain.ItemActive})

	got, err := svc.ApplyItemTags(testinfra.Ctx(t), it.ID, []string{"Modern"}, []string{"quiet", "QUIET"})
	require.NoError(t, err)
	assert.Equal(t, []string{"modern"}, got.Attributes)
	assert.Equal(t, []string{"quiet"}, got.Vibes)
}

func TestUpdatePreferences(t *testing.T) {
	svc, fx := setup(t)
	ctx := testinfra.Ctx(t)
	seeker := fx.User(domain.User{Email: "s@example.com", Name: "Sam", Role: domain.RoleSeeker})
	provider := fx.User(domain.User{Email: "p@example.com", Name: "Pat", Role: domain.RoleProvider})

	prefs := domain.Preferences{
		Budget:      domain.Budget{Min: 300, Max: 600},
		City:        "Lisbon",
		Lifestyle:   domain.Lifestyle{EarlyBird: true},
		Cleanliness: 4,
	}
	got, err := svc.UpdatePreferences(ctx, seeker.ID, prefs)
	require.NoError(t, err)
	stored, ok := got.Prefs()
	require.True(t, ok)
	assert.Equal(t, prefs, stored)

	_, err = svc.UpdatePreferences(ctx, provider.ID, prefs)
	assert.ErrorIs(t, err, svcErr.ErrForbidden)

	_, err = svc.UpdatePreferences(ctx, "missing", prefs)
	assert.ErrorIs(t, err, svcErr.ErrNotFound)
}

func TestUpdatePreferencesRejectsBadValues(t *testing.T) {
	svc, fx := setup(t)
	seeker := fx.User(domain.User{Email: "s@example.com", Name: "Sam", Role: domain.RoleSeeker})

	bad := []domain.Preferences{
		{Budget: domain.Budget{Min: 600, Max: 300}},
		{Budget: domain.Budget{Min: -1, Max: 300}},
		{Budget: domain.Budget{Min: 0, Max: 300}, Cleanliness: 6},
		{Budget: domain.Budget{Min: 0, Max: 300}, RadiusKm: -5},
	}
	for _, p := range bad {
		_, err := svc.UpdatePreferences(testinfra.Ctx(t), seeker.ID, p)
		assert.ErrorIs(t, err, svcErr.ErrValidation, "%+v", p)
	}
}

func TestUpdateItemStatus(t *testing.T) {
	svc, fx := setup(t)
	ctx := testinfra.Ctx(t)
	it := fx.Item(domain.Item{ProviderID: "p1", Title: "Loft", Price: 500, Status: domain.ItemActive})

	_, err := svc.UpdateItemStatus(ctx, it.ID, "p2", domain.ItemRented)
	assert.ErrorIs(t, err, svcErr.ErrForbidden)

	_, err = svc.UpdateItemStatus(ctx, it.ID, "p1", "sold")
	assert.ErrorIs(t, err, svcErr.ErrValidation)

	got, err := svc.UpdateItemStatus(ctx, it.ID, "p1", domain.ItemRented)
	require.NoError(t, err)
	assert.Equal(t, domain.ItemRented, got.Status)

	_, err = svc.UpdateItemStatus(ctx, it.ID, "p1", domain.ItemRemoved)
	assert.ErrorIs(t, err, svcErr.ErrInvalidState)
}
