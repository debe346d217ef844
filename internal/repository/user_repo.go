package repository

import (
	"context"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/oggyb/spacematch/internal/db"
	"github.com/oggyb/spacematch/internal/domain"
	svcErr "github.com/oggyb/spacematch/internal/errors"
)

// UserRepo is the gorm implementation of UserRepository.
type UserRepo struct {
	db *gorm.DB
}

// NewUserRepository creates a new repository bound to the given DB connection.
func NewUserRepository(database *gorm.DB) *UserRepo {
	return &UserRepo{db: database}
}

func (r *UserRepo) FindByID(ctx context.Context, id string) (domain.User, error) {
	var row db.User
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return domain.User{}, userErr(err, id)
	}
	return row.ToDomain(), nil
}

// FindByIDs loads users in one query.
//
// Example:
//
//	users, _ := repo.FindByIDs(ctx, []string{"p1", "p2"}) // p2 missing → len(users) == 1
func (r *UserRepo) FindByIDs(ctx context.Context, ids []string) (map[string]domain.User, error) {
	out := make(map[string]domain.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []db.User
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.ID] = row.ToDomain()
	}
	return out, nil
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	var row db.User
	if err := r.db.WithContext(ctx).First(&row, "email = ?", email).Error; err != nil {
		return domain.User{}, userErr(err, email)
	}
	return row.ToDomain(), nil
}

// Create inserts a user. A taken email surfaces as Conflict.
func (r *UserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	if !u.Role.Valid() {
		return domain.User{}, svcErr.Validation("unknown role %q", u.Role)
	}
	row := db.UserFromDomain(u)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isDuplicate(err) {
			return domain.User{}, svcErr.Conflict("email %s already registered", u.Email)
		}
		return domain.User{}, err
	}
	return row.ToDomain(), nil
}

// UpdateAttributes replaces the user's trait tags.
func (r *UserRepo) UpdateAttributes(ctx context.Context, id string, attributes []string) (domain.User, error) {
	return r.update(ctx, id, map[string]any{
		"attributes": datatypes.JSONSlice[string](domain.NormalizeTags(attributes)),
	})
}

// UpdatePreferences replaces the preference columns. nil clears them.
func (r *UserRepo) UpdatePreferences(ctx context.Context, id string, prefs *domain.Preferences) (domain.User, error) {
	p := db.PreferencesFromDomain(prefs)
	return r.update(ctx, id, map[string]any{
		"pref_set":         p.Set,
		"pref_budget_min":  p.BudgetMin,
		"pref_budget_max":  p.BudgetMax,
		"pref_city":        p.City,
		"pref_radius_km":   p.RadiusKm,
		"pref_smoker":      p.Smoker,
		"pref_pets":        p.Pets,
		"pref_early_bird":  p.EarlyBird,
		"pref_cleanliness": p.Cleanliness,
	})
}

func (r *UserRepo) update(ctx context.Context, id string, cols map[string]any) (domain.User, error) {
	// RowsAffected is unreliable for no-op updates on MySQL, so existence is
	// decided by the reload.
	if err := r.db.WithContext(ctx).Model(&db.User{}).Where("id = ?", id).Updates(cols).Error; err != nil {
		return domain.User{}, err
	}
	return r.FindByID(ctx, id)
}

func userErr(err error, key string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return svcErr.NotFound("user %s not found", key)
	}
	return err
}
