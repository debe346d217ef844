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

// ItemRepo is the gorm implementation of ItemRepository.
type ItemRepo struct {
	db *gorm.DB
}

// NewItemRepository creates a new repository bound to the given DB connection.
func NewItemRepository(database *gorm.DB) *ItemRepo {
	return &ItemRepo{db: database}
}

func (r *ItemRepo) FindByID(ctx context.Context, id string) (domain.Item, error) {
	var row db.Item
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Item{}, svcErr.NotFound("item %s not found", id)
		}
		return domain.Item{}, err
	}
	return row.ToDomain(), nil
}

// Search returns items matching the hard filters.
//
// Behavior:
//   - City is compared case-insensitively.
//   - Price bounds are inclusive.
//   - An empty ExcludeIDs list excludes nothing.
//   - Ordered by created_at DESC, id ASC so candidate order is stable.
//
// Example:
//
//	repo.Search(ctx, ItemFilter{Status: domain.ItemActive, City: "berlin", Limit: 30})
func (r *ItemRepo) Search(ctx context.Context, f ItemFilter) ([]domain.Item, error) {
	query := r.db.WithContext(ctx).Model(&db.Item{})

	if f.Status != "" {
		query = query.Where("status = ?", string(f.Status))
	}
	if f.City != "" {
		query = query.Where("LOWER(city) = LOWER(?)", f.City)
	}
	if f.MinPrice != nil {
		query = query.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		query = query.Where("price <= ?", *f.MaxPrice)
	}
	// NOT IN () with no values would match nothing
	if len(f.ExcludeIDs) > 0 {
		query = query.Where("id NOT IN ?", f.ExcludeIDs)
	}

	query = query.Order("created_at DESC, id ASC")
	if f.Limit > 0 {
		query = query.Limit(f.Limit)
	}
	if f.Offset > 0 {
		query = query.Offset(f.Offset)
	}

	var rows []db.Item
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Item, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.ToDomain())
	}
	return out, nil
}

func (r *ItemRepo) Create(ctx context.Context, it domain.Item) (domain.Item, error) {
	if it.Price < 0 {
		return domain.Item{}, svcErr.Validation("price must be >= 0")
	}
	if it.Status != "" && !it.Status.Valid() {
		return domain.Item{}, svcErr.Validation("unknown item status %q", it.Status)
	}
	row := db.ItemFromDomain(it)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isDuplicate(err) {
			return domain.Item{}, svcErr.Conflict("item %s already exists", it.ID)
		}
		return domain.Item{}, err
	}
	return row.ToDomain(), nil
}

// UpdateTags replaces the style and mood facets, typically with the output
// of the vision step.
func (r *ItemRepo) UpdateTags(ctx context.Context, id string, attributes, vibes []string) (domain.Item, error) {
	err := r.db.WithContext(ctx).Model(&db.Item{}).Where("id = ?", id).Updates(map[string]any{
		"attributes": datatypes.JSONSlice[string](domain.NormalizeTags(attributes)),
		"vibes":      datatypes.JSONSlice[string](domain.NormalizeTags(vibes)),
	}).Error
	if err != nil {
		return domain.Item{}, err
	}
	return r.FindByID(ctx, id)
}

// UpdateStatus moves an active item to rented or removed.
//
// Behavior:
//   - Compare-and-set: the UPDATE only applies while status = active, so
//     concurrent writers cannot both win.
//   - Unknown id → NotFound; item already left active → InvalidState.
func (r *ItemRepo) UpdateStatus(ctx context.Context, id string, next domain.ItemStatus) (domain.Item, error) {
	if !domain.ItemActive.CanTransition(next) {
		return domain.Item{}, svcErr.InvalidState("items cannot move to %s", next)
	}

	res := r.db.WithContext(ctx).Model(&db.Item{}).
		Where("id = ? AND status = ?", id, string(domain.ItemActive)).
		Update("status", string(next))
	if res.Error != nil {
		return domain.Item{}, res.Error
	}

	current, err := r.FindByID(ctx, id)
	if err != nil {
		return domain.Item{}, err
	}
	if res.RowsAffected == 0 {
		return domain.Item{}, svcErr.InvalidState("item %s is %s", id, current.Status)
	}
	return current, nil
}
