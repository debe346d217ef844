package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/oggyb/spacematch/internal/db"
	"github.com/oggyb/spacematch/internal/domain"
	svcErr "github.com/oggyb/spacematch/internal/errors"
)

// InteractionRepo provides data access methods for the Interaction model.
// It encapsulates all queries related to swipes on items.
type InteractionRepo struct {
	db *gorm.DB
}

// NewInteractionRepository creates a new repository bound to the given DB connection.
func NewInteractionRepository(database *gorm.DB) *InteractionRepo {
	return &InteractionRepo{db: database}
}

// Create inserts a swipe made by user -> item.
//
// Behavior:
//   - Composite PK (user_id, item_id) rejects a second swipe on the same pair.
//   - Existing rows are never updated; the duplicate surfaces as Conflict.
//
// Example:
//
//	repo.Create(ctx, domain.Interaction{UserID: "s1", ItemID: "i1", Type: domain.Like})
func (r *InteractionRepo) Create(ctx context.Context, in domain.Interaction) (domain.Interaction, error) {
	row := db.InteractionFromDomain(in)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isDuplicate(err) {
			return domain.Interaction{}, svcErr.Conflict("already swiped")
		}
		return domain.Interaction{}, err
	}
	return row.ToDomain(), nil
}

// HasInteracted checks whether a user has swiped an item, in any direction.
//
// Example:
//
//	repo.HasInteracted(ctx, "s1", "i1") // -> true if s1 swiped i1
func (r *InteractionRepo) HasInteracted(ctx context.Context, userID, itemID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db.Interaction{}).
		Where("user_id = ? AND item_id = ?", userID, itemID).
		Count(&count).Error
	return count > 0, err
}

// Find loads the swipe made by user on item.
func (r *InteractionRepo) Find(ctx context.Context, userID, itemID string) (domain.Interaction, error) {
	var row db.Interaction
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND item_id = ?", userID, itemID).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Interaction{}, svcErr.NotFound("no swipe by %s on %s", userID, itemID)
	}
	if err != nil {
		return domain.Interaction{}, err
	}
	return row.ToDomain(), nil
}

// ItemIDsByUser returns every item the user has swiped. Used as the feed
// exclusion set.
func (r *InteractionRepo) ItemIDsByUser(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&db.Interaction{}).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Pluck("item_id", &ids).Error
	return ids, err
}
