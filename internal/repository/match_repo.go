package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/oggyb/spacematch/internal/db"
	"github.com/oggyb/spacematch/internal/domain"
	svcErr "github.com/oggyb/spacematch/internal/errors"
	"github.com/oggyb/spacematch/internal/utils/pagination"
)

// MatchRepo is the gorm implementation of MatchRepository.
type MatchRepo struct {
	db *gorm.DB
}

// NewMatchRepository creates a new repository bound to the given DB connection.
func NewMatchRepository(database *gorm.DB) *MatchRepo {
	return &MatchRepo{db: database}
}

// Create inserts a new match.
//
// Behavior:
//   - Unique index on (seeker_id, provider_id, item_id) rejects a second
//     match for the same triple with Conflict.
func (r *MatchRepo) Create(ctx context.Context, m domain.Match) (domain.Match, error) {
	row := db.MatchFromDomain(m)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isDuplicate(err) {
			return domain.Match{}, svcErr.Conflict("match already exists")
		}
		return domain.Match{}, err
	}
	return row.ToDomain(), nil
}

func (r *MatchRepo) FindByID(ctx context.Context, id string) (domain.Match, error) {
	var row db.Match
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return domain.Match{}, matchErr(err, id)
	}
	return row.ToDomain(), nil
}

func (r *MatchRepo) FindByTriple(ctx context.Context, seekerID, providerID, itemID string) (domain.Match, error) {
	var row db.Match
	err := r.db.WithContext(ctx).
		Where("seeker_id = ? AND provider_id = ? AND item_id = ?", seekerID, providerID, itemID).
		First(&row).Error
	if err != nil {
		return domain.Match{}, matchErr(err, seekerID+"/"+providerID+"/"+itemID)
	}
	return row.ToDomain(), nil
}

// List returns one side's matches, newest first.
//
// Behavior:
//   - Role selects the column: seeker → seeker_id, provider → provider_id.
//   - Optional Status narrows the result (e.g. pending only).
//   - Ordered by created_at DESC, id DESC.
//   - Supports cursor-based pagination via PaginationToken.
//
// Example:
//
//	repo.List(ctx, MatchQuery{UserID: "p1", Role: domain.RoleProvider, Limit: 20})
func (r *MatchRepo) List(ctx context.Context, q MatchQuery) ([]domain.Match, *string, error) {
	cursor, err := pagination.Decode(getString(q.PaginationToken))
	if err != nil {
		return nil, nil, svcErr.Validation("%s", err.Error())
	}

	query := r.db.WithContext(ctx).Model(&db.Match{})
	switch q.Role {
	case domain.RoleSeeker:
		query = query.Where("seeker_id = ?", q.UserID)
	case domain.RoleProvider:
		query = query.Where("provider_id = ?", q.UserID)
	default:
		return nil, nil, svcErr.Validation("unknown role %q", q.Role)
	}
	if q.Status != nil {
		query = query.Where("status = ?", string(*q.Status))
	}

	// apply cursor
	if !cursor.IsZero() {
		ts := time.UnixMilli(cursor.CreatedUnix).UTC()
		query = query.Where(
			"(created_at < ? OR (created_at = ? AND id < ?))",
			ts, ts, cursor.ID,
		)
	}

	query = query.Order("created_at DESC, id DESC")
	if q.Limit > 0 {
		query = query.Limit(q.Limit + 1)
	}

	var rows []db.Match
	if err := query.Find(&rows).Error; err != nil {
		return nil, nil, err
	}

	// pagination: build next cursor if needed
	var nextToken *string
	if q.Limit > 0 && len(rows) > q.Limit {
		last := rows[q.Limit-1]
		token, _ := pagination.Encode(pagination.Cursor{
			ID:          last.ID,
			CreatedUnix: last.CreatedAt.UnixMilli(),
		})
		nextToken = &token
		rows = rows[:q.Limit]
	}

	out := make([]domain.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.ToDomain())
	}
	return out, nextToken, nil
}

// TransitionStatus performs a compare-and-set status change.
//
// Behavior:
//   - UPDATE ... WHERE id = ? AND status = from, so only one of two racing
//     transitions can apply.
//   - Unknown id → NotFound; status no longer from → InvalidState.
//   - Moving to accepted stamps accepted_at.
func (r *MatchRepo) TransitionStatus(
	ctx context.Context,
	id string,
	from, to domain.MatchStatus,
	at time.Time,
) (domain.Match, error) {
	if !from.CanTransition(to) {
		return domain.Match{}, svcErr.InvalidState("match cannot move from %s to %s", from, to)
	}

	cols := map[string]any{"status": string(to)}
	if to == domain.MatchAccepted {
		cols["accepted_at"] = at
	}

	res := r.db.WithContext(ctx).Model(&db.Match{}).
		Where("id = ? AND status = ?", id, string(from)).
		Updates(cols)
	if res.Error != nil {
		return domain.Match{}, res.Error
	}

	current, err := r.FindByID(ctx, id)
	if err != nil {
		return domain.Match{}, err
	}
	if res.RowsAffected == 0 {
		return domain.Match{}, svcErr.InvalidState("match %s is already %s", id, current.Status)
	}
	return current, nil
}

// CountByProvider counts a provider's matches in the given status.
func (r *MatchRepo) CountByProvider(ctx context.Context, providerID string, status domain.MatchStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db.Match{}).
		Where("provider_id = ? AND status = ?", providerID, string(status)).
		Count(&count).Error
	return count, err
}

func matchErr(err error, key string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return svcErr.NotFound("match %s not found", key)
	}
	return err
}
