// Package interaction records swipes and turns positive ones into matches.
package interaction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/oggyb/spacematch/internal/compat"
	"github.com/oggyb/spacematch/internal/domain"
	svcErr "github.com/oggyb/spacematch/internal/errors"
	"github.com/oggyb/spacematch/internal/metrics"
	"github.com/oggyb/spacematch/internal/notify"
	"github.com/oggyb/spacematch/internal/repository"
)

// ErrMatchNotCreated marks a positive swipe that was stored while its match
// could not be. The Result is still returned; ResumeMatch finishes the job.
var ErrMatchNotCreated = errors.New("swipe recorded, match not created")

// Caches is the subset of the cache touched by a new swipe.
type Caches interface {
	AddSwipedItem(ctx context.Context, userID, itemID string) error
	InvalidatePendingCount(ctx context.Context, providerID string) error
}

// Result of recording a swipe. Match is nil unless the swipe was positive
// and both parties resolved. Created is false when Match already existed.
type Result struct {
	Interaction domain.Interaction
	Match       *domain.Match
	Created     bool
}

type Recorder struct {
	users        repository.UserRepository
	items        repository.ItemRepository
	interactions repository.InteractionRepository
	matches      repository.MatchRepository
	strategy     compat.Strategy
	caches       Caches
	notifier     notify.Notifier
	logger       *slog.Logger
	now          func() time.Time
}

// Deps groups the Recorder's collaborators. Caches and Notifier are optional.
type Deps struct {
	Users        repository.UserRepository
	Items        repository.ItemRepository
	Interactions repository.InteractionRepository
	Matches      repository.MatchRepository
	Strategy     compat.Strategy
	Caches       Caches
	Notifier     notify.Notifier
	Logger       *slog.Logger
}

func NewRecorder(d Deps) *Recorder {
	n := d.Notifier
	if n == nil {
		n = notify.Nop{}
	}
	return &Recorder{
		users:        d.Users,
		items:        d.Items,
		interactions: d.Interactions,
		matches:      d.Matches,
		strategy:     d.Strategy,
		caches:       d.Caches,
		notifier:     n,
		logger:       d.Logger,
		now:          time.Now,
	}
}

// WithClock overrides the time source for timestamps.
func (r *Recorder) WithClock(now func() time.Time) *Recorder {
	r.now = now
	return r
}

// Record stores a swipe by userID on itemID.
//
// Behavior:
//   - Unknown action → Validation. Repeat swipe on the same item → Conflict.
//   - Unknown item → NotFound. Item no longer active → InvalidState.
//   - like and super_like create a pending Match scored at swipe time. If
//     the seeker or provider does not exist no match is made, but the
//     swipe is still recorded.
//   - Any other failure while creating the match returns the Result of the
//     stored swipe together with an error wrapping ErrMatchNotCreated.
//   - A match that already exists for the triple is returned unchanged.
func (r *Recorder) Record(ctx context.Context, userID, itemID, action string) (*Result, error) {
	kind, err := domain.ParseInteractionType(action)
	if err != nil {
		return nil, svcErr.Validation("%s", err.Error())
	}

	swiped, err := r.interactions.HasInteracted(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}
	if swiped {
		return nil, svcErr.Conflict("already swiped")
	}

	item, err := r.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.Status != domain.ItemActive {
		return nil, svcErr.InvalidState("item %s is %s", item.ID, item.Status)
	}

	in, err := r.interactions.Create(ctx, domain.Interaction{
		UserID:    userID,
		ItemID:    itemID,
		Type:      kind,
		CreatedAt: r.now().UTC(),
	})
	if err != nil {
		return nil, err
	}
	metrics.RecordInteraction(string(kind))
	r.addSwipe(ctx, userID, itemID)

	res := &Result{Interaction: in}
	if !kind.Positive() {
		return res, nil
	}

	return r.attachMatch(ctx, res, item)
}

// ResumeMatch creates the match for a positive swipe whose earlier Record
// failed with ErrMatchNotCreated. It is safe to call repeatedly: an
// existing match is returned with Created false.
func (r *Recorder) ResumeMatch(ctx context.Context, userID, itemID string) (*Result, error) {
	in, err := r.interactions.Find(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}
	if !in.Type.Positive() {
		return nil, svcErr.InvalidState("swipe on %s is %s", itemID, in.Type)
	}
	item, err := r.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return r.attachMatch(ctx, &Result{Interaction: in}, item)
}

func (r *Recorder) attachMatch(ctx context.Context, res *Result, item domain.Item) (*Result, error) {
	m, created, err := r.createMatch(ctx, res.Interaction.UserID, item)
	if err != nil {
		r.logger.Error("match creation failed", "user", res.Interaction.UserID, "item", item.ID, "err", err)
		return res, fmt.Errorf("%w: %w", ErrMatchNotCreated, err)
	}
	res.Match, res.Created = m, created
	return res, nil
}

// createMatch returns (nil, false, nil) when either party does not exist.
// Other lookup failures are returned.
func (r *Recorder) createMatch(ctx context.Context, seekerID string, item domain.Item) (*domain.Match, bool, error) {
	seeker, err := r.users.FindByID(ctx, seekerID)
	if errors.Is(err, svcErr.ErrNotFound) {
		r.logger.Warn("no match: seeker not found", "seeker", seekerID)
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	provider, err := r.users.FindByID(ctx, item.ProviderID)
	if errors.Is(err, svcErr.ErrNotFound) {
		r.logger.Warn("no match: provider not found", "provider", item.ProviderID, "item", item.ID)
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	m, err := r.matches.Create(ctx, domain.Match{
		ID:         uuid.NewString(),
		SeekerID:   seeker.ID,
		ProviderID: provider.ID,
		ItemID:     item.ID,
		Score:      r.strategy.Score(seeker, item, provider),
		Status:     domain.MatchPending,
		CreatedAt:  r.now().UTC(),
	})
	if errors.Is(err, svcErr.ErrConflict) {
		existing, ferr := r.matches.FindByTriple(ctx, seeker.ID, provider.ID, item.ID)
		if ferr != nil {
			return nil, false, ferr
		}
		return &existing, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	metrics.RecordMatchCreated()
	if r.caches != nil {
		if err := r.caches.InvalidatePendingCount(ctx, provider.ID); err != nil {
			r.logger.Warn("pending count invalidation failed", "provider", provider.ID, "err", err)
		}
	}
	r.notifier.MatchCreated(ctx, m)

	r.logger.Debug("match created", "match", m.ID, "seeker", seeker.ID, "item", item.ID, "score", m.Score.Total)
	return &m, true, nil
}

func (r *Recorder) addSwipe(ctx context.Context, userID, itemID string) {
	if r.caches == nil {
		return
	}
	if err := r.caches.AddSwipedItem(ctx, userID, itemID); err != nil {
		r.logger.Warn("swipe cache update failed", "user", userID, "item", itemID, "err", err)
	}
}
