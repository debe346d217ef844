package spacematch

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/oggyb/spacematch/internal/app"
	"github.com/oggyb/spacematch/internal/compat"
	"github.com/oggyb/spacematch/internal/domain"
	svcErr "github.com/oggyb/spacematch/internal/errors"
	"github.com/oggyb/spacematch/internal/matching"
	"github.com/oggyb/spacematch/internal/repository"
	pb "github.com/oggyb/spacematch/internal/rpc/spacematchpb"
	"github.com/oggyb/spacematch/internal/service/feed"
	"github.com/oggyb/spacematch/internal/service/interaction"
	"github.com/oggyb/spacematch/internal/service/lifecycle"
	"github.com/oggyb/spacematch/internal/service/profile"
)

// Service implements the SpaceMatch gRPC API.
// It validates requests, delegates to the domain services and maps their
// errors onto gRPC status codes.
type Service struct {
	appCtx    *app.AppContext
	feed      *feed.Service
	recorder  *interaction.Recorder
	lifecycle *lifecycle.Service
	profile   *profile.Service

	pb.UnimplementedSpaceMatchServiceServer
}

// NewSpaceMatchService wires the domain services from AppContext.
// Dependencies include:
//   - DB connection (via the gorm repositories)
//   - RedisCache for the swipe set and pending counts, if configured
//   - Notifier for match events
func NewSpaceMatchService(appCtx *app.AppContext) *Service {
	cfg := appCtx.Config

	users := repository.NewUserRepository(appCtx.DB)
	items := repository.NewItemRepository(appCtx.DB)
	interactions := repository.NewInteractionRepository(appCtx.DB)
	matches := repository.NewMatchRepository(appCtx.DB)

	strategy := compat.NewWeighted(compat.Weights{
		Item:     cfg.Matching.ItemWeight,
		Provider: cfg.Matching.ProviderWeight,
	})
	engine := matching.NewEngine(strategy, cfg.Matching.MinScore)

	var (
		swipes  feed.SwipeCache
		caches  interaction.Caches
		pending lifecycle.PendingCache
	)
	if appCtx.RedisCache != nil {
		swipes, caches, pending = appCtx.RedisCache, appCtx.RedisCache, appCtx.RedisCache
	}

	return &Service{
		appCtx: appCtx,
		feed: feed.NewService(users, items, interactions, swipes, engine, feed.Config{
			DefaultLimit:    cfg.Feed.DefaultLimit,
			MaxLimit:        cfg.Feed.MaxLimit,
			OverFetchFactor: cfg.Feed.OverFetchFactor,
		}, appCtx.Logger),
		recorder: interaction.NewRecorder(interaction.Deps{
			Users:        users,
			Items:        items,
			Interactions: interactions,
			Matches:      matches,
			Strategy:     strategy,
			Caches:       caches,
			Notifier:     appCtx.Notifier,
			Logger:       appCtx.Logger,
		}),
		lifecycle: lifecycle.NewService(
			matches, pending, appCtx.Notifier,
			lifecycle.RejectPolicy(cfg.Matching.RejectPolicy),
			appCtx.Logger,
		),
		profile: profile.NewService(users, items, appCtx.Logger),
	}
}

// GetFeed returns a page of ranked listings for a seeker.
//
// Behavior:
//   - seeker_id is required; unknown seekers are NotFound.
//   - limit <= 0 uses the configured default; offset counts ranked entries.
//
// Example:
//
//	svc.GetFeed(ctx, &pb.GetFeedRequest{SeekerId: "s1", Limit: 10})
func (s *Service) GetFeed(ctx context.Context, req *pb.GetFeedRequest) (*pb.GetFeedResponse, error) {
	s.appCtx.Logger.Debug("GetFeed called", "seeker", req.GetSeekerId(), "limit", req.GetLimit(), "offset", req.GetOffset())

	if req.GetSeekerId() == "" {
		return nil, svcErr.InvalidArgument("seeker_id is required")
	}

	page, err := s.feed.Generate(ctx, req.GetSeekerId(), int(req.GetLimit()), int(req.GetOffset()))
	if err != nil {
		s.appCtx.Logger.Error("Generate feed failed", "seeker", req.GetSeekerId(), "err", err)
		return nil, svcErr.Map(err)
	}

	return &pb.GetFeedResponse{
		Items:   toPBFeedItems(page.Items),
		Limit:   int32(page.Limit),
		Offset:  int32(page.Offset),
		HasMore: page.HasMore,
	}, nil
}

// RecordInteraction stores a swipe and reports the resulting match, if any.
//
// Example:
//
//	svc.RecordInteraction(ctx, &pb.RecordInteractionRequest{UserId: "s1", ItemId: "i1", Action: "like"})
func (s *Service) RecordInteraction(ctx context.Context, req *pb.RecordInteractionRequest) (*pb.RecordInteractionResponse, error) {
	s.appCtx.Logger.Debug(
		"RecordInteraction called",
		"user", req.GetUserId(),
		"item", req.GetItemId(),
		"action", req.GetAction(),
	)
	if req.GetUserId() == "" || req.GetItemId() == "" {
		return nil, svcErr.InvalidArgument("user_id and item_id are required")
	}

	res, err := s.recorder.Record(ctx, req.GetUserId(), req.GetItemId(), req.GetAction())
	if err != nil {
		return nil, mapRecordErr(err)
	}
	return toPBRecordResult(res), nil
}

// ResumeMatch finishes a positive swipe whose RecordInteraction call failed
// with Unavailable.
func (s *Service) ResumeMatch(ctx context.Context, req *pb.ResumeMatchRequest) (*pb.RecordInteractionResponse, error) {
	s.appCtx.Logger.Debug("ResumeMatch called", "user", req.GetUserId(), "item", req.GetItemId())
	if req.GetUserId() == "" || req.GetItemId() == "" {
		return nil, svcErr.InvalidArgument("user_id and item_id are required")
	}

	res, err := s.recorder.ResumeMatch(ctx, req.GetUserId(), req.GetItemId())
	if err != nil {
		return nil, mapRecordErr(err)
	}
	return toPBRecordResult(res), nil
}

// mapRecordErr reports a stored swipe without a match as Unavailable so the
// caller knows to call ResumeMatch rather than swipe again.
func mapRecordErr(err error) error {
	if errors.Is(err, interaction.ErrMatchNotCreated) {
		return status.Error(codes.Unavailable, err.Error())
	}
	return svcErr.Map(err)
}

// GetMatches lists one side's matches, newest first.
func (s *Service) GetMatches(ctx context.Context, req *pb.GetMatchesRequest) (*pb.GetMatchesResponse, error) {
	s.appCtx.Logger.Debug("GetMatches called", "user", req.GetUserId(), "role", req.GetRole(), "token", req.GetPaginationToken())

	if req.GetUserId() == "" {
		return nil, svcErr.InvalidArgument("user_id is required")
	}
	role := domain.Role(req.GetRole())
	if !role.Valid() {
		return nil, svcErr.InvalidArgument("role must be provider or seeker")
	}

	q := lifecycle.ListQuery{
		UserID:          req.GetUserId(),
		Role:            role,
		PaginationToken: req.PaginationToken,
		Limit:           int(req.Limit),
	}
	if req.Status != nil {
		st := domain.MatchStatus(*req.Status)
		q.Status = &st
	}

	matches, next, err := s.lifecycle.List(ctx, q)
	if err != nil {
		return nil, svcErr.Map(err)
	}

	resp := &pb.GetMatchesResponse{Matches: make([]*pb.Match, 0, len(matches)), NextPaginationToken: next}
	for _, m := range matches {
		resp.Matches = append(resp.Matches, toPBMatch(m))
	}

	s.appCtx.Logger.Debug("GetMatches result", "match_count", len(resp.Matches), "next_token", resp.GetNextPaginationToken())
	return resp, nil
}

// AcceptMatch lets the owning provider accept a pending match.
func (s *Service) AcceptMatch(ctx context.Context, req *pb.AcceptMatchRequest) (*pb.MatchResponse, error) {
	s.appCtx.Logger.Debug("AcceptMatch called", "match", req.GetMatchId(), "provider", req.GetProviderId())

	if req.GetMatchId() == "" || req.GetProviderId() == "" {
		return nil, svcErr.InvalidArgument("match_id and provider_id are required")
	}

	m, err := s.lifecycle.Accept(ctx, req.GetMatchId(), req.GetProviderId())
	if err != nil {
		return nil, svcErr.Map(err)
	}
	return &pb.MatchResponse{Match: toPBMatch(m)}, nil
}

// RejectMatch declines a pending match. Who may call it depends on the
// configured reject policy; actor_id may be empty under the "any" policy.
func (s *Service) RejectMatch(ctx context.Context, req *pb.RejectMatchRequest) (*pb.MatchResponse, error) {
	s.appCtx.Logger.Debug("RejectMatch called", "match", req.GetMatchId(), "actor", req.GetActorId())

	if req.GetMatchId() == "" {
		return nil, svcErr.InvalidArgument("match_id is required")
	}

	m, err := s.lifecycle.Reject(ctx, req.GetMatchId(), req.GetActorId())
	if err != nil {
		return nil, svcErr.Map(err)
	}
	return &pb.MatchResponse{Match: toPBMatch(m)}, nil
}

// ExpireMatch is called by the external expiry sweeper.
func (s *Service) ExpireMatch(ctx context.Context, req *pb.ExpireMatchRequest) (*pb.MatchResponse, error) {
	if req.GetMatchId() == "" {
		return nil, svcErr.InvalidArgument("match_id is required")
	}

	m, err := s.lifecycle.Expire(ctx, req.GetMatchId())
	if err != nil {
		return nil, svcErr.Map(err)
	}
	return &pb.MatchResponse{Match: toPBMatch(m)}, nil
}

// CountPendingMatches returns how many matches await the provider.
// Cache-first: see lifecycle.Service.CountPending.
func (s *Service) CountPendingMatches(ctx context.Context, req *pb.CountPendingMatchesRequest) (*pb.CountPendingMatchesResponse, error) {
	s.appCtx.Logger.Debug("CountPendingMatches called", "provider", req.GetProviderId())

	if req.GetProviderId() == "" {
		return nil, svcErr.InvalidArgument("provider_id is required")
	}

	n, err := s.lifecycle.CountPending(ctx, req.GetProviderId())
	if err != nil {
		return nil, svcErr.Map(err)
	}
	return &pb.CountPendingMatchesResponse{Count: uint64(n)}, nil
}

func (s *Service) UpdatePreferences(ctx context.Context, req *pb.UpdatePreferencesRequest) (*pb.UserResponse, error) {
	s.appCtx.Logger.Debug("UpdatePreferences called", "user", req.GetUserId())

	if req.GetUserId() == "" || req.GetPreferences() == nil {
		return nil, svcErr.InvalidArgument("user_id and preferences are required")
	}

	u, err := s.profile.UpdatePreferences(ctx, req.GetUserId(), fromPBPreferences(req.GetPreferences()))
	if err != nil {
		return nil, svcErr.Map(err)
	}
	return &pb.UserResponse{User: toPBUser(u)}, nil
}

func (s *Service) ApplyUserTraits(ctx context.Context, req *pb.ApplyUserTraitsRequest) (*pb.UserResponse, error) {
	if req.GetUserId() == "" {
		return nil, svcErr.InvalidArgument("user_id is required")
	}

	u, err := s.profile.ApplyUserTraits(ctx, req.GetUserId(), req.GetTraits())
	if err != nil {
		return nil, svcErr.Map(err)
	}
	return &pb.UserResponse{User: toPBUser(u)}, nil
}

func (s *Service) ApplyItemTags(ctx context.Context, req *pb.ApplyItemTagsRequest) (*pb.ItemResponse, error) {
	if req.GetItemId() == "" {
		return nil, svcErr.InvalidArgument("item_id is required")
	}

	it, err := s.profile.ApplyItemTags(ctx, req.GetItemId(), req.Attributes, req.Vibes)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	return &pb.ItemResponse{Item: toPBItem(it)}, nil
}

func (s *Service) UpdateItemStatus(ctx context.Context, req *pb.UpdateItemStatusRequest) (*pb.ItemResponse, error) {
	s.appCtx.Logger.Debug("UpdateItemStatus called", "item", req.GetItemId(), "status", req.GetStatus())

	if req.GetItemId() == "" || req.GetProviderId() == "" {
		return nil, svcErr.InvalidArgument("item_id and provider_id are required")
	}

	it, err := s.profile.UpdateItemStatus(ctx, req.GetItemId(), req.GetProviderId(), domain.ItemStatus(req.GetStatus()))
	if err != nil {
		return nil, svcErr.Map(err)
	}
	return &pb.ItemResponse{Item: toPBItem(it)}, nil
}
