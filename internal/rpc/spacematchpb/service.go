package spacematchpb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/oggyb/spacematch/internal/rpc/jsoncodec"
)

const ServiceName = "spacematch.v1.SpaceMatchService"

const (
	GetFeedMethod             = "GetFeed"
	RecordInteractionMethod   = "RecordInteraction"
	ResumeMatchMethod         = "ResumeMatch"
	GetMatchesMethod          = "GetMatches"
	AcceptMatchMethod         = "AcceptMatch"
	RejectMatchMethod         = "RejectMatch"
	ExpireMatchMethod         = "ExpireMatch"
	CountPendingMatchesMethod = "CountPendingMatches"
	UpdatePreferencesMethod   = "UpdatePreferences"
	ApplyUserTraitsMethod     = "ApplyUserTraits"
	ApplyItemTagsMethod       = "ApplyItemTags"
	UpdateItemStatusMethod    = "UpdateItemStatus"
)

// FullMethod returns the "/service/method" path of method.
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// SpaceMatchServiceServer is the server API for SpaceMatchService.
type SpaceMatchServiceServer interface {
	GetFeed(context.Context, *GetFeedRequest) (*GetFeedResponse, error)
	RecordInteraction(context.Context, *RecordInteractionRequest) (*RecordInteractionResponse, error)
	ResumeMatch(context.Context, *ResumeMatchRequest) (*RecordInteractionResponse, error)
	GetMatches(context.Context, *GetMatchesRequest) (*GetMatchesResponse, error)
	AcceptMatch(context.Context, *AcceptMatchRequest) (*MatchResponse, error)
	RejectMatch(context.Context, *RejectMatchRequest) (*MatchResponse, error)
	ExpireMatch(context.Context, *ExpireMatchRequest) (*MatchResponse, error)
	CountPendingMatches(context.Context, *CountPendingMatchesRequest) (*CountPendingMatchesResponse, error)
	UpdatePreferences(context.Context, *UpdatePreferencesRequest) (*UserResponse, error)
	ApplyUserTraits(context.Context, *ApplyUserTraitsRequest) (*UserResponse, error)
	ApplyItemTags(context.Context, *ApplyItemTagsRequest) (*ItemResponse, error)
	UpdateItemStatus(context.Context, *UpdateItemStatusRequest) (*ItemResponse, error)
}

// UnimplementedSpaceMatchServiceServer answers every method with codes.Unimplemented.
// Embed it to stay forward compatible.
type UnimplementedSpaceMatchServiceServer struct{}

func unimplemented(method string) error {
	return status.Errorf(codes.Unimplemented, "method %s not implemented", method)
}

func (UnimplementedSpaceMatchServiceServer) GetFeed(context.Context, *GetFeedRequest) (*GetFeedResponse, error) {
	return nil, unimplemented(GetFeedMethod)
}
func (UnimplementedSpaceMatchServiceServer) RecordInteraction(context.Context, *RecordInteractionRequest) (*RecordInteractionResponse, error) {
	return nil, unimplemented(RecordInteractionMethod)
}
func (UnimplementedSpaceMatchServiceServer) ResumeMatch(context.Context, *ResumeMatchRequest) (*RecordInteractionResponse, error) {
	return nil, unimplemented(ResumeMatchMethod)
}
func (UnimplementedSpaceMatchServiceServer) GetMatches(context.Context, *GetMatchesRequest) (*GetMatchesResponse, error) {
	return nil, unimplemented(GetMatchesMethod)
}
func (UnimplementedSpaceMatchServiceServer) AcceptMatch(context.Context, *AcceptMatchRequest) (*MatchResponse, error) {
	return nil, unimplemented(AcceptMatchMethod)
}
func (UnimplementedSpaceMatchServiceServer) RejectMatch(context.Context, *RejectMatchRequest) (*MatchResponse, error) {
	return nil, unimplemented(RejectMatchMethod)
}
func (UnimplementedSpaceMatchServiceServer) ExpireMatch(context.Context, *ExpireMatchRequest) (*MatchResponse, error) {
	return nil, unimplemented(ExpireMatchMethod)
}
func (UnimplementedSpaceMatchServiceServer) CountPendingMatches(context.Context, *CountPendingMatchesRequest) (*CountPendingMatchesResponse, error) {
	return nil, unimplemented(CountPendingMatchesMethod)
}
func (UnimplementedSpaceMatchServiceServer) UpdatePreferences(context.Context, *UpdatePreferencesRequest) (*UserResponse, error) {
	return nil, unimplemented(UpdatePreferencesMethod)
}
func (UnimplementedSpaceMatchServiceServer) ApplyUserTraits(context.Context, *ApplyUserTraitsRequest) (*UserResponse, error) {
	return nil, unimplemented(ApplyUserTraitsMethod)
}
func (UnimplementedSpaceMatchServiceServer) ApplyItemTags(context.Context, *ApplyItemTagsRequest) (*ItemResponse, error) {
	return nil, unimplemented(ApplyItemTagsMethod)
}
func (UnimplementedSpaceMatchServiceServer) UpdateItemStatus(context.Context, *UpdateItemStatusRequest) (*ItemResponse, error) {
	return nil, unimplemented(UpdateItemStatusMethod)
}

// unary builds the MethodDesc for one request/response pair.
func unary[Req, Resp any](method string, call func(SpaceMatchServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			s := srv.(SpaceMatchServiceServer)
			if interceptor == nil {
				return call(s, ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(method)}
			return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
				return call(s, ctx, req.(*Req))
			})
		},
	}
}

// ServiceDesc is the grpc.ServiceDesc for SpaceMatchService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*SpaceMatchServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(GetFeedMethod, SpaceMatchServiceServer.GetFeed),
		unary(RecordInteractionMethod, SpaceMatchServiceServer.RecordInteraction),
		unary(ResumeMatchMethod, SpaceMatchServiceServer.ResumeMatch),
		unary(GetMatchesMethod, SpaceMatchServiceServer.GetMatches),
		unary(AcceptMatchMethod, SpaceMatchServiceServer.AcceptMatch),
		unary(RejectMatchMethod, SpaceMatchServiceServer.RejectMatch),
		unary(ExpireMatchMethod, SpaceMatchServiceServer.ExpireMatch),
		unary(CountPendingMatchesMethod, SpaceMatchServiceServer.CountPendingMatches),
		unary(UpdatePreferencesMethod, SpaceMatchServiceServer.UpdatePreferences),
		unary(ApplyUserTraitsMethod, SpaceMatchServiceServer.ApplyUserTraits),
		unary(ApplyItemTagsMethod, SpaceMatchServiceServer.ApplyItemTags),
		unary(UpdateItemStatusMethod, SpaceMatchServiceServer.UpdateItemStatus),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "spacematch/v1/spacematch.proto",
}

func RegisterSpaceMatchServiceServer(s grpc.ServiceRegistrar, srv SpaceMatchServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// SpaceMatchServiceClient is the client API for SpaceMatchService.
type SpaceMatchServiceClient interface {
	GetFeed(ctx context.Context, in *GetFeedRequest, opts ...grpc.CallOption) (*GetFeedResponse, error)
	RecordInteraction(ctx context.Context, in *RecordInteractionRequest, opts ...grpc.CallOption) (*RecordInteractionResponse, error)
	ResumeMatch(ctx context.Context, in *ResumeMatchRequest, opts ...grpc.CallOption) (*RecordInteractionResponse, error)
	GetMatches(ctx context.Context, in *GetMatchesRequest, opts ...grpc.CallOption) (*GetMatchesResponse, error)
	AcceptMatch(ctx context.Context, in *AcceptMatchRequest, opts ...grpc.CallOption) (*MatchResponse, error)
	RejectMatch(ctx context.Context, in *RejectMatchRequest, opts ...grpc.CallOption) (*MatchResponse, error)
	ExpireMatch(ctx context.Context, in *ExpireMatchRequest, opts ...grpc.CallOption) (*MatchResponse, error)
	CountPendingMatches(ctx context.Context, in *CountPendingMatchesRequest, opts ...grpc.CallOption) (*CountPendingMatchesResponse, error)
	UpdatePreferences(ctx context.Context, in *UpdatePreferencesRequest, opts ...grpc.CallOption) (*UserResponse, error)
	ApplyUserTraits(ctx context.Context, in *ApplyUserTraitsRequest, opts ...grpc.CallOption) (*UserResponse, error)
	ApplyItemTags(ctx context.Context, in *ApplyItemTagsRequest, opts ...grpc.CallOption) (*ItemResponse, error)
	UpdateItemStatus(ctx context.Context, in *UpdateItemStatusRequest, opts ...grpc.CallOption) (*ItemResponse, error)
}

type spaceMatchServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewSpaceMatchServiceClient returns a client that always uses the JSON codec.
func NewSpaceMatchServiceClient(cc grpc.ClientConnInterface) SpaceMatchServiceClient {
	return &spaceMatchServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(jsoncodec.Name)}, opts...)
	if err := cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *spaceMatchServiceClient) GetFeed(ctx context.Context, in *GetFeedRequest, opts ...grpc.CallOption) (*GetFeedResponse, error) {
	return invoke[GetFeedResponse](ctx, c.cc, GetFeedMethod, in, opts)
}

func (c *spaceMatchServiceClient) RecordInteraction(ctx context.Context, in *RecordInteractionRequest, opts ...grpc.CallOption) (*RecordInteractionResponse, error) {
	return invoke[RecordInteractionResponse](ctx, c.cc, RecordInteractionMethod, in, opts)
}

func (c *spaceMatchServiceClient) ResumeMatch(ctx context.Context, in *ResumeMatchRequest, opts ...grpc.CallOption) (*RecordInteractionResponse, error) {
	return invoke[RecordInteractionResponse](ctx, c.cc, ResumeMatchMethod, in, opts)
}

func (c *spaceMatchServiceClient) GetMatches(ctx context.Context, in *GetMatchesRequest, opts ...grpc.CallOption) (*GetMatchesResponse, error) {
	return invoke[GetMatchesResponse](ctx, c.cc, GetMatchesMethod, in, opts)
}

func (c *spaceMatchServiceClient) AcceptMatch(ctx context.Context, in *AcceptMatchRequest, opts ...grpc.CallOption) (*MatchResponse, error) {
	return invoke[MatchResponse](ctx, c.cc, AcceptMatchMethod, in, opts)
}

func (c *spaceMatchServiceClient) RejectMatch(ctx context.Context, in *RejectMatchRequest, opts ...grpc.CallOption) (*MatchResponse, error) {
	return invoke[MatchResponse](ctx, c.cc, RejectMatchMethod, in, opts)
}

func (c *spaceMatchServiceClient) ExpireMatch(ctx context.Context, in *ExpireMatchRequest, opts ...grpc.CallOption) (*MatchResponse, error) {
	return invoke[MatchResponse](ctx, c.cc, ExpireMatchMethod, in, opts)
}

func (c *spaceMatchServiceClient) CountPendingMatches(ctx context.Context, in *CountPendingMatchesRequest, opts ...grpc.CallOption) (*CountPendingMatchesResponse, error) {
	return invoke[CountPendingMatchesResponse](ctx, c.cc, CountPendingMatchesMethod, in, opts)
}

func (c *spaceMatchServiceClient) UpdatePreferences(ctx context.Context, in *UpdatePreferencesRequest, opts ...grpc.CallOption) (*UserResponse, error) {
	return invoke[UserResponse](ctx, c.cc, UpdatePreferencesMethod, in, opts)
}

func (c *spaceMatchServiceClient) ApplyUserTraits(ctx context.Context, in *ApplyUserTraitsRequest, opts ...grpc.CallOption) (*UserResponse, error) {
	return invoke[UserResponse](ctx, c.cc, ApplyUserTraitsMethod, in, opts)
}

func (c *spaceMatchServiceClient) ApplyItemTags(ctx context.Context, in *ApplyItemTagsRequest, opts ...grpc.CallOption) (*ItemResponse, error) {
	return invoke[ItemResponse](ctx, c.cc, ApplyItemTagsMethod, in, opts)
}

func (c *spaceMatchServiceClient) UpdateItemStatus(ctx context.Context, in *UpdateItemStatusRequest, opts ...grpc.CallOption) (*ItemResponse, error) {
	return invoke[ItemResponse](ctx, c.cc, UpdateItemStatusMethod, in, opts)
}
