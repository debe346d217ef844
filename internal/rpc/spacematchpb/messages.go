// Package spacematchpb defines the wire messages and service descriptor of
// spacematch.v1.SpaceMatchService.
//
// Messages are carried with the JSON codec from internal/rpc/jsoncodec.
// Getters follow the protobuf convention and are nil-safe.
package spacematchpb

// Score is a compatibility breakdown.
type Score struct {
	Total                 int32    `json:"total"`
	ItemCompatibility     int32    `json:"item_compatibility"`
	ProviderCompatibility int32    `json:"provider_compatibility"`
	Reasons               []string `json:"reasons,omitempty"`
}

type Preferences struct {
	BudgetMin   float64 `json:"budget_min"`
	BudgetMax   float64 `json:"budget_max"`
	City        string  `json:"city,omitempty"`
	RadiusKm    float64 `json:"radius_km,omitempty"`
	Smoker      bool    `json:"smoker,omitempty"`
	Pets        bool    `json:"pets,omitempty"`
	EarlyBird   bool    `json:"early_bird,omitempty"`
	Cleanliness int32   `json:"cleanliness,omitempty"`
}

type User struct {
	Id          string       `json:"id"`
	Email       string       `json:"email,omitempty"`
	Name        string       `json:"name"`
	Role        string       `json:"role"`
	Bio         *string      `json:"bio,omitempty"`
	Images      []string     `json:"images,omitempty"`
	Attributes  []string     `json:"attributes,omitempty"`
	Preferences *Preferences `json:"preferences,omitempty"`
}

type Item struct {
	Id          string   `json:"id"`
	ProviderId  string   `json:"provider_id"`
	Title       string   `json:"title"`
	Description *string  `json:"description,omitempty"`
	Price       float64  `json:"price"`
	SizeSqm     *float64 `json:"size_sqm,omitempty"`
	Address     string   `json:"address,omitempty"`
	City        string   `json:"city,omitempty"`
	Lat         float64  `json:"lat,omitempty"`
	Lng         float64  `json:"lng,omitempty"`
	Images      []string `json:"images,omitempty"`
	Attributes  []string `json:"attributes,omitempty"`
	Vibes       []string `json:"vibes,omitempty"`
	Status      string   `json:"status"`
}

type Match struct {
	Id         string `json:"id"`
	SeekerId   string `json:"seeker_id"`
	ProviderId string `json:"provider_id"`
	ItemId     string `json:"item_id"`
	Status     string `json:"status"`
	Score      *Score `json:"score,omitempty"`
	// Unix milliseconds.
	CreatedAt  uint64  `json:"created_at"`
	AcceptedAt *uint64 `json:"accepted_at,omitempty"`
}

// FeedItem is one ranked listing with its provider.
type FeedItem struct {
	Item     *Item  `json:"item"`
	Provider *User  `json:"provider"`
	Score    *Score `json:"score"`
}

type GetFeedRequest struct {
	SeekerId string `json:"seeker_id"`
	Limit    int32  `json:"limit,omitempty"`
	Offset   int32  `json:"offset,omitempty"`
}

func (x *GetFeedRequest) GetSeekerId() string {
	if x != nil {
		return x.SeekerId
	}
	return ""
}

func (x *GetFeedRequest) GetLimit() int32 {
	if x != nil {
		return x.Limit
	}
	return 0
}

func (x *GetFeedRequest) GetOffset() int32 {
	if x != nil {
		return x.Offset
	}
	return 0
}

type GetFeedResponse struct {
	Items   []*FeedItem `json:"items"`
	Limit   int32       `json:"limit"`
	Offset  int32       `json:"offset"`
	HasMore bool        `json:"has_more"`
}

type RecordInteractionRequest struct {
	UserId string `json:"user_id"`
	ItemId string `json:"item_id"`
	// like, dislike or super_like
	Action string `json:"action"`
}

func (x *RecordInteractionRequest) GetUserId() string {
	if x != nil {
		return x.UserId
	}
	return ""
}

func (x *RecordInteractionRequest) GetItemId() string {
	if x != nil {
		return x.ItemId
	}
	return ""
}

func (x *RecordInteractionRequest) GetAction() string {
	if x != nil {
		return x.Action
	}
	return ""
}

type RecordInteractionResponse struct {
	Match        *Match `json:"match,omitempty"`
	MatchCreated bool   `json:"match_created"`
}

// ResumeMatchRequest retries match creation for a stored positive swipe.
type ResumeMatchRequest struct {
	UserId string `json:"user_id"`
	ItemId string `json:"item_id"`
}

func (x *ResumeMatchRequest) GetUserId() string {
	if x != nil {
		return x.UserId
	}
	return ""
}

func (x *ResumeMatchRequest) GetItemId() string {
	if x != nil {
		return x.ItemId
	}
	return ""
}

type GetMatchesRequest struct {
	UserId          string  `json:"user_id"`
	Role            string  `json:"role"`
	Status          *string `json:"status,omitempty"`
	PaginationToken *string `json:"pagination_token,omitempty"`
	Limit           int32   `json:"limit,omitempty"`
}

func (x *GetMatchesRequest) GetUserId() string {
	if x != nil {
		return x.UserId
	}
	return ""
}

func (x *GetMatchesRequest) GetRole() string {
	if x != nil {
		return x.Role
	}
	return ""
}

func (x *GetMatchesRequest) GetPaginationToken() string {
	if x != nil && x.PaginationToken != nil {
		return *x.PaginationToken
	}
	return ""
}

type GetMatchesResponse struct {
	Matches             []*Match `json:"matches"`
	NextPaginationToken *string  `json:"next_pagination_token,omitempty"`
}

func (x *GetMatchesResponse) GetNextPaginationToken() string {
	if x != nil && x.NextPaginationToken != nil {
		return *x.NextPaginationToken
	}
	return ""
}

type AcceptMatchRequest struct {
	MatchId    string `json:"match_id"`
	ProviderId string `json:"provider_id"`
}

func (x *AcceptMatchRequest) GetMatchId() string {
	if x != nil {
		return x.MatchId
	}
	return ""
}

func (x *AcceptMatchRequest) GetProviderId() string {
	if x != nil {
		return x.ProviderId
	}
	return ""
}

type RejectMatchRequest struct {
	MatchId string `json:"match_id"`
	ActorId string `json:"actor_id,omitempty"`
}

func (x *RejectMatchRequest) GetMatchId() string {
	if x != nil {
		return x.MatchId
	}
	return ""
}

func (x *RejectMatchRequest) GetActorId() string {
	if x != nil {
		return x.ActorId
	}
	return ""
}

type ExpireMatchRequest struct {
	MatchId string `json:"match_id"`
}

func (x *ExpireMatchRequest) GetMatchId() string {
	if x != nil {
		return x.MatchId
	}
	return ""
}

type MatchResponse struct {
	Match *Match `json:"match"`
}

type CountPendingMatchesRequest struct {
	ProviderId string `json:"provider_id"`
}

func (x *CountPendingMatchesRequest) GetProviderId() string {
	if x != nil {
		return x.ProviderId
	}
	return ""
}

type CountPendingMatchesResponse struct {
	Count uint64 `json:"count"`
}

type UpdatePreferencesRequest struct {
	UserId      string       `json:"user_id"`
	Preferences *Preferences `json:"preferences"`
}

func (x *UpdatePreferencesRequest) GetUserId() string {
	if x != nil {
		return x.UserId
	}
	return ""
}

func (x *UpdatePreferencesRequest) GetPreferences() *Preferences {
	if x != nil {
		return x.Preferences
	}
	return nil
}

type ApplyUserTraitsRequest struct {
	UserId string   `json:"user_id"`
	Traits []string `json:"traits"`
}

func (x *ApplyUserTraitsRequest) GetUserId() string {
	if x != nil {
		return x.UserId
	}
	return ""
}

func (x *ApplyUserTraitsRequest) GetTraits() []string {
	if x != nil {
		return x.Traits
	}
	return nil
}

type UserResponse struct {
	User *User `json:"user"`
}

type ApplyItemTagsRequest struct {
	ItemId     string   `json:"item_id"`
	Attributes []string `json:"attributes"`
	Vibes      []string `json:"vibes"`
}

func (x *ApplyItemTagsRequest) GetItemId() string {
	if x != nil {
		return x.ItemId
	}
	return ""
}

type UpdateItemStatusRequest struct {
	ItemId     string `json:"item_id"`
	ProviderId string `json:"provider_id"`
	// rented or removed
	Status string `json:"status"`
}

func (x *UpdateItemStatusRequest) GetItemId() string {
	if x != nil {
		return x.ItemId
	}
	return ""
}

func (x *UpdateItemStatusRequest) GetProviderId() string {
	if x != nil {
		return x.ProviderId
	}
	return ""
}

func (x *UpdateItemStatusRequest) GetStatus() string {
	if x != nil {
		return x.Status
	}
	return ""
}

type ItemResponse struct {
	Item *Item `json:"item"`
}
