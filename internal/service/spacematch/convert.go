package spacematch

import (
	"github.com/oggyb/spacematch/internal/domain"
	"github.com/oggyb/spacematch/internal/matching"
	pb "github.com/oggyb/spacematch/internal/rpc/spacematchpb"
	"github.com/oggyb/spacematch/internal/service/interaction"
)

func toPBScore(s domain.Score) *pb.Score {
	return &pb.Score{
		Total:                 int32(s.Total),
		ItemCompatibility:     int32(s.ItemCompatibility),
		ProviderCompatibility: int32(s.ProviderCompatibility),
		Reasons:               s.Reasons,
	}
}

func toPBPreferences(p *domain.Preferences) *pb.Preferences {
	if p == nil {
		return nil
	}
	return &pb.Preferences{
		BudgetMin:   p.Budget.Min,
		BudgetMax:   p.Budget.Max,
		City:        p.City,
		RadiusKm:    p.RadiusKm,
		Smoker:      p.Lifestyle.Smoker,
		Pets:        p.Lifestyle.Pets,
		EarlyBird:   p.Lifestyle.EarlyBird,
		Cleanliness: int32(p.Cleanliness),
	}
}

func fromPBPreferences(p *pb.Preferences) domain.Preferences {
	return domain.Preferences{
		Budget:   domain.Budget{Min: p.BudgetMin, Max: p.BudgetMax},
		City:     p.City,
		RadiusKm: p.RadiusKm,
		Lifestyle: domain.Lifestyle{
			Smoker:    p.Smoker,
			Pets:      p.Pets,
			EarlyBird: p.EarlyBird,
		},
		Cleanliness: int(p.Cleanliness),
	}
}

func toPBUser(u domain.User) *pb.User {
	return &pb.User{
		Id:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		Role:        string(u.Role),
		Bio:         u.Bio,
		Images:      u.Images,
		Attributes:  u.Attributes,
		Preferences: toPBPreferences(u.Preferences),
	}
}

// toPBProvider is the public view of a provider shown in a feed.
func toPBProvider(u domain.User) *pb.User {
	return &pb.User{
		Id:         u.ID,
		Name:       u.Name,
		Role:       string(u.Role),
		Bio:        u.Bio,
		Images:     u.Images,
		Attributes: u.Attributes,
	}
}

func toPBItem(it domain.Item) *pb.Item {
	return &pb.Item{
		Id:          it.ID,
		ProviderId:  it.ProviderID,
		Title:       it.Title,
		Description: it.Description,
		Price:       it.Price,
		SizeSqm:     it.SizeSqm,
		Address:     it.Location.Address,
		City:        it.Location.City,
		Lat:         it.Location.Lat,
		Lng:         it.Location.Lng,
		Images:      it.Images,
		Attributes:  it.Attributes,
		Vibes:       it.Vibes,
		Status:      string(it.Status),
	}
}

func toPBMatch(m domain.Match) *pb.Match {
	out := &pb.Match{
		Id:         m.ID,
		SeekerId:   m.SeekerID,
		ProviderId: m.ProviderID,
		ItemId:     m.ItemID,
		Status:     string(m.Status),
		Score:      toPBScore(m.Score),
		CreatedAt:  uint64(m.CreatedAt.UnixMilli()),
	}
	if m.AcceptedAt != nil {
		ts := uint64(m.AcceptedAt.UnixMilli())
		out.AcceptedAt = &ts
	}
	return out
}

func toPBFeedItems(ranked []matching.Ranked) []*pb.FeedItem {
	out := make([]*pb.FeedItem, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, &pb.FeedItem{
			Item:     toPBItem(r.Item),
			Provider: toPBProvider(r.Provider),
			Score:    toPBScore(r.Score),
		})
	}
	return out
}

func toPBRecordResult(res *interaction.Result) *pb.RecordInteractionResponse {
	resp := &pb.RecordInteractionResponse{MatchCreated: res.Created}
	if res.Match != nil {
		resp.Match = toPBMatch(*res.Match)
	}
	return resp
}
