package db

import "github.com/oggyb/spacematch/internal/domain"

func (u User) ToDomain() domain.User {
	out := domain.User{
		ID:         u.ID,
		Email:      u.Email,
		Name:       u.Name,
		Role:       domain.Role(u.Role),
		Bio:        u.Bio,
		Images:     []string(u.Images),
		Attributes: []string(u.Attributes),
		CreatedAt:  u.CreatedAt,
	}
	if u.Preferences.Set {
		p := u.Preferences.ToDomain()
		out.Preferences = &p
	}
	return out
}

func (p Preferences) ToDomain() domain.Preferences {
	return domain.Preferences{
		Budget:   domain.Budget{Min: p.BudgetMin, Max: p.BudgetMax},
		City:     p.City,
		RadiusKm: p.RadiusKm,
		Lifestyle: domain.Lifestyle{
			Smoker:    p.Smoker,
			Pets:      p.Pets,
			EarlyBird: p.EarlyBird,
		},
		Cleanliness: p.Cleanliness,
	}
}

// PreferencesFromDomain maps an optional preference profile to its columns.
func PreferencesFromDomain(p *domain.Preferences) Preferences {
	if p == nil {
		return Preferences{}
	}
	return Preferences{
		Set:         true,
		BudgetMin:   p.Budget.Min,
		BudgetMax:   p.Budget.Max,
		City:        p.City,
		RadiusKm:    p.RadiusKm,
		Smoker:      p.Lifestyle.Smoker,
		Pets:        p.Lifestyle.Pets,
		EarlyBird:   p.Lifestyle.EarlyBird,
		Cleanliness: p.Cleanliness,
	}
}

func UserFromDomain(u domain.User) User {
	return User{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		Role:        string(u.Role),
		Bio:         u.Bio,
		Images:      u.Images,
		Attributes:  domain.NormalizeTags(u.Attributes),
		Preferences: PreferencesFromDomain(u.Preferences),
		CreatedAt:   u.CreatedAt,
	}
}

func (i Item) ToDomain() domain.Item {
	return domain.Item{
		ID:          i.ID,
		ProviderID:  i.ProviderID,
		Title:       i.Title,
		Description: i.Description,
		Price:       i.Price,
		SizeSqm:     i.SizeSqm,
		Location: domain.Location{
			Address: i.Address,
			City:    i.City,
			Lat:     i.Lat,
			Lng:     i.Lng,
		},
		Images:     []string(i.Images),
		Attributes: []string(i.Attributes),
		Vibes:      []string(i.Vibes),
		Status:     domain.ItemStatus(i.Status),
		CreatedAt:  i.CreatedAt,
	}
}

func ItemFromDomain(i domain.Item) Item {
	status := string(i.Status)
	if status == "" {
		status = string(domain.ItemActive)
	}
	return Item{
		ID:          i.ID,
		ProviderID:  i.ProviderID,
		Title:       i.Title,
		Description: i.Description,
		Price:       i.Price,
		SizeSqm:     i.SizeSqm,
		Address:     i.Location.Address,
		City:        i.Location.City,
		Lat:         i.Location.Lat,
		Lng:         i.Location.Lng,
		Images:      i.Images,
		Attributes:  domain.NormalizeTags(i.Attributes),
		Vibes:       domain.NormalizeTags(i.Vibes),
		Status:      status,
		CreatedAt:   i.CreatedAt,
	}
}

func (i Interaction) ToDomain() domain.Interaction {
	return domain.Interaction{
		UserID:    i.UserID,
		ItemID:    i.ItemID,
		Type:      domain.InteractionType(i.Type),
		CreatedAt: i.CreatedAt,
	}
}

func InteractionFromDomain(i domain.Interaction) Interaction {
	return Interaction{
		UserID:    i.UserID,
		ItemID:    i.ItemID,
		Type:      string(i.Type),
		CreatedAt: i.CreatedAt,
	}
}

func (m Match) ToDomain() domain.Match {
	return domain.Match{
		ID:         m.ID,
		SeekerID:   m.SeekerID,
		ProviderID: m.ProviderID,
		ItemID:     m.ItemID,
		Score: domain.Score{
			Total:                 m.Score.Total,
			ItemCompatibility:     m.Score.ItemCompatibility,
			ProviderCompatibility: m.Score.ProviderCompatibility,
			Reasons:               []string(m.Score.Reasons),
		},
		Status:     domain.MatchStatus(m.Status),
		CreatedAt:  m.CreatedAt,
		AcceptedAt: m.AcceptedAt,
	}
}

func MatchFromDomain(m domain.Match) Match {
	status := string(m.Status)
	if status == "" {
		status = string(domain.MatchPending)
	}
	return Match{
		ID:         m.ID,
		SeekerID:   m.SeekerID,
		ProviderID: m.ProviderID,
		ItemID:     m.ItemID,
		Score: Score{
			Total:                 m.Score.Total,
			ItemCompatibility:     m.Score.ItemCompatibility,
			ProviderCompatibility: m.Score.ProviderCompatibility,
			Reasons:               m.Score.Reasons,
		},
		Status:     status,
		CreatedAt:  m.CreatedAt,
		AcceptedAt: m.AcceptedAt,
	}
}
