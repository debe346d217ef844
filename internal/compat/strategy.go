package compat

import (
	"fmt"
	"math"
	"strings"

	"github.com/oggyb/spacematch/internal/domain"
)

// Strategy scores a (seeker, item, provider) triple.
type Strategy interface {
	Score(seeker domain.User, item domain.Item, provider domain.User) domain.Score
}

// Weights blends the two sub-scores. They should sum to 1.
type Weights struct {
	Item     float64
	Provider float64
}

// DefaultWeights favours the space over the roommate.
var DefaultWeights = Weights{Item: 0.7, Provider: 0.3}

const (
	maxReasons         = 4
	maxStyleTags       = 3
	maxSharedTraits    = 2
	pricePenaltyMax    = 10.0
	cityPenalty        = 30.0
	smokerPenalty      = 20.0
	nightOwlPenalty    = 15.0
	earlyBirdPenalty   = 10.0
	greatItemScore     = 80.0
	greatProviderScore = 70.0
)

// Weighted is the default Strategy.
type Weighted struct {
	weights Weights
}

// NewWeighted returns a Strategy using w.
func NewWeighted(w Weights) *Weighted {
	return &Weighted{weights: w}
}

// Score implements Strategy.
func (s *Weighted) Score(seeker domain.User, item domain.Item, provider domain.User) domain.Score {
	itemScore, notes := itemCompatibility(seeker, item)
	providerScore, sharedTraits := providerCompatibility(seeker, provider)
	total := itemScore*s.weights.Item + providerScore*s.weights.Provider

	var reasons []string
	if notes.withinBudget {
		reasons = append(reasons, "Within your budget")
	}
	if len(notes.styleTags) > 0 {
		reasons = append(reasons, "Matches your style: "+strings.Join(head(notes.styleTags, maxStyleTags), ", "))
	}
	if len(sharedTraits) > 0 {
		reasons = append(reasons, "You share traits: "+strings.Join(head(sharedTraits, maxSharedTraits), ", "))
	}
	if notes.sameCity {
		reasons = append(reasons, fmt.Sprintf("Located in %s", item.Location.City))
	}
	if itemScore >= greatItemScore {
		reasons = append(reasons, "Great apartment match")
	}
	if providerScore >= greatProviderScore {
		reasons = append(reasons, "Highly compatible roommate")
	}

	return domain.Score{
		Total:                 round(total),
		ItemCompatibility:     round(itemScore),
		ProviderCompatibility: round(providerScore),
		Reasons:               head(reasons, maxReasons),
	}
}

type itemNotes struct {
	withinBudget bool
	sameCity     bool
	styleTags    []string
}

// itemCompatibility scores the listing against the seeker's preferences on
// a 0-100 scale. A price outside the budget is a hard zero.
func itemCompatibility(seeker domain.User, item domain.Item) (float64, itemNotes) {
	var notes itemNotes
	score := 100.0

	if prefs, ok := seeker.Prefs(); ok {
		b := prefs.Budget
		if !b.Contains(item.Price) {
			return 0, notes
		}
		notes.withinBudget = true
		if b.Max > b.Min {
			score -= (item.Price - b.Min) / (b.Max - b.Min) * pricePenaltyMax
		}

		if prefs.City != "" {
			if strings.EqualFold(strings.TrimSpace(item.Location.City), strings.TrimSpace(prefs.City)) {
				notes.sameCity = true
			} else {
				score -= cityPenalty
			}
		}
	}

	wanted := InferVibes(seeker.Attributes)
	tags := item.Tags()
	notes.styleTags = intersect(wanted, tags)

	score *= 0.5 + Jaccard(wanted, tags)*0.5
	return clamp(score), notes
}

// providerCompatibility scores the provider as a roommate on a 0-100 scale,
// starting from a neutral 50. It also returns the shared traits.
func providerCompatibility(seeker, provider domain.User) (float64, []string) {
	score := 50 + Jaccard(seeker.Attributes, provider.Attributes)*50

	if prefs, ok := seeker.Prefs(); ok && len(provider.Attributes) > 0 {
		life := prefs.Lifestyle
		if !life.Smoker && domain.HasTag(provider.Attributes, "smoker") {
			score -= smokerPenalty
		}
		if life.EarlyBird && domain.HasTag(provider.Attributes, "night-owl") {
			score -= nightOwlPenalty
		}
		if !life.EarlyBird && domain.HasTag(provider.Attributes, "early-bird") {
			score -= earlyBirdPenalty
		}
	}

	return clamp(score), intersect(seeker.Attributes, provider.Attributes)
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}

func round(v float64) int {
	return int(math.Round(clamp(v)))
}

func head(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
