// Package matching ranks candidate listings for a seeker.
//
// The Engine holds no domain logic beyond orchestration: scoring is
// delegated to a compat.Strategy, which can be swapped per deployment.
package matching

import (
	"sort"

	"github.com/oggyb/spacematch/internal/compat"
	"github.com/oggyb/spacematch/internal/domain"
)

// DefaultMinScore is the lowest total a candidate may have to be ranked.
const DefaultMinScore = 50

// Candidate is an item paired with its resolved provider.
type Candidate struct {
	Item     domain.Item
	Provider domain.User
}

// Ranked is a scored candidate.
type Ranked struct {
	Item     domain.Item
	Provider domain.User
	Score    domain.Score
}

// Engine scores, filters and orders candidates.
type Engine struct {
	strategy compat.Strategy
	minScore int
}

// NewEngine returns an Engine that drops candidates scoring below minScore.
func NewEngine(strategy compat.Strategy, minScore int) *Engine {
	return &Engine{strategy: strategy, minScore: minScore}
}

// Strategy returns the scoring strategy, for callers scoring a single triple.
func (e *Engine) Strategy() compat.Strategy {
	return e.strategy
}

// Rank scores every candidate and returns those at or above the minimum
// score, best first.
//
// Behavior:
//   - Sort is stable: equal totals keep their input order.
//   - limit <= 0 returns every qualifying candidate.
func (e *Engine) Rank(seeker domain.User, candidates []Candidate, limit int) []Ranked {
	ranked := make([]Ranked, 0, len(candidates))
	for _, c := range candidates {
		score := e.strategy.Score(seeker, c.Item, c.Provider)
		if score.Total < e.minScore {
			continue
		}
		ranked = append(ranked, Ranked{Item: c.Item, Provider: c.Provider, Score: score})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score.Total > ranked[j].Score.Total
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
