package compat

import "strings"

// traitVibes maps seeker personality traits to the item vibes they tend to prefer.
var traitVibes = map[string][]string{
	"introvert":    {"quiet", "minimalist"},
	"studious":     {"quiet", "minimalist"},
	"extrovert":    {"social", "bright"},
	"party-animal": {"social", "bright"},
	"organized":    {"modern", "minimalist"},
	"artistic":     {"bohemian", "cozy"},
}

// InferVibes returns the vibe preferences implied by a seeker's traits,
// de-duplicated in first-seen order.
func InferVibes(traits []string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, trait := range traits {
		for _, v := range traitVibes[strings.ToLower(strings.TrimSpace(trait))] {
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}
