package compat

import "strings"

// Jaccard returns |a ∩ b| / |a ∪ b|, comparing tags case-insensitively.
// Two empty sets give 0.5.
func Jaccard(a, b []string) float64 {
	sa, sb := toSet(a), toSet(b)
	if len(sa) == 0 && len(sb) == 0 {
		return 0.5
	}

	inter := 0
	for t := range sa {
		if _, ok := sb[t]; ok {
			inter++
		}
	}
	union := len(sa) + len(sb) - inter
	return float64(inter) / float64(union)
}

// intersect returns the tags of a that also appear in b, in a's order.
func intersect(a, b []string) []string {
	sb := toSet(b)
	var out []string
	seen := make(map[string]struct{})
	for _, t := range a {
		t = strings.ToLower(strings.TrimSpace(t))
		if _, ok := sb[t]; !ok {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

func toSet(tags []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			set[t] = struct{}{}
		}
	}
	return set
}
