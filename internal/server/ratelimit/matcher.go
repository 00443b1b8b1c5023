package ratelimit

import "strings"

// Match returns the tier for method and path, or nil when none applies.
// Exact paths win over prefixes.
func Match(method, path string, tiers []Tier) *Tier {
	for i := range tiers {
		if tiers[i].Method == method && tiers[i].Path == path {
			return &tiers[i]
		}
	}
	for i := range tiers {
		t := &tiers[i]
		if t.Method == method && strings.HasSuffix(t.Path, "/") && strings.HasPrefix(path, t.Path) {
			return t
		}
	}
	return nil
}
