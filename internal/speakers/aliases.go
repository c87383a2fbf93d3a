package speakers

import (
	"strings"

	"adrtools/internal/textutil"
)

// AliasSet lists the names discovered as aliases of one target.
type AliasSet struct {
	Target  string
	Aliases []Alias
}

// FindAliases scans names for each target in priority order and keeps every
// name whose similarity to the target is at least ratio. A name claimed by
// an earlier target is not offered to later ones, and a target never aliases
// itself.
func FindAliases(targets []string, names []string, ratio int) []AliasSet {
	claimed := make(map[string]struct{})
	sets := make([]AliasSet, 0, len(targets))
	for _, target := range targets {
		set := AliasSet{Target: strings.TrimSpace(target), Aliases: []Alias{}}
		for _, name := range names {
			candidate := strings.ToLower(strings.TrimSpace(name))
			if candidate == "" || textutil.EqualFold(candidate, target) {
				continue
			}
			key := textutil.Fold(candidate)
			if _, taken := claimed[key]; taken {
				continue
			}
			score := textutil.Ratio(target, candidate)
			if score < ratio {
				continue
			}
			claimed[key] = struct{}{}
			set.Aliases = append(set.Aliases, Alias{Ratio: score, Alias: candidate})
		}
		sets = append(sets, set)
	}
	return sets
}
