package speakers

import (
	"adrtools/internal/textutil"
)

// MatchKind records how a resolution was reached.
type MatchKind int

const (
	MatchNone MatchKind = iota
	MatchExact
	MatchNickname
	MatchFuzzy
	// MatchIgnored means the best fuzzy candidate listed the name as an ignore alias.
	MatchIgnored
)

func (k MatchKind) String() string {
	switch k {
	case MatchExact:
		return "exact"
	case MatchNickname:
		return "nickname"
	case MatchFuzzy:
		return "fuzzy"
	case MatchIgnored:
		return "ignored"
	default:
		return "none"
	}
}

// Resolution is the outcome of resolving one raw speaker label.
type Resolution struct {
	Name      string
	Casting   string
	Match     MatchKind
	Ratio     int
	Canonical Canonical
}

// Glob reports whether the resolved speaker is a glob pseudo-identity.
func (r Resolution) Glob() bool {
	return r.Canonical.Glob
}

// Resolved reports whether the label was matched to a registry entry.
func (r Resolution) Resolved() bool {
	switch r.Match {
	case MatchExact, MatchNickname, MatchFuzzy:
		return true
	default:
		return false
	}
}

// Resolver matches speaker labels against a read-only registry.
type Resolver struct {
	entries []Entry
	ratio   int
}

// NewResolver builds a resolver with the given fuzzy threshold (0-100).
// A non-positive ratio selects DefaultRatio.
func NewResolver(reg *Registry, ratio int) *Resolver {
	if ratio <= 0 {
		ratio = DefaultRatio
	}
	var entries []Entry
	if reg != nil {
		entries = reg.Speakers
	}
	return &Resolver{entries: entries, ratio: ratio}
}

// Ratio returns the fuzzy threshold in effect.
func (r *Resolver) Ratio() int {
	return r.ratio
}

// Resolve canonicalizes raw and looks it up. The only error is a variation
// classification inconsistency from Canonicalize.
func (r *Resolver) Resolve(raw string) (Resolution, error) {
	canonical, err := Canonicalize(raw)
	if err != nil {
		return Resolution{}, err
	}
	res := Resolution{Canonical: canonical}
	if canonical.Name == "" {
		res.Name = Unknown
		res.Casting = CastMe
		return res, nil
	}

	if entry, kind, ok := r.lookup(canonical.Name); ok {
		res.Name = entry.Name
		res.Casting = entry.Casting.String()
		res.Match = kind
		res.Ratio = 100
		return res, nil
	}

	best, ratio, ok := r.closest(canonical.Name)
	switch {
	case !ok:
		res.Name = canonical.Speaker
		res.Casting = CastMe
	case best.Ignores(canonical.Name):
		res.Name = canonical.Speaker
		res.Casting = CastMe
		res.Match = MatchIgnored
		res.Ratio = ratio
	default:
		res.Name = best.Name
		res.Casting = best.Casting.String()
		res.Match = MatchFuzzy
		res.Ratio = ratio
	}
	return res, nil
}

// lookup finds the first entry whose name or nickname equals name.
func (r *Resolver) lookup(name string) (Entry, MatchKind, bool) {
	for _, entry := range r.entries {
		if textutil.EqualFold(entry.Name, name) {
			return entry, MatchExact, true
		}
		if entry.Answers(name) {
			return entry, MatchNickname, true
		}
	}
	return Entry{}, MatchNone, false
}

// closest returns the highest-ratio entry at or above the threshold; ties keep
// the entry encountered first.
func (r *Resolver) closest(name string) (Entry, int, bool) {
	var (
		best  Entry
		score = -1
	)
	for _, entry := range r.entries {
		ratio := textutil.Ratio(name, entry.Name)
		if ratio < r.ratio || ratio <= score {
			continue
		}
		best = entry
		score = ratio
	}
	if score < 0 {
		return Entry{}, 0, false
	}
	return best, score, true
}
