package speakers

import (
	"fmt"
	"regexp"
	"strings"

	"adrtools/internal/faults"
)

// listenerDelimiter separates a speaker from the character being addressed.
var listenerDelimiter = regexp.MustCompile(`(?i)\s+to\s+`)

var globNames = map[string]struct{}{
	"everyone":        {},
	"multiple":        {},
	"multiple voice":  {},
	"multiple voices": {},
}

// variationClassifier flags labels that describe a delivery mode of an
// existing character rather than a new one.
var variationClassifier = regexp.MustCompile(`(?i)(?:'s|\s)(?:inside\s+|mind\s+)?voice\b|\s(?:on|over)\s+(?:the\s+)?(?:phone|call)\b|\sthinking\b|\sin\s+(?:\w+\s+)?head\b|\sreading\b`)

// variationPhrases are removed in order; more specific phrases come first.
// A space in a phrase matches any run of whitespace. Every label the
// classifier accepts must be stripped by one of these.
var variationPhrases = append(compilePhrases(
	`'s inside voice`,
	` inside voice`,
	`'s mind voice`,
	` mind voice`,
	`'s voice`,
	` over the phone`,
	` on the phone`,
	` over phone`,
	` on phone`,
	` over the call`,
	` on the call`,
	` over call`,
	` on call`,
	` thinking`,
	` in head`,
	` reading`,
	` voice`,
), regexp.MustCompile(`(?i)\s+in\s+\w+\s+head\b`))

func compilePhrases(values ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(values))
	for _, v := range values {
		source := strings.ReplaceAll(regexp.QuoteMeta(v), " ", `\s+`)
		out = append(out, regexp.MustCompile(`(?i)`+source+`\b`))
	}
	return out
}

// Canonical is a raw speaker label after listener, glob and variation handling.
type Canonical struct {
	// Raw is the trimmed input.
	Raw string
	// Speaker is Raw without its listener clause.
	Speaker string
	// Name is the base character name used for registry lookup.
	Name string
	// Glob marks a pseudo-identity for several simultaneous speakers.
	Glob bool
	// Variation is the delivery-mode phrase that was removed, if any.
	Variation string
}

// StripListener keeps the part of a label before the first " to ".
func StripListener(text string) string {
	trimmed := strings.TrimSpace(text)
	if loc := listenerDelimiter.FindStringIndex(trimmed); loc != nil {
		return strings.TrimSpace(trimmed[:loc[0]])
	}
	return trimmed
}

// IsGlob reports whether text names a group of unspecified speakers.
func IsGlob(text string) bool {
	key := strings.ToLower(strings.Join(strings.Fields(text), " "))
	_, ok := globNames[key]
	return ok
}

// IsVariation reports whether text looks like a delivery-mode variation.
func IsVariation(text string) bool {
	return variationClassifier.MatchString(text)
}

// StripVariation removes the first matching variation phrase from text.
// It returns the base name and the removed text with its whitespace collapsed.
func StripVariation(text string) (string, string, bool) {
	for _, pattern := range variationPhrases {
		loc := pattern.FindStringIndex(text)
		if loc == nil {
			continue
		}
		base := strings.TrimSpace(text[:loc[0]] + text[loc[1]:])
		return base, strings.Join(strings.Fields(text[loc[0]:loc[1]]), " "), true
	}
	return text, "", false
}

// Canonicalize reduces a raw label to its canonical base name.
//
// A label the classifier treats as a variation but that no phrase strips
// yields an error wrapping faults.ErrVariationMismatch. The two lists are
// maintained separately and can drift; callers let the error abort the file
// rather than guessing at a name.
func Canonicalize(raw string) (Canonical, error) {
	c := Canonical{Raw: strings.TrimSpace(raw)}
	c.Speaker = StripListener(c.Raw)
	c.Name = c.Speaker
	if IsGlob(c.Speaker) {
		c.Glob = true
		return c, nil
	}
	if !IsVariation(c.Speaker) {
		return c, nil
	}
	base, matched, ok := StripVariation(c.Speaker)
	if !ok {
		return c, faults.Wrap(faults.ErrVariationMismatch, "speakers", "canonicalize", fmt.Sprintf("no variation phrase matches %q", c.Speaker), nil)
	}
	c.Name = base
	c.Variation = strings.TrimSpace(matched)
	return c, nil
}
