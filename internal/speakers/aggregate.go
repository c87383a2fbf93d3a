package speakers

import (
	"errors"
	"math"
	"strings"
)

// Sample is one observed casting for a character.
type Sample struct {
	Gender string
	Lo     int
	Hi     int
}

// AggregateCasting collapses observed samples into one casting: the modal
// gender and the mean bounds rounded to the nearest multiple of five. A
// degenerate range is widened downwards by 5 years for M/F and 3 otherwise.
func AggregateCasting(samples []Sample) (Casting, error) {
	if len(samples) == 0 {
		return Casting{}, errors.New("aggregate casting: no samples")
	}
	genders := make([]string, 0, len(samples))
	var loSum, hiSum float64
	for _, s := range samples {
		genders = append(genders, strings.ToUpper(strings.TrimSpace(s.Gender)))
		loSum += float64(s.Lo)
		hiSum += float64(s.Hi)
	}
	n := float64(len(samples))
	gender := mode(genders)
	lo := RoundNearest(loSum/n, 5)
	hi := RoundNearest(hiSum/n, 5)
	if lo >= hi {
		if gender == "M" || gender == "F" {
			lo = hi - 5
		} else {
			lo = hi - 3
		}
	}
	return Casting{Gender: gender, Lo: lo, Hi: hi}, nil
}

// RoundNearest rounds x to the nearest multiple of base, halves to even.
func RoundNearest(x float64, base int) int {
	if base <= 0 {
		return int(math.RoundToEven(x))
	}
	b := float64(base)
	return int(b * math.RoundToEven(x/b))
}

// mode returns the most frequent value; ties go to the value seen first.
func mode(values []string) string {
	counts := make(map[string]int, len(values))
	best := ""
	bestCount := 0
	for _, v := range values {
		counts[v]++
	}
	for _, v := range values {
		if counts[v] > bestCount {
			best = v
			bestCount = counts[v]
		}
	}
	return best
}
