package timecode

import "fmt"

// Region is an interval between two timecodes sharing one frame rate.
type Region struct {
	Start Timecode
	End   Timecode
}

// NewRegion pairs two timecodes without reordering them.
func NewRegion(start, end Timecode) Region {
	return Region{Start: start, End: end}
}

// ParseRegion parses both bounds at the same frame rate, applying the frame
// overflow correction to each.
func ParseRegion(tcin, tcout string, fps float64) (Region, error) {
	start, err := ParseFixed(tcin, fps)
	if err != nil {
		return Region{}, fmt.Errorf("region start: %w", err)
	}
	end, err := ParseFixed(tcout, fps)
	if err != nil {
		return Region{}, fmt.Errorf("region end: %w", err)
	}
	return Region{Start: start, End: end}, nil
}

// FPS returns the frame rate carried by the start bound.
func (r Region) FPS() float64 {
	return r.Start.FPS
}

// Duration is max(start, end) - min(start, end) in ticks.
func (r Region) Duration() int64 {
	lo, hi := r.Bounds()
	return hi.Ticks - lo.Ticks
}

// Bounds returns the region's bounds in ascending order.
func (r Region) Bounds() (Timecode, Timecode) {
	if r.End.Before(r.Start) {
		return r.End, r.Start
	}
	return r.Start, r.End
}

func (r Region) String() string {
	return fmt.Sprintf("%s --> %s", r.Start, r.End)
}

// Span covers a sequence of regions from the first start to the last end.
// The sequence is expected in time order; an empty sequence yields a zero region.
func Span(regions []Region) Region {
	if len(regions) == 0 {
		return Region{}
	}
	return Region{Start: regions[0].Start, End: regions[len(regions)-1].End}
}
