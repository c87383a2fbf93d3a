package timecode

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	// TicksPerFrame is the clock resolution below a single frame.
	TicksPerFrame = 1000
	// DefaultFrameRate is used whenever a timecode carries no usable rate.
	DefaultFrameRate = 25.0
)

// Timecode is a non-negative tick count plus the frame rate used to render it.
type Timecode struct {
	Ticks int64
	FPS   float64
}

// New constructs a timecode, clamping negative tick counts to zero.
func New(ticks int64, fps float64) Timecode {
	if ticks < 0 {
		ticks = 0
	}
	return Timecode{Ticks: ticks, FPS: fps}
}

// FromFrames converts a whole frame count to a timecode.
func FromFrames(frames int64, fps float64) Timecode {
	return New(frames*TicksPerFrame, fps)
}

// FromSeconds converts a wall-clock duration in seconds to a timecode.
func FromSeconds(seconds float64, fps float64) Timecode {
	rate := normalizeRate(fps)
	return New(int64(math.Round(seconds*rate*TicksPerFrame)), fps)
}

// Parse reads "HH:MM:SS:FF" text at the given frame rate. The frame field must
// be below the frame rate; callers that accept authoring errors should run
// FixFrameOverflow first.
func Parse(value string, fps float64) (Timecode, error) {
	rate := normalizeRate(fps)
	trimmed := strings.TrimSpace(value)
	parts := strings.Split(trimmed, ":")
	if len(parts) != 4 {
		return Timecode{}, fmt.Errorf("parse timecode %q: expected HH:MM:SS:FF", value)
	}
	fields := make([]int64, len(parts))
	for i, part := range parts {
		n, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return Timecode{}, fmt.Errorf("parse timecode %q: field %d: %w", value, i+1, err)
		}
		if n < 0 {
			return Timecode{}, fmt.Errorf("parse timecode %q: negative field %d", value, i+1)
		}
		fields[i] = n
	}
	if fields[1] >= 60 || fields[2] >= 60 {
		return Timecode{}, fmt.Errorf("parse timecode %q: minutes and seconds must be below 60", value)
	}
	if float64(fields[3]) >= math.Ceil(rate) {
		return Timecode{}, fmt.Errorf("parse timecode %q: frame %d out of range for %.3f fps", value, fields[3], rate)
	}
	seconds := fields[0]*3600 + fields[1]*60 + fields[2]
	ticks := math.Round((float64(seconds)*rate + float64(fields[3])) * TicksPerFrame)
	return Timecode{Ticks: int64(ticks), FPS: fps}, nil
}

// MustParse is Parse for literals known to be valid.
func MustParse(value string, fps float64) Timecode {
	tc, err := Parse(value, fps)
	if err != nil {
		panic(err)
	}
	return tc
}

// FixFrameOverflow corrects the authoring error where the frame field equals
// the frame rate (e.g. "00:00:10:25" at 25 fps) by decrementing it by one.
// Any other value is returned trimmed but otherwise unchanged.
func FixFrameOverflow(value string, fps float64) string {
	trimmed := strings.TrimSpace(value)
	parts := strings.Split(trimmed, ":")
	if len(parts) != 4 {
		return trimmed
	}
	frame, err := strconv.Atoi(strings.TrimSpace(parts[3]))
	if err != nil || float64(frame) != fps {
		return trimmed
	}
	parts[3] = fmt.Sprintf("%0*d", len(strings.TrimSpace(parts[3])), frame-1)
	return strings.Join(parts, ":")
}

// ParseFixed applies FixFrameOverflow before parsing.
func ParseFixed(value string, fps float64) (Timecode, error) {
	return Parse(FixFrameOverflow(value, fps), fps)
}

// String renders the timecode as "HH:MM:SS:FF".
func (t Timecode) String() string {
	perSecond := normalizeRate(t.FPS) * TicksPerFrame
	ticks := float64(t.Ticks)
	h := math.Floor(ticks / (3600 * perSecond))
	ticks = math.Mod(ticks, 3600*perSecond)
	m := math.Floor(ticks / (60 * perSecond))
	ticks = math.Mod(ticks, 60*perSecond)
	s := math.Floor(ticks / perSecond)
	ticks = math.Mod(ticks, perSecond)
	f := math.Floor(ticks / TicksPerFrame)
	return fmt.Sprintf("%02d:%02d:%02d:%02d", int64(h), int64(m), int64(s), int64(f))
}

// Frames returns the whole frame count.
func (t Timecode) Frames() int64 {
	return t.Ticks / TicksPerFrame
}

// Seconds returns the wall-clock position in seconds.
func (t Timecode) Seconds() float64 {
	return float64(t.Ticks) / (normalizeRate(t.FPS) * TicksPerFrame)
}

// Add sums tick counts, keeping the receiver's frame rate.
func (t Timecode) Add(other Timecode) Timecode {
	return New(t.Ticks+other.Ticks, t.FPS)
}

// Sub subtracts tick counts, clamping at zero. Use Diff for signed gaps.
func (t Timecode) Sub(other Timecode) Timecode {
	return New(t.Ticks-other.Ticks, t.FPS)
}

// Diff returns t - other in ticks, which may be negative.
func (t Timecode) Diff(other Timecode) int64 {
	return t.Ticks - other.Ticks
}

// Compare orders timecodes by tick count.
func (t Timecode) Compare(other Timecode) int {
	switch {
	case t.Ticks < other.Ticks:
		return -1
	case t.Ticks > other.Ticks:
		return 1
	default:
		return 0
	}
}

// Before reports whether t is earlier than other.
func (t Timecode) Before(other Timecode) bool { return t.Ticks < other.Ticks }

// After reports whether t is later than other.
func (t Timecode) After(other Timecode) bool { return t.Ticks > other.Ticks }

// Equal compares tick counts only.
func (t Timecode) Equal(other Timecode) bool { return t.Ticks == other.Ticks }

// SecondsToTicks scales a duration in seconds to ticks at the given rate.
func SecondsToTicks(seconds float64, fps float64) int64 {
	return int64(math.Round(seconds * TicksPerFrame * normalizeRate(fps)))
}

func normalizeRate(fps float64) float64 {
	if fps <= 0 || math.IsNaN(fps) || math.IsInf(fps, 0) {
		return DefaultFrameRate
	}
	return fps
}
