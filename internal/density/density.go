// Package density measures how much dialogue falls into each slice of a
// programme's runtime.
package density

import (
	"bufio"
	"io"
	"math"
	"strconv"
	"strings"

	"adrtools/internal/script"
	"adrtools/internal/timecode"
)

// DefaultWindows is the number of equal-width windows a runtime is cut into.
const DefaultWindows = 100

// Sample is the accumulated cue weight of one window.
type Sample struct {
	Frame      int
	FrameStart int64
	Value      float64
}

// Options configures an Analyzer.
type Options struct {
	Windows int
	FPS     float64
	// RuntimeSeconds, when positive, replaces the latest cue end as the total runtime.
	RuntimeSeconds float64
}

// Analyzer computes cue density windows.
type Analyzer struct {
	windows int
	fps     float64
	runtime float64
}

// NewAnalyzer builds an analyzer; zero options select the defaults.
func NewAnalyzer(opts Options) *Analyzer {
	windows := opts.Windows
	if windows <= 0 {
		windows = DefaultWindows
	}
	fps := opts.FPS
	if fps <= 0 {
		fps = timecode.DefaultFrameRate
	}
	return &Analyzer{windows: windows, fps: fps, runtime: opts.RuntimeSeconds}
}

// TotalFrames returns the frame count the windows partition.
func (a *Analyzer) TotalFrames(cues []script.Cue) int64 {
	if a.runtime > 0 {
		return int64(math.Round(a.runtime * a.fps))
	}
	var latest int64
	for _, cue := range cues {
		_, end := cue.Region.Bounds()
		latest = max(latest, end.Frames())
	}
	return latest
}

// Analyze returns one sample per window. Each cue adds, to every window it
// overlaps, the overlap divided by the shorter of the cue and the window, so
// a cue covering a whole window adds exactly 1 there. Zero-length cues add
// nothing.
//
// This is not a split of each cue by its own length: a cue shorter than a
// window contributes 1 in total, while a cue spanning several windows
// contributes about cueLength/windowSize, once per window it covers.
func (a *Analyzer) Analyze(cues []script.Cue) []Sample {
	size := a.TotalFrames(cues) / int64(a.windows)
	if size <= 0 {
		size = 1
	}
	samples := make([]Sample, a.windows)
	for i := range samples {
		samples[i] = Sample{Frame: i, FrameStart: int64(i) * size}
	}

	limit := int64(a.windows) * size
	for _, cue := range cues {
		lo, hi := cue.Region.Bounds()
		start, end := lo.Frames(), min(hi.Frames(), limit)
		length := hi.Frames() - lo.Frames()
		if length <= 0 || start >= end {
			continue
		}
		norm := float64(min(length, size))
		for w := start / size; w <= (end-1)/size; w++ {
			ws := w * size
			overlap := min(end, ws+size) - max(start, ws)
			if overlap <= 0 {
				continue
			}
			samples[w].Value += float64(overlap) / norm
		}
	}
	return samples
}

// Write emits the labelled frame, frame_start and value rows, tab-separated.
func Write(w io.Writer, samples []Sample) error {
	frames := []string{"frame"}
	starts := []string{"frame_start"}
	values := []string{"value"}
	for _, s := range samples {
		frames = append(frames, strconv.Itoa(s.Frame))
		starts = append(starts, strconv.FormatInt(s.FrameStart, 10))
		values = append(values, strconv.FormatFloat(s.Value, 'f', -1, 64))
	}
	bw := bufio.NewWriter(w)
	for _, row := range [][]string{frames, starts, values} {
		if _, err := bw.WriteString(strings.Join(row, "\t") + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}
