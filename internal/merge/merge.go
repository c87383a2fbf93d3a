// Package merge combines consecutive cues of one character into takes of a
// comfortable length for voice actors.
package merge

import (
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"adrtools/internal/logging"
	"adrtools/internal/script"
	"adrtools/internal/textutil"
	"adrtools/internal/timecode"
)

const (
	DefaultIdealSeconds = 5.0
	DefaultMaxSeconds   = 8.0
	// DefaultMaxGapTicks is the largest gap between cues that still counts as
	// one continuous take.
	DefaultMaxGapTicks = 500
)

var labelPrefix = regexp.MustCompile(`^\[[^\]]*\]\s*`)

// Options configures a Merger.
type Options struct {
	FPS          float64
	IdealSeconds float64
	MaxSeconds   float64
	MaxGapTicks  int64
	// Exclude lists characters whose cues are only flushed at the end of
	// their group.
	Exclude []string
	Logger  *slog.Logger
}

// Merger groups cues by character and flushes takes per the ideal and
// maximum durations.
type Merger struct {
	ideal   int64
	max     int64
	maxGap  int64
	exclude []string
	logger  *slog.Logger
}

// New builds a merger. Zero durations select the defaults; a negative gap
// disables shared-boundary detection.
func New(opts Options) *Merger {
	ideal := opts.IdealSeconds
	if ideal <= 0 {
		ideal = DefaultIdealSeconds
	}
	maxSeconds := opts.MaxSeconds
	if maxSeconds <= 0 {
		maxSeconds = DefaultMaxSeconds
	}
	gap := opts.MaxGapTicks
	if gap == 0 {
		gap = DefaultMaxGapTicks
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Merger{
		ideal:   timecode.SecondsToTicks(ideal, opts.FPS),
		max:     timecode.SecondsToTicks(maxSeconds, opts.FPS),
		maxGap:  gap,
		exclude: append([]string(nil), opts.Exclude...),
		logger:  logger,
	}
}

// Merge returns merged cues ordered by start time with ids numbered from 0.
// The input is not modified.
func (m *Merger) Merge(cues []script.Cue) []script.Cue {
	var merged []script.Cue
	for _, group := range groupByCharacter(cues) {
		merged = append(merged, m.mergeGroup(group)...)
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Start().Before(merged[j].Start())
	})
	for i := range merged {
		merged[i].ID = i
	}
	return merged
}

func (m *Merger) excluded(character string) bool {
	for _, name := range m.exclude {
		if textutil.EqualFold(name, character) {
			return true
		}
	}
	return false
}

func (m *Merger) mergeGroup(group []script.Cue) []script.Cue {
	var (
		out      []script.Cue
		open     []script.Cue
		start    timecode.Timecode
		acc      int64
		excluded = m.excluded(group[0].Character)
	)
	for i, cue := range group {
		if len(open) == 0 {
			start = cue.Start()
			acc = 0
		}
		open = append(open, cue)
		acc += cue.End().Diff(start)

		last := i == len(group)-1
		flush := last
		if !last && !excluded {
			next := group[i+1]
			projected := next.End().Diff(start)
			mergeEarly := projected >= m.ideal
			sharedBoundary := next.Start().Diff(cue.End()) <= m.maxGap
			exceedsMax := projected >= m.max
			flush = (acc >= m.ideal && !sharedBoundary) ||
				(mergeEarly && !sharedBoundary) ||
				exceedsMax
			if flush {
				m.logger.Debug("flushing take",
					logging.String("character", cue.Character),
					logging.Int("cues", len(open)),
					logging.Int64("accumulated_ticks", acc),
					logging.Bool("merge_early", mergeEarly),
					logging.Bool("shared_boundary", sharedBoundary),
					logging.Bool("exceeds_max", exceedsMax),
				)
			}
		}
		if flush {
			out = append(out, combine(open))
			open = nil
		}
	}
	return out
}

// combine spans the open cues and joins their text under the last cue's label.
func combine(open []script.Cue) script.Cue {
	last := open[len(open)-1]
	texts := make([]string, 0, len(open))
	for _, cue := range open {
		if text := strings.TrimSpace(labelPrefix.ReplaceAllString(cue.Line, "")); text != "" {
			texts = append(texts, text)
		}
	}
	return script.Cue{
		Region:    timecode.NewRegion(open[0].Start(), last.End()),
		Character: last.Character,
		Casting:   last.Casting,
		Line:      "[" + textutil.Upper(last.Character) + "] " + strings.Join(texts, " "),
	}
}

// groupByCharacter buckets cues in order of first appearance and sorts each
// bucket by start time.
func groupByCharacter(cues []script.Cue) [][]script.Cue {
	index := make(map[string]int)
	var groups [][]script.Cue
	for _, cue := range cues {
		pos, ok := index[cue.Character]
		if !ok {
			pos = len(groups)
			index[cue.Character] = pos
			groups = append(groups, nil)
		}
		groups[pos] = append(groups[pos], cue)
	}
	for _, group := range groups {
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Start().Before(group[j].Start())
		})
	}
	return groups
}
