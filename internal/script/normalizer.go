package script

import (
	"fmt"
	"log/slog"
	"strings"

	"adrtools/internal/faults"
	"adrtools/internal/logging"
	"adrtools/internal/speakers"
	"adrtools/internal/textutil"
	"adrtools/internal/timecode"
)

const (
	// SegmentDelimiter separates the line snippets of a multi-speaker row.
	SegmentDelimiter = "- "
	// NoLine marks a stub that received no segment; such stubs are dropped.
	NoLine = "(NO LINE)"
)

// Options configures a Normalizer.
type Options struct {
	// FPS is the frame rate used to parse row timecodes.
	FPS float64
	// StartID is the id given to the first kept cue.
	StartID int
	Logger  *slog.Logger
}

// Normalizer converts rows to cues. It holds no per-document state.
type Normalizer struct {
	resolver *speakers.Resolver
	fps      float64
	startID  int
	logger   *slog.Logger
}

// NewNormalizer builds a normalizer backed by resolver.
func NewNormalizer(resolver *speakers.Resolver, opts Options) *Normalizer {
	fps := opts.FPS
	if fps <= 0 {
		fps = timecode.DefaultFrameRate
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Normalizer{resolver: resolver, fps: fps, startID: opts.StartID, logger: logger}
}

// Normalize reads every row from src and returns the flat cue sequence in
// row order.
func (n *Normalizer) Normalize(src RowSource) ([]Cue, error) {
	rows, err := src.Rows()
	if err != nil {
		return nil, err
	}
	var (
		cues []Cue
		next = n.startID
	)
	for _, row := range rows {
		rowCues, after, err := n.NormalizeRow(row, next)
		if err != nil {
			return nil, err
		}
		cues = append(cues, rowCues...)
		next = after
	}
	return cues, nil
}

type stub struct {
	character string
	casting   string
	glob      bool
	line      string
}

func (s stub) label() string {
	return "[" + textutil.Upper(s.character) + "]"
}

// NormalizeRow turns one row into cues numbered from nextID and returns the
// id following the last kept cue.
func (n *Normalizer) NormalizeRow(row Row, nextID int) ([]Cue, int, error) {
	fields, err := requireFields(row)
	if err != nil {
		return nil, nextID, err
	}
	region, err := timecode.ParseRegion(fields[FieldTCIn], fields[FieldTCOut], n.fps)
	if err != nil {
		return nil, nextID, faults.Wrap(faults.ErrRowParse, "script", "parse timecodes", fmt.Sprintf("row %d", row.Number), err)
	}

	stubs, err := n.speakerStubs(row.Number, fields[FieldSpeaker])
	if err != nil {
		return nil, nextID, err
	}
	declared := len(stubs)

	for i, segment := range splitSegments(fields[FieldLine]) {
		target := min(i, declared-1)
		current := stubs[target]
		switch {
		case current.line == "":
			stubs[target].line = current.label() + " " + segment
		case current.glob:
			stubs[target].line = current.line + " - " + segment
		default:
			overflow := stub{character: speakers.Unknown, casting: speakers.CastMe}
			overflow.line = overflow.label() + " " + segment
			stubs = append(stubs, overflow)
		}
	}

	cues := make([]Cue, 0, len(stubs))
	for _, s := range stubs {
		if s.line == "" {
			s.line = s.label() + " " + NoLine
		}
		if strings.HasSuffix(s.line, NoLine) {
			n.logger.Debug("dropping speaker without line",
				logging.String("character", s.character),
				logging.Int("row", row.Number),
			)
			continue
		}
		cues = append(cues, Cue{
			ID:        nextID,
			Region:    region,
			Character: textutil.Upper(s.character),
			Casting:   s.casting,
			Line:      s.line,
		})
		nextID++
	}
	return cues, nextID, nil
}

func (n *Normalizer) speakerStubs(rowNumber int, field string) ([]stub, error) {
	var tokens []string
	for _, token := range strings.Split(field, ",") {
		if strings.TrimSpace(token) != "" {
			tokens = append(tokens, token)
		}
	}
	if len(tokens) == 0 {
		tokens = []string{speakers.Unknown}
	}
	stubs := make([]stub, 0, len(tokens))
	for _, token := range tokens {
		res, err := n.resolver.Resolve(speakers.StripListener(token))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNumber, err)
		}
		if !res.Resolved() && !res.Glob() && res.Name != speakers.Unknown {
			n.logger.Debug("speaker not in registry",
				logging.String("speaker", res.Name),
				logging.String("match", res.Match.String()),
				logging.Int("row", rowNumber),
			)
		}
		stubs = append(stubs, stub{character: res.Name, casting: res.Casting, glob: res.Glob()})
	}
	return stubs, nil
}

func requireFields(row Row) (map[FieldKey]string, error) {
	fields := make(map[FieldKey]string, len(RequiredFields))
	for _, key := range RequiredFields {
		text, ok := row.Get(key)
		if !ok {
			return nil, faults.Wrap(faults.ErrRowParse, "script", "read row", fmt.Sprintf("row %d: missing %s", row.Number, key), nil)
		}
		fields[key] = text
	}
	return fields, nil
}

// splitSegments splits a line cell on SegmentDelimiter and drops blank
// segments, so a leading dash does not consume a speaker. Runs of whitespace
// inside a segment, line breaks included, collapse to one space.
func splitSegments(text string) []string {
	var segments []string
	for _, part := range strings.Split(text, SegmentDelimiter) {
		if part = strings.Join(strings.Fields(part), " "); part != "" {
			segments = append(segments, part)
		}
	}
	return segments
}
