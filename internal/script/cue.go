package script

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"adrtools/internal/faults"
	"adrtools/internal/timecode"
)

// Header is the column title record written before cue rows.
var Header = []string{"#", "tcin", "tcout", "character", "actor", "line"}

// Cue is one timed, attributed line of dialogue.
type Cue struct {
	ID        int
	Region    timecode.Region
	Character string
	Casting   string
	// Line carries the "[CHARACTER] " label prefix.
	Line string
}

// Start returns the cue's start timecode.
func (c Cue) Start() timecode.Timecode { return c.Region.Start }

// End returns the cue's end timecode.
func (c Cue) End() timecode.Timecode { return c.Region.End }

// Duration returns the cue length in ticks.
func (c Cue) Duration() int64 { return c.Region.Duration() }

// Record renders the cue as output columns.
func (c Cue) Record() []string {
	return []string{
		strconv.Itoa(c.ID),
		c.Region.Start.String(),
		c.Region.End.String(),
		c.Character,
		c.Casting,
		c.Line,
	}
}

// WriteCues writes the header record followed by one tab-separated row per cue.
func WriteCues(w io.Writer, cues []Cue) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(strings.Join(Header, "\t") + "\n"); err != nil {
		return err
	}
	for _, cue := range cues {
		if _, err := bw.WriteString(strings.Join(cue.Record(), "\t") + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadCues parses cue rows written by WriteCues. Lines starting with '#' and
// blank lines are skipped.
func ReadCues(r io.Reader, fps float64) ([]Cue, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	var (
		cues   []Cue
		lineNo int
	)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.SplitN(line, "\t", len(Header))
		if len(fields) != len(Header) {
			return nil, faults.Wrap(faults.ErrRowParse, "script", "read cues", fmt.Sprintf("line %d: expected %d columns, got %d", lineNo, len(Header), len(fields)), nil)
		}
		id, err := strconv.Atoi(strings.TrimSpace(fields[0]))
		if err != nil {
			return nil, faults.Wrap(faults.ErrRowParse, "script", "read cues", fmt.Sprintf("line %d: id", lineNo), err)
		}
		region, err := timecode.ParseRegion(fields[1], fields[2], fps)
		if err != nil {
			return nil, faults.Wrap(faults.ErrRowParse, "script", "read cues", fmt.Sprintf("line %d", lineNo), err)
		}
		cues = append(cues, Cue{
			ID:        id,
			Region:    region,
			Character: fields[3],
			Casting:   fields[4],
			Line:      fields[5],
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, faults.Wrap(faults.ErrRowParse, "script", "read cues", "", err)
	}
	return cues, nil
}
