package script

import (
	"sort"
	"strings"

	"adrtools/internal/speakers"
	"adrtools/internal/textutil"
)

// CollectNames gathers the distinct speaker cells of rows, upper-cased and
// sorted. With split set each cell is broken into individual speaker and
// listener names first.
func CollectNames(rows []Row, split bool) []string {
	seen := make(map[string]struct{})
	for _, row := range rows {
		cell, ok := row.Get(FieldSpeaker)
		if !ok || strings.TrimSpace(cell) == "" {
			continue
		}
		names := []string{cell}
		if split {
			names = speakers.Names(speakers.ParseExpression(cell))
		}
		for _, name := range names {
			if name = textutil.Upper(name); name != "" {
				seen[name] = struct{}{}
			}
		}
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// LineExample is a row in which a character addresses someone.
type LineExample struct {
	Character string `json:"character"`
	Source    string `json:"source"`
	Row       int    `json:"row"`
	TCIn      string `json:"tcin"`
	TCOut     string `json:"tcout"`
	Line      string `json:"line"`
}

// FindLineExamples returns up to limit rows per character whose speaker cell
// begins with "<character> to". A non-positive limit means no limit.
func FindLineExamples(source string, rows []Row, characters []string, limit int) []LineExample {
	var out []LineExample
	for _, character := range characters {
		prefix := textutil.Fold(character) + " to"
		found := 0
		for _, row := range rows {
			if limit > 0 && found >= limit {
				break
			}
			cell, _ := row.Get(FieldSpeaker)
			if !strings.HasPrefix(textutil.Fold(cell), prefix) {
				continue
			}
			tcin, _ := row.Get(FieldTCIn)
			tcout, _ := row.Get(FieldTCOut)
			line, _ := row.Get(FieldLine)
			out = append(out, LineExample{
				Character: character,
				Source:    source,
				Row:       row.Number,
				TCIn:      strings.TrimSpace(tcin),
				TCOut:     strings.TrimSpace(tcout),
				Line:      strings.TrimSpace(line),
			})
			found++
		}
	}
	return out
}
