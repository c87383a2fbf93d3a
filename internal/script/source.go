package script

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"sort"
	"strings"

	"adrtools/internal/faults"
)

// DelimitedSource reads rows from a delimited text export (tab-separated by
// default) whose first non-blank record is a header row.
type DelimitedSource struct {
	Path   string
	Schema Schema
	Comma  rune
}

// NewDelimitedSource returns a tab-separated source for path.
func NewDelimitedSource(path string, schema Schema) *DelimitedSource {
	return &DelimitedSource{Path: path, Schema: schema, Comma: '\t'}
}

// Rows reads the file. Any structural problem is a row parse failure.
func (s *DelimitedSource) Rows() ([]Row, error) {
	file, err := os.Open(s.Path)
	if err != nil {
		return nil, faults.Wrap(faults.ErrRowParse, "script", "open rows", s.Path, err)
	}
	defer file.Close()
	rows, err := s.decode(file)
	if err != nil {
		return nil, faults.Wrap(faults.ErrRowParse, "script", "read rows", s.Path, err)
	}
	return rows, nil
}

// Decode reads rows from r using the source's schema and delimiter.
func (s *DelimitedSource) Decode(r io.Reader) ([]Row, error) {
	rows, err := s.decode(r)
	if err != nil {
		return nil, faults.Wrap(faults.ErrRowParse, "script", "read rows", "", err)
	}
	return rows, nil
}

func (s *DelimitedSource) decode(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.Comma = s.Comma
	if reader.Comma == 0 {
		reader.Comma = '\t'
	}
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	schema := s.Schema
	if schema == nil {
		schema = DefaultSchema()
	}

	var (
		columns map[int]FieldKey
		order   []int
		rows    []Row
		number  int
	)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if columns == nil {
			if blankRecord(record) {
				continue
			}
			if columns, err = schema.Columns(record); err != nil {
				return nil, err
			}
			for idx := range columns {
				order = append(order, idx)
			}
			sort.Ints(order)
			continue
		}
		number++
		row := Row{Number: number, Fields: make([]Field, 0, len(order))}
		for _, idx := range order {
			text := ""
			if idx < len(record) {
				text = record[idx]
			}
			row.Fields = append(row.Fields, Field{Key: columns[idx], Text: text})
		}
		if row.Blank() {
			continue
		}
		rows = append(rows, row)
	}
	if columns == nil {
		return nil, errors.New("no header row")
	}
	return rows, nil
}

func blankRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
