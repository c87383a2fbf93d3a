package script

import "strings"

// FieldKey names a column understood by the normalizer.
type FieldKey string

const (
	FieldTCIn    FieldKey = "tcin"
	FieldTCOut   FieldKey = "tcout"
	FieldSpeaker FieldKey = "speaker"
	FieldLine    FieldKey = "line"
)

// RequiredFields lists the keys every row must carry.
var RequiredFields = []FieldKey{FieldTCIn, FieldTCOut, FieldSpeaker, FieldLine}

// Field is one tagged cell.
type Field struct {
	Key  FieldKey
	Text string
}

// Row is one detected dialogue entry.
type Row struct {
	// Number is the 1-based position of the row in its document.
	Number int
	Fields []Field
}

// Get returns the first cell tagged with key.
func (r Row) Get(key FieldKey) (string, bool) {
	for _, f := range r.Fields {
		if f.Key == key {
			return f.Text, true
		}
	}
	return "", false
}

// Blank reports whether every cell is empty.
func (r Row) Blank() bool {
	for _, f := range r.Fields {
		if strings.TrimSpace(f.Text) != "" {
			return false
		}
	}
	return true
}

// RowSource yields the rows of one document in order.
type RowSource interface {
	Rows() ([]Row, error)
}

// Rows is an in-memory RowSource.
type Rows []Row

// Rows returns the receiver.
func (r Rows) Rows() ([]Row, error) {
	return r, nil
}
