package speakers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	"adrtools/internal/faults"
	"adrtools/internal/textutil"
)

const (
	// CastMe is the casting sentinel for speakers without a registry entry.
	CastMe = "CAST ME"
	// Unknown is the placeholder character for blank or overflow speakers.
	Unknown = "UNKNOWN"
	// DefaultRatio is the fuzzy-match threshold used for cue normalization.
	DefaultRatio = 75
	// SplitRatio is the stricter threshold used when splitting name lists.
	SplitRatio = 80
)

// Casting is a voice-actor profile: gender plus an age range.
type Casting struct {
	Gender string `json:"gender"`
	Lo     int    `json:"lo"`
	Hi     int    `json:"hi"`
}

// String renders the casting as "{gender}{lo:02}-{hi:02}", e.g. "M25-30".
// An unset casting renders as CastMe.
func (c Casting) String() string {
	if c.IsZero() {
		return CastMe
	}
	return fmt.Sprintf("%s%02d-%02d", c.Gender, c.Lo, c.Hi)
}

// IsZero reports whether no casting has been assigned.
func (c Casting) IsZero() bool {
	return c.Gender == "" && c.Lo == 0 && c.Hi == 0
}

// ParseCasting reads a casting string such as "M25-30" or "F05-10".
func ParseCasting(value string) (Casting, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return Casting{}, errors.New("parse casting: empty value")
	}
	split := strings.IndexFunc(trimmed, unicode.IsDigit)
	if split <= 0 {
		return Casting{}, fmt.Errorf("parse casting %q: expected gender prefix", value)
	}
	gender := strings.TrimSpace(trimmed[:split])
	bounds := strings.SplitN(trimmed[split:], "-", 2)
	if len(bounds) != 2 {
		return Casting{}, fmt.Errorf("parse casting %q: expected lo-hi range", value)
	}
	lo, err := strconv.Atoi(strings.TrimSpace(bounds[0]))
	if err != nil {
		return Casting{}, fmt.Errorf("parse casting %q: lo: %w", value, err)
	}
	hi, err := strconv.Atoi(strings.TrimSpace(bounds[1]))
	if err != nil {
		return Casting{}, fmt.Errorf("parse casting %q: hi: %w", value, err)
	}
	return Casting{Gender: gender, Lo: lo, Hi: hi}, nil
}

// Alias is a discovered name variant and its similarity to the entry name.
type Alias struct {
	Ratio int    `json:"ratio"`
	Alias string `json:"alias"`
}

// Entry is one character in the casting registry.
type Entry struct {
	Name      string   `json:"name"`
	Nicknames []string `json:"nicknames"`
	Casting   Casting  `json:"casting"`
	// Ignore lists names that must never fuzzy-resolve to this entry.
	Ignore  []string `json:"ignore,omitempty"`
	Aliases []Alias  `json:"aliases,omitempty"`
}

// Ignores reports whether name is one of the entry's ignore aliases.
func (e Entry) Ignores(name string) bool {
	for _, ignored := range e.Ignore {
		if textutil.EqualFold(ignored, name) {
			return true
		}
	}
	return false
}

// Answers reports whether name equals the entry name or one of its nicknames.
func (e Entry) Answers(name string) bool {
	if textutil.EqualFold(e.Name, name) {
		return true
	}
	for _, nick := range e.Nicknames {
		if textutil.EqualFold(nick, name) {
			return true
		}
	}
	return false
}

// Registry is the casting configuration document. It is read-only once loaded.
type Registry struct {
	Speakers []Entry `json:"speakers"`
}

// LoadRegistry reads and validates a registry file. Every failure is a
// configuration error.
func LoadRegistry(path string) (*Registry, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, faults.Wrap(faults.ErrConfiguration, "speakers", "load registry", "registry path is empty", nil)
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, faults.Wrap(faults.ErrConfiguration, "speakers", "load registry", path, err)
	}
	defer file.Close()

	reg, err := DecodeRegistry(file)
	if err != nil {
		return nil, faults.Wrap(faults.ErrConfiguration, "speakers", "load registry", path, err)
	}
	return reg, nil
}

// DecodeRegistry parses a registry JSON document.
func DecodeRegistry(r io.Reader) (*Registry, error) {
	var reg Registry
	dec := json.NewDecoder(r)
	if err := dec.Decode(&reg); err != nil {
		return nil, fmt.Errorf("decode registry: %w", err)
	}
	if err := reg.Validate(); err != nil {
		return nil, err
	}
	return &reg, nil
}

// Validate ensures every entry is addressable.
func (r *Registry) Validate() error {
	if r == nil {
		return errors.New("registry is nil")
	}
	for i, entry := range r.Speakers {
		if strings.TrimSpace(entry.Name) == "" {
			return fmt.Errorf("speakers[%d]: name must be set", i)
		}
	}
	return nil
}

// Encode writes the registry as indented JSON.
func (r *Registry) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return enc.Encode(r)
}
