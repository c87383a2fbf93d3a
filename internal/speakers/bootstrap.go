package speakers

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Character is one line of a characters file: a name and its nicknames.
type Character struct {
	Name      string
	Nicknames []string
}

// CastingSample is one observed casting for a named character.
type CastingSample struct {
	Name   string
	Sample Sample
}

// ParseCharacters reads tab-separated "name<TAB>nick<TAB>nick..." lines.
// Blank lines and lines starting with '#' are skipped.
func ParseCharacters(r io.Reader) ([]Character, error) {
	var out []Character
	err := scanLines(r, func(lineNo int, fields []string) error {
		name := strings.TrimSpace(fields[0])
		if name == "" {
			return fmt.Errorf("line %d: character name is empty", lineNo)
		}
		c := Character{Name: name, Nicknames: []string{}}
		for _, nick := range fields[1:] {
			if nick = strings.TrimSpace(nick); nick != "" {
				c.Nicknames = append(c.Nicknames, nick)
			}
		}
		out = append(out, c)
		return nil
	})
	return out, err
}

// ParseCastingSamples reads tab-separated "name<TAB>M25-30" lines.
func ParseCastingSamples(r io.Reader) ([]CastingSample, error) {
	var out []CastingSample
	err := scanLines(r, func(lineNo int, fields []string) error {
		if len(fields) < 2 {
			return fmt.Errorf("line %d: expected name and casting", lineNo)
		}
		casting, err := ParseCasting(fields[1])
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
		out = append(out, CastingSample{
			Name:   strings.TrimSpace(fields[0]),
			Sample: Sample{Gender: casting.Gender, Lo: casting.Lo, Hi: casting.Hi},
		})
		return nil
	})
	return out, err
}

// ParseNames reads one name per line.
func ParseNames(r io.Reader) ([]string, error) {
	var out []string
	err := scanLines(r, func(_ int, fields []string) error {
		if name := strings.TrimSpace(strings.Join(fields, " ")); name != "" {
			out = append(out, name)
		}
		return nil
	})
	return out, err
}

func scanLines(r io.Reader, fn func(lineNo int, fields []string) error) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		if err := fn(lineNo, strings.Split(line, "\t")); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// BootstrapInput gathers everything needed to build a registry from scratch.
type BootstrapInput struct {
	Characters []Character
	Castings   []CastingSample
	// Names is the free-text list scanned for aliases.
	Names []string
	// Ratio is the threshold for both sample matching and alias discovery.
	Ratio int
}

// BootstrapResult is the generated registry plus samples that matched nobody.
type BootstrapResult struct {
	Registry  *Registry
	Unmatched []string
}

// Bootstrap builds a registry: samples are assigned to characters by name,
// nickname or fuzzy match and aggregated, aliases are discovered in
// character-file order, and entries are sorted by name.
func Bootstrap(in BootstrapInput) (BootstrapResult, error) {
	ratio := in.Ratio
	if ratio <= 0 {
		ratio = SplitRatio
	}
	entries := make([]Entry, 0, len(in.Characters))
	for _, c := range in.Characters {
		entries = append(entries, Entry{
			Name:      c.Name,
			Nicknames: append([]string{}, c.Nicknames...),
			Ignore:    []string{},
		})
	}

	resolver := NewResolver(&Registry{Speakers: entries}, ratio)
	samples := make(map[string][]Sample, len(entries))
	var unmatched []string
	for _, cs := range in.Castings {
		name, ok := resolver.assign(cs.Name)
		if !ok {
			unmatched = append(unmatched, cs.Name)
			continue
		}
		samples[name] = append(samples[name], cs.Sample)
	}
	for i := range entries {
		obs := samples[entries[i].Name]
		if len(obs) == 0 {
			continue
		}
		casting, err := AggregateCasting(obs)
		if err != nil {
			return BootstrapResult{}, fmt.Errorf("bootstrap %s: %w", entries[i].Name, err)
		}
		entries[i].Casting = casting
	}

	targets := make([]string, 0, len(entries))
	for _, e := range entries {
		targets = append(targets, e.Name)
	}
	for i, set := range FindAliases(targets, in.Names, ratio) {
		entries[i].Aliases = set.Aliases
	}

	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return BootstrapResult{Registry: &Registry{Speakers: entries}, Unmatched: unmatched}, nil
}

// assign maps a sample name to an entry name without the ignore/variation
// handling used for script speakers.
func (r *Resolver) assign(name string) (string, bool) {
	if entry, _, ok := r.lookup(name); ok {
		return entry.Name, true
	}
	if entry, _, ok := r.closest(name); ok {
		return entry.Name, true
	}
	return "", false
}
