// Package city canonicalizes free-text city input against a fixed list of
// city names.
package city

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Gazetteer is an ordered, read-only list of canonical city names.
type Gazetteer struct {
	names []string
	keys  []string
}

// NewGazetteer keeps the order of names; earlier entries win on collisions.
func NewGazetteer(names []string) *Gazetteer {
	g := &Gazetteer{
		names: make([]string, 0, len(names)),
		keys:  make([]string, 0, len(names)),
	}
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		g.names = append(g.names, name)
		g.keys = append(g.keys, fold(name))
	}
	return g
}

// Normalize returns the canonically cased entry equal to input ignoring case
// and surrounding whitespace. ok is false when nothing matches; callers drop
// the city filter in that case.
func (g *Gazetteer) Normalize(input string) (string, bool) {
	key := fold(input)
	if key == "" {
		return "", false
	}
	for i, k := range g.keys {
		if k == key {
			return g.names[i], true
		}
	}
	return "", false
}

// Names returns a copy of the canonical names.
func (g *Gazetteer) Names() []string {
	out := make([]string, len(g.names))
	copy(out, g.names)
	return out
}

func fold(s string) string {
	return strings.ToLower(norm.NFC.String(strings.TrimSpace(s)))
}

// LoadGazetteer reads a JSON array of city names from path.
func LoadGazetteer(path string) (*Gazetteer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read cities file: %w", err)
	}

	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return nil, fmt.Errorf("parse cities file: %w", err)
	}

	return NewGazetteer(names), nil
}
