// Package synonym holds the static synonym dictionary used to widen a
// search keyword before it is matched against job text.
package synonym

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	// ErrOverlappingGroups is returned when a term is listed in more than one group.
	ErrOverlappingGroups = errors.New("synonym groups overlap")

	// ErrEmptyTerm is returned when a group contains a blank term.
	ErrEmptyTerm = errors.New("synonym group contains empty term")
)

// Table maps a normalized term to the group that owns it.
// It is immutable after construction and safe for concurrent use.
type Table struct {
	groups [][]string
	index  map[string]int
}

// NewTable builds a table from groups. Terms are normalized and deduplicated
// inside a group; a term appearing in two groups is an error.
func NewTable(groups [][]string) (*Table, error) {
	t := &Table{
		groups: make([][]string, 0, len(groups)),
		index:  make(map[string]int),
	}

	for gi, group := range groups {
		members := make([]string, 0, len(group))
		seen := make(map[string]bool, len(group))

		for _, raw := range group {
			term := Normalize(raw)
			if term == "" {
				return nil, fmt.Errorf("group %d: %w", gi, ErrEmptyTerm)
			}
			if seen[term] {
				continue
			}
			if owner, ok := t.index[term]; ok {
				return nil, fmt.Errorf("term %q in groups %d and %d: %w", term, owner, len(t.groups), ErrOverlappingGroups)
			}
			seen[term] = true
			members = append(members, term)
		}

		if len(members) == 0 {
			continue
		}

		id := len(t.groups)
		for _, term := range members {
			t.index[term] = id
		}
		t.groups = append(t.groups, members)
	}

	return t, nil
}

// MustNewTable is NewTable for process startup: a malformed table panics.
func MustNewTable(groups [][]string) *Table {
	t, err := NewTable(groups)
	if err != nil {
		panic(fmt.Sprintf("synonym: %v", err))
	}
	return t
}

// Expand returns every term to search for. An empty keyword yields nil,
// a keyword outside every group yields just the normalized keyword.
// The returned slice is a copy in group order.
func (t *Table) Expand(keyword string) []string {
	term := Normalize(keyword)
	if term == "" {
		return nil
	}

	id, ok := t.index[term]
	if !ok {
		return []string{term}
	}

	group := t.groups[id]
	out := make([]string, len(group))
	copy(out, group)
	return out
}

// Group returns the group owning term, if any.
func (t *Table) Group(term string) ([]string, bool) {
	id, ok := t.index[Normalize(term)]
	if !ok {
		return nil, false
	}
	out := make([]string, len(t.groups[id]))
	copy(out, t.groups[id])
	return out, true
}

// Len reports the number of groups.
func (t *Table) Len() int {
	return len(t.groups)
}

// Normalize trims, NFC-composes and lowercases s.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return strings.ToLower(norm.NFC.String(s))
}

// LoadGroups reads a JSON array of string arrays from path.
func LoadGroups(path string) ([][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read synonyms file: %w", err)
	}

	var groups [][]string
	if err := json.Unmarshal(data, &groups); err != nil {
		return nil, fmt.Errorf("parse synonyms file: %w", err)
	}

	return groups, nil
}
