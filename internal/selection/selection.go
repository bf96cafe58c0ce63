// Package selection tracks which catalog option the user chose per category.
package selection

import (
	"errors"
	"fmt"
	"strings"

	"github.com/quantumvedas/yajur/internal/catalog"
)

var (
	// ErrUnknownCategory is returned when selecting into a category the catalog lacks.
	ErrUnknownCategory = errors.New("unknown category")
	// ErrUnknownOption is returned when the value is not listed for the category.
	ErrUnknownOption = errors.New("unknown option")
)

// Entry is one chosen category/value pair.
type Entry struct {
	Category string
	Value    string
}

// State maps categories to chosen values, remembering the order in which
// categories were first chosen.
type State struct {
	catalog catalog.Catalog
	order   []string
	values  map[string]string
}

// New creates an empty selection bound to a catalog.
func New(c catalog.Catalog) *State {
	return &State{
		catalog: c,
		values:  make(map[string]string),
	}
}

// Select sets the value for a category. Overwriting keeps the category's
// original position.
func (s *State) Select(category, value string) error {
	if _, ok := s.catalog.Options(category); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	if !s.catalog.Has(category, value) {
		return fmt.Errorf("%w: %q is not a %s option", ErrUnknownOption, value, category)
	}

	if _, exists := s.values[category]; !exists {
		s.order = append(s.order, category)
	}
	s.values[category] = value
	return nil
}

// Get returns the chosen value for a category.
func (s *State) Get(category string) (string, bool) {
	v, ok := s.values[category]
	return v, ok
}

// IsEmpty reports whether nothing has been chosen yet.
func (s *State) IsEmpty() bool {
	return len(s.order) == 0
}

// Len returns the number of chosen categories.
func (s *State) Len() int {
	return len(s.order)
}

// Entries returns the chosen pairs in selection order.
func (s *State) Entries() []Entry {
	entries := make([]Entry, 0, len(s.order))
	for _, cat := range s.order {
		entries = append(entries, Entry{Category: cat, Value: s.values[cat]})
	}
	return entries
}

// ParseAssignment splits "Category=Value" into an Entry.
func ParseAssignment(s string) (Entry, error) {
	cat, val, ok := strings.Cut(s, "=")
	if !ok {
		return Entry{}, fmt.Errorf("expected Category=Value, got %q", s)
	}
	cat = strings.TrimSpace(cat)
	val = strings.TrimSpace(val)
	if cat == "" || val == "" {
		return Entry{}, fmt.Errorf("expected Category=Value, got %q", s)
	}
	return Entry{Category: cat, Value: val}, nil
}
