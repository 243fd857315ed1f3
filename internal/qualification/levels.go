// Package qualification holds the ordered vocabulary of education levels.
// Position in the vocabulary is the only ordering used when candidates are
// compared against job qualification bounds.
package qualification

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownQualification is returned when a level is not part of the vocabulary.
var ErrUnknownQualification = errors.New("unknown qualification")

var defaultNames = []string{
	"KG", "Pre-Primary", "Primary", "Secondary", "Higher Secondary",
	"Diploma", "B.Tech", "B.Sc", "B.A", "M.Tech", "M.Sc", "M.A", "MBA", "PhD", "PG",
}

var defaultLevels = mustNew(defaultNames...)

// Levels is an immutable ordered vocabulary. It is safe for concurrent use.
type Levels struct {
	names []string
	index map[string]int
}

// Default returns the application-wide vocabulary.
func Default() *Levels {
	return defaultLevels
}

// New builds a vocabulary from names in ascending order of seniority.
func New(names ...string) (*Levels, error) {
	if len(names) == 0 {
		return nil, errors.New("qualification vocabulary must not be empty")
	}

	l := &Levels{
		names: make([]string, 0, len(names)),
		index: make(map[string]int, len(names)),
	}

	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("qualification at position %d is blank", len(l.names))
		}
		if _, ok := l.index[name]; ok {
			return nil, fmt.Errorf("duplicate qualification %q", name)
		}
		l.index[name] = len(l.names)
		l.names = append(l.names, name)
	}

	return l, nil
}

func mustNew(names ...string) *Levels {
	l, err := New(names...)
	if err != nil {
		panic(err)
	}
	return l
}

// IndexOf returns the position of level. Lookups are exact and case-sensitive.
func (l *Levels) IndexOf(level string) (int, error) {
	idx, ok := l.index[level]
	if !ok {
		return -1, fmt.Errorf("%w: %q", ErrUnknownQualification, level)
	}
	return idx, nil
}

// Contains reports whether level is part of the vocabulary.
func (l *Levels) Contains(level string) bool {
	_, ok := l.index[level]
	return ok
}

func (l *Levels) Len() int {
	return len(l.names)
}

// Names returns a copy of the vocabulary in order.
func (l *Levels) Names() []string {
	out := make([]string, len(l.names))
	copy(out, l.names)
	return out
}
