package core

import "slices"

type sourceKind int

const (
	sourceTable    sourceKind = iota // bare table name, resolved at compile time
	sourceFragment                   // pre-rendered FROM text
)

type source struct {
	kind sourceKind
	text string
}

// sourceStack holds raw tables and FROM fragments in insertion order.
// Joins pop the most recent raw table if there is one, else the most recent
// fragment.
type sourceStack struct {
	items []source
}

func (s *sourceStack) push(kind sourceKind, text string) {
	s.items = append(s.items, source{kind: kind, text: text})
}

// pop removes and returns the join's left side.
func (s *sourceStack) pop() (source, bool) {
	if i := s.last(sourceTable); i >= 0 {
		return s.remove(i), true
	}
	if i := s.last(sourceFragment); i >= 0 {
		return s.remove(i), true
	}
	return source{}, false
}

func (s *sourceStack) last(kind sourceKind) int {
	for i := len(s.items) - 1; i >= 0; i-- {
		if s.items[i].kind == kind {
			return i
		}
	}
	return -1
}

func (s *sourceStack) remove(i int) source {
	item := s.items[i]
	s.items = slices.Delete(s.items, i, i+1)
	return item
}

func (s *sourceStack) texts(kind sourceKind) []string {
	var out []string
	for _, item := range s.items {
		if item.kind == kind {
			out = append(out, item.text)
		}
	}
	return out
}

func (s *sourceStack) tables() []string    { return s.texts(sourceTable) }
func (s *sourceStack) fragments() []string { return s.texts(sourceFragment) }
func (s *sourceStack) len() int            { return len(s.items) }

// uniqueTables drops repeated raw tables, keeping the first occurrence.
func (s *sourceStack) uniqueTables() {
	seen := make(map[string]bool)
	s.items = slices.DeleteFunc(s.items, func(item source) bool {
		if item.kind != sourceTable {
			return false
		}
		if seen[item.text] {
			return true
		}
		seen[item.text] = true
		return false
	})
}
