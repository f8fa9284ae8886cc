package xmltree

import "strings"

// Lookup walks a dotted path through nested mappings and returns the node
// at the final key. Missing intermediate keys, non-mapping intermediates
// and explicitly absent values all report found=false; it never fails.
func Lookup(doc Node, dottedPath string) (Node, bool) {
	current := doc
	for _, key := range strings.Split(dottedPath, ".") {
		m, ok := current.(Mapping)
		if !ok {
			return nil, false
		}
		next, ok := m[key]
		if !ok || next == nil {
			return nil, false
		}
		current = next
	}
	return current, true
}

// FirstOf tries each candidate path in order and returns the first present
// value. Supporting several legacy schema shapes this way keeps the
// transformer free of per-shape branching.
func FirstOf(doc Node, candidatePaths ...string) (Node, bool) {
	for _, path := range candidatePaths {
		if n, ok := Lookup(doc, path); ok {
			return n, true
		}
	}
	return nil, false
}

// TextAt is a convenience combining FirstOf and Text.
func TextAt(doc Node, candidatePaths ...string) string {
	n, ok := FirstOf(doc, candidatePaths...)
	if !ok {
		return ""
	}
	return Text(n)
}

// NumberAt is a convenience combining FirstOf and Number.
func NumberAt(doc Node, candidatePaths ...string) float64 {
	n, ok := FirstOf(doc, candidatePaths...)
	if !ok {
		return 0
	}
	return Number(n)
}
