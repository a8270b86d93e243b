package codec

import "github.com/treewire/treewire"

// fieldMatches groups a node's element children by name, ordered by
// first occurrence. Matches are collected in reverse insertion order
// and reversed on lookup, so document order is preserved.
type fieldMatches struct {
	byName map[string][]treewire.Element
	order  []string
}

// collectFields scans e's children. Stray text children cannot
// correspond to any named field and are ignored here.
func collectFields(e treewire.Element) *fieldMatches {
	m := &fieldMatches{byName: make(map[string][]treewire.Element)}
	for _, c := range e.Children {
		ce, ok := c.(treewire.Element)
		if !ok {
			continue
		}
		prior, seen := m.byName[ce.Name]
		if !seen {
			m.order = append(m.order, ce.Name)
		}
		m.byName[ce.Name] = append([]treewire.Element{ce}, prior...)
	}
	return m
}

// matches returns the children collected for name in document order.
func (m *fieldMatches) matches(name string) []treewire.Element {
	stored := m.byName[name]
	if len(stored) == 0 {
		return nil
	}
	out := make([]treewire.Element, len(stored))
	for i, e := range stored {
		out[len(stored)-1-i] = e
	}
	return out
}
