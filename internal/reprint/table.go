package reprint

import "strings"

// Table is an immutable, ordered reprint table with lookup indexes.
//
// Each index keeps the lowest table position for a key, so an indexed lookup
// returns the same group a front-to-back scan would. Safe for concurrent reads.
type Table struct {
	groups    []Group
	byName    map[string]int
	byReprint map[string]int
	byFirst   map[string]int
}

// NewTable builds a table over a copy of groups.
func NewTable(groups []Group) *Table {
	t := &Table{
		groups:    make([]Group, len(groups)),
		byName:    make(map[string]int, len(groups)),
		byReprint: make(map[string]int),
		byFirst:   make(map[string]int, len(groups)),
	}
	copy(t.groups, groups)

	for i, g := range t.groups {
		setFirst(t.byName, strings.ToLower(g.Name), i)
		setFirst(t.byFirst, g.FirstPrinting.ID, i)
		for _, r := range g.Reprints {
			setFirst(t.byReprint, r.ID, i)
		}
	}

	return t
}

func setFirst(index map[string]int, key string, pos int) {
	if _, ok := index[key]; !ok {
		index[key] = pos
	}
}

// Len returns the number of groups. A nil table has none.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.groups)
}

// Groups returns a copy of the groups in table order.
func (t *Table) Groups() []Group {
	if t == nil {
		return nil
	}
	out := make([]Group, len(t.groups))
	copy(out, t.groups)
	return out
}

// ByName returns the first group whose name matches case-insensitively.
func (t *Table) ByName(name string) (Group, bool) {
	if t == nil {
		return Group{}, false
	}
	i, ok := t.byName[strings.ToLower(name)]
	if !ok {
		return Group{}, false
	}
	return t.groups[i], true
}

// Match is the outcome of looking up a printing id.
type Match struct {
	Group Group
	// IsReprint is true when the id is one of the group's reprints, false
	// when it is the group's first printing.
	IsReprint bool
}

// ByID finds the first group, in table order, that lists id either as a
// reprint or as its first printing. Within one group the reprint check wins.
func (t *Table) ByID(id string) (Match, bool) {
	if t == nil {
		return Match{}, false
	}

	ri, hasReprint := t.byReprint[id]
	fi, hasFirst := t.byFirst[id]

	switch {
	case hasReprint && (!hasFirst || ri <= fi):
		return Match{Group: t.groups[ri], IsReprint: true}, true
	case hasFirst:
		return Match{Group: t.groups[fi]}, true
	default:
		return Match{}, false
	}
}
