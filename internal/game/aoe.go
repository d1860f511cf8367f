package game

import (
	"fmt"
	"sort"
	"strings"
)

// AOE pattern names.
const (
	PatternSingle = "single"
	PatternCross  = "cross"
	PatternSquare = "square"
)

// aoePatterns maps each name to its offsets from the centre. The set is
// closed; "square" is always the 3x3 block around the centre.
var aoePatterns = map[string][][2]int{
	PatternSingle: {{0, 0}},
	PatternCross: {
		{0, 0}, {1, 0}, {-1, 0}, {0, 1}, {0, -1},
	},
	PatternSquare: {
		{-1, -1}, {0, -1}, {1, -1},
		{-1, 0}, {0, 0}, {1, 0},
		{-1, 1}, {0, 1}, {1, 1},
	},
}

// Patterns lists the known pattern names in sorted order.
func Patterns() []string {
	out := make([]string, 0, len(aoePatterns))
	for name := range aoePatterns {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// AOETiles returns the cells covered by pattern centred on center. Offsets
// falling outside the grid are dropped; an unknown name is an error.
func (g *Grid) AOETiles(center Position, pattern string) (PositionSet, error) {
	offsets, ok := aoePatterns[pattern]
	if !ok {
		return PositionSet{}, fmt.Errorf("%w: %q (known: %s)", ErrUnknownPattern, pattern, strings.Join(Patterns(), ", "))
	}
	s := NewPositionSet()
	for _, o := range offsets {
		p := center.Add(o[0], o[1])
		if g.IsValid(p) {
			s.Put(p)
		}
	}
	return s, nil
}

// AOETiles returns the cells covered by pattern centred on center.
func (m *BattleMap) AOETiles(center Position, pattern string) (PositionSet, error) {
	return m.grid.AOETiles(center, pattern)
}

// UnitsInArea returns the units standing on the cells of an area effect,
// ordered by id.
func (m *BattleMap) UnitsInArea(center Position, pattern string) ([]UnitID, error) {
	tiles, err := m.grid.AOETiles(center, pattern)
	if err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []UnitID
	tiles.Each(func(p Position) {
		if id, ok := m.occ.At(p); ok {
			out = append(out, id)
		}
	})
	sortUnitIDs(out)
	return out, nil
}
