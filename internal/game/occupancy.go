package game

import (
	"fmt"
	"sort"
)

// OccupancyIndex is the bidirectional unit <-> position mapping. An id maps
// to P if and only if P maps to that id, at most one unit holds a cell, and
// every held cell is passable.
// It is not safe for concurrent use on its own; BattleMap guards it.
type OccupancyIndex struct {
	grid   *Grid
	byUnit map[UnitID]Position
	byPos  map[Position]UnitID
	teams  map[UnitID]Team
	byTeam map[Team]map[UnitID]struct{}
}

// NewOccupancyIndex creates an empty index bounded by g.
func NewOccupancyIndex(g *Grid) *OccupancyIndex {
	return &OccupancyIndex{
		grid:   g,
		byUnit: make(map[UnitID]Position),
		byPos:  make(map[Position]UnitID),
		teams:  make(map[UnitID]Team),
		byTeam: make(map[Team]map[UnitID]struct{}),
	}
}

// Add claims pos for id. An id already on the map is rejected; use Move to
// relocate it.
func (oi *OccupancyIndex) Add(id UnitID, team Team, pos Position) error {
	if at, ok := oi.byUnit[id]; ok {
		return fmt.Errorf("add unit %d (already at %s): %w", id, at, ErrDuplicateUnit)
	}
	if !oi.grid.IsValid(pos) {
		return fmt.Errorf("add unit %d at %s: %w", id, pos, ErrOutOfBounds)
	}
	if !oi.grid.Passable(pos) {
		return fmt.Errorf("add unit %d at %s: %w", id, pos, ErrBlockedPosition)
	}
	if holder, ok := oi.byPos[pos]; ok {
		return fmt.Errorf("add unit %d at %s (held by %d): %w", id, pos, holder, ErrOccupiedPosition)
	}
	oi.byUnit[id] = pos
	oi.byPos[pos] = id
	oi.teams[id] = team
	members := oi.byTeam[team]
	if members == nil {
		members = make(map[UnitID]struct{})
		oi.byTeam[team] = members
	}
	members[id] = struct{}{}
	return nil
}

// Remove releases id's cell. Unknown ids are a no-op.
func (oi *OccupancyIndex) Remove(id UnitID) bool {
	pos, ok := oi.byUnit[id]
	if !ok {
		return false
	}
	delete(oi.byUnit, id)
	delete(oi.byPos, pos)
	team := oi.teams[id]
	delete(oi.teams, id)
	if members := oi.byTeam[team]; members != nil {
		delete(members, id)
		if len(members) == 0 {
			delete(oi.byTeam, team)
		}
	}
	return true
}

// Move relocates id to pos. All checks happen before any write, so a
// failed move leaves the index untouched. Moving onto the unit's own cell
// succeeds without change.
func (oi *OccupancyIndex) Move(id UnitID, pos Position) (Position, error) {
	old, ok := oi.byUnit[id]
	if !ok {
		return Position{}, fmt.Errorf("move unit %d: %w", id, ErrUnknownUnit)
	}
	if !oi.grid.IsValid(pos) {
		return old, fmt.Errorf("move unit %d to %s: %w", id, pos, ErrOutOfBounds)
	}
	if !oi.grid.Passable(pos) {
		return old, fmt.Errorf("move unit %d to %s: %w", id, pos, ErrBlockedPosition)
	}
	if holder, ok := oi.byPos[pos]; ok && holder != id {
		return old, fmt.Errorf("move unit %d to %s (held by %d): %w", id, pos, holder, ErrOccupiedPosition)
	}
	delete(oi.byPos, old)
	oi.byPos[pos] = id
	oi.byUnit[id] = pos
	return old, nil
}

// At returns the unit holding pos.
func (oi *OccupancyIndex) At(pos Position) (UnitID, bool) {
	id, ok := oi.byPos[pos]
	return id, ok
}

// Occupied reports whether any unit holds pos.
func (oi *OccupancyIndex) Occupied(pos Position) bool {
	_, ok := oi.byPos[pos]
	return ok
}

// PositionOf returns the cell held by id.
func (oi *OccupancyIndex) PositionOf(id UnitID) (Position, bool) {
	p, ok := oi.byUnit[id]
	return p, ok
}

// TeamOf returns the team id was added with.
func (oi *OccupancyIndex) TeamOf(id UnitID) (Team, bool) {
	t, ok := oi.teams[id]
	return t, ok
}

// ByTeam returns the ids on team in ascending order.
func (oi *OccupancyIndex) ByTeam(team Team) []UnitID {
	members := oi.byTeam[team]
	out := make([]UnitID, 0, len(members))
	for id := range members {
		out = append(out, id)
	}
	sortUnitIDs(out)
	return out
}

// IDs returns every unit id in ascending order.
func (oi *OccupancyIndex) IDs() []UnitID {
	out := make([]UnitID, 0, len(oi.byUnit))
	for id := range oi.byUnit {
		out = append(out, id)
	}
	sortUnitIDs(out)
	return out
}

// Len returns the number of units on the map.
func (oi *OccupancyIndex) Len() int { return len(oi.byUnit) }

func sortUnitIDs(ids []UnitID) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}
