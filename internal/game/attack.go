package game

import "fmt"

// ringPositions returns every in-bounds cell whose Manhattan distance to
// center lies in [minR, maxR]. Only the clipped bounding diamond is visited.
// Bands wider than the farthest grid cell are clamped to it first.
func (g *Grid) ringPositions(center Position, minR, maxR int) []Position {
	reach := max(absInt(center.X), absInt(center.X-(g.Width-1))) +
		max(absInt(center.Y), absInt(center.Y-(g.Height-1)))
	if minR > reach {
		return nil
	}
	maxR = min(maxR, reach)
	var out []Position
	for y := max(0, center.Y-maxR); y <= min(g.Height-1, center.Y+maxR); y++ {
		dy := absInt(y - center.Y)
		span := maxR - dy
		for x := max(0, center.X-span); x <= min(g.Width-1, center.X+span); x++ {
			if dy+absInt(x-center.X) >= minR {
				out = append(out, Position{X: x, Y: y})
			}
		}
	}
	return out
}

func checkBand(minR, maxR int) error {
	if minR < 0 || maxR < 0 || minR > maxR {
		return fmt.Errorf("%w: [%d,%d]", ErrInvalidRange, minR, maxR)
	}
	return nil
}

// AttackRangeFrom returns every valid cell whose Manhattan distance to from
// lies in [minR, maxR]. Terrain and occupancy are ignored. An out-of-bounds
// origin still yields whatever part of the ring falls on the grid.
func (m *BattleMap) AttackRangeFrom(from Position, minR, maxR int) (PositionSet, error) {
	if err := checkBand(minR, maxR); err != nil {
		return PositionSet{}, err
	}
	return NewPositionSet(m.grid.ringPositions(from, minR, maxR)...), nil
}

// AttackRange returns the cells u can strike from where it stands.
func (m *BattleMap) AttackRange(u Unit) (PositionSet, error) {
	if err := checkBand(u.MinRange, u.MaxRange); err != nil {
		return PositionSet{}, fmt.Errorf("attack range of unit %d: %w", u.ID, err)
	}
	m.mu.RLock()
	from, _ := m.resolveMover(u)
	m.mu.RUnlock()
	return NewPositionSet(m.grid.ringPositions(from, u.MinRange, u.MaxRange)...), nil
}

// AttackableUnits returns the hostile units standing inside u's attack
// range, ordered by id.
func (m *BattleMap) AttackableUnits(u Unit) ([]UnitID, error) {
	if err := checkBand(u.MinRange, u.MaxRange); err != nil {
		return nil, fmt.Errorf("attackable units of %d: %w", u.ID, err)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	from, _ := m.resolveMover(u)
	var out []UnitID
	for _, id := range m.occ.IDs() {
		if id == u.ID {
			continue
		}
		team, _ := m.occ.TeamOf(id)
		if !Hostile(u.Team, team) {
			continue
		}
		p, _ := m.occ.PositionOf(id)
		if d := Manhattan(from, p); d >= u.MinRange && d <= u.MaxRange {
			out = append(out, id)
		}
	}
	return out, nil
}

// ThreatZone returns every cell some unit hostile to team could attack this
// turn: the attack band projected from each cell of its movement range.
func (m *BattleMap) ThreatZone(team Team) (PositionSet, error) {
	zone := NewPositionSet()
	for _, u := range m.Units() {
		if !Hostile(team, u.Team) {
			continue
		}
		if err := checkBand(u.MinRange, u.MaxRange); err != nil {
			return PositionSet{}, fmt.Errorf("threat zone of unit %d: %w", u.ID, err)
		}
		reach, err := m.MovementCosts(u)
		if err != nil {
			return PositionSet{}, err
		}
		for o := range reach.costs {
			for _, p := range m.grid.ringPositions(o, u.MinRange, u.MaxRange) {
				zone.Put(p)
			}
		}
	}
	return zone, nil
}
