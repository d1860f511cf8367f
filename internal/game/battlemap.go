package game

import (
	"fmt"
	"log/slog"
	"sync"
)

// BattleMap is the aggregate that owns terrain and occupancy. It is the only
// authority on who stands where; all mutations go through it.
//
// Queries take the read lock and mutations the write lock, so a concurrent
// reader observes a move as a single step.
type BattleMap struct {
	mu      sync.RWMutex
	grid    *Grid
	occ     *OccupancyIndex
	units   map[UnitID]Unit
	logger  *slog.Logger
	journal *Journal
}

// MapOption configures a BattleMap.
type MapOption func(*BattleMap)

// WithLogger sets the logger used for mutation events.
func WithLogger(l *slog.Logger) MapOption {
	return func(m *BattleMap) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithJournal records every mutation into j.
func WithJournal(j *Journal) MapOption {
	return func(m *BattleMap) {
		m.journal = j
	}
}

// NewBattleMap wraps grid with an empty occupancy index.
func NewBattleMap(grid *Grid, opts ...MapOption) *BattleMap {
	m := &BattleMap{
		grid:   grid,
		occ:    NewOccupancyIndex(grid),
		units:  make(map[UnitID]Unit),
		logger: slog.Default(),
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Width returns the grid width.
func (m *BattleMap) Width() int { return m.grid.Width }

// Height returns the grid height.
func (m *BattleMap) Height() int { return m.grid.Height }

// Journal returns the attached journal, or nil.
func (m *BattleMap) Journal() *Journal { return m.journal }

// IsValidPosition reports 0 <= x < width && 0 <= y < height.
func (m *BattleMap) IsValidPosition(p Position) bool {
	return m.grid.IsValid(p)
}

// Tile returns the tile at p, or false when p is out of bounds.
func (m *BattleMap) Tile(p Position) (Tile, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.grid.Tile(p)
}

// Props returns the derived terrain properties at p.
func (m *BattleMap) Props(p Position) (TileProps, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.grid.Props(p)
}

// SetTile replaces the terrain kind at p, preserving elevation. Terrain that
// blocks movement cannot be placed under a unit.
func (m *BattleMap) SetTile(p Position, t Terrain) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	prev, _ := m.grid.Tile(p)
	var err error
	if holder, ok := m.occ.At(p); ok && t.Valid() && m.grid.table.Info(t).BlocksMovement {
		err = fmt.Errorf("set terrain %s under unit %d: %w", p, holder, ErrBlockedPosition)
	} else {
		err = m.grid.SetTerrain(p, t)
	}
	if err != nil {
		m.logger.Debug("terrain edit rejected", "pos", p, "terrain", t, "error", err)
		m.record(JournalEntry{Category: JournalTerrain, To: p, Detail: err.Error()}, true)
		return err
	}
	m.logger.Debug("terrain edited", "pos", p, "from", prev.Terrain, "to", t)
	m.record(JournalEntry{
		Category: JournalTerrain, Key: "set", From: p, To: p,
		Detail: fmt.Sprintf("%s %s -> %s", p, prev.Terrain, t),
	}, false)
	return nil
}

// SetElevation changes the elevation at p.
func (m *BattleMap) SetElevation(p Position, e int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.grid.SetElevation(p, e); err != nil {
		m.logger.Debug("elevation edit rejected", "pos", p, "elevation", e, "error", err)
		m.record(JournalEntry{Category: JournalTerrain, To: p, Detail: err.Error()}, true)
		return err
	}
	m.logger.Debug("elevation edited", "pos", p, "elevation", e)
	m.record(JournalEntry{
		Category: JournalTerrain, Key: "elevation", From: p, To: p,
		Detail: fmt.Sprintf("%s elevation=%d", p, e),
	}, false)
	return nil
}

// AddUnit places u at u.Pos.
func (m *BattleMap) AddUnit(u Unit) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.occ.Add(u.ID, u.Team, u.Pos); err != nil {
		m.logger.Debug("spawn rejected", "id", u.ID, "pos", u.Pos, "error", err)
		m.record(JournalEntry{Unit: u.ID, HasUnit: true, Category: JournalUnit, To: u.Pos, Detail: err.Error()}, true)
		return err
	}
	m.units[u.ID] = u
	m.logger.Debug("unit spawned", "id", u.ID, "team", u.Team, "pos", u.Pos)
	m.record(JournalEntry{
		Unit: u.ID, HasUnit: true, Category: JournalUnit, Key: "spawn", From: u.Pos, To: u.Pos,
		Detail: fmt.Sprintf("%s team=%s", u.Pos, u.Team),
	}, false)
	return nil
}

// RemoveUnit takes id off the map. Unknown ids are a no-op.
func (m *BattleMap) RemoveUnit(id UnitID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	pos, _ := m.occ.PositionOf(id)
	if !m.occ.Remove(id) {
		return
	}
	delete(m.units, id)
	m.logger.Debug("unit removed", "id", id, "pos", pos)
	m.record(JournalEntry{
		Unit: id, HasUnit: true, Category: JournalUnit, Key: "defeat", From: pos, To: pos,
		Detail: pos.String(),
	}, false)
}

// MoveUnit relocates id to to. On error nothing changes.
func (m *BattleMap) MoveUnit(id UnitID, to Position) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	from, err := m.occ.Move(id, to)
	if err != nil {
		m.logger.Debug("move rejected", "id", id, "to", to, "error", err)
		m.record(JournalEntry{Unit: id, HasUnit: true, Category: JournalUnit, From: from, To: to, Detail: err.Error()}, true)
		return err
	}
	u := m.units[id]
	u.Pos = to
	m.units[id] = u
	m.logger.Debug("unit moved", "id", id, "from", from, "to", to)
	m.record(JournalEntry{
		Unit: id, HasUnit: true, Category: JournalUnit, Key: "move", From: from, To: to,
		Detail: fmt.Sprintf("%s -> %s", from, to),
	}, false)
	return nil
}

// UnitAt returns the id of the unit standing on p.
func (m *BattleMap) UnitAt(p Position) (UnitID, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.occ.At(p)
}

// Unit returns the descriptor of id with its current position.
func (m *BattleMap) Unit(id UnitID) (Unit, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.units[id]
	return u, ok
}

// UnitsByTeam returns the ids on team in ascending order.
func (m *BattleMap) UnitsByTeam(team Team) []UnitID {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.occ.ByTeam(team)
}

// Units returns every unit descriptor ordered by id.
func (m *BattleMap) Units() []Unit {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := m.occ.IDs()
	out := make([]Unit, len(ids))
	for i, id := range ids {
		out[i] = m.units[id]
	}
	return out
}

func (m *BattleMap) record(e JournalEntry, rejected bool) {
	if m.journal == nil {
		return
	}
	if rejected {
		m.journal.addReject(e)
		return
	}
	m.journal.add(e)
}
