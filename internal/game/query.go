package game

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// TileEnv is the environment a tile query sees for one cell.
type TileEnv struct {
	X              int
	Y              int
	Terrain        string
	Elevation      int
	MoveCost       int
	Defense        int
	Avoid          int
	BlocksMovement bool
	BlocksVision   bool
	Occupied       bool
}

// TileQuery is a compiled boolean predicate over TileEnv, e.g.
//
//	Terrain == "forest" && Elevation > 0 && !Occupied
type TileQuery struct {
	Source  string
	program *vm.Program
}

// CompileTileQuery compiles src; it must evaluate to a bool.
func CompileTileQuery(src string) (*TileQuery, error) {
	prog, err := expr.Compile(src, expr.Env(TileEnv{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile tile query %q: %w", src, err)
	}
	return &TileQuery{Source: src, program: prog}, nil
}

// Match evaluates the query against one cell environment.
func (q *TileQuery) Match(env TileEnv) (bool, error) {
	out, err := vm.Run(q.program, env)
	if err != nil {
		return false, fmt.Errorf("run tile query %q: %w", q.Source, err)
	}
	match, _ := out.(bool)
	return match, nil
}

// FindTiles returns every cell matching q in row-major order.
func (m *BattleMap) FindTiles(q *TileQuery) ([]Position, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []Position
	for i, t := range m.grid.tiles {
		p := m.grid.positionAt(i)
		props := t.Props(m.grid.table)
		env := TileEnv{
			X:              p.X,
			Y:              p.Y,
			Terrain:        t.Terrain.String(),
			Elevation:      t.Elevation,
			MoveCost:       props.MoveCost,
			Defense:        props.Defense,
			Avoid:          props.Avoid,
			BlocksMovement: props.BlocksMovement,
			BlocksVision:   props.BlocksVision,
			Occupied:       m.occ.Occupied(p),
		}
		ok, err := q.Match(env)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, p)
		}
	}
	return out, nil
}

// FindTilesExpr compiles src and runs it over the whole map.
func (m *BattleMap) FindTilesExpr(src string) ([]Position, error) {
	q, err := CompileTileQuery(src)
	if err != nil {
		return nil, err
	}
	return m.FindTiles(q)
}
