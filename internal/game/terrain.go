package game

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Terrain identifies the surface of a tile. The set is closed.
type Terrain uint8

const (
	TerrainPlain    Terrain = iota // open ground
	TerrainForest                  // slows, grants avoid
	TerrainMountain                // slow, high ground, blocks vision
	TerrainWater                   // impassable to ground units
	TerrainRoad                    // fast lane
	TerrainFort                    // defensive structure
	TerrainBridge                  // passable crossing over water
	TerrainWall                    // impassable, opaque
	terrainCount                   // sentinel
)

var terrainNames = [terrainCount]string{
	TerrainPlain:    "plain",
	TerrainForest:   "forest",
	TerrainMountain: "mountain",
	TerrainWater:    "water",
	TerrainRoad:     "road",
	TerrainFort:     "fort",
	TerrainBridge:   "bridge",
	TerrainWall:     "wall",
}

func (t Terrain) String() string {
	if t >= terrainCount {
		return fmt.Sprintf("terrain(%d)", uint8(t))
	}
	return terrainNames[t]
}

// Valid reports whether t is one of the defined terrain kinds.
func (t Terrain) Valid() bool { return t < terrainCount }

// ParseTerrain maps a case-insensitive name to its Terrain.
func ParseTerrain(name string) (Terrain, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, s := range terrainNames {
		if s == n {
			return Terrain(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTerrain, name)
}

// Terrains lists every terrain kind in declaration order.
func Terrains() []Terrain {
	out := make([]Terrain, terrainCount)
	for i := range out {
		out[i] = Terrain(i)
	}
	return out
}

// TerrainInfo holds the static gameplay modifiers of one terrain kind.
type TerrainInfo struct {
	MoveCost       int  `yaml:"move_cost"`
	Defense        int  `yaml:"defense"`
	Avoid          int  `yaml:"avoid"`
	BlocksMovement bool `yaml:"blocks_movement"`
	BlocksVision   bool `yaml:"blocks_vision"`
}

// TerrainTable maps every terrain kind to its modifiers. It is built once at
// battle setup and only read afterwards; lookups never fail for a valid kind.
type TerrainTable struct {
	entries [terrainCount]TerrainInfo
}

// DefaultTerrainTable returns the built-in modifiers.
func DefaultTerrainTable() *TerrainTable {
	return &TerrainTable{entries: [terrainCount]TerrainInfo{
		TerrainPlain:    {MoveCost: 1},
		TerrainForest:   {MoveCost: 2, Defense: 1, Avoid: 20},
		TerrainMountain: {MoveCost: 3, Defense: 2, Avoid: 30, BlocksVision: true},
		TerrainWater:    {MoveCost: 1, BlocksMovement: true},
		TerrainRoad:     {MoveCost: 1},
		TerrainFort:     {MoveCost: 1, Defense: 2, Avoid: 20},
		TerrainBridge:   {MoveCost: 1},
		TerrainWall:     {MoveCost: 1, BlocksMovement: true, BlocksVision: true},
	}}
}

// Info returns the modifiers for t. Out-of-set values read as plain.
func (tt *TerrainTable) Info(t Terrain) TerrainInfo {
	if !t.Valid() {
		return tt.entries[TerrainPlain]
	}
	return tt.entries[t]
}

// terrainTableFile is the on-disk layout:
//
//	terrain:
//	  forest: {move_cost: 2, defense: 1, avoid: 20}
type terrainTableFile struct {
	Terrain map[string]terrainOverride `yaml:"terrain"`
}

type terrainOverride struct {
	MoveCost       *int  `yaml:"move_cost"`
	Defense        *int  `yaml:"defense"`
	Avoid          *int  `yaml:"avoid"`
	BlocksMovement *bool `yaml:"blocks_movement"`
	BlocksVision   *bool `yaml:"blocks_vision"`
}

// ParseTerrainTable applies YAML overrides on top of the default table.
// Fields missing from the document keep their default values.
func ParseTerrainTable(data []byte) (*TerrainTable, error) {
	var f terrainTableFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse terrain table: %w", err)
	}
	tt := DefaultTerrainTable()
	for name, o := range f.Terrain {
		t, err := ParseTerrain(name)
		if err != nil {
			return nil, err
		}
		e := &tt.entries[t]
		if o.MoveCost != nil {
			e.MoveCost = *o.MoveCost
		}
		if o.Defense != nil {
			e.Defense = *o.Defense
		}
		if o.Avoid != nil {
			e.Avoid = *o.Avoid
		}
		if o.BlocksMovement != nil {
			e.BlocksMovement = *o.BlocksMovement
		}
		if o.BlocksVision != nil {
			e.BlocksVision = *o.BlocksVision
		}
	}
	if err := tt.validate(); err != nil {
		return nil, err
	}
	return tt, nil
}

// LoadTerrainTable reads a YAML terrain table from path.
func LoadTerrainTable(path string) (*TerrainTable, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseTerrainTable(b)
}

// validate rejects entries that would let a search spend nothing to move.
func (tt *TerrainTable) validate() error {
	for i, e := range tt.entries {
		t := Terrain(i)
		if !e.BlocksMovement && e.MoveCost < 1 {
			return fmt.Errorf("%w: %s move_cost %d < 1", ErrInvalidTerrainTable, t, e.MoveCost)
		}
		if e.Defense < 0 || e.Avoid < 0 {
			return fmt.Errorf("%w: %s has negative defense or avoid", ErrInvalidTerrainTable, t)
		}
	}
	return nil
}
