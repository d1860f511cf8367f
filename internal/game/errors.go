package game

import "errors"

// Sentinel errors for map construction, mutation and queries. Callers match
// them with errors.Is; returned errors usually wrap one of these with context.
var (
	// ErrOutOfBounds indicates a position outside the grid.
	ErrOutOfBounds = errors.New("game: position out of bounds")
	// ErrOccupiedPosition indicates a spawn or move onto a cell claimed by another unit.
	ErrOccupiedPosition = errors.New("game: position already occupied")
	// ErrDuplicateUnit indicates a spawn for an id that is already on the map.
	ErrDuplicateUnit = errors.New("game: unit already on the map")
	// ErrBlockedPosition indicates a spawn or move onto terrain that blocks
	// movement, or a terrain edit that would block an occupied cell.
	ErrBlockedPosition = errors.New("game: position blocks movement")
	// ErrUnknownPattern indicates an unrecognised area-of-effect pattern name.
	ErrUnknownPattern = errors.New("game: unknown aoe pattern")
	// ErrInvalidBudget indicates a negative movement or path budget.
	ErrInvalidBudget = errors.New("game: budget must be non-negative")
	// ErrInvalidRange indicates a negative bound or min > max.
	ErrInvalidRange = errors.New("game: invalid range band")
	// ErrInvalidDimensions indicates a grid with a non-positive width or height.
	ErrInvalidDimensions = errors.New("game: grid dimensions must be positive")
	// ErrUnknownUnit indicates a unit id that is not on the map.
	ErrUnknownUnit = errors.New("game: unknown unit")
	// ErrUnknownTerrain indicates a terrain name outside the closed set.
	ErrUnknownTerrain = errors.New("game: unknown terrain")
	// ErrInvalidTerrainTable indicates terrain properties that would break search.
	ErrInvalidTerrainTable = errors.New("game: invalid terrain table")
)
