package game

// UnitID identifies a unit on the map.
type UnitID int

// Team is the allegiance of a unit.
type Team int

const (
	TeamPlayer  Team = iota // controlled by the player
	TeamEnemy               // OpFor
	TeamAlly                // AI-controlled friendly
	TeamNeutral             // hostile to nobody
)

func (t Team) String() string {
	switch t {
	case TeamPlayer:
		return "player"
	case TeamEnemy:
		return "enemy"
	case TeamAlly:
		return "ally"
	case TeamNeutral:
		return "neutral"
	default:
		return "unknown"
	}
}

// Hostile reports whether units of teams a and b fight each other.
// Enemy opposes both player and ally; neutral opposes nobody.
func Hostile(a, b Team) bool {
	if a == TeamEnemy {
		return b == TeamPlayer || b == TeamAlly
	}
	if b == TeamEnemy {
		return a == TeamPlayer || a == TeamAlly
	}
	return false
}

// Unit is the plain descriptor the spatial engine consumes from the unit
// model. Only the map decides where a unit actually stands; Pos is the
// requested spawn position for AddUnit and the last known position elsewhere.
type Unit struct {
	ID       UnitID
	Team     Team
	Pos      Position
	Movement int // movement points per turn
	MinRange int // attack band, inclusive
	MaxRange int
}
