package game

import "fmt"

// Team identifies which side a unit fights for.
type Team int

const (
	Boss Team = iota
	Player
)

// Opponent returns the other team.
func (t Team) Opponent() Team {
	if t == Boss {
		return Player
	}
	return Boss
}

// Forward is the row delta of one step toward the opponent's back row.
// Boss units advance toward row 0, player units toward the last row.
func (t Team) Forward() int {
	if t == Boss {
		return -1
	}
	return 1
}

func (t Team) String() string {
	if t == Boss {
		return "boss"
	}
	return "player"
}

// InfiniteLifetime marks a unit that never expires on its own.
const InfiniteLifetime = -1

type StateHash uint64

// Evaluate scores a state from the boss's perspective (positive favours the
// boss). depth is the remaining search depth at the scored node.
type Evaluate func(state *GameState, depth int) float64

// ParseTeam maps "boss" or "player" back to its Team.
func ParseTeam(name string) (Team, bool) {
	switch name {
	case "boss":
		return Boss, true
	case "player":
		return Player, true
	}
	return 0, false
}

func (t Team) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Team) UnmarshalText(text []byte) error {
	team, ok := ParseTeam(string(text))
	if !ok {
		return fmt.Errorf("unknown team %q", text)
	}
	*t = team
	return nil
}
