package state

// GameState represents the current high-level state of the game
type GameState int

const (
	StateTitle GameState = iota
	StatePlaying
	StateDying
	StateStageClear
	StateGameOver
)

// String returns the string representation of the game state
func (s GameState) String() string {
	switch s {
	case StateTitle:
		return "Title"
	case StatePlaying:
		return "Playing"
	case StateDying:
		return "Dying"
	case StateStageClear:
		return "StageClear"
	case StateGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// AcceptsStart reports whether a start input begins a new game
func (s GameState) AcceptsStart() bool {
	return s == StateTitle || s == StateGameOver
}

// Simulating reports whether the world advances in this state
func (s GameState) Simulating() bool {
	return s == StatePlaying || s == StateDying || s == StateStageClear
}
