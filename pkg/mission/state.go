package mission

// State is the behavioral state of the firefighting mission.
// Exactly one state is active at any time; only the controller's
// transition step mutates it.
type State int

const (
	// StateWander drives open floor looking for a flame.
	StateWander State = iota
	// StateWallFollowing tracks the wall on the robot's right side.
	StateWallFollowing
	// StateFireDetection steps toward a detected flame.
	StateFireDetection
	// StateExtinguish runs the fan over the goal tile.
	StateExtinguish
	// StateComplete is the terminal state after a successful extinguish.
	StateComplete
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateWander:
		return "wander"
	case StateWallFollowing:
		return "wall_following"
	case StateFireDetection:
		return "fire_detection"
	case StateExtinguish:
		return "extinguish"
	case StateComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Terminal reports whether the state ends the mission loop.
func (s State) Terminal() bool {
	return s == StateComplete
}
