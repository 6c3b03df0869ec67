package core

// Action represents a semantic request a strategy can make for its tank,
// abstracted from any input source. This allows the engine to work with
// high-level intents whether they come from an algorithm or a human.
type Action int

const (
	DoNothing    Action = iota
	MoveForward         // Advance one cell in the cannon direction
	MoveBackward        // Start (or continue) the delayed reverse maneuver
	RotateLeft45
	RotateRight45
	RotateLeft90
	RotateRight90
	Shoot   // Fire a shell in the cannon direction
	GetInfo // Request a fresh board snapshot instead of acting
)

// String returns a human-readable name for the action, used in transcripts.
func (a Action) String() string {
	switch a {
	case DoNothing:
		return "DoNothing"
	case MoveForward:
		return "MoveForward"
	case MoveBackward:
		return "MoveBackward"
	case RotateLeft45:
		return "RotateLeft45"
	case RotateRight45:
		return "RotateRight45"
	case RotateLeft90:
		return "RotateLeft90"
	case RotateRight90:
		return "RotateRight90"
	case Shoot:
		return "Shoot"
	case GetInfo:
		return "GetBattleInfo"
	default:
		return "Unknown"
	}
}

// RotationSteps returns the number of 45° steps this action rotates by
// (negative for counter-clockwise) and whether it is a rotation at all.
func (a Action) RotationSteps() (int, bool) {
	switch a {
	case RotateLeft45:
		return -1, true
	case RotateRight45:
		return 1, true
	case RotateLeft90:
		return -2, true
	case RotateRight90:
		return 2, true
	default:
		return 0, false
	}
}

// Outcome is the result of feeding one action through a tank's
// movement-intent state machine. The engine decides what to execute
// based on this tag; the state machine itself never touches the board.
type Outcome int

const (
	OutcomeNone          Outcome = iota
	OutcomeShotInitiated         // Engine should spawn a shell
	OutcomeMovePending           // A move is intended for this tick
	OutcomeRotated               // Cannon direction changed
	OutcomeStateChanged          // Internal state advanced, nothing moves yet
	OutcomeInvalidAction         // Rejected: flagged in the outcome report
	OutcomeInfoRequested         // Engine should deliver a snapshot
)

// String returns a name for the outcome, used in debug logging.
func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "None"
	case OutcomeShotInitiated:
		return "ShotInitiated"
	case OutcomeMovePending:
		return "MovePending"
	case OutcomeRotated:
		return "Rotated"
	case OutcomeStateChanged:
		return "StateChanged"
	case OutcomeInvalidAction:
		return "InvalidAction"
	case OutcomeInfoRequested:
		return "InfoRequested"
	default:
		return "Unknown"
	}
}
