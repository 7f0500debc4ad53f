package states

import "fmt"

// GamePhase represents the current phase of a game
type GamePhase int

const (
	// PhaseIdle - No game on the board, factions between games
	PhaseIdle GamePhase = iota

	// PhaseSetup - Units placed, faction sessions begun, models selected
	PhaseSetup

	// PhaseRunning - Factions alternate plies
	PhaseRunning

	// PhaseEnded - Winner determined, history updated
	PhaseEnded

	// PhaseError - Setup or play failed
	PhaseError
)

// String returns the string representation of a GamePhase
func (p GamePhase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseSetup:
		return "Setup"
	case PhaseRunning:
		return "Running"
	case PhaseEnded:
		return "Ended"
	case PhaseError:
		return "Error"
	default:
		return fmt.Sprintf("Unknown(%d)", p)
	}
}

// IsTerminal returns true if the phase ends a game
func (p GamePhase) IsTerminal() bool {
	return p == PhaseEnded || p == PhaseError
}

// CanReceiveMoves returns true if plies can be played in this phase
func (p GamePhase) CanReceiveMoves() bool {
	return p == PhaseRunning
}

// AllowedTransitions returns the valid phases this phase can transition to
func (p GamePhase) AllowedTransitions() []GamePhase {
	switch p {
	case PhaseIdle:
		return []GamePhase{PhaseSetup, PhaseError}
	case PhaseSetup:
		return []GamePhase{PhaseRunning, PhaseError}
	case PhaseRunning:
		return []GamePhase{PhaseEnded, PhaseError}
	case PhaseEnded:
		return []GamePhase{PhaseIdle}
	case PhaseError:
		return []GamePhase{PhaseIdle}
	default:
		return []GamePhase{}
	}
}

// CanTransitionTo checks if a transition from this phase to the target phase is allowed
func (p GamePhase) CanTransitionTo(target GamePhase) bool {
	for _, phase := range p.AllowedTransitions() {
		if phase == target {
			return true
		}
	}
	return false
}

// ParsePhase converts a string to a GamePhase
func ParsePhase(s string) GamePhase {
	switch s {
	case "Idle":
		return PhaseIdle
	case "Setup":
		return PhaseSetup
	case "Running":
		return PhaseRunning
	case "Ended":
		return PhaseEnded
	case "Error":
		return PhaseError
	default:
		return PhaseIdle
	}
}
