package crossroad

// Phase is the state of a light controller
type Phase int

const (
	// PhaseAwaitingTurn waits for the previous controller to hand over
	PhaseAwaitingTurn Phase = iota
	// PhaseGreen releases vehicles on the controller's lanes
	PhaseGreen
	// PhaseAllRed holds every light red before the hand-off
	PhaseAllRed
)

func (p Phase) String() string {
	switch p {
	case PhaseAwaitingTurn:
		return "awaiting_turn"
	case PhaseGreen:
		return "green"
	case PhaseAllRed:
		return "all_red"
	}
	return "invalid-phase"
}

// Events that drive a controller between phases
const (
	EventTurn     = "turn"
	EventDeadline = "deadline"
	EventHandoff  = "handoff"
)

// Transition represents a phase change
type Transition struct {
	SourcePhase Phase
	TargetPhase Phase
	EventName   string
}

// NewTransition creates a new transition
func NewTransition(source, target Phase, eventName string) *Transition {
	return &Transition{
		SourcePhase: source,
		TargetPhase: target,
		EventName:   eventName,
	}
}

var phaseTransitions = []*Transition{
	NewTransition(PhaseAwaitingTurn, PhaseGreen, EventTurn),
	NewTransition(PhaseGreen, PhaseAllRed, EventDeadline),
	NewTransition(PhaseAllRed, PhaseAwaitingTurn, EventHandoff),
}

// FindTransition returns the transition taken from phase on event, if any
func FindTransition(from Phase, event string) (*Transition, bool) {
	for _, t := range phaseTransitions {
		if t.SourcePhase == from && t.EventName == event {
			return t, true
		}
	}
	return nil, false
}

// Transitions returns the phase cycle every controller follows
func Transitions() []Transition {
	result := make([]Transition, len(phaseTransitions))
	for i, t := range phaseTransitions {
		result[i] = *t
	}
	return result
}
