package sim

import "fmt"

// Action is the category of a state change performed during a tick.
type Action string

const (
	ActionNone      Action = "noAct"
	ActionAdmit     Action = "admit"
	ActionInterrupt Action = "inrtpt"
	ActionBegin     Action = "begin"
	ActionContinue  Action = "contRun"
	ActionIORequest Action = "ioReq"
	ActionFinish    Action = "finish"
)

// Actions lists every action in display order.
var Actions = []Action{
	ActionNone, ActionInterrupt, ActionAdmit, ActionBegin, ActionContinue, ActionIORequest, ActionFinish,
}

// Phase identifies the scheduler step that produced an action.
type Phase int

const (
	PhaseInterrupt Phase = iota
	PhaseAdmission
	PhaseDispatch
)

// Phase returns the scheduler step that produces a. ActionNone maps to -1.
func (a Action) Phase() Phase {
	switch a {
	case ActionInterrupt:
		return PhaseInterrupt
	case ActionAdmit:
		return PhaseAdmission
	case ActionBegin, ActionContinue, ActionIORequest, ActionFinish:
		return PhaseDispatch
	default:
		return -1
	}
}

// Label returns the bracketed, fixed-width console label, e.g. "[  admit]".
func (a Action) Label() string {
	if a == ActionNone || a == "" {
		return "[*noAct*]"
	}
	return fmt.Sprintf("[%7s]", string(a))
}

// TickEvent is one state-changing action performed during a tick.
type TickEvent struct {
	Action    Action
	ProcessID int
}

// ReportedAction picks the single label of a tick from its events:
// dispatch > admission > interrupt, ActionNone when events is empty.
func ReportedAction(events []TickEvent) Action {
	best := ActionNone
	bestPhase := Phase(-1)
	for _, ev := range events {
		if ph := ev.Action.Phase(); ph > bestPhase {
			best, bestPhase = ev.Action, ph
		}
	}
	return best
}
