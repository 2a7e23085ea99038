package sim

import (
	"errors"
	"fmt"
)

// ErrHorizonExceeded is returned by Run when the tick limit is reached before
// every process has completed.
var ErrHorizonExceeded = errors.New("simulation horizon exceeded")

// MalformedInputError reports a process description that violates the required shape.
// Line is 1-based for text input and the record index for structured input; 0 when unknown.
type MalformedInputError struct {
	Source string
	Line   int
	Reason string
}

func (e *MalformedInputError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("malformed process description %s:%d: %s", e.Source, e.Line, e.Reason)
	}
	return fmt.Sprintf("malformed process description %s: %s", e.Source, e.Reason)
}

// OrphanInterruptError reports an interrupt naming a process that is not active,
// or one that is active but not blocked on I/O (State is then set).
type OrphanInterruptError struct {
	Interrupt Interrupt
	Tick      int64
	State     ProcessState
}

func (e *OrphanInterruptError) Error() string {
	if e.State != "" {
		return fmt.Sprintf("tick %d: interrupt for P%d (raised at %d) targets a process in state %s",
			e.Tick, e.Interrupt.ProcessID, e.Interrupt.Time, e.State)
	}
	return fmt.Sprintf("tick %d: interrupt for P%d (raised at %d) matches no active process",
		e.Tick, e.Interrupt.ProcessID, e.Interrupt.Time)
}
