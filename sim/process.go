// Defines the Process struct that models a single process in the simulation.
// Tracks arrival time, CPU service accounting, pending I/O events and completion time.

package sim

import (
	"fmt"
)

// ProcessState represents the lifecycle state of a process.
//
//	NewArrival -> Ready -> Processing -> {Blocked -> Ready, Done}
type ProcessState string

const (
	StateNewArrival ProcessState = "newArrival"
	StateReady      ProcessState = "ready"
	StateProcessing ProcessState = "processing"
	StateBlocked    ProcessState = "blocked"
	StateDone       ProcessState = "done"
)

// IOEvent is a pending I/O request of a process.
type IOEvent struct {
	Time     int64 // processor-time threshold at which the request fires
	Duration int64 // service time in ticks (> 0)
}

type Process struct {
	ID int // Unique identifier, immutable

	State            ProcessState
	ArrivalTime      int64     // Tick at which the process becomes eligible for admission
	ReqProcessorTime int64     // Total CPU ticks required to finish
	ProcessorTime    int64     // CPU ticks consumed so far
	IOEvents         []IOEvent // Pending I/O requests, consumed front-to-back
	DoneTime         int64     // Tick at which the process reached Done; only meaningful in StateDone

	// Accounting for end-of-run reporting. Zero-value safe.
	AdmitTime    int64 // Tick of NewArrival -> Ready
	FirstRunTime int64 // Tick of the first Ready -> Processing
	Started      bool  // Whether FirstRunTime is set
	WaitTicks    int64 // Ticks ended in StateReady
	BlockedTicks int64 // Ticks ended in StateBlocked
	IORequests   int   // I/O requests submitted so far
}

// NewProcess creates a Process in StateNewArrival. ioEvents is copied.
// Callers must supply I/O thresholds strictly increasing within [1, reqProcessorTime-1]
// (the workload loader enforces this); events at or beyond reqProcessorTime are
// discarded by the scheduler when the process finishes.
func NewProcess(id int, arrivalTime, reqProcessorTime int64, ioEvents []IOEvent) *Process {
	events := make([]IOEvent, len(ioEvents))
	copy(events, ioEvents)
	return &Process{
		ID:               id,
		State:            StateNewArrival,
		ArrivalTime:      arrivalTime,
		ReqProcessorTime: reqProcessorTime,
		IOEvents:         events,
	}
}

// HasPendingIO reports whether the process still has I/O requests to issue.
func (p *Process) HasPendingIO() bool {
	return len(p.IOEvents) > 0
}

// Turnaround returns DoneTime - ArrivalTime for a finished process, 0 otherwise.
func (p *Process) Turnaround() int64 {
	if p.State != StateDone {
		return 0
	}
	return p.DoneTime - p.ArrivalTime
}

// Snapshot returns a read-only copy of the process for reporting.
func (p *Process) Snapshot() ProcessSnapshot {
	return ProcessSnapshot{
		ID:               p.ID,
		State:            p.State,
		ArrivalTime:      p.ArrivalTime,
		ReqProcessorTime: p.ReqProcessorTime,
		ProcessorTime:    p.ProcessorTime,
		PendingIO:        len(p.IOEvents),
		DoneTime:         p.DoneTime,
	}
}

// This method returns a human-readable string representation of a Process.
func (p Process) String() string {
	return fmt.Sprintf("Process: (ID: %d, State: %s, ProcessorTime: %d/%d, ArrivalTime: %d)",
		p.ID, p.State, p.ProcessorTime, p.ReqProcessorTime, p.ArrivalTime)
}

// ProcessSnapshot is the value handed to reporters; mutating it has no effect on the simulation.
type ProcessSnapshot struct {
	ID               int
	State            ProcessState
	ArrivalTime      int64
	ReqProcessorTime int64
	ProcessorTime    int64
	PendingIO        int
	DoneTime         int64
}
