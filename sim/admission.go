package sim

import (
	"sort"

	"github.com/sirupsen/logrus"
)

// AdmissionSource holds the loaded process population and releases processes into the
// active collection once their arrival time is reached.
type AdmissionSource struct {
	pending []*Process // ordered by ArrivalTime, stable on input order
}

// NewAdmissionSource orders procs by arrival time (stable on ties) and takes ownership of them.
// Released processes start in StateNewArrival regardless of their incoming state.
func NewAdmissionSource(procs []*Process) *AdmissionSource {
	pending := make([]*Process, 0, len(procs))
	for _, p := range procs {
		if p == nil {
			panic("NewAdmissionSource: process must not be nil")
		}
		pending = append(pending, p)
	}
	sort.SliceStable(pending, func(i, j int) bool {
		return pending[i].ArrivalTime < pending[j].ArrivalTime
	})
	return &AdmissionSource{pending: pending}
}

// HasPendingArrivals reports whether any loaded process has not been released yet.
func (as *AdmissionSource) HasPendingArrivals() bool {
	return len(as.pending) > 0
}

// Pending returns the number of processes not yet released.
func (as *AdmissionSource) Pending() int {
	return len(as.pending)
}

// ReleaseDue moves every pending process with ArrivalTime <= tick into active,
// preserving relative order, and returns how many were released.
func (as *AdmissionSource) ReleaseDue(tick int64, active *ActiveProcesses) int {
	n := 0
	for n < len(as.pending) && as.pending[n].ArrivalTime <= tick {
		p := as.pending[n]
		p.State = StateNewArrival
		active.Add(p)
		logrus.Debugf("<< Arrival: P%d at tick %d (arrival time %d)", p.ID, tick, p.ArrivalTime)
		as.pending[n] = nil
		n++
	}
	as.pending = as.pending[n:]
	return n
}
