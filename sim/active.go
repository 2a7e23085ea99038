package sim

// ActiveProcesses holds the processes known to the scheduler, in release order.
// Every "pick one" decision is the first match in this order (FCFS).
type ActiveProcesses struct {
	procs []*Process
}

// Add appends p to the back of the collection.
func (ap *ActiveProcesses) Add(p *Process) {
	if p == nil {
		panic("Add: process must not be nil")
	}
	ap.procs = append(ap.procs, p)
}

// FirstInState returns the first process in state s, or nil.
func (ap *ActiveProcesses) FirstInState(s ProcessState) *Process {
	for _, p := range ap.procs {
		if p.State == s {
			return p
		}
	}
	return nil
}

// FindByID returns the first process with the given id, or nil.
func (ap *ActiveProcesses) FindByID(id int) *Process {
	for _, p := range ap.procs {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// RemoveDone drops every Done process, preserving the order of the rest,
// and returns the removed ones in collection order.
func (ap *ActiveProcesses) RemoveDone() []*Process {
	var done []*Process
	kept := ap.procs[:0]
	for _, p := range ap.procs {
		if p.State == StateDone {
			done = append(done, p)
			continue
		}
		kept = append(kept, p)
	}
	for i := len(kept); i < len(ap.procs); i++ {
		ap.procs[i] = nil
	}
	ap.procs = kept
	return done
}

// Len returns the number of active processes.
func (ap *ActiveProcesses) Len() int {
	return len(ap.procs)
}

// IsEmpty reports whether the collection holds no processes.
func (ap *ActiveProcesses) IsEmpty() bool {
	return len(ap.procs) == 0
}

// Items returns the collection contents for iteration.
// The returned slice is internal storage -- callers within the sim package
// may iterate over it but MUST NOT append to or reslice it.
func (ap *ActiveProcesses) Items() []*Process {
	return ap.procs
}

// Snapshots returns read-only copies of every active process, in collection order.
func (ap *ActiveProcesses) Snapshots() []ProcessSnapshot {
	out := make([]ProcessSnapshot, len(ap.procs))
	for i, p := range ap.procs {
		out[i] = p.Snapshot()
	}
	return out
}
