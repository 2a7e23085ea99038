// Tracks simulation-wide and per-process scheduling metrics such as
// CPU utilization, turnaround and waiting time.

package sim

import (
	"fmt"
	"io"
)

// Metrics aggregates statistics about the simulation for final reporting.
type Metrics struct {
	Ticks        int64          // Ticks simulated
	BusyTicks    int64          // Ticks that ended with a process holding the CPU
	CPUTicks     int64          // Processor time consumed across all processes
	ActionCounts map[Action]int // Reported label -> number of ticks
	EventCounts  map[Action]int // Action -> occurrences, including actions hidden by a later step
	SimEndedTime int64          // Clock value when Run returned normally

	CompletedProcesses int
	TotalTurnaround    int64
	TotalWait          int64
	TotalBlocked       int64
	MaxTurnaround      int64
}

func NewMetrics() *Metrics {
	return &Metrics{
		ActionCounts: make(map[Action]int),
		EventCounts:  make(map[Action]int),
	}
}

// RecordTick accumulates one tick report.
func (m *Metrics) RecordTick(report TickReport) {
	m.Ticks++
	if report.ProcessorBusy {
		m.BusyTicks++
	}
	m.ActionCounts[report.Action]++
	for _, ev := range report.Events {
		m.EventCounts[ev.Action]++
	}
}

// RecordCompletion accumulates a process that reached Done.
func (m *Metrics) RecordCompletion(p *Process) {
	ta := p.Turnaround()
	m.CompletedProcesses++
	m.TotalTurnaround += ta
	m.TotalWait += p.WaitTicks
	m.TotalBlocked += p.BlockedTicks
	if ta > m.MaxTurnaround {
		m.MaxTurnaround = ta
	}
}

// Utilization returns CPUTicks / Ticks, 0 before the first tick.
func (m *Metrics) Utilization() float64 {
	if m.Ticks == 0 {
		return 0
	}
	return float64(m.CPUTicks) / float64(m.Ticks)
}

// MeanTurnaround returns the average turnaround of completed processes.
func (m *Metrics) MeanTurnaround() float64 {
	if m.CompletedProcesses == 0 {
		return 0
	}
	return float64(m.TotalTurnaround) / float64(m.CompletedProcesses)
}

// MeanWait returns the average number of ticks completed processes spent Ready.
func (m *Metrics) MeanWait() float64 {
	if m.CompletedProcesses == 0 {
		return 0
	}
	return float64(m.TotalWait) / float64(m.CompletedProcesses)
}

// MeanBlocked returns the average number of ticks completed processes spent Blocked.
func (m *Metrics) MeanBlocked() float64 {
	if m.CompletedProcesses == 0 {
		return 0
	}
	return float64(m.TotalBlocked) / float64(m.CompletedProcesses)
}

// IdleTicks returns the ticks that ended with the processor free.
func (m *Metrics) IdleTicks() int64 {
	return m.Ticks - m.BusyTicks
}

// Print displays aggregated metrics at the end of the simulation.
// Action lines show the ticks reported with that label and how often the action was
// performed, including occurrences hidden behind a later step of the same tick.
func (m *Metrics) Print(w io.Writer) {
	fmt.Fprintln(w, "=== Simulation Metrics ===")
	fmt.Fprintf(w, "%-20s : %d\n", "Ticks Simulated", m.Ticks)
	fmt.Fprintf(w, "%-20s : %d\n", "Simulation Ended At", m.SimEndedTime)
	fmt.Fprintf(w, "%-20s : %d\n", "Busy Ticks", m.BusyTicks)
	fmt.Fprintf(w, "%-20s : %d\n", "Idle Ticks", m.IdleTicks())
	fmt.Fprintf(w, "%-20s : %d\n", "CPU Ticks", m.CPUTicks)
	fmt.Fprintf(w, "%-20s : %.2f%%\n", "CPU Utilization", 100*m.Utilization())
	fmt.Fprintf(w, "%-20s : %d\n", "Completed Processes", m.CompletedProcesses)
	if m.CompletedProcesses > 0 {
		fmt.Fprintf(w, "%-20s : %.2f ticks\n", "Average Turnaround", m.MeanTurnaround())
		fmt.Fprintf(w, "%-20s : %.2f ticks\n", "Average Wait", m.MeanWait())
		fmt.Fprintf(w, "%-20s : %.2f ticks\n", "Average Blocked", m.MeanBlocked())
		fmt.Fprintf(w, "%-20s : %d ticks\n", "Max Turnaround", m.MaxTurnaround)
	}

	fmt.Fprintln(w, "=== Actions (reported / performed) ===")
	for _, a := range Actions {
		reported, performed := m.ActionCounts[a], m.EventCounts[a]
		if reported == 0 && performed == 0 {
			continue
		}
		fmt.Fprintf(w, "%-20s : %d / %d\n", string(a), reported, performed)
	}
}
