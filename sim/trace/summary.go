package trace

import (
	"fmt"
	"io"
	"sort"
)

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalTicks     int
	BusyTicks      int
	IdleTicks      int
	ActionCounts   map[string]int // reported label -> number of ticks
	EventCounts    map[string]int // action -> occurrences, from events-level traces only
	Completed      int
	MeanTurnaround float64
	MaxTurnaround  int64
	MeanWait       float64
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		ActionCounts: make(map[string]int),
		EventCounts:  make(map[string]int),
	}
	if st == nil {
		return summary
	}

	summary.TotalTicks = len(st.Ticks)
	for _, t := range st.Ticks {
		summary.ActionCounts[t.Action]++
		if t.ProcessorBusy {
			summary.BusyTicks++
		} else {
			summary.IdleTicks++
		}
		for _, ev := range t.Events {
			summary.EventCounts[ev.Action]++
		}
	}

	if len(st.Completions) > 0 {
		var totalTurnaround, totalWait int64
		for _, c := range st.Completions {
			totalTurnaround += c.Turnaround
			totalWait += c.WaitTicks
			if c.Turnaround > summary.MaxTurnaround {
				summary.MaxTurnaround = c.Turnaround
			}
		}
		summary.Completed = len(st.Completions)
		summary.MeanTurnaround = float64(totalTurnaround) / float64(summary.Completed)
		summary.MeanWait = float64(totalWait) / float64(summary.Completed)
	}

	return summary
}

// Print writes the summary in the aligned "label : value" layout of the run metrics.
func (s *TraceSummary) Print(w io.Writer) {
	fmt.Fprintln(w, "=== Trace Summary ===")
	fmt.Fprintf(w, "%-20s : %d\n", "Ticks", s.TotalTicks)
	fmt.Fprintf(w, "%-20s : %d\n", "Busy Ticks", s.BusyTicks)
	fmt.Fprintf(w, "%-20s : %d\n", "Idle Ticks", s.IdleTicks)
	fmt.Fprintf(w, "%-20s : %d\n", "Completed Processes", s.Completed)
	if s.Completed > 0 {
		fmt.Fprintf(w, "%-20s : %.2f ticks\n", "Average Turnaround", s.MeanTurnaround)
		fmt.Fprintf(w, "%-20s : %.2f ticks\n", "Average Wait", s.MeanWait)
		fmt.Fprintf(w, "%-20s : %d ticks\n", "Max Turnaround", s.MaxTurnaround)
	}
	printCounts(w, "Reported Labels", s.ActionCounts)
	printCounts(w, "Performed Actions", s.EventCounts)
}

// printCounts writes one line per key, sorted by name. Nothing is written for an empty map.
func printCounts(w io.Writer, title string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	fmt.Fprintf(w, "=== %s ===\n", title)
	for _, k := range keys {
		fmt.Fprintf(w, "%-20s : %d\n", k, counts[k])
	}
}
