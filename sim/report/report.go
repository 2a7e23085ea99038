// Package report renders simulation output for the console: one line per tick
// and an end-of-run completion table.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/inference-sim/proc-sim/sim"
)

// FormatTick renders a tick as "<tick>\t[label]\t<process states>".
func FormatTick(r sim.TickReport) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%5d\t%s\t", r.Tick, r.Action.Label())
	sb.WriteString(FormatProcesses(r.Processes))
	return sb.String()
}

// FormatProcesses renders snapshots as space-separated "P<id>:<state>(<used>/<required>)".
func FormatProcesses(procs []sim.ProcessSnapshot) string {
	parts := make([]string, len(procs))
	for i, p := range procs {
		parts[i] = fmt.Sprintf("P%d:%s(%d/%d)", p.ID, p.State, p.ProcessorTime, p.ReqProcessorTime)
	}
	return strings.Join(parts, " ")
}

// Printer writes tick lines to an output, pausing between ticks for readability.
// The pause is display pacing only.
type Printer struct {
	Out   io.Writer
	Delay time.Duration
	Quiet bool // suppress tick lines

	sleep func(time.Duration)
}

// NewPrinter creates a Printer writing to out.
func NewPrinter(out io.Writer, delay time.Duration, quiet bool) *Printer {
	return &Printer{Out: out, Delay: delay, Quiet: quiet, sleep: time.Sleep}
}

// Observe is a sim.TickObserver.
func (p *Printer) Observe(r sim.TickReport) error {
	if p.Quiet {
		return nil
	}
	if _, err := fmt.Fprintln(p.Out, FormatTick(r)); err != nil {
		return fmt.Errorf("writing tick %d: %w", r.Tick, err)
	}
	if p.Delay > 0 && p.sleep != nil {
		p.sleep(p.Delay)
	}
	return nil
}

// WriteCompletionTable renders one row per completed process plus an averages footer.
func WriteCompletionTable(w io.Writer, completed []*sim.Process, m *sim.Metrics) {
	rows := make([][]string, 0, len(completed))
	for _, p := range completed {
		rows = append(rows, []string{
			strconv.Itoa(p.ID),
			strconv.FormatInt(p.ArrivalTime, 10),
			strconv.FormatInt(p.ReqProcessorTime, 10),
			strconv.Itoa(p.IORequests),
			strconv.FormatInt(p.FirstRunTime, 10),
			strconv.FormatInt(p.WaitTicks, 10),
			strconv.FormatInt(p.BlockedTicks, 10),
			strconv.FormatInt(p.Turnaround(), 10),
			strconv.FormatInt(p.DoneTime, 10),
		})
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Arrival", "CPU", "IO", "First Run", "Wait", "Blocked", "Turnaround", "Done"})
	table.AppendBulk(rows)
	table.SetFooter([]string{"", "", "", "", "Average",
		fmt.Sprintf("%.2f", m.MeanWait()),
		"",
		fmt.Sprintf("%.2f", m.MeanTurnaround()),
		fmt.Sprintf("Utilization\n%.1f%%", m.Utilization()*100),
	})
	table.Render()
}
