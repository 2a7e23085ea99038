// sim/simulator.go
package sim

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/proc-sim/sim/trace"
)

// TickReport is what a tick exposes to reporters: the reported label, every action
// performed in order, and read-only copies of the active processes at the end of the tick
// (processes that finished during the tick are still included).
type TickReport struct {
	Tick          int64
	Action        Action
	Events        []TickEvent
	Processes     []ProcessSnapshot
	ProcessorBusy bool
}

// TickObserver consumes tick reports. Returning an error stops Run.
type TickObserver func(TickReport) error

// ChainObservers calls each non-nil observer in order, stopping at the first error.
func ChainObservers(observers ...TickObserver) TickObserver {
	return func(r TickReport) error {
		for _, o := range observers {
			if o == nil {
				continue
			}
			if err := o(r); err != nil {
				return err
			}
		}
		return nil
	}
}

// SimConfig groups optional run parameters.
type SimConfig struct {
	MaxTicks int64                  // 0 = unlimited
	Trace    *trace.SimulationTrace // optional
}

// Simulator is the single-core scheduler loop. It owns the processor flag and drives
// admission, I/O and dispatch once per tick.
type Simulator struct {
	Clock    int64
	MaxTicks int64

	Source     *AdmissionSource
	Active     *ActiveProcesses
	Interrupts *InterruptQueue
	IO         *IOSubsystem
	Metrics    *Metrics
	Trace      *trace.SimulationTrace

	// Completed holds processes dropped from Active after reaching Done, in completion order.
	Completed []*Process

	// processorBusy is true iff exactly one active process is in StateProcessing.
	// Mutated only by dispatch.
	processorBusy bool
}

// NewSimulator creates a simulator over procs. Time starts at 0; the first Step runs tick 1.
func NewSimulator(cfg SimConfig, procs []*Process) *Simulator {
	interrupts := &InterruptQueue{}
	return &Simulator{
		Clock:      0,
		MaxTicks:   cfg.MaxTicks,
		Source:     NewAdmissionSource(procs),
		Active:     &ActiveProcesses{},
		Interrupts: interrupts,
		IO:         NewIOSubsystem(interrupts),
		Metrics:    NewMetrics(),
		Trace:      cfg.Trace,
	}
}

// ProcessorBusy reports whether a process currently holds the CPU.
func (sim *Simulator) ProcessorBusy() bool {
	return sim.processorBusy
}

// HasWork reports whether the loop must keep running: arrivals remain or
// some process is still active.
func (sim *Simulator) HasWork() bool {
	return sim.Source.HasPendingArrivals() || !sim.Active.IsEmpty()
}

// Run steps the simulation until no work remains. observer (optional) receives every tick
// report; ctx is checked between ticks.
func (sim *Simulator) Run(ctx context.Context, observer TickObserver) error {
	logrus.Infof("Starting simulation with %d pending processes", sim.Source.Pending())
	for sim.HasWork() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if sim.MaxTicks > 0 && sim.Clock >= sim.MaxTicks {
			return fmt.Errorf("%w: %d ticks, %d processes still active, %d pending, %d I/O in flight",
				ErrHorizonExceeded, sim.MaxTicks, sim.Active.Len(), sim.Source.Pending(), sim.IO.InFlight())
		}
		report, err := sim.Step()
		if err != nil {
			return err
		}
		if observer != nil {
			if err := observer(report); err != nil {
				return err
			}
		}
	}
	sim.Metrics.SimEndedTime = sim.Clock
	logrus.Infof("[tick %07d] Simulation ended, %d processes completed", sim.Clock, len(sim.Completed))
	return nil
}

// Step advances time by one tick and runs interrupt handling, admission and dispatch,
// in that order. All three steps execute every tick; the reported action is picked from
// the resulting events by ReportedAction.
func (sim *Simulator) Step() (TickReport, error) {
	sim.Clock++
	tick := sim.Clock

	sim.Source.ReleaseDue(tick, sim.Active)
	sim.IO.Advance(tick)

	events := make([]TickEvent, 0, 3)
	ev, ok, err := sim.handleInterrupt(tick)
	if err != nil {
		return TickReport{Tick: tick, Action: ActionNone}, err
	}
	if ok {
		events = append(events, ev)
	}
	if ev, ok := sim.admit(tick); ok {
		events = append(events, ev)
	}
	if ev, ok := sim.dispatch(tick); ok {
		events = append(events, ev)
	}

	sim.accountWaiting()

	report := TickReport{
		Tick:          tick,
		Action:        ReportedAction(events),
		Events:        events,
		Processes:     sim.Active.Snapshots(),
		ProcessorBusy: sim.processorBusy,
	}
	logrus.Tracef("[tick %07d] %s %v", tick, report.Action, events)

	sim.Metrics.RecordTick(report)
	sim.recordTrace(report)

	for _, p := range sim.Active.RemoveDone() {
		sim.Completed = append(sim.Completed, p)
		sim.Metrics.RecordCompletion(p)
		sim.Trace.RecordCompletion(completionRecord(p))
	}
	return report, nil
}

// handleInterrupt delivers at most one interrupt: Blocked -> Ready.
// An interrupt whose process is not active, or is active but not Blocked, is an
// OrphanInterruptError; such an interrupt is never silently applied.
func (sim *Simulator) handleInterrupt(tick int64) (TickEvent, bool, error) {
	irq, ok := sim.Interrupts.PopFront()
	if !ok {
		return TickEvent{}, false, nil
	}
	p := sim.Active.FindByID(irq.ProcessID)
	if p == nil {
		return TickEvent{}, false, &OrphanInterruptError{Interrupt: irq, Tick: tick}
	}
	if p.State != StateBlocked {
		return TickEvent{}, false, &OrphanInterruptError{Interrupt: irq, Tick: tick, State: p.State}
	}
	p.State = StateReady
	logrus.Debugf("<< Interrupt: P%d ready at tick %d", p.ID, tick)
	return TickEvent{Action: ActionInterrupt, ProcessID: p.ID}, true, nil
}

// admit moves the first NewArrival process to Ready. One admission per tick.
func (sim *Simulator) admit(tick int64) (TickEvent, bool) {
	p := sim.Active.FirstInState(StateNewArrival)
	if p == nil {
		return TickEvent{}, false
	}
	p.State = StateReady
	p.AdmitTime = tick
	logrus.Debugf("<< Admit: P%d at tick %d", p.ID, tick)
	return TickEvent{Action: ActionAdmit, ProcessID: p.ID}, true
}

// dispatch starts the first Ready process on a free CPU, or advances the running one.
func (sim *Simulator) dispatch(tick int64) (TickEvent, bool) {
	if !sim.processorBusy {
		p := sim.Active.FirstInState(StateReady)
		if p == nil {
			return TickEvent{}, false
		}
		p.State = StateProcessing
		if !p.Started {
			p.Started = true
			p.FirstRunTime = tick
		}
		sim.processorBusy = true
		logrus.Debugf("<< Begin: P%d at tick %d (%d/%d)", p.ID, tick, p.ProcessorTime, p.ReqProcessorTime)
		return TickEvent{Action: ActionBegin, ProcessID: p.ID}, true
	}

	p := sim.Active.FirstInState(StateProcessing)
	if p == nil {
		panic(fmt.Sprintf("dispatch: processor busy at tick %d but no process is running", tick))
	}
	p.ProcessorTime++
	sim.Metrics.CPUTicks++

	switch {
	case p.ProcessorTime >= p.ReqProcessorTime:
		if p.HasPendingIO() {
			logrus.Warnf("P%d finished with %d unissued I/O requests at or beyond its required processor time", p.ID, len(p.IOEvents))
			p.IOEvents = nil
		}
		p.State = StateDone
		p.DoneTime = tick
		sim.processorBusy = false
		logrus.Debugf("<< Finish: P%d at tick %d", p.ID, tick)
		return TickEvent{Action: ActionFinish, ProcessID: p.ID}, true
	case p.HasPendingIO() && p.ProcessorTime >= p.IOEvents[0].Time:
		sim.IO.Submit(tick, p.IOEvents[0], p)
		p.IOEvents = p.IOEvents[1:]
		p.IORequests++
		p.State = StateBlocked
		sim.processorBusy = false
		logrus.Debugf("<< IO request: P%d blocked at tick %d", p.ID, tick)
		return TickEvent{Action: ActionIORequest, ProcessID: p.ID}, true
	default:
		return TickEvent{Action: ActionContinue, ProcessID: p.ID}, true
	}
}

// accountWaiting charges the tick to every process left waiting on the CPU or on I/O.
func (sim *Simulator) accountWaiting() {
	for _, p := range sim.Active.Items() {
		switch p.State {
		case StateReady:
			p.WaitTicks++
		case StateBlocked:
			p.BlockedTicks++
		}
	}
}

func (sim *Simulator) recordTrace(report TickReport) {
	if !sim.Trace.Enabled() {
		return
	}
	events := make([]trace.EventRecord, len(report.Events))
	for i, ev := range report.Events {
		events[i] = trace.EventRecord{Action: string(ev.Action), ProcessID: ev.ProcessID}
	}
	sim.Trace.RecordTick(trace.TickRecord{
		Tick:          report.Tick,
		Action:        string(report.Action),
		Events:        events,
		Active:        len(report.Processes),
		ProcessorBusy: report.ProcessorBusy,
	})
}

func completionRecord(p *Process) trace.CompletionRecord {
	return trace.CompletionRecord{
		ProcessID:    p.ID,
		ArrivalTime:  p.ArrivalTime,
		AdmitTime:    p.AdmitTime,
		FirstRunTime: p.FirstRunTime,
		DoneTime:     p.DoneTime,
		Turnaround:   p.Turnaround(),
		WaitTicks:    p.WaitTicks,
		BlockedTicks: p.BlockedTicks,
		IORequests:   p.IORequests,
	}
}
