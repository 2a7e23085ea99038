package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// ioRequest is an I/O event in flight. The subsystem owns Remaining; the event's
// duration belongs to the submitting process.
type ioRequest struct {
	ProcessID  int
	SubmitTime int64
	Event      IOEvent
	Remaining  int64
}

// IOSubsystem services I/O requests and raises an interrupt for each completed one.
type IOSubsystem struct {
	inFlight   []*ioRequest // submission order
	interrupts *InterruptQueue
}

// NewIOSubsystem creates an IOSubsystem that delivers completions to interrupts.
func NewIOSubsystem(interrupts *InterruptQueue) *IOSubsystem {
	if interrupts == nil {
		panic("NewIOSubsystem: interrupts must not be nil")
	}
	return &IOSubsystem{interrupts: interrupts}
}

// Submit begins servicing ev for p. The countdown starts with the next Advance call,
// so a request submitted at tick t with duration d completes at tick t+d.
func (io *IOSubsystem) Submit(tick int64, ev IOEvent, p *Process) {
	if p == nil {
		panic("Submit: process must not be nil")
	}
	if ev.Duration <= 0 {
		panic(fmt.Sprintf("Submit: I/O duration must be positive, got %d for P%d", ev.Duration, p.ID))
	}
	io.inFlight = append(io.inFlight, &ioRequest{
		ProcessID:  p.ID,
		SubmitTime: tick,
		Event:      ev,
		Remaining:  ev.Duration,
	})
	logrus.Debugf("<< IO submit: P%d for %d ticks at tick %d", p.ID, ev.Duration, tick)
}

// Advance moves every in-flight request forward by one tick. Requests that finish are
// removed and produce one interrupt each, in submission order.
func (io *IOSubsystem) Advance(tick int64) {
	remaining := io.inFlight[:0]
	for _, req := range io.inFlight {
		req.Remaining--
		if req.Remaining <= 0 {
			io.interrupts.PushBack(Interrupt{ProcessID: req.ProcessID, Time: tick})
			logrus.Debugf("<< IO complete: P%d at tick %d (submitted at %d)", req.ProcessID, tick, req.SubmitTime)
			continue
		}
		remaining = append(remaining, req)
	}
	for i := len(remaining); i < len(io.inFlight); i++ {
		io.inFlight[i] = nil
	}
	io.inFlight = remaining
}

// InFlight returns the number of requests currently being serviced.
func (io *IOSubsystem) InFlight() int {
	return len(io.inFlight)
}
