package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIOSubsystem_CompletesAfterDuration(t *testing.T) {
	// GIVEN a request submitted at tick 3 for 3 ticks
	iq := &InterruptQueue{}
	io := NewIOSubsystem(iq)
	io.Submit(3, IOEvent{Time: 2, Duration: 3}, NewProcess(1, 0, 5, nil))

	// WHEN advanced on ticks 4 and 5
	io.Advance(4)
	io.Advance(5)

	// THEN nothing has completed yet
	assert.True(t, iq.IsEmpty())
	assert.Equal(t, 1, io.InFlight())

	// WHEN advanced on tick 6
	io.Advance(6)

	// THEN exactly one interrupt stamped with tick 6 is raised
	require.Equal(t, 1, iq.Len())
	irq, _ := iq.PopFront()
	assert.Equal(t, Interrupt{ProcessID: 1, Time: 6}, irq)
	assert.Zero(t, io.InFlight())
}

func TestIOSubsystem_SameTickCompletions_SubmissionOrder(t *testing.T) {
	// GIVEN A submitted before B, both finishing on tick 3
	iq := &InterruptQueue{}
	io := NewIOSubsystem(iq)
	// (I/O advances before dispatch within a tick, so B is submitted after Advance(2))
	io.Submit(1, IOEvent{Duration: 2}, NewProcess(10, 0, 5, nil))
	io.Advance(2)
	io.Submit(2, IOEvent{Duration: 1}, NewProcess(20, 0, 5, nil))
	require.Equal(t, 2, io.InFlight())

	// WHEN tick 3 is advanced
	io.Advance(3)

	// THEN one interrupt per request, A before B
	require.Equal(t, 2, iq.Len())
	a, _ := iq.PopFront()
	b, _ := iq.PopFront()
	assert.Equal(t, 10, a.ProcessID)
	assert.Equal(t, 20, b.ProcessID)
}

func TestIOSubsystem_KeepsUnfinishedInOrder(t *testing.T) {
	iq := &InterruptQueue{}
	io := NewIOSubsystem(iq)
	io.Submit(0, IOEvent{Duration: 3}, NewProcess(1, 0, 5, nil))
	io.Submit(0, IOEvent{Duration: 1}, NewProcess(2, 0, 5, nil))
	io.Submit(0, IOEvent{Duration: 2}, NewProcess(3, 0, 5, nil))

	var order []int
	for tick := int64(1); tick <= 3; tick++ {
		io.Advance(tick)
		for !iq.IsEmpty() {
			irq, _ := iq.PopFront()
			order = append(order, irq.ProcessID)
		}
	}
	assert.Equal(t, []int{2, 3, 1}, order)
}

func TestIOSubsystem_Submit_NonPositiveDuration_Panics(t *testing.T) {
	io := NewIOSubsystem(&InterruptQueue{})
	assert.Panics(t, func() {
		io.Submit(1, IOEvent{Duration: 0}, NewProcess(1, 0, 5, nil))
	})
}
