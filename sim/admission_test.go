package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func activeIDs(ap *ActiveProcesses) []int {
	ids := make([]int, 0, ap.Len())
	for _, p := range ap.Items() {
		ids = append(ids, p.ID)
	}
	return ids
}

func TestAdmissionSource_OrdersByArrival_StableOnTies(t *testing.T) {
	// GIVEN processes listed out of arrival order with a tie between 2 and 3
	as := NewAdmissionSource([]*Process{
		NewProcess(1, 5, 1, nil),
		NewProcess(2, 2, 1, nil),
		NewProcess(3, 2, 1, nil),
		NewProcess(4, 0, 1, nil),
	})
	active := &ActiveProcesses{}

	// WHEN everything up to tick 5 is released
	n := as.ReleaseDue(5, active)

	// THEN release order is arrival order, ties in input order
	assert.Equal(t, 4, n)
	assert.Equal(t, []int{4, 2, 3, 1}, activeIDs(active))
	assert.False(t, as.HasPendingArrivals())
}

func TestAdmissionSource_ReleaseDue_OnlyDueProcesses(t *testing.T) {
	as := NewAdmissionSource([]*Process{
		NewProcess(1, 1, 1, nil),
		NewProcess(2, 3, 1, nil),
	})
	active := &ActiveProcesses{}

	assert.Equal(t, 1, as.ReleaseDue(2, active))
	assert.Equal(t, []int{1}, activeIDs(active))
	assert.True(t, as.HasPendingArrivals())

	assert.Equal(t, 1, as.Pending())

	assert.Zero(t, as.ReleaseDue(2, active), "re-releasing the same tick is a no-op")
	assert.Equal(t, 1, as.ReleaseDue(3, active))
	assert.False(t, as.HasPendingArrivals())
	assert.Zero(t, as.Pending())
}

func TestAdmissionSource_ReleasedProcessesAreNewArrivals(t *testing.T) {
	p := NewProcess(1, 0, 1, nil)
	p.State = StateReady
	as := NewAdmissionSource([]*Process{p})
	active := &ActiveProcesses{}

	as.ReleaseDue(0, active)

	assert.Equal(t, StateNewArrival, active.Items()[0].State)
}
