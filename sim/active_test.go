package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActiveProcesses_FirstInState_CollectionOrder(t *testing.T) {
	// GIVEN [A:ready, B:newArrival, C:ready]
	ap := &ActiveProcesses{}
	a := NewProcess(1, 0, 1, nil)
	a.State = StateReady
	b := NewProcess(2, 0, 1, nil)
	c := NewProcess(3, 0, 1, nil)
	c.State = StateReady
	ap.Add(a)
	ap.Add(b)
	ap.Add(c)

	// THEN the first match in insertion order wins
	assert.Same(t, a, ap.FirstInState(StateReady))
	assert.Same(t, b, ap.FirstInState(StateNewArrival))
	assert.Nil(t, ap.FirstInState(StateProcessing))
}

func TestActiveProcesses_FirstInState_DoesNotReorder(t *testing.T) {
	ap := &ActiveProcesses{}
	for id := 1; id <= 3; id++ {
		ap.Add(NewProcess(id, 0, 1, nil))
	}
	ap.FirstInState(StateNewArrival).State = StateReady
	ap.FirstInState(StateNewArrival).State = StateReady

	assert.Equal(t, []int{1, 2, 3}, activeIDs(ap))
	assert.Equal(t, 3, ap.FirstInState(StateNewArrival).ID)
}

func TestActiveProcesses_FindByID(t *testing.T) {
	ap := &ActiveProcesses{}
	p := NewProcess(42, 0, 1, nil)
	ap.Add(p)
	assert.Same(t, p, ap.FindByID(42))
	assert.Nil(t, ap.FindByID(7))
}

func TestActiveProcesses_RemoveDone_PreservesOrder(t *testing.T) {
	// GIVEN [1, 2:done, 3, 4:done]
	ap := &ActiveProcesses{}
	for id := 1; id <= 4; id++ {
		p := NewProcess(id, 0, 1, nil)
		if id%2 == 0 {
			p.State = StateDone
		}
		ap.Add(p)
	}

	// WHEN done processes are removed
	removed := ap.RemoveDone()

	// THEN the survivors keep their relative order
	assert.Len(t, removed, 2)
	assert.Equal(t, 2, removed[0].ID)
	assert.Equal(t, 4, removed[1].ID)
	assert.Equal(t, []int{1, 3}, activeIDs(ap))
}

func TestActiveProcesses_Snapshots_AreCopies(t *testing.T) {
	ap := &ActiveProcesses{}
	p := NewProcess(1, 0, 3, []IOEvent{{Time: 1, Duration: 1}})
	ap.Add(p)

	snaps := ap.Snapshots()
	snaps[0].State = StateDone

	assert.Equal(t, StateNewArrival, p.State)
	assert.Equal(t, 1, snaps[0].PendingIO)
}
