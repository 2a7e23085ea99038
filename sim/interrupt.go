// Implements the InterruptQueue, which holds completed-I/O notifications
// until the scheduler delivers them.

package sim

import (
	"fmt"
	"strings"
)

// Interrupt notifies that the named process's outstanding I/O has completed.
type Interrupt struct {
	ProcessID int
	Time      int64 // tick at which the I/O completed
}

func (i Interrupt) String() string {
	return fmt.Sprintf("Interrupt(P%d@%d)", i.ProcessID, i.Time)
}

// InterruptQueue is a FIFO of interrupts. It does not deduplicate: two interrupts for the
// same process are both retained and delivered in order.
type InterruptQueue struct {
	queue []Interrupt
}

// PushBack appends an interrupt to the back of the queue.
func (iq *InterruptQueue) PushBack(i Interrupt) {
	iq.queue = append(iq.queue, i)
}

// PopFront removes and returns the front interrupt. ok is false when the queue is empty.
func (iq *InterruptQueue) PopFront() (i Interrupt, ok bool) {
	if len(iq.queue) == 0 {
		return Interrupt{}, false
	}
	i = iq.queue[0]
	iq.queue = iq.queue[1:]
	return i, true
}

// IsEmpty reports whether no interrupts are waiting.
func (iq *InterruptQueue) IsEmpty() bool {
	return len(iq.queue) == 0
}

// Len returns the number of waiting interrupts.
func (iq *InterruptQueue) Len() int {
	return len(iq.queue)
}

func (iq *InterruptQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, val := range iq.queue {
		sb.WriteString(val.String())
		if i < len(iq.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}
