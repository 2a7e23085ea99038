package sim

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// runAll runs procs to completion and returns every tick report.
func runAll(t *testing.T, procs ...*Process) (*Simulator, []TickReport) {
	t.Helper()
	s := NewSimulator(SimConfig{}, procs)
	var reports []TickReport
	err := s.Run(context.Background(), func(r TickReport) error {
		reports = append(reports, r)
		return nil
	})
	require.NoError(t, err)
	return s, reports
}

func labels(reports []TickReport) []Action {
	out := make([]Action, len(reports))
	for i, r := range reports {
		out[i] = r.Action
	}
	return out
}

func doneTimes(s *Simulator) map[int]int64 {
	out := make(map[int]int64, len(s.Completed))
	for _, p := range s.Completed {
		out[p.ID] = p.DoneTime
	}
	return out
}

func completedByID(s *Simulator, id int) *Process {
	for _, p := range s.Completed {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// mixedWorkload exercises overlapping arrivals, I/O and idle gaps.
func mixedWorkload() []*Process {
	return []*Process{
		NewProcess(1, 0, 6, []IOEvent{{Time: 2, Duration: 3}, {Time: 4, Duration: 1}}),
		NewProcess(2, 0, 3, nil),
		NewProcess(3, 2, 5, []IOEvent{{Time: 1, Duration: 4}}),
		NewProcess(4, 2, 2, []IOEvent{{Time: 1, Duration: 2}}),
		NewProcess(5, 9, 4, nil),
		NewProcess(6, 40, 3, []IOEvent{{Time: 2, Duration: 2}}),
	}
}
