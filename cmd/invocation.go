package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/inference-sim/proc-sim/sim/workload"
)

// defaultSleepMs is the inter-tick display pause when none is given.
const defaultSleepMs = 50

// InvalidInvocationError reports a wrong count or shape of command-line arguments.
// It is returned before any simulation starts.
type InvalidInvocationError struct {
	Args   []string
	Reason string
}

func (e *InvalidInvocationError) Error() string {
	return fmt.Sprintf("invalid invocation %q: %s", strings.Join(e.Args, " "), e.Reason)
}

// invocation is the positional part of `run`: [file] [sleepDuration].
type invocation struct {
	Location string
	Delay    time.Duration
}

// parseInvocation accepts zero, one or two positional arguments. sleepMs is used when
// the second argument is absent.
func parseInvocation(args []string, sleepMs int64) (invocation, error) {
	inv := invocation{Location: workload.DefaultLocation}
	if sleepMs < 0 {
		return inv, &InvalidInvocationError{Args: args, Reason: fmt.Sprintf("sleep duration must be non-negative, got %d", sleepMs)}
	}
	inv.Delay = time.Duration(sleepMs) * time.Millisecond

	switch len(args) {
	case 0:
	case 1:
		inv.Location = args[0]
	case 2:
		inv.Location = args[0]
		ms, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil || ms < 0 {
			return inv, &InvalidInvocationError{Args: args, Reason: fmt.Sprintf("sleep duration %q is not a non-negative integer (milliseconds)", args[1])}
		}
		inv.Delay = time.Duration(ms) * time.Millisecond
	default:
		return inv, &InvalidInvocationError{Args: args, Reason: "incorrect number of command line arguments"}
	}
	if inv.Location == "" {
		return inv, &InvalidInvocationError{Args: args, Reason: "process description path must not be empty"}
	}
	return inv, nil
}
