// Package sim provides the discrete-time simulation engine for proc-sim: a single
// processor shared by processes that arrive over time and block on I/O.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - process.go: Process lifecycle (newArrival → ready → processing → blocked/done)
//   - action.go: per-tick actions and the rule that picks the reported label
//   - simulator.go: the tick loop (interrupt, admission, dispatch)
//
// # Architecture
//
// The core never parses input or writes to the console; collaborators live in
// sub-packages:
//   - sim/workload/: process description parsing (text, YAML) and loading over afs URLs
//   - sim/report/: per-tick console lines and the completion table
//   - sim/trace/: tick trace recording and YAML export
//   - sim/telemetry/: OpenTelemetry spans for a run
//
// Time is an integer tick. Each Step releases due arrivals, advances in-flight I/O,
// then handles at most one interrupt, admits at most one arrival and dispatches or
// continues at most one process. All three steps run every tick; the reported label is
// dispatch > admission > interrupt.
package sim
