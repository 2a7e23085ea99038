package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/inference-sim/proc-sim/sim"
	"github.com/inference-sim/proc-sim/sim/report"
	"github.com/inference-sim/proc-sim/sim/telemetry"
	"github.com/inference-sim/proc-sim/sim/trace"
	"github.com/inference-sim/proc-sim/sim/workload"
)

const version = "0.1.0"

var (
	// CLI flags for the run command
	logLevel    string // Log verbosity level
	sleepMs     int64  // Inter-tick display pause in milliseconds
	descFormat  string // Process description format
	maxTicks    int64  // Tick guard (0 = unlimited)
	quiet       bool   // Suppress per-tick lines
	showSummary bool   // Print metrics and the completion table
	traceOutput string // Path of the YAML tick trace (empty = no trace)
	traceLevel  string // Trace verbosity
	otelOutput  string // Path of the OpenTelemetry span output ("-" = stdout, empty = disabled)
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:     "proc-sim",
	Short:   "Discrete-time simulator of single-processor scheduling with blocking I/O",
	Version: version,
}

// runOptions is the resolved configuration of one run.
type runOptions struct {
	invocation
	Format      workload.Format
	MaxTicks    int64
	Quiet       bool
	Summary     bool
	TraceOutput string
	TraceLevel  trace.TraceLevel
	OtelOutput  string
}

// runCmd executes the simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run [file] [sleepDuration]",
	Short: "Run the scheduling simulation",
	Long: "Load a process description (default " + workload.DefaultLocation + ") and simulate it tick by tick.\n" +
		"sleepDuration is the pause between printed ticks in milliseconds; it never affects the simulation.",
	Args: func(cmd *cobra.Command, args []string) error {
		_, err := parseInvocation(args, sleepMs)
		return err
	},
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		if !workload.IsValidFormat(descFormat) {
			logrus.Fatalf("Unknown format %q; valid: auto, text, yaml", descFormat)
		}
		if !trace.IsValidTraceLevel(traceLevel) {
			logrus.Fatalf("Unknown trace level %q; valid: none, ticks, events", traceLevel)
		}
		if maxTicks < 0 {
			logrus.Fatalf("--max-ticks must be non-negative, got %d", maxTicks)
		}

		inv, err := parseInvocation(args, sleepMs)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		opts := runOptions{
			invocation:  inv,
			Format:      workload.Format(descFormat),
			MaxTicks:    maxTicks,
			Quiet:       quiet,
			Summary:     showSummary,
			TraceOutput: traceOutput,
			TraceLevel:  trace.TraceLevel(traceLevel),
			OtelOutput:  otelOutput,
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		if err := runSimulation(ctx, cmd.OutOrStdout(), workload.NewLoader(nil), opts); err != nil {
			var malformed *sim.MalformedInputError
			if errors.As(err, &malformed) {
				logrus.Fatalf("Failed to load processes: %v", err)
			}
			logrus.Fatalf("Simulation failed: %v", err)
		}
		logrus.Info("Simulation complete.")
	},
}

// runSimulation loads the description, runs it to completion and writes all requested output.
func runSimulation(ctx context.Context, out io.Writer, loader *workload.Loader, opts runOptions) (err error) {
	procs, err := loader.LoadProcesses(ctx, opts.Location, opts.Format)
	if err != nil {
		return err
	}
	logrus.Infof("Loaded %d processes from %s", len(procs), opts.Location)

	var st *trace.SimulationTrace
	if opts.TraceOutput != "" {
		st = trace.NewSimulationTrace(trace.TraceConfig{Level: opts.TraceLevel, Source: opts.Location})
	}
	s := sim.NewSimulator(sim.SimConfig{MaxTicks: opts.MaxTicks, Trace: st}, procs)
	printer := report.NewPrinter(out, opts.Delay, opts.Quiet)

	var runSpan *telemetry.RunSpan
	if opts.OtelOutput != "" {
		recorder, closeOutput, rerr := newRecorder(out, opts.OtelOutput)
		if rerr != nil {
			return rerr
		}
		defer func() {
			if serr := recorder.Shutdown(context.Background()); serr != nil && err == nil {
				err = fmt.Errorf("flushing spans: %w", serr)
			}
			closeOutput()
		}()
		attrs := map[string]string{"sim.source": opts.Location}
		if st != nil {
			attrs["sim.run_id"] = st.RunID
		}
		ctx, runSpan = recorder.StartRun(ctx, "simulation", attrs)
	}

	runErr := s.Run(ctx, sim.ChainObservers(printer.Observe, runSpan.Observe))
	runSpan.End(runErr)

	// The trace is written even when the run aborts, to help diagnose the failure.
	if st != nil {
		if werr := st.WriteFile(opts.TraceOutput); werr != nil && runErr == nil {
			return werr
		}
	}
	if runErr != nil {
		return runErr
	}

	if opts.Summary {
		fmt.Fprintln(out)
		s.Metrics.Print(out)
		report.WriteCompletionTable(out, s.Completed, s.Metrics)
	}
	return nil
}

// newRecorder opens the span destination; "-" writes next to the tick output.
func newRecorder(out io.Writer, path string) (*telemetry.Recorder, func(), error) {
	w := out
	closeOutput := func() {}
	if path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return nil, nil, fmt.Errorf("creating span output: %w", err)
		}
		w = f
		closeOutput = func() { _ = f.Close() }
	}
	recorder, err := telemetry.NewStdoutRecorder("proc-sim", version, w)
	if err != nil {
		closeOutput()
		return nil, nil, err
	}
	return recorder, closeOutput, nil
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().Int64Var(&sleepMs, "sleep", defaultSleepMs, "Pause between printed ticks in milliseconds (overridden by the sleepDuration argument)")
	runCmd.Flags().StringVar(&descFormat, "format", string(workload.FormatAuto), "Process description format (auto, text, yaml)")
	runCmd.Flags().Int64Var(&maxTicks, "max-ticks", 0, "Abort after this many ticks (0 = unlimited)")
	runCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Do not print per-tick lines")
	runCmd.Flags().BoolVar(&showSummary, "summary", false, "Print metrics and a per-process completion table")

	// Trace and telemetry output
	runCmd.Flags().StringVar(&traceOutput, "trace-output", "", "Write a YAML tick trace to this file")
	runCmd.Flags().StringVar(&traceLevel, "trace-level", string(trace.TraceLevelEvents), "Trace verbosity (none, ticks, events)")
	runCmd.Flags().StringVar(&otelOutput, "otel-output", "", "Write OpenTelemetry spans to this file ('-' for stdout)")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
