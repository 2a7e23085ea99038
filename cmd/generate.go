package cmd

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/proc-sim/sim/workload"
)

var (
	genConfig = workload.DefaultGeneratorConfig()
	genOutput string // destination; "-" writes to stdout
	genFormat string
)

// generateCmd writes a random, reproducible process description.
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a random process description",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !workload.IsValidFormat(genFormat) {
			return &InvalidInvocationError{Args: args, Reason: fmt.Sprintf("unknown format %q", genFormat)}
		}
		desc, err := workload.Generate(genConfig)
		if err != nil {
			return err
		}
		format := workload.Format(genFormat)
		if genOutput == "-" {
			data, err := workload.Encode(desc, genOutput, format)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}
		if err := workload.NewLoader(nil).Save(context.Background(), genOutput, format, desc); err != nil {
			return err
		}
		logrus.Infof("Wrote %d processes to %s", len(desc.Processes), genOutput)
		return nil
	},
}

func init() {
	f := generateCmd.Flags()
	f.IntVar(&genConfig.Count, "count", genConfig.Count, "Number of processes")
	f.Int64Var(&genConfig.Seed, "seed", genConfig.Seed, "Seed for reproducible generation")
	f.Int64Var(&genConfig.FirstArrival, "first-arrival", genConfig.FirstArrival, "Arrival time of the first process")
	f.Float64Var(&genConfig.MeanInterarrival, "mean-interarrival", genConfig.MeanInterarrival, "Mean gap between arrivals in ticks")
	f.Int64Var(&genConfig.MinCPU, "min-cpu", genConfig.MinCPU, "Minimum required processor time")
	f.Int64Var(&genConfig.MaxCPU, "max-cpu", genConfig.MaxCPU, "Maximum required processor time")
	f.Float64Var(&genConfig.IOProbability, "io-probability", genConfig.IOProbability, "Probability that a process performs I/O")
	f.IntVar(&genConfig.MaxIO, "max-io", genConfig.MaxIO, "Maximum I/O requests per process")
	f.Int64Var(&genConfig.MinIODuration, "min-io-duration", genConfig.MinIODuration, "Minimum I/O duration in ticks")
	f.Int64Var(&genConfig.MaxIODuration, "max-io-duration", genConfig.MaxIODuration, "Maximum I/O duration in ticks")
	f.StringVarP(&genOutput, "output", "o", "-", "Destination path or URL ('-' for stdout)")
	f.StringVar(&genFormat, "format", string(workload.FormatAuto), "Output format (auto, text, yaml); auto picks by extension, text for stdout")

	rootCmd.AddCommand(generateCmd)
}
