package cmd

import (
	"github.com/spf13/cobra"

	"github.com/inference-sim/proc-sim/sim/trace"
)

// summarizeCmd prints aggregate statistics of a trace written by `run --trace-output`.
var summarizeCmd = &cobra.Command{
	Use:   "summarize <trace-file>",
	Short: "Summarize a YAML tick trace",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := trace.ReadTraceFile(args[0])
		if err != nil {
			return err
		}
		trace.Summarize(st).Print(cmd.OutOrStdout())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(summarizeCmd)
}
