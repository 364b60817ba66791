package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ezrec/intcode/config"
	"github.com/ezrec/intcode/harness"
)

var chainCmd = &cobra.Command{
	Use:   "chain [flags] program",
	Short: "Run a chain of machines, one per seed.",
	Long: `Run a chain of machines, each given its seed as its first input. The
signal is sent to the first machine, and the last output of the last machine
is printed. With --best, every ordering of the seeds is tried.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return
		}

		prog, err := loadProgram(cmd, args[0])
		if err != nil {
			return
		}
		program := prog.Tape()

		signal, _ := cmd.Flags().GetInt64("signal")
		best, _ := cmd.Flags().GetBool("best")

		if best {
			var output int64
			var order []int64
			output, order, err = harness.BestChainLimit(program, cfg.Chain.Seeds, cfg.Chain.Feedback, signal, cfg.Machine.MaxSteps)
			if err != nil {
				return
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d %v\n", output, order)
			return
		}

		chain := newChain(cfg, program, cfg.Chain.Seeds)
		output, err := chain.Signal(signal)
		if err != nil {
			return
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%d\n", output)

		return
	},
}

// newChain creates a chain with the configured machine limits.
func newChain(cfg *config.Config, program []int64, seeds []int64) (chain *harness.Chain) {
	chain = harness.NewChain(program, seeds, cfg.Chain.Feedback)
	chain.Verbose = cfg.Machine.Verbose
	chain.MaxSteps = cfg.Machine.MaxSteps
	for _, m := range chain.Machines {
		m.Memory.Limit = cfg.Machine.MemoryLimit
	}

	return
}

func init() {
	chainCmd.Flags().Int64Slice("seeds", nil, "machine seeds, in chain order")
	chainCmd.Flags().Bool("feedback", false, "connect the last machine to the first")
	chainCmd.Flags().Int64("signal", 0, "signal sent to the first machine")
	chainCmd.Flags().Bool("best", false, "try every ordering of the seeds")
	rootCmd.AddCommand(chainCmd)
}
