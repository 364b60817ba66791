package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ezrec/intcode/harness"
)

var networkCmd = &cobra.Command{
	Use:   "network [flags] program",
	Short: "Run a network of machines exchanging packets.",
	Long: `Run a network of machines exchanging (address, x, y) packets. Packets
sent to the sentinel address go to a controller that restarts the network
when it is idle. The Y value the controller stops on is printed.`,
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

		nat := &harness.Nat{First: cfg.Network.First}

		network := harness.NewNetwork(program, cfg.Network.Count, nat)
		network.Verbose = cfg.Machine.Verbose
		network.MaxSteps = cfg.Machine.MaxSteps
		network.Sentinel = cfg.Network.Sentinel
		network.IdleRounds = cfg.Network.IdleRounds
		for _, m := range network.Machines {
			m.Memory.Limit = cfg.Machine.MemoryLimit
		}

		err = network.Run()
		if err != nil {
			return
		}

		var packets []harness.Packet
		if nat.First {
			packets = nat.Delivered
		} else {
			packets = nat.Injected
		}
		if len(packets) == 0 {
			err = harness.ErrNoOutput
			return
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%d\n", packets[len(packets)-1].Y)

		return
	},
}

func init() {
	networkCmd.Flags().Int("count", 50, "number of machines")
	networkCmd.Flags().Int64("sentinel", harness.NETWORK_SENTINEL, "controller address")
	networkCmd.Flags().Int("idle-rounds", harness.NETWORK_IDLE_ROUNDS, "idle rounds before the controller restarts the network")
	networkCmd.Flags().Bool("first", false, "stop at the first packet sent to the controller")
	rootCmd.AddCommand(networkCmd)
}
