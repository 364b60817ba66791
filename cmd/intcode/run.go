package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ezrec/intcode/emulator"
	"github.com/ezrec/intcode/io"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] program",
	Short: "Run a program, connected to a text tape.",
	Long: `Run a program. Each time the program needs input, one line is read
from the input tape. Output is written to standard output.`,
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

		input, _ := cmd.Flags().GetString("input")
		ascii, _ := cmd.Flags().GetBool("ascii")

		emu := emulator.NewEmulator(prog)
		emu.Verbose = cfg.Machine.Verbose
		emu.MemoryLimit = cfg.Machine.MemoryLimit
		emu.MaxSteps = cfg.Machine.MaxSteps
		emu.Tape = io.Tape{
			Output: cmd.OutOrStdout(),
			Ascii:  ascii,
		}

		if input == "-" {
			emu.Tape.Input = cmd.InOrStdin()
			if file, ok := emu.Tape.Input.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
				emu.Prompt = func() {
					fmt.Fprint(cmd.ErrOrStderr(), "? ")
				}
			}
		} else {
			var inf *os.File
			inf, err = os.Open(input)
			if err != nil {
				return
			}
			defer inf.Close()
			emu.Tape.Input = inf
		}

		err = emu.Run()

		return
	},
}

func init() {
	runCmd.Flags().StringP("input", "i", "-", "input tape, - for standard input")
	runCmd.Flags().BoolP("ascii", "a", false, "exchange ASCII text instead of integers")
	rootCmd.AddCommand(runCmd)
}
