package main

import (
	"fmt"
	stdio "io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ezrec/intcode/machine"
)

var asmCmd = &cobra.Command{
	Use:   "asm [flags] source.asm",
	Short: "Assemble a program.",
	Long: `Assemble a program, writing it as comma separated integers. With
--listing, each source line is printed with its address and generated cells.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		_, err = loadConfig(cmd)
		if err != nil {
			return
		}

		inf, err := os.Open(args[0])
		if err != nil {
			return
		}
		defer inf.Close()

		prog, err := assemble(cmd, inf)
		if err != nil {
			return
		}

		output := cmd.OutOrStdout()
		if path, _ := cmd.Flags().GetString("output"); path != "-" {
			var ouf *os.File
			ouf, err = os.Create(path)
			if err != nil {
				return
			}
			defer ouf.Close()
			output = ouf
		}

		if listing, _ := cmd.Flags().GetBool("listing"); listing {
			err = writeListing(output, prog)
			return
		}

		_, err = fmt.Fprintln(output, machine.FormatProgram(prog.Tape()))

		return
	},
}

// assemble parses assembler source with the command line predefines.
func assemble(cmd *cobra.Command, input stdio.Reader) (prog *machine.Program, err error) {
	asm, err := newAssembler(cmd)
	if err != nil {
		return
	}

	prog, err = asm.Parse(input)

	return
}

// writeListing writes each statement with its address and cells.
func writeListing(output stdio.Writer, prog *machine.Program) (err error) {
	for _, st := range prog.Statements {
		codes := make([]string, len(st.Codes))
		for n, code := range st.Codes {
			codes[n] = fmt.Sprintf("%d", code)
		}

		_, err = fmt.Fprintf(output, "%04d  %-24s  %s\n", st.Addr, strings.Join(codes, ","), st.Line)
		if err != nil {
			return
		}
	}

	return
}

func init() {
	asmCmd.Flags().StringP("output", "o", "-", "output file, - for standard output")
	asmCmd.Flags().BoolP("listing", "l", false, "write a listing instead of a program")
	rootCmd.AddCommand(asmCmd)
}
