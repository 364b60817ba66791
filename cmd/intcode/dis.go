package main

import (
	"github.com/spf13/cobra"
)

var disCmd = &cobra.Command{
	Use:   "dis [flags] program",
	Short: "Disassemble a program.",
	Long: `Write a listing of a program, with the address and cells of each
instruction. Cells that do not decode as an instruction are listed as data.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		_, err = loadConfig(cmd)
		if err != nil {
			return
		}

		prog, err := loadProgram(cmd, args[0])
		if err != nil {
			return
		}

		err = writeListing(cmd.OutOrStdout(), prog)

		return
	},
}

func init() {
	rootCmd.AddCommand(disCmd)
}
