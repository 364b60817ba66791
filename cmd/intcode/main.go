// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

// Command intcode assembles and runs intcode programs.
//
// Programs are read either as comma separated integers, or as assembler
// source when the file name ends in ".asm".
package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ezrec/intcode/config"
	"github.com/ezrec/intcode/machine"
	"github.com/ezrec/intcode/translate"
)

var f = translate.From

var (
	ErrPredefine = errors.New(f("predefine must be NAME=VALUE"))
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:          "intcode",
	Short:        "An intcode assembler and emulator.",
	SilenceUsage: true,
}

func main() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")
	rootCmd.PersistentFlags().StringP("config", "c", "", "TOML configuration file")
	rootCmd.PersistentFlags().StringArrayP("define", "D", nil, "assembler predefine NAME=VALUE")
	rootCmd.PersistentFlags().Int("memory-limit", 0, "memory limit in cells, 0 for unlimited")
	rootCmd.PersistentFlags().Int("max-steps", 0, "instructions per machine, 0 for unlimited")
}

// loadConfig reads the configuration file, if any, and applies the flags
// the user set on top of it.
func loadConfig(cmd *cobra.Command) (cfg *config.Config, err error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return
	}

	if len(path) == 0 {
		cfg = config.Default()
	} else {
		cfg, err = config.Load(path)
		if err != nil {
			return
		}
	}

	flags := cmd.Flags()

	if flags.Changed("verbose") {
		cfg.Machine.Verbose, _ = flags.GetBool("verbose")
	}
	if flags.Changed("memory-limit") {
		cfg.Machine.MemoryLimit, _ = flags.GetInt("memory-limit")
	}
	if flags.Changed("max-steps") {
		cfg.Machine.MaxSteps, _ = flags.GetInt("max-steps")
	}
	if flags.Changed("seeds") {
		cfg.Chain.Seeds, _ = flags.GetInt64Slice("seeds")
	}
	if flags.Changed("feedback") {
		cfg.Chain.Feedback, _ = flags.GetBool("feedback")
	}
	if flags.Changed("idle-rounds") {
		cfg.Network.IdleRounds, _ = flags.GetInt("idle-rounds")
	}
	if flags.Changed("count") {
		cfg.Network.Count, _ = flags.GetInt("count")
	}
	if flags.Changed("sentinel") {
		cfg.Network.Sentinel, _ = flags.GetInt64("sentinel")
	}
	if flags.Changed("first") {
		cfg.Network.First, _ = flags.GetBool("first")
	}

	err = cfg.Validate()
	if err != nil {
		return
	}

	if cfg.Machine.Verbose {
		log.SetLevel(log.DebugLevel)
	}

	return
}

// loadProgram reads a program file, assembling it if it is assembler
// source. Other programs are given a disassembled listing.
func loadProgram(cmd *cobra.Command, path string) (prog *machine.Program, err error) {
	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	if filepath.Ext(path) == ".asm" {
		prog, err = assemble(cmd, inf)
	} else {
		var tape []int64
		tape, err = machine.ReadProgram(inf)
		if err == nil {
			prog = machine.Disassemble(tape)
		}
	}

	if err != nil {
		prog = nil
		err = errors.Join(errors.New(path), err)
	}

	return
}

// newAssembler creates an assembler with the predefines from the command line.
func newAssembler(cmd *cobra.Command) (asm *machine.Assembler, err error) {
	defines, err := cmd.Flags().GetStringArray("define")
	if err != nil {
		return
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	asm = &machine.Assembler{Verbose: verbose}

	for _, define := range defines {
		name, value, ok := strings.Cut(define, "=")
		if !ok || len(name) == 0 {
			asm = nil
			err = errors.Join(ErrPredefine, errors.New(define))
			return
		}
		asm.Predefine(name, value)
	}

	return
}
