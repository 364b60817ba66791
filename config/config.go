// Package config loads the intcode command settings from TOML.
//
//	[machine]
//	memory_limit = 0       # cells; 0 is unlimited
//	max_steps = 0          # instructions per machine; 0 is unlimited
//	verbose = false
//
//	[chain]
//	seeds = [0, 1, 2, 3, 4]
//	feedback = false
//
//	[network]
//	count = 50
//	sentinel = 255
//	idle_rounds = 2
//	first = false
package config

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/ezrec/intcode/harness"
	"github.com/ezrec/intcode/translate"
)

var f = translate.From

var (
	ErrConfigKey   = errors.New(f("unknown configuration key"))
	ErrConfigValue = errors.New(f("invalid configuration value"))
)

// ErrConfig indicates a failure to load a configuration file.
type ErrConfig struct {
	Path string
	Err  error
}

func (err *ErrConfig) Error() string {
	return f("%v: %v", err.Path, err.Err)
}

func (err *ErrConfig) Unwrap() error {
	return err.Err
}

// Machine settings.
type Machine struct {
	MemoryLimit int  `toml:"memory_limit"`
	MaxSteps    int  `toml:"max_steps"`
	Verbose     bool `toml:"verbose"`
}

// Chain settings.
type Chain struct {
	Seeds    []int64 `toml:"seeds"`
	Feedback bool    `toml:"feedback"`
}

// Network settings.
type Network struct {
	Count      int   `toml:"count"`
	Sentinel   int64 `toml:"sentinel"`
	IdleRounds int   `toml:"idle_rounds"`
	First      bool  `toml:"first"`
}

// Config is the complete set of settings.
type Config struct {
	Machine Machine `toml:"machine"`
	Chain   Chain   `toml:"chain"`
	Network Network `toml:"network"`
}

// Default returns the settings used when no file is given.
func Default() (cfg *Config) {
	cfg = &Config{
		Chain: Chain{
			Seeds: []int64{0, 1, 2, 3, 4},
		},
		Network: Network{
			Count:      50,
			Sentinel:   harness.NETWORK_SENTINEL,
			IdleRounds: harness.NETWORK_IDLE_ROUNDS,
		},
	}

	return
}

// Decode reads settings from TOML text. Keys missing from the text keep
// their default values.
func Decode(input io.Reader) (cfg *Config, err error) {
	cfg = Default()

	md, err := toml.NewDecoder(input).Decode(cfg)
	if err != nil {
		cfg = nil
		return
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for n, key := range undecoded {
			keys[n] = key.String()
		}
		cfg = nil
		err = errors.Join(ErrConfigKey, errors.New(strings.Join(keys, ", ")))
		return
	}

	err = cfg.Validate()
	if err != nil {
		cfg = nil
	}

	return
}

// Load reads settings from a TOML file.
func Load(path string) (cfg *Config, err error) {
	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	cfg, err = Decode(inf)
	if err != nil {
		err = &ErrConfig{Path: path, Err: err}
	}

	return
}

// Validate checks that every setting is in range.
func (cfg *Config) Validate() (err error) {
	invalid := func(key string) error {
		return errors.Join(ErrConfigValue, errors.New(key))
	}

	switch {
	case cfg.Machine.MemoryLimit < 0:
		err = invalid("machine.memory_limit")
	case cfg.Machine.MaxSteps < 0:
		err = invalid("machine.max_steps")
	case cfg.Network.Count < 1:
		err = invalid("network.count")
	case cfg.Network.IdleRounds < 1:
		err = invalid("network.idle_rounds")
	}

	return
}
