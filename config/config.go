// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package config loads the duet command settings from a toml file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/ezrec/duet/cpu"
	"github.com/ezrec/duet/duet"
	"github.com/ezrec/duet/translate"
)

var f = translate.From

var (
	ErrModeInvalid     = errors.New(f("mode must be single, dual or both"))
	ErrMaxTicksInvalid = errors.New(f("max_ticks must not be negative"))
)

const (
	MODE_BOTH = "both" // Run single, then dual.
)

// Config holds the command configuration.
type Config struct {
	Mode     string            // single, dual or both
	Verbose  bool              // Verbose logging.
	Identity string            // Identity register for dual mode.
	MaxTicks int               `mapstructure:"max_ticks"` // Tick bound per run, 0 for none.
	Expand   bool              // Evaluate $(...) expressions.
	Defines  map[string]string // Predefined names for $(...) expressions.
}

// Load reads configuration from file and env. Env var overrides use prefix DUET_.
// If path is empty, $HOME/.config/duet/config.toml is used when present.
func Load(path string) (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("mode", MODE_BOTH)
	v.SetDefault("verbose", false)
	v.SetDefault("identity", duet.IDENTITY_REGISTER.String())
	v.SetDefault("max_ticks", 0)
	v.SetDefault("expand", false)
	v.SetDefault("defines", map[string]string{})

	v.SetConfigType("toml")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "duet"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("DUET")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	err := v.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		// An explicit config file must exist.
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}

	return c, nil
}

// Validate checks the configuration values.
func (c Config) Validate() (err error) {
	_, err = c.Modes()
	if err != nil {
		return
	}

	_, err = c.Register()
	if err != nil {
		return
	}

	if c.MaxTicks < 0 {
		err = ErrMaxTicksInvalid
		return
	}

	return
}

// Modes returns the scheduler modes to run, in order.
func (c Config) Modes() (modes []duet.Mode, err error) {
	switch strings.ToLower(c.Mode) {
	case duet.MODE_SINGLE.String():
		modes = []duet.Mode{duet.MODE_SINGLE}
	case duet.MODE_DUAL.String():
		modes = []duet.Mode{duet.MODE_DUAL}
	case MODE_BOTH:
		modes = []duet.Mode{duet.MODE_SINGLE, duet.MODE_DUAL}
	default:
		err = ErrModeInvalid
	}

	return
}

// Register returns the identity register.
func (c Config) Register() (reg cpu.Register, err error) {
	return cpu.ParseRegister(c.Identity)
}
