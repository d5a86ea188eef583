package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigBudget           = "budget"
	ConfigThreads          = "threads"
	ConfigDumpPath         = "dump-path"
	ConfigPrintUnreachable = "print-unreachable"
	ConfigPrintPath        = "print-path"
	ConfigSVGPath          = "svg-path"
	ConfigHistogram        = "histogram"
	ConfigMemoryFraction   = "memory-fraction"
	ConfigDebug            = "debug"
	ConfigConfigFile       = "config-file"
)

// Config resolves settings from flags, then RAYSOLVER_* environment
// variables, then an optional config file, then defaults.
type Config struct {
	*viper.Viper
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("raysolver")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(ConfigBudget, 3)
	v.SetDefault(ConfigThreads, 1)
	v.SetDefault(ConfigDumpPath, "")
	v.SetDefault(ConfigPrintUnreachable, false)
	v.SetDefault(ConfigPrintPath, false)
	v.SetDefault(ConfigSVGPath, "")
	v.SetDefault(ConfigHistogram, false)
	v.SetDefault(ConfigMemoryFraction, 0.5)
	v.SetDefault(ConfigDebug, false)
	v.SetDefault(ConfigConfigFile, "")
	return v
}

func DefaultConfig() *Config {
	return &Config{Viper: newViper()}
}

func (c *Config) Load(args []string) error {
	c.Viper = newViper()

	fs := pflag.NewFlagSet("raysolve", pflag.ContinueOnError)
	fs.Int(ConfigBudget, 3, "maximum number of player 0 pieces")
	fs.Int(ConfigThreads, 1, "number of workers per retrograde pass")
	fs.String(ConfigDumpPath, "", "write the distance dump to this file")
	fs.Bool(ConfigPrintUnreachable, false, "print positions player 0 can't force to termination")
	fs.Bool(ConfigPrintPath, false, "print the optimal line from the deepest position")
	fs.String(ConfigSVGPath, "", "render the optimal line from the deepest position to this SVG file")
	fs.Bool(ConfigHistogram, false, "print a histogram of dist0 values")
	fs.Float64(ConfigMemoryFraction, 0.5, "refuse to run if the estimate exceeds this fraction of system memory")
	fs.Bool(ConfigDebug, false, "debug logging on")
	fs.String(ConfigConfigFile, "", "optional config file (yaml, toml, json)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := c.BindPFlags(fs); err != nil {
		return err
	}
	if cf := c.GetString(ConfigConfigFile); cf != "" {
		c.SetConfigFile(cf)
		if err := c.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %s: %w", cf, err)
		}
	}
	return c.validate()
}

func (c *Config) validate() error {
	if c.GetInt(ConfigThreads) < 1 {
		return fmt.Errorf("%s must be at least 1", ConfigThreads)
	}
	if f := c.GetFloat64(ConfigMemoryFraction); f <= 0 {
		return fmt.Errorf("%s must be positive", ConfigMemoryFraction)
	}
	return nil
}

// Settings returns the resolved settings, for logging.
func (c *Config) Settings() map[string]any {
	return c.AllSettings()
}
