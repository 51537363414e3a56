// Package config loads the turing command configuration.
//
// Values are layered, lowest to highest priority: built-in defaults, a
// turing.yaml (or turing.yml) file, TURING_ environment variables, and
// command line flags that were explicitly set.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

const (
	EnvPrefix      = "TURING_"
	DefaultFormat  = "auto"
	DefaultLevel   = "info"
	DefaultResults = ""
)

// ConfigFiles are searched, in order, in the working directory.
var ConfigFiles = []string{"turing.yaml", "turing.yml"}

// LogConfig selects the log sinks.
type LogConfig struct {
	Level   string `koanf:"level"`
	File    string `koanf:"file"`
	Journal bool   `koanf:"journal"`
}

// Config holds all command options.
type Config struct {
	MaxSteps   int64     `koanf:"max_steps"`
	ErrorHalts bool      `koanf:"error_halts"`
	Verbose    bool      `koanf:"verbose"`
	Trace      bool      `koanf:"trace"`
	Format     string    `koanf:"format"`
	Results    string    `koanf:"results"`
	Log        LogConfig `koanf:"log"`

	File string `koanf:"-"` // Config file used, if any.
}

func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range ConfigFiles {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// envKey maps TURING_LOG_LEVEL to log.level and TURING_MAX_STEPS to max_steps.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	if rest, ok := strings.CutPrefix(key, "log_"); ok {
		key = "log." + rest
	}
	return key
}

// flagKey maps --log-level to log.level and --max-steps to max_steps.
func flagKey(name string) string {
	key := strings.ReplaceAll(name, "-", "_")
	if rest, ok := strings.CutPrefix(key, "log_"); ok {
		key = "log." + rest
	}
	return key
}

// Load configuration from the defaults, the config file, the environment and
// the flags. An empty file searches the working directory for ConfigFiles.
// flags may be nil.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]any{
		"max_steps":   int64(0),
		"error_halts": false,
		"verbose":     false,
		"trace":       false,
		"format":      DefaultFormat,
		"results":     DefaultResults,
		"log.level":   DefaultLevel,
		"log.file":    "",
		"log.journal": false,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	used := findConfigFile(cfgFile)
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", used, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed {
				return "", nil
			}
			return flagKey(f.Name), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.File = used

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
