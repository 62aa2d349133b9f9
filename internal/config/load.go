package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// FlagKeys maps command-line flag names to config keys. Only flags present
// in the FlagSet passed to Load are bound.
var FlagKeys = map[string]string{
	"data-dir":     "data_dir",
	"lang":         "language",
	"backend":      "store.backend",
	"store-file":   "store.file",
	"max-attempts": "auth.max_attempts",
	"hash":         "hash.algorithm",
	"log-level":    "log.level",
	"log-output":   "log.output",
}

// Load builds a Config from defaults, the config file, the environment and
// flags, in increasing order of precedence. explicitPath, when non-empty,
// must point at an existing file.
func Load(flags *pflag.FlagSet, explicitPath string) (*Config, error) {
	v := viper.New()

	var d Config
	d.LoadDefaults()
	for key, value := range defaultValues(&d) {
		v.SetDefault(key, value)
	}

	v.SetConfigName(AppName)
	v.SetConfigType("yaml")
	if explicitPath != "" {
		v.SetConfigFile(explicitPath)
	} else {
		v.AddConfigPath(filepath.Dir(DefaultFilePath()))
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix(AppName)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range FlagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.DataDir == "" {
		cfg.DataDir = d.DataDir
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultFilePath is where `credvault config init` writes the config file.
func DefaultFilePath() string {
	return filepath.Join(DefaultDataDir(), AppName+".yaml")
}

func defaultValues(c *Config) map[string]any {
	return map[string]any{
		"data_dir":             c.DataDir,
		"language":             c.Language,
		"store.backend":        c.Store.Backend,
		"store.file":           c.Store.File,
		"auth.max_attempts":    c.Auth.MaxAttempts,
		"hash.algorithm":       c.Hash.Algorithm,
		"crack.max_length":     c.Crack.MaxLength,
		"crack.alphabet":       c.Crack.Alphabet,
		"crack.progress_every": c.Crack.ProgressEvery,
		"log.level":            c.Log.Level,
		"log.format":           c.Log.Format,
		"log.output":           c.Log.Output,
		"log.file":             c.Log.File,
		"log.max_size_mb":      c.Log.MaxSizeMB,
		"log.max_backups":      c.Log.MaxBackups,
		"log.max_age_days":     c.Log.MaxAgeDays,
	}
}
