package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	AppName = "credvault"

	BackendJSON   = "json"
	BackendSQLite = "sqlite"

	DefaultAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// ErrInvalidConfig is wrapped by every error returned from Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds runtime settings for the credvault CLI.
type Config struct {
	DataDir  string      `mapstructure:"data_dir" yaml:"data_dir"`
	Language string      `mapstructure:"language" yaml:"language"`
	Store    StoreConfig `mapstructure:"store" yaml:"store"`
	Auth     AuthConfig  `mapstructure:"auth" yaml:"auth"`
	Hash     HashConfig  `mapstructure:"hash" yaml:"hash"`
	Crack    CrackConfig `mapstructure:"crack" yaml:"crack"`
	Log      LogConfig   `mapstructure:"log" yaml:"log"`
}

// StoreConfig selects the credential store backend and its file.
type StoreConfig struct {
	Backend string `mapstructure:"backend" yaml:"backend"`
	File    string `mapstructure:"file" yaml:"file"`
}

type AuthConfig struct {
	MaxAttempts int `mapstructure:"max_attempts" yaml:"max_attempts"`
}

type HashConfig struct {
	Algorithm string `mapstructure:"algorithm" yaml:"algorithm"`
}

// CrackConfig bounds the brute-force demonstration.
type CrackConfig struct {
	MaxLength     int    `mapstructure:"max_length" yaml:"max_length"`
	Alphabet      string `mapstructure:"alphabet" yaml:"alphabet"`
	ProgressEvery int    `mapstructure:"progress_every" yaml:"progress_every"`
}

// LogConfig controls the structured logger. With Output "file" the log is
// written to File (relative to the data dir) and rotated by size.
type LogConfig struct {
	Level      string `mapstructure:"level" yaml:"level"`
	Format     string `mapstructure:"format" yaml:"format"`
	Output     string `mapstructure:"output" yaml:"output"`
	File       string `mapstructure:"file" yaml:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" yaml:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days" yaml:"max_age_days"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DataDir = DefaultDataDir()
	c.Language = "en"
	c.Store = StoreConfig{Backend: BackendJSON}
	c.Auth = AuthConfig{MaxAttempts: 3}
	c.Hash = HashConfig{Algorithm: "sha256"}
	c.Crack = CrackConfig{MaxLength: 4, Alphabet: DefaultAlphabet, ProgressEvery: 1000}
	c.Log = LogConfig{
		Level:      "info",
		Format:     "text",
		Output:     "file",
		File:       AppName + ".log",
		MaxSizeMB:  10,
		MaxBackups: 3,
		MaxAgeDays: 28,
	}
}

// DefaultDataDir is the per-user application directory holding the
// credential file and logs.
func DefaultDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "." + AppName
	}
	return filepath.Join(dir, AppName)
}

// StorePath resolves the credential file location.
func (c *Config) StorePath() string {
	name := c.Store.File
	if name == "" {
		name = "credentials.json"
		if strings.EqualFold(c.Store.Backend, BackendSQLite) {
			name = "credentials.db"
		}
	}
	return c.resolve(name)
}

// LogPath resolves the log file location.
func (c *Config) LogPath() string {
	return c.resolve(c.Log.File)
}

func (c *Config) resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.DataDir, name)
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Store.Backend) {
	case BackendJSON, BackendSQLite:
	default:
		return fmt.Errorf("%w: unknown store backend %q", ErrInvalidConfig, c.Store.Backend)
	}
	if c.DataDir == "" {
		return fmt.Errorf("%w: data_dir must not be empty", ErrInvalidConfig)
	}
	if c.Auth.MaxAttempts < 1 {
		return fmt.Errorf("%w: auth.max_attempts must be at least 1, got %d", ErrInvalidConfig, c.Auth.MaxAttempts)
	}
	if c.Crack.MaxLength < 1 {
		return fmt.Errorf("%w: crack.max_length must be at least 1, got %d", ErrInvalidConfig, c.Crack.MaxLength)
	}
	if c.Crack.Alphabet == "" {
		return fmt.Errorf("%w: crack.alphabet must not be empty", ErrInvalidConfig)
	}
	if c.Log.Output == "file" && c.Log.File == "" {
		return fmt.Errorf("%w: log.file is required when log.output is file", ErrInvalidConfig)
	}
	return nil
}
