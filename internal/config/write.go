package config

import (
	"fmt"
	"os"

	"github.com/dmitrijs2005/credvault/internal/filex"
	"github.com/goccy/go-yaml"
)

// WriteFile stores c as YAML at path, creating the directory if needed.
func WriteFile(c *Config, path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	if err := filex.EnsureParentDir(path); err != nil {
		return fmt.Errorf("could not create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}
