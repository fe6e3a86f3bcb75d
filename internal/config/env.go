package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// LoadEnv reads KEY=value pairs from path into the process environment.
// Variables that are already set win over the file. A missing file is only an
// error when required is true.
func LoadEnv(path string, required bool) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return nil
		}
		return fmt.Errorf("read env file: %w", err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

// APIKey resolves the credential named by APIKeyEnv through getenv.
func (c Config) APIKey(getenv func(string) string) string {
	if getenv == nil {
		getenv = os.Getenv
	}
	name := c.APIKeyEnv
	if name == "" {
		name = DefaultAPIKeyEnv
	}
	return strings.TrimSpace(getenv(name))
}
