package elisp

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the settings of the command-line driver.
type Config struct {
	Prompt         string   `yaml:"prompt"`
	ContinuePrompt string   `yaml:"continue_prompt"`
	History        string   `yaml:"history"`
	Preload        []string `yaml:"preload"`
	LogLevel       string   `yaml:"log_level"`
}

// DefaultConfig returns the settings used without a configuration file.
func DefaultConfig() *Config {
	return &Config{
		Prompt:         "> ",
		ContinuePrompt: "... ",
		History:        "~/.elisp_history",
		LogLevel:       "warn",
	}
}

// LoadConfig reads a YAML configuration file. Settings it leaves out keep
// their defaults; an empty path means no file.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		file, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer file.Close()

		decoder := yaml.NewDecoder(file)
		decoder.KnownFields(true)
		if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	cfg.History = expandHome(cfg.History)
	for i, p := range cfg.Preload {
		cfg.Preload[i] = expandHome(p)
	}
	return cfg, nil
}

// Level returns the slog level named by LogLevel.
func (cfg *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return 0, fmt.Errorf("config: log_level: %w", err)
	}
	return level, nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
