package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// Config holds the session settings. Every field may come from a flag, an
// environment variable or the YAML config file.
type Config struct {
	User     string `yaml:"user"`
	FS       string `yaml:"fs"`
	Script   string `yaml:"script,omitempty"`
	LogLevel string `yaml:"log_level,omitempty"`
}

func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrConfigNotFound, "couldn't read %s", configPath)
		}
		return nil, errors.Wrapf(err, "couldn't read %s", configPath)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrapf(err, "couldn't parse %s", configPath)
	}
	return &cfg, nil
}

// Merge returns c with every non-empty field of override applied on top.
func (c Config) Merge(override Config) Config {
	if override.User != "" {
		c.User = override.User
	}
	if override.FS != "" {
		c.FS = override.FS
	}
	if override.Script != "" {
		c.Script = override.Script
	}
	if override.LogLevel != "" {
		c.LogLevel = override.LogLevel
	}
	return c
}

// Validate checks that the required settings are present.
func (c Config) Validate() error {
	if c.User == "" {
		return errors.New("a user name is required (--user)")
	}
	if c.FS == "" {
		return errors.New("an archive path is required (--fs)")
	}
	return nil
}
