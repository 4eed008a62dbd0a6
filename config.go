package aoc

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config controls where puzzle inputs come from and how the runner
// behaves. It is read from an optional YAML/TOML/JSON file and the
// environment, the environment winning.
type Config struct {
	Year        int    `yaml:"year" toml:"year" env:"AOC_YEAR" env-default:"2024" env-description:"puzzle year"`
	InputDir    string `yaml:"input_dir" toml:"input_dir" env:"AOC_INPUT_DIR" env-default:"." env-description:"directory holding <year>/<day>.input files"`
	Session     string `yaml:"session" toml:"session" env:"AOC_SESSION" env-description:"adventofcode.com session cookie"`
	SessionFile string `yaml:"session_file" toml:"session_file" env:"AOC_SESSION_FILE" env-description:"file holding the session cookie (default $HOME/keys/aoc.session)"`
	Workers     int    `yaml:"workers" toml:"workers" env:"AOC_WORKERS" env-default:"1" env-description:"days solved concurrently"`
	LogLevel    string `yaml:"log_level" toml:"log_level" env:"AOC_LOG_LEVEL" env-default:"info" env-description:"debug, info, warn or error"`
}

// LoadConfig reads the config file at path, if any, then applies
// environment overrides and defaults.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	var err error
	if path != "" {
		err = cleanenv.ReadConfig(path, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		return Config{}, fmt.Errorf("loading config: %w", err)
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return cfg, nil
}

// ConfigUsage describes the environment variables understood by
// LoadConfig.
func ConfigUsage() string {
	var cfg Config
	s, err := cleanenv.GetDescription(&cfg, nil)
	if err != nil {
		return ""
	}
	return s
}

func (c Config) session() (string, error) {
	if c.Session != "" {
		return c.Session, nil
	}
	f := c.SessionFile
	if f == "" {
		f = filepath.Join(os.Getenv("HOME"), "keys", "aoc.session")
	}
	b, err := os.ReadFile(f)
	if err != nil {
		return "", fmt.Errorf("reading session: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}
