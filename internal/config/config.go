// Package config resuelve la configuración de arranque: defaults, archivo YAML
// opcional y variables de entorno. Los flags de la CLI se aplican encima.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config es la configuración completa del proceso.
type Config struct {
	DataDir          string `yaml:"data_dir"`
	UsersFile        string `yaml:"users_file"`
	PetsFile         string `yaml:"pets_file"`
	ApplicationsFile string `yaml:"applications_file"`

	LogLevel  string `yaml:"log_level"`  // debug, info, warn, error
	LogFormat string `yaml:"log_format"` // text, json
	LogFile   string `yaml:"log_file"`   // vacío = stderr

	MaxAttempts  int  `yaml:"max_attempts"`
	SeedDemoPets bool `yaml:"seed_demo_pets"`

	// Warnings junta problemas no fatales de la carga. Se loguean cuando el
	// logger ya existe.
	Warnings []string `yaml:"-"`
}

func Default() Config {
	return Config{
		DataDir:          ".",
		UsersFile:        "users.dat",
		PetsFile:         "pets.dat",
		ApplicationsFile: "applications.dat",
		LogLevel:         "info",
		LogFormat:        "text",
		MaxAttempts:      3,
		SeedDemoPets:     true,
	}
}

// Load aplica defaults, luego el archivo YAML (si path no es vacío) y luego env.
// Un path explícito que no existe es error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnv()
	return &cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("PETADOPT_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("PETADOPT_LOG_FILE"); v != "" {
		c.LogFile = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		c.LogFormat = v
	}
	if v := os.Getenv("PETADOPT_MAX_ATTEMPTS"); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			c.MaxAttempts = n
		} else {
			c.Warnings = append(c.Warnings, fmt.Sprintf("ignoring PETADOPT_MAX_ATTEMPTS=%q: not a number", v))
		}
	}
	if v := os.Getenv("PETADOPT_SEED_PETS"); v != "" {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			c.SeedDemoPets = b
		} else {
			c.Warnings = append(c.Warnings, fmt.Sprintf("ignoring PETADOPT_SEED_PETS=%q: not a boolean", v))
		}
	}
}

// Validate chequea que la configuración sea usable.
func (c *Config) Validate() error {
	var errs []error
	if c.MaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("max_attempts must be at least 1, got %d", c.MaxAttempts))
	}
	for name, v := range map[string]string{
		"users_file":        c.UsersFile,
		"pets_file":         c.PetsFile,
		"applications_file": c.ApplicationsFile,
	} {
		if strings.TrimSpace(v) == "" {
			errs = append(errs, fmt.Errorf("%s must not be empty", name))
		}
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("unsupported log format %q: use 'text' or 'json'", c.LogFormat))
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("unsupported log level %q", c.LogLevel))
	}
	return errors.Join(errs...)
}
