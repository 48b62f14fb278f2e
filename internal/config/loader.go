package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from file and environment variables.
	// Priority: defaults → config file → environment variables (env wins)
	Load() (*Config, error)
}

type loader struct {
	rootDir string
}

// NewLoader creates a new configuration loader for the given root directory.
func NewLoader(rootDir string) Loader {
	return &loader{rootDir: rootDir}
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Environment variables (BLUEPRINT_*)
// 2. Config file (.blueprint/config.yml or .blueprint/config.yaml)
// 3. Default values
func (l *loader) Load() (*Config, error) {
	v := viper.New()

	configDir := filepath.Join(l.rootDir, ".blueprint")
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)

	v.SetEnvPrefix("BLUEPRINT")
	v.AutomaticEnv()
	// Replace . with _ in env var names (e.g. BLUEPRINT_PROJECT_FRAMEWORK)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.BindEnv("project.name")
	v.BindEnv("project.framework")
	v.BindEnv("paths.output_dir")
	v.BindEnv("paths.source_root")
	v.BindEnv("generator.max_resolve_steps")
	v.BindEnv("generator.fail_on_warnings")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Config file not found is acceptable - we'll use defaults + env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setDefaults configures viper with default values.
func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("project.name", defaults.Project.Name)
	v.SetDefault("project.framework", defaults.Project.Framework)

	v.SetDefault("paths.boilerplates", defaults.Paths.Boilerplates)
	v.SetDefault("paths.ignore", defaults.Paths.Ignore)
	v.SetDefault("paths.output_dir", defaults.Paths.OutputDir)
	v.SetDefault("paths.source_root", defaults.Paths.SourceRoot)

	v.SetDefault("generator.max_resolve_steps", defaults.Generator.MaxResolveSteps)
	v.SetDefault("generator.fail_on_warnings", defaults.Generator.FailOnWarnings)
}

// LoadConfig is a convenience function that creates a loader and loads
// config from the current working directory.
func LoadConfig() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return NewLoader(wd).Load()
}

// LoadConfigFromDir loads configuration from a specific directory.
func LoadConfigFromDir(rootDir string) (*Config, error) {
	return NewLoader(rootDir).Load()
}
