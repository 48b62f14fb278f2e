package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidFramework indicates an unsupported target family
	ErrInvalidFramework = errors.New("invalid target framework")

	// ErrEmptyProjectName indicates a missing project name
	ErrEmptyProjectName = errors.New("empty project name")

	// ErrInvalidResolveSteps indicates an invalid resolver bound
	ErrInvalidResolveSteps = errors.New("invalid max_resolve_steps")

	// ErrEmptyOutputDir indicates a missing output directory
	ErrEmptyOutputDir = errors.New("empty output directory")

	// ErrNoBoilerplatePatterns indicates an empty document pattern list
	ErrNoBoilerplatePatterns = errors.New("no boilerplate patterns")
)

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	if err := validateProject(&cfg.Project); err != nil {
		errs = append(errs, err)
	}
	if err := validatePaths(&cfg.Paths); err != nil {
		errs = append(errs, err)
	}
	if err := validateGenerator(&cfg.Generator); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}
	return nil
}

func validateProject(cfg *ProjectConfig) error {
	var errs []error

	if strings.TrimSpace(cfg.Name) == "" {
		errs = append(errs, fmt.Errorf("%w: project.name is required", ErrEmptyProjectName))
	}

	framework := strings.ToLower(cfg.Framework)
	if framework != "nestjs" && framework != "django" {
		errs = append(errs, fmt.Errorf("%w: must be 'nestjs' or 'django', got '%s'", ErrInvalidFramework, cfg.Framework))
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}
	return nil
}

func validatePaths(cfg *PathsConfig) error {
	var errs []error

	if strings.TrimSpace(cfg.OutputDir) == "" {
		errs = append(errs, fmt.Errorf("%w: paths.output_dir is required", ErrEmptyOutputDir))
	}
	if len(cfg.Boilerplates) == 0 {
		errs = append(errs, fmt.Errorf("%w: at least one paths.boilerplates pattern required", ErrNoBoilerplatePatterns))
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}
	return nil
}

func validateGenerator(cfg *GeneratorConfig) error {
	if cfg.MaxResolveSteps <= 0 {
		return fmt.Errorf("%w: must be positive, got %d", ErrInvalidResolveSteps, cfg.MaxResolveSteps)
	}
	return nil
}

// joinErrors combines multiple errors into a single error with clear formatting.
func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	if len(errs) == 1 {
		return errs[0]
	}

	var msgs []string
	for _, err := range errs {
		msgs = append(msgs, err.Error())
	}
	return fmt.Errorf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}
