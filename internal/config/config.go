package config

// Config represents the complete blueprint configuration.
// It can be loaded from .blueprint/config.yml with environment variable
// overrides.
type Config struct {
	Project   ProjectConfig   `yaml:"project" mapstructure:"project"`
	Paths     PathsConfig     `yaml:"paths" mapstructure:"paths"`
	Generator GeneratorConfig `yaml:"generator" mapstructure:"generator"`
}

// ProjectConfig names the generated project and its target family.
type ProjectConfig struct {
	Name      string `yaml:"name" mapstructure:"name"`           // output project name
	Framework string `yaml:"framework" mapstructure:"framework"` // "nestjs" or "django"
}

// PathsConfig defines where boilerplate documents are found and where the
// generated tree is written.
type PathsConfig struct {
	Boilerplates []string `yaml:"boilerplates" mapstructure:"boilerplates"` // glob patterns for documents
	Ignore       []string `yaml:"ignore" mapstructure:"ignore"`             // glob patterns to skip while discovering
	OutputDir    string   `yaml:"output_dir" mapstructure:"output_dir"`     // root for the generated project
	SourceRoot   string   `yaml:"source_root" mapstructure:"source_root"`   // prefix for canonical paths inside the project
}

// GeneratorConfig tunes the pipeline.
type GeneratorConfig struct {
	MaxResolveSteps int  `yaml:"max_resolve_steps" mapstructure:"max_resolve_steps"` // reference resolver worklist bound
	FailOnWarnings  bool `yaml:"fail_on_warnings" mapstructure:"fail_on_warnings"`   // treat any warning as a command failure
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Project: ProjectConfig{
			Name:      "generated-app",
			Framework: "nestjs",
		},
		Paths: PathsConfig{
			Boilerplates: []string{
				"**/*_BOILERPLATE.md",
				"*_BOILERPLATE.md",
			},
			Ignore: []string{
				"node_modules/**",
				"vendor/**",
				".git/**",
				"dist/**",
				"build/**",
			},
			OutputDir:  ".",
			SourceRoot: "src",
		},
		Generator: GeneratorConfig{
			MaxResolveSteps: 256,
			FailOnWarnings:  false,
		},
	}
}
