package scaffold

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/mvp-joe/blueprint/internal/generator"
)

// nestBaseVersions pins the framework packages every generated NestJS
// project depends on. Extracted packages get "latest".
var nestBaseVersions = map[string]string{
	"@nestjs/common":           "^10.0.0",
	"@nestjs/core":             "^10.0.0",
	"@nestjs/platform-express": "^10.0.0",
	"@nestjs/typeorm":          "^10.0.0",
	"typeorm":                  "^0.3.0",
	"pg":                       "^8.0.0",
	"class-validator":          "^0.14.0",
	"class-transformer":        "^0.5.0",
}

// nestDevDependencies is the fixed development toolchain of a generated
// NestJS project.
var nestDevDependencies = map[string]string{
	"@nestjs/cli":        "^10.0.0",
	"@nestjs/schematics": "^10.0.0",
	"@nestjs/testing":    "^10.0.0",
	"@types/jest":        "^29.5.0",
	"@types/node":        "^20.0.0",
	"@types/supertest":   "^2.0.12",
	"jest":               "^29.5.0",
	"ts-jest":            "^29.1.0",
	"typescript":         "^5.0.0",
}

// packageJSON models the manifest written for NestJS projects. encoding/json
// sorts map keys, so output is deterministic.
type packageJSON struct {
	Name            string            `json:"name"`
	Version         string            `json:"version"`
	Description     string            `json:"description"`
	Scripts         map[string]string `json:"scripts"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

// WriteManifest renders the dependency manifest to the family's package
// file: package.json for NestJS, requirements.txt for Django.
func (w *Writer) WriteManifest(family, projectName string, rules *generator.RuleSet, deps []generator.Dependency) error {
	switch family {
	case "nestjs":
		return w.writePackageJSON(projectName, rules, deps)
	case "django":
		return w.writeRequirements(rules, deps)
	default:
		return fmt.Errorf("no manifest format for family %q", family)
	}
}

func (w *Writer) writePackageJSON(projectName string, rules *generator.RuleSet, deps []generator.Dependency) error {
	pkg := packageJSON{
		Name:        projectName,
		Version:     "1.0.0",
		Description: "Generated application",
		Scripts: map[string]string{
			"start":      "nest start",
			"start:dev":  "nest start --watch",
			"start:prod": "node dist/main",
			"build":      "nest build",
		},
		Dependencies:    map[string]string{},
		DevDependencies: map[string]string{},
	}

	for _, name := range rules.BaseDependencies {
		pkg.Dependencies[name] = versionFor(name)
	}
	for _, d := range deps {
		if d.IsDev {
			pkg.DevDependencies[d.Name] = versionFor(d.Name)
		} else {
			pkg.Dependencies[d.Name] = versionFor(d.Name)
		}
	}
	for name, version := range nestDevDependencies {
		if _, taken := pkg.DevDependencies[name]; !taken {
			pkg.DevDependencies[name] = version
		}
	}

	data, err := json.MarshalIndent(pkg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal package.json: %w", err)
	}
	return w.writeFile("package.json", append(data, '\n'))
}

func versionFor(name string) string {
	if v, ok := nestBaseVersions[name]; ok {
		return v
	}
	return "latest"
}

func (w *Writer) writeRequirements(rules *generator.RuleSet, deps []generator.Dependency) error {
	seen := make(map[string]bool)
	var lines []string

	add := func(spec string) {
		spec = strings.TrimRight(strings.TrimSpace(spec), ".,;")
		if spec == "" || seen[spec] {
			return
		}
		seen[spec] = true
		lines = append(lines, spec)
	}

	for _, spec := range rules.BaseDependencies {
		add(spec)
	}
	for _, d := range deps {
		// pip has no dev split in requirements.txt; everything is listed.
		add(d.Name)
	}

	sort.Strings(lines)
	return w.writeFile("requirements.txt", []byte(strings.Join(lines, "\n")+"\n"))
}
