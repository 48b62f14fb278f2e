package generator

import (
	"sort"
	"strings"
)

// Aggregator extracts the dependency manifest from install-style command
// lines in the document, using the target family's command vocabulary.
type Aggregator struct {
	rules *RuleSet
}

// NewAggregator creates an aggregator for the given rule set.
func NewAggregator(rules *RuleSet) *Aggregator {
	return &Aggregator{rules: rules}
}

// Aggregate scans the raw document text for install command lines and
// returns the deduplicated manifest. A package's first dev/non-dev
// classification wins; later lines never flip it. When any classified file
// carries an entity-like kind, the family's implicit ORM packages are added
// as runtime dependencies even if no install line mentions them.
func (a *Aggregator) Aggregate(doc *Document, files []ClassifiedFile) []Dependency {
	classified := make(map[string]bool) // names already recorded; first wins
	isDev := make(map[string]bool)
	var order []string

	record := func(name string, dev bool) {
		if name == "" || classified[name] {
			return
		}
		classified[name] = true
		isDev[name] = dev
		order = append(order, name)
	}

	for _, line := range strings.Split(doc.Source, "\n") {
		args, ok := a.installArgs(line)
		if !ok {
			continue
		}

		dev := false
		var packages []string
		for _, tok := range args {
			if a.isDevFlag(tok) {
				dev = true
				continue
			}
			if !validPackageToken(tok) {
				continue
			}
			packages = append(packages, tok)
		}
		// A dev flag anywhere on the line applies to every package on it.
		for _, name := range packages {
			record(name, dev)
		}
	}

	for _, f := range files {
		if f.Kind.IsEntityLike() {
			for _, name := range a.rules.EntityDeps {
				record(name, false)
			}
			break
		}
	}

	deps := make([]Dependency, 0, len(order))
	for _, name := range order {
		deps = append(deps, Dependency{Name: name, IsDev: isDev[name]})
	}
	return deps
}

// installArgs returns the argument tokens of an install command line, or
// ok=false when the line is not one.
func (a *Aggregator) installArgs(line string) ([]string, bool) {
	trimmed := strings.TrimSpace(line)
	for _, cmd := range a.rules.InstallCommands {
		idx := strings.Index(trimmed, cmd)
		if idx < 0 {
			continue
		}
		rest := strings.TrimSpace(trimmed[idx+len(cmd):])
		if rest == "" {
			return nil, false
		}
		return strings.Fields(rest), true
	}
	return nil, false
}

func (a *Aggregator) isDevFlag(tok string) bool {
	for _, flag := range a.rules.DevFlags {
		if tok == flag {
			return true
		}
	}
	return false
}

// validPackageToken filters out flags, file arguments and path-like tokens
// that appear on install lines but are not package names.
func validPackageToken(tok string) bool {
	switch {
	case tok == "" || tok == ".":
		return false
	case strings.HasPrefix(tok, "-"):
		return false
	case strings.HasSuffix(tok, ".txt") || strings.HasSuffix(tok, ".md"):
		return false
	case strings.Contains(tok, "\\"):
		return false
	case strings.Contains(tok, "/") && !strings.HasPrefix(tok, "@"):
		// Scoped npm packages (@nestjs/typeorm) contain a slash; anything
		// else with a separator is a filesystem path.
		return false
	default:
		return true
	}
}

// SplitManifest partitions a manifest into runtime and development lists,
// each sorted by name for stable output.
func SplitManifest(deps []Dependency) (runtime, dev []string) {
	for _, d := range deps {
		if d.IsDev {
			dev = append(dev, d.Name)
		} else {
			runtime = append(runtime, d.Name)
		}
	}
	sort.Strings(runtime)
	sort.Strings(dev)
	return runtime, dev
}
