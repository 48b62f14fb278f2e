package generator

import "log"

// DefaultMaxResolveSteps bounds the reference resolver's worklist. The cap
// exists as runaway protection for pathological documents; ordinary cyclic
// import graphs terminate well before it because every canonical path is
// classified at most once and every specifier is looked up at most once.
const DefaultMaxResolveSteps = 256

// emittableLanguage reports whether fragments of this language become output
// files. Shell transcripts, env templates and prose blocks stay in the
// document; they feed the dependency aggregator instead.
func emittableLanguage(lang string) bool {
	switch lang {
	case "bash", "sh", "env", "text", "":
		return false
	default:
		return true
	}
}

// importAwareLanguage reports whether the import parser understands the
// language's import syntax well enough to extract relative specifiers.
func importAwareLanguage(lang string) bool {
	switch lang {
	case "typescript", "ts", "javascript", "js", "tsx", "jsx":
		return true
	default:
		return false
	}
}

// Resolver discovers fragments that are referenced by relative imports but
// were not part of the initially classified set, classifying them too until
// a fixed point is reached.
type Resolver struct {
	classifier *Classifier
	maxSteps   int
}

// NewResolver creates a resolver. maxSteps <= 0 selects the default bound.
func NewResolver(classifier *Classifier, maxSteps int) *Resolver {
	if maxSteps <= 0 {
		maxSteps = DefaultMaxResolveSteps
	}
	return &Resolver{classifier: classifier, maxSteps: maxSteps}
}

// candidate is a document fragment with its would-be classification,
// precomputed once so specifier lookups are map-cheap.
type candidate struct {
	fragment Fragment
	path     string
	kind     Kind
}

// Resolve expands the file graph with every fragment transitively reachable
// via relative imports, up to the step bound. The loop is an explicit
// worklist with a visited set keyed on specifier stems, so cyclic reference
// graphs terminate without recursion. Re-running Resolve on its own output
// adds nothing (idempotent fixed point).
func (r *Resolver) Resolve(g *FileGraph, doc *Document) []Warning {
	var warnings []Warning

	// Precompute would-be classifications for every emittable fragment in
	// document order; lookups below match against these stems.
	var candidates []candidate
	for _, f := range doc.Fragments() {
		if !emittableLanguage(f.Language) {
			continue
		}
		path, kind := r.classifier.Classify(f)
		candidates = append(candidates, candidate{fragment: f, path: path, kind: kind})
	}

	visited := make(map[string]bool)
	var worklist []string

	enqueue := func(imports []ImportStatement) {
		for _, imp := range imports {
			if !imp.IsRelative {
				continue
			}
			s := stem(imp.ModulePath)
			if !visited[s] {
				visited[s] = true
				worklist = append(worklist, s)
			}
		}
	}

	for _, f := range g.Files() {
		enqueue(f.Imports)
	}

	steps := 0
	for len(worklist) > 0 {
		if steps >= r.maxSteps {
			log.Printf("Warning: reference resolution stopped after %d steps with %d specifiers pending", steps, len(worklist))
			break
		}
		steps++

		s := worklist[0]
		worklist = worklist[1:]

		if g.HasStem(s) {
			continue
		}

		// Not found in this scan means the specifier stays unresolved; the
		// visited set keeps it from being looked up again and the rewriter
		// reports it.
		for _, c := range candidates {
			if stem(c.path) != s {
				continue
			}
			file := ClassifiedFile{
				Path:     c.path,
				Content:  r.classifier.PrepareContent(c.fragment),
				Kind:     c.kind,
				Language: c.fragment.Language,
			}
			if importAwareLanguage(c.fragment.Language) {
				imports, ws := ParseImports(file.Content)
				file.Imports = imports
				warnings = append(warnings, ws...)
			}
			if g.Add(file) {
				enqueue(file.Imports)
			}
			break
		}
	}

	return warnings
}
