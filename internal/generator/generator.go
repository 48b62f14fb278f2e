package generator

import (
	"context"
	"fmt"
	"time"
)

// ProgressReporter receives pipeline progress callbacks. All methods are
// optional no-ops for non-interactive callers.
type ProgressReporter interface {
	OnExtractComplete(sections, fragments int)
	OnClassifyStart(totalFragments int)
	OnFragmentClassified(path string)
	OnResolveComplete(discovered int)
	OnRewriteComplete(rewritten int)
	OnComplete(stats Stats)
}

// Generator runs the full pipeline: extract → classify → resolve references
// → rewrite paths → aggregate dependencies. It is a pure function of the
// input document; running it twice produces byte-identical output.
type Generator interface {
	Generate(ctx context.Context, doc *Document) (*Result, error)
}

type generator struct {
	rules           *RuleSet
	classifier      *Classifier
	maxResolveSteps int
	progress        ProgressReporter
	features        []string
}

// Option configures a Generator.
type Option func(*generator)

// WithProgress configures progress reporting.
func WithProgress(p ProgressReporter) Option {
	return func(g *generator) { g.progress = p }
}

// WithMaxResolveSteps bounds the reference resolver's worklist.
func WithMaxResolveSteps(n int) Option {
	return func(g *generator) { g.maxResolveSteps = n }
}

// WithFeatures restricts the initially classified set to the named feature
// sections. Unselected sections remain part of the resolver's lookup corpus,
// so files they define can still be pulled in by reference.
func WithFeatures(names ...string) Option {
	return func(g *generator) { g.features = names }
}

// New creates a generator for a target family ("nestjs", "django").
func New(family string, opts ...Option) (Generator, error) {
	rules, err := RuleSetFor(family)
	if err != nil {
		return nil, fmt.Errorf("failed to build rule set: %w", err)
	}
	g := &generator{
		rules:      rules,
		classifier: NewClassifier(rules),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Generate runs the pipeline on one parsed document.
func (g *generator) Generate(ctx context.Context, doc *Document) (*Result, error) {
	start := time.Now()

	result := &Result{}
	result.Warnings = append(result.Warnings, doc.Warnings...)

	fragments := g.selectedFragments(doc)

	if g.progress != nil {
		g.progress.OnExtractComplete(len(doc.Sections), len(fragments))
		g.progress.OnClassifyStart(len(fragments))
	}

	// Stage 1: classify the selected fragments in document order. Document
	// order is what makes the duplicate-path tie-break deterministic.
	fg := NewFileGraph()
	for _, f := range fragments {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !emittableLanguage(f.Language) {
			continue
		}

		path, kind := g.classifier.Classify(f)
		file := ClassifiedFile{
			Path:     path,
			Content:  g.classifier.PrepareContent(f),
			Kind:     kind,
			Language: f.Language,
		}
		if importAwareLanguage(f.Language) {
			imports, ws := ParseImports(file.Content)
			file.Imports = imports
			result.Warnings = append(result.Warnings, ws...)
		}

		fg.Add(file)
		if g.progress != nil {
			g.progress.OnFragmentClassified(path)
		}
	}
	initial := fg.Len()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 2: pull in fragments that are referenced but were not selected.
	resolver := NewResolver(g.classifier, g.maxResolveSteps)
	result.Warnings = append(result.Warnings, resolver.Resolve(fg, doc)...)
	if g.progress != nil {
		g.progress.OnResolveComplete(fg.Len() - initial)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 3: with every canonical path known, derive the edge set and
	// rewrite relative specifiers against final locations.
	fg.BuildEdges()
	rewritten, ws := RewriteImports(fg)
	result.Warnings = append(result.Warnings, ws...)
	if g.progress != nil {
		g.progress.OnRewriteComplete(rewritten)
	}

	// Stage 4: dependency manifest from install lines plus kind-implied deps.
	result.Files = fg.Files()
	result.Dependencies = NewAggregator(g.rules).Aggregate(doc, result.Files)
	result.Warnings = append(result.Warnings, fg.Warnings()...)

	result.Stats = Stats{
		Sections:         len(doc.Sections),
		Fragments:        len(fragments),
		FilesEmitted:     fg.Len(),
		FilesResolved:    fg.Len() - initial,
		ImportsRewritten: rewritten,
		DurationSeconds:  time.Since(start).Seconds(),
	}
	if g.progress != nil {
		g.progress.OnComplete(result.Stats)
	}

	return result, nil
}

// selectedFragments returns the fragments of the selected feature sections,
// or of every section when no selection was made.
func (g *generator) selectedFragments(doc *Document) []Fragment {
	if len(g.features) == 0 {
		return doc.Fragments()
	}
	wanted := make(map[string]bool, len(g.features))
	for _, name := range g.features {
		wanted[name] = true
	}
	var out []Fragment
	for _, s := range doc.Sections {
		if wanted[s.Name] {
			out = append(out, s.Fragments...)
		}
	}
	return out
}
