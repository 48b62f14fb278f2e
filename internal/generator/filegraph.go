package generator

import (
	"fmt"

	"github.com/dominikbraun/graph"
)

// Edge is one relative-import relation between two classified files. An edge
// whose specifier matches no canonical path is kept with Unresolved set;
// edges are never silently dropped.
type Edge struct {
	From       string
	To         string
	Specifier  string
	Unresolved bool
}

// FileGraph owns the canonical-path→file mapping built up during a run.
// Paths are unique: a later file claiming an already-taken path is dropped
// and recorded as a duplicate-path warning, keeping the first winner.
type FileGraph struct {
	files    map[string]*ClassifiedFile
	order    []string
	edges    []Edge
	dag      graph.Graph[string, string]
	warnings []Warning
}

// NewFileGraph creates an empty file graph.
func NewFileGraph() *FileGraph {
	return &FileGraph{
		files: make(map[string]*ClassifiedFile),
		dag:   graph.New(graph.StringHash, graph.Directed()),
	}
}

// Add inserts a classified file. It returns false when the canonical path is
// already claimed; the earlier file is kept and a duplicate-path warning is
// recorded.
func (g *FileGraph) Add(f ClassifiedFile) bool {
	if _, taken := g.files[f.Path]; taken {
		g.warnings = append(g.warnings, Warning{
			Kind:    WarnDuplicatePath,
			Subject: f.Path,
			Detail:  fmt.Sprintf("a later fragment also classified to %s; first occurrence kept", f.Path),
		})
		return false
	}
	stored := f
	g.files[f.Path] = &stored
	g.order = append(g.order, f.Path)
	_ = g.dag.AddVertex(f.Path)
	return true
}

// Get returns the file at a canonical path.
func (g *FileGraph) Get(path string) (*ClassifiedFile, bool) {
	f, ok := g.files[path]
	return f, ok
}

// Len returns the number of classified files.
func (g *FileGraph) Len() int {
	return len(g.order)
}

// Paths returns every canonical path in insertion order.
func (g *FileGraph) Paths() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// Files returns the classified files in insertion order.
func (g *FileGraph) Files() []ClassifiedFile {
	out := make([]ClassifiedFile, 0, len(g.order))
	for _, p := range g.order {
		out = append(out, *g.files[p])
	}
	return out
}

// HasStem reports whether any classified path has the given filename stem.
func (g *FileGraph) HasStem(s string) bool {
	_, ok := g.resolveStem(s)
	return ok
}

// ResolveSpecifier maps a relative import specifier to the canonical path of
// its target file by filename-stem equality, ignoring extensions. The first
// match in insertion order wins, keeping resolution deterministic when two
// files share a stem.
func (g *FileGraph) ResolveSpecifier(specifier string) (string, bool) {
	return g.resolveStem(stem(specifier))
}

func (g *FileGraph) resolveStem(s string) (string, bool) {
	for _, p := range g.order {
		if stem(p) == s {
			return p, true
		}
	}
	return "", false
}

// BuildEdges derives the relative-import edge set from every file's parsed
// imports. Resolvable edges are also added to the underlying directed graph;
// unresolved ones are flagged and kept in the edge list only.
func (g *FileGraph) BuildEdges() []Edge {
	g.edges = g.edges[:0]
	for _, from := range g.order {
		f := g.files[from]
		for _, imp := range f.Imports {
			if !imp.IsRelative {
				continue
			}
			to, ok := g.ResolveSpecifier(imp.ModulePath)
			edge := Edge{From: from, To: to, Specifier: imp.ModulePath, Unresolved: !ok}
			g.edges = append(g.edges, edge)
			if ok && from != to {
				// Duplicate edges between the same pair are fine to drop here;
				// the edge list above keeps every import relation.
				_ = g.dag.AddEdge(from, to)
			}
		}
	}
	return g.edges
}

// Edges returns the edge set built by the last BuildEdges call.
func (g *FileGraph) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// Warnings returns the duplicate-path warnings collected so far.
func (g *FileGraph) Warnings() []Warning {
	out := make([]Warning, len(g.warnings))
	copy(out, g.warnings)
	return out
}

// SetContent replaces the content of a classified file, used by the path
// rewriter after import specifiers are recomputed.
func (g *FileGraph) SetContent(path, content string) {
	if f, ok := g.files[path]; ok {
		f.Content = content
	}
}

// SetImports replaces the parsed imports of a classified file.
func (g *FileGraph) SetImports(path string, imports []ImportStatement) {
	if f, ok := g.files[path]; ok {
		f.Imports = imports
	}
}
