package generator

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

// compiledPattern holds both the pattern string and compiled glob.
type compiledPattern struct {
	pattern string
	glob    glob.Glob
}

// DocumentDiscovery locates boilerplate documents under a root directory
// using glob patterns and ignore rules.
type DocumentDiscovery struct {
	rootDir        string
	docPatterns    []compiledPattern
	ignorePatterns []compiledPattern
}

// NewDocumentDiscovery compiles the document and ignore patterns.
func NewDocumentDiscovery(rootDir string, docPatterns, ignorePatterns []string) (*DocumentDiscovery, error) {
	dd := &DocumentDiscovery{rootDir: rootDir}

	for _, pattern := range docPatterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, err
		}
		dd.docPatterns = append(dd.docPatterns, compiledPattern{pattern: pattern, glob: g})
	}

	for _, pattern := range ignorePatterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, err
		}
		dd.ignorePatterns = append(dd.ignorePatterns, compiledPattern{pattern: pattern, glob: g})
	}

	return dd, nil
}

// Discover walks the tree and returns matching document paths, sorted for
// deterministic selection.
func (dd *DocumentDiscovery) Discover() ([]string, error) {
	var docs []string

	err := filepath.Walk(dd.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		relPath, err := filepath.Rel(dd.rootDir, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)

		if dd.shouldIgnore(relPath) {
			return nil
		}
		if dd.matchesAny(relPath, dd.docPatterns) {
			docs = append(docs, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(docs)
	return docs, nil
}

func (dd *DocumentDiscovery) shouldIgnore(relPath string) bool {
	if dd.matchesAny(relPath, dd.ignorePatterns) {
		return true
	}
	// Treat directory names like pattern roots: "node_modules" matches an
	// ignore pattern written as "node_modules/**".
	return dd.matchesAny(relPath+"/**", dd.ignorePatterns)
}

func (dd *DocumentDiscovery) matchesAny(path string, patterns []compiledPattern) bool {
	for _, cp := range patterns {
		if cp.glob.Match(path) {
			return true
		}
	}

	// Root-level files have no slash; let "**/X" patterns match plain "X"
	// as users expect.
	if !strings.Contains(path, "/") {
		for _, cp := range patterns {
			if strings.HasPrefix(cp.pattern, "**/") {
				if g, err := glob.Compile(strings.TrimPrefix(cp.pattern, "**/"), '/'); err == nil && g.Match(path) {
					return true
				}
			}
		}
	}

	return false
}
