package generator

import (
	"fmt"
	"strings"
)

// RelativeSpecifier computes the import specifier that reaches toPath from
// the directory of fromPath. Both arguments are canonical forward-slash
// paths; the result carries no extension and is prefixed with "./" when the
// target is a sibling (or below) and "../" segments otherwise.
func RelativeSpecifier(fromPath, toPath string) string {
	fromDir := splitPath(dirOf(fromPath))
	target := splitPath(strings.TrimSuffix(toPath, knownExtension(toPath)))

	common := 0
	for common < len(fromDir) && common < len(target)-1 && fromDir[common] == target[common] {
		common++
	}

	ups := len(fromDir) - common
	rest := strings.Join(target[common:], "/")
	if ups == 0 {
		return "./" + rest
	}
	return strings.Repeat("../", ups) + rest
}

func dirOf(p string) string {
	if idx := strings.LastIndex(p, "/"); idx >= 0 {
		return p[:idx]
	}
	return ""
}

func splitPath(p string) []string {
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

// RewriteImports recomputes every relative import specifier in the graph
// against the final canonical locations. Only the module-path token of each
// import line is touched; bound names and the rest of the file stay as they
// are. Specifiers that resolve to no classified file are left verbatim and
// surfaced as unresolved-import warnings. Returns the number of specifiers
// actually changed.
func RewriteImports(g *FileGraph) (int, []Warning) {
	var warnings []Warning
	rewritten := 0

	for _, path := range g.Paths() {
		f, _ := g.Get(path)
		if !hasRelativeImports(f.Imports) {
			continue
		}

		lines := strings.Split(f.Content, "\n")
		imports := make([]ImportStatement, len(f.Imports))
		copy(imports, f.Imports)
		changed := false

		for i, imp := range imports {
			if !imp.IsRelative {
				continue
			}

			target, ok := g.ResolveSpecifier(imp.ModulePath)
			if !ok {
				warnings = append(warnings, Warning{
					Kind:    WarnUnresolvedImport,
					Subject: imp.ModulePath,
					Detail:  fmt.Sprintf("no classified file matches %q imported by %s; specifier left as-is", imp.ModulePath, path),
				})
				continue
			}

			newSpec := RelativeSpecifier(path, target)
			if newSpec == imp.ModulePath {
				continue
			}

			if imp.LineIndex < len(lines) {
				lines[imp.LineIndex] = replaceSpecifier(lines[imp.LineIndex], imp.ModulePath, newSpec)
				imports[i].RawLine = lines[imp.LineIndex]
			}
			imports[i].ModulePath = newSpec
			rewritten++
			changed = true
		}

		if changed {
			g.SetContent(path, strings.Join(lines, "\n"))
			g.SetImports(path, imports)
		}
	}

	return rewritten, warnings
}

// replaceSpecifier swaps the quoted module path on one import line, keeping
// the original quote style. Keyed substitution by line position means a
// specifier appearing twice in a file cannot be double-rewritten.
func replaceSpecifier(line, oldSpec, newSpec string) string {
	for _, q := range []string{"'", `"`} {
		quoted := q + oldSpec + q
		if strings.Contains(line, quoted) {
			return strings.Replace(line, quoted, q+newSpec+q, 1)
		}
	}
	return line
}

func hasRelativeImports(imports []ImportStatement) bool {
	for _, imp := range imports {
		if imp.IsRelative {
			return true
		}
	}
	return false
}
