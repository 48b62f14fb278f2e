package generator

import (
	"regexp"
	"strings"
)

var (
	namespaceImportPattern    = regexp.MustCompile(`^import\s+\*\s+as\s+(\w+)\s+from\s+['"]([^'"]+)['"]`)
	defaultNamedImportPattern = regexp.MustCompile(`^import\s+(\w+)\s*,\s*\{([^}]*)\}\s*from\s+['"]([^'"]+)['"]`)
	namedImportPattern        = regexp.MustCompile(`^import\s+(?:type\s+)?\{([^}]*)\}\s*from\s+['"]([^'"]+)['"]`)
	defaultImportPattern      = regexp.MustCompile(`^import\s+(?:type\s+)?(\w+)\s+from\s+['"]([^'"]+)['"]`)
	sideEffectImportPattern   = regexp.MustCompile(`^import\s+['"]([^'"]+)['"]`)
	importishPattern          = regexp.MustCompile(`^import\b`)
	fromClausePattern         = regexp.MustCompile(`from\s+['"][^'"]+['"]`)
)

// maxImportContinuation bounds how many lines a single import statement may
// span before it is given up on as malformed.
const maxImportContinuation = 16

// ParseImports extracts structured import statements from a file's text.
//
// It recognizes named, default, namespace, combined default+named and bare
// side-effect imports. A binding list may span multiple lines (the form
// formatters emit); continuation lines are joined up to the terminating from
// clause before shape matching. Import lines inside comments are ignored.
// Lines that look like imports but do not parse are skipped and reported as
// malformed-import warnings; parsing itself never fails.
func ParseImports(text string) ([]ImportStatement, []Warning) {
	var (
		stmts    []ImportStatement
		warnings []Warning
	)

	lines := strings.Split(text, "\n")
	inBlockComment := false
	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])

		if inBlockComment {
			if strings.Contains(line, "*/") {
				inBlockComment = false
			}
			continue
		}
		if strings.HasPrefix(line, "/*") {
			if !strings.Contains(line, "*/") {
				inBlockComment = true
			}
			continue
		}
		if strings.HasPrefix(line, "//") || strings.HasPrefix(line, "#") {
			continue
		}

		if !importishPattern.MatchString(line) {
			continue
		}

		stmt, ok := parseImportLine(line)
		specLine := i

		// An opening brace with neither its closing brace nor a from clause
		// means the binding list continues on following lines; join them up
		// to the line carrying the from clause. A line that already has its
		// from clause but failed to parse is malformed, not continued.
		if !ok && strings.Contains(line, "{") && !strings.Contains(line, "}") &&
			!fromClausePattern.MatchString(line) {
			joined := line
			for j := i + 1; j < len(lines) && j-i <= maxImportContinuation; j++ {
				joined += " " + strings.TrimSpace(lines[j])
				if !fromClausePattern.MatchString(lines[j]) {
					continue
				}
				if s, joinedOK := parseImportLine(joined); joinedOK {
					stmt, ok = s, true
					specLine = j
					i = j
				}
				break
			}
		}

		if !ok {
			warnings = append(warnings, Warning{
				Kind:    WarnMalformedImport,
				Subject: line,
				Detail:  "import line could not be parsed; skipped",
			})
			continue
		}

		// LineIndex points at the line carrying the quoted specifier, so the
		// rewriter touches the right line of a multi-line statement.
		stmt.RawLine = lines[specLine]
		stmt.LineIndex = specLine
		stmts = append(stmts, stmt)
	}

	return stmts, warnings
}

// parseImportLine matches one trimmed line against the recognized import
// shapes, most specific first.
func parseImportLine(line string) (ImportStatement, bool) {
	if m := namespaceImportPattern.FindStringSubmatch(line); m != nil {
		return importStatement(m[2], []string{m[1]}, false), true
	}
	if m := defaultNamedImportPattern.FindStringSubmatch(line); m != nil {
		names := append([]string{m[1]}, splitBoundNames(m[2])...)
		return importStatement(m[3], names, true), true
	}
	if m := namedImportPattern.FindStringSubmatch(line); m != nil {
		return importStatement(m[2], splitBoundNames(m[1]), false), true
	}
	if m := defaultImportPattern.FindStringSubmatch(line); m != nil {
		return importStatement(m[2], []string{m[1]}, true), true
	}
	if m := sideEffectImportPattern.FindStringSubmatch(line); m != nil {
		return importStatement(m[1], nil, false), true
	}
	return ImportStatement{}, false
}

func importStatement(modulePath string, names []string, isDefault bool) ImportStatement {
	spec := strings.TrimSpace(modulePath)
	return ImportStatement{
		ModulePath: spec,
		BoundNames: names,
		IsRelative: strings.HasPrefix(spec, "./") || strings.HasPrefix(spec, "../"),
		IsDefault:  isDefault,
	}
}

// splitBoundNames splits the inside of an import binding list, keeping the
// local name of aliased bindings ("A as B" binds B) and dropping duplicates
// while preserving order.
func splitBoundNames(list string) []string {
	var names []string
	seen := make(map[string]bool)
	for _, part := range strings.Split(list, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		if idx := strings.LastIndex(name, " as "); idx >= 0 {
			name = strings.TrimSpace(name[idx+4:])
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}
