package generator

import (
	"regexp"
	"strings"
)

// langExtensions maps declared fence languages to output file extensions.
var langExtensions = map[string]string{
	"python":     ".py",
	"py":         ".py",
	"typescript": ".ts",
	"ts":         ".ts",
	"javascript": ".js",
	"js":         ".js",
	"bash":       ".sh",
	"sh":         ".sh",
	"env":        ".env",
	"json":       ".json",
	"yaml":       ".yml",
	"yml":        ".yml",
	"html":       ".html",
	"css":        ".css",
	"tsx":        ".tsx",
	"jsx":        ".jsx",
}

// extensionFor returns the output extension for a declared language,
// defaulting to .txt for unknown languages.
func extensionFor(language string) string {
	if ext, ok := langExtensions[strings.ToLower(language)]; ok {
		return ext
	}
	return ".txt"
}

// knownExtension returns the recognized source extension of a path, or ""
// when the path does not end in one. Used for stem computation so that dotted
// basenames like "rbac.guard" keep their full stem.
func knownExtension(p string) string {
	for _, ext := range []string{".tsx", ".jsx", ".ts", ".js", ".py", ".sh", ".json", ".yml", ".html", ".css", ".env", ".txt"} {
		if strings.HasSuffix(p, ext) {
			return ext
		}
	}
	return ""
}

// stem returns the final path segment without its recognized extension.
// "rbac/rbac.guard.ts" -> "rbac.guard", "./rbac.guard" -> "rbac.guard".
func stem(p string) string {
	base := p
	if idx := strings.LastIndex(base, "/"); idx >= 0 {
		base = base[idx+1:]
	}
	return strings.TrimSuffix(base, knownExtension(base))
}

var camelBoundary = regexp.MustCompile(`([a-z0-9])([A-Z])`)

// kebabCase converts a CamelCase identifier to kebab-case.
// "LogEntry" -> "log-entry", "RBACGuard" -> "rbacguard" (consecutive capitals
// are treated as one word, matching how class names are normally written).
func kebabCase(name string) string {
	return strings.ToLower(camelBoundary.ReplaceAllString(name, "$1-$2"))
}

var snakeBoundary = camelBoundary

// snakeCase converts a CamelCase identifier to snake_case.
func snakeCase(name string) string {
	return strings.ToLower(snakeBoundary.ReplaceAllString(name, "${1}_${2}"))
}

// slugify normalizes a feature section name to a path-safe kebab slug.
func slugify(name string) string {
	s := strings.ToLower(name)
	s = regexp.MustCompile(`[^\w\s-]`).ReplaceAllString(s, "")
	s = regexp.MustCompile(`[-\s_]+`).ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// filenameCommentPatterns recognize a file name declared in a leading comment,
// e.g. "// user.service.ts", "# models.py" or "<!-- index.html -->".
var filenameCommentPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^//\s*([\w./-]+\.(?:ts|tsx|js|jsx))\s*$`),
	regexp.MustCompile(`^#\s*([\w./-]+\.py)\s*$`),
	regexp.MustCompile(`^<!--\s*([\w./-]+\.html)\s*-->\s*$`),
}

// declaredFilename scans the first lines of a fragment for a filename comment.
// Returns "" when none is present.
func declaredFilename(text string) string {
	lines := strings.Split(text, "\n")
	limit := 5
	if len(lines) < limit {
		limit = len(lines)
	}
	for _, line := range lines[:limit] {
		for _, pat := range filenameCommentPatterns {
			if m := pat.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
				return m[1]
			}
		}
	}
	return ""
}

// stripFilenameComments removes filename declaration comments from a
// fragment's text so they do not leak into the emitted file.
func stripFilenameComments(text string) string {
	lines := strings.Split(text, "\n")
	var kept []string
	for i, line := range lines {
		if i < 5 {
			matched := false
			for _, pat := range filenameCommentPatterns {
				if pat.MatchString(strings.TrimSpace(line)) {
					matched = true
					break
				}
			}
			if matched {
				continue
			}
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// exportedConstructPattern finds the primary exported symbol of a fragment:
// the first exported class, enum, interface, function, const or Python
// class/def declaration.
var exportedConstructPattern = regexp.MustCompile(
	`(?m)^\s*(?:export\s+(?:default\s+)?(?:abstract\s+)?(?:class|enum|interface|function|const|type)\s+(\w+)|class\s+(\w+)|def\s+(\w+))`)

// primaryExportedSymbol returns the first exported construct name found in
// the fragment, or "" when there is none.
func primaryExportedSymbol(text string) string {
	m := exportedConstructPattern.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	for _, g := range m[1:] {
		if g != "" {
			return g
		}
	}
	return ""
}

var (
	classDeclPattern = regexp.MustCompile(`(?m)^\s*(?:export\s+)?(?:abstract\s+)?class\s+(\w+)`)
	enumDeclPattern  = regexp.MustCompile(`(?m)^\s*(?:export\s+)?(?:const\s+)?enum\s+(\w+)`)
)

// classNames returns every class declaration name in the fragment, in order.
func classNames(text string) []string {
	var names []string
	for _, m := range classDeclPattern.FindAllStringSubmatch(text, -1) {
		names = append(names, m[1])
	}
	return names
}

// enumNames returns every enum declaration name in the fragment, in order.
func enumNames(text string) []string {
	var names []string
	for _, m := range enumDeclPattern.FindAllStringSubmatch(text, -1) {
		names = append(names, m[1])
	}
	return names
}

// firstMatchGroup returns the first capture group of pattern in text, or "".
func firstMatchGroup(pattern *regexp.Regexp, text string) string {
	if m := pattern.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}
