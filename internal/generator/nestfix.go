package generator

import (
	"regexp"
	"strings"
)

// nestCommonSymbols are the @nestjs/common exports that fragments routinely
// use without importing, because boilerplate authors elide the import line.
// Order here is the order injected imports are listed in.
var nestCommonSymbols = []string{
	"Module",
	"Controller",
	"Injectable",
	"Get",
	"Post",
	"Put",
	"Delete",
	"Patch",
	"Param",
	"Body",
	"Query",
	"UseGuards",
	"UseInterceptors",
	"UploadedFile",
	"UploadedFiles",
}

var nestSymbolImported = func() map[string]*regexp.Regexp {
	m := make(map[string]*regexp.Regexp, len(nestCommonSymbols))
	for _, sym := range nestCommonSymbols {
		m[sym] = regexp.MustCompile(`import\s+(?:type\s+)?\{[^}]*\b` + sym + `\b[^}]*\}\s*from`)
	}
	return m
}()

// ensureNestCommonImports prepends an @nestjs/common import binding every
// used-but-unimported framework symbol. Usage is detected as a decorator
// (@Module) or an implements clause; TypeScript tolerates multiple import
// statements from the same module, so an existing @nestjs/common import is
// left alone.
func ensureNestCommonImports(content string) string {
	var missing []string
	for _, sym := range nestCommonSymbols {
		if !strings.Contains(content, "@"+sym) && !strings.Contains(content, "implements "+sym) {
			continue
		}
		if nestSymbolImported[sym].MatchString(content) {
			continue
		}
		missing = append(missing, sym)
	}
	if len(missing) == 0 {
		return content
	}
	return "import { " + strings.Join(missing, ", ") + " } from '@nestjs/common';\n" + content
}
