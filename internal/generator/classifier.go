package generator

import "strings"

// Classifier maps fragments to canonical output paths using the ordered rule
// set of one target family. Classification is a total function: every
// fragment gets a path, falling back to a synthesized one when no rule
// matches.
type Classifier struct {
	rules *RuleSet
}

// NewClassifier creates a classifier for the given rule set.
func NewClassifier(rules *RuleSet) *Classifier {
	return &Classifier{rules: rules}
}

// suffixKinds maps declared-filename suffixes to content kinds.
var suffixKinds = []struct {
	suffix string
	kind   Kind
}{
	{".entity", KindEntity},
	{".enum", KindEnum},
	{".guard", KindGuard},
	{".dto", KindDTO},
	{".decorator", KindDecorator},
	{".service", KindService},
	{".controller", KindController},
	{".module", KindModule},
}

// Classify returns the canonical path and kind for a fragment.
//
// A filename declared in a leading comment ("// user.service.ts") takes
// precedence over content rules; its basename is routed into the family's
// directory layout. Everything else goes through the rule table.
func (c *Classifier) Classify(f Fragment) (string, Kind) {
	if declared := declaredFilename(f.Text); declared != "" {
		return c.routeDeclared(declared)
	}
	rule := c.rules.firstMatch(f)
	return rule.Path(f), rule.Kind
}

// routeDeclared places an explicitly named file into the layout. Names that
// already carry a directory are kept verbatim.
func (c *Classifier) routeDeclared(name string) (string, Kind) {
	kind := KindOther
	base := stem(name)
	for _, sk := range suffixKinds {
		if strings.HasSuffix(base, sk.suffix) {
			kind = sk.kind
			break
		}
	}
	if strings.Contains(name, "/") {
		return name, kind
	}
	if c.rules.Family != "nestjs" {
		return name, kind
	}
	switch kind {
	case KindEnum:
		return "enums/" + name, kind
	case KindDecorator:
		return "decorators/" + name, kind
	case KindDTO:
		return "dtos/" + name, kind
	case KindEntity:
		return "entities/" + name, kind
	case KindGuard:
		if strings.HasPrefix(base, "rbac") {
			return "rbac/" + name, kind
		}
		return "guards/" + name, kind
	case KindService, KindController, KindModule:
		feature := strings.SplitN(base, ".", 2)[0]
		if feature == "app" {
			return name, kind
		}
		return feature + "/" + name, kind
	default:
		if strings.HasSuffix(base, ".filter") {
			return "filters/" + name, kind
		}
		if strings.HasSuffix(base, ".interface") {
			return "interfaces/" + name, kind
		}
		return name, kind
	}
}

// CleanContent strips filename declaration comments from a fragment before
// it becomes file content.
func (c *Classifier) CleanContent(f Fragment) string {
	return stripFilenameComments(f.Text)
}

// PrepareContent produces the final file content for a fragment: filename
// comments stripped, and for NestJS TypeScript fragments, missing
// @nestjs/common imports injected for the framework symbols the fragment
// uses.
func (c *Classifier) PrepareContent(f Fragment) string {
	content := stripFilenameComments(f.Text)
	if c.rules.Family == "nestjs" {
		switch f.Language {
		case "typescript", "ts", "tsx":
			content = ensureNestCommonImports(content)
		}
	}
	return content
}
