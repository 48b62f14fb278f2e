package generator

import "fmt"

// Rule is one (predicate, action) pair of a classification rule set.
// Predicates are boolean tests over the fragment's text; actions compute the
// canonical path for a matching fragment.
type Rule struct {
	Name  string
	Kind  Kind
	Match func(f Fragment) bool
	Path  func(f Fragment) string
}

// RuleSet is an ordered classification rule list for one target family.
// Evaluation is top-to-bottom, first match wins, so composite rules
// (multi-construct files) must precede the atomic rules their trigger text
// would otherwise satisfy. The trailing fallback rule always matches,
// making classification a total function.
type RuleSet struct {
	Family           string
	Rules            []Rule
	Fallback         Rule
	DevFlags         []string // install-line tokens marking dev dependencies
	InstallCommands  []string // command prefixes that introduce package lists
	EntityDeps       []string // implicit runtime deps when entity-kind files exist
	BaseDependencies []string // always-present runtime deps for manifest files
}

// firstMatch evaluates the rule list in order and returns the first matching
// rule. The fallback is returned when no listed rule matches.
func (rs *RuleSet) firstMatch(f Fragment) Rule {
	for _, r := range rs.Rules {
		if r.Match(f) {
			return r
		}
	}
	return rs.Fallback
}

// RuleSetFor returns the rule set for a target family tag.
func RuleSetFor(family string) (*RuleSet, error) {
	switch NormalizeFamily(family) {
	case "nestjs":
		return nestJSRuleSet(), nil
	case "django":
		return djangoRuleSet(), nil
	default:
		return nil, fmt.Errorf("unknown target family %q (supported: nestjs, django)", family)
	}
}

// NormalizeFamily folds the accepted spellings of a target family tag into
// its canonical form. Unknown tags pass through for the caller to reject.
func NormalizeFamily(family string) string {
	switch family {
	case "", "nestjs", "NestJS", "nest":
		return "nestjs"
	case "django", "Django":
		return "django"
	default:
		return family
	}
}
