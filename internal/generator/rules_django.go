package generator

import (
	"regexp"
	"strings"
)

var (
	djangoModelPattern      = regexp.MustCompile(`class\s+\w+\(.*models\.Model.*\)`)
	djangoSerializerPattern = regexp.MustCompile(`class\s+\w+\(.*(?:ModelSerializer|serializers\.Serializer).*\)`)
	djangoViewPattern       = regexp.MustCompile(`class\s+\w+\(.*(?:APIView|ViewSet|generics\.\w+).*\)`)
	djangoPermissionPattern = regexp.MustCompile(`class\s+\w+\(.*BasePermission.*\)`)
	djangoServicePattern    = regexp.MustCompile(`class\s+(\w+)Service\b`)
)

// djangoRuleSet builds the ordered classification rules for Django targets.
// Django files group several constructs per module, so most rules key on the
// framework base class rather than on per-construct markers, and bases come
// from the owning feature section.
func djangoRuleSet() *RuleSet {
	rs := &RuleSet{
		Family:          "django",
		DevFlags:        nil,
		InstallCommands: []string{"pip install", "pip3 install"},
		// The ORM ships with Django itself; entity-kind files imply no extra
		// install beyond the base dependency set.
		EntityDeps: nil,
		BaseDependencies: []string{
			"Django>=4.2",
			"djangorestframework>=3.14",
			"python-decouple>=3.8",
			"dj-database-url>=2.0",
		},
	}

	rs.Rules = []Rule{
		{
			Name:  "model",
			Kind:  KindEntity,
			Match: func(f Fragment) bool { return djangoModelPattern.MatchString(f.Text) },
			Path: func(f Fragment) string {
				return "apps/" + djangoBase(f) + "_models.py"
			},
		},
		{
			Name:  "serializer",
			Kind:  KindDTO,
			Match: func(f Fragment) bool { return djangoSerializerPattern.MatchString(f.Text) },
			Path: func(f Fragment) string {
				return "apps/" + djangoBase(f) + "_serializers.py"
			},
		},
		{
			Name:  "view",
			Kind:  KindController,
			Match: func(f Fragment) bool { return djangoViewPattern.MatchString(f.Text) },
			Path: func(f Fragment) string {
				return "apps/" + djangoBase(f) + "_views.py"
			},
		},
		{
			Name:  "permission",
			Kind:  KindGuard,
			Match: func(f Fragment) bool { return djangoPermissionPattern.MatchString(f.Text) },
			Path: func(f Fragment) string {
				return "core/" + djangoBase(f) + "_permissions.py"
			},
		},
		{
			Name: "service",
			Kind: KindService,
			Match: func(f Fragment) bool {
				return djangoServicePattern.MatchString(f.Text)
			},
			Path: func(f Fragment) string {
				if name := firstMatchGroup(djangoServicePattern, f.Text); name != "" {
					return "services/" + snakeCase(name) + "_service.py"
				}
				return "services/" + djangoBase(f) + "_service.py"
			},
		},
		{
			Name: "settings",
			Kind: KindOther,
			Match: func(f Fragment) bool {
				return strings.Contains(f.Text, "INSTALLED_APPS") || strings.Contains(f.Text, "MIDDLEWARE = [")
			},
			Path: func(f Fragment) string {
				return "config/settings/" + djangoBase(f) + ".py"
			},
		},
	}

	rs.Fallback = Rule{
		Name:  "fallback",
		Kind:  KindOther,
		Match: func(Fragment) bool { return true },
		Path: func(f Fragment) string {
			if sym := primaryExportedSymbol(f.Text); sym != "" {
				return "core/" + snakeCase(sym) + extensionFor(f.Language)
			}
			return "core/" + djangoBase(f) + extensionFor(f.Language)
		},
	}

	return rs
}

// djangoBase derives a snake_case module base from the feature section name.
func djangoBase(f Fragment) string {
	base := strings.ReplaceAll(slugify(f.Section), "-", "_")
	base = strings.TrimSuffix(base, "_system")
	base = strings.TrimSuffix(base, "_service")
	if base == "" {
		base = "feature"
	}
	return base
}
