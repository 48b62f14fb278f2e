package generator

import (
	"regexp"
	"strconv"
	"strings"
)

// compositeGuardPairs are enum name pairs that, together with two or more
// guard classes, identify a combined RBAC guard file.
var compositeGuardPairs = [][2]string{
	{"Role", "Permission"},
}

var (
	moduleClassPattern     = regexp.MustCompile(`class\s+(\w+)Module\b`)
	controllerClassPattern = regexp.MustCompile(`class\s+(\w+)Controller\b`)
	serviceClassPattern    = regexp.MustCompile(`class\s+(\w+)Service\b`)
	guardClassPattern      = regexp.MustCompile(`class\s+(\w+)Guard\b`)
	filterClassPattern     = regexp.MustCompile(`class\s+(\w+?)(?:Exception)?Filter\b`)
	dtoClassPattern        = regexp.MustCompile(`class\s+(\w+?)Dto\b`)
	entityClassPattern     = regexp.MustCompile(`@Entity\([^)]*\)\s*(?:export\s+)?(?:abstract\s+)?class\s+(\w+)`)
	exportedConstPattern   = regexp.MustCompile(`export\s+const\s+(\w+)`)
	interfacePattern       = regexp.MustCompile(`(?m)^\s*export\s+interface\s+(\w+)`)
	validatorDecorators    = regexp.MustCompile(`@Is[A-Z]\w*\(|@MinLength\(|@MaxLength\(|@Matches\(`)
)

// nestJSRuleSet builds the ordered classification rules for NestJS targets.
//
// Ordering is the correctness contract: composite rules come before the
// atomic rules whose trigger text they contain (an RBAC guard file contains
// plain enum declarations; an entity file bundling its status enum contains
// an enum declaration). First match wins.
func nestJSRuleSet() *RuleSet {
	rs := &RuleSet{
		Family:          "nestjs",
		DevFlags:        []string{"-D", "--save-dev"},
		InstallCommands: []string{"npm install", "npm i "},
		EntityDeps:      []string{"@nestjs/typeorm", "typeorm"},
		BaseDependencies: []string{
			"@nestjs/common",
			"@nestjs/core",
			"@nestjs/platform-express",
			"pg",
			"class-validator",
			"class-transformer",
		},
	}

	rs.Rules = []Rule{
		{
			Name: "composite-guard",
			Kind: KindCompositeGuard,
			Match: func(f Fragment) bool {
				return hasGuardEnumPair(f.Text) && len(guardClassPattern.FindAllString(f.Text, -1)) >= 2
			},
			Path: func(f Fragment) string {
				return "rbac/rbac.guard" + extensionFor(f.Language)
			},
		},
		{
			Name: "composite-entity",
			Kind: KindCompositeEntity,
			Match: func(f Fragment) bool {
				if len(enumNames(f.Text)) == 0 {
					return false
				}
				return entityBaseName(f.Text) != ""
			},
			Path: func(f Fragment) string {
				return "entities/" + kebabCase(entityBaseName(f.Text)) + ".entity" + extensionFor(f.Language)
			},
		},
		{
			Name:  "module",
			Kind:  KindModule,
			Match: func(f Fragment) bool { return strings.Contains(f.Text, "@Module(") },
			Path: func(f Fragment) string {
				base := baseFromClass(moduleClassPattern, f, "")
				return featurePath(base, "module", f)
			},
		},
		{
			Name:  "controller",
			Kind:  KindController,
			Match: func(f Fragment) bool { return strings.Contains(f.Text, "@Controller") },
			Path: func(f Fragment) string {
				base := baseFromClass(controllerClassPattern, f, "")
				return featurePath(base, "controller", f)
			},
		},
		{
			Name:  "entity",
			Kind:  KindEntity,
			Match: func(f Fragment) bool { return strings.Contains(f.Text, "@Entity") },
			Path: func(f Fragment) string {
				base := entityBaseName(f.Text)
				if base == "" {
					base = firstNonEmpty(classNames(f.Text))
				}
				return "entities/" + kebabCase(base) + ".entity" + extensionFor(f.Language)
			},
		},
		{
			Name: "guard",
			Kind: KindGuard,
			Match: func(f Fragment) bool {
				return strings.Contains(f.Text, "implements CanActivate") || guardClassPattern.MatchString(f.Text)
			},
			Path: func(f Fragment) string {
				base := firstMatchGroup(guardClassPattern, f.Text)
				if base == "" {
					base = "rbac"
				}
				return "guards/" + kebabCase(base) + ".guard" + extensionFor(f.Language)
			},
		},
		{
			Name: "filter",
			Kind: KindOther,
			Match: func(f Fragment) bool {
				return strings.Contains(f.Text, "implements ExceptionFilter") || strings.Contains(f.Text, "@Catch(")
			},
			Path: func(f Fragment) string {
				base := firstMatchGroup(filterClassPattern, f.Text)
				if base == "" || strings.EqualFold(base, "all") || strings.EqualFold(base, "global") {
					base = "global-exception"
				}
				return "filters/" + kebabCase(base) + ".filter" + extensionFor(f.Language)
			},
		},
		{
			Name: "dto",
			Kind: KindDTO,
			Match: func(f Fragment) bool {
				return dtoClassPattern.MatchString(f.Text) ||
					(validatorDecorators.MatchString(f.Text) && classDeclPattern.MatchString(f.Text))
			},
			Path: func(f Fragment) string {
				base := firstMatchGroup(dtoClassPattern, f.Text)
				if base == "" {
					base = firstNonEmpty(classNames(f.Text))
				}
				return "dtos/" + kebabCase(base) + ".dto" + extensionFor(f.Language)
			},
		},
		{
			Name: "decorator",
			Kind: KindDecorator,
			Match: func(f Fragment) bool {
				return strings.Contains(f.Text, "SetMetadata(") || strings.Contains(f.Text, "createParamDecorator")
			},
			Path: func(f Fragment) string {
				base := firstMatchGroup(exportedConstPattern, f.Text)
				if base == "" {
					base = slugify(f.Section)
				}
				return "decorators/" + kebabCase(base) + ".decorator" + extensionFor(f.Language)
			},
		},
		{
			Name:  "service",
			Kind:  KindService,
			Match: func(f Fragment) bool { return strings.Contains(f.Text, "@Injectable") },
			Path: func(f Fragment) string {
				base := baseFromClass(serviceClassPattern, f, "")
				return featurePath(base, "service", f)
			},
		},
		{
			Name: "interface",
			Kind: KindOther,
			Match: func(f Fragment) bool {
				return interfacePattern.MatchString(f.Text) &&
					!classDeclPattern.MatchString(f.Text) && len(enumNames(f.Text)) == 0
			},
			Path: func(f Fragment) string {
				return "interfaces/" + kebabCase(firstMatchGroup(interfacePattern, f.Text)) + ".interface" + extensionFor(f.Language)
			},
		},
		{
			Name:  "enum",
			Kind:  KindEnum,
			Match: func(f Fragment) bool { return len(enumNames(f.Text)) > 0 },
			Path: func(f Fragment) string {
				return "enums/" + kebabCase(enumNames(f.Text)[0]) + ".enum" + extensionFor(f.Language)
			},
		},
	}

	rs.Fallback = Rule{
		Name: "fallback",
		Kind: KindOther,
		Match: func(Fragment) bool { return true },
		Path: func(f Fragment) string {
			if sym := primaryExportedSymbol(f.Text); sym != "" {
				return "common/" + kebabCase(sym) + extensionFor(f.Language)
			}
			base := slugify(f.Section)
			if base == "" {
				base = "fragment"
			}
			if f.Index > 0 {
				return "common/" + base + "-" + strconv.Itoa(f.Index) + extensionFor(f.Language)
			}
			return "common/" + base + extensionFor(f.Language)
		},
	}

	return rs
}

// hasGuardEnumPair reports whether the fragment declares both enums of a
// known role/permission pair.
func hasGuardEnumPair(text string) bool {
	declared := make(map[string]bool)
	for _, name := range enumNames(text) {
		declared[name] = true
	}
	for _, pair := range compositeGuardPairs {
		if declared[pair[0]] && declared[pair[1]] {
			return true
		}
	}
	return false
}

// entityBaseName returns the class name carrying an @Entity decorator. When
// no decorator is present it falls back to the first class whose name does
// not look like an injectable construct, or "" when there is none.
func entityBaseName(text string) string {
	if name := firstMatchGroup(entityClassPattern, text); name != "" {
		return name
	}
	for _, name := range classNames(text) {
		if !strings.HasSuffix(name, "Guard") && !strings.HasSuffix(name, "Service") &&
			!strings.HasSuffix(name, "Controller") && !strings.HasSuffix(name, "Module") &&
			!strings.HasSuffix(name, "Dto") && !strings.HasSuffix(name, "Filter") {
			return name
		}
	}
	return ""
}

// baseFromClass derives the kebab-case feature base from a class name
// pattern, falling back to the section slug.
func baseFromClass(pattern *regexp.Regexp, f Fragment, def string) string {
	if name := firstMatchGroup(pattern, f.Text); name != "" {
		return kebabCase(name)
	}
	if def != "" {
		return def
	}
	base := slugify(f.Section)
	base = strings.TrimSuffix(base, "-system")
	base = strings.TrimSuffix(base, "-service")
	if base == "" {
		base = "app"
	}
	return base
}

// featurePath places controllers, services and modules in a per-feature
// directory. The application root trio (app.module.ts and friends) stays at
// the source root, mirroring the conventional NestJS layout.
func featurePath(base, role string, f Fragment) string {
	ext := extensionFor(f.Language)
	if base == "app" {
		return "app." + role + ext
	}
	return base + "/" + base + "." + role + ext
}

func firstNonEmpty(names []string) string {
	if len(names) == 0 {
		return "file"
	}
	return names[0]
}
