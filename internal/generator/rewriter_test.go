package generator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for the path rewriter:
// - RelativeSpecifier computes ./ and ../ forms for sibling, parent and
//   root-relative targets, always extensionless with forward slashes
// - RewriteImports swaps only the quoted module path of each import line
// - Unresolved specifiers stay verbatim and are reported, not dropped
// - Rewriting an already-correct graph is a no-op

func TestRelativeSpecifier(t *testing.T) {
	t.Parallel()

	cases := []struct {
		from, to, want string
	}{
		{"user/user.controller.ts", "rbac/rbac.guard.ts", "../rbac/rbac.guard"},
		{"rbac/rbac.module.ts", "rbac/rbac.guard.ts", "./rbac.guard"},
		{"app.module.ts", "rbac/rbac.guard.ts", "./rbac/rbac.guard"},
		{"user/user.service.ts", "entities/user.entity.ts", "../entities/user.entity"},
		{"app.module.ts", "app.service.ts", "./app.service"},
		{"a/b/deep.ts", "a/shallow.ts", "../shallow"},
		{"a/b/deep.ts", "c/other.ts", "../../c/other"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, RelativeSpecifier(tc.from, tc.to), "from %s to %s", tc.from, tc.to)
	}
}

func TestRewriteImports_RecomputesSpecifiers(t *testing.T) {
	t.Parallel()

	content := `import { RolesGuard } from './rbac.guard';
import { Injectable } from '@nestjs/common';

@Controller('users')
export class UserController {}
`
	imports, warnings := ParseImports(content)
	require.Empty(t, warnings)

	g := NewFileGraph()
	g.Add(ClassifiedFile{Path: "user/user.controller.ts", Content: content, Imports: imports})
	g.Add(ClassifiedFile{Path: "rbac/rbac.guard.ts", Content: "export class RolesGuard {}"})

	rewritten, ws := RewriteImports(g)
	require.Empty(t, ws)
	assert.Equal(t, 1, rewritten)

	f, _ := g.Get("user/user.controller.ts")
	assert.Contains(t, f.Content, `import { RolesGuard } from '../rbac/rbac.guard';`)
	// The package import is untouched.
	assert.Contains(t, f.Content, `import { Injectable } from '@nestjs/common';`)
	// Parsed imports track the new specifier.
	assert.Equal(t, "../rbac/rbac.guard", f.Imports[0].ModulePath)
}

func TestRewriteImports_MultiLineImport(t *testing.T) {
	t.Parallel()

	content := `import {
  RolesGuard,
  PermissionsGuard,
} from './rbac.guard';

@Controller('users')
export class UserController {}
`
	imports, warnings := ParseImports(content)
	require.Empty(t, warnings)

	g := NewFileGraph()
	g.Add(ClassifiedFile{Path: "user/user.controller.ts", Content: content, Imports: imports})
	g.Add(ClassifiedFile{Path: "rbac/rbac.guard.ts"})

	rewritten, ws := RewriteImports(g)
	require.Empty(t, ws)
	assert.Equal(t, 1, rewritten)

	f, _ := g.Get("user/user.controller.ts")
	assert.Contains(t, f.Content, "} from '../rbac/rbac.guard';")
	assert.NotContains(t, f.Content, "'./rbac.guard'")
	// The binding list lines are untouched.
	assert.Contains(t, f.Content, "  RolesGuard,\n  PermissionsGuard,\n")
}

func TestRewriteImports_UnresolvedLeftVerbatim(t *testing.T) {
	t.Parallel()

	content := "import { Missing } from './missing.helper';\n"
	imports, _ := ParseImports(content)

	g := NewFileGraph()
	g.Add(ClassifiedFile{Path: "user/user.service.ts", Content: content, Imports: imports})

	rewritten, warnings := RewriteImports(g)
	assert.Equal(t, 0, rewritten)
	require.Len(t, warnings, 1)
	assert.Equal(t, WarnUnresolvedImport, warnings[0].Kind)
	assert.Equal(t, "./missing.helper", warnings[0].Subject)

	f, _ := g.Get("user/user.service.ts")
	assert.Equal(t, content, f.Content)
}

func TestRewriteImports_Idempotent(t *testing.T) {
	t.Parallel()

	content := "import { Role } from '../enums/role.enum';\n"
	imports, _ := ParseImports(content)

	g := NewFileGraph()
	g.Add(ClassifiedFile{Path: "guards/roles.guard.ts", Content: content, Imports: imports})
	g.Add(ClassifiedFile{Path: "enums/role.enum.ts", Content: "export enum Role {}"})

	rewritten, _ := RewriteImports(g)
	assert.Equal(t, 0, rewritten)

	f, _ := g.Get("guards/roles.guard.ts")
	assert.Equal(t, content, f.Content)
}

func TestRewriteImports_DoubleQuotes(t *testing.T) {
	t.Parallel()

	content := `import { Role } from "./role.enum";` + "\n"
	imports, _ := ParseImports(content)

	g := NewFileGraph()
	g.Add(ClassifiedFile{Path: "guards/roles.guard.ts", Content: content, Imports: imports})
	g.Add(ClassifiedFile{Path: "enums/role.enum.ts"})

	rewritten, _ := RewriteImports(g)
	assert.Equal(t, 1, rewritten)

	f, _ := g.Get("guards/roles.guard.ts")
	assert.True(t, strings.Contains(f.Content, `import { Role } from "../enums/role.enum";`))
}
