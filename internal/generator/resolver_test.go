package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for the reference resolver:
// - A relative import whose target was not initially classified pulls the
//   matching fragment into the graph
// - Discovery is transitive: pulled files have their own imports followed
// - Resolution reaches a fixed point; a second run adds nothing
// - Cyclic references terminate
// - The step bound stops runaway expansion

func mustParseDoc(t *testing.T, content string) *Document {
	t.Helper()
	doc, err := ParseDocument(content)
	require.NoError(t, err)
	return doc
}

// seedGraph classifies the fragments of the named sections into a fresh
// graph, mimicking stage one of the pipeline.
func seedGraph(t *testing.T, c *Classifier, doc *Document, sections ...string) *FileGraph {
	t.Helper()
	wanted := make(map[string]bool)
	for _, s := range sections {
		wanted[s] = true
	}
	g := NewFileGraph()
	for _, s := range doc.Sections {
		if !wanted[s.Name] {
			continue
		}
		for _, f := range s.Fragments {
			if !emittableLanguage(f.Language) {
				continue
			}
			path, kind := c.Classify(f)
			file := ClassifiedFile{Path: path, Content: c.PrepareContent(f), Kind: kind, Language: f.Language}
			if importAwareLanguage(f.Language) {
				file.Imports, _ = ParseImports(file.Content)
			}
			g.Add(file)
		}
	}
	return g
}

func TestResolver_PullsReferencedFragment(t *testing.T) {
	t.Parallel()

	content := `## Auth

` + "```typescript" + `
import { Role } from './role.enum';

export class RolesGuard implements CanActivate {}
` + "```" + `

## Enums

` + "```typescript" + `
export enum Role { ADMIN = 'admin' }
` + "```" + `
`

	c := nestClassifier(t)
	doc := mustParseDoc(t, content)
	g := seedGraph(t, c, doc, "Auth")
	require.Equal(t, 1, g.Len())

	r := NewResolver(c, 0)
	warnings := r.Resolve(g, doc)
	assert.Empty(t, warnings)

	require.Equal(t, 2, g.Len())
	_, ok := g.Get("enums/role.enum.ts")
	assert.True(t, ok)
}

func TestResolver_TransitiveDiscovery(t *testing.T) {
	t.Parallel()

	content := `## Users

` + "```typescript" + `
import { User } from './user.entity';

@Injectable()
export class UserService {}
` + "```" + `

## Entities

` + "```typescript" + `
import { OrderStatus } from './order-status.enum';

@Entity('users')
export class User {}
` + "```" + `

## Enums

` + "```typescript" + `
export enum OrderStatus { OPEN, CLOSED }
` + "```" + `
`

	c := nestClassifier(t)
	doc := mustParseDoc(t, content)
	g := seedGraph(t, c, doc, "Users")
	require.Equal(t, 1, g.Len())

	r := NewResolver(c, 0)
	r.Resolve(g, doc)

	assert.Equal(t, 3, g.Len())
	_, ok := g.Get("entities/user.entity.ts")
	assert.True(t, ok)
	_, ok = g.Get("enums/order-status.enum.ts")
	assert.True(t, ok)
}

func TestResolver_FixedPoint(t *testing.T) {
	t.Parallel()

	content := `## Auth

` + "```typescript" + `
import { Role } from './role.enum';

export class RolesGuard implements CanActivate {}
` + "```" + `

## Enums

` + "```typescript" + `
export enum Role { ADMIN }
` + "```" + `
`

	c := nestClassifier(t)
	doc := mustParseDoc(t, content)
	g := seedGraph(t, c, doc, "Auth")

	r := NewResolver(c, 0)
	r.Resolve(g, doc)
	after := g.Len()

	// A second run over the expanded graph discovers nothing new.
	r.Resolve(g, doc)
	assert.Equal(t, after, g.Len())
}

func TestResolver_CyclicReferences(t *testing.T) {
	t.Parallel()

	content := `## A

` + "```typescript" + `
// a.service.ts
import { BService } from './b.service';

export class AService {}
` + "```" + `

## B

` + "```typescript" + `
// b.service.ts
import { AService } from './a.service';

export class BService {}
` + "```" + `
`

	c := nestClassifier(t)
	doc := mustParseDoc(t, content)
	g := seedGraph(t, c, doc, "A")
	require.Equal(t, 1, g.Len())

	r := NewResolver(c, 0)
	r.Resolve(g, doc)
	assert.Equal(t, 2, g.Len())
}

func TestResolver_UnmatchedSpecifierStaysOut(t *testing.T) {
	t.Parallel()

	content := `## Auth

` + "```typescript" + `
import { Ghost } from './ghost.helper';

export class RolesGuard implements CanActivate {}
` + "```" + `
`

	c := nestClassifier(t)
	doc := mustParseDoc(t, content)
	g := seedGraph(t, c, doc, "Auth")

	r := NewResolver(c, 0)
	r.Resolve(g, doc)
	// Nothing matched; the rewriter later reports the dangling specifier.
	assert.Equal(t, 1, g.Len())
}

func TestResolver_StepBound(t *testing.T) {
	t.Parallel()

	content := `## Seed

` + "```typescript" + `
// seed.service.ts
import { A } from './a.helper';

export class SeedService {}
` + "```" + `

## HelperA

` + "```typescript" + `
// a.helper.ts
import { B } from './b.helper';

export const A = 1;
` + "```" + `

## HelperB

` + "```typescript" + `
// b.helper.ts
export const B = 2;
` + "```" + `
`

	c := nestClassifier(t)
	doc := mustParseDoc(t, content)
	g := seedGraph(t, c, doc, "Seed")

	r := NewResolver(c, 1)
	r.Resolve(g, doc)

	// One step resolves a.helper; b.helper stays pending past the bound.
	assert.Equal(t, 2, g.Len())
	_, ok := g.Get("b.helper.ts")
	assert.False(t, ok)
}
