package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for ParseDocument:
// - Splits by ## feature headers, stripping numeric prefixes
// - Fragments keep declared language, text and fence line
// - Content before the first header lands in a preamble section
// - ### subheaders stay inside the current section
// - Frontmatter populates Meta and is stripped from Source
// - Unterminated trailing fence is discarded with a warning
// - Empty fences produce no fragment

func TestParseDocument_SectionsAndFragments(t *testing.T) {
	t.Parallel()

	content := `# My Boilerplate

## 1. RBAC System

Guards and roles.

` + "```typescript" + `
export enum Role {}
` + "```" + `

### Implementation notes

` + "```bash" + `
npm install @nestjs/core
` + "```" + `

## 2. Logging

` + "```typescript" + `
export class CustomLoggerService {}
` + "```" + `
`

	doc, err := ParseDocument(content)
	require.NoError(t, err)
	require.Len(t, doc.Sections, 2)

	rbac := doc.Sections[0]
	assert.Equal(t, "RBAC System", rbac.Name)
	require.Len(t, rbac.Fragments, 2)
	assert.Equal(t, "typescript", rbac.Fragments[0].Language)
	assert.Equal(t, "export enum Role {}", rbac.Fragments[0].Text)
	assert.Equal(t, "RBAC System", rbac.Fragments[0].Section)
	assert.Equal(t, 0, rbac.Fragments[0].Index)
	assert.Equal(t, "bash", rbac.Fragments[1].Language)
	assert.Equal(t, 1, rbac.Fragments[1].Index)

	logging := doc.Sections[1]
	assert.Equal(t, "Logging", logging.Name)
	require.Len(t, logging.Fragments, 1)

	assert.Empty(t, doc.Warnings)
}

func TestParseDocument_PreambleFragments(t *testing.T) {
	t.Parallel()

	content := "```json\n{}\n```\n\n## First\n\ntext\n"

	doc, err := ParseDocument(content)
	require.NoError(t, err)
	require.Len(t, doc.Sections, 2)
	assert.Equal(t, "Preamble", doc.Sections[0].Name)
	require.Len(t, doc.Sections[0].Fragments, 1)
	assert.Equal(t, "json", doc.Sections[0].Fragments[0].Language)
}

func TestParseDocument_Frontmatter(t *testing.T) {
	t.Parallel()

	content := `---
name: my-app
framework: nestjs
---

## Feature

` + "```typescript" + `
export class A {}
` + "```" + `
`

	doc, err := ParseDocument(content)
	require.NoError(t, err)
	assert.Equal(t, "my-app", doc.Meta.Name)
	assert.Equal(t, "nestjs", doc.Meta.Framework)
	assert.NotContains(t, doc.Source, "framework: nestjs")
	require.Len(t, doc.Sections, 1)
}

func TestParseDocument_UnterminatedFence(t *testing.T) {
	t.Parallel()

	content := `## Broken

` + "```typescript" + `
export class Dangling {}
`

	doc, err := ParseDocument(content)
	require.NoError(t, err)

	require.Len(t, doc.Warnings, 1)
	assert.Equal(t, WarnUnterminatedBlock, doc.Warnings[0].Kind)
	assert.Equal(t, "Broken", doc.Warnings[0].Subject)

	// The partial block is discarded, not emitted.
	require.Len(t, doc.Sections, 1)
	assert.Empty(t, doc.Sections[0].Fragments)
}

func TestParseDocument_EmptyFenceSkipped(t *testing.T) {
	t.Parallel()

	content := "## Feature\n\n```typescript\n```\n"

	doc, err := ParseDocument(content)
	require.NoError(t, err)
	require.Len(t, doc.Sections, 1)
	assert.Empty(t, doc.Sections[0].Fragments)
}

func TestParseDocument_FragmentsAccessor(t *testing.T) {
	t.Parallel()

	content := "## A\n\n```ts\nexport class A {}\n```\n\n## B\n\n```ts\nexport class B {}\n```\n"

	doc, err := ParseDocument(content)
	require.NoError(t, err)
	frags := doc.Fragments()
	require.Len(t, frags, 2)
	assert.Equal(t, "A", frags[0].Section)
	assert.Equal(t, "B", frags[1].Section)
	assert.Equal(t, []string{"A", "B"}, doc.SectionNames())
}
