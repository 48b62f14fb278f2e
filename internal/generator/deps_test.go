package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for the dependency aggregator:
// - Install lines yield package names; flags and file arguments are dropped
// - A dev flag anywhere on the line marks every package on it
// - The first dev/non-dev classification of a package wins
// - Entity-kind files imply the family's ORM packages
// - pip lines work without dev flags and keep version pins

func nestAggregator(t *testing.T) *Aggregator {
	t.Helper()
	rules, err := RuleSetFor("nestjs")
	require.NoError(t, err)
	return NewAggregator(rules)
}

func djangoAggregator(t *testing.T) *Aggregator {
	t.Helper()
	rules, err := RuleSetFor("django")
	require.NoError(t, err)
	return NewAggregator(rules)
}

func depNames(deps []Dependency) []string {
	names := make([]string, 0, len(deps))
	for _, d := range deps {
		names = append(names, d.Name)
	}
	return names
}

func TestAggregate_InstallLines(t *testing.T) {
	t.Parallel()

	doc := &Document{Source: `## Setup

Run:

` + "```bash" + `
npm install @nestjs/jwt passport
npm install -D @types/passport jest
` + "```" + `
`}

	deps := nestAggregator(t).Aggregate(doc, nil)
	require.Len(t, deps, 4)

	assert.Equal(t, Dependency{Name: "@nestjs/jwt", IsDev: false}, deps[0])
	assert.Equal(t, Dependency{Name: "passport", IsDev: false}, deps[1])
	assert.Equal(t, Dependency{Name: "@types/passport", IsDev: true}, deps[2])
	assert.Equal(t, Dependency{Name: "jest", IsDev: true}, deps[3])
}

func TestAggregate_FirstClassificationWins(t *testing.T) {
	t.Parallel()

	doc := &Document{Source: `npm install nodemailer
npm install -D nodemailer
`}

	deps := nestAggregator(t).Aggregate(doc, nil)
	require.Len(t, deps, 1)
	assert.Equal(t, "nodemailer", deps[0].Name)
	assert.False(t, deps[0].IsDev, "first non-dev classification must stick")
}

func TestAggregate_DevFirstStaysDev(t *testing.T) {
	t.Parallel()

	doc := &Document{Source: `npm install --save-dev supertest
npm install supertest
`}

	deps := nestAggregator(t).Aggregate(doc, nil)
	require.Len(t, deps, 1)
	assert.True(t, deps[0].IsDev)
}

func TestAggregate_TrailingDevFlag(t *testing.T) {
	t.Parallel()

	doc := &Document{Source: "npm install jest ts-jest -D\n"}

	deps := nestAggregator(t).Aggregate(doc, nil)
	require.Len(t, deps, 2)
	assert.True(t, deps[0].IsDev)
	assert.True(t, deps[1].IsDev)
}

func TestAggregate_FiltersNonPackageTokens(t *testing.T) {
	t.Parallel()

	doc := &Document{Source: `npm install --legacy-peer-deps @nestjs/config ./local/path notes.md
$ npm i express
`}

	deps := nestAggregator(t).Aggregate(doc, nil)
	assert.Equal(t, []string{"@nestjs/config", "express"}, depNames(deps))
}

func TestAggregate_ImpliedEntityDeps(t *testing.T) {
	t.Parallel()

	doc := &Document{Source: "no install lines here"}
	files := []ClassifiedFile{
		{Path: "entities/user.entity.ts", Kind: KindEntity},
	}

	deps := nestAggregator(t).Aggregate(doc, files)
	assert.Equal(t, []string{"@nestjs/typeorm", "typeorm"}, depNames(deps))
	for _, d := range deps {
		assert.False(t, d.IsDev)
	}
}

func TestAggregate_CompositeEntityImpliesDeps(t *testing.T) {
	t.Parallel()

	doc := &Document{Source: ""}
	files := []ClassifiedFile{
		{Path: "entities/log-entry.entity.ts", Kind: KindCompositeEntity},
	}

	deps := nestAggregator(t).Aggregate(doc, files)
	assert.Equal(t, []string{"@nestjs/typeorm", "typeorm"}, depNames(deps))
}

func TestAggregate_NoEntityNoImpliedDeps(t *testing.T) {
	t.Parallel()

	doc := &Document{Source: ""}
	files := []ClassifiedFile{
		{Path: "guards/roles.guard.ts", Kind: KindGuard},
	}

	deps := nestAggregator(t).Aggregate(doc, files)
	assert.Empty(t, deps)
}

func TestAggregate_PipInstall(t *testing.T) {
	t.Parallel()

	doc := &Document{Source: `pip install celery redis
pip install djangorestframework-simplejwt==5.3.0
pip install -r requirements.txt
`}

	deps := djangoAggregator(t).Aggregate(doc, nil)
	assert.Equal(t, []string{"celery", "redis", "djangorestframework-simplejwt==5.3.0"}, depNames(deps))
	for _, d := range deps {
		assert.False(t, d.IsDev)
	}
}

func TestSplitManifest(t *testing.T) {
	t.Parallel()

	runtime, dev := SplitManifest([]Dependency{
		{Name: "zeta"},
		{Name: "alpha"},
		{Name: "jest", IsDev: true},
	})
	assert.Equal(t, []string{"alpha", "zeta"}, runtime)
	assert.Equal(t, []string{"jest"}, dev)
}
