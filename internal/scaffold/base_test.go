package scaffold

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/blueprint/internal/generator"
)

// Test Plan for the framework base structure:
// - NestJS gets tsconfig.json at the root and src stubs under the source root
// - A classified file that claims a stub's path wins; the stub is skipped
// - Django gets manage.py and the config/settings tree at the root
// - Unknown families are rejected
// - .env.example collects env fragments; no fragments, no file
// - README.md lists the features and the family's setup commands

func TestWriteBaseFiles_Nest(t *testing.T) {
	t.Parallel()

	w, dir := newTestWriter(t)
	require.NoError(t, w.WriteBaseFiles("nestjs", "src", nil))

	data, err := os.ReadFile(filepath.Join(dir, "tsconfig.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"experimentalDecorators": true`)

	data, err = os.ReadFile(filepath.Join(dir, "src", "main.ts"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "NestFactory.create(AppModule)")

	for _, rel := range []string{"app.module.ts", "app.controller.ts", "app.service.ts"} {
		_, err := os.Stat(filepath.Join(dir, "src", rel))
		assert.NoError(t, err, rel)
	}
}

func TestWriteBaseFiles_ClassifiedFileWins(t *testing.T) {
	t.Parallel()

	w, dir := newTestWriter(t)

	files := []generator.ClassifiedFile{
		{Path: "app.module.ts", Content: "export class AppModule { /* document copy */ }"},
	}
	require.NoError(t, w.WriteFiles(files, "src"))
	require.NoError(t, w.WriteBaseFiles("nestjs", "src", files))

	data, err := os.ReadFile(filepath.Join(dir, "src", "app.module.ts"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "document copy")
}

func TestWriteBaseFiles_Django(t *testing.T) {
	t.Parallel()

	w, dir := newTestWriter(t)
	require.NoError(t, w.WriteBaseFiles("django", "", nil))

	data, err := os.ReadFile(filepath.Join(dir, "manage.py"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "execute_from_command_line")

	data, err = os.ReadFile(filepath.Join(dir, "config", "settings", "__init__.py"))
	require.NoError(t, err)
	assert.Equal(t, "from .local import *\n", string(data))

	for _, rel := range []string{
		"config/wsgi.py",
		"config/urls.py",
		"config/settings/base.py",
		"config/settings/local.py",
		"apps/__init__.py",
	} {
		_, err := os.Stat(filepath.Join(dir, filepath.FromSlash(rel)))
		assert.NoError(t, err, rel)
	}
}

func TestWriteBaseFiles_UnknownFamily(t *testing.T) {
	t.Parallel()

	w, _ := newTestWriter(t)
	err := w.WriteBaseFiles("rails", "", nil)
	assert.ErrorContains(t, err, "no base structure")
}

func TestWriteEnvExample(t *testing.T) {
	t.Parallel()

	w, dir := newTestWriter(t)

	content := `## Auth

` + "```env" + `
JWT_SECRET=change-me
` + "```" + `

## Storage

` + "```env" + `
UPLOAD_DIR=./uploads
` + "```" + `
`
	doc, err := generator.ParseDocument(content)
	require.NoError(t, err)
	require.NoError(t, w.WriteEnvExample(doc))

	data, err := os.ReadFile(filepath.Join(dir, ".env.example"))
	require.NoError(t, err)
	assert.Equal(t, "JWT_SECRET=change-me\n\nUPLOAD_DIR=./uploads\n", string(data))
}

func TestWriteEnvExample_NoEnvFragments(t *testing.T) {
	t.Parallel()

	w, dir := newTestWriter(t)

	doc, err := generator.ParseDocument("## Auth\n\n```typescript\nexport class A {}\n```\n")
	require.NoError(t, err)
	require.NoError(t, w.WriteEnvExample(doc))

	_, err = os.Stat(filepath.Join(dir, ".env.example"))
	assert.True(t, os.IsNotExist(err))
}

func TestWriteReadme_Nest(t *testing.T) {
	t.Parallel()

	w, dir := newTestWriter(t)
	require.NoError(t, w.WriteReadme("nestjs", "acme-api", []string{"RBAC System", "Logging"}))

	data, err := os.ReadFile(filepath.Join(dir, "README.md"))
	require.NoError(t, err)
	readme := string(data)
	assert.Contains(t, readme, "# acme-api")
	assert.Contains(t, readme, "- RBAC System")
	assert.Contains(t, readme, "- Logging")
	assert.Contains(t, readme, "npm install")
}

func TestWriteReadme_Django(t *testing.T) {
	t.Parallel()

	w, dir := newTestWriter(t)
	require.NoError(t, w.WriteReadme("django", "acme-api", []string{"User Management"}))

	data, err := os.ReadFile(filepath.Join(dir, "README.md"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "pip install -r requirements.txt")
	assert.Contains(t, string(data), "python manage.py migrate")
}
