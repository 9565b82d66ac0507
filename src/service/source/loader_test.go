package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webguard/src/config"
)

func writeFixture(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoadDirKeepsOnlyWebArtifacts(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "index.html", "<html></html>")
	writeFixture(t, root, "assets/style.css", "body {}")
	writeFixture(t, root, "js/app.js", "let a = 1;")
	writeFixture(t, root, "readme.txt", "not analyzed")
	writeFixture(t, root, "logo.png", "\x89PNG")

	loader := NewLoader(config.DefaultConfig().Exclusions)
	files, err := loader.LoadDir(root)

	require.NoError(t, err)
	assert.Len(t, files, 3)
	assert.Equal(t, "<html></html>", files["index.html"])
	assert.Equal(t, "body {}", files["assets/style.css"])
	assert.Equal(t, "let a = 1;", files["js/app.js"])
}

func TestLoadDirHonorsExclusions(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "app.js", "let a = 1;")
	writeFixture(t, root, "vendor/lib.js", "var v = 1;")
	writeFixture(t, root, "bundle.min.js", "var m=1;")

	loader := NewLoader(config.DefaultConfig().Exclusions)
	files, err := loader.LoadDir(root)

	require.NoError(t, err)
	assert.Len(t, files, 1)
	assert.Contains(t, files, "app.js")
}

func TestLoadDirMissingRoot(t *testing.T) {
	loader := NewLoader(config.DefaultConfig().Exclusions)
	_, err := loader.LoadDir(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestWriteFilesRoundTrip(t *testing.T) {
	loader := NewLoader(config.DefaultConfig().Exclusions)
	out := t.TempDir()
	files := map[string]string{
		"index.html":   "<html></html>",
		"css/main.css": "body {}",
	}

	require.NoError(t, loader.WriteFiles(out, files))

	loaded, err := loader.LoadDir(out)
	require.NoError(t, err)
	assert.Equal(t, files, loaded)
}
