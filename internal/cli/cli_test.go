package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestExportToStdout(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "doc.md")
	require.NoError(t, os.WriteFile(path, []byte("~~old~~ new\n"), 0o644))

	out, _, err := run(t, "export", path, "-o", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "<del>old</del>")
	assert.Contains(t, out, "<title>doc.md</title>")
}

func TestExportDefaultOutputPath(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.markdown")
	require.NoError(t, os.WriteFile(path, []byte("# Notes\n"), 0o644))

	_, stderr, err := run(t, "export", path, "--title", "My Notes")
	require.NoError(t, err)
	assert.Contains(t, stderr, "notes.html")

	data, err := os.ReadFile(filepath.Join(dir, "notes.html"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "<title>My Notes</title>")
}

func TestExportRejectsUnsupported(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "deck.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF"), 0o644))

	_, _, err := run(t, "export", path, "-o", "-")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file type")
}

func TestConfigCommandShowsOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("MDPEEK_STYLE", "dracula")

	out, _, err := run(t, "config", "--width", "64")
	require.NoError(t, err)
	assert.Contains(t, out, "style = dracula")
	assert.Contains(t, out, "word_wrap = 64")
	assert.Contains(t, out, "picker.extensions = [.md .markdown .txt]")
}

func TestInvalidConfigFails(t *testing.T) {
	isolate(t)
	t.Setenv("MDPEEK_STYLE", "neon")

	_, _, err := run(t, "config")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `style "neon"`)
}
