package dnd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func existsIn(set ...string) func(string) bool {
	return func(p string) bool {
		for _, s := range set {
			if s == p {
				return true
			}
		}
		return false
	}
}

func TestParseDrop(t *testing.T) {
	exists := existsIn("/docs/a.md", "/docs/with space.md", "/docs/b.txt", "a.md", "docs/a.md")

	tests := []struct {
		name  string
		input string
		want  []string
		ok    bool
	}{
		{name: "plain path", input: "/docs/a.md", want: []string{"/docs/a.md"}, ok: true},
		{name: "trailing space", input: "/docs/a.md ", want: []string{"/docs/a.md"}, ok: true},
		{name: "single quoted", input: "'/docs/with space.md'", want: []string{"/docs/with space.md"}, ok: true},
		{name: "escaped space", input: `/docs/with\ space.md`, want: []string{"/docs/with space.md"}, ok: true},
		{name: "file uri", input: "file:///docs/with%20space.md", want: []string{"/docs/with space.md"}, ok: true},
		{name: "several files", input: "/docs/a.md /docs/b.txt", want: []string{"/docs/a.md", "/docs/b.txt"}, ok: true},
		{name: "prose", input: "# Hello world", ok: false},
		{name: "relative name", input: "a.md", ok: false},
		{name: "relative path", input: "docs/a.md", ok: false},
		{name: "relative file uri", input: "file://a.md", ok: false},
		{name: "one missing", input: "/docs/a.md /docs/missing.md", ok: false},
		{name: "shell operator", input: "/docs/a.md; ls", ok: false},
		{name: "empty", input: "   ", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDrop(tt.input, exists)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "note.md")
	require.NoError(t, os.WriteFile(file, []byte("# note"), 0o644))

	assert.True(t, FileExists(file))
	assert.False(t, FileExists(dir))
	assert.False(t, FileExists(filepath.Join(dir, "nope.md")))
}
