package document

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyaoi/mdpeek/internal/dnd"
)

type memFile struct {
	name      string
	mediaType string
	body      string
	openErr   error
}

func (f memFile) Name() string      { return f.name }
func (f memFile) MediaType() string { return f.mediaType }
func (f memFile) Open() (io.ReadCloser, error) {
	if f.openErr != nil {
		return nil, f.openErr
	}
	return io.NopCloser(strings.NewReader(f.body)), nil
}

func load(t *testing.T, c *Controller, f File) error {
	t.Helper()
	return c.LoadFileSync(context.Background(), f)
}

func TestLoadFileAccepted(t *testing.T) {
	tests := []struct {
		name string
		file memFile
	}{
		{name: "markdown type", file: memFile{name: "notes", mediaType: "text/markdown", body: "# a"}},
		{name: "plain text type", file: memFile{name: "notes.log", mediaType: "text/plain; charset=utf-8", body: "plain"}},
		{name: "md extension", file: memFile{name: "README.md", body: "| a | b |\n|---|---|\n| 1 | 2 |\n"}},
		{name: "markdown extension upper", file: memFile{name: "GUIDE.MARKDOWN", body: "~~gone~~"}},
		{name: "empty body", file: memFile{name: "empty.md"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewController()
			c.ToggleMode()
			require.Equal(t, Editing, c.Mode())

			require.NoError(t, load(t, c, tt.file))
			assert.Equal(t, tt.file.body, c.Document().Text)
			assert.Equal(t, tt.file.name, c.Document().FileName)
			assert.Equal(t, Previewing, c.Mode())
			assert.NoError(t, c.Err())
		})
	}
}

func TestLoadFileRejectedLeavesStateUnchanged(t *testing.T) {
	tests := []memFile{
		{name: "paper.PDF", mediaType: "application/pdf", body: "%PDF"},
		{name: "image.png", mediaType: "image/png"},
		{name: "archive", body: "binary"},
	}
	for _, f := range tests {
		t.Run(f.name, func(t *testing.T) {
			c := NewController()
			c.LoadSample()
			c.ToggleMode()
			before := c.Document()

			read, err := c.LoadFile(f)
			require.Nil(t, read)
			require.ErrorIs(t, err, ErrUnsupportedFile)
			assert.Equal(t, before, c.Document())
			assert.Equal(t, Editing, c.Mode())
			require.Error(t, c.Err())
			assert.Contains(t, c.Err().Error(), f.name)
		})
	}
}

func TestLoadFileReadFailureIsVisible(t *testing.T) {
	c := NewController()
	c.LoadSample()
	before := c.Document()

	boom := errors.New("permission denied")
	err := load(t, c, memFile{name: "secret.md", openErr: boom})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, before, c.Document())
	assert.ErrorIs(t, c.Err(), boom)

	c.DismissErr()
	assert.NoError(t, c.Err())
}

func TestLoadFileIsAsynchronous(t *testing.T) {
	c := NewController()
	c.LoadSample()

	read, err := c.LoadFile(memFile{name: "a.md", body: "# A"})
	require.NoError(t, err)
	assert.Equal(t, Sample(), c.Document().Text, "nothing changes until the read completes")

	require.NoError(t, c.Complete(read(context.Background())))
	assert.Equal(t, "# A", c.Document().Text)
}

func TestConcurrentLoadsLastCompletionWins(t *testing.T) {
	c := NewController()
	readA, err := c.LoadFile(memFile{name: "a.md", body: "A"})
	require.NoError(t, err)
	readB, err := c.LoadFile(memFile{name: "b.md", body: "B"})
	require.NoError(t, err)

	loadedB := readB(context.Background())
	loadedA := readA(context.Background())
	require.NoError(t, c.Complete(loadedB))
	require.NoError(t, c.Complete(loadedA))

	assert.Equal(t, "A", c.Document().Text)
	assert.Equal(t, "a.md", c.Document().FileName)
}

func TestLoadFileStripsByteOrderMark(t *testing.T) {
	c := NewController()
	require.NoError(t, load(t, c, memFile{name: "bom.md", body: "\xEF\xBB\xBF# Title"}))
	assert.Equal(t, "# Title", c.Document().Text)
}

func TestLoadLocalFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello\r\nworld"), 0o644))

	c := NewController()
	require.NoError(t, load(t, c, NewLocalFile(path)))
	doc := c.Document()
	assert.Equal(t, "hello\r\nworld", doc.Text)
	assert.Equal(t, "doc.txt", doc.FileName)
	assert.Equal(t, path, doc.Path)

	require.NoError(t, os.WriteFile(path, []byte("changed"), 0o644))
	read, err := c.Reload()
	require.NoError(t, err)
	require.NoError(t, c.Complete(read(context.Background())))
	assert.Equal(t, "changed", c.Document().Text)
}

func TestReloadWithoutFile(t *testing.T) {
	c := NewController()
	c.LoadSample()
	_, err := c.Reload()
	require.ErrorIs(t, err, ErrNoFile)
}

func TestLoadFromPicker(t *testing.T) {
	c := NewController()
	c.LoadSample()

	read, err := c.LoadFromPicker(nil)
	require.NoError(t, err)
	require.Nil(t, read)
	assert.Equal(t, Sample(), c.Document().Text)

	read, err = c.LoadFromPicker([]File{
		memFile{name: "first.md", body: "first"},
		memFile{name: "second.md", body: "second"},
	})
	require.NoError(t, err)
	require.NoError(t, c.Complete(read(context.Background())))
	assert.Equal(t, "first", c.Document().Text)
}

func TestSetDragActiveRequiresFiles(t *testing.T) {
	c := NewController()
	files := []string{dnd.FilesType}

	assert.False(t, c.SetDragActive(1, []string{"text/plain"}))
	assert.Equal(t, 0, c.DragDepth())

	assert.True(t, c.SetDragActive(1, files))
	assert.True(t, c.SetDragActive(1, files))
	assert.True(t, c.SetDragActive(-1, files))
	assert.Equal(t, 1, c.DragDepth())
	assert.False(t, c.SetDragActive(-1, files))
	assert.False(t, c.Dragging())
}

func TestHandleDropReplacesEditedText(t *testing.T) {
	c := NewController()
	c.ToggleMode()
	require.True(t, c.SetEditText("# Hello"))
	c.SetDragActive(1, []string{dnd.FilesType})
	c.SetDragActive(1, []string{dnd.FilesType})

	read, err := c.HandleDrop(Payload{
		Types: []string{dnd.FilesType},
		Files: []File{
			memFile{name: "dropped.md", body: "dropped"},
			memFile{name: "ignored.md", body: "ignored"},
		},
	})
	require.NoError(t, err)
	assert.False(t, c.Dragging())
	assert.Equal(t, 0, c.DragDepth())

	require.NoError(t, c.Complete(read(context.Background())))
	assert.Equal(t, "dropped", c.Document().Text)
	assert.Equal(t, Previewing, c.Mode())
}

func TestHandleDropWithoutFiles(t *testing.T) {
	c := NewController()
	c.SetDragActive(1, []string{dnd.FilesType})
	read, err := c.HandleDrop(Payload{Types: []string{dnd.FilesType}})
	require.NoError(t, err)
	require.Nil(t, read)
	assert.False(t, c.Dragging())
}

func TestHandleDragEvent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "drop.md")
	require.NoError(t, os.WriteFile(path, []byte("# Dropped"), 0o644))

	c := NewController()
	types := []string{dnd.FilesType}

	_, _ = c.HandleDragEvent(dnd.Event{Kind: dnd.Enter, Types: types})
	_, _ = c.HandleDragEvent(dnd.Event{Kind: dnd.Over, Types: types})
	assert.True(t, c.Dragging())
	_, _ = c.HandleDragEvent(dnd.Event{Kind: dnd.Leave, Types: types})
	assert.False(t, c.Dragging())

	_, _ = c.HandleDragEvent(dnd.Event{Kind: dnd.Enter, Types: types})
	read, err := c.HandleDragEvent(dnd.Event{Kind: dnd.Drop, Types: types, Paths: []string{path}})
	require.NoError(t, err)
	assert.False(t, c.Dragging())
	require.NoError(t, c.Complete(read(context.Background())))
	assert.Equal(t, "# Dropped", c.Document().Text)
	assert.Equal(t, path, c.Document().Path)
}

func TestToggleModeIsItsOwnInverse(t *testing.T) {
	c := NewController()
	start := c.Mode()
	c.ToggleMode()
	assert.NotEqual(t, start, c.Mode())
	c.ToggleMode()
	assert.Equal(t, start, c.Mode())
}

func TestSetEditTextRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"# Hello",
		"tabs\tand\r\nCRLF\n",
		"**unclosed *emphasis\n| broken | table\n",
		"unicode 日本語 Gd³⁺ ★★★",
	}
	for _, s := range inputs {
		c := NewController()
		assert.False(t, c.SetEditText(s), "preview mode ignores edits")

		c.ToggleMode()
		require.True(t, c.SetEditText(s))
		c.ToggleMode()
		c.ToggleMode()
		assert.Equal(t, s, c.Document().Text)
	}
}

func TestClearAndSampleKeepMode(t *testing.T) {
	c := NewController()
	require.NoError(t, load(t, c, memFile{name: "a.md", body: "A"}))
	c.ToggleMode()

	c.Clear()
	assert.Equal(t, Document{}, c.Document())
	assert.False(t, c.Document().HasFile())
	assert.Equal(t, Editing, c.Mode())

	c.LoadSample()
	assert.Equal(t, Sample(), c.Document().Text)
	assert.Empty(t, c.Document().FileName)
	assert.Equal(t, Editing, c.Mode())
}

func TestSampleExercisesRenderer(t *testing.T) {
	s := Sample()
	assert.True(t, strings.HasPrefix(s, "# Comprehensive Gap Analysis"))
	assert.Contains(t, s, "|--------|")
	assert.Contains(t, s, "\n---\n")
	assert.Contains(t, s, "**")
}
