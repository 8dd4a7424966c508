package ui

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyaoi/mdpeek/internal/document"
)

// watchedModel returns a model previewing a file on disk that it treats as
// watched, without starting a real watcher.
func watchedModel(t *testing.T, body string) (*Model, *document.Controller, string) {
	t.Helper()
	ctrl := document.NewController()
	path := loadDocument(t, ctrl, "live.md", body)
	m := newTestModel(t, State{Controller: ctrl})
	m.watchedFile = path
	return m, ctrl, path
}

func TestFileEventReloadsWhilePreviewing(t *testing.T) {
	m, ctrl, path := watchedModel(t, "# first\n")
	require.NoError(t, os.WriteFile(path, []byte("# second\n"), 0o644))

	_, cmd := m.Update(fileEventMsg{path: path, op: fsnotify.Write})
	require.NotNil(t, cmd)
	deliver(t, m, cmd)

	assert.Equal(t, "# second\n", ctrl.Document().Text)
	assert.Equal(t, path, ctrl.Document().Path)
	assert.Contains(t, m.renderedText, "second")
}

func TestFileEventIgnored(t *testing.T) {
	tests := []struct {
		name  string
		edit  bool
		op    fsnotify.Op
		other bool
	}{
		{name: "while editing", edit: true, op: fsnotify.Write},
		{name: "remove", op: fsnotify.Remove},
		{name: "another file", op: fsnotify.Write, other: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ctrl, path := watchedModel(t, "# first\n")
			if tt.edit {
				m.Update(keys("e"))
				require.Equal(t, document.Editing, ctrl.Mode())
			}
			require.NoError(t, os.WriteFile(path, []byte("# second\n"), 0o644))

			eventPath := path
			if tt.other {
				eventPath = filepath.Join(filepath.Dir(path), "other.md")
			}
			_, cmd := m.Update(fileEventMsg{path: eventPath, op: tt.op})
			assert.Nil(t, cmd)
			assert.Equal(t, "# first\n", ctrl.Document().Text)
		})
	}
}

func TestStartWatchingDeliversChanges(t *testing.T) {
	m, _, path := watchedModel(t, "# first\n")

	cmd := m.startWatching(path)
	require.NotNil(t, cmd)
	assert.Equal(t, filepath.Dir(path), m.watchDir)
	assert.Nil(t, m.waitForFileEvent(), "only one waiter at a time")

	require.NoError(t, os.WriteFile(path, []byte("# second\n"), 0o644))
	msgs := make(chan tea.Msg, 1)
	go func() { msgs <- cmd() }()

	select {
	case msg := <-msgs:
		event, ok := msg.(fileEventMsg)
		require.True(t, ok, "got %T", msg)
		assert.Equal(t, path, event.path)
	case <-time.After(5 * time.Second):
		t.Fatal("no file event delivered")
	}

	m.Close()
	assert.Nil(t, m.watcher)
	assert.Empty(t, m.watchedFile)
}

func TestWatchLoopStopsWhenDone(t *testing.T) {
	watcher, err := fsnotify.NewWatcher()
	require.NoError(t, err)
	defer watcher.Close()
	dir := t.TempDir()
	require.NoError(t, watcher.Add(dir))

	out := make(chan tea.Msg)
	done := make(chan struct{})
	exited := make(chan struct{})
	go func() {
		watchLoop(watcher, out, done)
		close(exited)
	}()

	writeFile(t, dir, "a.md", "a")
	close(done)

	select {
	case <-exited:
	case <-time.After(5 * time.Second):
		t.Fatal("watch loop still blocked on its output")
	}
}
