package ui

import (
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/kyaoi/mdpeek/internal/document"
)

type fileEventMsg struct {
	path string
	op   fsnotify.Op
}

type fileWatchErrMsg struct {
	err error
}

// startWatching watches the directory of path, which survives editors that
// save by renaming a temporary file over the original.
func (m *Model) startWatching(path string) tea.Cmd {
	path = filepath.Clean(path)
	if err := m.ensureWatcher(); err != nil {
		m.err = err
		return nil
	}

	dir := filepath.Dir(path)
	if dir != m.watchDir {
		if m.watchDir != "" {
			_ = m.watcher.Remove(m.watchDir)
		}
		if err := m.watcher.Add(dir); err != nil {
			m.err = err
			return nil
		}
		m.watchDir = dir
	}

	m.watchedFile = path
	return m.waitForFileEvent()
}

func (m *Model) stopWatching() {
	m.watchedFile = ""
	if m.watcher != nil && m.watchDir != "" {
		_ = m.watcher.Remove(m.watchDir)
	}
	m.watchDir = ""
}

func (m *Model) closeWatcher() {
	m.stopWatching()
	if m.watcher != nil {
		close(m.watchDone)
		_ = m.watcher.Close()
		m.watcher = nil
	}
}

func (m *Model) ensureWatcher() error {
	if m.watcher != nil {
		return nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	m.watcher = watcher
	m.watchDone = make(chan struct{})
	if m.watchChan == nil {
		m.watchChan = make(chan tea.Msg, 10)
	}

	go watchLoop(watcher, m.watchChan, m.watchDone)
	return nil
}

// watchLoop forwards watcher notifications to out until the watcher closes
// or done is closed.
func watchLoop(watcher *fsnotify.Watcher, out chan<- tea.Msg, done <-chan struct{}) {
	for {
		var msg tea.Msg
		select {
		case <-done:
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			msg = fileEventMsg{path: event.Name, op: event.Op}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			msg = fileWatchErrMsg{err: err}
		}

		select {
		case out <- msg:
		case <-done:
			return
		}
	}
}

// waitForFileEvent returns a command receiving the next watcher message. At
// most one such command is outstanding at a time.
func (m *Model) waitForFileEvent() tea.Cmd {
	if m.watchChan == nil || m.waiting {
		return nil
	}
	m.waiting = true
	ch := m.watchChan
	return func() tea.Msg {
		return <-ch
	}
}

// handleFileEvent reloads the open file when it changes on disk. Edits in
// progress are never overwritten.
func (m *Model) handleFileEvent(msg fileEventMsg) tea.Cmd {
	m.waiting = false
	next := m.waitForFileEvent()
	if m.watchedFile == "" || filepath.Clean(msg.path) != m.watchedFile {
		return next
	}
	if msg.op&fsnotify.Remove != 0 {
		return next
	}
	if m.ctrl.Mode() != document.Previewing {
		return next
	}
	read, err := m.ctrl.Reload()
	if err != nil {
		m.logger.Printf("reload %s: %v", m.watchedFile, err)
		return next
	}
	return tea.Batch(next, readCmd(read))
}
