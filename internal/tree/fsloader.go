package tree

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

var errNotDir = errors.New("path is not a directory")

// DefaultExtensions is the picker's file filter. It is a hint; whatever is
// picked is validated again when it is loaded.
var DefaultExtensions = []string{".md", ".markdown", ".txt"}

// FSLoader loads tree nodes by reading the filesystem under the given root.
// Only files whose extension is in the filter, and directories that contain
// such files, are listed.
type FSLoader struct {
	root  string
	exts  []string
	cache map[string]bool
}

// NewFSLoader creates a loader that reads from root and lists files with one
// of exts. An empty exts uses DefaultExtensions.
func NewFSLoader(root string, exts []string) *FSLoader {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	normalized := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		normalized = append(normalized, ext)
	}
	return &FSLoader{
		root:  root,
		exts:  normalized,
		cache: make(map[string]bool),
	}
}

// Root returns the absolute directory the loader reads from.
func (l *FSLoader) Root() string {
	return l.root
}

// Abs returns the filesystem path of a path relative to the root.
func (l *FSLoader) Abs(relPath string) string {
	if relPath == "" {
		return l.root
	}
	return filepath.Join(l.root, filepath.FromSlash(relPath))
}

// List returns immediate child entries for the provided relative path.
func (l *FSLoader) List(relPath string) ([]*Node, error) {
	dir := l.Abs(relPath)
	info, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, errNotDir
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var nodes []*Node
	for _, entry := range entries {
		name := entry.Name()
		childPath := join(relPath, name)
		if entry.IsDir() {
			if shouldSkipDir(name) {
				continue
			}
			has, err := l.HasMatches(childPath)
			if err != nil {
				return nil, err
			}
			if has {
				nodes = append(nodes, &Node{Name: name, Path: childPath, IsDir: true})
			}
			continue
		}
		if l.matches(name) {
			nodes = append(nodes, &Node{Name: name, Path: childPath})
		}
	}
	return nodes, nil
}

// HasMatches reports whether the path (relative to the loader root) contains
// at least one listable file within its subtree.
func (l *FSLoader) HasMatches(relPath string) (bool, error) {
	if cached, ok := l.cache[relPath]; ok {
		return cached, nil
	}

	entries, err := os.ReadDir(l.Abs(relPath))
	if err != nil {
		return false, err
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() {
			if shouldSkipDir(name) {
				continue
			}
			has, err := l.HasMatches(join(relPath, name))
			if err != nil {
				return false, err
			}
			if has {
				l.cache[relPath] = true
				return true, nil
			}
			continue
		}
		if l.matches(name) {
			l.cache[relPath] = true
			return true, nil
		}
	}

	l.cache[relPath] = false
	return false, nil
}

func (l *FSLoader) matches(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range l.exts {
		if ext == e {
			return true
		}
	}
	return false
}

func join(base, part string) string {
	if base == "" {
		return part
	}
	return base + "/" + part
}

func shouldSkipDir(name string) bool {
	switch strings.ToLower(name) {
	case ".git", "node_modules", ".hg", ".svn", ".idea", ".vscode":
		return true
	default:
		return false
	}
}
