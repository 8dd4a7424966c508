package dnd

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-shellwords"
)

// ParseDrop interprets pasted terminal input as a file drop. Terminal
// emulators paste dropped files as shell-quoted absolute paths or file://
// URIs separated by whitespace. The paste counts as a drop only when every
// word is such a path and exists reports it present. Relative names are
// ordinary text.
func ParseDrop(text string, exists func(string) bool) ([]string, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, false
	}

	parser := shellwords.NewParser()
	words, err := parser.Parse(text)
	if err != nil || len(words) == 0 {
		return nil, false
	}
	// Parse stops at shell operators; a drop never contains one.
	if parser.Position != -1 {
		return nil, false
	}

	paths := make([]string, 0, len(words))
	for _, word := range words {
		path := pathFromWord(word)
		if path == "" || !exists(path) {
			return nil, false
		}
		paths = append(paths, path)
	}
	return paths, true
}

// FileExists reports whether path names a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

func pathFromWord(word string) string {
	if !strings.HasPrefix(word, "file://") {
		if !filepath.IsAbs(word) {
			return ""
		}
		return word
	}
	u, err := url.Parse(word)
	if err != nil {
		return ""
	}
	return u.Path
}
