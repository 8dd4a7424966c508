package document

import (
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
)

// File is a loadable handle with a declared media type.
type File interface {
	Name() string
	MediaType() string
	Open() (io.ReadCloser, error)
}

// LocalFile is a File backed by the filesystem.
type LocalFile struct {
	Path string
}

// NewLocalFile returns a handle for path.
func NewLocalFile(path string) LocalFile {
	return LocalFile{Path: filepath.Clean(path)}
}

// Name returns the base name of the file.
func (f LocalFile) Name() string {
	return filepath.Base(f.Path)
}

// MediaType guesses the media type from the extension. Markdown and text
// extensions are not registered on every system and are mapped explicitly.
func (f LocalFile) MediaType() string {
	ext := strings.ToLower(filepath.Ext(f.Path))
	switch {
	case isMarkdownExt(ext):
		return "text/markdown"
	case ext == ".txt":
		return "text/plain; charset=utf-8"
	}
	return mime.TypeByExtension(ext)
}

// Open opens the file for reading.
func (f LocalFile) Open() (io.ReadCloser, error) {
	return os.Open(f.Path)
}

// pathOf returns the filesystem location behind f, if any.
func pathOf(f File) string {
	if lf, ok := f.(LocalFile); ok {
		return lf.Path
	}
	return ""
}

var markdownExts = []string{".md", ".markdown", ".mdx"}

func isMarkdownExt(ext string) bool {
	for _, e := range markdownExts {
		if ext == e {
			return true
		}
	}
	return false
}

// Accepted reports whether a file with the given name and media type can be
// loaded: a markdown or plain-text media type, or a markdown extension.
func Accepted(name, mediaType string) bool {
	if mediaType != "" {
		if parsed, _, err := mime.ParseMediaType(mediaType); err == nil {
			switch parsed {
			case "text/markdown", "text/x-markdown", "text/plain":
				return true
			}
		}
	}
	return isMarkdownExt(strings.ToLower(filepath.Ext(name)))
}
