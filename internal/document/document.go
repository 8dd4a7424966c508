package document

import (
	_ "embed"
	"fmt"
)

//go:embed sample.md
var sample string

// Sample returns the built-in reference document.
func Sample() string {
	return sample
}

// Document is the markdown currently on screen.
type Document struct {
	Text string
	// FileName is empty when the text did not come from a file.
	FileName string
	// Path is set only for files loaded from the local filesystem.
	Path string
}

// HasFile reports whether the document is associated with a file.
func (d Document) HasFile() bool {
	return d.FileName != ""
}

// Mode is the view mode of the viewer.
type Mode int

const (
	Previewing Mode = iota
	Editing
)

func (m Mode) String() string {
	switch m {
	case Previewing:
		return "preview"
	case Editing:
		return "edit"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}
