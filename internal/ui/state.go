package ui

import (
	"log"

	"github.com/kyaoi/mdpeek/internal/dnd"
	"github.com/kyaoi/mdpeek/internal/document"
	"github.com/kyaoi/mdpeek/internal/render"
)

// State contains the data required to bootstrap the Bubble Tea model.
type State struct {
	Controller *document.Controller
	// Bus carries window-level drag-and-drop events. A nil Bus gets a private one.
	Bus *dnd.Bus

	// PickerRoot is the directory browsed by the file picker. Empty disables
	// the picker.
	PickerRoot       string
	PickerExtensions []string
	PickerVisible    bool
	PickerWidth      int
	FocusPicker      bool

	// Render configures the preview renderer. A zero Width follows the
	// window width.
	Render render.TerminalOptions
	Watch  bool
	Logger *log.Logger
}
