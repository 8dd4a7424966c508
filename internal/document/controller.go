package document

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"

	"github.com/kyaoi/mdpeek/internal/dnd"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadFunc performs the suspended part of an accepted load. Callers run it
// wherever asynchronous work belongs in their host and hand the result to
// Controller.Complete.
type ReadFunc func(ctx context.Context) Loaded

// Loaded is the completion of a file read.
type Loaded struct {
	File File
	Text string
	Err  error
}

// Payload is the content of a drop.
type Payload struct {
	Types []string
	Files []File
}

// Controller owns the document, the view mode and the drag state, and applies
// user actions to them. It is not safe for concurrent use; all calls are
// expected to come from the UI event loop.
type Controller struct {
	doc    Document
	mode   Mode
	drag   dnd.Counter
	err    error
	logger *log.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for load diagnostics.
func WithLogger(logger *log.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewController returns a controller with an empty document in preview mode.
func NewController(opts ...Option) *Controller {
	c := &Controller{
		mode:   Previewing,
		logger: log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Document returns the current document.
func (c *Controller) Document() Document {
	return c.doc
}

// Mode returns the current view mode.
func (c *Controller) Mode() Mode {
	return c.mode
}

// Dragging reports whether a file drag is over the window.
func (c *Controller) Dragging() bool {
	return c.drag.Active()
}

// DragDepth returns the drag nesting depth.
func (c *Controller) DragDepth() int {
	return c.drag.Depth()
}

// Err returns the error to show to the user, if any.
func (c *Controller) Err() error {
	return c.err
}

// DismissErr clears the visible error.
func (c *Controller) DismissErr() {
	c.err = nil
}

// LoadFile validates f and returns the read that completes the load. Files
// that are neither markdown nor plain text are rejected with
// ErrUnsupportedFile; the document and mode are left untouched and the
// rejection becomes the visible error.
func (c *Controller) LoadFile(f File) (ReadFunc, error) {
	if f == nil {
		return nil, ErrNoFile
	}
	if !Accepted(f.Name(), f.MediaType()) {
		err := fmt.Errorf("%s: %w", f.Name(), ErrUnsupportedFile)
		c.err = err
		c.logger.Printf("load rejected name=%q type=%q", f.Name(), f.MediaType())
		return nil, err
	}
	c.logger.Printf("load accepted name=%q type=%q", f.Name(), f.MediaType())
	return func(ctx context.Context) Loaded {
		return readFile(ctx, f)
	}, nil
}

// Complete applies a finished read. A successful read replaces the whole
// document and switches to preview mode. A failed read leaves the document
// and mode as they were and records the failure as the visible error.
// Completions are applied in the order they arrive, so the last one wins.
func (c *Controller) Complete(l Loaded) error {
	if l.Err != nil {
		c.err = l.Err
		c.logger.Printf("load failed: %v", l.Err)
		return l.Err
	}
	c.doc = Document{
		Text:     l.Text,
		FileName: l.File.Name(),
		Path:     pathOf(l.File),
	}
	c.mode = Previewing
	c.err = nil
	c.logger.Printf("loaded name=%q bytes=%d", c.doc.FileName, len(l.Text))
	return nil
}

// LoadFileSync validates, reads and applies f in one call.
func (c *Controller) LoadFileSync(ctx context.Context, f File) error {
	read, err := c.LoadFile(f)
	if err != nil {
		return err
	}
	return c.Complete(read(ctx))
}

// LoadFromPicker loads the first file of a picker selection. An empty
// selection is ignored and returns a nil ReadFunc.
func (c *Controller) LoadFromPicker(selection []File) (ReadFunc, error) {
	if len(selection) == 0 {
		return nil, nil
	}
	return c.LoadFile(selection[0])
}

// Reload re-reads the file behind the current document.
func (c *Controller) Reload() (ReadFunc, error) {
	if c.doc.Path == "" {
		return nil, ErrNoFile
	}
	return c.LoadFile(NewLocalFile(c.doc.Path))
}

// SetDragActive moves the drag depth by delta and reports whether a drag is
// active afterwards. Drags whose manifest does not include files are ignored.
func (c *Controller) SetDragActive(delta int, types []string) bool {
	if !dnd.HasFiles(types) {
		return c.drag.Active()
	}
	switch {
	case delta > 0:
		c.drag.Enter()
	case delta < 0:
		c.drag.Leave()
	}
	return c.drag.Active()
}

// HandleDrop ends the drag and loads the first dropped file. Further files
// are ignored.
func (c *Controller) HandleDrop(p Payload) (ReadFunc, error) {
	c.drag.Reset()
	if len(p.Files) == 0 {
		return nil, nil
	}
	if len(p.Files) > 1 {
		c.logger.Printf("drop carried %d files, using %q", len(p.Files), p.Files[0].Name())
	}
	return c.LoadFile(p.Files[0])
}

// HandleDragEvent applies a window-level drag-and-drop event.
func (c *Controller) HandleDragEvent(e dnd.Event) (ReadFunc, error) {
	switch e.Kind {
	case dnd.Enter:
		c.SetDragActive(1, e.Types)
	case dnd.Leave:
		c.SetDragActive(-1, e.Types)
	case dnd.Drop:
		files := make([]File, 0, len(e.Paths))
		for _, p := range e.Paths {
			files = append(files, NewLocalFile(p))
		}
		return c.HandleDrop(Payload{Types: e.Types, Files: files})
	}
	return nil, nil
}

// SetEditText replaces the document text verbatim. It only has an effect in
// edit mode and reports whether the text was applied.
func (c *Controller) SetEditText(text string) bool {
	if c.mode != Editing {
		return false
	}
	c.doc.Text = text
	return true
}

// ToggleMode flips between edit and preview mode.
func (c *Controller) ToggleMode() Mode {
	if c.mode == Editing {
		c.mode = Previewing
	} else {
		c.mode = Editing
	}
	return c.mode
}

// Clear empties the document. The mode is kept.
func (c *Controller) Clear() {
	c.doc = Document{}
	c.err = nil
}

// LoadSample replaces the text with the built-in reference document. The mode
// is kept.
func (c *Controller) LoadSample() {
	c.doc = Document{Text: sample}
	c.err = nil
}

func readFile(ctx context.Context, f File) Loaded {
	if err := ctx.Err(); err != nil {
		return Loaded{File: f, Err: err}
	}
	rc, err := f.Open()
	if err != nil {
		return Loaded{File: f, Err: fmt.Errorf("read %s: %w", f.Name(), err)}
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return Loaded{File: f, Err: fmt.Errorf("read %s: %w", f.Name(), err)}
	}
	return Loaded{File: f, Text: string(bytes.TrimPrefix(data, utf8BOM))}
}
