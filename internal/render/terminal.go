package render

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	styles "github.com/charmbracelet/glamour/styles"
)

// DefaultStyle is the glamour style used when none is configured.
const DefaultStyle = styles.TokyoNightStyle

// Placeholder lines shown instead of rendered output for an empty document.
const (
	EmptyTitle = "No markdown content"
	EmptyHint  = "Drop a .md file onto the window, press o to pick one, or s for the sample"
)

// TerminalOptions configures a Terminal renderer.
type TerminalOptions struct {
	Style       string
	Width       int
	Emoji       bool
	FrontMatter bool
}

// Terminal renders markdown for display in the terminal.
type Terminal struct {
	renderer *glamour.TermRenderer
	opts     TerminalOptions
}

// ValidStyle reports whether name is a glamour style this renderer accepts.
func ValidStyle(name string) bool {
	if name == styles.AutoStyle {
		return true
	}
	_, ok := styles.DefaultStyles[name]
	return ok
}

// NewTerminal builds a renderer wrapping at opts.Width columns. A width of
// zero disables wrapping.
func NewTerminal(opts TerminalOptions) (*Terminal, error) {
	if opts.Style == "" {
		opts.Style = DefaultStyle
	}
	if !ValidStyle(opts.Style) {
		return nil, fmt.Errorf("unknown style %q", opts.Style)
	}

	var gopts []glamour.TermRendererOption
	if opts.Style == styles.AutoStyle {
		gopts = append(gopts, glamour.WithAutoStyle())
	} else {
		gopts = append(gopts, glamour.WithStandardStyle(opts.Style))
	}
	if opts.Width > 0 {
		gopts = append(gopts, glamour.WithWordWrap(opts.Width))
	} else {
		gopts = append(gopts, glamour.WithWordWrap(0))
	}
	if opts.Emoji {
		gopts = append(gopts, glamour.WithEmoji())
	}

	renderer, err := glamour.NewTermRenderer(gopts...)
	if err != nil {
		return nil, err
	}
	return &Terminal{renderer: renderer, opts: opts}, nil
}

// Width returns the configured wrap width.
func (t *Terminal) Width() int {
	return t.opts.Width
}

// Render renders text. An empty document yields the empty-state placeholder.
func (t *Terminal) Render(text string) (string, error) {
	if IsEmpty(text) {
		return EmptyTitle + "\n\n" + EmptyHint, nil
	}
	body := text
	if t.opts.FrontMatter {
		_, body = SplitFrontMatter(text)
	}
	return t.renderer.Render(body)
}

// IsEmpty reports whether text should be shown as the empty state.
func IsEmpty(text string) bool {
	return text == ""
}
