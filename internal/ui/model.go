package ui

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fsnotify/fsnotify"

	"github.com/kyaoi/mdpeek/internal/dnd"
	"github.com/kyaoi/mdpeek/internal/document"
	"github.com/kyaoi/mdpeek/internal/render"
	"github.com/kyaoi/mdpeek/internal/tree"
)

const (
	headerHeight      = 1
	statusHeight      = 1
	minContentWidth   = 20
	minTreePanelWidth = 18
	defaultTreeWidth  = 28
)

// Model implements the Bubble Tea program for the markdown viewer.
type Model struct {
	ctrl        *document.Controller
	bus         *dnd.Bus
	unsubscribe func()
	pending     []document.ReadFunc
	logger      *log.Logger

	contentVP    viewport.Model
	editor       textarea.Model
	editorBase   string
	editorCRLF   bool
	renderer     *render.Terminal
	renderOpts   render.TerminalOptions
	renderedText string
	renderedFor  string
	rendered     bool
	renderErr    error
	err          error

	showHelp   bool
	pendingKey string
	width      int
	height     int

	treeVP             viewport.Model
	treeRoot           *tree.Node
	treeLoader         *tree.FSLoader
	flatTree           []tree.Line
	treeSelection      int
	treeVisible        bool
	treeListed         bool
	treeFocus          bool
	treePreferredWidth int
	treeContentWidth   int

	searchInput  textinput.Model
	searchActive bool
	search       searchState

	watchEnabled bool
	watcher      *fsnotify.Watcher
	watchDir     string
	watchedFile  string
	watchChan    chan tea.Msg
	watchDone    chan struct{}
	waiting      bool
}

// errNotEditable is reported when the textarea cannot hold the document
// without rewriting it.
var errNotEditable = errors.New("edit mode unavailable: the editor would alter this document")

type loadedMsg struct {
	loaded document.Loaded
}

// NewModel constructs the viewer model with the provided initial state.
func NewModel(state State) *Model {
	ctrl := state.Controller
	if ctrl == nil {
		ctrl = document.NewController()
	}
	bus := state.Bus
	if bus == nil {
		bus = dnd.NewBus()
	}
	logger := state.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	contentVP := viewport.New(0, 0)
	contentVP.Style = lipgloss.NewStyle().Padding(0, 1)
	contentVP.SetHorizontalStep(2)

	treeVP := viewport.New(0, 0)
	treeVP.Style = treePanelStyle(treeBlurBorderColor)
	treeVP.MouseWheelEnabled = false

	editor := textarea.New()
	editor.Placeholder = "# Enter your markdown here..."
	editor.ShowLineNumbers = false
	editor.CharLimit = 0
	editor.MaxHeight = 0
	editor.Prompt = ""

	m := &Model{
		ctrl:               ctrl,
		bus:                bus,
		logger:             logger,
		contentVP:          contentVP,
		editor:             editor,
		renderOpts:         state.Render,
		treeVP:             treeVP,
		treePreferredWidth: state.PickerWidth,
		search:             searchState{current: -1},
		watchEnabled:       state.Watch,
	}

	searchInput := textinput.New()
	searchInput.Prompt = "/"
	searchInput.CharLimit = 256
	searchInput.Placeholder = "search"
	searchInput.CursorEnd()
	searchInput.Blur()
	m.searchInput = searchInput

	// A hidden picker is listed the first time it is shown.
	if state.PickerRoot != "" {
		m.treeLoader = tree.NewFSLoader(state.PickerRoot, state.PickerExtensions)
		m.treeRoot = tree.NewRoot(displayName(state.PickerRoot), m.treeLoader)
		m.treeVisible = state.PickerVisible
		if m.treeVisible {
			m.listTree()
		}
	}
	m.updateTreePanelStyle()
	if state.FocusPicker && m.treeVisible {
		m.focusTree()
	}
	if ctrl.Mode() == document.Editing {
		m.enterEditor()
	}
	return m
}

// Init implements tea.Model. It mounts the model on the drag-and-drop bus.
func (m *Model) Init() tea.Cmd {
	m.mount()
	if path := m.ctrl.Document().Path; path != "" && m.watchEnabled {
		return m.startWatching(path)
	}
	return nil
}

func (m *Model) mount() {
	if m.unsubscribe != nil {
		return
	}
	m.unsubscribe = m.bus.Subscribe(m.onDragEvent)
}

// Close unmounts the model from the bus and stops watching files. It is safe
// to call more than once.
func (m *Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
	m.closeWatcher()
}

func (m *Model) onDragEvent(e dnd.Event) {
	read, err := m.ctrl.HandleDragEvent(e)
	if err != nil {
		m.logger.Printf("drag %s: %v", e.Kind, err)
		return
	}
	if read != nil {
		m.pending = append(m.pending, read)
	}
}

// drainPending turns reads queued by bus handlers into commands.
func (m *Model) drainPending() tea.Cmd {
	if len(m.pending) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(m.pending))
	for _, read := range m.pending {
		cmds = append(cmds, readCmd(read))
	}
	m.pending = nil
	return tea.Batch(cmds...)
}

func readCmd(read document.ReadFunc) tea.Cmd {
	if read == nil {
		return nil
	}
	return func() tea.Msg {
		return loadedMsg{loaded: read(context.Background())}
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		return m, m.applyLoaded(msg.loaded)
	case fileEventMsg:
		return m, m.handleFileEvent(msg)
	case fileWatchErrMsg:
		m.waiting = false
		m.err = msg.err
		return m, m.waitForFileEvent()
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		if msg.Paste {
			if cmd, ok := m.handleDrop(string(msg.Runes)); ok {
				return m, cmd
			}
		}
		return m.handleKey(msg)
	}

	if m.ctrl.Mode() == document.Editing {
		return m, m.updateEditor(msg)
	}
	var cmd tea.Cmd
	m.contentVP, cmd = m.contentVP.Update(msg)
	return m, cmd
}

// handleDrop treats a paste of existing file paths as a window-level drop.
func (m *Model) handleDrop(text string) (tea.Cmd, bool) {
	paths, ok := dnd.ParseDrop(text, dnd.FileExists)
	if !ok {
		return nil, false
	}
	for _, e := range dnd.DropEvents(paths) {
		m.bus.Publish(e)
	}
	return m.drainPending(), true
}

func (m *Model) applyLoaded(loaded document.Loaded) tea.Cmd {
	prevPath := m.ctrl.Document().Path
	offset := m.contentVP.YOffset
	if err := m.ctrl.Complete(loaded); err != nil {
		return nil
	}

	m.leaveEditor()
	m.renderMarkdown()
	doc := m.ctrl.Document()
	if doc.Path != "" && doc.Path == prevPath {
		m.contentVP.SetYOffset(offset)
	} else {
		m.contentVP.GotoTop()
	}
	if doc.Path != "" && m.watchEnabled {
		return m.startWatching(doc.Path)
	}
	return nil
}

func (m *Model) toggleMode() tea.Cmd {
	if m.ctrl.ToggleMode() == document.Editing {
		return m.enterEditor()
	}
	m.leaveEditor()
	m.renderMarkdown()
	return nil
}

func (m *Model) enterEditor() tea.Cmd {
	if err := m.loadEditor(); err != nil {
		m.refuseEditor(err)
		return nil
	}
	m.exitSearchMode()
	m.blurTree()
	return m.editor.Focus()
}

// loadEditor copies the document into the textarea. Line endings are
// normalised to \n and restored on write-back when the document used \r\n
// throughout. The textarea expands tabs and caps the line count, so a
// document it cannot hold unchanged is refused.
func (m *Model) loadEditor() error {
	text := m.ctrl.Document().Text
	value := strings.ReplaceAll(text, "\r\n", "\n")
	m.editor.SetValue(value)
	if m.editor.Value() != value {
		m.editor.Reset()
		return errNotEditable
	}
	m.editorBase = value
	m.editorCRLF = value != text && strings.ReplaceAll(value, "\n", "\r\n") == text
	return nil
}

// refuseEditor keeps the document in preview and reports why.
func (m *Model) refuseEditor(err error) {
	m.err = err
	if m.ctrl.Mode() == document.Editing {
		m.ctrl.ToggleMode()
	}
	m.leaveEditor()
	m.renderMarkdown()
}

func (m *Model) leaveEditor() {
	m.editor.Blur()
	m.editorBase = ""
	m.editorCRLF = false
}

// updateEditor forwards msg to the textarea and copies the result into the
// document only when the user actually changed it.
func (m *Model) updateEditor(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	value := m.editor.Value()
	if value == m.editorBase {
		return cmd
	}
	m.editorBase = value
	if m.editorCRLF {
		value = strings.ReplaceAll(value, "\n", "\r\n")
	}
	m.ctrl.SetEditText(value)
	return cmd
}

func (m *Model) clearDocument() {
	m.ctrl.Clear()
	m.stopWatching()
	m.syncEditor()
	m.renderMarkdown()
}

func (m *Model) loadSample() {
	m.ctrl.LoadSample()
	m.stopWatching()
	m.syncEditor()
	m.renderMarkdown()
	m.contentVP.GotoTop()
}

func (m *Model) syncEditor() {
	if m.ctrl.Mode() != document.Editing {
		return
	}
	if err := m.loadEditor(); err != nil {
		m.refuseEditor(err)
	}
}

func (m *Model) resize(width, height int) {
	if width <= 0 || height <= headerHeight+statusHeight {
		return
	}

	m.width = width
	m.height = height

	treeWidth := m.treeWidth(width)
	contentWidth := width - treeWidth
	if m.treeVisible && treeWidth > 0 {
		contentWidth--
	}
	if contentWidth < minContentWidth {
		contentWidth = minContentWidth
	}

	contentHeight := max(height-headerHeight-statusHeight, 1)
	m.contentVP.Width = contentWidth
	m.contentVP.Height = contentHeight
	m.editor.SetWidth(contentWidth - m.contentVP.Style.GetHorizontalFrameSize())
	m.editor.SetHeight(contentHeight)

	wrapWidth := max(contentWidth-m.contentVP.Style.GetHorizontalFrameSize(), 0)
	if m.renderOpts.Width > 0 && m.renderOpts.Width < wrapWidth {
		wrapWidth = m.renderOpts.Width
	}
	if m.renderer == nil || m.renderer.Width() != wrapWidth {
		opts := m.renderOpts
		opts.Width = wrapWidth
		renderer, err := render.NewTerminal(opts)
		if err != nil {
			m.renderErr = err
			return
		}
		m.renderer = renderer
	}
	// The empty state is laid out for the viewport size.
	m.rendered = false
	m.renderMarkdown()

	if m.treeVisible && treeWidth > 0 {
		m.treeVP.Width = treeWidth
		m.treeVP.Height = contentHeight
		m.ensureSelectionVisible()
	} else {
		m.treeVP.Width = 0
		m.treeVP.Height = contentHeight
	}
}

// renderMarkdown re-renders the document when its text changed since the
// last render. Only renderErr is touched; picker and watcher errors stay
// visible until dismissed.
func (m *Model) renderMarkdown() {
	if m.renderer == nil {
		return
	}
	text := m.ctrl.Document().Text
	if m.rendered && text == m.renderedFor {
		return
	}

	out, err := m.renderer.Render(text)
	m.renderErr = err
	if err != nil {
		out = text
	}
	if render.IsEmpty(text) {
		out = m.emptyState(out)
	}
	m.contentVP.SetContent(out)
	m.renderedText = out
	m.renderedFor = text
	m.rendered = true
	m.onContentChanged()
}

func (m *Model) emptyState(placeholder string) string {
	box := emptyStyle.Render(placeholder)
	w := max(m.contentVP.Width-m.contentVP.Style.GetHorizontalFrameSize(), 0)
	if w == 0 || m.contentVP.Height == 0 {
		return box
	}
	return lipgloss.Place(w, m.contentVP.Height, lipgloss.Center, lipgloss.Center, box)
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.showHelp {
		overlay := helpBoxStyle.Render(helpText)
		if m.width > 0 && m.height > 0 {
			return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, overlay)
		}
		return overlay
	}
	// A terminal drop arrives as one paste, so Enter and Drop are handled in
	// the same update and never leave a drag open. The overlay shows while a
	// bus publisher holds a drag open between updates.
	if m.ctrl.Dragging() {
		box := dropBoxStyle.Render("Drop your markdown file here\n\n.md or .txt files supported")
		if m.width > 0 && m.height > 0 {
			return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
		}
		return box
	}

	var body string
	if m.ctrl.Mode() == document.Editing {
		body = m.contentVP.Style.Render(m.editor.View())
	} else {
		body = m.contentVP.View()
	}
	if m.treeVisible {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.treeVP.View(), body)
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.headerLine(), body, m.statusLine())
}

func (m *Model) headerLine() string {
	parts := []string{titleStyle.Render("Markdown Viewer")}
	doc := m.ctrl.Document()
	if doc.HasFile() {
		parts = append(parts, badgeStyle.Render(doc.FileName))
	}
	if m.renderOpts.FrontMatter {
		if title := render.Title(doc.Text); title != "" {
			parts = append(parts, " "+title)
		}
	}
	header := lipgloss.JoinHorizontal(lipgloss.Top, parts...)

	mode := modeStyle.Render(strings.ToUpper(m.ctrl.Mode().String()))
	gap := m.width - lipgloss.Width(header) - lipgloss.Width(mode)
	if gap < 1 {
		return header
	}
	return header + strings.Repeat(" ", gap) + mode
}

func (m *Model) statusLine() string {
	switch {
	case m.searchActive:
		return statusBarStyle.Render(m.searchInput.View())
	case m.ctrl.Err() != nil:
		return errorStyle.Render(m.ctrl.Err().Error() + "  (x to dismiss)")
	case m.err != nil:
		return errorStyle.Render(m.err.Error() + "  (x to dismiss)")
	case m.renderErr != nil:
		return errorStyle.Render(m.renderErr.Error())
	case m.search.query != "":
		return statusBarStyle.Render(m.search.status())
	case m.ctrl.Mode() == document.Editing:
		return statusBarStyle.Render("esc/ctrl+e preview  ctrl+c quit")
	default:
		return statusBarStyle.Render("e edit  o files  c clear  s sample  / search  ? help  q quit")
	}
}

func clamp(value, low, high int) int {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
