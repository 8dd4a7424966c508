package ui

import (
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kyaoi/mdpeek/internal/document"
	"github.com/kyaoi/mdpeek/internal/tree"
)

func (m *Model) togglePicker() {
	if m.treeRoot == nil {
		return
	}
	m.treeVisible = !m.treeVisible
	if m.treeVisible {
		if !m.treeListed {
			m.listTree()
		}
		m.focusTree()
	} else {
		m.blurTree()
	}
	m.resize(m.width, m.height)
}

// listTree reads the picker root for the first time, selecting the open
// document when it lives below the root.
func (m *Model) listTree() {
	m.treeListed = true
	m.refreshTreeViewWithSelection(relativeTo(m.treeLoader.Root(), m.ctrl.Document().Path))
}

func (m *Model) treeWidth(totalWidth int) int {
	if !m.treeVisible {
		return 0
	}
	preferred := m.treePreferredWidth
	if preferred <= 0 {
		preferred = defaultTreeWidth
	}

	frame := m.treeVP.Style.GetHorizontalFrameSize()
	minPanel := max(minTreePanelWidth-frame, 0)
	maxPanel := max(totalWidth/2-frame, minPanel)
	width := clamp(preferred, minPanel, maxPanel) + frame
	if totalWidth-width < minContentWidth {
		width = max(totalWidth-minContentWidth, 0)
	}
	return min(width, totalWidth)
}

func (m *Model) handleTreeKey(key string) (bool, tea.Cmd) {
	if m.treeRoot == nil {
		return false, nil
	}
	switch key {
	case "j", "down":
		m.moveTreeSelection(1)
	case "k", "up":
		m.moveTreeSelection(-1)
	case "ctrl+d":
		m.moveTreeSelection(max(1, m.treeVP.Height/2))
	case "ctrl+u":
		m.moveTreeSelection(-max(1, m.treeVP.Height/2))
	case "ctrl+j":
		m.contentVP.ScrollDown(1)
	case "ctrl+k":
		m.contentVP.ScrollUp(1)
	case "ctrl+f":
		m.contentVP.ScrollDown(max(1, m.contentVP.Height/2))
	case "ctrl+b":
		m.contentVP.ScrollUp(max(1, m.contentVP.Height/2))
	case "l", "right", "enter":
		return true, m.openOrDescend()
	case "h", "left":
		m.closeOrAscend()
	case "g":
		if m.pendingKey == "g" {
			m.pendingKey = ""
			m.selectTreeIndex(0)
		} else {
			m.pendingKey = "g"
		}
	case "G":
		m.selectTreeIndex(len(m.flatTree) - 1)
	default:
		m.pendingKey = ""
		return false, nil
	}
	return true, nil
}

func (m *Model) selectTreeIndex(i int) {
	if len(m.flatTree) == 0 {
		return
	}
	m.treeSelection = clamp(i, 0, len(m.flatTree)-1)
	m.updateTreeContent(m.treeContentWidth)
}

func (m *Model) moveTreeSelection(delta int) {
	m.selectTreeIndex(m.treeSelection + delta)
}

func (m *Model) openOrDescend() tea.Cmd {
	entry := m.currentTreeEntry()
	if entry == nil {
		return nil
	}
	if !entry.IsDir {
		return m.openFileEntry(entry)
	}
	if !entry.Open {
		entry.Open = true
		m.refreshTreeViewWithSelection(entry.Path)
		return nil
	}
	if err := entry.EnsureLoaded(); err != nil {
		m.err = err
		return nil
	}
	if len(entry.Children) > 0 {
		m.moveTreeSelection(1)
	}
	return nil
}

func (m *Model) closeOrAscend() {
	entry := m.currentTreeEntry()
	if entry == nil {
		return
	}
	if entry.IsDir && entry.Open && entry.Parent != nil {
		entry.Open = false
		m.refreshTreeViewWithSelection(entry.Path)
		return
	}
	if entry.Parent != nil {
		m.refreshTreeViewWithSelection(entry.Parent.Path)
	}
}

func (m *Model) currentTreeEntry() *tree.Node {
	if m.treeSelection < 0 || m.treeSelection >= len(m.flatTree) {
		return nil
	}
	return m.flatTree[m.treeSelection].Node
}

// openFileEntry hands the picked file to the controller. The picker's
// extension filter is only a hint; the controller decides.
func (m *Model) openFileEntry(entry *tree.Node) tea.Cmd {
	selection := []document.File{document.NewLocalFile(m.treeLoader.Abs(entry.Path))}
	read, err := m.ctrl.LoadFromPicker(selection)
	if err != nil {
		m.logger.Printf("picker: %v", err)
		return nil
	}
	return readCmd(read)
}

func (m *Model) refreshTreeViewWithSelection(path string) {
	if m.treeRoot == nil {
		return
	}
	if path != "" {
		if _, err := m.treeRoot.Expand(parentPath(path)); err != nil {
			m.err = err
			return
		}
	}
	lines, err := m.treeRoot.Flatten()
	if err != nil {
		m.err = err
	}
	m.flatTree = lines

	maxWidth := 0
	for _, line := range lines {
		maxWidth = max(maxWidth, lipgloss.Width(line.Label()))
	}
	if idx := m.indexForPath(path); idx >= 0 {
		m.treeSelection = idx
	} else if len(lines) > 0 {
		m.treeSelection = clamp(m.treeSelection, 0, len(lines)-1)
	} else {
		m.treeSelection = 0
	}
	m.treeContentWidth = maxWidth
	m.updateTreeContent(maxWidth)
}

func (m *Model) updateTreeContent(width int) {
	if m.treeRoot == nil {
		return
	}
	if width <= 0 {
		width = minTreePanelWidth
	}
	var builder strings.Builder
	for i, line := range m.flatTree {
		text := line.Label()
		switch {
		case i == m.treeSelection && m.treeFocus:
			builder.WriteString(treeSelectedActive.Render(text))
		case i == m.treeSelection:
			builder.WriteString(treeSelectedInactive.Render(text))
		default:
			builder.WriteString(treeLineStyle.Render(text))
		}
		if i < len(m.flatTree)-1 {
			builder.WriteByte('\n')
		}
	}
	if m.treePreferredWidth <= 0 {
		m.treePreferredWidth = max(width+4, minTreePanelWidth)
	}
	m.treeVP.SetContent(builder.String())
	m.ensureSelectionVisible()
}

func (m *Model) indexForPath(path string) int {
	for i, line := range m.flatTree {
		if line.Node.Path == path {
			return i
		}
	}
	return -1
}

func (m *Model) ensureSelectionVisible() {
	if len(m.flatTree) == 0 || m.treeVP.Height == 0 {
		return
	}
	if m.treeSelection < m.treeVP.YOffset {
		m.treeVP.SetYOffset(m.treeSelection)
		return
	}
	bottom := m.treeVP.YOffset + m.treeVP.Height - 1
	if m.treeSelection > bottom {
		m.treeVP.SetYOffset(m.treeSelection - m.treeVP.Height + 1)
	}
}

func (m *Model) focusTree() {
	if !m.treeVisible {
		return
	}
	m.treeFocus = true
	m.updateTreePanelStyle()
	m.updateTreeContent(m.treeContentWidth)
}

func (m *Model) blurTree() {
	m.treeFocus = false
	m.updateTreePanelStyle()
	m.updateTreeContent(m.treeContentWidth)
}

func (m *Model) updateTreePanelStyle() {
	color := treeBlurBorderColor
	if m.treeFocus {
		color = treeFocusBorderColor
	}
	m.treeVP.Style = treePanelStyle(color)
}

func displayName(dir string) string {
	return filepath.Base(filepath.Clean(dir))
}

// relativeTo returns path relative to root with forward slashes, or an empty
// string when path is not below root.
func relativeTo(root, path string) string {
	if root == "" || path == "" {
		return ""
	}
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return ""
	}
	return filepath.ToSlash(rel)
}

func parentPath(path string) string {
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[:i]
	}
	return ""
}
