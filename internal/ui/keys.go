package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kyaoi/mdpeek/internal/document"
)

var helpText = strings.Join([]string{
	"Help (? or esc to close)",
	"e / ctrl+e       : toggle edit / preview",
	"esc              : leave edit mode",
	"o / t            : toggle the file picker",
	"ctrl+h / ctrl+l  : focus picker / document",
	"enter / l        : open the selected file",
	"j / k            : move / scroll",
	"ctrl+d / ctrl+u  : half page down / up",
	"gg / G           : top / bottom",
	"/ , n / N        : search, next / previous match",
	"c                : clear the document",
	"s                : load the sample document",
	"x                : dismiss the error",
	"q / ctrl+c       : quit",
	"",
	"Drop a .md or .txt file onto the window to open it.",
}, "\n")

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searchActive {
		return m, m.handleSearchKey(msg)
	}

	key := msg.String()
	if key == "ctrl+c" {
		m.Close()
		return m, tea.Quit
	}

	if m.ctrl.Mode() == document.Editing {
		switch key {
		case "esc", "ctrl+e":
			return m, m.toggleMode()
		}
		return m, m.updateEditor(msg)
	}

	if key != "g" {
		m.pendingKey = ""
	}

	if m.showHelp {
		m.pendingKey = ""
		switch key {
		case "q", "?", "esc":
			m.showHelp = false
		}
		return m, nil
	}

	switch key {
	case "q":
		m.Close()
		return m, tea.Quit
	case "?":
		m.showHelp = true
		return m, nil
	case "e", "ctrl+e":
		return m, m.toggleMode()
	case "c":
		m.clearDocument()
		return m, nil
	case "s":
		m.loadSample()
		return m, nil
	case "x":
		m.ctrl.DismissErr()
		m.err = nil
		return m, nil
	case "o", "t":
		m.togglePicker()
		return m, nil
	case "ctrl+h":
		if m.treeVisible {
			m.focusTree()
		}
		return m, nil
	case "ctrl+l":
		m.blurTree()
		return m, nil
	case "/":
		return m, m.enterSearchMode()
	case "n":
		if m.search.step(1) {
			m.scrollToMatch()
			return m, nil
		}
	case "N":
		if m.search.step(-1) {
			m.scrollToMatch()
			return m, nil
		}
	}

	if m.treeFocus && m.treeVisible {
		if handled, cmd := m.handleTreeKey(key); handled || cmd != nil {
			return m, cmd
		}
		return m, nil
	}

	if m.handleContentKey(key) {
		return m, nil
	}

	var cmd tea.Cmd
	m.contentVP, cmd = m.contentVP.Update(msg)
	return m, cmd
}

func (m *Model) handleContentKey(key string) bool {
	switch key {
	case "j":
		m.contentVP.ScrollDown(1)
	case "k":
		m.contentVP.ScrollUp(1)
	case "ctrl+d":
		m.contentVP.HalfPageDown()
	case "ctrl+u":
		m.contentVP.HalfPageUp()
	case "h":
		m.contentVP.ScrollLeft(max(2, m.contentVP.Width/6))
	case "l":
		m.contentVP.ScrollRight(max(2, m.contentVP.Width/6))
	case "g":
		if m.pendingKey == "g" {
			m.contentVP.GotoTop()
			m.pendingKey = ""
		} else {
			m.pendingKey = "g"
		}
		return true
	case "G":
		m.contentVP.GotoBottom()
	default:
		return false
	}
	m.pendingKey = ""
	return true
}
