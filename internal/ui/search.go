package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

// searchState is a query over the rendered preview and the match the
// viewport sits on. current is -1 when nothing matched.
type searchState struct {
	query   string
	lines   []int
	current int
}

// run matches query against content. The new current match is the one
// closest to anchor, or the first match when anchor is negative.
func (s *searchState) run(content, query string, anchor int) {
	s.query = strings.TrimSpace(query)
	s.lines = findSearchMatches(content, s.query)
	switch {
	case len(s.lines) == 0:
		s.current = -1
	case anchor >= 0:
		s.current = closestMatchIndex(s.lines, anchor)
	default:
		s.current = 0
	}
}

func (s *searchState) reset() {
	*s = searchState{current: -1}
}

// step moves delta matches forward, wrapping at either end.
func (s *searchState) step(delta int) bool {
	n := len(s.lines)
	if n == 0 {
		return false
	}
	s.current = ((s.current+delta)%n + n) % n
	return true
}

func (s *searchState) line() (int, bool) {
	if s.current < 0 || s.current >= len(s.lines) {
		return 0, false
	}
	return s.lines[s.current], true
}

func (s *searchState) status() string {
	if s.current < 0 {
		return fmt.Sprintf("/%s (no matches)", s.query)
	}
	return fmt.Sprintf("/%s (%d/%d)", s.query, s.current+1, len(s.lines))
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		query := m.searchInput.Value()
		m.exitSearchMode()
		if strings.TrimSpace(query) == "" {
			m.search.reset()
			return nil
		}
		m.search.run(m.renderedText, query, -1)
		m.scrollToMatch()
		return nil
	case tea.KeyEsc, tea.KeyCtrlC:
		m.exitSearchMode()
		return nil
	}
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return cmd
}

func (m *Model) enterSearchMode() tea.Cmd {
	m.searchActive = true
	m.pendingKey = ""
	m.searchInput.SetValue(m.search.query)
	m.searchInput.CursorEnd()
	return m.searchInput.Focus()
}

func (m *Model) exitSearchMode() {
	m.searchActive = false
	m.searchInput.Blur()
}

func (m *Model) scrollToMatch() {
	if line, ok := m.search.line(); ok {
		m.contentVP.SetYOffset(line)
	}
}

// onContentChanged re-runs the active query against new output, staying near
// the match the viewport was on.
func (m *Model) onContentChanged() {
	if m.search.query == "" {
		return
	}
	anchor, ok := m.search.line()
	if !ok {
		anchor = -1
	}
	m.search.run(m.renderedText, m.search.query, anchor)
	m.scrollToMatch()
}

// findSearchMatches returns the line of every case-insensitive occurrence of
// query in the rendered, ANSI-stripped content.
func findSearchMatches(content, query string) []int {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" || content == "" {
		return nil
	}

	var matches []int
	for i, line := range strings.Split(strings.ToLower(ansi.Strip(content)), "\n") {
		for n := strings.Count(line, query); n > 0; n-- {
			matches = append(matches, i)
		}
	}
	return matches
}

func closestMatchIndex(matches []int, line int) int {
	best := 0
	for i, l := range matches {
		if distance(l, line) < distance(matches[best], line) {
			best = i
		}
	}
	return best
}

func distance(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
