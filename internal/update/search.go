package update

import (
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) handleSearchKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.SearchActive = false
		m.Search = ""
		m.searchInput.SetValue("")
		m.searchInput.Blur()
		m.Cursor = CursorPos{}
		return m, m.loadTrackersCmd()
	case "enter":
		m.SearchActive = false
		m.Search = m.searchInput.Value()
		m.searchInput.Blur()
		m.Cursor = CursorPos{}
		return m, m.loadTrackersCmd()
	default:
		if msg.Type == tea.KeyRunes {
			m.searchInput.SetValue(m.searchInput.Value() + string(msg.Runes))
			m.Search = m.searchInput.Value()
			return m, m.loadTrackersCmd()
		}
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		m.Search = m.searchInput.Value()
		return m, tea.Batch(cmd, m.loadTrackersCmd())
	}
}
