package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"habitd/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return m.renderHelpView()
}

func (m Model) renderHelpView() string {
	bindings := m.helpBindings()
	var md strings.Builder
	md.WriteString("## global\n")
	for _, kb := range m.globalBindings() {
		md.WriteString(fmt.Sprintf("- `%s` %s\n", kb.Key, kb.Action))
	}
	md.WriteString("\n## view\n")
	for _, kb := range m.viewBindings() {
		md.WriteString(fmt.Sprintf("- `%s` %s\n", kb.Key, kb.Action))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		CurrentView: string(m.CurrentView),
		Markdown:    md.String(),
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}),
	})
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.Trackers, Action: "switch to Trackers"},
		{Key: m.Keys.Statistics, Action: "switch to Statistics"},
		{Key: ":", Action: "open command palette"},
		{Key: "/", Action: "search trackers"},
		{Key: m.Keys.Help, Action: "toggle help panel"},
		{Key: m.Keys.Quit, Action: "quit app"},
	}
}

func (m Model) viewBindings() []KeyBinding {
	switch m.CurrentView {
	case ViewTrackers:
		return []KeyBinding{
			{Key: "j/k", Action: "move selection"},
			{Key: "h/l", Action: "previous/next day"},
			{Key: "t", Action: "jump to today"},
			{Key: "f", Action: "cycle filter"},
			{Key: "space", Action: "toggle completion"},
			{Key: "p/P", Action: "pin/unpin tracker"},
			{Key: "x", Action: "delete tracker"},
		}
	case ViewStatistics:
		return []KeyBinding{
			{Key: m.Keys.Trackers, Action: "back to trackers"},
		}
	default:
		return []KeyBinding{{Key: "-", Action: "no contextual bindings"}}
	}
}

func (m Model) helpBindings() []key.Binding {
	out := make([]key.Binding, 0, len(m.globalBindings())+len(m.viewBindings()))
	for _, kb := range m.globalBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	for _, kb := range m.viewBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
