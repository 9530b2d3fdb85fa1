package update

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"habitd/internal/model"
	"habitd/internal/service"
	"habitd/internal/views"
)

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadTrackersCmd(), m.loadStatsCmd(), waitForChangeCmd(m.changes))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if m.Palette.Active {
			if typed.String() == m.Keys.Help {
				m.HelpVisible = !m.HelpVisible
				return m, nil
			}
			return m.handlePaletteKey(typed)
		}
		if m.SearchActive {
			return m.handleSearchKey(typed)
		}

		switch typed.String() {
		case ":":
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.Focus()
			m.commandInput.SetValue("")
			m.Status = StatusBar{Text: "command palette active"}
			return m, nil
		case "/":
			m.SearchActive = true
			m.searchInput.Focus()
			m.searchInput.SetValue(m.Search)
			return m, nil
		case m.Keys.Trackers:
			m.CurrentView = ViewTrackers
			return m, m.loadTrackersCmd()
		case m.Keys.Statistics:
			m.CurrentView = ViewStatistics
			return m, m.loadStatsCmd()
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			return m, nil
		case "ctrl+c", m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		}
		if m.CurrentView == ViewTrackers {
			return m.handleTrackerKey(typed)
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
		}
		return m, nil
	case TrackersLoadedMsg:
		m.Sections = typed.Sections
		m.clampCursor()
		return m, nil
	case StatsLoadedMsg:
		m.Stats = typed.Stats
		return m, nil
	case SetViewDateMsg:
		m.ViewDate = model.DayOf(typed.Date)
		return m, m.loadTrackersCmd()
	case ChangeMsg:
		m.LastChange = changeSummary(typed.Update)
		return m, tea.Batch(m.loadTrackersCmd(), m.loadStatsCmd(), waitForChangeCmd(m.changes))
	}

	return m, nil
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}
	leftPane := ""
	switch m.CurrentView {
	case ViewTrackers:
		leftPane = m.renderTrackersView()
	case ViewStatistics:
		leftPane = m.renderStatisticsView()
	}
	rightPane := views.RenderCommandPalette(m.Palette.Active, m.commandInput.Value()) + m.renderHelpIfVisible()

	notification := ""
	if m.LastChange != "" {
		notification = "last-change: " + m.LastChange
	}

	return views.RenderApp(views.AppData{
		Header:        fmt.Sprintf("habitd | view: %s | date: %s | filter: %s", m.CurrentView, m.ViewDate.Format(model.DayLayout), m.Filter),
		LeftPane:      leftPane,
		RightPane:     rightPane,
		StatusLine:    status,
		StatusIsError: m.Status.IsError,
		Notification:  notification,
		Footer:        fmt.Sprintf("keys: %s trackers | %s stats | h/l day | t today | f filter | / search | : cmd | %s help | %s quit", m.Keys.Trackers, m.Keys.Statistics, m.Keys.Help, m.Keys.Quit),
	})
}

func (m Model) loadTrackersCmd() tea.Cmd {
	svc := m.svc
	date, filter, search := m.ViewDate, m.Filter, m.Search
	return func() tea.Msg {
		ctx := context.Background()
		categories, err := svc.VisibleTrackers(ctx, date, filter, search)
		if err != nil {
			return AppErrorMsg{Err: err}
		}
		sections := make([]SectionData, 0, len(categories))
		for _, category := range categories {
			rows := make([]TrackerRow, 0, len(category.Trackers))
			for _, tracker := range category.Trackers {
				done, count, err := svc.CompletedOn(ctx, tracker.ID.String(), date)
				if err != nil {
					return AppErrorMsg{Err: err}
				}
				rows = append(rows, TrackerRow{Tracker: tracker, Done: done, Count: count})
			}
			sections = append(sections, SectionData{Title: category.Title, Rows: rows})
		}
		return TrackersLoadedMsg{Sections: sections}
	}
}

func (m Model) loadStatsCmd() tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		stats, err := svc.Statistics(context.Background())
		if err != nil {
			return AppErrorMsg{Err: err}
		}
		return StatsLoadedMsg{Stats: stats}
	}
}

func waitForChangeCmd(ch <-chan service.Update) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		u, ok := <-ch
		if !ok {
			return nil
		}
		return ChangeMsg{Update: u}
	}
}

func changeSummary(u service.Update) string {
	if u.Empty() {
		return "records changed"
	}
	return fmt.Sprintf("+%d/-%d/~%d rows, +%d/-%d sections",
		len(u.InsertedRows), len(u.DeletedRows), len(u.UpdatedRows),
		len(u.InsertedSections), len(u.DeletedSections))
}
