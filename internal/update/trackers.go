package update

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"habitd/internal/model"
	"habitd/internal/views"
)

func (m Model) handleTrackerKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		m = m.moveCursor(1)
		return m, nil
	case "k", "up":
		m = m.moveCursor(-1)
		return m, nil
	case "h", "left":
		m.ViewDate = m.ViewDate.AddDate(0, 0, -1)
		m.Cursor = CursorPos{}
		return m, m.loadTrackersCmd()
	case "l", "right":
		m.ViewDate = m.ViewDate.AddDate(0, 0, 1)
		m.Cursor = CursorPos{}
		return m, m.loadTrackersCmd()
	case "t":
		m.ViewDate = model.DayOf(m.svc.Now())
		m.Cursor = CursorPos{}
		return m, m.loadTrackersCmd()
	case "f":
		m.Filter = m.Filter.Next()
		m.Cursor = CursorPos{}
		m.Status = StatusBar{Text: fmt.Sprintf("filter: %s", m.Filter)}
		return m, m.loadTrackersCmd()
	case " ", "enter":
		return m, m.toggleSelectedCmd()
	case "p":
		return m, m.pinSelectedCmd(true)
	case "P":
		return m, m.pinSelectedCmd(false)
	case "x":
		return m, m.deleteSelectedCmd()
	}
	return m, nil
}

func (m Model) selectedRow() (TrackerRow, bool) {
	if m.Cursor.Section >= len(m.Sections) {
		return TrackerRow{}, false
	}
	rows := m.Sections[m.Cursor.Section].Rows
	if m.Cursor.Row >= len(rows) {
		return TrackerRow{}, false
	}
	return rows[m.Cursor.Row], true
}

func (m Model) moveCursor(delta int) Model {
	if len(m.Sections) == 0 {
		m.Cursor = CursorPos{}
		return m
	}
	section, row := m.Cursor.Section, m.Cursor.Row+delta
	for row < 0 {
		section--
		if section < 0 {
			m.Cursor = CursorPos{Section: 0, Row: 0}
			return m
		}
		row = len(m.Sections[section].Rows) - 1
	}
	for row >= len(m.Sections[section].Rows) {
		section++
		if section >= len(m.Sections) {
			last := len(m.Sections) - 1
			m.Cursor = CursorPos{Section: last, Row: len(m.Sections[last].Rows) - 1}
			return m
		}
		row = 0
	}
	m.Cursor = CursorPos{Section: section, Row: row}
	return m
}

func (m *Model) clampCursor() {
	if len(m.Sections) == 0 {
		m.Cursor = CursorPos{}
		return
	}
	if m.Cursor.Section >= len(m.Sections) {
		m.Cursor.Section = len(m.Sections) - 1
		m.Cursor.Row = 0
	}
	rows := len(m.Sections[m.Cursor.Section].Rows)
	if m.Cursor.Row >= rows {
		m.Cursor.Row = rows - 1
	}
	if m.Cursor.Row < 0 {
		m.Cursor.Row = 0
	}
}

func (m Model) toggleSelectedCmd() tea.Cmd {
	row, ok := m.selectedRow()
	if !ok {
		return nil
	}
	svc, date := m.svc, m.ViewDate
	return func() tea.Msg {
		done, err := svc.ToggleCompletion(context.Background(), row.Tracker.ID, date)
		if err != nil {
			return AppErrorMsg{Err: err}
		}
		if done {
			return SetStatusMsg{Text: fmt.Sprintf("completed: %s", row.Tracker.Name)}
		}
		return SetStatusMsg{Text: fmt.Sprintf("uncompleted: %s", row.Tracker.Name)}
	}
}

func (m Model) pinSelectedCmd(pin bool) tea.Cmd {
	row, ok := m.selectedRow()
	if !ok {
		return nil
	}
	svc := m.svc
	return func() tea.Msg {
		var err error
		if pin {
			err = svc.Pin(context.Background(), row.Tracker.ID)
		} else {
			err = svc.Unpin(context.Background(), row.Tracker.ID)
		}
		if err != nil {
			return AppErrorMsg{Err: err}
		}
		if pin {
			return SetStatusMsg{Text: fmt.Sprintf("pinned: %s", row.Tracker.Name)}
		}
		return SetStatusMsg{Text: fmt.Sprintf("unpinned: %s", row.Tracker.Name)}
	}
}

func (m Model) deleteSelectedCmd() tea.Cmd {
	row, ok := m.selectedRow()
	if !ok {
		return nil
	}
	svc := m.svc
	return func() tea.Msg {
		if err := svc.DeleteTracker(context.Background(), row.Tracker.ID); err != nil {
			return AppErrorMsg{Err: err}
		}
		return SetStatusMsg{Text: fmt.Sprintf("deleted: %s", row.Tracker.Name)}
	}
}

func (m Model) renderTrackersView() string {
	sections := make([]views.TrackerSectionData, 0, len(m.Sections))
	for _, section := range m.Sections {
		rows := make([]views.TrackerRowData, 0, len(section.Rows))
		for _, row := range section.Rows {
			rows = append(rows, views.TrackerRowData{
				Name:   row.Tracker.Name,
				Emoji:  row.Tracker.Emoji,
				Done:   row.Done,
				Count:  row.Count,
				Pinned: row.Tracker.Pinned,
			})
		}
		sections = append(sections, views.TrackerSectionData{Title: section.Title, Rows: rows})
	}
	return views.RenderTrackerPanel(views.TrackerPanelData{
		Date:      m.ViewDate.Format(model.DayLayout),
		WeekStrip: m.weekStrip(),
		Filter:    string(m.Filter),
		Search:    m.Search,
		Sections:  sections,
		CursorSec: m.Cursor.Section,
		CursorRow: m.Cursor.Row,
	})
}

func (m Model) renderStatisticsView() string {
	return views.RenderStatisticsPanel(views.StatisticsPanelData{
		LongestStreak:  m.Stats.LongestStreak,
		PerfectDays:    m.Stats.PerfectDays,
		TotalCompleted: m.Stats.TotalCompleted,
		AveragePerDay:  m.Stats.AveragePerDay,
		HasData:        m.Stats.HasData(),
	})
}

// weekStrip renders the seven weekday labels starting at the configured
// week start, with the on-screen date's weekday bracketed.
func (m Model) weekStrip() string {
	start := m.weekStart
	if !start.IsValid() {
		start = model.Monday
	}
	current := model.WeekdayOf(m.ViewDate)
	parts := make([]string, 0, 7)
	for i := 0; i < 7; i++ {
		day := model.Weekday((int(start)-1+i)%7 + 1)
		label := day.String()[:2]
		if day == current {
			label = "[" + label + "]"
		}
		parts = append(parts, label)
	}
	return strings.Join(parts, " ")
}
