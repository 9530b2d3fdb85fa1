package views

import (
	"fmt"
	"strings"
)

type TrackerRowData struct {
	Name   string
	Emoji  string
	Done   bool
	Count  int
	Pinned bool
}

type TrackerSectionData struct {
	Title string
	Rows  []TrackerRowData
}

type TrackerPanelData struct {
	Date      string
	WeekStrip string
	Filter    string
	Search    string
	Sections  []TrackerSectionData
	CursorSec int
	CursorRow int
}

type StatisticsPanelData struct {
	LongestStreak  int
	PerfectDays    int
	TotalCompleted int
	AveragePerDay  int
	HasData        bool
}

type HelpPanelData struct {
	CurrentView string
	Markdown    string
	HelpView    string
}

func RenderTrackerPanel(data TrackerPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("trackers: %s\n", data.Date))
	b.WriteString(data.WeekStrip + "\n")
	b.WriteString(fmt.Sprintf("filter: %s", data.Filter))
	if strings.TrimSpace(data.Search) != "" {
		b.WriteString(fmt.Sprintf(" | search: %q", data.Search))
	}
	b.WriteString("\n")

	if len(data.Sections) == 0 {
		b.WriteString("\n(nothing to track)")
		return b.String()
	}

	for si, section := range data.Sections {
		title := section.Title
		if title == "Pinned" {
			title = pinStyle.Render(title)
		}
		b.WriteString(fmt.Sprintf("\n%s:\n", title))
		for ri, row := range section.Rows {
			cursor := " "
			if si == data.CursorSec && ri == data.CursorRow {
				cursor = ">"
			}
			mark := "[ ]"
			if row.Done {
				mark = doneStyle.Render("[x]")
			}
			name := row.Name
			if row.Pinned {
				name = pinStyle.Render("*") + " " + name
			}
			line := fmt.Sprintf("%s %s %s %s", cursor, mark, row.Emoji, name)
			if row.Emoji == "" {
				line = fmt.Sprintf("%s %s %s", cursor, mark, name)
			}
			b.WriteString(fmt.Sprintf("%s (%d)\n", line, row.Count))
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderStatisticsPanel(data StatisticsPanelData) string {
	if !data.HasData {
		return "statistics:\n(nothing to analyze yet)"
	}
	var b strings.Builder
	b.WriteString("statistics:\n")
	b.WriteString(fmt.Sprintf("longest streak:   %d\n", data.LongestStreak))
	b.WriteString(fmt.Sprintf("perfect days:     %d\n", data.PerfectDays))
	b.WriteString(fmt.Sprintf("total completed:  %d\n", data.TotalCompleted))
	b.WriteString(fmt.Sprintf("average per day:  %d", data.AveragePerDay))
	return b.String()
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: :%s", input)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help: %s view\n%s\n%s",
		strings.ToLower(data.CurrentView),
		RenderMarkdown(data.Markdown),
		data.HelpView,
	)
}
