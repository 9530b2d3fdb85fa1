package update

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"

	"habitd/internal/model"
	"habitd/internal/service"
)

type View string

const (
	ViewTrackers   View = "Trackers"
	ViewStatistics View = "Statistics"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Trackers   string
	Statistics string
	Help       string
	Quit       string
}

type CursorPos struct {
	Section int
	Row     int
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

// TrackerRow is a display row: the tracker plus its completion state
// for the date currently on screen.
type TrackerRow struct {
	Tracker model.Tracker
	Done    bool
	Count   int
}

type SectionData struct {
	Title string
	Rows  []TrackerRow
}

type Model struct {
	CurrentView  View
	ViewDate     time.Time
	Filter       model.FilterType
	Search       string
	SearchActive bool
	Sections     []SectionData
	Cursor       CursorPos
	Stats        service.Stats
	Palette      CommandPaletteState
	HelpVisible  bool
	Status       StatusBar
	Keys         GlobalKeyMap
	Quitting     bool
	LastError    error
	LastChange   string

	svc       *service.Service
	changes   chan service.Update
	weekStart model.Weekday

	searchInput  textinput.Model
	commandInput textinput.Model
	helpModel    help.Model
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type TrackersLoadedMsg struct {
	Sections []SectionData
}

type StatsLoadedMsg struct {
	Stats service.Stats
}

type ChangeMsg struct {
	Update service.Update
}

type SetViewDateMsg struct {
	Date time.Time
}

func NewModel(svc *service.Service, cfg RuntimeConfig) Model {
	changes := make(chan service.Update, 16)
	svc.Subscribe(func(u service.Update) {
		select {
		case changes <- u:
		default:
		}
	})

	m := Model{
		CurrentView: ViewTrackers,
		ViewDate:    model.DayOf(svc.Now()),
		Filter:      cfg.DefaultFilter,
		Keys: GlobalKeyMap{
			Trackers:   "1",
			Statistics: "2",
			Help:       "?",
			Quit:       "q",
		},
		svc:       svc,
		changes:   changes,
		weekStart: cfg.WeekStart,
	}

	search := textinput.New()
	search.Placeholder = "search trackers"
	search.CharLimit = 64
	m.searchInput = search

	command := textinput.New()
	command.Placeholder = "add Morning run cat:Health"
	command.CharLimit = 120
	m.commandInput = command

	m.helpModel = help.New()
	return m
}
