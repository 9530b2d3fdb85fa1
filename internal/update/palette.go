package update

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"habitd/internal/commands"
	"habitd/internal/model"
	"habitd/internal/service"
)

const defaultTrackerColor = "#5F9EFF"

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Palette.Active = false
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Blur()
		m.Status = StatusBar{Text: "command palette closed"}
		return m, nil
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m, nil
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		_ = cmd
		m.Palette.Input = m.commandInput.Value()
		return m, nil
	}
}

func (m Model) executePaletteCommand() (Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()

	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}

	ctx := context.Background()
	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			category := strings.TrimSpace(a.Category)
			if category == "" {
				if m.Cursor.Section < len(m.Sections) {
					category = m.Sections[m.Cursor.Section].Title
				} else {
					category = model.UncategorizedTitle
				}
			}
			if err := m.svc.CreateCategory(ctx, category); err != nil && !errors.Is(err, service.ErrDuplicateTitle) {
				return commands.Result{}, err
			}
			spec := service.TrackerSpec{
				Name:     a.Name,
				Color:    defaultTrackerColor,
				IsHabit:  !a.Event,
				Schedule: everyWeekday(),
			}
			if _, err := m.svc.CreateTracker(ctx, spec, category); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("added tracker: %s (%s)", a.Name, category)}, nil
		},
		Category: func(a commands.CategoryArgs) (commands.Result, error) {
			if err := m.svc.CreateCategory(ctx, a.Title); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("added category: %s", a.Title)}, nil
		},
		Pin: func(a commands.PinArgs) (commands.Result, error) {
			tracker, err := m.findTracker(ctx, a.Target)
			if err != nil {
				return commands.Result{}, err
			}
			if err := m.svc.Pin(ctx, tracker.ID); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("pinned: %s", tracker.Name)}, nil
		},
		Unpin: func(a commands.PinArgs) (commands.Result, error) {
			tracker, err := m.findTracker(ctx, a.Target)
			if err != nil {
				return commands.Result{}, err
			}
			if err := m.svc.Unpin(ctx, tracker.ID); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("unpinned: %s", tracker.Name)}, nil
		},
		Done: func(a commands.DoneArgs) (commands.Result, error) {
			tracker, err := m.findTracker(ctx, a.Target)
			if err != nil {
				return commands.Result{}, err
			}
			done, err := m.svc.ToggleCompletion(ctx, tracker.ID, m.ViewDate)
			if err != nil {
				return commands.Result{}, err
			}
			if done {
				return commands.Result{Message: fmt.Sprintf("completed: %s", tracker.Name)}, nil
			}
			return commands.Result{Message: fmt.Sprintf("uncompleted: %s", tracker.Name)}, nil
		},
		Filter: func(a commands.FilterArgs) (commands.Result, error) {
			f := model.FilterType(a.Kind)
			if !f.IsValid() {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "unknown filter: " + a.Kind}
			}
			m.Filter = f
			return commands.Result{Message: fmt.Sprintf("filter: %s", f)}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}
	m.Status = StatusBar{Text: res.Message}
	return m, m.loadTrackersCmd()
}

// findTracker resolves a palette target by tracker name, case
// insensitively, across every category.
func (m Model) findTracker(ctx context.Context, name string) (model.Tracker, error) {
	categories, err := m.svc.Categories(ctx)
	if err != nil {
		return model.Tracker{}, err
	}
	for _, category := range categories {
		for _, tracker := range category.Trackers {
			if strings.EqualFold(tracker.Name, name) {
				return tracker, nil
			}
		}
	}
	return model.Tracker{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no tracker named %q", name)}
}

func everyWeekday() model.Schedule {
	return model.Schedule{model.Monday, model.Tuesday, model.Wednesday, model.Thursday, model.Friday, model.Saturday, model.Sunday}
}
