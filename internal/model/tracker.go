package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidName  = errors.New("model: tracker name is required")
	ErrInvalidColor = errors.New("model: tracker color is required")
	ErrEmptyID      = errors.New("model: tracker id is required")
)

// Tracker is a habit with a weekly schedule or a one-off event.
// While pinned, its current category is the synthetic "Pinned" one and
// OriginTitle remembers where to return it on unpin.
type Tracker struct {
	ID          uuid.UUID
	Name        string
	Color       string
	Emoji       string
	Schedule    Schedule
	IsHabit     bool
	Pinned      bool
	OriginTitle string
}

func (t Tracker) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyID
	}
	if strings.TrimSpace(t.Name) == "" {
		return ErrInvalidName
	}
	if strings.TrimSpace(t.Color) == "" {
		return ErrInvalidColor
	}
	if err := t.Schedule.Validate(); err != nil {
		return err
	}
	if !t.IsHabit && len(t.Schedule) != 1 {
		return fmt.Errorf("model: event tracker needs exactly one weekday, got %d", len(t.Schedule))
	}
	if t.Pinned && strings.TrimSpace(t.OriginTitle) == "" {
		return errors.New("model: pinned tracker is missing its origin category")
	}
	if !t.Pinned && t.OriginTitle != "" {
		return errors.New("model: origin category set on an unpinned tracker")
	}
	return nil
}

// DueOn reports whether the tracker is due on date. Habits match their
// weekday schedule. Events are only ever due "today": they compare date
// against now at each evaluation instead of anchoring to creation day.
func (t Tracker) DueOn(date, now time.Time) bool {
	if t.IsHabit {
		return t.Schedule.Contains(WeekdayOf(date))
	}
	return SameDay(date, now)
}
