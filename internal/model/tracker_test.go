package model

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func habitFixture(schedule Schedule) Tracker {
	return Tracker{
		ID:       uuid.New(),
		Name:     "Morning run",
		Color:    "#FD4C49",
		Emoji:    "🏃",
		Schedule: schedule,
		IsHabit:  true,
	}
}

func TestHabitDueOnMatchesSchedule(t *testing.T) {
	tracker := habitFixture(Schedule{Monday, Wednesday})
	now := time.Date(2026, 2, 12, 10, 0, 0, 0, time.UTC)

	monday := time.Date(2026, 2, 9, 0, 0, 0, 0, time.UTC)
	tuesday := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	wednesday := time.Date(2026, 2, 11, 0, 0, 0, 0, time.UTC)

	if !tracker.DueOn(monday, now) {
		t.Fatalf("habit not due on scheduled Monday")
	}
	if tracker.DueOn(tuesday, now) {
		t.Fatalf("habit due on unscheduled Tuesday")
	}
	if !tracker.DueOn(wednesday, now) {
		t.Fatalf("habit not due on scheduled Wednesday")
	}
}

func TestEventDueOnlyToday(t *testing.T) {
	tracker := Tracker{
		ID:       uuid.New(),
		Name:     "Dentist",
		Color:    "#35347C",
		Emoji:    "🦷",
		Schedule: Schedule{Thursday},
		IsHabit:  false,
	}
	now := time.Date(2026, 2, 12, 15, 30, 0, 0, time.UTC)

	if !tracker.DueOn(time.Date(2026, 2, 12, 0, 0, 0, 0, time.UTC), now) {
		t.Fatalf("event not due on the current day")
	}
	if tracker.DueOn(time.Date(2026, 2, 11, 0, 0, 0, 0, time.UTC), now) {
		t.Fatalf("event due on a past day")
	}
	if tracker.DueOn(time.Date(2026, 2, 13, 0, 0, 0, 0, time.UTC), now) {
		t.Fatalf("event due on a future day")
	}
	// The creation weekday does not anchor the event: Thursday in the
	// schedule, but a Friday "now" still makes Friday the due day.
	friday := time.Date(2026, 2, 13, 9, 0, 0, 0, time.UTC)
	if !tracker.DueOn(friday, friday) {
		t.Fatalf("event not due when queried day equals evaluation day")
	}
}

func TestTrackerValidate(t *testing.T) {
	valid := habitFixture(Schedule{Monday})
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid tracker rejected: %v", err)
	}

	noID := valid
	noID.ID = uuid.Nil
	if err := noID.Validate(); !errors.Is(err, ErrEmptyID) {
		t.Fatalf("expected ErrEmptyID, got %v", err)
	}

	noName := valid
	noName.Name = "   "
	if err := noName.Validate(); !errors.Is(err, ErrInvalidName) {
		t.Fatalf("expected ErrInvalidName, got %v", err)
	}

	event := valid
	event.IsHabit = false
	event.Schedule = Schedule{Monday, Tuesday}
	if err := event.Validate(); err == nil {
		t.Fatalf("event with two weekdays accepted")
	}

	pinnedNoOrigin := valid
	pinnedNoOrigin.Pinned = true
	if err := pinnedNoOrigin.Validate(); err == nil {
		t.Fatalf("pinned tracker without origin accepted")
	}
}

func TestDayOfNormalizesToMidnight(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	stamp := time.Date(2026, 2, 12, 23, 45, 12, 999, loc)
	day := DayOf(stamp)
	if day.Hour() != 0 || day.Minute() != 0 || day.Second() != 0 || day.Nanosecond() != 0 {
		t.Fatalf("DayOf left a time-of-day component: %s", day)
	}
	if !SameDay(day, stamp) {
		t.Fatalf("DayOf moved the calendar day: %s vs %s", day, stamp)
	}
}

func TestSortCategoriesPinnedFirst(t *testing.T) {
	cats := []Category{
		{Title: "Fitness"},
		{Title: "Travel"},
		{Title: PinnedCategoryTitle},
	}
	SortCategories(cats)
	if cats[0].Title != PinnedCategoryTitle {
		t.Fatalf("pinned category not first: %v", cats)
	}
	if cats[1].Title != "Fitness" || cats[2].Title != "Travel" {
		t.Fatalf("store order not preserved: %v", cats)
	}
}
