package service

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"habitd/internal/model"
	"habitd/internal/storage"
)

// testNow is a Thursday. All service tests evaluate "today" against it.
var testNow = time.Date(2026, 2, 12, 15, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, context.Context) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "habitd-test.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := storage.MigrateUp(db); err != nil {
		t.Fatalf("migrate up: %v", err)
	}
	repo, err := storage.NewSQLiteRepository(db)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}
	return New(repo, WithClock(func() time.Time { return testNow })), context.Background()
}

func mustCreateTracker(t *testing.T, svc *Service, ctx context.Context, name, category string, schedule model.Schedule) model.Tracker {
	t.Helper()
	tracker, err := svc.CreateTracker(ctx, TrackerSpec{
		Name:     name,
		Color:    "#FD4C49",
		Emoji:    "✅",
		Schedule: schedule,
		IsHabit:  true,
	}, category)
	if err != nil {
		t.Fatalf("create tracker %q: %v", name, err)
	}
	return tracker
}

func everyDay() model.Schedule {
	return model.Schedule{
		model.Monday, model.Tuesday, model.Wednesday, model.Thursday,
		model.Friday, model.Saturday, model.Sunday,
	}
}

func TestCreateCategoryDuplicateTitle(t *testing.T) {
	svc, ctx := newTestService(t)

	if err := svc.CreateCategory(ctx, "Fitness"); err != nil {
		t.Fatalf("create category: %v", err)
	}
	if err := svc.CreateCategory(ctx, "Fitness"); !errors.Is(err, ErrDuplicateTitle) {
		t.Fatalf("expected ErrDuplicateTitle, got %v", err)
	}
	if err := svc.CreateCategory(ctx, "  "); !errors.Is(err, model.ErrInvalidTitle) {
		t.Fatalf("expected ErrInvalidTitle, got %v", err)
	}
	// Exact case-sensitive match: a different casing is a new category.
	if err := svc.CreateCategory(ctx, "fitness"); err != nil {
		t.Fatalf("case-differing title rejected: %v", err)
	}
}

func TestRenameCategory(t *testing.T) {
	svc, ctx := newTestService(t)

	if err := svc.RenameCategory(ctx, "Missing", "X"); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
	if err := svc.CreateCategory(ctx, "Fitness"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.CreateCategory(ctx, "Travel"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.RenameCategory(ctx, "Fitness", "Travel"); !errors.Is(err, ErrDuplicateTitle) {
		t.Fatalf("expected ErrDuplicateTitle, got %v", err)
	}
	if err := svc.RenameCategory(ctx, "Fitness", "Health"); err != nil {
		t.Fatalf("rename: %v", err)
	}
}

func TestDeleteCategoryCascadesToRecords(t *testing.T) {
	svc, ctx := newTestService(t)

	if err := svc.CreateCategory(ctx, "Fitness"); err != nil {
		t.Fatalf("create category: %v", err)
	}
	run := mustCreateTracker(t, svc, ctx, "Run", "Fitness", everyDay())
	abs := mustCreateTracker(t, svc, ctx, "Abs", "Fitness", everyDay())

	for _, tracker := range []model.Tracker{run, abs} {
		if _, err := svc.ToggleCompletion(ctx, tracker.ID, testNow); err != nil {
			t.Fatalf("toggle %s: %v", tracker.Name, err)
		}
	}

	stats, err := svc.Statistics(ctx)
	if err != nil {
		t.Fatalf("statistics: %v", err)
	}
	if stats.TotalCompleted != 2 {
		t.Fatalf("expected 2 records before delete, got %d", stats.TotalCompleted)
	}

	if err := svc.DeleteCategory(ctx, "Fitness"); err != nil {
		t.Fatalf("delete category: %v", err)
	}
	stats, err = svc.Statistics(ctx)
	if err != nil {
		t.Fatalf("statistics after delete: %v", err)
	}
	if stats.TotalCompleted != 0 {
		t.Fatalf("cascade left %d records", stats.TotalCompleted)
	}
	categories, err := svc.Categories(ctx)
	if err != nil {
		t.Fatalf("categories: %v", err)
	}
	if len(categories) != 0 {
		t.Fatalf("category survived delete: %#v", categories)
	}
}

func TestDeletePinnedCategoryRejected(t *testing.T) {
	svc, ctx := newTestService(t)
	if err := svc.DeleteCategory(ctx, model.PinnedCategoryTitle); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}

func TestCreateTrackerUnknownCategory(t *testing.T) {
	svc, ctx := newTestService(t)
	_, err := svc.CreateTracker(ctx, TrackerSpec{
		Name:     "Run",
		Color:    "#FD4C49",
		Schedule: everyDay(),
		IsHabit:  true,
	}, "Nowhere")
	if !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestCreateEventFixesScheduleToCreationWeekday(t *testing.T) {
	svc, ctx := newTestService(t)
	if err := svc.CreateCategory(ctx, "Errands"); err != nil {
		t.Fatalf("create category: %v", err)
	}
	event, err := svc.CreateTracker(ctx, TrackerSpec{
		Name:    "Dentist",
		Color:   "#35347C",
		IsHabit: false,
		// Schedule is ignored for events.
		Schedule: model.Schedule{model.Monday, model.Friday},
	}, "Errands")
	if err != nil {
		t.Fatalf("create event: %v", err)
	}
	if len(event.Schedule) != 1 || event.Schedule[0] != model.Thursday {
		t.Fatalf("event schedule not fixed to creation weekday: %v", event.Schedule)
	}
}

func TestUpdateTracker(t *testing.T) {
	svc, ctx := newTestService(t)
	if err := svc.CreateCategory(ctx, "Fitness"); err != nil {
		t.Fatalf("create category: %v", err)
	}
	tracker := mustCreateTracker(t, svc, ctx, "Run", "Fitness", model.Schedule{model.Monday})

	newName := "Morning run"
	newSchedule := model.Schedule{model.Tuesday, model.Thursday}
	if err := svc.UpdateTracker(ctx, tracker.ID, TrackerEdit{Name: &newName, Schedule: &newSchedule}); err != nil {
		t.Fatalf("update tracker: %v", err)
	}

	categories, err := svc.Categories(ctx)
	if err != nil {
		t.Fatalf("categories: %v", err)
	}
	got := categories[0].Trackers[0]
	if got.Name != "Morning run" || len(got.Schedule) != 2 {
		t.Fatalf("edit not persisted: %#v", got)
	}
	if got.Color != "#FD4C49" {
		t.Fatalf("unset edit field changed: %#v", got)
	}
}

func TestToggleCompletionRoundTrip(t *testing.T) {
	svc, ctx := newTestService(t)
	if err := svc.CreateCategory(ctx, "Fitness"); err != nil {
		t.Fatalf("create category: %v", err)
	}
	tracker := mustCreateTracker(t, svc, ctx, "Run", "Fitness", everyDay())

	completed, err := svc.ToggleCompletion(ctx, tracker.ID, testNow)
	if err != nil {
		t.Fatalf("toggle on: %v", err)
	}
	if !completed {
		t.Fatalf("first toggle should complete")
	}
	completed, err = svc.ToggleCompletion(ctx, tracker.ID, testNow)
	if err != nil {
		t.Fatalf("toggle off: %v", err)
	}
	if completed {
		t.Fatalf("second toggle should uncomplete")
	}
	stats, err := svc.Statistics(ctx)
	if err != nil {
		t.Fatalf("statistics: %v", err)
	}
	if stats.TotalCompleted != 0 {
		t.Fatalf("record set changed after on/off round trip: %d", stats.TotalCompleted)
	}
}

func TestToggleCompletionRejectsFutureDate(t *testing.T) {
	svc, ctx := newTestService(t)
	if err := svc.CreateCategory(ctx, "Fitness"); err != nil {
		t.Fatalf("create category: %v", err)
	}
	tracker := mustCreateTracker(t, svc, ctx, "Run", "Fitness", everyDay())

	_, err := svc.ToggleCompletion(ctx, tracker.ID, testNow.AddDate(0, 0, 1))
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState for future date, got %v", err)
	}
}

func TestDeleteTrackerRemovesRecords(t *testing.T) {
	svc, ctx := newTestService(t)
	if err := svc.CreateCategory(ctx, "Fitness"); err != nil {
		t.Fatalf("create category: %v", err)
	}
	tracker := mustCreateTracker(t, svc, ctx, "Run", "Fitness", everyDay())
	if _, err := svc.ToggleCompletion(ctx, tracker.ID, testNow); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	if err := svc.DeleteTracker(ctx, tracker.ID); err != nil {
		t.Fatalf("delete tracker: %v", err)
	}
	stats, err := svc.Statistics(ctx)
	if err != nil {
		t.Fatalf("statistics: %v", err)
	}
	if stats.TotalCompleted != 0 {
		t.Fatalf("records survived tracker delete: %d", stats.TotalCompleted)
	}
}
