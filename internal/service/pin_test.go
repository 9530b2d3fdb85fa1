package service

import (
	"errors"
	"testing"

	"habitd/internal/model"
)

func TestPinMovesTrackerIntoPinnedCategory(t *testing.T) {
	svc, ctx := newTestService(t)
	if err := svc.CreateCategory(ctx, "Fitness"); err != nil {
		t.Fatalf("create category: %v", err)
	}
	tracker := mustCreateTracker(t, svc, ctx, "Run", "Fitness", everyDay())

	if err := svc.Pin(ctx, tracker.ID); err != nil {
		t.Fatalf("pin: %v", err)
	}

	categories, err := svc.Categories(ctx)
	if err != nil {
		t.Fatalf("categories: %v", err)
	}
	if categories[0].Title != model.PinnedCategoryTitle {
		t.Fatalf("pinned category not first: %#v", categories)
	}
	pinned := categories[0].Trackers[0]
	if !pinned.Pinned || pinned.OriginTitle != "Fitness" {
		t.Fatalf("pin state wrong: %#v", pinned)
	}
}

func TestPinIsIdempotent(t *testing.T) {
	svc, ctx := newTestService(t)
	if err := svc.CreateCategory(ctx, "Fitness"); err != nil {
		t.Fatalf("create category: %v", err)
	}
	tracker := mustCreateTracker(t, svc, ctx, "Run", "Fitness", everyDay())

	if err := svc.Pin(ctx, tracker.ID); err != nil {
		t.Fatalf("first pin: %v", err)
	}
	before, err := svc.Categories(ctx)
	if err != nil {
		t.Fatalf("categories: %v", err)
	}
	if err := svc.Pin(ctx, tracker.ID); err != nil {
		t.Fatalf("second pin: %v", err)
	}
	after, err := svc.Categories(ctx)
	if err != nil {
		t.Fatalf("categories: %v", err)
	}
	if len(before) != len(after) {
		t.Fatalf("double pin changed state: %#v vs %#v", before, after)
	}
	got := after[0].Trackers[0]
	if got.OriginTitle != "Fitness" {
		t.Fatalf("double pin overwrote origin: %#v", got)
	}
}

func TestUnpinRestoresOriginalCategory(t *testing.T) {
	svc, ctx := newTestService(t)
	if err := svc.CreateCategory(ctx, "Fitness"); err != nil {
		t.Fatalf("create category: %v", err)
	}
	tracker := mustCreateTracker(t, svc, ctx, "Run", "Fitness", everyDay())

	if err := svc.Pin(ctx, tracker.ID); err != nil {
		t.Fatalf("pin: %v", err)
	}
	if err := svc.Unpin(ctx, tracker.ID); err != nil {
		t.Fatalf("unpin: %v", err)
	}

	categories, err := svc.Categories(ctx)
	if err != nil {
		t.Fatalf("categories: %v", err)
	}
	var home *model.Category
	for i := range categories {
		if categories[i].Title == "Fitness" {
			home = &categories[i]
		}
	}
	if home == nil || len(home.Trackers) != 1 {
		t.Fatalf("tracker did not return home: %#v", categories)
	}
	got := home.Trackers[0]
	if got.Pinned || got.OriginTitle != "" {
		t.Fatalf("pin state not cleared: %#v", got)
	}
}

func TestUnpinNotPinned(t *testing.T) {
	svc, ctx := newTestService(t)
	if err := svc.CreateCategory(ctx, "Fitness"); err != nil {
		t.Fatalf("create category: %v", err)
	}
	tracker := mustCreateTracker(t, svc, ctx, "Run", "Fitness", everyDay())

	if err := svc.Unpin(ctx, tracker.ID); !errors.Is(err, ErrNotPinned) {
		t.Fatalf("expected ErrNotPinned, got %v", err)
	}
}

func TestUnpinFallsBackWhenOriginDeleted(t *testing.T) {
	svc, ctx := newTestService(t)
	if err := svc.CreateCategory(ctx, "Fitness"); err != nil {
		t.Fatalf("create category: %v", err)
	}
	tracker := mustCreateTracker(t, svc, ctx, "Run", "Fitness", everyDay())

	if err := svc.Pin(ctx, tracker.ID); err != nil {
		t.Fatalf("pin: %v", err)
	}
	if err := svc.DeleteCategory(ctx, "Fitness"); err != nil {
		t.Fatalf("delete origin: %v", err)
	}
	if err := svc.Unpin(ctx, tracker.ID); err != nil {
		t.Fatalf("unpin after origin delete: %v", err)
	}

	categories, err := svc.Categories(ctx)
	if err != nil {
		t.Fatalf("categories: %v", err)
	}
	var bucket *model.Category
	for i := range categories {
		if categories[i].Title == model.UncategorizedTitle {
			bucket = &categories[i]
		}
	}
	if bucket == nil || len(bucket.Trackers) != 1 {
		t.Fatalf("tracker not in fallback bucket: %#v", categories)
	}
	if bucket.Trackers[0].Pinned {
		t.Fatalf("pin state survived fallback unpin")
	}
}

func TestPinnedCategorySurvivesEmptying(t *testing.T) {
	svc, ctx := newTestService(t)
	if err := svc.CreateCategory(ctx, "Fitness"); err != nil {
		t.Fatalf("create category: %v", err)
	}
	tracker := mustCreateTracker(t, svc, ctx, "Run", "Fitness", everyDay())

	if err := svc.Pin(ctx, tracker.ID); err != nil {
		t.Fatalf("pin: %v", err)
	}
	if err := svc.Unpin(ctx, tracker.ID); err != nil {
		t.Fatalf("unpin: %v", err)
	}

	// Emptied, but still present in the store for the next pin.
	categories, err := svc.Categories(ctx)
	if err != nil {
		t.Fatalf("categories: %v", err)
	}
	found := false
	for _, c := range categories {
		if c.Title == model.PinnedCategoryTitle {
			found = true
			if len(c.Trackers) != 0 {
				t.Fatalf("pinned category should be empty: %#v", c)
			}
		}
	}
	if !found {
		t.Fatalf("pinned category was deleted on emptying")
	}
}
