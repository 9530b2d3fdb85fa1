package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"habitd/internal/model"
	"habitd/internal/storage"
)

// VisibleTrackers answers "what is on screen for this date, filter and
// search text". It is the single home of visibility filtering: a
// tracker survives iff the schedule evaluator says it is due on date,
// the filter predicate holds, and the search text matches its name.
// Categories left with no trackers are dropped entirely.
func (s *Service) VisibleTrackers(ctx context.Context, date time.Time, filter model.FilterType, search string) ([]model.Category, error) {
	if !filter.IsValid() {
		return nil, fmt.Errorf("%w: %q", model.ErrInvalidFilter, filter)
	}
	categories, err := s.Categories(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	day := model.DayOf(date)
	dayKey := day.Format(model.DayLayout)
	completed, err := s.completedOn(ctx, dayKey)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(strings.TrimSpace(search))

	out := make([]model.Category, 0, len(categories))
	for _, category := range categories {
		kept := make([]model.Tracker, 0, len(category.Trackers))
		for _, tracker := range category.Trackers {
			if !tracker.DueOn(day, now) {
				continue
			}
			if !matchesFilter(filter, tracker, day, now, completed) {
				continue
			}
			if needle != "" && !strings.Contains(strings.ToLower(tracker.Name), needle) {
				continue
			}
			kept = append(kept, tracker)
		}
		if len(kept) == 0 {
			continue
		}
		out = append(out, model.Category{Title: category.Title, Trackers: kept})
	}
	return out, nil
}

func matchesFilter(filter model.FilterType, tracker model.Tracker, day, now time.Time, completed map[string]bool) bool {
	switch filter {
	case model.FilterAll:
		return true
	case model.FilterToday:
		return model.SameDay(day, now)
	case model.FilterCompleted:
		return completed[tracker.ID.String()]
	case model.FilterUncompleted:
		return !completed[tracker.ID.String()]
	default:
		return false
	}
}

func (s *Service) completedOn(ctx context.Context, dayKey string) (map[string]bool, error) {
	records, err := s.repo.ListRecords(ctx, storage.RecordListFilter{Day: dayKey})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreFailure, err)
	}
	out := make(map[string]bool, len(records))
	for _, r := range records {
		out[r.TrackerID] = true
	}
	return out, nil
}

// CompletedOn reports whether the tracker has a record for date, and
// the all-time completion count for the tracker. The list UI shows
// both on every row.
func (s *Service) CompletedOn(ctx context.Context, trackerID string, date time.Time) (bool, int, error) {
	dayKey := model.DayOf(date).Format(model.DayLayout)
	has, err := s.repo.HasRecord(ctx, trackerID, dayKey)
	if err != nil {
		return false, 0, fmt.Errorf("%w: %v", ErrStoreFailure, err)
	}
	records, err := s.repo.ListRecords(ctx, storage.RecordListFilter{TrackerID: trackerID})
	if err != nil {
		return false, 0, fmt.Errorf("%w: %v", ErrStoreFailure, err)
	}
	return has, len(records), nil
}
