package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"habitd/internal/model"
	"habitd/internal/storage"
)

// Stats bundles the four aggregates shown on the statistics screen.
type Stats struct {
	LongestStreak  int
	PerfectDays    int
	TotalCompleted int
	AveragePerDay  int
}

func (s Stats) HasData() bool {
	return s.LongestStreak > 0 || s.PerfectDays > 0 || s.TotalCompleted > 0 || s.AveragePerDay > 0
}

// Statistics computes all four aggregates from the full record set.
// Empty input yields zero values, never an error.
func (s *Service) Statistics(ctx context.Context) (Stats, error) {
	records, err := s.repo.ListRecords(ctx, storage.RecordListFilter{})
	if err != nil {
		return Stats{}, fmt.Errorf("%w: %v", ErrStoreFailure, err)
	}
	trackers, err := s.repo.ListTrackers(ctx, storage.TrackerListFilter{})
	if err != nil {
		return Stats{}, fmt.Errorf("%w: %v", ErrStoreFailure, err)
	}
	return Stats{
		LongestStreak:  LongestStreak(records),
		PerfectDays:    PerfectDays(records, len(trackers)),
		TotalCompleted: len(records),
		AveragePerDay:  AveragePerDay(records),
	}, nil
}

// LongestStreak walks the distinct completion days in ascending order
// and returns the longest run of consecutive calendar days. It spans
// the merged record set: any completion extends the chain.
func LongestStreak(records []storage.CompletionRecord) int {
	days := distinctDays(records)
	if len(days) == 0 {
		return 0
	}
	best, run := 1, 1
	for i := 1; i < len(days); i++ {
		if days[i].Sub(days[i-1]) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		if run > best {
			best = run
		}
	}
	return best
}

// LongestStreakFor is the per-tracker variant of LongestStreak.
func LongestStreakFor(records []storage.CompletionRecord, trackerID uuid.UUID) int {
	id := trackerID.String()
	own := make([]storage.CompletionRecord, 0, len(records))
	for _, r := range records {
		if r.TrackerID == id {
			own = append(own, r)
		}
	}
	return LongestStreak(own)
}

// PerfectDays counts days on which every currently-existing tracker
// was completed. A day with no trackers in existence never counts.
func PerfectDays(records []storage.CompletionRecord, trackerCount int) int {
	if trackerCount == 0 {
		return 0
	}
	byDay := make(map[string]map[string]bool)
	for _, r := range records {
		if byDay[r.Day] == nil {
			byDay[r.Day] = make(map[string]bool)
		}
		byDay[r.Day][r.TrackerID] = true
	}
	count := 0
	for _, ids := range byDay {
		if len(ids) == trackerCount {
			count++
		}
	}
	return count
}

// AveragePerDay is floor(total completions / days with at least one
// completion); 0 for an empty record set.
func AveragePerDay(records []storage.CompletionRecord) int {
	if len(records) == 0 {
		return 0
	}
	days := make(map[string]bool, len(records))
	for _, r := range records {
		days[r.Day] = true
	}
	return len(records) / len(days)
}

func distinctDays(records []storage.CompletionRecord) []time.Time {
	seen := make(map[string]bool, len(records))
	days := make([]time.Time, 0, len(records))
	for _, r := range records {
		if seen[r.Day] {
			continue
		}
		seen[r.Day] = true
		day, err := time.Parse(model.DayLayout, r.Day)
		if err != nil {
			// Malformed rows cannot break the aggregates.
			continue
		}
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}
