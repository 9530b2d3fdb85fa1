package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrZeroDate = errors.New("model: completion date is required")

// DayLayout is the persisted form of a completion day.
const DayLayout = "2006-01-02"

// DayOf truncates t to midnight in its own location.
func DayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// CompletionRecord marks a tracker done on one calendar day. It
// references the tracker by id without owning it; at most one record
// exists per (TrackerID, Date) pair.
type CompletionRecord struct {
	TrackerID uuid.UUID
	Date      time.Time
}

func NewCompletionRecord(trackerID uuid.UUID, date time.Time) CompletionRecord {
	return CompletionRecord{TrackerID: trackerID, Date: DayOf(date)}
}

func (r CompletionRecord) Validate() error {
	if r.TrackerID == uuid.Nil {
		return ErrEmptyID
	}
	if r.Date.IsZero() {
		return ErrZeroDate
	}
	return nil
}

func (r CompletionRecord) Day() string {
	return r.Date.Format(DayLayout)
}
