package storage

import "time"

type Category struct {
	ID    int64
	Title string
}

type Tracker struct {
	ID            string
	CategoryTitle string
	Name          string
	Color         string
	Emoji         string
	Schedule      string
	IsHabit       bool
	Pinned        bool
	OriginTitle   string
	CreatedAt     time.Time
}

type CompletionRecord struct {
	TrackerID string
	Day       string
}

type TrackerListFilter struct {
	CategoryTitle string
	Pinned        *bool
}

type RecordListFilter struct {
	TrackerID string
	Day       string
}
