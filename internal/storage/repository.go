package storage

import (
	"context"
	"errors"
)

var (
	ErrNotFound  = errors.New("storage: not found")
	ErrDuplicate = errors.New("storage: duplicate")
)

type Repository interface {
	CreateCategory(ctx context.Context, title string) error
	GetCategory(ctx context.Context, title string) (Category, error)
	RenameCategory(ctx context.Context, oldTitle, newTitle string) error
	DeleteCategory(ctx context.Context, title string) error
	ListCategories(ctx context.Context) ([]Category, error)

	CreateTracker(ctx context.Context, in Tracker) error
	GetTracker(ctx context.Context, id string) (Tracker, error)
	UpdateTracker(ctx context.Context, in Tracker) error
	DeleteTracker(ctx context.Context, id string) error
	ListTrackers(ctx context.Context, filter TrackerListFilter) ([]Tracker, error)

	CreateRecord(ctx context.Context, in CompletionRecord) error
	DeleteRecord(ctx context.Context, trackerID, day string) error
	HasRecord(ctx context.Context, trackerID, day string) (bool, error)
	ListRecords(ctx context.Context, filter RecordListFilter) ([]CompletionRecord, error)
}
