package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"habitd/internal/model"
	"habitd/internal/storage"
)

// Service is the mutation and query surface of the tracking core. It
// owns the change notifier and commits every mutation to the injected
// repository before returning.
type Service struct {
	repo     storage.Repository
	notifier *Notifier
	now      func() time.Time
}

type Option func(*Service)

// WithClock overrides the evaluation clock. Irregular events derive
// "today" from it on every query.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func New(repo storage.Repository, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		notifier: NewNotifier(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Notifier() *Notifier {
	return s.notifier
}

func (s *Service) Now() time.Time {
	return s.now()
}

// Subscribe registers a list observer; the returned handle removes it.
func (s *Service) Subscribe(obs Observer) func() {
	return s.notifier.Subscribe(obs)
}

// mutate brackets fn between WillChange and DidChange and feeds the
// snapshot diff to the notifier. A failing fn cancels the bracket so
// observers never see a partial update.
func (s *Service) mutate(ctx context.Context, fn func() error) error {
	before, err := s.snapshot(ctx)
	if err != nil {
		return err
	}
	if err := s.notifier.WillChange(); err != nil {
		return err
	}
	if err := fn(); err != nil {
		s.notifier.Cancel()
		return err
	}
	after, err := s.snapshot(ctx)
	if err != nil {
		s.notifier.Cancel()
		return err
	}
	diffSnapshots(s.notifier, before, after)
	return s.notifier.DidChange()
}

func (s *Service) snapshot(ctx context.Context) ([]section, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreFailure, err)
	}
	out := make([]section, 0, len(categories))
	for _, c := range categories {
		trackers, err := s.repo.ListTrackers(ctx, storage.TrackerListFilter{CategoryTitle: c.Title})
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStoreFailure, err)
		}
		if len(trackers) == 0 {
			// Empty categories never render as sections.
			continue
		}
		sec := section{title: c.Title, rows: make([]row, 0, len(trackers))}
		for _, t := range trackers {
			sec.rows = append(sec.rows, row{id: t.ID, fingerprint: fingerprint(t)})
		}
		out = append(out, sec)
	}
	sortSectionsPinnedFirst(out)
	return out, nil
}

func fingerprint(t storage.Tracker) string {
	return strings.Join([]string{
		t.Name, t.Color, t.Emoji, t.Schedule, t.CategoryTitle,
		fmt.Sprintf("h=%t p=%t", t.IsHabit, t.Pinned),
	}, "|")
}

func sortSectionsPinnedFirst(sections []section) {
	for i, sec := range sections {
		if sec.title == model.PinnedCategoryTitle && i != 0 {
			pinned := sections[i]
			copy(sections[1:i+1], sections[:i])
			sections[0] = pinned
			return
		}
	}
}

func (s *Service) CreateCategory(ctx context.Context, title string) error {
	if err := (model.Category{Title: title}).Validate(); err != nil {
		return err
	}
	return s.mutate(ctx, func() error {
		if err := s.repo.CreateCategory(ctx, title); err != nil {
			if errors.Is(err, storage.ErrDuplicate) {
				return fmt.Errorf("%w: %q", ErrDuplicateTitle, title)
			}
			return fmt.Errorf("%w: %v", ErrStoreFailure, err)
		}
		return nil
	})
}

func (s *Service) RenameCategory(ctx context.Context, oldTitle, newTitle string) error {
	if err := (model.Category{Title: newTitle}).Validate(); err != nil {
		return err
	}
	if oldTitle == model.PinnedCategoryTitle {
		return fmt.Errorf("%w: cannot rename %q", ErrInvalidState, model.PinnedCategoryTitle)
	}
	return s.mutate(ctx, func() error {
		if err := s.repo.RenameCategory(ctx, oldTitle, newTitle); err != nil {
			switch {
			case errors.Is(err, storage.ErrNotFound):
				return fmt.Errorf("%w: %q", ErrCategoryNotFound, oldTitle)
			case errors.Is(err, storage.ErrDuplicate):
				return fmt.Errorf("%w: %q", ErrDuplicateTitle, newTitle)
			default:
				return fmt.Errorf("%w: %v", ErrStoreFailure, err)
			}
		}
		return nil
	})
}

// DeleteCategory cascades to the category's trackers and their records.
func (s *Service) DeleteCategory(ctx context.Context, title string) error {
	if title == model.PinnedCategoryTitle {
		return fmt.Errorf("%w: cannot delete %q", ErrInvalidState, model.PinnedCategoryTitle)
	}
	return s.mutate(ctx, func() error {
		if err := s.repo.DeleteCategory(ctx, title); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return fmt.Errorf("%w: %q", ErrCategoryNotFound, title)
			}
			return fmt.Errorf("%w: %v", ErrStoreFailure, err)
		}
		return nil
	})
}

// TrackerSpec describes a tracker to create. Event trackers ignore
// Schedule: their single weekday is fixed to the creation day.
type TrackerSpec struct {
	Name     string
	Color    string
	Emoji    string
	Schedule model.Schedule
	IsHabit  bool
}

func (s *Service) CreateTracker(ctx context.Context, spec TrackerSpec, categoryTitle string) (model.Tracker, error) {
	schedule := spec.Schedule.Normalized()
	if !spec.IsHabit {
		schedule = model.Schedule{model.WeekdayOf(s.now())}
	}
	tracker := model.Tracker{
		ID:       uuid.New(),
		Name:     spec.Name,
		Color:    spec.Color,
		Emoji:    spec.Emoji,
		Schedule: schedule,
		IsHabit:  spec.IsHabit,
	}
	if err := tracker.Validate(); err != nil {
		return model.Tracker{}, err
	}
	stored, err := toStorageTracker(tracker, categoryTitle, s.now())
	if err != nil {
		return model.Tracker{}, err
	}
	err = s.mutate(ctx, func() error {
		if err := s.repo.CreateTracker(ctx, stored); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return fmt.Errorf("%w: %q", ErrCategoryNotFound, categoryTitle)
			}
			return fmt.Errorf("%w: %v", ErrStoreFailure, err)
		}
		return nil
	})
	if err != nil {
		return model.Tracker{}, err
	}
	return tracker, nil
}

// TrackerEdit carries the fields an edit may change; nil means keep.
type TrackerEdit struct {
	Name     *string
	Color    *string
	Emoji    *string
	Schedule *model.Schedule
}

func (s *Service) UpdateTracker(ctx context.Context, id uuid.UUID, edit TrackerEdit) error {
	current, err := s.getTracker(ctx, id)
	if err != nil {
		return err
	}
	if edit.Name != nil {
		current.tracker.Name = *edit.Name
	}
	if edit.Color != nil {
		current.tracker.Color = *edit.Color
	}
	if edit.Emoji != nil {
		current.tracker.Emoji = *edit.Emoji
	}
	if edit.Schedule != nil {
		current.tracker.Schedule = edit.Schedule.Normalized()
	}
	if err := current.tracker.Validate(); err != nil {
		return err
	}
	stored, err := toStorageTracker(current.tracker, current.categoryTitle, current.createdAt)
	if err != nil {
		return err
	}
	return s.mutate(ctx, func() error {
		if err := s.repo.UpdateTracker(ctx, stored); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return fmt.Errorf("%w: %s", ErrTrackerNotFound, id)
			}
			return fmt.Errorf("%w: %v", ErrStoreFailure, err)
		}
		return nil
	})
}

// DeleteTracker removes the tracker and, by cascade, its records.
func (s *Service) DeleteTracker(ctx context.Context, id uuid.UUID) error {
	return s.mutate(ctx, func() error {
		if err := s.repo.DeleteTracker(ctx, id.String()); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return fmt.Errorf("%w: %s", ErrTrackerNotFound, id)
			}
			return fmt.Errorf("%w: %v", ErrStoreFailure, err)
		}
		return nil
	})
}

// ToggleCompletion marks the tracker done for date, or unmarks it if a
// record already exists. Future dates are rejected. The returned bool
// reports whether the tracker ended up completed.
func (s *Service) ToggleCompletion(ctx context.Context, id uuid.UUID, date time.Time) (bool, error) {
	day := model.DayOf(date)
	today := model.DayOf(s.now())
	if day.After(today) {
		return false, fmt.Errorf("%w: cannot complete a future date", ErrInvalidState)
	}
	if _, err := s.getTracker(ctx, id); err != nil {
		return false, err
	}

	record := model.NewCompletionRecord(id, day)
	if err := record.Validate(); err != nil {
		return false, err
	}
	dayKey := record.Day()
	has, err := s.repo.HasRecord(ctx, id.String(), dayKey)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrStoreFailure, err)
	}

	completed := !has
	err = s.mutate(ctx, func() error {
		if has {
			if err := s.repo.DeleteRecord(ctx, id.String(), dayKey); err != nil {
				return fmt.Errorf("%w: %v", ErrStoreFailure, err)
			}
			return nil
		}
		if err := s.repo.CreateRecord(ctx, storage.CompletionRecord{TrackerID: id.String(), Day: dayKey}); err != nil {
			return fmt.Errorf("%w: %v", ErrStoreFailure, err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return completed, nil
}

// Categories returns every category with its trackers, pinned first,
// trackers ordered by name.
func (s *Service) Categories(ctx context.Context) ([]model.Category, error) {
	stored, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreFailure, err)
	}
	out := make([]model.Category, 0, len(stored))
	for _, c := range stored {
		trackers, err := s.repo.ListTrackers(ctx, storage.TrackerListFilter{CategoryTitle: c.Title})
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStoreFailure, err)
		}
		category := model.Category{Title: c.Title, Trackers: make([]model.Tracker, 0, len(trackers))}
		for _, t := range trackers {
			decoded, err := fromStorageTracker(t)
			if err != nil {
				return nil, err
			}
			category.Trackers = append(category.Trackers, decoded)
		}
		out = append(out, category)
	}
	model.SortCategories(out)
	return out, nil
}

type loadedTracker struct {
	tracker       model.Tracker
	categoryTitle string
	createdAt     time.Time
}

func (s *Service) getTracker(ctx context.Context, id uuid.UUID) (*loadedTracker, error) {
	stored, err := s.repo.GetTracker(ctx, id.String())
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrTrackerNotFound, id)
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreFailure, err)
	}
	tracker, err := fromStorageTracker(stored)
	if err != nil {
		return nil, err
	}
	return &loadedTracker{
		tracker:       tracker,
		categoryTitle: stored.CategoryTitle,
		createdAt:     stored.CreatedAt,
	}, nil
}

func toStorageTracker(t model.Tracker, categoryTitle string, createdAt time.Time) (storage.Tracker, error) {
	encoded, err := model.EncodeSchedule(t.Schedule)
	if err != nil {
		return storage.Tracker{}, err
	}
	return storage.Tracker{
		ID:            t.ID.String(),
		CategoryTitle: categoryTitle,
		Name:          t.Name,
		Color:         t.Color,
		Emoji:         t.Emoji,
		Schedule:      encoded,
		IsHabit:       t.IsHabit,
		Pinned:        t.Pinned,
		OriginTitle:   t.OriginTitle,
		CreatedAt:     createdAt,
	}, nil
}

func fromStorageTracker(t storage.Tracker) (model.Tracker, error) {
	id, err := uuid.Parse(t.ID)
	if err != nil {
		return model.Tracker{}, fmt.Errorf("%w: bad tracker id %q", ErrStoreFailure, t.ID)
	}
	schedule, err := model.DecodeSchedule(t.Schedule)
	if err != nil {
		return model.Tracker{}, err
	}
	return model.Tracker{
		ID:          id,
		Name:        t.Name,
		Color:       t.Color,
		Emoji:       t.Emoji,
		Schedule:    schedule,
		IsHabit:     t.IsHabit,
		Pinned:      t.Pinned,
		OriginTitle: t.OriginTitle,
	}, nil
}
