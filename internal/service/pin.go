package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"habitd/internal/model"
	"habitd/internal/storage"
)

// Pin moves the tracker into the synthetic "Pinned" category, recording
// where it came from. Pinning an already-pinned tracker is a no-op.
func (s *Service) Pin(ctx context.Context, id uuid.UUID) error {
	current, err := s.getTracker(ctx, id)
	if err != nil {
		return err
	}
	if current.tracker.Pinned {
		return nil
	}

	if err := s.ensureCategory(ctx, model.PinnedCategoryTitle); err != nil {
		return err
	}

	moved := current.tracker
	moved.Pinned = true
	moved.OriginTitle = current.categoryTitle
	stored, err := toStorageTracker(moved, model.PinnedCategoryTitle, current.createdAt)
	if err != nil {
		return err
	}
	return s.mutate(ctx, func() error {
		if err := s.repo.UpdateTracker(ctx, stored); err != nil {
			return fmt.Errorf("%w: %v", ErrStoreFailure, err)
		}
		return nil
	})
}

// Unpin returns the tracker to its origin category. If that category
// was deleted while the tracker was pinned, it deterministically falls
// back to "Uncategorized".
func (s *Service) Unpin(ctx context.Context, id uuid.UUID) error {
	current, err := s.getTracker(ctx, id)
	if err != nil {
		return err
	}
	if !current.tracker.Pinned {
		return fmt.Errorf("%w: %s", ErrNotPinned, id)
	}

	destination := current.tracker.OriginTitle
	if _, err := s.repo.GetCategory(ctx, destination); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%w: %v", ErrStoreFailure, err)
		}
		destination = model.UncategorizedTitle
		if err := s.ensureCategory(ctx, destination); err != nil {
			return err
		}
	}

	moved := current.tracker
	moved.Pinned = false
	moved.OriginTitle = ""
	stored, err := toStorageTracker(moved, destination, current.createdAt)
	if err != nil {
		return err
	}
	return s.mutate(ctx, func() error {
		if err := s.repo.UpdateTracker(ctx, stored); err != nil {
			return fmt.Errorf("%w: %v", ErrStoreFailure, err)
		}
		return nil
	})
}

// ensureCategory lazily creates a synthetic category. Creation happens
// outside the change bracket: an empty category is invisible to the
// query facade, so observers only learn about it once a tracker lands
// there.
func (s *Service) ensureCategory(ctx context.Context, title string) error {
	err := s.repo.CreateCategory(ctx, title)
	if err != nil && !errors.Is(err, storage.ErrDuplicate) {
		return fmt.Errorf("%w: %v", ErrStoreFailure, err)
	}
	return nil
}
