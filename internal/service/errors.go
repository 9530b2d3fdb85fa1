package service

import "errors"

var (
	ErrDuplicateTitle   = errors.New("service: category title already exists")
	ErrCategoryNotFound = errors.New("service: category not found")
	ErrTrackerNotFound  = errors.New("service: tracker not found")
	ErrInvalidState     = errors.New("service: invalid state")
	ErrNotPinned        = errors.New("service: tracker is not pinned")
	ErrStoreFailure     = errors.New("service: store commit failed")
)
