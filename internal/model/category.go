package model

import (
	"errors"
	"sort"
	"strings"
)

var ErrInvalidTitle = errors.New("model: category title is required")

const (
	// PinnedCategoryTitle is the synthetic category holding pinned
	// trackers. Created lazily on first pin, never deleted, always
	// listed first.
	PinnedCategoryTitle = "Pinned"
	// UncategorizedTitle is where a tracker lands when it is unpinned
	// after its origin category was deleted.
	UncategorizedTitle = "Uncategorized"
)

// Category owns its trackers: deleting a category cascades to them.
type Category struct {
	Title    string
	Trackers []Tracker
}

func (c Category) Validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return ErrInvalidTitle
	}
	return nil
}

// SortTrackers orders a category's trackers by name ascending.
func SortTrackers(trackers []Tracker) {
	sort.SliceStable(trackers, func(i, j int) bool {
		return trackers[i].Name < trackers[j].Name
	})
}

// SortCategories keeps store order but moves "Pinned" to the front.
func SortCategories(categories []Category) {
	sort.SliceStable(categories, func(i, j int) bool {
		if categories[i].Title == PinnedCategoryTitle {
			return categories[j].Title != PinnedCategoryTitle
		}
		return false
	})
}
