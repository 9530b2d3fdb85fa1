package service

import (
	"fmt"
	"sort"
)

// RowIndex addresses a row relative to its containing section.
type RowIndex struct {
	Section int
	Row     int
}

// Update is one batched structural diff. Observers always receive all
// accumulators of a bracket together, never a partial set.
type Update struct {
	InsertedRows     []RowIndex
	DeletedRows      []RowIndex
	UpdatedRows      []RowIndex
	InsertedSections []int
	DeletedSections  []int
}

func (u Update) Empty() bool {
	return len(u.InsertedRows) == 0 && len(u.DeletedRows) == 0 && len(u.UpdatedRows) == 0 &&
		len(u.InsertedSections) == 0 && len(u.DeletedSections) == 0
}

// Observer receives batched updates.
type Observer func(Update)

// Notifier accumulates row and section changes between WillChange and
// DidChange and delivers them as one Update. Brackets do not nest.
type Notifier struct {
	observers map[int]Observer
	nextID    int

	active  bool
	pending Update
}

func NewNotifier() *Notifier {
	return &Notifier{observers: make(map[int]Observer)}
}

// Subscribe registers an observer and returns its unsubscribe handle.
func (n *Notifier) Subscribe(obs Observer) func() {
	id := n.nextID
	n.nextID++
	n.observers[id] = obs
	return func() { delete(n.observers, id) }
}

func (n *Notifier) WillChange() error {
	if n.active {
		return fmt.Errorf("%w: nested change bracket", ErrInvalidState)
	}
	n.active = true
	n.pending = Update{}
	return nil
}

// Cancel drops the bracket without delivering anything. Used when a
// store commit fails mid-mutation.
func (n *Notifier) Cancel() {
	n.active = false
	n.pending = Update{}
}

func (n *Notifier) InsertRow(idx RowIndex)   { n.pending.InsertedRows = append(n.pending.InsertedRows, idx) }
func (n *Notifier) DeleteRow(idx RowIndex)   { n.pending.DeletedRows = append(n.pending.DeletedRows, idx) }
func (n *Notifier) UpdateRow(idx RowIndex)   { n.pending.UpdatedRows = append(n.pending.UpdatedRows, idx) }
func (n *Notifier) InsertSection(index int)  { n.pending.InsertedSections = append(n.pending.InsertedSections, index) }
func (n *Notifier) DeleteSection(index int)  { n.pending.DeletedSections = append(n.pending.DeletedSections, index) }

func (n *Notifier) DidChange() error {
	if !n.active {
		return fmt.Errorf("%w: DidChange without WillChange", ErrInvalidState)
	}
	update := n.pending
	n.active = false
	n.pending = Update{}

	sortUpdate(&update)
	for _, obs := range n.observers {
		obs(update)
	}
	return nil
}

func sortUpdate(u *Update) {
	byPosition := func(rows []RowIndex) func(i, j int) bool {
		return func(i, j int) bool {
			if rows[i].Section != rows[j].Section {
				return rows[i].Section < rows[j].Section
			}
			return rows[i].Row < rows[j].Row
		}
	}
	sort.Slice(u.InsertedRows, byPosition(u.InsertedRows))
	sort.Slice(u.DeletedRows, byPosition(u.DeletedRows))
	sort.Slice(u.UpdatedRows, byPosition(u.UpdatedRows))
	sort.Ints(u.InsertedSections)
	sort.Ints(u.DeletedSections)
}
