package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"
)

var (
	ErrInvalidWeekday  = errors.New("model: invalid weekday")
	ErrDuplicateDay    = errors.New("model: duplicate weekday in schedule")
	ErrBadScheduleData = errors.New("model: malformed schedule encoding")
)

// Weekday uses Monday-first numbering: Monday=1 through Sunday=7.
type Weekday int

const (
	Monday Weekday = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

func (d Weekday) IsValid() bool {
	return d >= Monday && d <= Sunday
}

func (d Weekday) String() string {
	switch d {
	case Monday:
		return "Monday"
	case Tuesday:
		return "Tuesday"
	case Wednesday:
		return "Wednesday"
	case Thursday:
		return "Thursday"
	case Friday:
		return "Friday"
	case Saturday:
		return "Saturday"
	case Sunday:
		return "Sunday"
	default:
		return fmt.Sprintf("Weekday(%d)", int(d))
	}
}

// WeekdayOf converts from Go's Sunday=0 numbering.
func WeekdayOf(t time.Time) Weekday {
	wd := int(t.Weekday())
	if wd == 0 {
		return Sunday
	}
	return Weekday(wd)
}

// Schedule is the set of weekdays a habit tracker is due on.
type Schedule []Weekday

func (s Schedule) Validate() error {
	seen := make(map[Weekday]bool, len(s))
	for _, d := range s {
		if !d.IsValid() {
			return fmt.Errorf("%w: %d", ErrInvalidWeekday, int(d))
		}
		if seen[d] {
			return fmt.Errorf("%w: %s", ErrDuplicateDay, d)
		}
		seen[d] = true
	}
	return nil
}

func (s Schedule) Contains(d Weekday) bool {
	for _, v := range s {
		if v == d {
			return true
		}
	}
	return false
}

// Normalized returns a sorted copy with duplicates removed.
func (s Schedule) Normalized() Schedule {
	out := make(Schedule, 0, len(s))
	seen := make(map[Weekday]bool, len(s))
	for _, d := range s {
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// EncodeSchedule produces the persisted form: a JSON array of weekday
// numbers. DecodeSchedule reverses it; the pair round-trips losslessly.
func EncodeSchedule(s Schedule) (string, error) {
	if err := s.Validate(); err != nil {
		return "", err
	}
	raw, err := json.Marshal([]Weekday(s.Normalized()))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBadScheduleData, err)
	}
	return string(raw), nil
}

func DecodeSchedule(data string) (Schedule, error) {
	if data == "" {
		return Schedule{}, nil
	}
	var days []Weekday
	if err := json.Unmarshal([]byte(data), &days); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadScheduleData, err)
	}
	s := Schedule(days)
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}
