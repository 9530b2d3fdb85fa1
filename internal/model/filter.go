package model

import "fmt"

var ErrInvalidFilter = fmt.Errorf("model: invalid filter type")

type FilterType string

const (
	FilterAll         FilterType = "all"
	FilterToday       FilterType = "today"
	FilterCompleted   FilterType = "completed"
	FilterUncompleted FilterType = "uncompleted"
)

func AllFilters() []FilterType {
	return []FilterType{FilterAll, FilterToday, FilterCompleted, FilterUncompleted}
}

func (f FilterType) IsValid() bool {
	switch f {
	case FilterAll, FilterToday, FilterCompleted, FilterUncompleted:
		return true
	default:
		return false
	}
}

// Next cycles through the filters in display order.
func (f FilterType) Next() FilterType {
	all := AllFilters()
	for i, v := range all {
		if v == f {
			return all[(i+1)%len(all)]
		}
	}
	return FilterAll
}
