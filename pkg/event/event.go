package event

import (
	"errors"
	"strings"
)

// AllCategories is the filter value that disables category filtering.
const AllCategories = "All"

var ErrEventNotFound = errors.New("event not found")

type Event struct {
	Id       int
	Date     string
	Title    string
	Category string
}

// Draft holds user input that has not been stored yet.
type Draft struct {
	Title    string
	Date     string
	Category string
}

// MissingFields lists the names of blank draft fields, in form order.
func (d Draft) MissingFields() []string {
	var missing []string
	if strings.TrimSpace(d.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(d.Date) == "" {
		missing = append(missing, "date")
	}
	if strings.TrimSpace(d.Category) == "" {
		missing = append(missing, "category")
	}
	return missing
}

// Snapshot is the store state right after an operation.
type Snapshot struct {
	Events []Event
	Filter string
}

// Visible returns the events that pass the snapshot's filter.
func (s Snapshot) Visible() []Event {
	return applyFilter(s.Events, s.Filter)
}

func applyFilter(events []Event, filter string) []Event {
	result := make([]Event, 0, len(events))
	for _, e := range events {
		if filter == AllCategories || e.Category == filter {
			result = append(result, e)
		}
	}
	return result
}

// DefaultSeed returns the events a fresh session starts with.
func DefaultSeed() []Event {
	return []Event{
		{Id: 1, Date: "2024-08-20", Title: "Meeting", Category: "Work"},
		{Id: 2, Date: "2024-08-21", Title: "Birthday Party", Category: "Personal"},
	}
}
