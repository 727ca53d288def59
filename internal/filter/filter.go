// Package filter narrows and partitions in-memory todo lists for
// display. Everything here is pure: input order is preserved and
// nothing is re-sorted.
package filter

import (
	"strings"

	"github.com/WunderTransportTechnologies/ultimate-todo/internal/model"
)

// All matches every value of a criterion.
const All = "all"

// Spec describes which todos to keep. An empty (or All) value disables
// the corresponding criterion; active criteria must all match.
type Spec struct {
	Status     string
	Priority   string
	CategoryID string
	Search     string
}

// Apply returns the todos matching spec, in input order.
func Apply(todos []model.Todo, spec Spec) []model.Todo {
	out := make([]model.Todo, 0, len(todos))
	for _, todo := range todos {
		if matches(todo, spec) {
			out = append(out, todo)
		}
	}
	return out
}

func matches(t model.Todo, spec Spec) bool {
	if !wildcard(spec.Status) && string(t.Status) != spec.Status {
		return false
	}
	if !wildcard(spec.Priority) && string(t.Priority) != spec.Priority {
		return false
	}
	if !wildcard(spec.CategoryID) && t.CategoryID != spec.CategoryID {
		return false
	}
	if spec.Search != "" {
		q := strings.ToLower(spec.Search)
		// A missing description never matches.
		if !strings.Contains(strings.ToLower(t.Title), q) &&
			!strings.Contains(strings.ToLower(t.Description), q) {
			return false
		}
	}
	return true
}

func wildcard(v string) bool {
	return v == "" || v == All
}

// Partition holds a todo list split by status for tabbed display. The
// three slices are disjoint and keep the input order.
type Partition struct {
	Pending    []model.Todo `json:"pending"`
	InProgress []model.Todo `json:"inProgress"`
	Completed  []model.Todo `json:"completed"`
}

// PartitionByStatus re-filters the list by status; it never re-sorts.
func PartitionByStatus(todos []model.Todo) Partition {
	var p Partition
	for _, todo := range todos {
		switch todo.Status {
		case model.StatusInProgress:
			p.InProgress = append(p.InProgress, todo)
		case model.StatusCompleted:
			p.Completed = append(p.Completed, todo)
		default:
			p.Pending = append(p.Pending, todo)
		}
	}
	return p
}
