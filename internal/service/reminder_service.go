package service

import (
	"context"
	"fmt"
	"html"
	"sort"
	"strings"
	"time"

	"github.com/WunderTransportTechnologies/ultimate-todo/internal/model"
	"github.com/WunderTransportTechnologies/ultimate-todo/internal/repository"
)

// ReminderService builds the daily digest of a user's open todos.
type ReminderService struct {
	todos      *repository.TodoRepository
	categories *repository.CategoryRepository
}

func NewReminderService(todos *repository.TodoRepository, categories *repository.CategoryRepository) *ReminderService {
	return &ReminderService{todos: todos, categories: categories}
}

// DailyDigest renders a summary of everything not yet completed,
// leading with overdue items, then items due within 48 hours, then the
// rest. Returns "" when the user has nothing open.
func (s *ReminderService) DailyDigest(ctx context.Context, userID string, now time.Time) (string, error) {
	todos, err := s.todos.ListByUser(ctx, userID, repository.TodoFilter{})
	if err != nil {
		return "", err
	}

	categories, err := s.categories.ListByUser(ctx, userID)
	if err != nil {
		return "", err
	}
	catNames := make(map[string]string, len(categories))
	for _, cat := range categories {
		catNames[cat.ID] = cat.Name
	}

	var overdue, dueSoon, open []model.Todo
	for _, todo := range todos {
		if todo.Status == model.StatusCompleted {
			continue
		}
		switch {
		case todo.DueDate != nil && now.After(*todo.DueDate):
			overdue = append(overdue, todo)
		case todo.DueDate != nil && todo.DueDate.Sub(now) <= 48*time.Hour:
			dueSoon = append(dueSoon, todo)
		default:
			open = append(open, todo)
		}
	}

	if len(overdue)+len(dueSoon)+len(open) == 0 {
		return "", nil
	}

	byDueDate := func(todos []model.Todo) {
		sort.SliceStable(todos, func(i, j int) bool {
			return todos[i].DueDate.Before(*todos[j].DueDate)
		})
	}
	byDueDate(overdue)
	byDueDate(dueSoon)

	var builder strings.Builder
	builder.WriteString("<b>Daily digest</b>\n")
	builder.WriteString(now.Format("2006-01-02"))
	builder.WriteString("\n")

	writeSection(&builder, "Overdue", overdue, catNames, now)
	writeSection(&builder, "Due soon", dueSoon, catNames, now)
	writeSection(&builder, "Open", open, catNames, now)

	return strings.TrimSpace(builder.String()), nil
}

func writeSection(builder *strings.Builder, heading string, todos []model.Todo, catNames map[string]string, now time.Time) {
	if len(todos) == 0 {
		return
	}
	builder.WriteString(fmt.Sprintf("\n<b>%s</b>\n", heading))
	for _, todo := range todos {
		builder.WriteString(formatTodo(todo, catNames, now))
	}
}

func formatTodo(todo model.Todo, catNames map[string]string, now time.Time) string {
	var sb strings.Builder

	sb.WriteString("• ")
	sb.WriteString(html.EscapeString(strings.TrimSpace(todo.Title)))

	if todo.Priority == model.PriorityHigh {
		sb.WriteString(" <b>(high)</b>")
	}

	if name, ok := catNames[todo.CategoryID]; ok {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			sb.WriteString(fmt.Sprintf(" <i>[%s]</i>", html.EscapeString(trimmed)))
		}
	}

	if todo.DueDate != nil {
		due := todo.DueDate.In(now.Location())
		if now.After(due) {
			sb.WriteString(fmt.Sprintf(" — due %s, <b>overdue</b>", due.Format("2006-01-02")))
		} else {
			sb.WriteString(fmt.Sprintf(" — due %s", due.Format("2006-01-02")))
		}
	}

	sb.WriteByte('\n')
	return sb.String()
}
