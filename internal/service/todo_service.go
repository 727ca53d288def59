package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/WunderTransportTechnologies/ultimate-todo/internal/model"
	"github.com/WunderTransportTechnologies/ultimate-todo/internal/repository"
)

var (
	ErrTitleRequired   = errors.New("title is required")
	ErrInvalidStatus   = errors.New("invalid status")
	ErrInvalidPriority = errors.New("invalid priority")
)

// TodoInput carries the caller-supplied fields for a new todo.
type TodoInput struct {
	Title       string
	Description string
	Priority    model.Priority
	DueDate     *time.Time
	CategoryID  string
}

// TodoUpdate carries a partial update; nil fields are left untouched.
// ClearDueDate removes the due date, which a nil DueDate cannot express.
type TodoUpdate struct {
	Title        *string
	Description  *string
	Status       *model.Status
	Priority     *model.Priority
	DueDate      *time.Time
	ClearDueDate bool
	CategoryID   *string
}

// TodoService validates input before it reaches the store. Validation
// failures never issue a remote call.
type TodoService struct {
	todos *repository.TodoRepository
}

func NewTodoService(todos *repository.TodoRepository) *TodoService {
	return &TodoService{todos: todos}
}

// Create writes a new todo for the user. New todos start pending;
// priority defaults to medium, matching the form default.
func (s *TodoService) Create(ctx context.Context, userID string, input TodoInput) (model.Todo, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return model.Todo{}, ErrTitleRequired
	}
	if input.Priority == "" {
		input.Priority = model.PriorityMedium
	}
	if !input.Priority.Valid() {
		return model.Todo{}, ErrInvalidPriority
	}

	return s.todos.Create(ctx, model.Todo{
		Title:       title,
		Description: input.Description,
		Status:      model.StatusPending,
		Priority:    input.Priority,
		DueDate:     input.DueDate,
		UserID:      userID,
		CategoryID:  input.CategoryID,
	})
}

// Update merges the given fields into the user's todo.
func (s *TodoService) Update(ctx context.Context, userID, id string, update TodoUpdate) error {
	fields := make(map[string]any)
	if update.Title != nil {
		title := strings.TrimSpace(*update.Title)
		if title == "" {
			return ErrTitleRequired
		}
		fields["title"] = title
	}
	if update.Description != nil {
		fields["description"] = *update.Description
	}
	if update.Status != nil {
		if !update.Status.Valid() {
			return ErrInvalidStatus
		}
		fields["status"] = string(*update.Status)
	}
	if update.Priority != nil {
		if !update.Priority.Valid() {
			return ErrInvalidPriority
		}
		fields["priority"] = string(*update.Priority)
	}
	if update.DueDate != nil {
		fields["due_date"] = *update.DueDate
	} else if update.ClearDueDate {
		fields["due_date"] = nil
	}
	if update.CategoryID != nil {
		fields["category_id"] = *update.CategoryID
	}

	return s.todos.Update(ctx, userID, id, fields)
}

func (s *TodoService) Delete(ctx context.Context, userID, id string) error {
	return s.todos.Delete(ctx, userID, id)
}

// List returns the user's todos, most recent first, after validating
// the equality filters.
func (s *TodoService) List(ctx context.Context, userID string, f repository.TodoFilter) ([]model.Todo, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	if f.Priority != "" && !f.Priority.Valid() {
		return nil, ErrInvalidPriority
	}
	return s.todos.ListByUser(ctx, userID, f)
}

func (s *TodoService) SetStatus(ctx context.Context, userID, id string, status model.Status) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}
	return s.todos.SetStatus(ctx, userID, id, status)
}

func (s *TodoService) SetPriority(ctx context.Context, userID, id string, priority model.Priority) error {
	if !priority.Valid() {
		return ErrInvalidPriority
	}
	return s.todos.SetPriority(ctx, userID, id, priority)
}
