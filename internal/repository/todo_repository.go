package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/WunderTransportTechnologies/ultimate-todo/internal/model"
)

// TodoFilter narrows ListByUser results. Zero values leave the
// corresponding criterion unfiltered.
type TodoFilter struct {
	Status     model.Status
	Priority   model.Priority
	CategoryID string
}

// TodoRepository handles CRUD for todos. Every operation is scoped to
// the owning user.
type TodoRepository struct {
	db *gorm.DB
}

func NewTodoRepository(db *gorm.DB) *TodoRepository {
	return &TodoRepository{db: db}
}

// Create writes a new record for the todo's owner and returns the
// stored entity with its assigned id and timestamps.
func (r *TodoRepository) Create(ctx context.Context, todo model.Todo) (model.Todo, error) {
	rec := newTodoRecord(todo)
	rec.ID = uuid.NewString()
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return model.Todo{}, fmt.Errorf("create todo: %w", err)
	}
	return todoFromRecord(rec), nil
}

// Update merges fields into an existing record; GORM refreshes
// updated_at as part of the write. Nothing is read back — callers
// update their local copy optimistically.
func (r *TodoRepository) Update(ctx context.Context, userID, id string, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Model(&todoRecord{}).
		Where("user_id = ? AND id = ?", userID, id).
		Updates(fields).Error; err != nil {
		return fmt.Errorf("update todo: %w", err)
	}
	return nil
}

// Delete removes a todo. Deleting an id that no longer exists is not
// an error.
func (r *TodoRepository) Delete(ctx context.Context, userID, id string) error {
	if err := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, id).
		Delete(&todoRecord{}).Error; err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	return nil
}

// ListByUser returns the user's todos, most recently created first,
// optionally narrowed by equality filters.
func (r *TodoRepository) ListByUser(ctx context.Context, userID string, f TodoFilter) ([]model.Todo, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if f.Status != "" {
		q = q.Where("status = ?", string(f.Status))
	}
	if f.Priority != "" {
		q = q.Where("priority = ?", string(f.Priority))
	}
	if f.CategoryID != "" {
		q = q.Where("category_id = ?", f.CategoryID)
	}

	var recs []todoRecord
	if err := q.Order("created_at DESC").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}

	todos := make([]model.Todo, len(recs))
	for i, rec := range recs {
		todos[i] = todoFromRecord(rec)
	}
	return todos, nil
}

func (r *TodoRepository) SetStatus(ctx context.Context, userID, id string, status model.Status) error {
	return r.Update(ctx, userID, id, map[string]any{"status": string(status)})
}

func (r *TodoRepository) SetPriority(ctx context.Context, userID, id string, priority model.Priority) error {
	return r.Update(ctx, userID, id, map[string]any{"priority": string(priority)})
}
