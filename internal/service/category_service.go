package service

import (
	"context"
	"errors"
	"strings"

	"github.com/WunderTransportTechnologies/ultimate-todo/internal/model"
	"github.com/WunderTransportTechnologies/ultimate-todo/internal/repository"
)

var ErrNameRequired = errors.New("category name is required")

// CategoryUpdate carries a partial update; nil fields are left
// untouched.
type CategoryUpdate struct {
	Name  *string
	Color *string
}

// CategoryService validates input before it reaches the store.
type CategoryService struct {
	categories *repository.CategoryRepository
}

func NewCategoryService(categories *repository.CategoryRepository) *CategoryService {
	return &CategoryService{categories: categories}
}

func (s *CategoryService) Create(ctx context.Context, userID, name, color string) (model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Category{}, ErrNameRequired
	}
	return s.categories.Create(ctx, model.Category{
		Name:   name,
		Color:  color,
		UserID: userID,
	})
}

func (s *CategoryService) Update(ctx context.Context, userID, id string, update CategoryUpdate) error {
	fields := make(map[string]any)
	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return ErrNameRequired
		}
		fields["name"] = name
	}
	if update.Color != nil {
		fields["color"] = *update.Color
	}
	return s.categories.Update(ctx, userID, id, fields)
}

func (s *CategoryService) Delete(ctx context.Context, userID, id string) error {
	return s.categories.Delete(ctx, userID, id)
}

func (s *CategoryService) List(ctx context.Context, userID string) ([]model.Category, error) {
	return s.categories.ListByUser(ctx, userID)
}

// Get returns nil when the category does not exist for the user.
func (s *CategoryService) Get(ctx context.Context, userID, id string) (*model.Category, error) {
	return s.categories.GetByID(ctx, userID, id)
}
