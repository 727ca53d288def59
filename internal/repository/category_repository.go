package repository

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/WunderTransportTechnologies/ultimate-todo/internal/model"
)

// defaultCategories is the starter set created for a new user.
var defaultCategories = []model.Category{
	{Name: "Work", Color: "#4f46e5"},
	{Name: "Personal", Color: "#10b981"},
	{Name: "Shopping", Color: "#f59e0b"},
	{Name: "Health", Color: "#ef4444"},
}

// CategoryRepository manages todo categories, scoped to the owning user.
type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Create writes a new category and returns the stored entity with its
// assigned id.
func (r *CategoryRepository) Create(ctx context.Context, category model.Category) (model.Category, error) {
	rec := newCategoryRecord(category)
	rec.ID = uuid.NewString()
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return model.Category{}, fmt.Errorf("create category: %w", err)
	}
	return categoryFromRecord(rec), nil
}

// Update merges fields into an existing category.
func (r *CategoryRepository) Update(ctx context.Context, userID, id string, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Model(&categoryRecord{}).
		Where("user_id = ? AND id = ?", userID, id).
		Updates(fields).Error; err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

// Delete removes a category. Todos referencing it keep their dangling
// category_id; nothing cascades.
func (r *CategoryRepository) Delete(ctx context.Context, userID, id string) error {
	if err := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, id).
		Delete(&categoryRecord{}).Error; err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// ListByUser returns the user's categories ordered by name.
func (r *CategoryRepository) ListByUser(ctx context.Context, userID string) ([]model.Category, error) {
	var recs []categoryRecord
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("name ASC").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	categories := make([]model.Category, len(recs))
	for i, rec := range recs {
		categories[i] = categoryFromRecord(rec)
	}
	return categories, nil
}

// GetByID returns the category, or nil when no such record exists for
// the user. Absence is not an error.
func (r *CategoryRepository) GetByID(ctx context.Context, userID, id string) (*model.Category, error) {
	var rec categoryRecord
	err := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, id).First(&rec).Error
	switch {
	case err == nil:
		category := categoryFromRecord(rec)
		return &category, nil
	case err == gorm.ErrRecordNotFound:
		return nil, nil
	default:
		return nil, fmt.Errorf("find category: %w", err)
	}
}

// SeedDefaults creates the starter categories for a user who has none
// yet. The zero-count check and the inserts are not transactionally
// guarded, so two concurrent calls for a fresh user can both seed.
// Creation is best effort per item: a failed insert is logged, not
// reported.
func (r *CategoryRepository) SeedDefaults(ctx context.Context, userID string) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&categoryRecord{}).
		Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return fmt.Errorf("count categories: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, category := range defaultCategories {
		category.UserID = userID
		if _, err := r.Create(ctx, category); err != nil {
			log.Printf("seed category %q for user %s: %v", category.Name, userID, err)
		}
	}
	return nil
}
