package repository

import (
	"time"

	"github.com/WunderTransportTechnologies/ultimate-todo/internal/model"
)

// todoRecord is the persisted shape of a todo. The id and both
// timestamps are store-managed: the repository assigns the id and GORM
// stamps created_at/updated_at at write time, so clients never supply
// them.
type todoRecord struct {
	ID          string `gorm:"primaryKey"`
	UserID      string `gorm:"index"`
	CategoryID  string `gorm:"index"`
	Title       string
	Description string
	Status      string `gorm:"index"`
	Priority    string `gorm:"index"`
	DueDate     *time.Time
	CreatedAt   time.Time `gorm:"index"`
	UpdatedAt   time.Time
}

func (todoRecord) TableName() string { return "todos" }

type categoryRecord struct {
	ID        string `gorm:"primaryKey"`
	UserID    string `gorm:"index"`
	Name      string `gorm:"index"`
	Color     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (categoryRecord) TableName() string { return "categories" }

type userRecord struct {
	ID             string `gorm:"primaryKey"`
	Email          string `gorm:"uniqueIndex"`
	DisplayName    string
	PasswordHash   string
	TelegramChatID int64
	LastLoginAt    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (userRecord) TableName() string { return "users" }

// newTodoRecord strips the store-managed fields from an entity.
func newTodoRecord(t model.Todo) todoRecord {
	return todoRecord{
		UserID:      t.UserID,
		CategoryID:  t.CategoryID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		DueDate:     t.DueDate,
	}
}

// todoFromRecord converts a persisted record back to the entity shape.
// A zero timestamp (a write whose stamp has not resolved yet) falls
// back to the read time; conversion never fails.
func todoFromRecord(rec todoRecord) model.Todo {
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	updatedAt := rec.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}
	return model.Todo{
		ID:          rec.ID,
		Title:       rec.Title,
		Description: rec.Description,
		Status:      model.Status(rec.Status),
		Priority:    model.Priority(rec.Priority),
		DueDate:     rec.DueDate,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
		UserID:      rec.UserID,
		CategoryID:  rec.CategoryID,
	}
}

func newCategoryRecord(c model.Category) categoryRecord {
	return categoryRecord{
		UserID: c.UserID,
		Name:   c.Name,
		Color:  c.Color,
	}
}

// categoryFromRecord drops the record's timestamps; the category
// entity does not carry them.
func categoryFromRecord(rec categoryRecord) model.Category {
	return model.Category{
		ID:     rec.ID,
		Name:   rec.Name,
		Color:  rec.Color,
		UserID: rec.UserID,
	}
}

func newUserRecord(u model.User) userRecord {
	return userRecord{
		Email:          u.Email,
		DisplayName:    u.DisplayName,
		PasswordHash:   u.PasswordHash,
		TelegramChatID: u.TelegramChatID,
		LastLoginAt:    u.LastLoginAt,
	}
}

func userFromRecord(rec userRecord) model.User {
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	return model.User{
		ID:             rec.ID,
		Email:          rec.Email,
		DisplayName:    rec.DisplayName,
		PasswordHash:   rec.PasswordHash,
		TelegramChatID: rec.TelegramChatID,
		CreatedAt:      createdAt,
		LastLoginAt:    rec.LastLoginAt,
	}
}
