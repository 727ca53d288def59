package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/WunderTransportTechnologies/ultimate-todo/internal/model"
)

// UserRepository handles account records.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create writes a new user and returns the stored entity with its
// assigned id.
func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	rec := newUserRecord(user)
	rec.ID = uuid.NewString()
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return model.User{}, fmt.Errorf("create user: %w", err)
	}
	return userFromRecord(rec), nil
}

// FindByEmail returns the user, or nil when no account exists for the
// address.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var rec userRecord
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&rec).Error
	switch {
	case err == nil:
		user := userFromRecord(rec)
		return &user, nil
	case err == gorm.ErrRecordNotFound:
		return nil, nil
	default:
		return nil, fmt.Errorf("find user by email: %w", err)
	}
}

// FindByID returns the user, or nil when absent.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	var rec userRecord
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error
	switch {
	case err == nil:
		user := userFromRecord(rec)
		return &user, nil
	case err == gorm.ErrRecordNotFound:
		return nil, nil
	default:
		return nil, fmt.Errorf("find user: %w", err)
	}
}

// TouchLastLogin stamps the user's last successful sign-in.
func (r *UserRepository) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	if err := r.db.WithContext(ctx).Model(&userRecord{}).
		Where("id = ?", id).
		Update("last_login_at", at).Error; err != nil {
		return fmt.Errorf("touch last login: %w", err)
	}
	return nil
}

// SetTelegramChat links (or, with 0, unlinks) the chat that receives
// the daily digest.
func (r *UserRepository) SetTelegramChat(ctx context.Context, id string, chatID int64) error {
	if err := r.db.WithContext(ctx).Model(&userRecord{}).
		Where("id = ?", id).
		Update("telegram_chat_id", chatID).Error; err != nil {
		return fmt.Errorf("set telegram chat: %w", err)
	}
	return nil
}

// ListWithTelegramChat returns every user who linked a chat for digests.
func (r *UserRepository) ListWithTelegramChat(ctx context.Context) ([]model.User, error) {
	var recs []userRecord
	if err := r.db.WithContext(ctx).Where("telegram_chat_id <> 0").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("list users with telegram chat: %w", err)
	}
	users := make([]model.User, len(recs))
	for i, rec := range recs {
		users[i] = userFromRecord(rec)
	}
	return users, nil
}
