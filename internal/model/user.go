package model

import "time"

// User is an account that owns todos and categories.
type User struct {
	ID             string     `json:"id"`
	Email          string     `json:"email"`
	DisplayName    string     `json:"displayName,omitempty"`
	PasswordHash   string     `json:"-"`
	TelegramChatID int64      `json:"telegramChatId,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	LastLoginAt    *time.Time `json:"lastLoginAt,omitempty"`
}
