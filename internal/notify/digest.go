package notify

import (
	"context"
	"log"
	"time"

	"github.com/WunderTransportTechnologies/ultimate-todo/internal/repository"
	"github.com/WunderTransportTechnologies/ultimate-todo/internal/service"
)

// Sender is the delivery channel for digests.
type Sender interface {
	Send(chatID int64, text string) error
}

// DigestSender fans the daily digest out to every user who linked a
// chat.
type DigestSender struct {
	users    *repository.UserRepository
	reminder *service.ReminderService
	sender   Sender
}

func NewDigestSender(users *repository.UserRepository, reminder *service.ReminderService, sender Sender) *DigestSender {
	return &DigestSender{users: users, reminder: reminder, sender: sender}
}

// SendAll builds and delivers one digest per linked user. A failure
// for one user is logged and does not stop the rest.
func (d *DigestSender) SendAll(ctx context.Context) error {
	users, err := d.users.ListWithTelegramChat(ctx)
	if err != nil {
		return err
	}

	now := time.Now()
	for _, user := range users {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		text, err := d.reminder.DailyDigest(ctx, user.ID, now)
		if err != nil {
			log.Printf("build digest for user %s: %v", user.ID, err)
			continue
		}
		if text == "" {
			continue
		}
		if err := d.sender.Send(user.TelegramChatID, text); err != nil {
			log.Printf("send digest to chat %d: %v", user.TelegramChatID, err)
		}
	}
	return nil
}
