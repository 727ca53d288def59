package notify

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramNotifier delivers digest messages to linked chats.
type TelegramNotifier struct {
	api *tgbotapi.BotAPI
}

func NewTelegramNotifier(token string) (*TelegramNotifier, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram api: %w", err)
	}
	return &TelegramNotifier{api: api}, nil
}

func (n *TelegramNotifier) Send(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := n.api.Send(msg); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}
