// Package notify delivers learner reminders. The Telegram notifier covers
// users who linked a chat ID; others are skipped silently.
package notify

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/example/wordday/pkg/models"
)

// TelegramNotifier sends reminders through a Telegram bot
type TelegramNotifier struct {
	bot *tgbotapi.BotAPI
}

// NewTelegram creates a Telegram notifier from a bot token
func NewTelegram(token string) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	return &TelegramNotifier{bot: bot}, nil
}

// SendReminder pings the user about their unopened words for today
func (n *TelegramNotifier) SendReminder(user models.User) error {
	if user.TelegramChatID == 0 {
		return nil
	}
	msg := tgbotapi.NewMessage(user.TelegramChatID,
		"Your words of the day are waiting for you. Open the app to see them!")
	if _, err := n.bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	return nil
}
