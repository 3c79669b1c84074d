package models

import "time"

// User represents a registered learner
type User struct {
	ID             int64     `json:"id" db:"id"`
	Username       string    `json:"username" db:"username"`
	PasswordHash   string    `json:"-" db:"password_hash"`
	TelegramChatID int64     `json:"telegram_chat_id,omitempty" db:"telegram_chat_id"` // 0 when not linked
	ReminderHour   int       `json:"reminder_hour" db:"reminder_hour"`                 // hour of day (0-23) in the reference timezone, -1 disables reminders
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}
