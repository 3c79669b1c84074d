package main

import (
	"context"
	"flag"
	"log"

	"github.com/example/wordday/internal/auth"
	"github.com/example/wordday/internal/config"
	"github.com/example/wordday/internal/database"
	"github.com/example/wordday/pkg/models"
)

func main() {
	var (
		username       = flag.String("username", "", "username for the new user")
		password       = flag.String("password", "", "password for the new user")
		telegramChatID = flag.Int64("telegram-chat-id", 0, "optional Telegram chat ID for reminders")
		reminderHour   = flag.Int("reminder-hour", -1, "hour of day (0-23) for reminders in the reference timezone, -1 disables")
	)
	flag.Parse()

	if *username == "" || *password == "" {
		log.Fatal("-username and -password are required")
	}
	if *reminderHour < -1 || *reminderHour > 23 {
		log.Fatalf("invalid reminder hour %d", *reminderHour)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	users := database.NewUserRepository(db)
	ctx := context.Background()

	existing, err := users.ByUsername(ctx, *username)
	if err != nil {
		log.Fatalf("Failed to look up user: %v", err)
	}
	if existing != nil {
		log.Fatalf("User %q already exists", *username)
	}

	hash, err := auth.HashPassword(*password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	user := &models.User{
		Username:       *username,
		PasswordHash:   hash,
		TelegramChatID: *telegramChatID,
		ReminderHour:   *reminderHour,
	}
	if err := users.Create(ctx, user); err != nil {
		log.Fatalf("Failed to create user: %v", err)
	}
	log.Printf("Created user %q (id %d)", user.Username, user.ID)
}
