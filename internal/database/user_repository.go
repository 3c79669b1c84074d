package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/example/wordday/pkg/models"
)

// UserRepository handles database operations for users
type UserRepository struct {
	db *DB
}

// NewUserRepository creates a new repository instance
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

// ByUsername returns a user by username, or nil if no such user exists
func (r *UserRepository) ByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, r.db.Rebind("SELECT * FROM users WHERE username = ?"), username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return &user, nil
}

// ByID returns a user by ID, or nil if no such user exists
func (r *UserRepository) ByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, r.db.Rebind("SELECT * FROM users WHERE id = ?"), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return &user, nil
}

// Create inserts a new user
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO users (username, password_hash, telegram_chat_id, reminder_hour, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	if r.db.DriverName() == "postgres" {
		query = r.db.Rebind(query + " RETURNING id")
		return r.db.QueryRowContext(
			ctx, query,
			user.Username, user.PasswordHash, user.TelegramChatID, user.ReminderHour, user.CreatedAt,
		).Scan(&user.ID)
	}

	result, err := r.db.ExecContext(
		ctx, query,
		user.Username, user.PasswordHash, user.TelegramChatID, user.ReminderHour, user.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %w", err)
	}
	user.ID = id
	return nil
}

// WithRemindersAt returns users whose reminder hour matches the given hour
func (r *UserRepository) WithRemindersAt(ctx context.Context, hour int) ([]models.User, error) {
	users := []models.User{}
	query := r.db.Rebind("SELECT * FROM users WHERE reminder_hour = ?")
	err := r.db.SelectContext(ctx, &users, query, hour)
	if err != nil {
		return nil, fmt.Errorf("failed to get users for reminders: %w", err)
	}
	return users, nil
}
