package models

import "time"

// Assignment records the fact that a learner was shown a specific word.
// At most one assignment exists per (user, word) pair, for all time.
type Assignment struct {
	ID         int64     `json:"id" db:"id"`
	UserID     int64     `json:"user_id" db:"user_id"`
	WordID     int64     `json:"word_id" db:"word_id"`
	AssignedAt time.Time `json:"assigned_at" db:"assigned_at"`
}
