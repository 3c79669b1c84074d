package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/example/wordday/pkg/models"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Connect("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func createTestUser(t *testing.T, db *DB, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, PasswordHash: "x", ReminderHour: -1}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), user))
	return user
}

func createTestWord(t *testing.T, db *DB, text string) *models.Word {
	t.Helper()
	word := &models.Word{
		Word:          text,
		Definition:    "definition of " + text,
		Pronunciation: "/" + text + "/",
		Examples:      models.StringList{"An example with " + text + "."},
		Translations:  models.Translations{"ru": text + "-ru"},
		CreatedAt:     time.Now().UTC(),
	}
	require.NoError(t, NewWordRepository(db).Create(context.Background(), word))
	return word
}
