package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/example/wordday/pkg/models"
)

// WordRepository handles database operations for the word catalog
type WordRepository struct {
	db *DB
}

// NewWordRepository creates a new repository instance
func NewWordRepository(db *DB) *WordRepository {
	return &WordRepository{db: db}
}

// All returns every word in the catalog
func (r *WordRepository) All(ctx context.Context) ([]models.Word, error) {
	words := []models.Word{}
	err := r.db.SelectContext(ctx, &words, "SELECT * FROM words ORDER BY word")
	if err != nil {
		return nil, fmt.Errorf("failed to get words: %w", err)
	}
	return words, nil
}

// ByID returns a word by ID, or nil if no such word exists
func (r *WordRepository) ByID(ctx context.Context, id int64) (*models.Word, error) {
	var word models.Word
	err := r.db.GetContext(ctx, &word, r.db.Rebind("SELECT * FROM words WHERE id = ?"), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get word by ID: %w", err)
	}
	return &word, nil
}

// ByText returns a word by its primary text, or nil if no such word exists
func (r *WordRepository) ByText(ctx context.Context, text string) (*models.Word, error) {
	var word models.Word
	err := r.db.GetContext(ctx, &word, r.db.Rebind("SELECT * FROM words WHERE word = ?"), text)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get word by text: %w", err)
	}
	return &word, nil
}

// ByIDs returns the words matching the given IDs. Unknown IDs are skipped;
// result order is unspecified.
func (r *WordRepository) ByIDs(ctx context.Context, ids []int64) ([]models.Word, error) {
	if len(ids) == 0 {
		return []models.Word{}, nil
	}

	query, args, err := sqlx.In("SELECT * FROM words WHERE id IN (?)", ids)
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	words := []models.Word{}
	err = r.db.SelectContext(ctx, &words, r.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get words by IDs: %w", err)
	}
	return words, nil
}

// RandomSampleExcluding returns up to count words drawn uniformly at random
// from the catalog, excluding the given IDs. Fewer than count matches returns
// all of them.
func (r *WordRepository) RandomSampleExcluding(ctx context.Context, exclude []int64, count int) ([]models.Word, error) {
	if count <= 0 {
		return []models.Word{}, nil
	}

	var (
		query string
		args  []interface{}
		err   error
	)
	if len(exclude) == 0 {
		query = "SELECT * FROM words ORDER BY RANDOM() LIMIT ?"
		args = []interface{}{count}
	} else {
		query, args, err = sqlx.In("SELECT * FROM words WHERE id NOT IN (?) ORDER BY RANDOM() LIMIT ?", exclude, count)
		if err != nil {
			return nil, fmt.Errorf("failed to build query: %w", err)
		}
	}

	words := []models.Word{}
	err = r.db.SelectContext(ctx, &words, r.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get random words: %w", err)
	}
	return words, nil
}

// Create inserts a new word
func (r *WordRepository) Create(ctx context.Context, word *models.Word) error {
	if word.CreatedAt.IsZero() {
		word.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO words (word, definition, pronunciation, examples, translations, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	if r.db.DriverName() == "postgres" {
		query = r.db.Rebind(query + " RETURNING id")
		return r.db.QueryRowContext(
			ctx, query,
			word.Word, word.Definition, word.Pronunciation,
			word.Examples, word.Translations, word.CreatedAt,
		).Scan(&word.ID)
	}

	result, err := r.db.ExecContext(
		ctx, query,
		word.Word, word.Definition, word.Pronunciation,
		word.Examples, word.Translations, word.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create word: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %w", err)
	}
	word.ID = id
	return nil
}

// ExistingTexts reports which of the given primary texts are already present
// in the catalog.
func (r *WordRepository) ExistingTexts(ctx context.Context, texts []string) (map[string]bool, error) {
	existing := make(map[string]bool)
	if len(texts) == 0 {
		return existing, nil
	}

	query, args, err := sqlx.In("SELECT word FROM words WHERE word IN (?)", texts)
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var found []string
	err = r.db.SelectContext(ctx, &found, r.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing words: %w", err)
	}
	for _, w := range found {
		existing[w] = true
	}
	return existing, nil
}
