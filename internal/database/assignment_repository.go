package database

import (
	"context"
	"fmt"
	"time"

	"github.com/example/wordday/pkg/models"
)

// RecordOutcome reports the result of one record in a batch insert
type RecordOutcome struct {
	WordID   int64
	Inserted bool // false when the (user, word) pair already existed
}

// AssignmentRepository owns the write path for assignment records. The
// UNIQUE(user_id, word_id) constraint is the exactly-once guarantee; the
// repository never updates or deletes records.
type AssignmentRepository struct {
	db *DB
}

// NewAssignmentRepository creates a new repository instance
func NewAssignmentRepository(db *DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// RecordMany inserts one assignment per word with duplicate-tolerant
// semantics: records whose (user, word) pair already exists are reported as
// not inserted and the rest of the batch still persists. Two concurrent
// first-of-the-day requests can therefore both attempt the same batch
// without either failing. Any error other than a uniqueness conflict aborts
// the batch and is returned.
func (r *AssignmentRepository) RecordMany(ctx context.Context, userID int64, wordIDs []int64, at time.Time) ([]RecordOutcome, error) {
	// store UTC so textual timestamp comparisons in SQLite stay chronological
	at = at.UTC()
	outcomes := make([]RecordOutcome, 0, len(wordIDs))

	query := r.db.Rebind(`
		INSERT INTO assignments (user_id, word_id, assigned_at)
		VALUES (?, ?, ?)
		ON CONFLICT (user_id, word_id) DO NOTHING
	`)

	for _, wordID := range wordIDs {
		result, err := r.db.ExecContext(ctx, query, userID, wordID, at)
		if err != nil {
			return outcomes, fmt.Errorf("failed to record assignment: %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return outcomes, fmt.Errorf("failed to read insert outcome: %w", err)
		}
		outcomes = append(outcomes, RecordOutcome{WordID: wordID, Inserted: affected > 0})
	}
	return outcomes, nil
}

// AllForLearner returns every assignment record for the given learner,
// ordered by assigned_at ascending.
func (r *AssignmentRepository) AllForLearner(ctx context.Context, userID int64) ([]models.Assignment, error) {
	records := []models.Assignment{}
	query := r.db.Rebind(`
		SELECT * FROM assignments
		WHERE user_id = ?
		ORDER BY assigned_at ASC, id ASC
	`)
	err := r.db.SelectContext(ctx, &records, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get assignments: %w", err)
	}
	return records, nil
}

// CountBetween returns how many assignments the learner has with assigned_at
// in [start, end).
func (r *AssignmentRepository) CountBetween(ctx context.Context, userID int64, start, end time.Time) (int, error) {
	var count int
	query := r.db.Rebind(`
		SELECT COUNT(*) FROM assignments
		WHERE user_id = ? AND assigned_at >= ? AND assigned_at < ?
	`)
	err := r.db.GetContext(ctx, &count, query, userID, start.UTC(), end.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to count assignments: %w", err)
	}
	return count, nil
}
