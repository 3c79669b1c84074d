// Package daily implements the daily word assignment engine: it decides,
// idempotently and safely under concurrent requests, which words a learner
// gets today and reconstructs what they were shown before today.
package daily

import (
	"context"
	"fmt"
	"time"

	"github.com/example/wordday/internal/database"
	"github.com/example/wordday/internal/dayrange"
	"github.com/example/wordday/pkg/models"
)

// Material is the learner-facing answer to "what are my words today"
type Material struct {
	// Today holds the words assigned for the current day. Empty when the
	// learner has exhausted the catalog.
	Today []models.Word `json:"words"`
	// History holds words assigned before today, oldest first
	History []HistoryEntry `json:"previousWords"`
}

// HistoryEntry pairs a previously assigned word with its assignment time
type HistoryEntry struct {
	models.Word
	AssignedAt time.Time `json:"assigned_at"`
}

// Engine orchestrates the clock, the word catalog and the assignment ledger.
// It holds no mutable state of its own; concurrency safety comes entirely
// from the ledger's uniqueness constraint and duplicate-tolerant writes.
type Engine struct {
	words       *database.WordRepository
	assignments *database.AssignmentRepository
	loc         *time.Location
	wordsPerDay int
	now         func() time.Time
}

// New creates an engine. loc is the reference timezone for day boundaries;
// wordsPerDay is how many new words a learner receives on a fresh day.
func New(words *database.WordRepository, assignments *database.AssignmentRepository, loc *time.Location, wordsPerDay int) *Engine {
	return &Engine{
		words:       words,
		assignments: assignments,
		loc:         loc,
		wordsPerDay: wordsPerDay,
		now:         time.Now,
	}
}

// WithClock overrides the engine's wall clock. Intended for tests.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// TodaysMaterial returns the learner's words for the current day plus their
// assignment history from before today.
//
// If the learner already has assignments inside today's window those exact
// words are returned (a refresh mid-day never re-samples). Otherwise up to
// wordsPerDay words the learner has never seen are sampled uniformly at
// random and recorded in the ledger. A concurrent identical request may race
// the write; the duplicate-tolerant insert absorbs the overlap and this call
// still returns its own sample, which by construction excludes everything
// the learner had seen at sampling time.
func (e *Engine) TodaysMaterial(ctx context.Context, learnerID int64) (*Material, error) {
	dayStart, dayEnd := dayrange.Window(e.now(), e.loc)

	records, err := e.assignments.AllForLearner(ctx, learnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load assignment ledger: %w", err)
	}

	var today, before []models.Assignment
	for _, rec := range records {
		switch {
		case dayrange.Contains(rec.AssignedAt, dayStart, dayEnd):
			today = append(today, rec)
		case rec.AssignedAt.Before(dayStart):
			before = append(before, rec)
		default:
			// assigned_at beyond today's window means clock skew; such
			// records belong to neither partition
		}
	}

	var todayWords []models.Word
	if len(today) > 0 {
		todayWords, err = e.resolveToday(ctx, today)
		if err != nil {
			return nil, err
		}
	} else if e.wordsPerDay > 0 {
		todayWords, err = e.assignFresh(ctx, learnerID, records)
		if err != nil {
			return nil, err
		}
	}
	if todayWords == nil {
		todayWords = []models.Word{}
	}

	history, err := e.projectHistory(ctx, before)
	if err != nil {
		return nil, err
	}

	return &Material{Today: todayWords, History: history}, nil
}

// resolveToday re-reads the words already assigned inside today's window
func (e *Engine) resolveToday(ctx context.Context, today []models.Assignment) ([]models.Word, error) {
	ids := make([]int64, 0, len(today))
	for _, rec := range today {
		ids = append(ids, rec.WordID)
	}
	words, err := e.words.ByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve today's words: %w", err)
	}
	return words, nil
}

// assignFresh samples unseen words and records them as today's assignment.
// records must be the learner's full ledger; every word id in it is excluded
// from the sample.
func (e *Engine) assignFresh(ctx context.Context, learnerID int64, records []models.Assignment) ([]models.Word, error) {
	seen := make([]int64, 0, len(records))
	for _, rec := range records {
		seen = append(seen, rec.WordID)
	}

	sample, err := e.words.RandomSampleExcluding(ctx, seen, e.wordsPerDay)
	if err != nil {
		return nil, fmt.Errorf("failed to sample new words: %w", err)
	}
	if len(sample) == 0 {
		// catalog exhausted, not an error
		return sample, nil
	}

	ids := make([]int64, 0, len(sample))
	for _, w := range sample {
		ids = append(ids, w.ID)
	}
	if _, err := e.assignments.RecordMany(ctx, learnerID, ids, e.now()); err != nil {
		return nil, fmt.Errorf("failed to record today's assignment: %w", err)
	}

	// A racing request may have written a different sample first; both are
	// valid and both end up in the ledger. Returning this call's sample is
	// accepted as a benign race outcome.
	return sample, nil
}
