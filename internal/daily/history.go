package daily

import (
	"context"
	"fmt"

	"github.com/example/wordday/pkg/models"
)

// projectHistory resolves assignment records to full words in one batched
// fetch and pairs each word with its assignment time. Entries come back in
// ledger order (assigned_at ascending); any other ordering is a presentation
// concern layered on top.
func (e *Engine) projectHistory(ctx context.Context, records []models.Assignment) ([]HistoryEntry, error) {
	if len(records) == 0 {
		return []HistoryEntry{}, nil
	}

	ids := make([]int64, 0, len(records))
	for _, rec := range records {
		ids = append(ids, rec.WordID)
	}
	words, err := e.words.ByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve history words: %w", err)
	}

	byID := make(map[int64]models.Word, len(words))
	for _, w := range words {
		byID[w.ID] = w
	}

	entries := make([]HistoryEntry, 0, len(records))
	for _, rec := range records {
		word, ok := byID[rec.WordID]
		if !ok {
			// word removed from the catalog out of band; skip rather than fail
			continue
		}
		entries = append(entries, HistoryEntry{Word: word, AssignedAt: rec.AssignedAt})
	}
	return entries, nil
}
