package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWordRoundTrip(t *testing.T) {
	db := newTestDB(t)
	repo := NewWordRepository(db)
	ctx := context.Background()

	created := createTestWord(t, db, "serendipity")
	require.NotZero(t, created.ID)

	got, err := repo.ByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "serendipity", got.Word)
	assert.Equal(t, created.Examples, got.Examples)
	assert.Equal(t, created.Translations, got.Translations)
}

func TestWordByIDMissing(t *testing.T) {
	db := newTestDB(t)
	repo := NewWordRepository(db)

	got, err := repo.ByID(context.Background(), 42)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestWordByTextMissing(t *testing.T) {
	db := newTestDB(t)
	repo := NewWordRepository(db)

	got, err := repo.ByText(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestWordByIDsEmptyInput(t *testing.T) {
	db := newTestDB(t)
	repo := NewWordRepository(db)

	words, err := repo.ByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, words)
}

func TestRandomSampleExcluding(t *testing.T) {
	db := newTestDB(t)
	repo := NewWordRepository(db)
	ctx := context.Background()

	var ids []int64
	for _, text := range []string{"alpha", "bravo", "charlie", "delta", "echo"} {
		ids = append(ids, createTestWord(t, db, text).ID)
	}

	t.Run("caps at count", func(t *testing.T) {
		sample, err := repo.RandomSampleExcluding(ctx, nil, 3)
		require.NoError(t, err)
		assert.Len(t, sample, 3)
	})

	t.Run("honors exclusions", func(t *testing.T) {
		exclude := ids[:4]
		sample, err := repo.RandomSampleExcluding(ctx, exclude, 5)
		require.NoError(t, err)
		require.Len(t, sample, 1)
		assert.Equal(t, ids[4], sample[0].ID)
	})

	t.Run("fewer matches than count returns all", func(t *testing.T) {
		sample, err := repo.RandomSampleExcluding(ctx, ids[:3], 10)
		require.NoError(t, err)
		assert.Len(t, sample, 2)
	})

	t.Run("everything excluded returns empty", func(t *testing.T) {
		sample, err := repo.RandomSampleExcluding(ctx, ids, 2)
		require.NoError(t, err)
		assert.Empty(t, sample)
	})

	t.Run("non-positive count returns empty", func(t *testing.T) {
		sample, err := repo.RandomSampleExcluding(ctx, nil, 0)
		require.NoError(t, err)
		assert.Empty(t, sample)
	})
}

func TestExistingTexts(t *testing.T) {
	db := newTestDB(t)
	repo := NewWordRepository(db)
	ctx := context.Background()

	createTestWord(t, db, "known")

	existing, err := repo.ExistingTexts(ctx, []string{"known", "unknown"})
	require.NoError(t, err)
	assert.True(t, existing["known"])
	assert.False(t, existing["unknown"])
}
