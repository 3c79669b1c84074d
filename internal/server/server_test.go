package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/wordday/internal/auth"
	"github.com/example/wordday/internal/daily"
	"github.com/example/wordday/internal/database"
	"github.com/example/wordday/pkg/models"
)

type fakeChecker struct {
	analysis *models.SentenceAnalysis
}

func (f *fakeChecker) CheckSentence(ctx context.Context, word, sentence string) (*models.SentenceAnalysis, error) {
	return f.analysis, nil
}

func newTestServer(t *testing.T, checker SentenceChecker) *httptest.Server {
	t.Helper()
	db, err := database.Connect("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	words := database.NewWordRepository(db)
	assignments := database.NewAssignmentRepository(db)
	users := database.NewUserRepository(db)
	ctx := context.Background()

	hash, err := auth.HashPassword("hunter2")
	require.NoError(t, err)
	require.NoError(t, users.Create(ctx, &models.User{Username: "alice", PasswordHash: hash, ReminderHour: -1}))

	for _, text := range []string{"alpha", "bravo", "charlie"} {
		require.NoError(t, words.Create(ctx, &models.Word{Word: text}))
	}

	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	authService, err := auth.New(users, "test-secret", time.Hour)
	require.NoError(t, err)
	engine := daily.New(words, assignments, loc, 2)

	ts := httptest.NewServer(New(authService, engine, checker, false).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func login(t *testing.T, ts *httptest.Server) *http.Cookie {
	t.Helper()
	body := bytes.NewBufferString(`{"username": "alice", "password": "hunter2"}`)
	resp, err := http.Post(ts.URL+"/api/auth", "application/json", body)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	for _, c := range resp.Cookies() {
		if c.Name == auth.CookieName {
			assert.True(t, c.HttpOnly)
			return c
		}
	}
	t.Fatal("session cookie not set")
	return nil
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	ts := newTestServer(t, nil)

	body := bytes.NewBufferString(`{"username": "alice", "password": "wrong"}`)
	resp, err := http.Post(ts.URL+"/api/auth", "application/json", body)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestWordsRequiresSession(t *testing.T) {
	ts := newTestServer(t, nil)

	resp, err := http.Get(ts.URL + "/api/words")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestWordsReturnsDailyMaterial(t *testing.T) {
	ts := newTestServer(t, nil)
	cookie := login(t, ts)

	get := func() map[string]json.RawMessage {
		req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/words", nil)
		require.NoError(t, err)
		req.AddCookie(cookie)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var payload map[string]json.RawMessage
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
		return payload
	}

	payload := get()
	var today []models.Word
	require.NoError(t, json.Unmarshal(payload["words"], &today))
	assert.Len(t, today, 2)

	// a second request the same day returns the same words
	second := get()
	var again []models.Word
	require.NoError(t, json.Unmarshal(second["words"], &again))
	require.Len(t, again, 2)
	assert.ElementsMatch(t, []int64{today[0].ID, today[1].ID}, []int64{again[0].ID, again[1].ID})
}

func TestSentenceCheck(t *testing.T) {
	checker := &fakeChecker{analysis: &models.SentenceAnalysis{
		Result: true, Reason: "", FixedSentence: "",
	}}
	ts := newTestServer(t, checker)
	cookie := login(t, ts)

	body := bytes.NewBufferString(`{"word": "alpha", "sentence": "Alpha is first."}`)
	req, err := http.NewRequest(http.MethodPost, ts.URL+"/api/words/sentence-check", body)
	require.NoError(t, err)
	req.AddCookie(cookie)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var analysis models.SentenceAnalysis
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&analysis))
	assert.True(t, analysis.Result)
}

func TestSentenceCheckValidatesInput(t *testing.T) {
	ts := newTestServer(t, &fakeChecker{analysis: &models.SentenceAnalysis{}})
	cookie := login(t, ts)

	body := bytes.NewBufferString(`{"word": "", "sentence": "   "}`)
	req, err := http.NewRequest(http.MethodPost, ts.URL+"/api/words/sentence-check", body)
	require.NoError(t, err)
	req.AddCookie(cookie)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSentenceCheckUnavailableWithoutChecker(t *testing.T) {
	ts := newTestServer(t, nil)
	cookie := login(t, ts)

	body := bytes.NewBufferString(`{"word": "alpha", "sentence": "Alpha."}`)
	req, err := http.NewRequest(http.MethodPost, ts.URL+"/api/words/sentence-check", body)
	require.NoError(t, err)
	req.AddCookie(cookie)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestLogoutClearsCookie(t *testing.T) {
	ts := newTestServer(t, nil)

	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/api/auth", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	for _, c := range resp.Cookies() {
		if c.Name == auth.CookieName {
			assert.Empty(t, c.Value)
			assert.Less(t, c.MaxAge, 0)
			return
		}
	}
	t.Fatal("expected cleared session cookie")
}
