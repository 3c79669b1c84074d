package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequiresAPIKey(t *testing.T) {
	_, err := New("", "https://example.com", "model")
	assert.Error(t, err)
}

func TestCheckSentenceParsesJudgement(t *testing.T) {
	var gotAuth string
	var gotRequest ChatRequest
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotRequest))

		resp := map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{
					"content": `{"result": false, "reason": "The word does not fit here.", "fixedSentence": "A better sentence."}`,
				}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer ts.Close()

	client, err := New("key", ts.URL, "test-model")
	require.NoError(t, err)

	analysis, err := client.CheckSentence(context.Background(), "ubiquitous", "I ate an ubiquitous.")
	require.NoError(t, err)
	assert.False(t, analysis.Result)
	assert.Equal(t, "The word does not fit here.", analysis.Reason)
	assert.Equal(t, "A better sentence.", analysis.FixedSentence)

	assert.Equal(t, "Bearer key", gotAuth)
	assert.Equal(t, "test-model", gotRequest.Model)
	assert.Equal(t, "json_object", gotRequest.ResponseFormat.Type)
	require.Len(t, gotRequest.Messages, 2)
	assert.Contains(t, gotRequest.Messages[1].Content, "ubiquitous")
}

func TestCheckSentenceSurfacesAPIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{"message": "rate limited"},
		})
	}))
	defer ts.Close()

	client, err := New("key", ts.URL, "test-model")
	require.NoError(t, err)

	_, err = client.CheckSentence(context.Background(), "word", "sentence")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limited")
}

func TestCheckSentenceRejectsMalformedContent(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": "not json"}},
			},
		})
	}))
	defer ts.Close()

	client, err := New("key", ts.URL, "test-model")
	require.NoError(t, err)

	_, err = client.CheckSentence(context.Background(), "word", "sentence")
	assert.Error(t, err)
}
