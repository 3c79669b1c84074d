// Package ai evaluates free-text sentences against a target word using an
// OpenAI-compatible chat completions API.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/example/wordday/pkg/models"
)

// Client is a client for an OpenAI-compatible chat completions API
type Client struct {
	apiKey      string
	apiURL      string
	model       string
	temperature float64
	httpClient  *http.Client
}

// New creates an AI client. apiKey must not be empty.
func New(apiKey, apiURL, model string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("AI API key is not set")
	}
	return &Client{
		apiKey:      apiKey,
		apiURL:      apiURL,
		model:       model,
		temperature: 0.2,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// Message represents a message in the chat conversation
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

// ChatRequest represents a request to the chat completions API
type ChatRequest struct {
	Model          string         `json:"model"`
	Messages       []Message      `json:"messages"`
	Temperature    float64        `json:"temperature"`
	ResponseFormat responseFormat `json:"response_format"`
}

// ChatResponse represents a response from the chat completions API
type ChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

const systemPrompt = "You are an English vocabulary tutor. You judge whether a word is used " +
	"correctly in a sentence and reply with JSON only, using the keys " +
	`"result" (boolean), "reason" (string, simple words, 2 sentences maximum) and ` +
	`"fixedSentence" (a revised sentence using the word correctly, retaining as much ` +
	"meaning of the original as possible)."

// CheckSentence asks the model whether word is used correctly in sentence.
// The judgement is deliberately lenient: close-enough usage counts as
// correct.
func (c *Client) CheckSentence(ctx context.Context, word, sentence string) (*models.SentenceAnalysis, error) {
	prompt := fmt.Sprintf(
		"Is the word %q used correctly in this sentence: %q? Do not be strict, if it is fairly close just return correct.",
		word, sentence,
	)

	request := ChatRequest{
		Model: c.model,
		Messages: []Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature:    c.temperature,
		ResponseFormat: responseFormat{Type: "json_object"},
	}

	requestData, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewBuffer(requestData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	var response ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if response.Error != nil {
		return nil, fmt.Errorf("API error: %s", response.Error.Message)
	}
	if len(response.Choices) == 0 {
		return nil, fmt.Errorf("no response choices returned")
	}

	var analysis models.SentenceAnalysis
	if err := json.Unmarshal([]byte(response.Choices[0].Message.Content), &analysis); err != nil {
		return nil, fmt.Errorf("failed to parse analysis: %w", err)
	}
	return &analysis, nil
}
