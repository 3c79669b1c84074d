package models

// SentenceAnalysis is the judgement returned by the AI sentence check
type SentenceAnalysis struct {
	// Result reports whether the word was used correctly
	Result bool `json:"result"`
	// Reason explains what was wrong when Result is false
	Reason string `json:"reason"`
	// FixedSentence is a revised sentence using the word correctly
	FixedSentence string `json:"fixedSentence"`
}
