package models

import (
	"time"

	"github.com/promptforge/prompt-studio/enhancer-api/internal/chain"
)

// EnhanceRequest represents the enhancement request payload
type EnhanceRequest struct {
	Text       string                            `json:"text"`
	Techniques []string                          `json:"techniques"`
	Intent     string                            `json:"intent,omitempty"`
	Complexity string                            `json:"complexity,omitempty"`
	Options    map[string]map[string]interface{} `json:"options,omitempty"`
}

// EnhanceResponse represents the enhancement response payload
type EnhanceResponse struct {
	EnhancementID  string                 `json:"enhancement_id,omitempty"`
	EnhancedPrompt string                 `json:"enhanced_prompt"`
	Intent         string                 `json:"intent"`
	Complexity     string                 `json:"complexity"`
	Metadata       chain.ResponseMetadata `json:"metadata"`
	Warnings       []string               `json:"warnings"`
}

// TechniqueListResponse represents the technique catalog payload
type TechniqueListResponse struct {
	Techniques []string `json:"techniques"`
}

// HistoryItem represents one enhancement in a history listing
type HistoryItem struct {
	ID             string    `json:"id"`
	OriginalPrompt string    `json:"original_prompt"`
	EnhancedPrompt string    `json:"enhanced_prompt"`
	Techniques     []string  `json:"techniques"`
	Intent         string    `json:"intent"`
	Complexity     string    `json:"complexity"`
	CreatedAt      time.Time `json:"created_at"`
}

// HistoryListResponse represents a page of enhancement history
type HistoryListResponse struct {
	Items  []HistoryItem `json:"items"`
	Limit  int           `json:"limit"`
	Offset int           `json:"offset"`
}
