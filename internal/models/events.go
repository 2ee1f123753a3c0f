package models

import (
	"time"
)

// StreamEvent represents one message pushed over the enhancement WebSocket
type StreamEvent struct {
	Type      string                 `json:"type"`
	ChainID   string                 `json:"chain_id,omitempty"`
	Technique string                 `json:"technique,omitempty"`
	Index     int                    `json:"index,omitempty"`
	Status    string                 `json:"status,omitempty"`
	Error     string                 `json:"error,omitempty"`
	Payload   map[string]interface{} `json:"payload,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

// Stream event types
const (
	StreamEventChainStarted  = "chain.started"
	StreamEventStepCompleted = "chain.step_completed"
	StreamEventStepFailed    = "chain.step_failed"
	StreamEventStepSkipped   = "chain.step_skipped"
	StreamEventChainFinished = "chain.finished"
	StreamEventError         = "error"
)
