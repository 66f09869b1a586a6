package models

import "time"

type MessageType string

const (
	MessageUser MessageType = "user"
	MessageAI   MessageType = "ai"
)

// ChatMessage is one entry of the session-local transcript.
type ChatMessage struct {
	ID        string      `json:"id"`
	Type      MessageType `json:"type"`
	Content   string      `json:"content"`
	Timestamp time.Time   `json:"timestamp"`
}

type ChatRequest struct {
	Message   string `json:"message"`
	PatientID string `json:"patient_id,omitempty"`
}

type ChatResponse struct {
	Response  string    `json:"response"`
	Timestamp time.Time `json:"timestamp"`
}
