package models

import "github.com/google/uuid"

// LogEntry is one line of the analysis progress timeline.
type LogEntry struct {
	ID        uuid.UUID `json:"id"`
	Timestamp string    `json:"timestamp"`
	Message   string    `json:"message"`
}
