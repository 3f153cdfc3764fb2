// internal/model/log.go
package model

import "time"

// LogEntry represents a single log record received from a bioreactor unit
type LogEntry struct {
	Timestamp time.Time
	Unit      string
	Level     string // "DEBUG", "INFO", "WARNING", "ERROR" or "" when unknown
	Task      string // originating background job, when the payload carries one
	Message   string
}
