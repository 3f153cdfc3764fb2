// internal/feed/payload.go
package feed

import (
	"encoding/json"
	"strings"
	"time"
)

// structured payload published by the pioreactor-style JSON log formatter
type jsonPayload struct {
	Message   string `json:"message"`
	Level     string `json:"level"`
	Task      string `json:"task"`
	Timestamp string `json:"timestamp"`
}

// parsePayload decodes a log payload. Structured JSON payloads carry the
// message, a level, the publishing task and an embedded timestamp; anything
// else is treated as an opaque display string. received is used whenever the
// payload has no parseable timestamp of its own.
func parsePayload(payload []byte, received time.Time) (message, level, task string, ts time.Time) {
	ts = received
	message = strings.TrimSpace(string(payload))

	trimmed := strings.TrimSpace(string(payload))
	if !strings.HasPrefix(trimmed, "{") {
		return
	}

	var p jsonPayload
	if err := json.Unmarshal([]byte(trimmed), &p); err != nil || p.Message == "" {
		return
	}

	message = p.Message
	level = strings.ToUpper(p.Level)
	task = p.Task
	if p.Timestamp != "" {
		if parsed, err := time.Parse(time.RFC3339Nano, p.Timestamp); err == nil {
			ts = parsed
		}
	}
	return
}
