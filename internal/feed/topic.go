// internal/feed/topic.go
package feed

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedTopic marks a topic missing the unit segment. Messages on such
// topics are dropped rather than raised, so a bad publisher cannot take the
// dashboard down.
var ErrMalformedTopic = errors.New("feed: malformed topic")

// LogPattern builds the subscription pattern <root>/+/<experiment>/log where
// + matches exactly one path segment, the unit identifier.
func LogPattern(root, experiment string) string {
	return fmt.Sprintf("%s/+/%s/log", root, experiment)
}

// UnitFromTopic extracts the unit identifier, the second path segment of the
// topic. For "morbidostat/unit3/exp/log" the unit is "unit3".
func UnitFromTopic(topic string) (string, error) {
	parts := strings.Split(topic, "/")
	if len(parts) < 2 || parts[1] == "" {
		return "", fmt.Errorf("%w: %q", ErrMalformedTopic, topic)
	}
	return parts[1], nil
}
