package tui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "exact", truncate("exact", 5))
	assert.Equal(t, "lon...", truncate("long-unit-name", 6))
}

func TestLastSeenLabel(t *testing.T) {
	now := time.Now()
	assert.Equal(t, "just now", lastSeenLabel(now, now.Add(-2*time.Second)))
	assert.Equal(t, "30s ago", lastSeenLabel(now, now.Add(-30*time.Second)))
	assert.Equal(t, "5m ago", lastSeenLabel(now, now.Add(-5*time.Minute)))
	assert.Equal(t, "3h ago", lastSeenLabel(now, now.Add(-3*time.Hour)))
}

func TestRenderSparklineWidth(t *testing.T) {
	// Empty data pads to the requested width
	assert.Equal(t, 10, len([]rune(renderSparkline(nil, 10))))

	// Long data is clipped to the requested width
	data := make([]float64, 50)
	for i := range data {
		data[i] = float64(i)
	}
	assert.Equal(t, 10, len([]rune(renderSparkline(data, 10))))

	// Short data is padded up to the requested width
	assert.Equal(t, 10, len([]rune(renderSparkline([]float64{1, 2, 3}, 10))))
}
