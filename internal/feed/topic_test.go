package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitFromTopic(t *testing.T) {
	tests := []struct {
		topic   string
		unit    string
		wantErr bool
	}{
		{"morbidostat/unit3/exp/log", "unit3", false},
		{"morbidostat/1/trial15/log", "1", false},
		{"pioreactor/worker2/exp1/log", "worker2", false},
		{"morbidostat", "", true},
		{"morbidostat/", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.topic, func(t *testing.T) {
			unit, err := UnitFromTopic(tt.topic)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrMalformedTopic)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.unit, unit)
		})
	}
}

func TestLogPattern(t *testing.T) {
	assert.Equal(t, "morbidostat/+/exp1/log", LogPattern("morbidostat", "exp1"))
	assert.Equal(t, "pioreactor/+/trial15/log", LogPattern("pioreactor", "trial15"))
}
