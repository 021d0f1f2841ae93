package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTTLUntilHalfHour(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want time.Duration
	}{
		{"top of hour", time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC), 30 * time.Minute},
		{"just before half", time.Date(2024, 6, 1, 12, 29, 0, 0, time.UTC), 1 * time.Minute},
		{"at half", time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC), 30 * time.Minute},
		{"just before hour", time.Date(2024, 6, 1, 12, 59, 0, 0, time.UTC), 1 * time.Minute},
		{"mid quarter", time.Date(2024, 6, 1, 12, 42, 0, 0, time.UTC), 18 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TTLUntilHalfHour(tt.now))
		})
	}
}

func TestKey(t *testing.T) {
	assert.Equal(t, "forecast:2801268", key(2801268))
}
