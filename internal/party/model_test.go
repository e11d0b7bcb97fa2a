package party

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsRSVPOpen(t *testing.T) {
	deadline := time.Date(2024, 7, 25, 23, 59, 0, 0, time.UTC)

	tests := []struct {
		name   string
		active bool
		now    time.Time
		want   bool
	}{
		{"before deadline", true, deadline.Add(-time.Hour), true},
		{"exactly at deadline", true, deadline, false},
		{"after deadline", true, deadline.Add(time.Second), false},
		{"inactive party", false, deadline.Add(-time.Hour), false},
		{"non-UTC clock before deadline", true, deadline.Add(-time.Minute).In(time.FixedZone("PDT", -7*3600)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Party{IsActive: tt.active, RSVPDeadline: deadline}
			assert.Equal(t, tt.want, p.IsRSVPOpen(tt.now))
		})
	}
}

func TestAvailableSpots(t *testing.T) {
	assert.Equal(t, 46, AvailableSpots(50, 4))
	assert.Equal(t, 0, AvailableSpots(50, 50))
	assert.Equal(t, 0, AvailableSpots(50, 60))
}

func TestPublicNormalizesToUTC(t *testing.T) {
	zone := time.FixedZone("CEST", 2*3600)
	p := &Party{
		ID:           1,
		Title:        "Party",
		IsActive:     true,
		Date:         time.Date(2024, 7, 27, 21, 0, 0, 0, zone),
		RSVPDeadline: time.Date(2024, 7, 26, 1, 59, 0, 0, zone),
	}

	resp := p.Public(time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, time.UTC, resp.Date.Location())
	assert.Equal(t, 19, resp.Date.Hour())
	assert.Equal(t, time.UTC, resp.RSVPDeadline.Location())
	assert.True(t, resp.IsRSVPOpen)
}
