package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRentalDays(t *testing.T) {
	cases := []struct {
		duration string
		want     int
	}{
		{"30 Ngày", 30},
		{"7 days", 7},
		{"365", 365},
		{"1 Tháng", 1},
		{"lifetime", 30},
		{"", 30},
		{"-5 days", 30},
	}
	for _, tc := range cases {
		p := Product{Duration: tc.duration}
		assert.Equal(t, tc.want, p.RentalDays(), "duration %q", tc.duration)
	}
}

func TestOrderResponseExpiry(t *testing.T) {
	active := Order{ExpiresAt: time.Now().Add(24 * time.Hour)}
	assert.False(t, active.ToResponse().IsExpired)

	expired := Order{ExpiresAt: time.Now().Add(-time.Minute)}
	assert.True(t, expired.ToResponse().IsExpired)
}
