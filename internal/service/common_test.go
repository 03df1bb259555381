package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePage(t *testing.T) {
	cases := []struct {
		name         string
		page, size   int
		wantPage     int
		wantPageSize int
	}{
		{"defaults applied", 0, 0, 1, 10},
		{"negative page clamps to first", -3, 5, 1, 5},
		{"oversized page size capped", 2, 5000, 2, 100},
		{"in-range untouched", 3, 25, 3, 25},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			page, size := normalizePage(tc.page, tc.size, 10, 100)
			assert.Equal(t, tc.wantPage, page)
			assert.Equal(t, tc.wantPageSize, size)
		})
	}
}

func TestDaysUntil(t *testing.T) {
	now := time.Date(2025, 3, 14, 23, 59, 0, 0, time.UTC)

	assert.Equal(t, 0, daysUntil(now, time.Date(2025, 3, 14, 0, 1, 0, 0, time.UTC)))
	assert.Equal(t, 1, daysUntil(now, time.Date(2025, 3, 15, 0, 1, 0, 0, time.UTC)))
	assert.Equal(t, 10, daysUntil(now, time.Date(2025, 3, 24, 12, 0, 0, 0, time.UTC)))
	assert.Equal(t, -4, daysUntil(now, time.Date(2025, 3, 10, 22, 0, 0, 0, time.UTC)))
}

func TestGenerateTaskCode(t *testing.T) {
	now := time.Date(2025, 3, 14, 9, 30, 45, 0, time.UTC)

	code := generateTaskCode(now)
	assert.Regexp(t, `^TASK-20250314093045-[0-9a-f]{8}$`, code)
	assert.NotEqual(t, code, generateTaskCode(now))
}
