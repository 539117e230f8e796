package leave_test

import (
	"testing"
	"time"

	"github.com/ImanMustopaKamal/deptech-be/internal/leave"
	leaveerrors "github.com/ImanMustopaKamal/deptech-be/internal/leave/errors"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSpanDays(t *testing.T) {
	t.Run("single day counts as one", func(t *testing.T) {
		days, err := leave.SpanDays(date(2026, 3, 10), date(2026, 3, 10))
		assert.NoError(t, err)
		assert.Equal(t, 1, days)
	})

	t.Run("inclusive on both ends", func(t *testing.T) {
		days, err := leave.SpanDays(date(2026, 3, 1), date(2026, 3, 3))
		assert.NoError(t, err)
		assert.Equal(t, 3, days)
	})

	t.Run("crosses month boundary", func(t *testing.T) {
		days, err := leave.SpanDays(date(2026, 1, 30), date(2026, 2, 2))
		assert.NoError(t, err)
		assert.Equal(t, 4, days)
	})

	t.Run("crosses year boundary", func(t *testing.T) {
		days, err := leave.SpanDays(date(2025, 12, 30), date(2026, 1, 2))
		assert.NoError(t, err)
		assert.Equal(t, 4, days)
	})

	t.Run("leap february", func(t *testing.T) {
		days, err := leave.SpanDays(date(2024, 2, 28), date(2024, 3, 1))
		assert.NoError(t, err)
		assert.Equal(t, 3, days)
	})

	t.Run("time of day and zone are ignored", func(t *testing.T) {
		loc := time.FixedZone("WIB", 7*3600)
		start := time.Date(2026, 3, 1, 23, 30, 0, 0, loc)
		end := time.Date(2026, 3, 3, 0, 15, 0, 0, loc)
		days, err := leave.SpanDays(start, end)
		assert.NoError(t, err)
		assert.Equal(t, 3, days)
	})

	t.Run("negative inverted range", func(t *testing.T) {
		_, err := leave.SpanDays(date(2026, 3, 5), date(2026, 3, 4))
		assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateRange)
	})
}

func TestMonthKey(t *testing.T) {
	k := leave.MonthKeyOf(date(2026, 3, 15))
	assert.Equal(t, 2026, k.Year)
	assert.Equal(t, time.March, k.Month)
	assert.Equal(t, "2026-03", k.String())
}

func TestIntersectsMonth(t *testing.T) {
	t.Run("fully inside", func(t *testing.T) {
		assert.True(t, leave.IntersectsMonth(date(2026, 3, 10), date(2026, 3, 12), 2026, time.March))
	})

	t.Run("touches last day only", func(t *testing.T) {
		assert.True(t, leave.IntersectsMonth(date(2026, 3, 31), date(2026, 4, 2), 2026, time.March))
		assert.True(t, leave.IntersectsMonth(date(2026, 3, 31), date(2026, 4, 2), 2026, time.April))
	})

	t.Run("negative adjacent month", func(t *testing.T) {
		assert.False(t, leave.IntersectsMonth(date(2026, 4, 1), date(2026, 4, 3), 2026, time.March))
	})
}

func TestIntersectsYear(t *testing.T) {
	t.Run("spans new year", func(t *testing.T) {
		assert.True(t, leave.IntersectsYear(date(2025, 12, 30), date(2026, 1, 2), 2025))
		assert.True(t, leave.IntersectsYear(date(2025, 12, 30), date(2026, 1, 2), 2026))
	})

	t.Run("negative different year", func(t *testing.T) {
		assert.False(t, leave.IntersectsYear(date(2025, 6, 1), date(2025, 6, 5), 2026))
	})
}
