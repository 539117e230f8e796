package leave

import (
	"fmt"
	"time"

	leaveerrors "github.com/ImanMustopaKamal/deptech-be/internal/leave/errors"
)

// Semua perhitungan di file ini memakai aritmetika kalender: tanggal
// dinormalisasi ke tengah malam UTC dulu, sehingga representasi timezone
// atau DST dari "midnight" tidak pernah menggeser jumlah hari.

func toDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SpanDays returns the inclusive day count of [start, end].
// SpanDays(d, d) == 1. Fails when end is before start.
func SpanDays(start, end time.Time) (int, error) {
	s := toDate(start)
	e := toDate(end)
	if e.Before(s) {
		return 0, leaveerrors.ErrInvalidDateRange
	}
	return int(e.Sub(s).Hours()/24) + 1, nil
}

// MonthKey identifies a calendar month for the one-leave-per-month rule.
type MonthKey struct {
	Year  int
	Month time.Month
}

func (k MonthKey) String() string {
	return fmt.Sprintf("%04d-%02d", k.Year, int(k.Month))
}

func MonthKeyOf(t time.Time) MonthKey {
	return MonthKey{Year: t.Year(), Month: t.Month()}
}

// IntersectsMonth reports whether the closed interval [start, end] shares
// at least one day with the given calendar month.
func IntersectsMonth(start, end time.Time, year int, month time.Month) bool {
	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)
	return !toDate(end).Before(monthStart) && !toDate(start).After(monthEnd)
}

// IntersectsYear reports whether the closed interval [start, end] shares
// at least one day with the given calendar year.
func IntersectsYear(start, end time.Time, year int) bool {
	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	return !toDate(end).Before(yearStart) && !toDate(start).After(yearEnd)
}
