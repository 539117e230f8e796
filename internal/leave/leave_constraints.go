package leave

import (
	"context"
	"time"

	leaveerrors "github.com/ImanMustopaKamal/deptech-be/internal/leave/errors"
)

// YearlyLeaveDayCap is the maximum total leave days an employee may take
// within one calendar year.
const YearlyLeaveDayCap = 12

// evaluateConstraints menjalankan dua aturan kuota terhadap kandidat
// [startDate, endDate] untuk employee yang sudah di-lock:
//
//  1. total hari cuti pada tahun berjalan (cuti lama yang beririsan dengan
//     tahun itu + kandidat) tidak boleh melewati YearlyLeaveDayCap;
//  2. bulan awal kandidat belum boleh terisi cuti lain.
//
// excludeID, when set, keeps an update from colliding with the record it
// replaces. The evaluation year comes from now, not from the candidate.
func evaluateConstraints(
	ctx context.Context,
	repo Repository,
	employeeID string,
	startDate, endDate time.Time,
	excludeID *string,
	now time.Time,
) error {
	candidateDays, err := SpanDays(startDate, endDate)
	if err != nil {
		return err
	}

	currentYear := now.Year()
	existing, err := repo.FindIntersectingYear(ctx, employeeID, currentYear, excludeID)
	if err != nil {
		return err
	}

	attempted := candidateDays
	for _, l := range existing {
		days, err := SpanDays(l.StartDate, l.EndDate)
		if err != nil {
			return err
		}
		attempted += days
	}
	if attempted > YearlyLeaveDayCap {
		return leaveerrors.YearlyCapExceeded(YearlyLeaveDayCap, attempted)
	}

	// Hanya bulan awal kandidat yang dicek. Cuti lintas bulan tidak
	// dibandingkan dengan bulan akhirnya.
	month := MonthKeyOf(startDate)
	occupied, err := repo.FindIntersectingMonth(ctx, employeeID, month.Year, month.Month, excludeID)
	if err != nil {
		return err
	}
	if len(occupied) > 0 {
		return leaveerrors.MonthlyLimitExceeded(month.Year, month.Month)
	}

	return nil
}
