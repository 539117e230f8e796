package leaveerrors

import (
	"fmt"
	"net/http"
	"time"

	"github.com/ImanMustopaKamal/deptech-be/internal/shared/apperror"
)

var (
	ErrInvalidLeaveID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid leave id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"start_date must be before or equal end_date",
		http.StatusBadRequest,
	)
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave not found",
		http.StatusNotFound,
	)
	ErrYearlyCapExceeded = apperror.New(
		apperror.CodeInvalidState,
		"employee cannot exceed the yearly leave day cap",
		http.StatusBadRequest,
	)
	ErrMonthlyLimitExceeded = apperror.New(
		apperror.CodeConflict,
		"employee can only take one leave per month",
		http.StatusConflict,
	)
	ErrPersistenceConflict = apperror.New(
		apperror.CodeServiceUnavailable,
		"storage is busy, please retry",
		http.StatusServiceUnavailable,
	)
)

// YearlyCapExceeded membawa cap dan total yang dicoba supaya caller bisa
// menjelaskan penolakan tanpa menghitung ulang.
func YearlyCapExceeded(cap, attempted int) *apperror.AppError {
	return ErrYearlyCapExceeded.WithDetails(map[string]int{
		"yearly_cap":      cap,
		"attempted_total": attempted,
	})
}

// MonthlyLimitExceeded membawa bulan yang sudah terisi.
func MonthlyLimitExceeded(year int, month time.Month) *apperror.AppError {
	return ErrMonthlyLimitExceeded.WithDetails(map[string]string{
		"month": fmt.Sprintf("%04d-%02d", year, int(month)),
	})
}
