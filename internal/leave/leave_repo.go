package leave

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

// sqlExecer dipenuhi oleh *sql.DB maupun *sql.Tx sehingga query yang
// sensitif transaksi (locking, cek kuota, tulis) bisa berjalan di dalam
// transaksi yang sama dengan commit-nya.
type sqlExecer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	// LockEmployee takes a row lock on the employee so concurrent leave
	// writes for the same employee serialize. Returns false when the
	// employee does not exist.
	LockEmployee(ctx context.Context, employeeID string) (bool, error)

	Create(ctx context.Context, l *Leave) error
	Update(ctx context.Context, l *Leave) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Leave, error)

	FindAll(ctx context.Context) ([]Leave, error)
	FindByEmployee(ctx context.Context, employeeID string) ([]Leave, error)

	// FindIntersectingYear and FindIntersectingMonth return the employee's
	// leaves whose closed interval shares at least one day with the given
	// calendar year/month. excludeID, when set, drops that record so an
	// update never collides with itself.
	FindIntersectingYear(ctx context.Context, employeeID string, year int, excludeID *string) ([]Leave, error)
	FindIntersectingMonth(ctx context.Context, employeeID string, year int, month time.Month, excludeID *string) ([]Leave, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) execer() sqlExecer {
	if r.tx != nil {
		return r.tx
	}
	sqlDB, err := r.db.DB()
	if err != nil {
		return brokenExecer{err: err}
	}
	return sqlDB
}

func (r *repository) LockEmployee(ctx context.Context, employeeID string) (bool, error) {
	query := `SELECT 1 FROM employees WHERE id = $1 FOR UPDATE`

	var one int
	err := r.execer().QueryRowContext(ctx, query, employeeID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *repository) Create(ctx context.Context, l *Leave) error {
	query := `
INSERT INTO leaves (id, employee_id, reason, start_date, end_date, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
RETURNING created_at, updated_at
`
	return r.execer().QueryRowContext(
		ctx, query,
		l.ID, l.EmployeeID, l.Reason, l.StartDate, l.EndDate,
	).Scan(&l.CreatedAt, &l.UpdatedAt)
}

func (r *repository) Update(ctx context.Context, l *Leave) error {
	query := `
UPDATE leaves
SET employee_id = $2, reason = $3, start_date = $4, end_date = $5, updated_at = NOW()
WHERE id = $1
RETURNING updated_at
`
	return r.execer().QueryRowContext(
		ctx, query,
		l.ID, l.EmployeeID, l.Reason, l.StartDate, l.EndDate,
	).Scan(&l.UpdatedAt)
}

func (r *repository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM leaves WHERE id = $1`
	result, err := r.execer().ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *repository) FindByID(ctx context.Context, id string) (*Leave, error) {
	query := leaveColumns + ` WHERE id = $1`

	var l Leave
	err := scanLeave(r.execer().QueryRowContext(ctx, query, id), &l)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repository) FindAll(ctx context.Context) ([]Leave, error) {
	var leaves []Leave
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Order("created_at DESC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string) ([]Leave, error) {
	var leaves []Leave
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("start_date DESC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindIntersectingYear(ctx context.Context, employeeID string, year int, excludeID *string) ([]Leave, error) {
	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	return r.findIntersecting(ctx, employeeID, yearStart, yearEnd, excludeID)
}

func (r *repository) FindIntersectingMonth(ctx context.Context, employeeID string, year int, month time.Month, excludeID *string) ([]Leave, error) {
	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)
	return r.findIntersecting(ctx, employeeID, monthStart, monthEnd, excludeID)
}

// Interval [start_date, end_date] beririsan dengan [lo, hi] persis ketika
// start_date <= hi dan end_date >= lo.
func (r *repository) findIntersecting(ctx context.Context, employeeID string, lo, hi time.Time, excludeID *string) ([]Leave, error) {
	query := leaveColumns + `
WHERE employee_id = $1
	AND start_date <= $2
	AND end_date >= $3
`
	args := []any{employeeID, hi, lo}
	if excludeID != nil && *excludeID != "" {
		query += ` AND id <> $4`
		args = append(args, *excludeID)
	}
	query += ` ORDER BY start_date ASC`

	rows, err := r.execer().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leaves []Leave
	for rows.Next() {
		var l Leave
		if err := rows.Scan(
			&l.ID, &l.EmployeeID, &l.Reason,
			&l.StartDate, &l.EndDate, &l.CreatedAt, &l.UpdatedAt,
		); err != nil {
			return nil, err
		}
		leaves = append(leaves, l)
	}
	return leaves, rows.Err()
}

const leaveColumns = `
SELECT id, employee_id, reason, start_date, end_date, created_at, updated_at
FROM leaves`

func scanLeave(row *sql.Row, l *Leave) error {
	return row.Scan(
		&l.ID, &l.EmployeeID, &l.Reason,
		&l.StartDate, &l.EndDate, &l.CreatedAt, &l.UpdatedAt,
	)
}

// brokenExecer hanya terpakai kalau pool *sql.DB di balik gorm gagal
// diambil, yang berarti koneksi sudah rusak total.
type brokenExecer struct{ err error }

func (b brokenExecer) ExecContext(context.Context, string, ...any) (sql.Result, error) {
	return nil, b.err
}

func (b brokenExecer) QueryContext(context.Context, string, ...any) (*sql.Rows, error) {
	return nil, b.err
}

func (b brokenExecer) QueryRowContext(context.Context, string, ...any) *sql.Row {
	return nil
}
