package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	employeeerrors "github.com/ImanMustopaKamal/deptech-be/internal/employee/errors"
	"github.com/ImanMustopaKamal/deptech-be/internal/events"
	leaveerrors "github.com/ImanMustopaKamal/deptech-be/internal/leave/errors"
	"github.com/ImanMustopaKamal/deptech-be/internal/messaging/kafka"
	"github.com/ImanMustopaKamal/deptech-be/internal/shared/apperror"
	"github.com/ImanMustopaKamal/deptech-be/internal/shared/clock"
	"github.com/ImanMustopaKamal/deptech-be/internal/shared/contextutil"

	"github.com/ImanMustopaKamal/deptech-be/internal/employee"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// maxTxAttempts membatasi retry saat dua admin menulis cuti employee yang
// sama dan database menolak salah satunya (serialization/deadlock).
const maxTxAttempts = 3

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateLeaveRequest) (LeaveResponse, error)
	GetAll(ctx context.Context) ([]LeaveResponse, error)
	GetByID(ctx context.Context, id string) (LeaveResponse, error)
	Update(ctx context.Context, id string, req UpdateLeaveRequest) (LeaveResponse, error)
	Delete(ctx context.Context, id string) error
	GetEmployeesWithLeaves(ctx context.Context) ([]EmployeeWithLeavesResponse, error)
}

type service struct {
	db           *sql.DB
	repo         Repository
	employeeRepo employee.Repository
	outbox       kafka.OutboxRepository
	clock        clock.Clock
	logger       *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	employeeRepo employee.Repository,
	clk clock.Clock,
	logger ...*zap.Logger,
) Service {
	return NewServiceWithOutbox(db, repo, employeeRepo, nil, clk, logger...)
}

// NewServiceWithOutbox menulis event leave.created / leave.deleted ke tabel
// outbox di transaksi yang sama, untuk dipublish worker Kafka.
func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	employeeRepo employee.Repository,
	outbox kafka.OutboxRepository,
	clk clock.Clock,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	if clk == nil {
		clk = clock.System()
	}
	return &service{
		db:           db,
		repo:         repo,
		employeeRepo: employeeRepo,
		outbox:       outbox,
		clock:        clk,
		logger:       l,
	}
}

func parseDate(value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func (s *service) Create(ctx context.Context, req CreateLeaveRequest) (LeaveResponse, error) {
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	if endDate.Before(startDate) {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateRange
	}

	var resp LeaveResponse
	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		resp, err = s.createTx(ctx, req, startDate, endDate)
		if err == nil || !isRetryableTxError(err) {
			return resp, err
		}
		s.logger.Warn("create leave hit storage contention",
			zap.Int("attempt", attempt),
			zap.String("employee_id", req.EmployeeID),
			zap.Error(err),
		)
	}
	return LeaveResponse{}, leaveerrors.ErrPersistenceConflict
}

func (s *service) createTx(ctx context.Context, req CreateLeaveRequest, startDate, endDate time.Time) (LeaveResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeaveResponse{}, apperror.Wrap(err, apperror.CodeInternalError, "failed to start transaction", http.StatusInternalServerError)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	// Lock baris employee dulu supaya evaluasi kuota dan insert di bawah
	// tidak balapan dengan penulisan cuti lain untuk employee yang sama.
	found, err := qtx.LockEmployee(ctx, req.EmployeeID)
	if err != nil {
		return LeaveResponse{}, err
	}
	if !found {
		return LeaveResponse{}, employeeerrors.ErrEmployeeNotFound
	}

	if err := evaluateConstraints(ctx, qtx, req.EmployeeID, startDate, endDate, nil, s.clock.Now()); err != nil {
		return LeaveResponse{}, err
	}

	l := &Leave{
		ID:         uuid.New(),
		EmployeeID: uuid.MustParse(req.EmployeeID),
		Reason:     req.Reason,
		StartDate:  startDate,
		EndDate:    endDate,
	}
	if err := qtx.Create(ctx, l); err != nil {
		return LeaveResponse{}, err
	}

	if err := s.enqueueCreatedEvent(ctx, tx, l); err != nil {
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return LeaveResponse{}, err
	}

	contextutil.GetLogger(ctx, s.logger).Info("leave created",
		zap.String("leave_id", l.ID.String()),
		zap.String("employee_id", l.EmployeeID.String()),
		zap.String("start_date", l.StartDate.Format(dateLayout)),
		zap.String("end_date", l.EndDate.Format(dateLayout)),
		zap.String("actor_id", contextutil.GetAdminID(ctx)),
	)

	return s.toResponse(l), nil
}

func (s *service) GetAll(ctx context.Context) ([]LeaveResponse, error) {
	leaves, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]LeaveResponse, 0, len(leaves))
	for i := range leaves {
		resp = append(resp, s.toResponse(&leaves[i]))
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (LeaveResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}

	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return LeaveResponse{}, mapLeaveLookupError(err)
	}
	return s.toResponse(l), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateLeaveRequest) (LeaveResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}

	var resp LeaveResponse
	var err error
	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		resp, err = s.updateTx(ctx, id, req)
		if err == nil || !isRetryableTxError(err) {
			return resp, err
		}
		s.logger.Warn("update leave hit storage contention",
			zap.Int("attempt", attempt),
			zap.String("leave_id", id),
			zap.Error(err),
		)
	}
	return LeaveResponse{}, leaveerrors.ErrPersistenceConflict
}

func (s *service) updateTx(ctx context.Context, id string, req UpdateLeaveRequest) (LeaveResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeaveResponse{}, apperror.Wrap(err, apperror.CodeInternalError, "failed to start transaction", http.StatusInternalServerError)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	existing, err := qtx.FindByID(ctx, id)
	if err != nil {
		return LeaveResponse{}, mapLeaveLookupError(err)
	}

	merged, err := mergeUpdate(existing, req)
	if err != nil {
		return LeaveResponse{}, err
	}

	found, err := qtx.LockEmployee(ctx, merged.EmployeeID.String())
	if err != nil {
		return LeaveResponse{}, err
	}
	if !found {
		return LeaveResponse{}, employeeerrors.ErrEmployeeNotFound
	}

	// Record yang sedang diganti dikecualikan dari evaluasi, kalau tidak
	// update tanpa mengubah tanggal akan menabrak dirinya sendiri.
	excludeID := id
	if err := evaluateConstraints(
		ctx, qtx,
		merged.EmployeeID.String(),
		merged.StartDate, merged.EndDate,
		&excludeID,
		s.clock.Now(),
	); err != nil {
		return LeaveResponse{}, err
	}

	if err := qtx.Update(ctx, merged); err != nil {
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return LeaveResponse{}, err
	}

	s.logger.Info("leave updated",
		zap.String("leave_id", merged.ID.String()),
		zap.String("employee_id", merged.EmployeeID.String()),
	)

	return s.toResponse(merged), nil
}

// mergeUpdate menggabungkan field yang dikirim client dengan record lama.
// Field nil mempertahankan nilai lama; validasi rentang tanggal dilakukan
// terhadap hasil gabungan, bukan input mentah.
func mergeUpdate(existing *Leave, req UpdateLeaveRequest) (*Leave, error) {
	merged := *existing
	merged.Employee = nil

	if req.EmployeeID != nil {
		parsed, err := uuid.Parse(*req.EmployeeID)
		if err != nil {
			return nil, employeeerrors.ErrInvalidEmployeeID
		}
		merged.EmployeeID = parsed
	}
	if req.Reason != nil {
		merged.Reason = *req.Reason
	}
	if req.StartDate != nil {
		startDate, err := parseDate(*req.StartDate)
		if err != nil {
			return nil, err
		}
		merged.StartDate = startDate
	}
	if req.EndDate != nil {
		endDate, err := parseDate(*req.EndDate)
		if err != nil {
			return nil, err
		}
		merged.EndDate = endDate
	}

	if merged.EndDate.Before(merged.StartDate) {
		return nil, leaveerrors.ErrInvalidDateRange
	}
	return &merged, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return leaveerrors.ErrInvalidLeaveID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return apperror.Wrap(err, apperror.CodeInternalError, "failed to start transaction", http.StatusInternalServerError)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	existing, err := qtx.FindByID(ctx, id)
	if err != nil {
		return mapLeaveLookupError(err)
	}

	if err := qtx.Delete(ctx, id); err != nil {
		return mapLeaveLookupError(err)
	}

	if err := s.enqueueDeletedEvent(ctx, tx, existing); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	contextutil.GetLogger(ctx, s.logger).Info("leave deleted",
		zap.String("leave_id", id),
		zap.String("employee_id", existing.EmployeeID.String()),
		zap.String("actor_id", contextutil.GetAdminID(ctx)),
	)
	return nil
}

func (s *service) GetEmployeesWithLeaves(ctx context.Context) ([]EmployeeWithLeavesResponse, error) {
	employees, err := s.employeeRepo.FindAllOrderedByName(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]EmployeeWithLeavesResponse, 0, len(employees))
	for i := range employees {
		e := &employees[i]

		leaves, err := s.repo.FindByEmployee(ctx, e.ID.String())
		if err != nil {
			return nil, err
		}

		item := EmployeeWithLeavesResponse{
			ID:        e.ID.String(),
			FirstName: e.FirstName,
			LastName:  e.LastName,
			Email:     e.Email,
			Phone:     e.Phone,
			Address:   e.Address,
			Gender:    e.Gender,
			Leaves:    make([]LeaveResponse, 0, len(leaves)),
		}
		for j := range leaves {
			lr := s.toResponse(&leaves[j])
			item.Leaves = append(item.Leaves, lr)
			// Total seumur hidup, tidak dibatasi tahun berjalan.
			item.TotalLeaveDays += lr.TotalDays
		}
		resp = append(resp, item)
	}
	return resp, nil
}

func (s *service) toResponse(l *Leave) LeaveResponse {
	// Interval yang sudah tersimpan selalu valid, jadi error SpanDays di
	// sini hanya mungkin kalau data dikorupsi di luar aplikasi.
	totalDays, err := SpanDays(l.StartDate, l.EndDate)
	if err != nil {
		s.logger.Error("stored leave has inverted interval",
			zap.String("leave_id", l.ID.String()),
			zap.Error(err),
		)
	}

	resp := LeaveResponse{
		ID:         l.ID.String(),
		EmployeeID: l.EmployeeID.String(),
		Reason:     l.Reason,
		StartDate:  l.StartDate.Format(dateLayout),
		EndDate:    l.EndDate.Format(dateLayout),
		TotalDays:  totalDays,
		CreatedAt:  l.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  l.UpdatedAt.Format(time.RFC3339),
	}
	if l.Employee != nil {
		resp.EmployeeName = l.Employee.FirstName + " " + l.Employee.LastName
	}
	return resp
}

func (s *service) enqueueCreatedEvent(ctx context.Context, tx *sql.Tx, l *Leave) error {
	if s.outbox == nil {
		return nil
	}

	totalDays, _ := SpanDays(l.StartDate, l.EndDate)
	payload, err := json.Marshal(events.LeaveCreatedEvent{
		EventType:  events.LeaveCreatedTopic,
		RequestID:  contextutil.GetRequestID(ctx),
		LeaveID:    l.ID.String(),
		EmployeeID: l.EmployeeID.String(),
		StartDate:  l.StartDate.Format(dateLayout),
		EndDate:    l.EndDate.Format(dateLayout),
		TotalDays:  totalDays,
		OccurredAt: s.clock.Now(),
	})
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "leave",
		AggregateID:   l.ID.String(),
		EventType:     events.LeaveCreatedTopic,
		Topic:         events.LeaveCreatedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) enqueueDeletedEvent(ctx context.Context, tx *sql.Tx, l *Leave) error {
	if s.outbox == nil {
		return nil
	}

	payload, err := json.Marshal(events.LeaveDeletedEvent{
		EventType:  events.LeaveDeletedTopic,
		RequestID:  contextutil.GetRequestID(ctx),
		LeaveID:    l.ID.String(),
		EmployeeID: l.EmployeeID.String(),
		OccurredAt: s.clock.Now(),
	})
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "leave",
		AggregateID:   l.ID.String(),
		EventType:     events.LeaveDeletedTopic,
		Topic:         events.LeaveDeletedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func mapLeaveLookupError(err error) error {
	if errors.Is(err, sql.ErrNoRows) || errors.Is(err, gorm.ErrRecordNotFound) {
		return leaveerrors.ErrLeaveNotFound
	}
	return err
}

// isRetryableTxError mendeteksi kode Postgres 40001 (serialization failure)
// dan 40P01 (deadlock detected).
func isRetryableTxError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return false
}
