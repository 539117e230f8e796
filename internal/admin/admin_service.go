package admin

import (
	"context"
	"errors"
	"time"

	adminerrors "github.com/ImanMustopaKamal/deptech-be/internal/admin/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

//go:generate mockgen -source=admin_service.go -destination=mock/admin_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateAdminRequest) (AdminResponse, error)
	GetAll(ctx context.Context) ([]AdminResponse, error)
	GetByID(ctx context.Context, id string) (AdminResponse, error)
	Update(ctx context.Context, id string, req UpdateAdminRequest) (AdminResponse, error)
	Delete(ctx context.Context, actorID, id string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("admin.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("admin.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateAdminRequest) (AdminResponse, error) {
	s.logger.Debug("create admin requested", zap.String("email", req.Email))

	dob, err := time.Parse("2006-01-02", req.DateOfBirth)
	if err != nil {
		return AdminResponse{}, adminerrors.ErrInvalidDateOfBirth
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("create admin hash password failed", zap.Error(err))
		return AdminResponse{}, err
	}

	a := &Admin{
		ID:          uuid.New(),
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		DateOfBirth: dob,
		Gender:      req.Gender,
		Password:    string(hashed),
	}

	if err := s.repo.Create(ctx, a); err != nil {
		s.logger.Error("create admin persist failed", zap.Error(err))
		return AdminResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("create admin success", zap.String("admin_id", a.ID.String()))
	return mapToResponse(*a), nil
}

func (s *service) GetAll(ctx context.Context) ([]AdminResponse, error) {
	admins, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(admins), nil
}

func (s *service) GetByID(ctx context.Context, id string) (AdminResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return AdminResponse{}, adminerrors.ErrInvalidAdminID
	}

	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return AdminResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*a), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateAdminRequest) (AdminResponse, error) {
	s.logger.Debug("update admin requested", zap.String("admin_id", id))

	if _, err := uuid.Parse(id); err != nil {
		return AdminResponse{}, adminerrors.ErrInvalidAdminID
	}

	dob, err := time.Parse("2006-01-02", req.DateOfBirth)
	if err != nil {
		return AdminResponse{}, adminerrors.ErrInvalidDateOfBirth
	}

	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return AdminResponse{}, mapRepositoryError(err)
	}

	a.FirstName = req.FirstName
	a.LastName = req.LastName
	a.Email = req.Email
	a.DateOfBirth = dob
	a.Gender = req.Gender
	// Password kosong berarti hash lama dipertahankan
	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			s.logger.Error("update admin hash password failed", zap.Error(err))
			return AdminResponse{}, err
		}
		a.Password = string(hashed)
	}

	if err := s.repo.Update(ctx, a); err != nil {
		s.logger.Error("update admin persist failed", zap.String("admin_id", id), zap.Error(err))
		return AdminResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("update admin success", zap.String("admin_id", id))
	return mapToResponse(*a), nil
}

func (s *service) Delete(ctx context.Context, actorID, id string) error {
	s.logger.Debug("delete admin requested",
		zap.String("admin_id", id),
		zap.String("actor_id", actorID),
	)

	if _, err := uuid.Parse(id); err != nil {
		return adminerrors.ErrInvalidAdminID
	}
	if actorID == id {
		return adminerrors.ErrCannotDeleteSelf
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return adminerrors.ErrAdminNotFound
		}
		return err
	}

	count, err := s.repo.Count(ctx)
	if err != nil {
		return err
	}
	if count <= 1 {
		return adminerrors.ErrCannotDeleteLastAdmin
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("delete admin persist failed", zap.String("admin_id", id), zap.Error(err))
		return err
	}

	s.logger.Info("delete admin success", zap.String("admin_id", id))
	return nil
}

func mapToResponse(a Admin) AdminResponse {
	return AdminResponse{
		ID:          a.ID.String(),
		FirstName:   a.FirstName,
		LastName:    a.LastName,
		Email:       a.Email,
		DateOfBirth: a.DateOfBirth.Format("2006-01-02"),
		Gender:      a.Gender,
	}
}

func mapToListResponse(admins []Admin) []AdminResponse {
	resp := make([]AdminResponse, len(admins))
	for i, a := range admins {
		resp[i] = mapToResponse(a)
	}
	return resp
}
