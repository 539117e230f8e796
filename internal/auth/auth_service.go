package auth

import (
	"context"
	"os"
	"time"

	"github.com/ImanMustopaKamal/deptech-be/internal/admin"
	autherrors "github.com/ImanMustopaKamal/deptech-be/internal/auth/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, email, password string) (LoginResponse, error)
	ChangePassword(ctx context.Context, adminID, oldPassword, newPassword string) error
	GetMe(ctx context.Context, adminID string) (AuthResponse, error)
}

type service struct {
	adminRepo admin.Repository
	logger    *zap.Logger
}

func NewService(adminRepo admin.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{adminRepo: adminRepo, logger: l}
}

func (s *service) Login(ctx context.Context, email, password string) (LoginResponse, error) {
	a, err := s.adminRepo.FindByEmail(ctx, email)
	if err != nil {
		// Email tidak dikenal dibalas sama dengan password salah
		return LoginResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(a.Password), []byte(password)); err != nil {
		return LoginResponse{}, autherrors.ErrInvalidCredentials
	}

	accessToken, err := s.generateToken(a.ID.String(), a.Email, 24*time.Hour)
	if err != nil {
		s.logger.Error("login generate token failed", zap.Error(err))
		return LoginResponse{}, autherrors.ErrTokenGenerationFailed
	}

	s.logger.Info("login success", zap.String("admin_id", a.ID.String()))

	return LoginResponse{
		AuthResponse: mapToAuthResponse(*a),
		AccessToken:  accessToken,
	}, nil
}

func (s *service) ChangePassword(ctx context.Context, adminID, oldPassword, newPassword string) error {
	if _, err := uuid.Parse(adminID); err != nil {
		return autherrors.ErrInvalidAdminID
	}

	a, err := s.adminRepo.FindByID(ctx, adminID)
	if err != nil {
		return autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(a.Password), []byte(oldPassword)); err != nil {
		return autherrors.ErrInvalidCredentials
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	a.Password = string(hashed)
	if err := s.adminRepo.Update(ctx, a); err != nil {
		s.logger.Error("change password persist failed", zap.String("admin_id", adminID), zap.Error(err))
		return err
	}

	s.logger.Info("change password success", zap.String("admin_id", adminID))
	return nil
}

func (s *service) GetMe(ctx context.Context, adminID string) (AuthResponse, error) {
	if _, err := uuid.Parse(adminID); err != nil {
		return AuthResponse{}, autherrors.ErrInvalidAdminID
	}

	a, err := s.adminRepo.FindByID(ctx, adminID)
	if err != nil {
		return AuthResponse{}, autherrors.ErrAdminNotFound
	}

	return mapToAuthResponse(*a), nil
}

// reusable token generator
func (s *service) generateToken(adminID, email string, expiry time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"admin_id": adminID,
		"email":    email,
		"role":     "admin",
		"exp":      time.Now().Add(expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func mapToAuthResponse(a admin.Admin) AuthResponse {
	return AuthResponse{
		ID:        a.ID.String(),
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Email:     a.Email,
		Role:      "admin",
	}
}
