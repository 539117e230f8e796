package main

import (
	"errors"
	"os"
	"time"

	"github.com/ImanMustopaKamal/deptech-be/internal/admin"
	"github.com/ImanMustopaKamal/deptech-be/internal/shared/connection"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	defaultAdminEmail    = "admin@mail.com"
	defaultAdminPassword = "admin123"
)

// Seeder membuat satu admin default supaya instalasi baru bisa login.
// Idempotent: kalau email sudah ada, tidak terjadi apa-apa.
func main() {
	_ = godotenv.Load()
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		logger.Fatal("connect database failed", zap.Error(err))
	}

	if err := gormDB.AutoMigrate(&admin.Admin{}); err != nil {
		logger.Fatal("migrate admins failed", zap.Error(err))
	}

	var existing admin.Admin
	err = gormDB.First(&existing, "email = ?", defaultAdminEmail).Error
	if err == nil {
		logger.Info("default admin already exists", zap.String("email", defaultAdminEmail))
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Fatal("lookup default admin failed", zap.Error(err))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(defaultAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		logger.Fatal("hash default password failed", zap.Error(err))
	}

	seed := admin.Admin{
		ID:          uuid.New(),
		FirstName:   "Default",
		LastName:    "Admin",
		Email:       defaultAdminEmail,
		DateOfBirth: time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC),
		Gender:      "male",
		Password:    string(hash),
	}
	if err := gormDB.Create(&seed).Error; err != nil {
		logger.Fatal("create default admin failed", zap.Error(err))
	}

	logger.Info("default admin created",
		zap.String("email", defaultAdminEmail),
		zap.String("password", defaultAdminPassword),
	)
}
