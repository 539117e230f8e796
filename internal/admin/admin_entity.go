package admin

import (
	"time"

	"github.com/google/uuid"
)

type Admin struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	FirstName   string    `gorm:"type:varchar(100);not null"`
	LastName    string    `gorm:"type:varchar(100);not null"`
	Email       string    `gorm:"type:varchar(255);uniqueIndex:uq_admin_email;not null"`
	DateOfBirth time.Time `gorm:"type:date;not null"`
	Gender      string    `gorm:"type:varchar(10);not null"`
	Password    string    `gorm:"type:varchar(255);not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
