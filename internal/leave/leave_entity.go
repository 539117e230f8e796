package leave

import (
	"time"

	"github.com/ImanMustopaKamal/deptech-be/internal/employee"

	"github.com/google/uuid"
)

type Leave struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_leaves_employee_dates"`
	Reason     string    `gorm:"type:text;not null"`
	StartDate  time.Time `gorm:"type:date;not null;index:idx_leaves_employee_dates"`
	EndDate    time.Time `gorm:"type:date;not null;index:idx_leaves_employee_dates"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Employee *employee.Employee `gorm:"foreignKey:EmployeeID"`
}
