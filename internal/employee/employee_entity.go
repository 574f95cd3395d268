package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Employee struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID        uuid.UUID `gorm:"type:uuid;not null;index"`
	FullName         string    `gorm:"type:varchar(255);not null"`
	Email            string    `gorm:"type:varchar(255);not null;uniqueIndex:uq_employee_email"`
	EmployeeNumber   string    `gorm:"type:varchar(50);not null;uniqueIndex:uq_employee_number"`
	Phone            string    `gorm:"type:varchar(50)"`
	JobTitle         string    `gorm:"type:varchar(255)"`
	HireDate         time.Time `gorm:"type:date"`
	EmploymentStatus string    `gorm:"type:varchar(50);not null;default:'active'"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        gorm.DeletedAt `gorm:"index"`
}
