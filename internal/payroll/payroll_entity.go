package payroll

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Payslip rows are written by the back-office import, this service only
// reads them. Amounts are stored in the smallest currency unit to avoid
// floating point drift.
type Payslip struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID   uuid.UUID `gorm:"type:uuid;not null;index:idx_payslip_company"`
	EmployeeID  uuid.UUID `gorm:"type:uuid;not null;index:idx_payslip_employee_period,unique"`
	PeriodStart time.Time `gorm:"type:date;not null;index:idx_payslip_employee_period,unique"`
	PeriodEnd   time.Time `gorm:"type:date;not null;index:idx_payslip_employee_period,unique"`

	BaseSalary int64 `gorm:"type:bigint;not null;default:0"`
	Allowance  int64 `gorm:"type:bigint;not null;default:0"`
	Deduction  int64 `gorm:"type:bigint;not null;default:0"`
	NetSalary  int64 `gorm:"type:bigint;not null;default:0"`

	Status    string     `gorm:"type:varchar(20);not null;default:'processed'"`
	PaidAt    *time.Time `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Payslip) TableName() string {
	return "payslips"
}
