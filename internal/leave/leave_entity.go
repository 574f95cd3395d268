package leave

import (
	"time"

	"github.com/google/uuid"
)

type Leave struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index:idx_leaves_company_created"`

	RequesterID uuid.UUID `gorm:"type:uuid;not null;index"`
	// Display name captured at creation time so the HR notification and
	// list views survive later employee renames.
	RequesterName string `gorm:"type:varchar(255);not null"`

	LeaveType string    `gorm:"type:varchar(30);not null"`
	StartDate time.Time `gorm:"type:date;not null"`
	EndDate   time.Time `gorm:"type:date;not null"`
	TotalDays int       `gorm:"type:int;not null;default:1"`
	Reason    string    `gorm:"type:text;not null"`

	Status         string     `gorm:"type:varchar(20);not null;default:'pending';index:idx_leaves_company_created"`
	DecidedBy      *uuid.UUID `gorm:"type:uuid"`
	DecisionReason *string    `gorm:"type:text"`
	DecidedAt      *time.Time

	CreatedAt time.Time `gorm:"index:idx_leaves_company_created,sort:desc"`
	UpdatedAt time.Time
}

func (Leave) TableName() string {
	return "leaves"
}
