package override

import (
	"time"

	"github.com/google/uuid"
)

// ShiftOverride pins one employee to a shift for one date, unique per
// (employee, date). Retired overrides keep their row with is_active=false
// so the audit trail survives.
type ShiftOverride struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_override_employee_date"`
	Date       time.Time `gorm:"type:date;not null;uniqueIndex:uq_override_employee_date"`

	Shift string `gorm:"type:varchar(20);not null"`

	// CoverBoutiqueID is the location being covered when Shift is one of
	// the COVER_* variants.
	CoverBoutiqueID *uuid.UUID `gorm:"type:uuid"`

	Reason    string    `gorm:"type:text;not null"`
	IsActive  bool      `gorm:"not null;default:true;index"`
	CreatedBy uuid.UUID `gorm:"type:uuid;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ShiftOverride) TableName() string {
	return "shift_overrides"
}
