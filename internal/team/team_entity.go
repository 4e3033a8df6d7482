package team

import (
	"time"

	"github.com/google/uuid"
)

const (
	TeamA = "A"
	TeamB = "B"
)

// TeamAssignment rows form an append-only timeline per employee. The row
// with the latest effective_from <= date is the employee's team on that
// date. Rows are never updated or deleted.
type TeamAssignment struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_team_assignments_employee_effective"`

	Team          string    `gorm:"type:varchar(1);not null"`
	EffectiveFrom time.Time `gorm:"type:date;not null;index:idx_team_assignments_employee_effective"`
	Reason        string    `gorm:"type:text"`

	CreatedBy uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt time.Time
}

func (TeamAssignment) TableName() string {
	return "team_assignments"
}

// TeamHistory mirrors every reassignment for audit. Immutable.
type TeamHistory struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index"`

	FromTeam      *string   `gorm:"type:varchar(1)"`
	ToTeam        string    `gorm:"type:varchar(1);not null"`
	EffectiveFrom time.Time `gorm:"type:date;not null"`
	Reason        string    `gorm:"type:text"`

	CreatedBy uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt time.Time
}

func (TeamHistory) TableName() string {
	return "team_history"
}

func IsValidTeam(team string) bool {
	return team == TeamA || team == TeamB
}
