package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
)

type Employee struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index"`
	BoutiqueID uuid.UUID `gorm:"type:uuid;not null;index"`

	EmployeeNumber string `gorm:"type:varchar(20);not null;uniqueIndex:uq_employee_number"`
	FullName       string `gorm:"type:varchar(120);not null"`
	Email          string `gorm:"type:varchar(120);uniqueIndex:uq_employee_email"`

	// WeeklyOffDay is the one weekday (0=Sunday .. 6=Saturday) the employee
	// never works unless an override says otherwise.
	WeeklyOffDay int `gorm:"type:smallint;not null;default:5"`

	EmploymentStatus string    `gorm:"type:varchar(20);not null;default:'ACTIVE'"`
	HireDate         time.Time `gorm:"type:date;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Employee) TableName() string {
	return "employees"
}
