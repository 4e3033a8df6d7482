package schedulelock

import (
	"time"

	"github.com/google/uuid"
)

const (
	ScopeDay  = "DAY"
	ScopeWeek = "WEEK"

	StatusDraft    = "DRAFT"
	StatusApproved = "APPROVED"
)

// ScheduleLock rows are toggled active/inactive, never deleted, so every
// lock and unlock stays visible next to its audit records.
type ScheduleLock struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index:idx_schedule_locks_scope"`
	BoutiqueID uuid.UUID `gorm:"type:uuid;not null;index:idx_schedule_locks_scope"`

	// ScopeValue is the locked day, or the Saturday the locked week starts on.
	ScopeType  string    `gorm:"type:varchar(4);not null;index:idx_schedule_locks_scope"`
	ScopeValue time.Time `gorm:"type:date;not null;index:idx_schedule_locks_scope"`

	IsActive bool   `gorm:"not null;default:true"`
	Reason   string `gorm:"type:text"`

	LockedBy   uuid.UUID  `gorm:"type:uuid;not null"`
	LockedAt   time.Time  `gorm:"not null"`
	UnlockedBy *uuid.UUID `gorm:"type:uuid"`
	UnlockedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ScheduleLock) TableName() string {
	return "schedule_locks"
}

// ScheduleWeekStatus is created lazily on first query, defaulting to DRAFT.
type ScheduleWeekStatus struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_week_status"`
	BoutiqueID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_week_status"`
	WeekStart  time.Time `gorm:"type:date;not null;uniqueIndex:uq_week_status"`

	Status     string     `gorm:"type:varchar(10);not null;default:'DRAFT'"`
	ApprovedBy *uuid.UUID `gorm:"type:uuid"`
	ApprovedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ScheduleWeekStatus) TableName() string {
	return "schedule_week_statuses"
}

// WeekStart returns the Saturday on or before d. Retail weeks run Saturday
// through Friday.
func WeekStart(d time.Time) time.Time {
	d = midnight(d)
	offset := (int(d.Weekday()) - int(time.Saturday) + 7) % 7
	return d.AddDate(0, 0, -offset)
}

func midnight(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
