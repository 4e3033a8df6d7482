package audit

import (
	"time"

	"github.com/google/uuid"
)

// AuditLog is append-only. Rows are never updated or deleted; every schedule
// mutation writes one with a before/after snapshot.
type AuditLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID  `gorm:"type:uuid;not null;index:idx_audit_logs_company_entity"`
	ActorID    uuid.UUID  `gorm:"type:uuid;not null"`
	Action     string     `gorm:"type:varchar(60);not null"`
	EntityType string     `gorm:"type:varchar(40);not null;index:idx_audit_logs_company_entity"`
	EntityID   *uuid.UUID `gorm:"type:uuid;index:idx_audit_logs_company_entity"`
	Before     []byte     `gorm:"type:jsonb"`
	After      []byte     `gorm:"type:jsonb"`
	Reason     string     `gorm:"type:text"`
	Context    []byte     `gorm:"type:jsonb"`
	CreatedAt  time.Time
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
