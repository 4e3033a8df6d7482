package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Entry is what services hand to the sink. Before/After are marshalled to
// JSON here so callers pass plain structs or maps.
type Entry struct {
	CompanyID  string
	ActorID    string
	Action     string
	EntityType string
	EntityID   string
	Before     any
	After      any
	Reason     string
	Context    map[string]any
}

//go:generate mockgen -source=audit_sink.go -destination=mock/audit_sink_mock.go -package=mock
type Sink interface {
	WithTx(tx *sql.Tx) Sink
	Write(ctx context.Context, entry Entry) error
}

type gormSink struct {
	db     *gorm.DB
	tx     *sql.Tx
	logger *zap.Logger
}

func NewGormSink(db *gorm.DB, logger ...*zap.Logger) Sink {
	l := zap.L().Named("audit.sink")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("audit.sink")
	}
	return &gormSink{db: db, logger: l}
}

func (s *gormSink) WithTx(tx *sql.Tx) Sink {
	return &gormSink{db: s.db, tx: tx, logger: s.logger}
}

func (s *gormSink) Write(ctx context.Context, entry Entry) error {
	companyID, err := uuid.Parse(entry.CompanyID)
	if err != nil {
		return err
	}
	actorID, err := uuid.Parse(entry.ActorID)
	if err != nil {
		return err
	}

	var entityID *uuid.UUID
	if entry.EntityID != "" {
		id, err := uuid.Parse(entry.EntityID)
		if err != nil {
			return err
		}
		entityID = &id
	}

	before, err := marshalOrNil(entry.Before)
	if err != nil {
		return err
	}
	after, err := marshalOrNil(entry.After)
	if err != nil {
		return err
	}
	meta, err := marshalOrNil(entry.Context)
	if err != nil {
		return err
	}

	// Inside a mutation transaction the sink must share it, so the audit row
	// commits or rolls back with the state change it describes.
	if s.tx != nil {
		_, err = s.tx.ExecContext(ctx, `
			INSERT INTO audit_logs (id, company_id, actor_id, action, entity_type, entity_id, before, after, reason, context, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		`, uuid.New(), companyID, actorID, entry.Action, entry.EntityType, entityID, before, after, entry.Reason, meta, time.Now().UTC())
		return err
	}

	row := &AuditLog{
		ID:         uuid.New(),
		CompanyID:  companyID,
		ActorID:    actorID,
		Action:     entry.Action,
		EntityType: entry.EntityType,
		EntityID:   entityID,
		Before:     before,
		After:      after,
		Reason:     entry.Reason,
		Context:    meta,
	}
	return s.db.WithContext(ctx).Create(row).Error
}

func marshalOrNil(v any) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}

// ZapSink logs entries instead of persisting them. Used by the worker and
// consumer binaries where no request transaction exists.
type ZapSink struct {
	logger *zap.Logger
}

func NewZapSink(logger *zap.Logger) *ZapSink {
	return &ZapSink{logger: logger.Named("audit")}
}

func (s *ZapSink) WithTx(tx *sql.Tx) Sink { return s }

func (s *ZapSink) Write(ctx context.Context, entry Entry) error {
	s.logger.Info("audit event",
		zap.String("action", entry.Action),
		zap.String("entity_type", entry.EntityType),
		zap.String("entity_id", entry.EntityID),
		zap.String("actor_id", entry.ActorID),
		zap.String("reason", entry.Reason),
		zap.Any("before", entry.Before),
		zap.Any("after", entry.After),
	)
	return nil
}
