package schedulelock

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"go-roster/internal/audit"
	"go-roster/internal/events"
	"go-roster/internal/messaging/kafka"
	schedulelockerrors "go-roster/internal/schedulelock/errors"
	"go-roster/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=schedule_lock_service.go -destination=mock/schedule_lock_service_mock.go -package=mock
type Service interface {
	GetWeekStatus(ctx context.Context, companyID, boutiqueID, date string) (WeekStatusResponse, error)
	ApproveWeek(ctx context.Context, companyID, actorID string, req WeekRequest) (WeekStatusResponse, error)
	UnapproveWeek(ctx context.Context, companyID, actorID string, req WeekRequest) (WeekStatusResponse, error)
	LockWeek(ctx context.Context, companyID, actorID string, req LockWeekRequest) (LockResponse, error)
	UnlockWeek(ctx context.Context, companyID, actorID string, req WeekRequest) (UnlockResponse, error)
	LockDay(ctx context.Context, companyID, actorID string, req LockDayRequest) (LockResponse, error)
	UnlockDay(ctx context.Context, companyID, actorID string, req UnlockDayRequest) (UnlockResponse, error)

	IsDayLocked(ctx context.Context, companyID string, boutiqueID uuid.UUID, date time.Time) (*LockInfo, error)
	IsWeekLocked(ctx context.Context, companyID string, boutiqueID uuid.UUID, date time.Time) (*LockInfo, error)

	// AssertScheduleEditable fails with DAY_LOCKED or WEEK_LOCKED when any
	// mutation may not touch the given date. Every mutating service calls
	// this before writing.
	AssertScheduleEditable(ctx context.Context, companyID string, boutiqueID uuid.UUID, date time.Time) error
}

type service struct {
	db        *sql.DB
	repo      Repository
	auditSink audit.Sink
	outbox    kafka.OutboxRepository
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	auditSink audit.Sink,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("schedulelock.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("schedulelock.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		auditSink: auditSink,
		outbox:    outboxRepo,
		logger:    l,
	}
}

func (s *service) GetWeekStatus(ctx context.Context, companyID, boutiqueID, date string) (WeekStatusResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return WeekStatusResponse{}, schedulelockerrors.ErrInvalidCompanyID
	}
	boutiqueUUID, err := uuid.Parse(boutiqueID)
	if err != nil {
		return WeekStatusResponse{}, schedulelockerrors.ErrInvalidBoutiqueID
	}
	day, err := parseDate(date)
	if err != nil {
		return WeekStatusResponse{}, err
	}
	weekStart := WeekStart(day)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return WeekStatusResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	ws, err := s.findOrCreateWeekStatus(ctx, qtx, companyUUID, boutiqueUUID, weekStart)
	if err != nil {
		return WeekStatusResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return WeekStatusResponse{}, err
	}

	resp := mapWeekStatus(*ws)
	if lock, err := s.IsWeekLocked(ctx, companyID, boutiqueUUID, day); err == nil && lock != nil {
		resp.WeekLock = lock
	}
	return resp, nil
}

// findOrCreateWeekStatus lazily provisions the DRAFT row. A missing row is
// incomplete provisioning, not an error.
func (s *service) findOrCreateWeekStatus(
	ctx context.Context,
	qtx Repository,
	companyID, boutiqueID uuid.UUID,
	weekStart time.Time,
) (*ScheduleWeekStatus, error) {
	ws, err := qtx.FindWeekStatus(ctx, companyID.String(), boutiqueID.String(), weekStart)
	if err == nil {
		return ws, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	ws = &ScheduleWeekStatus{
		ID:         uuid.New(),
		CompanyID:  companyID,
		BoutiqueID: boutiqueID,
		WeekStart:  weekStart,
		Status:     StatusDraft,
	}
	if err := qtx.CreateWeekStatus(ctx, ws); err != nil {
		return nil, err
	}
	s.logger.Debug("week status lazily created",
		zap.String("boutique_id", boutiqueID.String()),
		zap.String("week_start", weekStart.Format("2006-01-02")),
	)
	return ws, nil
}

func (s *service) ApproveWeek(ctx context.Context, companyID, actorID string, req WeekRequest) (WeekStatusResponse, error) {
	companyUUID, actorUUID, boutiqueUUID, day, err := parseActorRequest(companyID, actorID, req.BoutiqueID, req.Date)
	if err != nil {
		return WeekStatusResponse{}, err
	}
	weekStart := WeekStart(day)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return WeekStatusResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.LockScope(ctx, req.BoutiqueID, ScopeWeek, weekStart); err != nil {
		return WeekStatusResponse{}, err
	}

	ws, err := s.findOrCreateWeekStatus(ctx, qtx, companyUUID, boutiqueUUID, weekStart)
	if err != nil {
		return WeekStatusResponse{}, err
	}

	if ws.Status == StatusApproved {
		// Idempotent: re-approving changes nothing and writes no audit row.
		if err := tx.Commit(); err != nil {
			return WeekStatusResponse{}, err
		}
		return mapWeekStatus(*ws), nil
	}

	before := ws.Status
	now := time.Now().UTC()
	ws.Status = StatusApproved
	ws.ApprovedBy = &actorUUID
	ws.ApprovedAt = &now

	if err := qtx.UpdateWeekStatus(ctx, ws); err != nil {
		return WeekStatusResponse{}, err
	}

	if err := s.writeTransitionAudit(ctx, tx, companyID, actorID, "WEEK_APPROVED", ws.ID, before, ws.Status, "", boutiqueUUID, weekStart); err != nil {
		return WeekStatusResponse{}, err
	}
	if err := s.queueLifecycleEvent(ctx, tx, events.WeekApproved, companyID, actorID, boutiqueUUID, weekStart); err != nil {
		return WeekStatusResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return WeekStatusResponse{}, err
	}

	s.logger.Info("week approved",
		zap.String("boutique_id", req.BoutiqueID),
		zap.String("week_start", weekStart.Format("2006-01-02")),
		zap.String("actor_id", actorID),
	)
	return mapWeekStatus(*ws), nil
}

func (s *service) UnapproveWeek(ctx context.Context, companyID, actorID string, req WeekRequest) (WeekStatusResponse, error) {
	companyUUID, _, boutiqueUUID, day, err := parseActorRequest(companyID, actorID, req.BoutiqueID, req.Date)
	if err != nil {
		return WeekStatusResponse{}, err
	}
	weekStart := WeekStart(day)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return WeekStatusResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.LockScope(ctx, req.BoutiqueID, ScopeWeek, weekStart); err != nil {
		return WeekStatusResponse{}, err
	}

	// A locked week must be unlocked before it can go back to draft.
	if lock, err := s.findActiveLock(ctx, qtx, companyID, req.BoutiqueID, ScopeWeek, weekStart); err != nil {
		return WeekStatusResponse{}, err
	} else if lock != nil {
		return WeekStatusResponse{}, schedulelockerrors.ErrWeekLockedForUnapprove.WithDetails(mapLockInfo(*lock))
	}

	ws, err := s.findOrCreateWeekStatus(ctx, qtx, companyUUID, boutiqueUUID, weekStart)
	if err != nil {
		return WeekStatusResponse{}, err
	}
	if ws.Status == StatusDraft {
		if err := tx.Commit(); err != nil {
			return WeekStatusResponse{}, err
		}
		return mapWeekStatus(*ws), nil
	}

	before := ws.Status
	ws.Status = StatusDraft
	ws.ApprovedBy = nil
	ws.ApprovedAt = nil

	if err := qtx.UpdateWeekStatus(ctx, ws); err != nil {
		return WeekStatusResponse{}, err
	}
	if err := s.writeTransitionAudit(ctx, tx, companyID, actorID, "WEEK_UNAPPROVED", ws.ID, before, ws.Status, "", boutiqueUUID, weekStart); err != nil {
		return WeekStatusResponse{}, err
	}
	if err := s.queueLifecycleEvent(ctx, tx, events.WeekUnapproved, companyID, actorID, boutiqueUUID, weekStart); err != nil {
		return WeekStatusResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return WeekStatusResponse{}, err
	}

	s.logger.Info("week unapproved",
		zap.String("boutique_id", req.BoutiqueID),
		zap.String("week_start", weekStart.Format("2006-01-02")),
	)
	return mapWeekStatus(*ws), nil
}

func (s *service) LockWeek(ctx context.Context, companyID, actorID string, req LockWeekRequest) (LockResponse, error) {
	companyUUID, actorUUID, boutiqueUUID, day, err := parseActorRequest(companyID, actorID, req.BoutiqueID, req.Date)
	if err != nil {
		return LockResponse{}, err
	}
	weekStart := WeekStart(day)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LockResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.LockScope(ctx, req.BoutiqueID, ScopeWeek, weekStart); err != nil {
		return LockResponse{}, err
	}

	// Locking only makes sense on an approved plan.
	ws, err := s.findOrCreateWeekStatus(ctx, qtx, companyUUID, boutiqueUUID, weekStart)
	if err != nil {
		return LockResponse{}, err
	}
	if ws.Status != StatusApproved {
		return LockResponse{}, schedulelockerrors.ErrWeekNotApproved
	}

	if existing, err := s.findActiveLock(ctx, qtx, companyID, req.BoutiqueID, ScopeWeek, weekStart); err != nil {
		return LockResponse{}, err
	} else if existing != nil {
		// Idempotent: the first active lock wins, no second audit row.
		if err := tx.Commit(); err != nil {
			return LockResponse{}, err
		}
		return mapLockResponse(*existing), nil
	}

	lock := &ScheduleLock{
		ID:         uuid.New(),
		CompanyID:  companyUUID,
		BoutiqueID: boutiqueUUID,
		ScopeType:  ScopeWeek,
		ScopeValue: weekStart,
		IsActive:   true,
		Reason:     req.Reason,
		LockedBy:   actorUUID,
		LockedAt:   time.Now().UTC(),
	}
	if err := qtx.CreateLock(ctx, lock); err != nil {
		return LockResponse{}, err
	}
	if err := s.writeTransitionAudit(ctx, tx, companyID, actorID, "WEEK_LOCKED", lock.ID, "UNLOCKED", "LOCKED", req.Reason, boutiqueUUID, weekStart); err != nil {
		return LockResponse{}, err
	}
	if err := s.queueLifecycleEvent(ctx, tx, events.WeekLocked, companyID, actorID, boutiqueUUID, weekStart); err != nil {
		return LockResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return LockResponse{}, err
	}

	s.logger.Info("week locked",
		zap.String("boutique_id", req.BoutiqueID),
		zap.String("week_start", weekStart.Format("2006-01-02")),
		zap.String("reason", req.Reason),
	)
	return mapLockResponse(*lock), nil
}

func (s *service) UnlockWeek(ctx context.Context, companyID, actorID string, req WeekRequest) (UnlockResponse, error) {
	_, actorUUID, boutiqueUUID, day, err := parseActorRequest(companyID, actorID, req.BoutiqueID, req.Date)
	if err != nil {
		return UnlockResponse{}, err
	}
	weekStart := WeekStart(day)

	resp, err := s.unlock(ctx, companyID, actorID, actorUUID, boutiqueUUID, ScopeWeek, weekStart, "WEEK_UNLOCKED")
	if err != nil {
		return UnlockResponse{}, err
	}
	return resp, nil
}

func (s *service) LockDay(ctx context.Context, companyID, actorID string, req LockDayRequest) (LockResponse, error) {
	companyUUID, actorUUID, boutiqueUUID, day, err := parseActorRequest(companyID, actorID, req.BoutiqueID, req.Date)
	if err != nil {
		return LockResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LockResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.LockScope(ctx, req.BoutiqueID, ScopeDay, day); err != nil {
		return LockResponse{}, err
	}

	if existing, err := s.findActiveLock(ctx, qtx, companyID, req.BoutiqueID, ScopeDay, day); err != nil {
		return LockResponse{}, err
	} else if existing != nil {
		if err := tx.Commit(); err != nil {
			return LockResponse{}, err
		}
		return mapLockResponse(*existing), nil
	}

	lock := &ScheduleLock{
		ID:         uuid.New(),
		CompanyID:  companyUUID,
		BoutiqueID: boutiqueUUID,
		ScopeType:  ScopeDay,
		ScopeValue: day,
		IsActive:   true,
		Reason:     req.Reason,
		LockedBy:   actorUUID,
		LockedAt:   time.Now().UTC(),
	}
	if err := qtx.CreateLock(ctx, lock); err != nil {
		return LockResponse{}, err
	}
	if err := s.writeTransitionAudit(ctx, tx, companyID, actorID, "DAY_LOCKED", lock.ID, "UNLOCKED", "LOCKED", req.Reason, boutiqueUUID, day); err != nil {
		return LockResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return LockResponse{}, err
	}

	s.logger.Info("day locked",
		zap.String("boutique_id", req.BoutiqueID),
		zap.String("date", day.Format("2006-01-02")),
		zap.String("reason", req.Reason),
	)
	return mapLockResponse(*lock), nil
}

func (s *service) UnlockDay(ctx context.Context, companyID, actorID string, req UnlockDayRequest) (UnlockResponse, error) {
	_, actorUUID, boutiqueUUID, day, err := parseActorRequest(companyID, actorID, req.BoutiqueID, req.Date)
	if err != nil {
		return UnlockResponse{}, err
	}

	return s.unlock(ctx, companyID, actorID, actorUUID, boutiqueUUID, ScopeDay, day, "DAY_UNLOCKED")
}

func (s *service) unlock(
	ctx context.Context,
	companyID, actorID string,
	actorUUID, boutiqueUUID uuid.UUID,
	scopeType string,
	scopeValue time.Time,
	auditAction string,
) (UnlockResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return UnlockResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.LockScope(ctx, boutiqueUUID.String(), scopeType, scopeValue); err != nil {
		return UnlockResponse{}, err
	}

	lock, err := s.findActiveLock(ctx, qtx, companyID, boutiqueUUID.String(), scopeType, scopeValue)
	if err != nil {
		return UnlockResponse{}, err
	}
	if lock == nil {
		// Nothing to unlock; treat as success so retried unlocks never fail.
		if err := tx.Commit(); err != nil {
			return UnlockResponse{}, err
		}
		return UnlockResponse{
			BoutiqueID: boutiqueUUID.String(),
			ScopeType:  scopeType,
			ScopeValue: scopeValue.Format("2006-01-02"),
			Unlocked:   false,
		}, nil
	}

	now := time.Now().UTC()
	lock.UnlockedBy = &actorUUID
	lock.UnlockedAt = &now
	if err := qtx.DeactivateLock(ctx, lock); err != nil {
		return UnlockResponse{}, err
	}
	if err := s.writeTransitionAudit(ctx, tx, companyID, actorID, auditAction, lock.ID, "LOCKED", "UNLOCKED", lock.Reason, boutiqueUUID, scopeValue); err != nil {
		return UnlockResponse{}, err
	}
	if scopeType == ScopeWeek {
		if err := s.queueLifecycleEvent(ctx, tx, events.WeekUnlocked, companyID, actorID, boutiqueUUID, scopeValue); err != nil {
			return UnlockResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return UnlockResponse{}, err
	}

	s.logger.Info("schedule scope unlocked",
		zap.String("boutique_id", boutiqueUUID.String()),
		zap.String("scope_type", scopeType),
		zap.String("scope_value", scopeValue.Format("2006-01-02")),
	)
	return UnlockResponse{
		BoutiqueID: boutiqueUUID.String(),
		ScopeType:  scopeType,
		ScopeValue: scopeValue.Format("2006-01-02"),
		Unlocked:   true,
	}, nil
}

func (s *service) IsDayLocked(ctx context.Context, companyID string, boutiqueID uuid.UUID, date time.Time) (*LockInfo, error) {
	lock, err := s.findActiveLock(ctx, s.repo, companyID, boutiqueID.String(), ScopeDay, midnight(date))
	if err != nil {
		return nil, err
	}
	if lock == nil {
		return nil, nil
	}
	info := mapLockInfo(*lock)
	return &info, nil
}

func (s *service) IsWeekLocked(ctx context.Context, companyID string, boutiqueID uuid.UUID, date time.Time) (*LockInfo, error) {
	lock, err := s.findActiveLock(ctx, s.repo, companyID, boutiqueID.String(), ScopeWeek, WeekStart(date))
	if err != nil {
		return nil, err
	}
	if lock == nil {
		return nil, nil
	}
	info := mapLockInfo(*lock)
	return &info, nil
}

func (s *service) AssertScheduleEditable(ctx context.Context, companyID string, boutiqueID uuid.UUID, date time.Time) error {
	if weekLock, err := s.IsWeekLocked(ctx, companyID, boutiqueID, date); err != nil {
		return err
	} else if weekLock != nil {
		return schedulelockerrors.ErrWeekLocked.WithDetails(*weekLock)
	}

	if dayLock, err := s.IsDayLocked(ctx, companyID, boutiqueID, date); err != nil {
		return err
	} else if dayLock != nil {
		return schedulelockerrors.ErrDayLocked.WithDetails(*dayLock)
	}

	return nil
}

// --- helpers ---

func (s *service) findActiveLock(ctx context.Context, repo Repository, companyID, boutiqueID, scopeType string, scopeValue time.Time) (*ScheduleLock, error) {
	lock, err := repo.FindActiveLock(ctx, companyID, boutiqueID, scopeType, scopeValue)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return lock, nil
}

func (s *service) writeTransitionAudit(
	ctx context.Context,
	tx *sql.Tx,
	companyID, actorID, action string,
	entityID uuid.UUID,
	before, after, reason string,
	boutiqueID uuid.UUID,
	scopeValue time.Time,
) error {
	return s.auditSink.WithTx(tx).Write(ctx, audit.Entry{
		CompanyID:  companyID,
		ActorID:    actorID,
		Action:     action,
		EntityType: "schedule_lock",
		EntityID:   entityID.String(),
		Before:     map[string]any{"state": before},
		After:      map[string]any{"state": after},
		Reason:     reason,
		Context: map[string]any{
			"boutique_id": boutiqueID.String(),
			"scope_value": scopeValue.Format("2006-01-02"),
		},
	})
}

func (s *service) queueLifecycleEvent(
	ctx context.Context,
	tx *sql.Tx,
	eventType, companyID, actorID string,
	boutiqueID uuid.UUID,
	weekStart time.Time,
) error {
	if s.outbox == nil {
		return nil
	}

	event := events.ScheduleWeekLifecycleEvent{
		EventType:  eventType,
		RequestID:  contextutil.GetRequestID(ctx),
		CompanyID:  companyID,
		BoutiqueID: boutiqueID.String(),
		WeekStart:  weekStart.Format("2006-01-02"),
		ActorID:    actorID,
		OccurredAt: time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     event.RequestID,
		AggregateType: "schedule_week",
		AggregateID:   boutiqueID.String(),
		EventType:     eventType,
		Topic:         events.ScheduleWeekLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func parseActorRequest(companyID, actorID, boutiqueID, date string) (uuid.UUID, uuid.UUID, uuid.UUID, time.Time, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, time.Time{}, schedulelockerrors.ErrInvalidCompanyID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, time.Time{}, schedulelockerrors.ErrInvalidActorID
	}
	boutiqueUUID, err := uuid.Parse(boutiqueID)
	if err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, time.Time{}, schedulelockerrors.ErrInvalidBoutiqueID
	}
	day, err := parseDate(date)
	if err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, time.Time{}, err
	}
	return companyUUID, actorUUID, boutiqueUUID, day, nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, schedulelockerrors.ErrInvalidDateFormat
	}
	return midnight(t), nil
}

func mapWeekStatus(ws ScheduleWeekStatus) WeekStatusResponse {
	resp := WeekStatusResponse{
		BoutiqueID: ws.BoutiqueID.String(),
		WeekStart:  ws.WeekStart.Format("2006-01-02"),
		Status:     ws.Status,
	}
	if ws.ApprovedBy != nil {
		v := ws.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	if ws.ApprovedAt != nil {
		v := ws.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &v
	}
	return resp
}

func mapLockInfo(l ScheduleLock) LockInfo {
	return LockInfo{
		Reason:   l.Reason,
		LockedBy: l.LockedBy.String(),
		LockedAt: l.LockedAt.Format(time.RFC3339),
	}
}

func mapLockResponse(l ScheduleLock) LockResponse {
	return LockResponse{
		BoutiqueID: l.BoutiqueID.String(),
		ScopeType:  l.ScopeType,
		ScopeValue: l.ScopeValue.Format("2006-01-02"),
		Lock:       mapLockInfo(l),
	}
}
