package schedulelock

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=schedule_lock_repo.go -destination=mock/schedule_lock_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	// LockScope serializes concurrent lock/unlock calls on the same
	// (scopeType, scopeValue, boutique) tuple. Tx-bound only.
	LockScope(ctx context.Context, boutiqueID string, scopeType string, scopeValue time.Time) error

	FindActiveLock(ctx context.Context, companyID, boutiqueID, scopeType string, scopeValue time.Time) (*ScheduleLock, error)
	CreateLock(ctx context.Context, l *ScheduleLock) error
	DeactivateLock(ctx context.Context, l *ScheduleLock) error

	FindWeekStatus(ctx context.Context, companyID, boutiqueID string, weekStart time.Time) (*ScheduleWeekStatus, error)
	CreateWeekStatus(ctx context.Context, ws *ScheduleWeekStatus) error
	UpdateWeekStatus(ctx context.Context, ws *ScheduleWeekStatus) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) LockScope(ctx context.Context, boutiqueID string, scopeType string, scopeValue time.Time) error {
	if r.tx == nil {
		return sql.ErrTxDone
	}
	_, err := r.tx.ExecContext(ctx,
		`SELECT pg_advisory_xact_lock(hashtext('schedule_lock:' || $1 || ':' || $2 || ':' || $3))`,
		boutiqueID, scopeType, scopeValue.Format("2006-01-02"),
	)
	return err
}

func (r *repository) FindActiveLock(ctx context.Context, companyID, boutiqueID, scopeType string, scopeValue time.Time) (*ScheduleLock, error) {
	if r.tx != nil {
		row := r.tx.QueryRowContext(ctx, `
			SELECT id, company_id, boutique_id, scope_type, scope_value, is_active, reason, locked_by, locked_at
			FROM schedule_locks
			WHERE company_id = $1 AND boutique_id = $2 AND scope_type = $3 AND scope_value = $4 AND is_active = true
		`, companyID, boutiqueID, scopeType, scopeValue)

		var l ScheduleLock
		err := row.Scan(&l.ID, &l.CompanyID, &l.BoutiqueID, &l.ScopeType, &l.ScopeValue, &l.IsActive, &l.Reason, &l.LockedBy, &l.LockedAt)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, gorm.ErrRecordNotFound
		}
		if err != nil {
			return nil, err
		}
		return &l, nil
	}

	var l ScheduleLock
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Where("boutique_id = ?", boutiqueID).
		Where("scope_type = ?", scopeType).
		Where("scope_value = ?", scopeValue).
		Where("is_active = true").
		First(&l).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repository) CreateLock(ctx context.Context, l *ScheduleLock) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, `
			INSERT INTO schedule_locks (id, company_id, boutique_id, scope_type, scope_value, is_active, reason, locked_by, locked_at, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())
		`, l.ID, l.CompanyID, l.BoutiqueID, l.ScopeType, l.ScopeValue, l.IsActive, l.Reason, l.LockedBy, l.LockedAt)
		return err
	}
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) DeactivateLock(ctx context.Context, l *ScheduleLock) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, `
			UPDATE schedule_locks
			SET is_active = false, unlocked_by = $2, unlocked_at = $3, updated_at = now()
			WHERE id = $1
		`, l.ID, l.UnlockedBy, l.UnlockedAt)
		return err
	}
	return r.db.WithContext(ctx).
		Model(&ScheduleLock{}).
		Where("id = ?", l.ID).
		Updates(map[string]any{
			"is_active":   false,
			"unlocked_by": l.UnlockedBy,
			"unlocked_at": l.UnlockedAt,
		}).Error
}

func (r *repository) FindWeekStatus(ctx context.Context, companyID, boutiqueID string, weekStart time.Time) (*ScheduleWeekStatus, error) {
	if r.tx != nil {
		row := r.tx.QueryRowContext(ctx, `
			SELECT id, company_id, boutique_id, week_start, status, approved_by, approved_at
			FROM schedule_week_statuses
			WHERE company_id = $1 AND boutique_id = $2 AND week_start = $3
		`, companyID, boutiqueID, weekStart)

		var ws ScheduleWeekStatus
		err := row.Scan(&ws.ID, &ws.CompanyID, &ws.BoutiqueID, &ws.WeekStart, &ws.Status, &ws.ApprovedBy, &ws.ApprovedAt)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, gorm.ErrRecordNotFound
		}
		if err != nil {
			return nil, err
		}
		return &ws, nil
	}

	var ws ScheduleWeekStatus
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Where("boutique_id = ?", boutiqueID).
		Where("week_start = ?", weekStart).
		First(&ws).Error
	if err != nil {
		return nil, err
	}
	return &ws, nil
}

func (r *repository) CreateWeekStatus(ctx context.Context, ws *ScheduleWeekStatus) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, `
			INSERT INTO schedule_week_statuses (id, company_id, boutique_id, week_start, status, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, now(), now())
		`, ws.ID, ws.CompanyID, ws.BoutiqueID, ws.WeekStart, ws.Status)
		return err
	}
	return r.db.WithContext(ctx).Create(ws).Error
}

func (r *repository) UpdateWeekStatus(ctx context.Context, ws *ScheduleWeekStatus) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, `
			UPDATE schedule_week_statuses
			SET status = $2, approved_by = $3, approved_at = $4, updated_at = now()
			WHERE id = $1
		`, ws.ID, ws.Status, ws.ApprovedBy, ws.ApprovedAt)
		return err
	}
	return r.db.WithContext(ctx).
		Model(&ScheduleWeekStatus{}).
		Where("id = ?", ws.ID).
		Updates(map[string]any{
			"status":      ws.Status,
			"approved_by": ws.ApprovedBy,
			"approved_at": ws.ApprovedAt,
		}).Error
}
