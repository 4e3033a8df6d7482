package override

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go-roster/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=override_repo.go -destination=mock/override_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	// LockEmployeeDate serializes concurrent writes for one (employee,
	// date) pair. Tx-bound only.
	LockEmployeeDate(ctx context.Context, employeeID string, date time.Time) error

	FindByEmployeeAndDate(ctx context.Context, companyID, employeeID string, date time.Time) (*ShiftOverride, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*ShiftOverride, error)
	FindActiveByDate(ctx context.Context, scope tenant.LocationScope, date time.Time) ([]ShiftOverride, error)
	Create(ctx context.Context, o *ShiftOverride) error
	Update(ctx context.Context, o *ShiftOverride) error
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

func (r *repository) LockEmployeeDate(ctx context.Context, employeeID string, date time.Time) error {
	if r.tx == nil {
		return sql.ErrTxDone
	}
	_, err := r.tx.ExecContext(ctx,
		`SELECT pg_advisory_xact_lock(hashtext('shift_override:' || $1 || ':' || $2))`,
		employeeID, date.Format("2006-01-02"),
	)
	return err
}

func (r *repository) FindByEmployeeAndDate(ctx context.Context, companyID, employeeID string, date time.Time) (*ShiftOverride, error) {
	if r.tx != nil {
		row := r.tx.QueryRowContext(ctx, `
			SELECT id, company_id, employee_id, date, shift, cover_boutique_id, reason, is_active, created_by
			FROM shift_overrides
			WHERE company_id = $1 AND employee_id = $2 AND date = $3
		`, companyID, employeeID, date)

		var o ShiftOverride
		err := row.Scan(&o.ID, &o.CompanyID, &o.EmployeeID, &o.Date, &o.Shift, &o.CoverBoutiqueID, &o.Reason, &o.IsActive, &o.CreatedBy)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, gorm.ErrRecordNotFound
		}
		if err != nil {
			return nil, err
		}
		return &o, nil
	}

	var o ShiftOverride
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Where("date = ?", date).
		First(&o).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*ShiftOverride, error) {
	var o ShiftOverride
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", id).
		First(&o).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *repository) FindActiveByDate(ctx context.Context, scope tenant.LocationScope, date time.Time) ([]ShiftOverride, error) {
	var rows []ShiftOverride
	err := r.db.WithContext(ctx).
		Joins("JOIN employees ON employees.id = shift_overrides.employee_id").
		Where("shift_overrides.company_id = ?", scope.CompanyID).
		Where("employees.boutique_id IN ?", scope.BoutiqueIDs).
		Where("shift_overrides.date = ?", date).
		Where("shift_overrides.is_active = true").
		Order("shift_overrides.employee_id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) Create(ctx context.Context, o *ShiftOverride) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, `
			INSERT INTO shift_overrides (id, company_id, employee_id, date, shift, cover_boutique_id, reason, is_active, created_by, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())
		`, o.ID, o.CompanyID, o.EmployeeID, o.Date, o.Shift, o.CoverBoutiqueID, o.Reason, o.IsActive, o.CreatedBy)
		return err
	}
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *repository) Update(ctx context.Context, o *ShiftOverride) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, `
			UPDATE shift_overrides
			SET shift = $2, cover_boutique_id = $3, reason = $4, is_active = $5, created_by = $6, updated_at = now()
			WHERE id = $1
		`, o.ID, o.Shift, o.CoverBoutiqueID, o.Reason, o.IsActive, o.CreatedBy)
		return err
	}
	return r.db.WithContext(ctx).
		Model(&ShiftOverride{}).
		Where("id = ?", o.ID).
		Updates(map[string]any{
			"shift":             o.Shift,
			"cover_boutique_id": o.CoverBoutiqueID,
			"reason":            o.Reason,
			"is_active":         o.IsActive,
			"created_by":        o.CreatedBy,
		}).Error
}
