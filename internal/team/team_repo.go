package team

import (
	"context"
	"database/sql"
	"time"

	"go-roster/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=team_repo.go -destination=mock/team_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	// LockEmployee serializes concurrent reassignments of the same employee.
	// Only valid on a tx-bound repository; the lock is released on commit or
	// rollback.
	LockEmployee(ctx context.Context, employeeID string) error

	AppendAssignment(ctx context.Context, a *TeamAssignment) error
	AppendHistory(ctx context.Context, h *TeamHistory) error
	FindTimeline(ctx context.Context, companyID, employeeID string) (Timeline, error)
	LatestEffectiveFrom(ctx context.Context, companyID, employeeID string) (*time.Time, error)
	FindAllByScope(ctx context.Context, scope tenant.LocationScope) ([]TeamAssignment, error)
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

func (r *repository) LockEmployee(ctx context.Context, employeeID string) error {
	if r.tx == nil {
		return sql.ErrTxDone
	}
	_, err := r.tx.ExecContext(ctx,
		`SELECT pg_advisory_xact_lock(hashtext('team_reassignment:' || $1))`,
		employeeID,
	)
	return err
}

func (r *repository) AppendAssignment(ctx context.Context, a *TeamAssignment) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, `
			INSERT INTO team_assignments (id, company_id, employee_id, team, effective_from, reason, created_by, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		`, a.ID, a.CompanyID, a.EmployeeID, a.Team, a.EffectiveFrom, a.Reason, a.CreatedBy)
		return err
	}
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) AppendHistory(ctx context.Context, h *TeamHistory) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, `
			INSERT INTO team_history (id, company_id, employee_id, from_team, to_team, effective_from, reason, created_by, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
		`, h.ID, h.CompanyID, h.EmployeeID, h.FromTeam, h.ToTeam, h.EffectiveFrom, h.Reason, h.CreatedBy)
		return err
	}
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *repository) FindTimeline(ctx context.Context, companyID, employeeID string) (Timeline, error) {
	if r.tx != nil {
		rows, err := r.tx.QueryContext(ctx, `
			SELECT id, company_id, employee_id, team, effective_from, reason, created_by, created_at
			FROM team_assignments
			WHERE company_id = $1 AND employee_id = $2
			ORDER BY effective_from ASC
		`, companyID, employeeID)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		var timeline Timeline
		for rows.Next() {
			var a TeamAssignment
			if err := rows.Scan(&a.ID, &a.CompanyID, &a.EmployeeID, &a.Team, &a.EffectiveFrom, &a.Reason, &a.CreatedBy, &a.CreatedAt); err != nil {
				return nil, err
			}
			timeline = append(timeline, a)
		}
		return timeline, rows.Err()
	}

	var timeline Timeline
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Order("effective_from ASC").
		Find(&timeline).Error
	return timeline, err
}

func (r *repository) LatestEffectiveFrom(ctx context.Context, companyID, employeeID string) (*time.Time, error) {
	// The timeline and its history mirror always move together, so the
	// assignments table alone is authoritative for the latest date.
	timeline, err := r.FindTimeline(ctx, companyID, employeeID)
	if err != nil {
		return nil, err
	}
	latest := timeline.Latest()
	if latest == nil {
		return nil, nil
	}
	t := latest.EffectiveFrom
	return &t, nil
}

func (r *repository) FindAllByScope(ctx context.Context, scope tenant.LocationScope) ([]TeamAssignment, error) {
	var rows []TeamAssignment
	err := r.db.WithContext(ctx).
		Table("team_assignments").
		Select("team_assignments.*").
		Joins("JOIN employees ON employees.id = team_assignments.employee_id").
		Where("team_assignments.company_id = ?", scope.CompanyID).
		Where("employees.boutique_id IN ?", scope.BoutiqueIDs).
		Order("team_assignments.employee_id, team_assignments.effective_from ASC").
		Scan(&rows).Error
	return rows, err
}
