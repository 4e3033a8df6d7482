package roster

import (
	"context"
	"time"

	"go-roster/internal/employee"
	"go-roster/internal/leave"
	"go-roster/internal/team"
	"go-roster/internal/tenant"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OverrideRow and LeaveRow are read-side projections of tables owned by the
// override and leave modules. The resolver only needs these columns.
type OverrideRow struct {
	EmployeeID      uuid.UUID
	Shift           string
	CoverBoutiqueID *uuid.UUID
}

type LeaveRow struct {
	EmployeeID uuid.UUID
}

//go:generate mockgen -source=roster_repo.go -destination=mock/roster_repo_mock.go -package=mock
type Repository interface {
	FindEmployees(ctx context.Context, scope tenant.LocationScope) ([]employee.Employee, error)
	FindTeamAssignments(ctx context.Context, scope tenant.LocationScope) ([]team.TeamAssignment, error)
	FindActiveOverrides(ctx context.Context, scope tenant.LocationScope, date time.Time) ([]OverrideRow, error)
	FindApprovedLeaves(ctx context.Context, scope tenant.LocationScope, date time.Time) ([]LeaveRow, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindEmployees(ctx context.Context, scope tenant.LocationScope) ([]employee.Employee, error) {
	var rows []employee.Employee
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(scope.CompanyID)).
		Where("boutique_id IN ?", scope.BoutiqueIDs).
		Where("employment_status = ?", employee.StatusActive).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) FindTeamAssignments(ctx context.Context, scope tenant.LocationScope) ([]team.TeamAssignment, error) {
	var rows []team.TeamAssignment
	err := r.db.WithContext(ctx).
		Joins("JOIN employees ON employees.id = team_assignments.employee_id").
		Where("team_assignments.company_id = ?", scope.CompanyID).
		Where("employees.boutique_id IN ?", scope.BoutiqueIDs).
		Order("team_assignments.employee_id ASC, team_assignments.effective_from ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) FindActiveOverrides(ctx context.Context, scope tenant.LocationScope, date time.Time) ([]OverrideRow, error) {
	var rows []OverrideRow
	err := r.db.WithContext(ctx).
		Table("shift_overrides").
		Select("shift_overrides.employee_id, shift_overrides.shift, shift_overrides.cover_boutique_id").
		Joins("JOIN employees ON employees.id = shift_overrides.employee_id").
		Where("shift_overrides.company_id = ?", scope.CompanyID).
		Where("employees.boutique_id IN ?", scope.BoutiqueIDs).
		Where("shift_overrides.date = ?", date).
		Where("shift_overrides.is_active = true").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) FindApprovedLeaves(ctx context.Context, scope tenant.LocationScope, date time.Time) ([]LeaveRow, error) {
	var rows []LeaveRow
	err := r.db.WithContext(ctx).
		Table("leaves").
		Select("leaves.employee_id").
		Joins("JOIN employees ON employees.id = leaves.employee_id").
		Where("leaves.company_id = ?", scope.CompanyID).
		Where("employees.boutique_id IN ?", scope.BoutiqueIDs).
		Where("leaves.status = ?", leave.StatusApproved).
		Where("leaves.start_date <= ? AND leaves.end_date >= ?", date, date).
		Where("leaves.deleted_at IS NULL").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
