package coveragerule

import (
	"context"
	"database/sql"

	"go-roster/internal/tenant"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=coverage_rule_repo.go -destination=mock/coverage_rule_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	FindRule(ctx context.Context, companyID string, boutiqueID *uuid.UUID, dayOfWeek int) (*CoverageRule, error)
	FindAllByCompany(ctx context.Context, companyID string) ([]CoverageRule, error)
	Create(ctx context.Context, r *CoverageRule) error
	Update(ctx context.Context, r *CoverageRule) error
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

func (r *repository) FindRule(ctx context.Context, companyID string, boutiqueID *uuid.UUID, dayOfWeek int) (*CoverageRule, error) {
	q := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("day_of_week = ?", dayOfWeek)
	if boutiqueID != nil {
		q = q.Where("boutique_id = ?", *boutiqueID)
	} else {
		q = q.Where("boutique_id IS NULL")
	}

	var rule CoverageRule
	if err := q.First(&rule).Error; err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]CoverageRule, error) {
	var rules []CoverageRule
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("day_of_week ASC, boutique_id ASC NULLS FIRST").
		Find(&rules).Error
	if err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *repository) Create(ctx context.Context, rule *CoverageRule) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, `
			INSERT INTO coverage_rules (id, company_id, boutique_id, day_of_week, min_am, min_pm, enabled, created_by, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())
		`, rule.ID, rule.CompanyID, rule.BoutiqueID, rule.DayOfWeek, rule.MinAM, rule.MinPM, rule.Enabled, rule.CreatedBy)
		return err
	}
	return r.db.WithContext(ctx).Create(rule).Error
}

func (r *repository) Update(ctx context.Context, rule *CoverageRule) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, `
			UPDATE coverage_rules
			SET min_am = $2, min_pm = $3, enabled = $4, updated_at = now()
			WHERE id = $1
		`, rule.ID, rule.MinAM, rule.MinPM, rule.Enabled)
		return err
	}
	return r.db.WithContext(ctx).
		Model(&CoverageRule{}).
		Where("id = ?", rule.ID).
		Updates(map[string]any{
			"min_am":  rule.MinAM,
			"min_pm":  rule.MinPM,
			"enabled": rule.Enabled,
		}).Error
}
