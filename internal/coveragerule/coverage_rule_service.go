package coveragerule

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go-roster/internal/audit"
	coveragerulerrors "go-roster/internal/coveragerule/errors"
	"go-roster/internal/roster"
	"go-roster/internal/tenant"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CoverageInvalidator interface {
	Invalidate(ctx context.Context, companyID string, boutiqueIDs ...uuid.UUID) error
}

// Service manages rule rows and answers effective-rule lookups. It is the
// local roster.PolicyStore implementation.
//
//go:generate mockgen -source=coverage_rule_service.go -destination=mock/coverage_rule_service_mock.go -package=mock
type Service interface {
	EffectiveRule(ctx context.Context, companyID string, boutiqueID *uuid.UUID, weekday time.Weekday) (roster.Limits, error)
	UpsertRule(ctx context.Context, companyID, actorID string, req UpsertRuleRequest) (RuleResponse, error)
	ListRules(ctx context.Context, companyID string) ([]RuleResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	scopes    tenant.Resolver
	auditSink audit.Sink
	coverage  CoverageInvalidator
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	scopes tenant.Resolver,
	auditSink audit.Sink,
	coverage CoverageInvalidator,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("coveragerule.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("coveragerule.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		scopes:    scopes,
		auditSink: auditSink,
		coverage:  coverage,
		logger:    l,
	}
}

// EffectiveRule resolves location-over-global precedence: an enabled
// boutique row wins, then the enabled global row, then the defaults.
func (s *service) EffectiveRule(ctx context.Context, companyID string, boutiqueID *uuid.UUID, weekday time.Weekday) (roster.Limits, error) {
	if boutiqueID != nil {
		rule, err := s.repo.FindRule(ctx, companyID, boutiqueID, int(weekday))
		if err == nil && rule.Enabled {
			return roster.Limits{MinAM: rule.MinAM, MinPM: rule.MinPM}, nil
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return roster.Limits{}, err
		}
	}

	rule, err := s.repo.FindRule(ctx, companyID, nil, int(weekday))
	if err == nil && rule.Enabled {
		return roster.Limits{MinAM: rule.MinAM, MinPM: rule.MinPM}, nil
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return roster.Limits{}, err
	}

	return roster.Limits{MinAM: DefaultMinAM, MinPM: DefaultMinPM}, nil
}

func (s *service) UpsertRule(ctx context.Context, companyID, actorID string, req UpsertRuleRequest) (RuleResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return RuleResponse{}, coveragerulerrors.ErrInvalidCompanyID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return RuleResponse{}, coveragerulerrors.ErrInvalidActorID
	}
	if req.DayOfWeek < 0 || req.DayOfWeek > 6 {
		return RuleResponse{}, coveragerulerrors.ErrInvalidDayOfWeek
	}
	if req.MinAM < 0 || req.MinPM < 0 {
		return RuleResponse{}, coveragerulerrors.ErrNegativeMinimum
	}

	var boutiqueID *uuid.UUID
	if req.BoutiqueID != nil {
		id, err := uuid.Parse(*req.BoutiqueID)
		if err != nil {
			return RuleResponse{}, coveragerulerrors.ErrInvalidBoutiqueID
		}
		boutiqueID = &id
	}
	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return RuleResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	existing, err := qtx.FindRule(ctx, companyID, boutiqueID, req.DayOfWeek)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return RuleResponse{}, err
	}

	var before any
	var rule *CoverageRule
	if existing != nil {
		before = ruleSnapshot(*existing)
		existing.MinAM = req.MinAM
		existing.MinPM = req.MinPM
		existing.Enabled = enabled
		if err := qtx.Update(ctx, existing); err != nil {
			return RuleResponse{}, err
		}
		rule = existing
	} else {
		rule = &CoverageRule{
			ID:         uuid.New(),
			CompanyID:  companyUUID,
			BoutiqueID: boutiqueID,
			DayOfWeek:  req.DayOfWeek,
			MinAM:      req.MinAM,
			MinPM:      req.MinPM,
			Enabled:    enabled,
			CreatedBy:  actorUUID,
		}
		if err := qtx.Create(ctx, rule); err != nil {
			return RuleResponse{}, err
		}
	}

	if err := s.auditSink.WithTx(tx).Write(ctx, audit.Entry{
		CompanyID:  companyID,
		ActorID:    actorID,
		Action:     "COVERAGE_RULE_SET",
		EntityType: "coverage_rule",
		EntityID:   rule.ID.String(),
		Before:     before,
		After:      ruleSnapshot(*rule),
		Context:    map[string]any{"day_of_week": req.DayOfWeek},
	}); err != nil {
		return RuleResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return RuleResponse{}, err
	}

	s.invalidateAffected(ctx, companyID, actorID, boutiqueID)

	s.logger.Info("coverage rule set",
		zap.Int("day_of_week", req.DayOfWeek),
		zap.Int("min_am", req.MinAM),
		zap.Int("min_pm", req.MinPM),
		zap.Bool("enabled", enabled),
	)
	return mapRuleResponse(*rule), nil
}

func (s *service) ListRules(ctx context.Context, companyID string) ([]RuleResponse, error) {
	rules, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	resp := make([]RuleResponse, len(rules))
	for i, rule := range rules {
		resp[i] = mapRuleResponse(rule)
	}
	return resp, nil
}

// invalidateAffected clears memoized validations for the boutique the rule
// targets, or for every boutique in the caller's scope when the rule is
// global.
func (s *service) invalidateAffected(ctx context.Context, companyID, actorID string, boutiqueID *uuid.UUID) {
	var boutiques []uuid.UUID
	if boutiqueID != nil {
		boutiques = []uuid.UUID{*boutiqueID}
	} else {
		scope, err := s.scopes.ResolveScope(ctx, companyID, actorID)
		if err != nil {
			s.logger.Error("coverage rule scope resolution for invalidation failed", zap.Error(err))
			return
		}
		boutiques = scope.BoutiqueIDs
	}
	if len(boutiques) == 0 {
		return
	}
	if err := s.coverage.Invalidate(ctx, companyID, boutiques...); err != nil {
		s.logger.Error("coverage rule cache invalidation failed", zap.Error(err))
	}
}

func ruleSnapshot(r CoverageRule) map[string]any {
	return map[string]any{
		"min_am":  r.MinAM,
		"min_pm":  r.MinPM,
		"enabled": r.Enabled,
	}
}

func mapRuleResponse(r CoverageRule) RuleResponse {
	resp := RuleResponse{
		ID:        r.ID.String(),
		DayOfWeek: r.DayOfWeek,
		MinAM:     r.MinAM,
		MinPM:     r.MinPM,
		Enabled:   r.Enabled,
	}
	if r.BoutiqueID != nil {
		v := r.BoutiqueID.String()
		resp.BoutiqueID = &v
	}
	return resp
}
