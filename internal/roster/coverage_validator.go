package roster

import (
	"context"
	"fmt"
	"time"

	"go-roster/internal/team"
	"go-roster/internal/tenant"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Limits is the effective coverage rule for one (weekday, location) pair.
type Limits struct {
	MinAM int
	MinPM int
}

// PolicyStore resolves the effective rule with location-over-global
// precedence. A nil boutiqueID asks for the global rule.
//
//go:generate mockgen -source=coverage_validator.go -destination=mock/coverage_validator_mock.go -package=mock
type PolicyStore interface {
	EffectiveRule(ctx context.Context, companyID string, boutiqueID *uuid.UUID, weekday time.Weekday) (Limits, error)
}

type Validator interface {
	Validate(ctx context.Context, scope tenant.LocationScope, date time.Time) ([]Violation, error)
}

type validator struct {
	resolver Resolver
	policy   PolicyStore
	cache    *CoverageCache
	logger   *zap.Logger
}

func NewValidator(resolver Resolver, policy PolicyStore, cache *CoverageCache, logger ...*zap.Logger) Validator {
	l := zap.L().Named("roster.validator")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("roster.validator")
	}
	return &validator{resolver: resolver, policy: policy, cache: cache, logger: l}
}

func (v *validator) Validate(ctx context.Context, scope tenant.LocationScope, date time.Time) ([]Violation, error) {
	date = team.Midnight(date)

	if cached, ok := v.cache.Get(ctx, scope, date); ok {
		return cached, nil
	}

	roster, err := v.resolver.Resolve(ctx, scope, date)
	if err != nil {
		return nil, err
	}

	limits, err := v.effectiveLimits(ctx, scope, date.Weekday())
	if err != nil {
		return nil, err
	}

	violations := CheckCoverage(roster, limits, date)
	v.cache.Set(ctx, scope, date, violations)
	return violations, nil
}

// effectiveLimits uses the boutique rule for a single-location scope. A
// multi-location scope has no single effective row, so the global rule
// applies.
func (v *validator) effectiveLimits(ctx context.Context, scope tenant.LocationScope, weekday time.Weekday) (Limits, error) {
	var boutiqueID *uuid.UUID
	if len(scope.BoutiqueIDs) == 1 {
		boutiqueID = &scope.BoutiqueIDs[0]
	}
	return v.policy.EffectiveRule(ctx, scope.CompanyID, boutiqueID, weekday)
}

// CheckCoverage applies the PM-dominant, Friday-PM-only policy to a
// resolved roster. Pure function, exported so the suggester and the week
// pre-validation consumer reuse the same rules.
func CheckCoverage(roster Roster, limits Limits, date time.Time) []Violation {
	am := len(roster.Morning)
	pm := len(roster.Evening)
	violations := []Violation{}

	if date.Weekday() == time.Friday {
		// Friday is evening-only and exempt from the floor of two: the
		// configured minimum is taken as is, even zero.
		if am > 0 {
			violations = append(violations, Violation{
				Type:    ViolationAMOnFriday,
				Message: fmt.Sprintf("friday is an evening-only day but %d employee(s) are rostered for morning", am),
			})
		}
		if pm < limits.MinPM {
			violations = append(violations, Violation{
				Type:    ViolationMinPM,
				Message: fmt.Sprintf("evening headcount %d is below the required minimum %d", pm, limits.MinPM),
			})
		}
		return violations
	}

	if am > pm {
		violations = append(violations, Violation{
			Type:    ViolationAMGreaterThanPM,
			Message: fmt.Sprintf("morning headcount %d exceeds evening headcount %d", am, pm),
		})
	}
	if minPM := max(limits.MinPM, 2); pm < minPM {
		violations = append(violations, Violation{
			Type:    ViolationMinPM,
			Message: fmt.Sprintf("evening headcount %d is below the required minimum %d", pm, minPM),
		})
	}
	return violations
}
