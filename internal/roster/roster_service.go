package roster

import (
	"context"
	"time"

	rostererrors "go-roster/internal/roster/errors"
	"go-roster/internal/team"
	"go-roster/internal/tenant"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service is the HTTP-facing facade over the resolver, validator and
// suggester. It resolves the caller's location scope and narrows it to a
// requested boutique when one is given.
//
//go:generate mockgen -source=roster_service.go -destination=mock/roster_service_mock.go -package=mock
type Service interface {
	ResolveRoster(ctx context.Context, companyID, actorID, boutiqueID, date string) (RosterResponse, error)
	ValidateCoverage(ctx context.Context, companyID, actorID, boutiqueID, date string) (CoverageResponse, error)
	SuggestCoverage(ctx context.Context, companyID, actorID, boutiqueID, date string) (SuggestionResponse, error)
}

type service struct {
	scopes    tenant.Resolver
	resolver  Resolver
	validator Validator
	suggester Suggester
	logger    *zap.Logger
}

func NewService(
	scopes tenant.Resolver,
	resolver Resolver,
	validator Validator,
	suggester Suggester,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("roster.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("roster.service")
	}
	return &service{
		scopes:    scopes,
		resolver:  resolver,
		validator: validator,
		suggester: suggester,
		logger:    l,
	}
}

func (s *service) ResolveRoster(ctx context.Context, companyID, actorID, boutiqueID, date string) (RosterResponse, error) {
	scope, day, err := s.scopeAndDate(ctx, companyID, actorID, boutiqueID, date)
	if err != nil {
		return RosterResponse{}, err
	}

	roster, err := s.resolver.Resolve(ctx, scope, day)
	if err != nil {
		return RosterResponse{}, err
	}

	return RosterResponse{
		Date:    day.Format("2006-01-02"),
		Morning: emptyIfNil(roster.Morning),
		Evening: emptyIfNil(roster.Evening),
		Off:     emptyIfNil(roster.Off),
		OnLeave: emptyIfNil(roster.OnLeave),
	}, nil
}

func (s *service) ValidateCoverage(ctx context.Context, companyID, actorID, boutiqueID, date string) (CoverageResponse, error) {
	scope, day, err := s.scopeAndDate(ctx, companyID, actorID, boutiqueID, date)
	if err != nil {
		return CoverageResponse{}, err
	}

	violations, err := s.validator.Validate(ctx, scope, day)
	if err != nil {
		return CoverageResponse{}, err
	}

	return CoverageResponse{
		Date:       day.Format("2006-01-02"),
		Compliant:  len(violations) == 0,
		Violations: violations,
	}, nil
}

func (s *service) SuggestCoverage(ctx context.Context, companyID, actorID, boutiqueID, date string) (SuggestionResponse, error) {
	scope, day, err := s.scopeAndDate(ctx, companyID, actorID, boutiqueID, date)
	if err != nil {
		return SuggestionResponse{}, err
	}

	result, err := s.suggester.Suggest(ctx, scope, day)
	if err != nil {
		return SuggestionResponse{}, err
	}

	return SuggestionResponse{
		Date:        day.Format("2006-01-02"),
		Suggestion:  result.Suggestion,
		Explanation: result.Explanation,
	}, nil
}

func (s *service) scopeAndDate(ctx context.Context, companyID, actorID, boutiqueID, date string) (tenant.LocationScope, time.Time, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return tenant.LocationScope{}, time.Time{}, rostererrors.ErrInvalidDateFormat
	}
	day = team.Midnight(day)

	scope, err := s.scopes.ResolveScope(ctx, companyID, actorID)
	if err != nil {
		return tenant.LocationScope{}, time.Time{}, err
	}
	if len(scope.BoutiqueIDs) == 0 {
		return tenant.LocationScope{}, time.Time{}, rostererrors.ErrEmptyScope
	}

	if boutiqueID != "" {
		boutiqueUUID, err := uuid.Parse(boutiqueID)
		if err != nil {
			return tenant.LocationScope{}, time.Time{}, rostererrors.ErrInvalidBoutiqueID
		}
		if !scope.Contains(boutiqueUUID) {
			return tenant.LocationScope{}, time.Time{}, rostererrors.ErrBoutiqueNotInScope
		}
		scope = tenant.LocationScope{CompanyID: scope.CompanyID, BoutiqueIDs: []uuid.UUID{boutiqueUUID}}
	}

	return scope, day, nil
}

func emptyIfNil(members []RosterMember) []RosterMember {
	if members == nil {
		return []RosterMember{}
	}
	return members
}
