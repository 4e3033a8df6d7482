package roster

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go-roster/internal/team"
	"go-roster/internal/tenant"

	"go.uber.org/zap"
)

// Suggester proposes at most one single-employee move to relieve a
// coverage violation. Advisory only: applying the move is the override
// module's job.
type Suggester interface {
	Suggest(ctx context.Context, scope tenant.LocationScope, date time.Time) (SuggestionResult, error)
}

type suggester struct {
	resolver  Resolver
	validator Validator
	logger    *zap.Logger
}

func NewSuggester(resolver Resolver, validator Validator, logger ...*zap.Logger) Suggester {
	l := zap.L().Named("roster.suggester")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("roster.suggester")
	}
	return &suggester{resolver: resolver, validator: validator, logger: l}
}

func (s *suggester) Suggest(ctx context.Context, scope tenant.LocationScope, date time.Time) (SuggestionResult, error) {
	date = team.Midnight(date)

	violations, err := s.validator.Validate(ctx, scope, date)
	if err != nil {
		return SuggestionResult{}, err
	}
	if len(violations) == 0 {
		return SuggestionResult{
			Explanation: "coverage is compliant for this date, nothing to fix",
		}, nil
	}

	roster, err := s.resolver.Resolve(ctx, scope, date)
	if err != nil {
		return SuggestionResult{}, err
	}

	candidate := pickCandidate(roster.Morning)
	if candidate == nil {
		return SuggestionResult{
			Explanation: "no eligible morning employee to move: the morning bucket is empty or every member is already on an override",
		}, nil
	}

	toShift := ShiftEvening
	if candidate.Shift == ShiftCoverAM {
		toShift = ShiftCoverPM
	}

	return SuggestionResult{
		Suggestion: &Suggestion{
			EmployeeID:   candidate.EmployeeID,
			EmployeeName: candidate.FullName,
			FromShift:    candidate.Shift,
			ToShift:      toShift,
		},
		Explanation: fmt.Sprintf(
			"moving %s (%s) from %s to %s reduces the morning surplus and raises evening headcount by one",
			candidate.FullName, candidate.EmployeeNumber, candidate.Shift, toShift,
		),
	}, nil
}

// pickCandidate selects from the morning bucket only. Employees already on
// an override are a last resort; ties break on employee id ascending so the
// proposal is reproducible.
func pickCandidate(morning []RosterMember) *RosterMember {
	if len(morning) == 0 {
		return nil
	}

	sorted := make([]RosterMember, len(morning))
	copy(sorted, morning)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].EmployeeID.String() < sorted[j].EmployeeID.String()
	})

	for i := range sorted {
		if sorted[i].Source != SourceOverride {
			return &sorted[i]
		}
	}
	return &sorted[0]
}
