package roster_test

import (
	"context"
	"testing"
	"time"

	"go-roster/internal/employee"
	"go-roster/internal/roster"
	"go-roster/internal/team"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func violationTypes(violations []roster.Violation) []string {
	types := make([]string, len(violations))
	for i, v := range violations {
		types[i] = v.Type
	}
	return types
}

func rosterWithCounts(am, pm int) roster.Roster {
	r := roster.Roster{}
	for i := 0; i < am; i++ {
		r.Morning = append(r.Morning, roster.RosterMember{EmployeeID: uuid.New(), Shift: roster.ShiftMorning})
	}
	for i := 0; i < pm; i++ {
		r.Evening = append(r.Evening, roster.RosterMember{EmployeeID: uuid.New(), Shift: roster.ShiftEvening})
	}
	return r
}

func TestCheckCoverage(t *testing.T) {
	cases := []struct {
		name   string
		date   time.Time
		limits roster.Limits
		am     int
		pm     int
		want   []string
	}{
		{
			name:   "monday pm-dominant roster is compliant",
			date:   monday,
			limits: roster.Limits{MinAM: 2, MinPM: 2},
			am:     1, pm: 2,
			want: []string{},
		},
		{
			name:   "monday am surplus and thin evening",
			date:   monday,
			limits: roster.Limits{MinAM: 2, MinPM: 2},
			am:     2, pm: 1,
			want: []string{roster.ViolationAMGreaterThanPM, roster.ViolationMinPM},
		},
		{
			name:   "evening floor holds even when configured minimum is lower",
			date:   monday,
			limits: roster.Limits{MinAM: 2, MinPM: 0},
			am:     1, pm: 1,
			want: []string{roster.ViolationMinPM},
		},
		{
			name:   "floor satisfied when evening reaches two",
			date:   monday,
			limits: roster.Limits{MinAM: 2, MinPM: 0},
			am:     2, pm: 2,
			want: []string{},
		},
		{
			name:   "configured minimum above the floor wins",
			date:   monday,
			limits: roster.Limits{MinAM: 0, MinPM: 4},
			am:     0, pm: 3,
			want: []string{roster.ViolationMinPM},
		},
		{
			name:   "friday evening-only roster is compliant",
			date:   friday,
			limits: roster.Limits{MinAM: 0, MinPM: 2},
			am:     0, pm: 2,
			want: []string{},
		},
		{
			name:   "friday morning staffing is flagged",
			date:   friday,
			limits: roster.Limits{MinAM: 0, MinPM: 2},
			am:     1, pm: 2,
			want: []string{roster.ViolationAMOnFriday},
		},
		{
			name:   "friday is exempt from the floor of two",
			date:   friday,
			limits: roster.Limits{MinAM: 0, MinPM: 0},
			am:     0, pm: 1,
			want: []string{},
		},
		{
			name:   "friday configured minimum still applies",
			date:   friday,
			limits: roster.Limits{MinAM: 0, MinPM: 3},
			am:     0, pm: 2,
			want: []string{roster.ViolationMinPM},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := roster.CheckCoverage(rosterWithCounts(tc.am, tc.pm), tc.limits, tc.date)
			assert.ElementsMatch(t, tc.want, violationTypes(got))
		})
	}
}

func TestCheckCoverage_FloorInvariant(t *testing.T) {
	limits := roster.Limits{MinAM: 0, MinPM: 1}
	floor := 2 // max(minPM, 2)

	for pm := 0; pm <= 4; pm++ {
		got := roster.CheckCoverage(rosterWithCounts(0, pm), limits, monday)
		types := violationTypes(got)
		if pm < floor {
			assert.Contains(t, types, roster.ViolationMinPM, "pm=%d", pm)
		} else {
			assert.NotContains(t, types, roster.ViolationMinPM, "pm=%d", pm)
		}
	}
}

type fakePolicyStore struct {
	limits   roster.Limits
	byLoc    map[uuid.UUID]roster.Limits
	askedLoc []*uuid.UUID
}

func (f *fakePolicyStore) EffectiveRule(ctx context.Context, companyID string, boutiqueID *uuid.UUID, weekday time.Weekday) (roster.Limits, error) {
	f.askedLoc = append(f.askedLoc, boutiqueID)
	if boutiqueID != nil {
		if limits, ok := f.byLoc[*boutiqueID]; ok {
			return limits, nil
		}
	}
	return f.limits, nil
}

func TestValidator_Validate(t *testing.T) {
	longAgo := monday.AddDate(-1, 0, 0)

	// Two on morning, one on evening: AM_GT_PM plus MIN_PM under the floor.
	empA1 := makeEmployee(int(time.Sunday))
	empA2 := makeEmployee(int(time.Sunday))
	empB1 := makeEmployee(int(time.Sunday))
	repo := &fakeRosterRepo{
		employees: []employee.Employee{empA1, empA2, empB1},
		assignments: []team.TeamAssignment{
			assignedSince(empA1.ID, team.TeamA, longAgo),
			assignedSince(empA2.ID, team.TeamA, longAgo),
			assignedSince(empB1.ID, team.TeamB, longAgo),
		},
	}

	policy := &fakePolicyStore{limits: roster.Limits{MinAM: 2, MinPM: 2}}
	validator := roster.NewValidator(roster.NewResolver(repo, nil), policy, nil)

	violations, err := validator.Validate(context.Background(), testScope(), monday)

	assert.NoError(t, err)
	assert.ElementsMatch(t,
		[]string{roster.ViolationAMGreaterThanPM, roster.ViolationMinPM},
		violationTypes(violations),
	)

	// Single-boutique scope resolves the boutique-specific rule.
	assert.Len(t, policy.askedLoc, 1)
	assert.NotNil(t, policy.askedLoc[0])
	assert.Equal(t, testBoutiqueID, *policy.askedLoc[0])
}
