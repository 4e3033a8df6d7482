package roster_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"go-roster/internal/employee"
	"go-roster/internal/roster"
	"go-roster/internal/team"

	"github.com/stretchr/testify/assert"
)

func suggesterFixture(repo *fakeRosterRepo, limits roster.Limits) roster.Suggester {
	resolver := roster.NewResolver(repo, nil)
	validator := roster.NewValidator(resolver, &fakePolicyStore{limits: limits}, nil)
	return roster.NewSuggester(resolver, validator)
}

func TestSuggester_NoViolation(t *testing.T) {
	longAgo := monday.AddDate(-1, 0, 0)
	empA := makeEmployee(int(time.Sunday))
	empB1 := makeEmployee(int(time.Sunday))
	empB2 := makeEmployee(int(time.Sunday))
	repo := &fakeRosterRepo{
		employees: []employee.Employee{empA, empB1, empB2},
		assignments: []team.TeamAssignment{
			assignedSince(empA.ID, team.TeamA, longAgo),
			assignedSince(empB1.ID, team.TeamB, longAgo),
			assignedSince(empB2.ID, team.TeamB, longAgo),
		},
	}

	result, err := suggesterFixture(repo, roster.Limits{MinAM: 0, MinPM: 2}).
		Suggest(context.Background(), testScope(), monday)

	assert.NoError(t, err)
	assert.Nil(t, result.Suggestion)
	assert.NotEmpty(t, result.Explanation)
}

func TestSuggester_MovesMorningEmployee(t *testing.T) {
	longAgo := monday.AddDate(-1, 0, 0)
	empA1 := makeEmployee(int(time.Sunday))
	empA2 := makeEmployee(int(time.Sunday))
	empB := makeEmployee(int(time.Sunday))
	repo := &fakeRosterRepo{
		employees: []employee.Employee{empA1, empA2, empB},
		assignments: []team.TeamAssignment{
			assignedSince(empA1.ID, team.TeamA, longAgo),
			assignedSince(empA2.ID, team.TeamA, longAgo),
			assignedSince(empB.ID, team.TeamB, longAgo),
		},
	}

	result, err := suggesterFixture(repo, roster.Limits{MinAM: 2, MinPM: 2}).
		Suggest(context.Background(), testScope(), monday)

	assert.NoError(t, err)
	assert.NotNil(t, result.Suggestion)
	assert.Equal(t, roster.ShiftMorning, result.Suggestion.FromShift)
	assert.Equal(t, roster.ShiftEvening, result.Suggestion.ToShift)

	// Deterministic tie-break: lowest employee id wins.
	ids := []string{empA1.ID.String(), empA2.ID.String()}
	sort.Strings(ids)
	assert.Equal(t, ids[0], result.Suggestion.EmployeeID.String())
}

func TestSuggester_PrefersNonOverriddenCandidate(t *testing.T) {
	longAgo := monday.AddDate(-1, 0, 0)
	overridden := makeEmployee(int(time.Sunday))
	plain := makeEmployee(int(time.Sunday))
	repo := &fakeRosterRepo{
		employees: []employee.Employee{overridden, plain},
		assignments: []team.TeamAssignment{
			assignedSince(overridden.ID, team.TeamB, longAgo),
			assignedSince(plain.ID, team.TeamA, longAgo),
		},
		overrides: []roster.OverrideRow{{EmployeeID: overridden.ID, Shift: roster.ShiftMorning}},
	}

	result, err := suggesterFixture(repo, roster.Limits{MinAM: 0, MinPM: 2}).
		Suggest(context.Background(), testScope(), monday)

	assert.NoError(t, err)
	assert.NotNil(t, result.Suggestion)
	assert.Equal(t, plain.ID, result.Suggestion.EmployeeID)
}

func TestSuggester_CoverShiftKeepsCoverVariant(t *testing.T) {
	covering := makeEmployee(int(time.Sunday))
	repo := &fakeRosterRepo{
		employees: []employee.Employee{covering},
		overrides: []roster.OverrideRow{{EmployeeID: covering.ID, Shift: roster.ShiftCoverAM}},
	}

	result, err := suggesterFixture(repo, roster.Limits{MinAM: 0, MinPM: 2}).
		Suggest(context.Background(), testScope(), monday)

	assert.NoError(t, err)
	assert.NotNil(t, result.Suggestion)
	assert.Equal(t, roster.ShiftCoverAM, result.Suggestion.FromShift)
	assert.Equal(t, roster.ShiftCoverPM, result.Suggestion.ToShift)
}

func TestSuggester_NoEligibleCandidate(t *testing.T) {
	longAgo := monday.AddDate(-1, 0, 0)
	empB := makeEmployee(int(time.Sunday))
	repo := &fakeRosterRepo{
		employees:   []employee.Employee{empB},
		assignments: []team.TeamAssignment{assignedSince(empB.ID, team.TeamB, longAgo)},
	}

	// Evening is below the floor but the morning bucket is empty, so there
	// is nobody to move.
	result, err := suggesterFixture(repo, roster.Limits{MinAM: 0, MinPM: 2}).
		Suggest(context.Background(), testScope(), monday)

	assert.NoError(t, err)
	assert.Nil(t, result.Suggestion)
	assert.NotEmpty(t, result.Explanation)
}
