package roster

import (
	"context"
	"time"

	"go-roster/internal/team"
	"go-roster/internal/tenant"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Resolver computes the effective roster for one date and scope. It is a
// pure read: no side effects, safe to call concurrently across dates.
//
//go:generate mockgen -source=roster_resolver.go -destination=mock/roster_resolver_mock.go -package=mock
type Resolver interface {
	Resolve(ctx context.Context, scope tenant.LocationScope, date time.Time) (Roster, error)
}

type resolver struct {
	repo   Repository
	policy TeamShiftPolicy
	logger *zap.Logger
}

func NewResolver(repo Repository, policy TeamShiftPolicy, logger ...*zap.Logger) Resolver {
	l := zap.L().Named("roster.resolver")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("roster.resolver")
	}
	if policy == nil {
		policy = StaticTeamShiftPolicy
	}
	return &resolver{repo: repo, policy: policy, logger: l}
}

func (r *resolver) Resolve(ctx context.Context, scope tenant.LocationScope, date time.Time) (Roster, error) {
	date = team.Midnight(date)

	employees, err := r.repo.FindEmployees(ctx, scope)
	if err != nil {
		return Roster{}, err
	}
	assignments, err := r.repo.FindTeamAssignments(ctx, scope)
	if err != nil {
		return Roster{}, err
	}
	overrides, err := r.repo.FindActiveOverrides(ctx, scope, date)
	if err != nil {
		return Roster{}, err
	}
	leaves, err := r.repo.FindApprovedLeaves(ctx, scope, date)
	if err != nil {
		return Roster{}, err
	}

	timelines := team.BuildTimelines(assignments)

	onLeave := make(map[uuid.UUID]struct{}, len(leaves))
	for _, l := range leaves {
		onLeave[l.EmployeeID] = struct{}{}
	}
	overrideByEmp := make(map[uuid.UUID]OverrideRow, len(overrides))
	for _, o := range overrides {
		overrideByEmp[o.EmployeeID] = o
	}

	roster := Roster{Date: date}
	for _, emp := range employees {
		member := RosterMember{
			EmployeeID:     emp.ID,
			EmployeeNumber: emp.EmployeeNumber,
			FullName:       emp.FullName,
			BoutiqueID:     emp.BoutiqueID,
		}
		if currentTeam, ok := timelines[emp.ID].TeamAsOf(date); ok {
			member.Team = &currentTeam
		}

		// Precedence: approved leave, then active override, then weekly off
		// day, then the team default. First match wins.
		switch {
		case contains(onLeave, emp.ID):
			member.Source = SourceLeave
			roster.OnLeave = append(roster.OnLeave, member)

		case hasOverride(overrideByEmp, emp.ID):
			o := overrideByEmp[emp.ID]
			member.Source = SourceOverride
			member.Shift = o.Shift
			member.CoverBoutiqueID = o.CoverBoutiqueID
			switch o.Shift {
			case ShiftNone:
				roster.Off = append(roster.Off, member)
			case ShiftMorning, ShiftCoverAM:
				roster.Morning = append(roster.Morning, member)
			case ShiftEvening, ShiftCoverPM:
				roster.Evening = append(roster.Evening, member)
			default:
				// Unknown shift value in storage. Treat like NONE but keep
				// the raw value visible for debugging.
				r.logger.Warn("unknown override shift, treating as off",
					zap.String("employee_id", emp.ID.String()),
					zap.String("shift", o.Shift),
				)
				roster.Off = append(roster.Off, member)
			}

		case int(date.Weekday()) == emp.WeeklyOffDay:
			member.Source = SourceWeeklyOff
			roster.Off = append(roster.Off, member)

		case member.Team != nil:
			member.Source = SourceTeam
			member.Shift = r.policy(*member.Team, date)
			if member.Shift == ShiftEvening {
				roster.Evening = append(roster.Evening, member)
			} else {
				roster.Morning = append(roster.Morning, member)
			}

		default:
			// No team history as of this date: incomplete provisioning.
			// Bucket as off and flag, never drop the employee.
			member.Source = SourceUnassigned
			r.logger.Warn("employee has no team history, defaulting to off",
				zap.String("employee_id", emp.ID.String()),
				zap.String("date", date.Format("2006-01-02")),
			)
			roster.Off = append(roster.Off, member)
		}
	}

	return roster, nil
}

func contains(set map[uuid.UUID]struct{}, id uuid.UUID) bool {
	_, ok := set[id]
	return ok
}

func hasOverride(m map[uuid.UUID]OverrideRow, id uuid.UUID) bool {
	_, ok := m[id]
	return ok
}
