package roster

import (
	"time"

	"go-roster/internal/team"
)

// TeamShiftPolicy maps a team to its default shift for a date. The mapping
// is injectable because some companies rotate it, e.g. by week parity.
type TeamShiftPolicy func(teamName string, date time.Time) string

// StaticTeamShiftPolicy is the common configuration: team A opens, team B
// closes, every week.
func StaticTeamShiftPolicy(teamName string, _ time.Time) string {
	if teamName == team.TeamB {
		return ShiftEvening
	}
	return ShiftMorning
}

// AlternatingTeamShiftPolicy swaps the two teams on odd ISO weeks.
func AlternatingTeamShiftPolicy(teamName string, date time.Time) string {
	_, week := date.ISOWeek()
	swap := week%2 == 1
	if (teamName == team.TeamB) != swap {
		return ShiftEvening
	}
	return ShiftMorning
}
