package team

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Timeline is an employee's team assignments sorted by effective_from
// ascending.
type Timeline []TeamAssignment

// TeamAsOf returns the team effective on date: the latest row with
// effective_from <= date. ok is false when the employee has no history yet
// as of that date.
func (t Timeline) TeamAsOf(date time.Time) (string, bool) {
	date = Midnight(date)

	// First index with effective_from > date; the row before it wins.
	i := sort.Search(len(t), func(i int) bool {
		return t[i].EffectiveFrom.After(date)
	})
	if i == 0 {
		return "", false
	}
	return t[i-1].Team, true
}

// Latest returns the chronologically last row, nil on an empty timeline.
func (t Timeline) Latest() *TeamAssignment {
	if len(t) == 0 {
		return nil
	}
	return &t[len(t)-1]
}

// BuildTimelines groups assignment rows per employee. Rows must already be
// ordered by effective_from ascending, which the repository guarantees.
func BuildTimelines(rows []TeamAssignment) map[uuid.UUID]Timeline {
	timelines := make(map[uuid.UUID]Timeline)
	for _, row := range rows {
		timelines[row.EmployeeID] = append(timelines[row.EmployeeID], row)
	}
	return timelines
}

// Midnight truncates a timestamp to its calendar date in UTC.
func Midnight(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
