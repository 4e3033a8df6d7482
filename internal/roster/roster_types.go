package roster

import (
	"time"

	"github.com/google/uuid"
)

const (
	ShiftMorning = "MORNING"
	ShiftEvening = "EVENING"
	ShiftCoverAM = "COVER_X_AM"
	ShiftCoverPM = "COVER_X_PM"
	ShiftNone    = "NONE"
)

func IsValidOverrideShift(shift string) bool {
	switch shift {
	case ShiftMorning, ShiftEvening, ShiftCoverAM, ShiftCoverPM, ShiftNone:
		return true
	}
	return false
}

// Source records which precedence rule placed a member in their bucket.
const (
	SourceLeave      = "LEAVE"
	SourceOverride   = "OVERRIDE"
	SourceWeeklyOff  = "WEEKLY_OFF"
	SourceTeam       = "TEAM"
	SourceUnassigned = "UNASSIGNED"
)

type RosterMember struct {
	EmployeeID      uuid.UUID  `json:"employee_id"`
	EmployeeNumber  string     `json:"employee_number"`
	FullName        string     `json:"full_name"`
	BoutiqueID      uuid.UUID  `json:"boutique_id"`
	Team            *string    `json:"team,omitempty"`
	Shift           string     `json:"shift"`
	Source          string     `json:"source"`
	CoverBoutiqueID *uuid.UUID `json:"cover_boutique_id,omitempty"`
}

// Roster partitions every employee in scope into exactly one bucket.
type Roster struct {
	Date    time.Time      `json:"-"`
	Morning []RosterMember `json:"morning"`
	Evening []RosterMember `json:"evening"`
	Off     []RosterMember `json:"off"`
	OnLeave []RosterMember `json:"on_leave"`
}

func (r Roster) Size() int {
	return len(r.Morning) + len(r.Evening) + len(r.Off) + len(r.OnLeave)
}

const (
	ViolationAMGreaterThanPM = "AM_GT_PM"
	ViolationMinPM           = "MIN_PM"
	ViolationAMOnFriday      = "AM_ON_FRIDAY"
)

type Violation struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type Suggestion struct {
	EmployeeID   uuid.UUID `json:"employee_id"`
	EmployeeName string    `json:"employee_name"`
	FromShift    string    `json:"from_shift"`
	ToShift      string    `json:"to_shift"`
}

// SuggestionResult always carries an explanation, with or without a
// suggestion, so operators see why nothing was proposed.
type SuggestionResult struct {
	Suggestion  *Suggestion `json:"suggestion"`
	Explanation string      `json:"explanation"`
}
