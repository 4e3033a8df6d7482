package events

import "time"

// ScheduleWeekLifecycleTopic carries the commit points other modules key on:
// payroll export and task planning only trust a week once it is approved.
const ScheduleWeekLifecycleTopic = "retail.schedule.week.lifecycle.v1"

const (
	WeekApproved   = "week_approved"
	WeekUnapproved = "week_unapproved"
	WeekLocked     = "week_locked"
	WeekUnlocked   = "week_unlocked"
)

type ScheduleWeekLifecycleEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	CompanyID  string    `json:"company_id"`
	BoutiqueID string    `json:"boutique_id"`
	WeekStart  string    `json:"week_start"`
	ActorID    string    `json:"actor_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
