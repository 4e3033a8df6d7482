package team

type ChangeTeamRequest struct {
	EmployeeID    string `json:"employee_id" binding:"required,uuid"`
	NewTeam       string `json:"new_team" binding:"required,oneof=A B"`
	EffectiveFrom string `json:"effective_from" binding:"required"`
	Reason        string `json:"reason" binding:"required"`
}

type ChangeTeamResponse struct {
	EmployeeID    string  `json:"employee_id"`
	PreviousTeam  *string `json:"previous_team"`
	NewTeam       string  `json:"new_team"`
	EffectiveFrom string  `json:"effective_from"`
}

type TimelineEntryResponse struct {
	Team          string `json:"team"`
	EffectiveFrom string `json:"effective_from"`
	Reason        string `json:"reason"`
	CreatedBy     string `json:"created_by"`
	CreatedAt     string `json:"created_at"`
}
