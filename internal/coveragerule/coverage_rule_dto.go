package coveragerule

type UpsertRuleRequest struct {
	BoutiqueID *string `json:"boutique_id,omitempty"`
	DayOfWeek  int     `json:"day_of_week"`
	MinAM      int     `json:"min_am"`
	MinPM      int     `json:"min_pm"`
	Enabled    *bool   `json:"enabled,omitempty"`
}

type RuleResponse struct {
	ID         string  `json:"id"`
	BoutiqueID *string `json:"boutique_id,omitempty"`
	DayOfWeek  int     `json:"day_of_week"`
	MinAM      int     `json:"min_am"`
	MinPM      int     `json:"min_pm"`
	Enabled    bool    `json:"enabled"`
}
