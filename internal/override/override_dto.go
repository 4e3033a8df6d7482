package override

type UpsertOverrideRequest struct {
	EmployeeID      string  `json:"employee_id" binding:"required,uuid"`
	Date            string  `json:"date" binding:"required"`
	Shift           string  `json:"shift" binding:"required"`
	CoverBoutiqueID *string `json:"cover_boutique_id,omitempty"`
	Reason          string  `json:"reason" binding:"required"`
}

type ApplySuggestionRequest struct {
	BoutiqueID string `json:"boutique_id" binding:"required,uuid"`
	Date       string `json:"date" binding:"required"`
}

type OverrideResponse struct {
	ID              string  `json:"id"`
	EmployeeID      string  `json:"employee_id"`
	Date            string  `json:"date"`
	Shift           string  `json:"shift"`
	CoverBoutiqueID *string `json:"cover_boutique_id,omitempty"`
	Reason          string  `json:"reason"`
	IsActive        bool    `json:"is_active"`
}

type ApplySuggestionResponse struct {
	Applied     bool              `json:"applied"`
	Explanation string            `json:"explanation"`
	Override    *OverrideResponse `json:"override,omitempty"`
}
