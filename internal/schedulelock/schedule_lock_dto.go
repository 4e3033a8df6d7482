package schedulelock

type WeekRequest struct {
	BoutiqueID string `json:"boutique_id" binding:"required,uuid"`
	Date       string `json:"date" binding:"required"`
}

type LockWeekRequest struct {
	BoutiqueID string `json:"boutique_id" binding:"required,uuid"`
	Date       string `json:"date" binding:"required"`
	Reason     string `json:"reason" binding:"required"`
}

type LockDayRequest struct {
	BoutiqueID string `json:"boutique_id" binding:"required,uuid"`
	Date       string `json:"date" binding:"required"`
	Reason     string `json:"reason" binding:"required"`
}

type UnlockDayRequest struct {
	BoutiqueID string `json:"boutique_id" binding:"required,uuid"`
	Date       string `json:"date" binding:"required"`
}

type LockInfo struct {
	Reason   string `json:"reason"`
	LockedBy string `json:"locked_by"`
	LockedAt string `json:"locked_at"`
}

type WeekStatusResponse struct {
	BoutiqueID string    `json:"boutique_id"`
	WeekStart  string    `json:"week_start"`
	Status     string    `json:"status"`
	ApprovedBy *string   `json:"approved_by,omitempty"`
	ApprovedAt *string   `json:"approved_at,omitempty"`
	WeekLock   *LockInfo `json:"week_lock,omitempty"`
}

type DayStatusResponse struct {
	BoutiqueID string    `json:"boutique_id"`
	Date       string    `json:"date"`
	DayLock    *LockInfo `json:"day_lock,omitempty"`
}

type LockResponse struct {
	BoutiqueID string   `json:"boutique_id"`
	ScopeType  string   `json:"scope_type"`
	ScopeValue string   `json:"scope_value"`
	Lock       LockInfo `json:"lock"`
}

type UnlockResponse struct {
	BoutiqueID string `json:"boutique_id"`
	ScopeType  string `json:"scope_type"`
	ScopeValue string `json:"scope_value"`
	Unlocked   bool   `json:"unlocked"`
}
