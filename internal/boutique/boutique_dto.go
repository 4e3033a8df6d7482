package boutique

type CreateBoutiqueRequest struct {
	Name     string `json:"name" binding:"required"`
	Code     string `json:"code" binding:"required"`
	Timezone string `json:"timezone"`
}

type UpdateBoutiqueRequest struct {
	Name     string `json:"name"`
	Timezone string `json:"timezone"`
	IsActive *bool  `json:"is_active"`
}

type BoutiqueResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Code     string `json:"code"`
	Timezone string `json:"timezone"`
	IsActive bool   `json:"is_active"`
}
