package employee

type CreateEmployeeRequest struct {
	FullName       string `json:"full_name" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	BoutiqueID     string `json:"boutique_id" binding:"required,uuid"`
	WeeklyOffDay   int    `json:"weekly_off_day" binding:"min=0,max=6"`
	HireDate       string `json:"hire_date" binding:"required"`
	EmployeeNumber string `json:"employee_number"`
}

type UpdateEmployeeRequest struct {
	FullName     string `json:"full_name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	BoutiqueID   string `json:"boutique_id" binding:"required,uuid"`
	WeeklyOffDay int    `json:"weekly_off_day" binding:"min=0,max=6"`
}

type EmployeeResponse struct {
	ID             string `json:"id"`
	CompanyID      string `json:"company_id"`
	BoutiqueID     string `json:"boutique_id"`
	EmployeeNumber string `json:"employee_number"`
	FullName       string `json:"full_name"`
	Email          string `json:"email"`
	WeeklyOffDay   int    `json:"weekly_off_day"`
	Status         string `json:"status"`
}
