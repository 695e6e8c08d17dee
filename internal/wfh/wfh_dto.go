package wfh

type ApproveWFHRequest struct {
	EmployeeID string `json:"employee_id" binding:"required"`
	StartDate  string `json:"start_date" binding:"required,isodate"`
	EndDate    string `json:"end_date" binding:"required,isodate"`
	Reason     string `json:"reason"`
}

type ListFilter struct {
	EmployeeID string `form:"employee_id"`
	Date       string `form:"date" binding:"omitempty,isodate"`
}

type ApprovalResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Reason     string `json:"reason,omitempty"`
	ApprovedBy string `json:"approved_by"`
	CreatedAt  string `json:"created_at"`
}

type ApprovalStatusResponse struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	Approved   bool   `json:"approved"`
}
