package timesheet

type SubmitTimesheetRequest struct {
	DailyReport     string `json:"daily_report"`
	ChallengesFaced string `json:"challenges_faced"`
	Achievements    string `json:"achievements"`
	TomorrowPlans   string `json:"tomorrow_plans"`
	AdditionalNotes string `json:"additional_notes"`
}

type ListFilter struct {
	Date       string `form:"date" binding:"omitempty,isodate"`
	EmployeeID string `form:"employee_id"`
}

type TimesheetResponse struct {
	ID              string `json:"id"`
	EmployeeID      string `json:"employee_id"`
	EmployeeName    string `json:"employee_name,omitempty"`
	Department      string `json:"department,omitempty"`
	Date            string `json:"date"`
	TasksCompleted  string `json:"tasks_completed"`
	ChallengesFaced string `json:"challenges_faced,omitempty"`
	Achievements    string `json:"achievements,omitempty"`
	TomorrowPlans   string `json:"tomorrow_plans,omitempty"`
	AdditionalNotes string `json:"additional_notes,omitempty"`
	SubmittedAt     string `json:"submitted_at"`
}

type SubmitTimesheetResponse struct {
	Action    string            `json:"action"`
	Message   string            `json:"message"`
	Timesheet TimesheetResponse `json:"timesheet"`
}

type TodayTimesheetResponse struct {
	Date      string             `json:"date"`
	Submitted bool               `json:"submitted"`
	Timesheet *TimesheetResponse `json:"timesheet,omitempty"`
}
