package balance

type AllocateBalanceRequest struct {
	EmployeeID     string `json:"employee_id" binding:"required,uuid"`
	AcademicYear   string `json:"academic_year" binding:"required"`
	LeaveType      string `json:"leave_type" binding:"required,oneof=SICK VACATION PERSONAL EMERGENCY MATERNITY PATERNITY OTHER"`
	TotalAllocated int    `json:"total_allocated" binding:"required,min=0"`
}

type BalanceResponse struct {
	ID             string `json:"id"`
	EmployeeID     string `json:"employee_id"`
	AcademicYear   string `json:"academic_year"`
	LeaveType      string `json:"leave_type"`
	TotalAllocated int    `json:"total_allocated"`
	Used           int    `json:"used"`
	Remaining      int    `json:"remaining"`
}
