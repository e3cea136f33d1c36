package leaverequest

type SubmitLeaveRequest struct {
	LeaveType    string `json:"leave_type" binding:"required,oneof=SICK VACATION PERSONAL EMERGENCY MATERNITY PATERNITY OTHER"`
	StartDate    string `json:"start_date" binding:"required"`
	EndDate      string `json:"end_date" binding:"required"`
	Reason       string `json:"reason" binding:"required"`
	AcademicYear string `json:"academic_year"`
}

type DecideLeaveRequest struct {
	Status   string  `json:"status" binding:"required,oneof=APPROVED REJECTED"`
	Comments *string `json:"comments"`
}

type ApprovalView struct {
	Status     string  `json:"status"`
	ApprovedBy *string `json:"approved_by,omitempty"`
	ApprovedAt *string `json:"approved_at,omitempty"`
	Comments   *string `json:"comments,omitempty"`
}

type LeaveRequestResponse struct {
	ID                  string       `json:"id"`
	EmployeeID          string       `json:"employee_id"`
	EmployeeName        string       `json:"employee_name,omitempty"`
	LeaveType           string       `json:"leave_type"`
	StartDate           string       `json:"start_date"`
	EndDate             string       `json:"end_date"`
	TotalDays           int          `json:"total_days"`
	Reason              string       `json:"reason"`
	AcademicYear        string       `json:"academic_year"`
	Status              string       `json:"status"`
	ManagerApproval     ApprovalView `json:"manager_approval"`
	CoordinatorApproval ApprovalView `json:"coordinator_approval"`
	CreatedAt           string       `json:"created_at,omitempty"`
}
