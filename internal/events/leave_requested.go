package events

const LeaveRequestedTopic = "leave.requested"

// LeaveRequestedEvent is emitted when an employee submits a leave request.
// ManagerEmail may be empty when the employee has no manager on file; the
// notifier skips delivery in that case.
type LeaveRequestedEvent struct {
	RequestID    string `json:"request_id"`
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	ManagerEmail string `json:"manager_email"`
	LeaveType    string `json:"leave_type"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	TotalDays    int    `json:"total_days"`
	Reason       string `json:"reason"`
	AcademicYear string `json:"academic_year"`
}
