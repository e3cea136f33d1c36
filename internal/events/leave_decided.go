package events

const LeaveDecidedTopic = "leave.decided"

// LeaveDecidedEvent is emitted every time an approver records a decision,
// whether or not the overall status reached a terminal state.
type LeaveDecidedEvent struct {
	RequestID     string `json:"request_id"`
	EmployeeID    string `json:"employee_id"`
	EmployeeEmail string `json:"employee_email"`
	EmployeeName  string `json:"employee_name"`
	LeaveType     string `json:"leave_type"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	Status        string `json:"status"`
	DecidedBy     string `json:"decided_by"`
	Comments      string `json:"comments,omitempty"`
}
