package leaverequest

import (
	"time"

	"github.com/google/uuid"

	"github.com/meharshjain/leave-approval-system/internal/employee"
)

// Overall lifecycle states. Status is always derived from the two
// sub-approvals, except CANCELLED which is a direct employee action.
const (
	StatusPending   = "PENDING"
	StatusApproved  = "APPROVED"
	StatusRejected  = "REJECTED"
	StatusCancelled = "CANCELLED"
)

const (
	LeaveTypeSick      = "SICK"
	LeaveTypeVacation  = "VACATION"
	LeaveTypePersonal  = "PERSONAL"
	LeaveTypeEmergency = "EMERGENCY"
	LeaveTypeMaternity = "MATERNITY"
	LeaveTypePaternity = "PATERNITY"
	LeaveTypeOther     = "OTHER"
)

func ValidLeaveType(t string) bool {
	switch t {
	case LeaveTypeSick, LeaveTypeVacation, LeaveTypePersonal, LeaveTypeEmergency,
		LeaveTypeMaternity, LeaveTypePaternity, LeaveTypeOther:
		return true
	}
	return false
}

// Approval is one side of the dual approval: the manager's or the
// coordinator's decision. Decided exactly once; see Decide in the service.
type Approval struct {
	Status   string     `gorm:"type:varchar(20);not null;default:'PENDING'"`
	By       *uuid.UUID `gorm:"type:uuid"`
	At       *time.Time
	Comments *string `gorm:"type:text"`
}

func (a Approval) Decided() bool {
	return a.Status != StatusPending
}

type LeaveRequest struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_requests_employee_year"`

	LeaveType    string    `gorm:"type:varchar(30);not null"`
	StartDate    time.Time `gorm:"type:date;not null"`
	EndDate      time.Time `gorm:"type:date;not null"`
	TotalDays    int       `gorm:"type:int;not null"`
	Reason       string    `gorm:"type:text;not null"`
	AcademicYear string    `gorm:"type:varchar(10);not null;index:idx_leave_requests_employee_year"`

	Status              string   `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	ManagerApproval     Approval `gorm:"embedded;embeddedPrefix:manager_"`
	CoordinatorApproval Approval `gorm:"embedded;embeddedPrefix:coordinator_"`

	// Version is the optimistic concurrency stamp: every mutation must go
	// through an update conditioned on the version it read.
	Version int `gorm:"type:int;not null;default:0"`

	Employee *employee.Employee `gorm:"foreignKey:EmployeeID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// deriveStatus computes the overall status from the two sub-approvals.
// A single rejection is terminal regardless of the other side; approval
// requires both sides.
func deriveStatus(managerStatus, coordinatorStatus string) string {
	if managerStatus == StatusRejected || coordinatorStatus == StatusRejected {
		return StatusRejected
	}
	if managerStatus == StatusApproved && coordinatorStatus == StatusApproved {
		return StatusApproved
	}
	return StatusPending
}

func terminal(status string) bool {
	return status == StatusApproved || status == StatusRejected || status == StatusCancelled
}
