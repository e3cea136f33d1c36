package balance

import (
	"time"

	"github.com/google/uuid"
)

// LeaveBalance tracks allocation and usage per employee, academic year and
// leave type. The (employee, year, type) triple is unique; remaining must
// always equal total_allocated - used.
type LeaveBalance struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_balance_employee_year_type"`
	AcademicYear   string    `gorm:"type:varchar(10);not null;uniqueIndex:uq_balance_employee_year_type"`
	LeaveType      string    `gorm:"type:varchar(30);not null;uniqueIndex:uq_balance_employee_year_type"`
	TotalAllocated int       `gorm:"type:int;not null;default:0"`
	Used           int       `gorm:"type:int;not null;default:0"`
	Remaining      int       `gorm:"type:int;not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
