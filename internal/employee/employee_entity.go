package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleEmployee    = "employee"
	RoleManager     = "manager"
	RoleCoordinator = "coordinator"
	RoleAdmin       = "admin"
)

type Employee struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	FullName     string     `gorm:"size:255;not null"`
	Email        string     `gorm:"uniqueIndex;not null"`
	Password     string     `gorm:"not null"`
	Role         string     `gorm:"type:varchar(20);not null;default:'employee'"`
	ManagerID    *uuid.UUID `gorm:"type:uuid"`
	DepartmentID *uuid.UUID `gorm:"type:uuid"`
	Active       bool       `gorm:"not null;default:true"`

	Manager *Employee `gorm:"foreignKey:ManagerID"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func ValidRole(role string) bool {
	switch role {
	case RoleEmployee, RoleManager, RoleCoordinator, RoleAdmin:
		return true
	}
	return false
}
