package employee

type CreateEmployeeRequest struct {
	FullName     string  `json:"full_name" binding:"required"`
	Email        string  `json:"email" binding:"required,email"`
	Password     string  `json:"password" binding:"required,min=8"`
	Role         string  `json:"role" binding:"required,oneof=employee manager coordinator admin"`
	ManagerID    *string `json:"manager_id" binding:"omitempty,uuid"`
	DepartmentID *string `json:"department_id" binding:"omitempty,uuid"`
}

type UpdateEmployeeRequest struct {
	FullName     string  `json:"full_name" binding:"required"`
	Email        string  `json:"email" binding:"required,email"`
	Role         string  `json:"role" binding:"required,oneof=employee manager coordinator admin"`
	ManagerID    *string `json:"manager_id" binding:"omitempty,uuid"`
	DepartmentID *string `json:"department_id" binding:"omitempty,uuid"`
	Active       *bool   `json:"active"`
}

type EmployeeResponse struct {
	ID           string `json:"id"`
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	ManagerID    string `json:"manager_id,omitempty"`
	DepartmentID string `json:"department_id,omitempty"`
	Active       bool   `json:"active"`
}
