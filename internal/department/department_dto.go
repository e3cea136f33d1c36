package department

type CreateDepartmentRequest struct {
	Name          string  `json:"name" binding:"required"`
	CoordinatorID *string `json:"coordinator_id" binding:"omitempty,uuid"`
}

type UpdateDepartmentRequest struct {
	Name          string  `json:"name" binding:"required"`
	CoordinatorID *string `json:"coordinator_id" binding:"omitempty,uuid"`
}

type DepartmentResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	CoordinatorID string `json:"coordinator_id,omitempty"`
}
