package dto

// CreateDepartmentRequest creates a department.
type CreateDepartmentRequest struct {
	Code string `json:"code" binding:"required,min=2,max=20"`
	Name string `json:"name" binding:"required,min=2,max=100"`
}

// UpdateDepartmentRequest updates department fields; nil fields are left
// unchanged.
type UpdateDepartmentRequest struct {
	Code     *string `json:"code" binding:"omitempty,min=2,max=20"`
	Name     *string `json:"name" binding:"omitempty,min=2,max=100"`
	IsActive *bool   `json:"is_active"`
}
