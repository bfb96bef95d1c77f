package dto

// CreateUserRequest is the EDP account-provisioning form.
type CreateUserRequest struct {
	Name         string `json:"name"          binding:"required,min=2,max=100"`
	Email        string `json:"email"         binding:"required,email"`
	Role         string `json:"role"          binding:"required,oneof=edp dean principal vice_president president subject_coordinator chairperson grade_level_coordinator"`
	DepartmentID string `json:"department_id" binding:"required,uuid"`
}

// CreateUserResponse returns the created user with the generated
// temporary password.
type CreateUserResponse struct {
	User         *UserResponse `json:"user"`
	TempPassword string        `json:"temp_password"`
}

// UserListRequest filters the user listing.
type UserListRequest struct {
	PaginationRequest
	DepartmentID string `form:"department_id" binding:"omitempty,uuid"`
	Role         string `form:"role"          binding:"omitempty,oneof=edp dean principal vice_president president subject_coordinator chairperson grade_level_coordinator"`
	Keyword      string `form:"keyword"       binding:"omitempty,max=50"`
}

// UpdateUserRequest updates user fields; nil fields are left unchanged.
type UpdateUserRequest struct {
	Name         *string `json:"name"          binding:"omitempty,min=2,max=100"`
	Email        *string `json:"email"         binding:"omitempty,email"`
	DepartmentID *string `json:"department_id" binding:"omitempty,uuid"`
	IsActive     *bool   `json:"is_active"`
}

// ResetPasswordResponse returns the generated temporary password.
type ResetPasswordResponse struct {
	TempPassword string `json:"temp_password"`
}

// ImportUserResponse summarizes a bulk Excel import.
type ImportUserResponse struct {
	Total   int               `json:"total"`
	Success int               `json:"success"`
	Failed  int               `json:"failed"`
	Errors  []ImportUserError `json:"errors,omitempty"`
}

// ImportUserError is one rejected import row.
type ImportUserError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}
