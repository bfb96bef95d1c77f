package dto

// CreateTeacherRequest creates a teacher record.
type CreateTeacherRequest struct {
	Name         string `json:"name"          binding:"required,min=2,max=100"`
	Email        string `json:"email"         binding:"required,email"`
	DepartmentID string `json:"department_id" binding:"required,uuid"`
	Subject      string `json:"subject"       binding:"omitempty,max=100"`
	GradeLevel   string `json:"grade_level"   binding:"omitempty,max=50"`
}

// UpdateTeacherRequest updates teacher fields; nil fields are left
// unchanged.
type UpdateTeacherRequest struct {
	Name         *string `json:"name"          binding:"omitempty,min=2,max=100"`
	Email        *string `json:"email"         binding:"omitempty,email"`
	DepartmentID *string `json:"department_id" binding:"omitempty,uuid"`
	Subject      *string `json:"subject"       binding:"omitempty,max=100"`
	GradeLevel   *string `json:"grade_level"   binding:"omitempty,max=50"`
}

// TeacherListRequest filters the teacher listing. Visibility scoping by
// caller role happens in the service, not here.
type TeacherListRequest struct {
	PaginationRequest
	DepartmentID string `form:"department_id" binding:"omitempty,uuid"`
	EvalStatus   string `form:"eval_status"   binding:"omitempty,oneof=pending done"`
	Keyword      string `form:"keyword"       binding:"omitempty,max=50"`
}

// TeacherResponse is the teacher view.
type TeacherResponse struct {
	ID         string              `json:"id"`
	Name       string              `json:"name"`
	Email      string              `json:"email"`
	Department *DepartmentResponse `json:"department,omitempty"`
	Subject    string              `json:"subject,omitempty"`
	GradeLevel string              `json:"grade_level,omitempty"`
	EvalStatus string              `json:"eval_status"`
}
