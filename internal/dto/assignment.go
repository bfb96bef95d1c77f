package dto

// AssignTeacherRequest links an evaluator to a teacher.
type AssignTeacherRequest struct {
	EvaluatorID string `json:"evaluator_id" binding:"required,uuid"`
	TeacherID   string `json:"teacher_id"   binding:"required,uuid"`
	Subject     string `json:"subject"      binding:"omitempty,max=100"`
	GradeLevel  string `json:"grade_level"  binding:"omitempty,max=50"`
}

// AssignCoordinatorRequest links a supervisor to a coordinator.
type AssignCoordinatorRequest struct {
	EvaluatorID string `json:"evaluator_id" binding:"required,uuid"`
}

// TeacherAssignmentResponse is one evaluator↔teacher edge.
type TeacherAssignmentResponse struct {
	ID         string           `json:"id"`
	Evaluator  *UserResponse    `json:"evaluator,omitempty"`
	Teacher    *TeacherResponse `json:"teacher,omitempty"`
	Subject    string           `json:"subject,omitempty"`
	GradeLevel string           `json:"grade_level,omitempty"`
}

// EvaluatorAssignmentResponse is one supervisor↔coordinator edge.
type EvaluatorAssignmentResponse struct {
	ID         string        `json:"id"`
	Supervisor *UserResponse `json:"supervisor,omitempty"`
	Evaluator  *UserResponse `json:"evaluator,omitempty"`
}

// SetSpecializationRequest replaces a coordinator's declared subjects or
// grade levels. Only the list matching the coordinator's role is used.
type SetSpecializationRequest struct {
	Subjects    []string `json:"subjects"     binding:"omitempty,max=50,dive,min=1,max=100"`
	GradeLevels []string `json:"grade_levels" binding:"omitempty,max=50,dive,min=1,max=50"`
}

// SpecializationResponse is a coordinator's declared specialization.
type SpecializationResponse struct {
	EvaluatorID string   `json:"evaluator_id"`
	Subjects    []string `json:"subjects"`
	GradeLevels []string `json:"grade_levels"`
}
