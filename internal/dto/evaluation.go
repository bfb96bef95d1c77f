package dto

// RatingsRequest carries the raw rubric scores. Slices are positional by
// indicator; 0 means not yet rated. Lengths beyond the category's
// indicator count are rejected.
type RatingsRequest struct {
	Communications []int `json:"communications" binding:"omitempty,max=5,dive,min=0,max=5"`
	Management     []int `json:"management"     binding:"omitempty,max=12,dive,min=0,max=5"`
	Assessment     []int `json:"assessment"     binding:"omitempty,max=6,dive,min=0,max=5"`
}

// CreateEvaluationRequest starts an observation form (saved as draft).
type CreateEvaluationRequest struct {
	TeacherID        string         `json:"teacher_id"        binding:"required,uuid"`
	ObservationDate  string         `json:"observation_date"  binding:"required,datetime=2006-01-02"`
	Ratings          RatingsRequest `json:"ratings"`
	Strengths        string         `json:"strengths"`
	ImprovementAreas string         `json:"improvement_areas"`
	Recommendations  string         `json:"recommendations"`
	Agreement        string         `json:"agreement"`
}

// UpdateEvaluationRequest revises a draft.
type UpdateEvaluationRequest struct {
	Ratings          *RatingsRequest `json:"ratings"`
	Strengths        *string         `json:"strengths"`
	ImprovementAreas *string         `json:"improvement_areas"`
	Recommendations  *string         `json:"recommendations"`
	Agreement        *string         `json:"agreement"`
}

// EvaluationListRequest filters evaluation listings.
type EvaluationListRequest struct {
	PaginationRequest
	TeacherID string `form:"teacher_id" binding:"omitempty,uuid"`
	Status    string `form:"status"     binding:"omitempty,oneof=draft completed"`
}

// CategoryScoreResponse is one rubric category's ratings and average.
type CategoryScoreResponse struct {
	Ratings []int   `json:"ratings"`
	Average float64 `json:"average"` // rounded to one decimal
}

// EvaluationResponse is the full evaluation view with computed scores.
type EvaluationResponse struct {
	ID               string                           `json:"id"`
	Teacher          *TeacherResponse                 `json:"teacher,omitempty"`
	Evaluator        *UserResponse                    `json:"evaluator,omitempty"`
	ObservationDate  string                           `json:"observation_date"`
	Status           string                           `json:"status"`
	Categories       map[string]CategoryScoreResponse `json:"categories"`
	OverallAverage   float64                          `json:"overall_average"` // rounded to one decimal
	Label            string                           `json:"label"`
	Strengths        string                           `json:"strengths,omitempty"`
	ImprovementAreas string                           `json:"improvement_areas,omitempty"`
	Recommendations  string                           `json:"recommendations,omitempty"`
	Agreement        string                           `json:"agreement,omitempty"`
}

// MarkDoneResponse reports the outcome of the administrative mark-done
// action. The message differs depending on whether an evaluation row
// existed for the teacher.
type MarkDoneResponse struct {
	EvaluationUpdated bool   `json:"evaluation_updated"`
	Message           string `json:"message"`
}
