package service

import (
	"adces/internal/dto"
	"adces/internal/model"
	"adces/internal/rubric"
)

// dateLayout is the wire format for date-only fields.
const dateLayout = "2006-01-02"

func toDepartmentResponse(dept *model.Department) *dto.DepartmentResponse {
	if dept == nil {
		return nil
	}
	return &dto.DepartmentResponse{
		ID:   dept.DepartmentID,
		Code: dept.Code,
		Name: dept.Name,
	}
}

func toUserResponse(user *model.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:                 user.UserID,
		Name:               user.Name,
		Email:              user.Email,
		Role:               user.Role,
		Department:         toDepartmentResponse(user.Department),
		IsActive:           user.IsActive,
		MustChangePassword: user.MustChangePassword,
	}
}

func toTeacherResponse(teacher *model.Teacher) *dto.TeacherResponse {
	return &dto.TeacherResponse{
		ID:         teacher.TeacherID,
		Name:       teacher.Name,
		Email:      teacher.Email,
		Department: toDepartmentResponse(teacher.Department),
		Subject:    teacher.Subject,
		GradeLevel: teacher.GradeLevel,
		EvalStatus: teacher.EvalStatus,
	}
}

func toTeacherAssignmentResponse(a *model.TeacherAssignment) *dto.TeacherAssignmentResponse {
	resp := &dto.TeacherAssignmentResponse{
		ID:         a.AssignmentID,
		Subject:    a.Subject,
		GradeLevel: a.GradeLevel,
	}
	if a.Evaluator != nil {
		resp.Evaluator = toUserResponse(a.Evaluator)
	}
	if a.Teacher != nil {
		resp.Teacher = toTeacherResponse(a.Teacher)
	}
	return resp
}

func toEvaluatorAssignmentResponse(a *model.EvaluatorAssignment) *dto.EvaluatorAssignmentResponse {
	resp := &dto.EvaluatorAssignmentResponse{ID: a.AssignmentID}
	if a.Supervisor != nil {
		resp.Supervisor = toUserResponse(a.Supervisor)
	}
	if a.Evaluator != nil {
		resp.Evaluator = toUserResponse(a.Evaluator)
	}
	return resp
}

// toEvaluationResponse computes scores from the detail rows and shapes
// the full evaluation view. All consumers of an evaluation's averages go
// through this one path.
func toEvaluationResponse(eval *model.Evaluation) *dto.EvaluationResponse {
	byCategory := eval.RatingsByCategory(rubric.ItemCounts)
	summary := rubric.Summarize(byCategory)

	categories := make(map[string]dto.CategoryScoreResponse, len(rubric.Categories))
	for _, name := range rubric.Categories {
		categories[name] = dto.CategoryScoreResponse{
			Ratings: byCategory[name],
			Average: rubric.Round1(summary.CategoryAverages[name]),
		}
	}

	resp := &dto.EvaluationResponse{
		ID:               eval.EvaluationID,
		ObservationDate:  eval.ObservationDate.Format(dateLayout),
		Status:           eval.Status,
		Categories:       categories,
		OverallAverage:   rubric.Round1(summary.Overall),
		Label:            summary.Label,
		Strengths:        eval.Strengths,
		ImprovementAreas: eval.ImprovementAreas,
		Recommendations:  eval.Recommendations,
		Agreement:        eval.Agreement,
	}
	if eval.Teacher != nil {
		resp.Teacher = toTeacherResponse(eval.Teacher)
	}
	if eval.Evaluator != nil {
		resp.Evaluator = toUserResponse(eval.Evaluator)
	}
	return resp
}
