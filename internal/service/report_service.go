package service

import (
	"context"

	"go.uber.org/zap"

	"adces/internal/dto"
	"adces/internal/model"
	"adces/internal/policy"
	"adces/internal/repository"
	"adces/internal/rubric"
)

// ReportService builds the caller-scoped dashboard and the evaluation
// report listing that the export formats render.
type ReportService interface {
	Dashboard(ctx context.Context, actor policy.Actor) (*dto.DashboardResponse, error)
	ReportRows(ctx context.Context, actor policy.Actor) ([]dto.ReportRowResponse, error)
}

type reportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewReportService creates the ReportService.
func NewReportService(repo *repository.Repository, logger *zap.Logger) ReportService {
	return &reportService{repo: repo, logger: logger}
}

// Dashboard aggregates teacher progress and score bands within the
// actor's scope. Band counts and the overall mean cover completed
// evaluations only; drafts are still in motion.
func (s *reportService) Dashboard(ctx context.Context, actor policy.Actor) (*dto.DashboardResponse, error) {
	teacherFilters, err := scopedTeacherFilters(ctx, s.repo, actor)
	if err != nil {
		s.logger.Error("dashboard scope resolution failed", zap.String("actor", actor.ID), zap.Error(err))
		return nil, err
	}

	statusCounts, err := s.repo.Teacher.CountByStatus(ctx, teacherFilters)
	if err != nil {
		s.logger.Error("dashboard teacher counts failed", zap.Error(err))
		return nil, err
	}

	evalFilters := scopedEvaluationFilters(actor)
	evalFilters.Status = model.EvaluationCompleted

	evals, err := s.repo.Evaluation.ListAll(ctx, evalFilters)
	if err != nil {
		s.logger.Error("dashboard evaluation list failed", zap.Error(err))
		return nil, err
	}

	bands := make(map[string]int64)
	var sum float64
	var rated int64
	for i := range evals {
		summary := rubric.Summarize(evals[i].RatingsByCategory(rubric.ItemCounts))
		bands[summary.Label]++
		if summary.Label != rubric.LabelNotRated {
			sum += summary.Overall
			rated++
		}
	}

	resp := &dto.DashboardResponse{
		EvaluatedCount:   statusCounts[model.TeacherEvalDone],
		PendingCount:     statusCounts[model.TeacherEvalPending],
		BandDistribution: bands,
	}
	resp.TeacherCount = resp.EvaluatedCount + resp.PendingCount
	if rated > 0 {
		resp.AverageOverall = rubric.Round1(sum / float64(rated))
	}
	return resp, nil
}

// ReportRows flattens every evaluation in scope into report lines. The
// Excel and PDF exports render exactly these rows.
func (s *reportService) ReportRows(ctx context.Context, actor policy.Actor) ([]dto.ReportRowResponse, error) {
	filters := scopedEvaluationFilters(actor)

	evals, err := s.repo.Evaluation.ListAll(ctx, filters)
	if err != nil {
		s.logger.Error("report evaluation list failed", zap.Error(err))
		return nil, err
	}

	rows := make([]dto.ReportRowResponse, 0, len(evals))
	for i := range evals {
		rows = append(rows, toReportRow(&evals[i]))
	}
	return rows, nil
}

func toReportRow(eval *model.Evaluation) dto.ReportRowResponse {
	summary := rubric.Summarize(eval.RatingsByCategory(rubric.ItemCounts))

	row := dto.ReportRowResponse{
		EvaluationID:    eval.EvaluationID,
		ObservationDate: eval.ObservationDate.Format(dateLayout),
		Status:          eval.Status,
		OverallAverage:  rubric.Round1(summary.Overall),
		Label:           summary.Label,
	}
	if eval.Teacher != nil {
		row.TeacherName = eval.Teacher.Name
		if eval.Teacher.Department != nil {
			row.DepartmentName = eval.Teacher.Department.Name
		}
	}
	if eval.Evaluator != nil {
		row.EvaluatorName = eval.Evaluator.Name
	}
	return row
}
