package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"adces/internal/dto"
	"adces/internal/model"
	"adces/internal/policy"
	"adces/internal/repository"
	"adces/internal/rubric"
)

var (
	ErrEvaluationNotFound  = errors.New("evaluation not found")
	ErrEvaluationExists    = errors.New("an evaluation for this teacher and date already exists")
	ErrEvaluationCompleted = errors.New("completed evaluations cannot be modified")
	ErrNotEvaluationOwner  = errors.New("only the submitting evaluator can modify this evaluation")
	ErrEvaluationEmpty     = errors.New("cannot complete an evaluation with no ratings")
)

// EvaluationService manages observation forms: draft creation, revision,
// completion and the administrative mark-done action.
type EvaluationService interface {
	Create(ctx context.Context, req *dto.CreateEvaluationRequest, actor policy.Actor) (*dto.EvaluationResponse, error)
	GetByID(ctx context.Context, id string, actor policy.Actor) (*dto.EvaluationResponse, error)
	List(ctx context.Context, req *dto.EvaluationListRequest, actor policy.Actor) ([]dto.EvaluationResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdateEvaluationRequest, actor policy.Actor) (*dto.EvaluationResponse, error)
	Complete(ctx context.Context, id string, actor policy.Actor) (*dto.EvaluationResponse, error)
	MarkTeacherDone(ctx context.Context, teacherID string, actor policy.Actor) (*dto.MarkDoneResponse, error)
}

type evaluationService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewEvaluationService creates the EvaluationService.
func NewEvaluationService(repo *repository.Repository, logger *zap.Logger) EvaluationService {
	return &evaluationService{repo: repo, logger: logger}
}

func (s *evaluationService) Create(ctx context.Context, req *dto.CreateEvaluationRequest, actor policy.Actor) (*dto.EvaluationResponse, error) {
	ok, err := canReachTeacherID(ctx, s.repo, actor, req.TeacherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeacherNotFound
		}
		return nil, err
	}
	if !ok {
		return nil, ErrTeacherNotVisible
	}

	date, err := time.Parse(dateLayout, req.ObservationDate)
	if err != nil {
		return nil, fmt.Errorf("parsing observation date: %w", err)
	}

	// the unique index backs this up under concurrency
	if _, err := s.repo.Evaluation.GetByTeacherEvaluatorDate(ctx, req.TeacherID, actor.ID, date); err == nil {
		return nil, ErrEvaluationExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	eval := &model.Evaluation{
		TeacherID:        req.TeacherID,
		EvaluatorID:      actor.ID,
		ObservationDate:  date,
		Status:           model.EvaluationDraft,
		Strengths:        req.Strengths,
		ImprovementAreas: req.ImprovementAreas,
		Recommendations:  req.Recommendations,
		Agreement:        req.Agreement,
		BaseModel:        model.BaseModel{CreatedBy: &actor.ID},
		Details:          detailsFromRatings(&req.Ratings),
	}

	if err := s.repo.Evaluation.Create(ctx, eval); err != nil {
		s.logger.Error("evaluation create failed", zap.Error(err))
		return nil, err
	}

	created, err := s.repo.Evaluation.GetByID(ctx, eval.EvaluationID)
	if err != nil {
		return nil, err
	}
	return toEvaluationResponse(created), nil
}

func (s *evaluationService) GetByID(ctx context.Context, id string, actor policy.Actor) (*dto.EvaluationResponse, error) {
	eval, err := s.loadVisible(ctx, id, actor)
	if err != nil {
		return nil, err
	}
	return toEvaluationResponse(eval), nil
}

// List scopes results by role: coordinators see only their own
// submissions, deans and principals their department, institution-wide
// roles and EDP everything.
func (s *evaluationService) List(ctx context.Context, req *dto.EvaluationListRequest, actor policy.Actor) ([]dto.EvaluationResponse, int64, error) {
	filters := scopedEvaluationFilters(actor)
	filters.TeacherID = req.TeacherID
	filters.Status = req.Status

	evals, total, err := s.repo.Evaluation.ListWithFilters(ctx, filters, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("evaluation list failed", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.EvaluationResponse, 0, len(evals))
	for i := range evals {
		result = append(result, *toEvaluationResponse(&evals[i]))
	}
	return result, total, nil
}

func (s *evaluationService) Update(ctx context.Context, id string, req *dto.UpdateEvaluationRequest, actor policy.Actor) (*dto.EvaluationResponse, error) {
	eval, err := s.loadOwnedDraft(ctx, id, actor)
	if err != nil {
		return nil, err
	}

	if req.Strengths != nil {
		eval.Strengths = *req.Strengths
	}
	if req.ImprovementAreas != nil {
		eval.ImprovementAreas = *req.ImprovementAreas
	}
	if req.Recommendations != nil {
		eval.Recommendations = *req.Recommendations
	}
	if req.Agreement != nil {
		eval.Agreement = *req.Agreement
	}
	eval.UpdatedBy = &actor.ID

	if err := s.repo.Evaluation.Update(ctx, eval); err != nil {
		s.logger.Error("evaluation update failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if req.Ratings != nil {
		if err := s.repo.Evaluation.ReplaceDetails(ctx, id, detailsFromRatings(req.Ratings)); err != nil {
			s.logger.Error("evaluation ratings replace failed", zap.String("id", id), zap.Error(err))
			return nil, err
		}
	}

	updated, err := s.repo.Evaluation.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toEvaluationResponse(updated), nil
}

// Complete finalizes a draft. A completed form is immutable from then
// on; there is no completed-to-draft transition.
func (s *evaluationService) Complete(ctx context.Context, id string, actor policy.Actor) (*dto.EvaluationResponse, error) {
	eval, err := s.loadOwnedDraft(ctx, id, actor)
	if err != nil {
		return nil, err
	}
	if len(eval.Details) == 0 {
		return nil, ErrEvaluationEmpty
	}

	eval.Status = model.EvaluationCompleted
	eval.UpdatedBy = &actor.ID

	if err := s.repo.Evaluation.Update(ctx, eval); err != nil {
		s.logger.Error("evaluation complete failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	completed, err := s.repo.Evaluation.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toEvaluationResponse(completed), nil
}

// MarkTeacherDone closes the observation cycle for a teacher: any
// pending latest draft is completed, open observation slots are cleared
// and the teacher is flagged done. The three writes plus the audit row
// happen in one transaction. The response says whether an evaluation
// form existed, since marking a never-evaluated teacher done is legal
// but worth surfacing.
func (s *evaluationService) MarkTeacherDone(ctx context.Context, teacherID string, actor policy.Actor) (*dto.MarkDoneResponse, error) {
	teacher, err := s.repo.Teacher.GetByID(ctx, teacherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeacherNotFound
		}
		return nil, err
	}

	latest, err := s.repo.Evaluation.GetLatestByTeacher(ctx, teacherID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	evaluationUpdated := false
	err = s.repo.InTransaction(ctx, func(txRepo *repository.Repository) error {
		if latest != nil && latest.Status == model.EvaluationDraft {
			latest.Status = model.EvaluationCompleted
			latest.UpdatedBy = &actor.ID
			if err := txRepo.Evaluation.Update(ctx, latest); err != nil {
				return fmt.Errorf("completing pending evaluation: %w", err)
			}
			evaluationUpdated = true
		}

		if err := txRepo.Schedule.ClearByTeacher(ctx, teacherID); err != nil {
			return fmt.Errorf("clearing schedules: %w", err)
		}

		teacher.EvalStatus = model.TeacherEvalDone
		teacher.UpdatedBy = &actor.ID
		if err := txRepo.Teacher.Update(ctx, teacher); err != nil {
			return fmt.Errorf("updating teacher status: %w", err)
		}

		entry := &model.AuditLog{
			ActorID:  actor.ID,
			Action:   model.AuditEvaluationDone,
			Entity:   "teacher",
			EntityID: &teacherID,
			Detail:   fmt.Sprintf("evaluation_updated=%t", evaluationUpdated),
		}
		return txRepo.Audit.Create(ctx, entry)
	})
	if err != nil {
		s.logger.Error("mark-done transaction failed", zap.String("teacher", teacherID), zap.Error(err))
		return nil, err
	}

	resp := &dto.MarkDoneResponse{EvaluationUpdated: evaluationUpdated}
	if latest == nil {
		resp.Message = "teacher marked done; no evaluation form is on record"
	} else if evaluationUpdated {
		resp.Message = "teacher marked done and the pending evaluation was completed"
	} else {
		resp.Message = "teacher marked done"
	}
	return resp, nil
}

// loadVisible fetches an evaluation the actor may read.
func (s *evaluationService) loadVisible(ctx context.Context, id string, actor policy.Actor) (*model.Evaluation, error) {
	eval, err := s.repo.Evaluation.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEvaluationNotFound
		}
		s.logger.Error("evaluation lookup failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	switch {
	case eval.EvaluatorID == actor.ID:
	case actor.Role == policy.RoleEDP, policy.IsInstitutionWide(actor.Role):
	case policy.IsCoordinator(actor.Role):
		// coordinators read only their own submissions
		return nil, ErrEvaluationNotFound
	default: // dean, principal
		if eval.Teacher == nil || eval.Teacher.DepartmentID != actor.DepartmentID {
			return nil, ErrEvaluationNotFound
		}
	}
	return eval, nil
}

// loadOwnedDraft fetches a draft owned by the actor for mutation.
func (s *evaluationService) loadOwnedDraft(ctx context.Context, id string, actor policy.Actor) (*model.Evaluation, error) {
	eval, err := s.repo.Evaluation.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEvaluationNotFound
		}
		s.logger.Error("evaluation lookup failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if eval.EvaluatorID != actor.ID {
		return nil, ErrNotEvaluationOwner
	}
	if eval.Status != model.EvaluationDraft {
		return nil, ErrEvaluationCompleted
	}
	return eval, nil
}

// detailsFromRatings converts the positional rating slices into detail
// rows, one per set indicator. Zeros (unrated) produce no row.
func detailsFromRatings(req *dto.RatingsRequest) []model.EvaluationDetail {
	var details []model.EvaluationDetail

	appendCategory := func(category string, ratings []int) {
		for i, r := range ratings {
			if r == 0 {
				continue
			}
			details = append(details, model.EvaluationDetail{
				Category:  category,
				ItemIndex: i,
				Rating:    r,
			})
		}
	}

	appendCategory(rubric.CategoryCommunications, req.Communications)
	appendCategory(rubric.CategoryManagement, req.Management)
	appendCategory(rubric.CategoryAssessment, req.Assessment)

	return details
}
