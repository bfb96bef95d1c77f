package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"adces/internal/dto"
	"adces/internal/model"
	"adces/internal/policy"
	"adces/internal/repository"
)

var (
	ErrAssignmentExists     = errors.New("assignment already exists")
	ErrAssignmentNotFound   = errors.New("assignment not found")
	ErrNotAnEvaluator       = errors.New("user cannot be assigned as an evaluator")
	ErrNotACoordinator      = errors.New("user is not a coordinator")
	ErrCrossDepartment      = errors.New("cannot assign across departments")
	ErrEvaluatorInactive    = errors.New("evaluator account is disabled")
	ErrSpecializationRole   = errors.New("specialization does not match the coordinator role")
	ErrAssignmentNotManaged = errors.New("assignment belongs to another department")
)

// AssignmentService manages evaluator↔teacher and supervisor↔coordinator
// edges. Only deans and principals mutate assignments; the route guard
// enforces that, and departmental scoping is re-checked here.
type AssignmentService interface {
	AssignTeacher(ctx context.Context, req *dto.AssignTeacherRequest, actor policy.Actor) (*dto.TeacherAssignmentResponse, error)
	UnassignTeacher(ctx context.Context, assignmentID string, actor policy.Actor) error
	ListTeacherAssignments(ctx context.Context, evaluatorID string) ([]dto.TeacherAssignmentResponse, error)

	AssignCoordinator(ctx context.Context, req *dto.AssignCoordinatorRequest, actor policy.Actor) (*dto.EvaluatorAssignmentResponse, error)
	UnassignCoordinator(ctx context.Context, assignmentID string, actor policy.Actor) error
	ListCoordinators(ctx context.Context, supervisorID string) ([]dto.EvaluatorAssignmentResponse, error)

	SetSpecialization(ctx context.Context, evaluatorID string, req *dto.SetSpecializationRequest, actor policy.Actor) (*dto.SpecializationResponse, error)
	GetSpecialization(ctx context.Context, evaluatorID string) (*dto.SpecializationResponse, error)
}

type assignmentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAssignmentService creates the AssignmentService.
func NewAssignmentService(repo *repository.Repository, logger *zap.Logger) AssignmentService {
	return &assignmentService{repo: repo, logger: logger}
}

func (s *assignmentService) AssignTeacher(ctx context.Context, req *dto.AssignTeacherRequest, actor policy.Actor) (*dto.TeacherAssignmentResponse, error) {
	evaluator, err := s.loadEvaluator(ctx, req.EvaluatorID, actor)
	if err != nil {
		return nil, err
	}
	if !policy.IsCoordinator(evaluator.Role) {
		return nil, ErrNotAnEvaluator
	}

	teacher, err := s.repo.Teacher.GetByID(ctx, req.TeacherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeacherNotFound
		}
		return nil, err
	}
	if teacher.DepartmentID != actor.DepartmentID {
		return nil, ErrCrossDepartment
	}

	exists, err := s.repo.TeacherAssignment.Exists(ctx, req.EvaluatorID, req.TeacherID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAssignmentExists
	}

	assignment := &model.TeacherAssignment{
		EvaluatorID: req.EvaluatorID,
		TeacherID:   req.TeacherID,
		Subject:     req.Subject,
		GradeLevel:  req.GradeLevel,
		BaseModel:   model.BaseModel{CreatedBy: &actor.ID},
	}

	if err := s.repo.TeacherAssignment.Create(ctx, assignment); err != nil {
		s.logger.Error("teacher assignment create failed", zap.Error(err))
		return nil, err
	}

	s.audit(ctx, actor.ID, model.AuditAssignmentAdded, "teacher_assignment", assignment.AssignmentID,
		fmt.Sprintf("evaluator %s -> teacher %s", req.EvaluatorID, req.TeacherID))

	created, err := s.repo.TeacherAssignment.GetByID(ctx, assignment.AssignmentID)
	if err != nil {
		return nil, err
	}
	return toTeacherAssignmentResponse(created), nil
}

func (s *assignmentService) UnassignTeacher(ctx context.Context, assignmentID string, actor policy.Actor) error {
	assignment, err := s.repo.TeacherAssignment.GetByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAssignmentNotFound
		}
		return err
	}
	if assignment.Teacher != nil && assignment.Teacher.DepartmentID != actor.DepartmentID {
		return ErrAssignmentNotManaged
	}

	if err := s.repo.TeacherAssignment.Delete(ctx, assignmentID); err != nil {
		s.logger.Error("teacher assignment delete failed", zap.String("id", assignmentID), zap.Error(err))
		return err
	}

	s.audit(ctx, actor.ID, model.AuditAssignmentRemoved, "teacher_assignment", assignmentID,
		fmt.Sprintf("evaluator %s -x teacher %s", assignment.EvaluatorID, assignment.TeacherID))
	return nil
}

func (s *assignmentService) ListTeacherAssignments(ctx context.Context, evaluatorID string) ([]dto.TeacherAssignmentResponse, error) {
	assignments, err := s.repo.TeacherAssignment.ListByEvaluator(ctx, evaluatorID)
	if err != nil {
		s.logger.Error("teacher assignment list failed", zap.Error(err))
		return nil, err
	}

	result := make([]dto.TeacherAssignmentResponse, 0, len(assignments))
	for i := range assignments {
		result = append(result, *toTeacherAssignmentResponse(&assignments[i]))
	}
	return result, nil
}

func (s *assignmentService) AssignCoordinator(ctx context.Context, req *dto.AssignCoordinatorRequest, actor policy.Actor) (*dto.EvaluatorAssignmentResponse, error) {
	evaluator, err := s.loadEvaluator(ctx, req.EvaluatorID, actor)
	if err != nil {
		return nil, err
	}
	if !policy.IsCoordinator(evaluator.Role) {
		return nil, ErrNotACoordinator
	}

	exists, err := s.repo.EvaluatorAssignment.Exists(ctx, actor.ID, req.EvaluatorID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAssignmentExists
	}

	assignment := &model.EvaluatorAssignment{
		SupervisorID: actor.ID,
		EvaluatorID:  req.EvaluatorID,
		BaseModel:    model.BaseModel{CreatedBy: &actor.ID},
	}

	if err := s.repo.EvaluatorAssignment.Create(ctx, assignment); err != nil {
		s.logger.Error("coordinator assignment create failed", zap.Error(err))
		return nil, err
	}

	s.audit(ctx, actor.ID, model.AuditAssignmentAdded, "evaluator_assignment", assignment.AssignmentID,
		fmt.Sprintf("supervisor %s -> coordinator %s", actor.ID, req.EvaluatorID))

	created, err := s.repo.EvaluatorAssignment.GetByID(ctx, assignment.AssignmentID)
	if err != nil {
		return nil, err
	}
	return toEvaluatorAssignmentResponse(created), nil
}

func (s *assignmentService) UnassignCoordinator(ctx context.Context, assignmentID string, actor policy.Actor) error {
	assignment, err := s.repo.EvaluatorAssignment.GetByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAssignmentNotFound
		}
		return err
	}
	if assignment.SupervisorID != actor.ID {
		return ErrAssignmentNotManaged
	}

	if err := s.repo.EvaluatorAssignment.Delete(ctx, assignmentID); err != nil {
		s.logger.Error("coordinator assignment delete failed", zap.String("id", assignmentID), zap.Error(err))
		return err
	}

	s.audit(ctx, actor.ID, model.AuditAssignmentRemoved, "evaluator_assignment", assignmentID,
		fmt.Sprintf("supervisor %s -x coordinator %s", assignment.SupervisorID, assignment.EvaluatorID))
	return nil
}

func (s *assignmentService) ListCoordinators(ctx context.Context, supervisorID string) ([]dto.EvaluatorAssignmentResponse, error) {
	assignments, err := s.repo.EvaluatorAssignment.ListBySupervisor(ctx, supervisorID)
	if err != nil {
		s.logger.Error("coordinator assignment list failed", zap.Error(err))
		return nil, err
	}

	result := make([]dto.EvaluatorAssignmentResponse, 0, len(assignments))
	for i := range assignments {
		result = append(result, *toEvaluatorAssignmentResponse(&assignments[i]))
	}
	return result, nil
}

// SetSpecialization replaces a coordinator's declared subjects or grade
// levels. Subject lists are accepted only for subject coordinators and
// grade-level lists only for grade-level coordinators.
func (s *assignmentService) SetSpecialization(ctx context.Context, evaluatorID string, req *dto.SetSpecializationRequest, actor policy.Actor) (*dto.SpecializationResponse, error) {
	evaluator, err := s.loadEvaluator(ctx, evaluatorID, actor)
	if err != nil {
		return nil, err
	}

	switch evaluator.Role {
	case policy.RoleSubjectCoordinator:
		if len(req.GradeLevels) > 0 {
			return nil, ErrSpecializationRole
		}
		if err := s.repo.EvaluatorAssignment.ReplaceSubjects(ctx, evaluatorID, req.Subjects); err != nil {
			s.logger.Error("subject replace failed", zap.String("evaluator", evaluatorID), zap.Error(err))
			return nil, err
		}
	case policy.RoleGradeLevelCoordinator:
		if len(req.Subjects) > 0 {
			return nil, ErrSpecializationRole
		}
		if err := s.repo.EvaluatorAssignment.ReplaceGradeLevels(ctx, evaluatorID, req.GradeLevels); err != nil {
			s.logger.Error("grade level replace failed", zap.String("evaluator", evaluatorID), zap.Error(err))
			return nil, err
		}
	default:
		return nil, ErrSpecializationRole
	}

	return s.GetSpecialization(ctx, evaluatorID)
}

func (s *assignmentService) GetSpecialization(ctx context.Context, evaluatorID string) (*dto.SpecializationResponse, error) {
	subjects, err := s.repo.EvaluatorAssignment.ListSubjects(ctx, evaluatorID)
	if err != nil {
		return nil, err
	}
	levels, err := s.repo.EvaluatorAssignment.ListGradeLevels(ctx, evaluatorID)
	if err != nil {
		return nil, err
	}

	if subjects == nil {
		subjects = []string{}
	}
	if levels == nil {
		levels = []string{}
	}

	return &dto.SpecializationResponse{
		EvaluatorID: evaluatorID,
		Subjects:    subjects,
		GradeLevels: levels,
	}, nil
}

// loadEvaluator fetches an active user in the actor's department.
func (s *assignmentService) loadEvaluator(ctx context.Context, evaluatorID string, actor policy.Actor) (*model.User, error) {
	evaluator, err := s.repo.User.GetByID(ctx, evaluatorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if !evaluator.IsActive {
		return nil, ErrEvaluatorInactive
	}
	if evaluator.DepartmentID != actor.DepartmentID {
		return nil, ErrCrossDepartment
	}
	return evaluator, nil
}

func (s *assignmentService) audit(ctx context.Context, actorID, action, entity, entityID, detail string) {
	writeAudit(ctx, s.repo.Audit, s.logger, actorID, action, entity, entityID, detail)
}
