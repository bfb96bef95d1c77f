package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"adces/internal/dto"
	"adces/internal/model"
	"adces/internal/policy"
	"adces/internal/repository"
)

var (
	ErrTeacherNotFound   = errors.New("teacher not found")
	ErrTeacherNotVisible = errors.New("teacher is outside your scope")
	ErrTeacherEmailInUse = errors.New("teacher email already in use")
)

// TeacherService manages teacher records and scoped visibility.
type TeacherService interface {
	Create(ctx context.Context, req *dto.CreateTeacherRequest, callerID string) (*dto.TeacherResponse, error)
	GetByID(ctx context.Context, id string, actor policy.Actor) (*dto.TeacherResponse, error)
	List(ctx context.Context, req *dto.TeacherListRequest, actor policy.Actor) ([]dto.TeacherResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdateTeacherRequest, callerID string) (*dto.TeacherResponse, error)
}

type teacherService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewTeacherService creates the TeacherService.
func NewTeacherService(repo *repository.Repository, logger *zap.Logger) TeacherService {
	return &teacherService{repo: repo, logger: logger}
}

func (s *teacherService) Create(ctx context.Context, req *dto.CreateTeacherRequest, callerID string) (*dto.TeacherResponse, error) {
	if _, err := s.repo.Department.GetByID(ctx, req.DepartmentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDepartmentNotFound
		}
		return nil, err
	}

	if _, err := s.repo.Teacher.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrTeacherEmailInUse
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	teacher := &model.Teacher{
		Name:         req.Name,
		Email:        req.Email,
		DepartmentID: req.DepartmentID,
		Subject:      req.Subject,
		GradeLevel:   req.GradeLevel,
		EvalStatus:   model.TeacherEvalPending,
		BaseModel:    model.BaseModel{CreatedBy: &callerID},
	}

	if err := s.repo.Teacher.Create(ctx, teacher); err != nil {
		s.logger.Error("teacher create failed", zap.Error(err))
		return nil, err
	}

	created, err := s.repo.Teacher.GetByID(ctx, teacher.TeacherID)
	if err != nil {
		return nil, err
	}
	return toTeacherResponse(created), nil
}

// GetByID returns a teacher only when the actor's scope reaches them.
// Scope misses return the same error as true misses for coordinators so
// the response does not leak which teacher records exist.
func (s *teacherService) GetByID(ctx context.Context, id string, actor policy.Actor) (*dto.TeacherResponse, error) {
	teacher, err := s.repo.Teacher.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeacherNotFound
		}
		s.logger.Error("teacher lookup failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	ok, err := canReachTeacherID(ctx, s.repo, actor, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		if policy.IsCoordinator(actor.Role) {
			return nil, ErrTeacherNotFound
		}
		return nil, ErrTeacherNotVisible
	}

	return toTeacherResponse(teacher), nil
}

func (s *teacherService) List(ctx context.Context, req *dto.TeacherListRequest, actor policy.Actor) ([]dto.TeacherResponse, int64, error) {
	filters, err := scopedTeacherFilters(ctx, s.repo, actor)
	if err != nil {
		s.logger.Error("teacher scope resolution failed", zap.String("actor", actor.ID), zap.Error(err))
		return nil, 0, err
	}

	// request filters narrow the scoped set, never widen it
	if req.DepartmentID != "" {
		if filters.DepartmentID != "" && filters.DepartmentID != req.DepartmentID {
			return []dto.TeacherResponse{}, 0, nil
		}
		filters.DepartmentID = req.DepartmentID
	}
	filters.EvalStatus = req.EvalStatus
	filters.Keyword = req.Keyword

	teachers, total, err := s.repo.Teacher.ListWithFilters(ctx, filters, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("teacher list failed", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.TeacherResponse, 0, len(teachers))
	for i := range teachers {
		result = append(result, *toTeacherResponse(&teachers[i]))
	}
	return result, total, nil
}

func (s *teacherService) Update(ctx context.Context, id string, req *dto.UpdateTeacherRequest, callerID string) (*dto.TeacherResponse, error) {
	teacher, err := s.repo.Teacher.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeacherNotFound
		}
		s.logger.Error("teacher lookup failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if req.Name != nil {
		teacher.Name = *req.Name
	}
	if req.Email != nil {
		existing, err := s.repo.Teacher.GetByEmail(ctx, *req.Email)
		if err == nil && existing.TeacherID != id {
			return nil, ErrTeacherEmailInUse
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		teacher.Email = *req.Email
	}
	if req.DepartmentID != nil {
		if _, err := s.repo.Department.GetByID(ctx, *req.DepartmentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrDepartmentNotFound
			}
			return nil, err
		}
		teacher.DepartmentID = *req.DepartmentID
	}
	if req.Subject != nil {
		teacher.Subject = *req.Subject
	}
	if req.GradeLevel != nil {
		teacher.GradeLevel = *req.GradeLevel
	}

	teacher.UpdatedBy = &callerID

	if err := s.repo.Teacher.Update(ctx, teacher); err != nil {
		s.logger.Error("teacher update failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	updated, err := s.repo.Teacher.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toTeacherResponse(updated), nil
}
