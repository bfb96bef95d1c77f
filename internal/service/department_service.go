package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"adces/internal/dto"
	"adces/internal/model"
	"adces/internal/repository"
)

var ErrDepartmentCodeExists = errors.New("department code already in use")

// DepartmentService manages departments.
type DepartmentService interface {
	Create(ctx context.Context, req *dto.CreateDepartmentRequest, callerID string) (*dto.DepartmentResponse, error)
	GetByID(ctx context.Context, id string) (*dto.DepartmentResponse, error)
	List(ctx context.Context) ([]dto.DepartmentResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateDepartmentRequest, callerID string) (*dto.DepartmentResponse, error)
}

type departmentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewDepartmentService creates the DepartmentService.
func NewDepartmentService(repo *repository.Repository, logger *zap.Logger) DepartmentService {
	return &departmentService{repo: repo, logger: logger}
}

func (s *departmentService) Create(ctx context.Context, req *dto.CreateDepartmentRequest, callerID string) (*dto.DepartmentResponse, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))

	if _, err := s.repo.Department.GetByCode(ctx, code); err == nil {
		return nil, ErrDepartmentCodeExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	dept := &model.Department{
		Code:      code,
		Name:      req.Name,
		IsActive:  true,
		BaseModel: model.BaseModel{CreatedBy: &callerID},
	}

	if err := s.repo.Department.Create(ctx, dept); err != nil {
		s.logger.Error("department create failed", zap.Error(err))
		return nil, err
	}

	return toDepartmentResponse(dept), nil
}

func (s *departmentService) GetByID(ctx context.Context, id string) (*dto.DepartmentResponse, error) {
	dept, err := s.repo.Department.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDepartmentNotFound
		}
		s.logger.Error("department lookup failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toDepartmentResponse(dept), nil
}

func (s *departmentService) List(ctx context.Context) ([]dto.DepartmentResponse, error) {
	departments, err := s.repo.Department.List(ctx)
	if err != nil {
		s.logger.Error("department list failed", zap.Error(err))
		return nil, err
	}

	result := make([]dto.DepartmentResponse, 0, len(departments))
	for i := range departments {
		result = append(result, *toDepartmentResponse(&departments[i]))
	}
	return result, nil
}

func (s *departmentService) Update(ctx context.Context, id string, req *dto.UpdateDepartmentRequest, callerID string) (*dto.DepartmentResponse, error) {
	dept, err := s.repo.Department.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDepartmentNotFound
		}
		s.logger.Error("department lookup failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if req.Code != nil {
		code := strings.ToUpper(strings.TrimSpace(*req.Code))
		existing, err := s.repo.Department.GetByCode(ctx, code)
		if err == nil && existing.DepartmentID != id {
			return nil, ErrDepartmentCodeExists
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		dept.Code = code
	}
	if req.Name != nil {
		dept.Name = *req.Name
	}
	if req.IsActive != nil {
		dept.IsActive = *req.IsActive
	}

	dept.UpdatedBy = &callerID

	if err := s.repo.Department.Update(ctx, dept); err != nil {
		s.logger.Error("department update failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toDepartmentResponse(dept), nil
}
