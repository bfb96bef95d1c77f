package repository

import (
	"context"

	"gorm.io/gorm"

	"adces/internal/model"
)

// ScheduleRepository manages observation schedule slots.
type ScheduleRepository interface {
	Create(ctx context.Context, schedule *model.ObservationSchedule) error
	GetByID(ctx context.Context, id string) (*model.ObservationSchedule, error)
	ListByEvaluator(ctx context.Context, evaluatorID string, includeCleared bool) ([]model.ObservationSchedule, error)
	ListByTeacher(ctx context.Context, teacherID string) ([]model.ObservationSchedule, error)
	ClearByTeacher(ctx context.Context, teacherID string) error
}

type scheduleRepo struct {
	db *gorm.DB
}

// NewScheduleRepo creates the GORM-backed ScheduleRepository.
func NewScheduleRepo(db *gorm.DB) ScheduleRepository {
	return &scheduleRepo{db: db}
}

func (r *scheduleRepo) Create(ctx context.Context, schedule *model.ObservationSchedule) error {
	return r.db.WithContext(ctx).Create(schedule).Error
}

func (r *scheduleRepo) GetByID(ctx context.Context, id string) (*model.ObservationSchedule, error) {
	var s model.ObservationSchedule
	err := r.db.WithContext(ctx).
		Preload("Teacher").
		Preload("Teacher.Department").
		Preload("Evaluator").
		Where("schedule_id = ?", id).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *scheduleRepo) ListByEvaluator(ctx context.Context, evaluatorID string, includeCleared bool) ([]model.ObservationSchedule, error) {
	var list []model.ObservationSchedule
	db := r.db.WithContext(ctx).
		Preload("Teacher").
		Preload("Teacher.Department").
		Where("evaluator_id = ?", evaluatorID)
	if !includeCleared {
		db = db.Where("is_cleared = FALSE")
	}
	err := db.Order("observe_date, start_time").Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *scheduleRepo) ListByTeacher(ctx context.Context, teacherID string) ([]model.ObservationSchedule, error) {
	var list []model.ObservationSchedule
	err := r.db.WithContext(ctx).
		Preload("Evaluator").
		Where("teacher_id = ?", teacherID).
		Order("observe_date, start_time").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// ClearByTeacher marks every open slot for the teacher as cleared.
// Called inside the mark-done transaction.
func (r *scheduleRepo) ClearByTeacher(ctx context.Context, teacherID string) error {
	return r.db.WithContext(ctx).Model(&model.ObservationSchedule{}).
		Where("teacher_id = ? AND is_cleared = FALSE", teacherID).
		Update("is_cleared", true).Error
}
