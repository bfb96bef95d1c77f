package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"adces/internal/model"
)

// EvaluationListFilters narrows evaluation listings. A non-nil
// TeacherIDs slice restricts to that set (coordinator scope).
type EvaluationListFilters struct {
	TeacherID    string
	EvaluatorID  string
	Status       string
	DepartmentID string
	TeacherIDs   []string
}

// EvaluationRepository is the evaluation data-access interface.
type EvaluationRepository interface {
	Create(ctx context.Context, eval *model.Evaluation) error
	GetByID(ctx context.Context, id string) (*model.Evaluation, error)
	GetByTeacherEvaluatorDate(ctx context.Context, teacherID, evaluatorID string, date time.Time) (*model.Evaluation, error)
	GetLatestByTeacher(ctx context.Context, teacherID string) (*model.Evaluation, error)
	Update(ctx context.Context, eval *model.Evaluation) error
	ReplaceDetails(ctx context.Context, evaluationID string, details []model.EvaluationDetail) error
	ListWithFilters(ctx context.Context, filters *EvaluationListFilters, offset, limit int) ([]model.Evaluation, int64, error)
	ListAll(ctx context.Context, filters *EvaluationListFilters) ([]model.Evaluation, error)
}

type evaluationRepo struct {
	db *gorm.DB
}

// NewEvaluationRepo creates the GORM-backed EvaluationRepository.
func NewEvaluationRepo(db *gorm.DB) EvaluationRepository {
	return &evaluationRepo{db: db}
}

func (r *evaluationRepo) Create(ctx context.Context, eval *model.Evaluation) error {
	return r.db.WithContext(ctx).Create(eval).Error
}

func (r *evaluationRepo) GetByID(ctx context.Context, id string) (*model.Evaluation, error) {
	var eval model.Evaluation
	err := r.db.WithContext(ctx).
		Preload("Teacher").
		Preload("Teacher.Department").
		Preload("Evaluator").
		Preload("Details").
		Where("evaluation_id = ?", id).
		First(&eval).Error
	if err != nil {
		return nil, err
	}
	return &eval, nil
}

func (r *evaluationRepo) GetByTeacherEvaluatorDate(ctx context.Context, teacherID, evaluatorID string, date time.Time) (*model.Evaluation, error) {
	var eval model.Evaluation
	err := r.db.WithContext(ctx).
		Preload("Details").
		Where("teacher_id = ? AND evaluator_id = ? AND observation_date = ?", teacherID, evaluatorID, date).
		First(&eval).Error
	if err != nil {
		return nil, err
	}
	return &eval, nil
}

func (r *evaluationRepo) GetLatestByTeacher(ctx context.Context, teacherID string) (*model.Evaluation, error) {
	var eval model.Evaluation
	err := r.db.WithContext(ctx).
		Where("teacher_id = ?", teacherID).
		Order("observation_date DESC").
		First(&eval).Error
	if err != nil {
		return nil, err
	}
	return &eval, nil
}

func (r *evaluationRepo) Update(ctx context.Context, eval *model.Evaluation) error {
	return r.db.WithContext(ctx).Omit("Details", "Teacher", "Evaluator").Save(eval).Error
}

// ReplaceDetails swaps the full rating set of a draft.
func (r *evaluationRepo) ReplaceDetails(ctx context.Context, evaluationID string, details []model.EvaluationDetail) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("evaluation_id = ?", evaluationID).
		Delete(&model.EvaluationDetail{}).Error; err != nil {
		return err
	}
	if len(details) == 0 {
		return nil
	}
	return db.Create(&details).Error
}

func (r *evaluationRepo) applyFilters(db *gorm.DB, filters *EvaluationListFilters) *gorm.DB {
	if filters == nil {
		return db
	}
	if filters.TeacherID != "" {
		db = db.Where("evaluations.teacher_id = ?", filters.TeacherID)
	}
	if filters.EvaluatorID != "" {
		db = db.Where("evaluations.evaluator_id = ?", filters.EvaluatorID)
	}
	if filters.Status != "" {
		db = db.Where("evaluations.status = ?", filters.Status)
	}
	if filters.DepartmentID != "" {
		db = db.Joins("JOIN teachers ON teachers.teacher_id = evaluations.teacher_id").
			Where("teachers.department_id = ?", filters.DepartmentID)
	}
	if filters.TeacherIDs != nil {
		db = db.Where("evaluations.teacher_id IN ?", filters.TeacherIDs)
	}
	return db
}

func (r *evaluationRepo) ListWithFilters(ctx context.Context, filters *EvaluationListFilters, offset, limit int) ([]model.Evaluation, int64, error) {
	var evals []model.Evaluation
	var total int64

	if filters != nil && filters.TeacherIDs != nil && len(filters.TeacherIDs) == 0 {
		return nil, 0, nil
	}

	db := r.applyFilters(r.db.WithContext(ctx).Model(&model.Evaluation{}), filters)

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("Teacher").
		Preload("Teacher.Department").
		Preload("Evaluator").
		Preload("Details").
		Offset(offset).Limit(limit).
		Order("evaluations.observation_date DESC").
		Find(&evals).Error; err != nil {
		return nil, 0, err
	}

	return evals, total, nil
}

func (r *evaluationRepo) ListAll(ctx context.Context, filters *EvaluationListFilters) ([]model.Evaluation, error) {
	var evals []model.Evaluation

	if filters != nil && filters.TeacherIDs != nil && len(filters.TeacherIDs) == 0 {
		return nil, nil
	}

	db := r.applyFilters(r.db.WithContext(ctx).Model(&model.Evaluation{}), filters)

	if err := db.Preload("Teacher").
		Preload("Teacher.Department").
		Preload("Evaluator").
		Preload("Details").
		Order("evaluations.observation_date DESC").
		Find(&evals).Error; err != nil {
		return nil, err
	}

	return evals, nil
}
