package repository

import (
	"context"

	"gorm.io/gorm"

	"adces/internal/model"
)

// TeacherAssignmentRepository manages evaluator↔teacher edges.
type TeacherAssignmentRepository interface {
	Create(ctx context.Context, assignment *model.TeacherAssignment) error
	GetByID(ctx context.Context, id string) (*model.TeacherAssignment, error)
	Delete(ctx context.Context, id string) error
	Exists(ctx context.Context, evaluatorID, teacherID string) (bool, error)
	ListByEvaluator(ctx context.Context, evaluatorID string) ([]model.TeacherAssignment, error)
	ListTeacherIDsByEvaluator(ctx context.Context, evaluatorID string) ([]string, error)
}

type teacherAssignmentRepo struct {
	db *gorm.DB
}

// NewTeacherAssignmentRepo creates the GORM-backed implementation.
func NewTeacherAssignmentRepo(db *gorm.DB) TeacherAssignmentRepository {
	return &teacherAssignmentRepo{db: db}
}

func (r *teacherAssignmentRepo) Create(ctx context.Context, assignment *model.TeacherAssignment) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

func (r *teacherAssignmentRepo) GetByID(ctx context.Context, id string) (*model.TeacherAssignment, error) {
	var a model.TeacherAssignment
	err := r.db.WithContext(ctx).
		Preload("Evaluator").
		Preload("Teacher").
		Where("assignment_id = ?", id).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *teacherAssignmentRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("assignment_id = ?", id).
		Delete(&model.TeacherAssignment{}).Error
}

func (r *teacherAssignmentRepo) Exists(ctx context.Context, evaluatorID, teacherID string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.TeacherAssignment{}).
		Where("evaluator_id = ? AND teacher_id = ?", evaluatorID, teacherID).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *teacherAssignmentRepo) ListByEvaluator(ctx context.Context, evaluatorID string) ([]model.TeacherAssignment, error) {
	var list []model.TeacherAssignment
	err := r.db.WithContext(ctx).
		Preload("Teacher").
		Preload("Teacher.Department").
		Where("evaluator_id = ?", evaluatorID).
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *teacherAssignmentRepo) ListTeacherIDsByEvaluator(ctx context.Context, evaluatorID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&model.TeacherAssignment{}).
		Where("evaluator_id = ?", evaluatorID).
		Pluck("teacher_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// EvaluatorAssignmentRepository manages supervisor↔coordinator edges and
// the coordinator specialization tables.
type EvaluatorAssignmentRepository interface {
	Create(ctx context.Context, assignment *model.EvaluatorAssignment) error
	GetByID(ctx context.Context, id string) (*model.EvaluatorAssignment, error)
	Delete(ctx context.Context, id string) error
	Exists(ctx context.Context, supervisorID, evaluatorID string) (bool, error)
	ListBySupervisor(ctx context.Context, supervisorID string) ([]model.EvaluatorAssignment, error)

	ListSubjects(ctx context.Context, evaluatorID string) ([]string, error)
	ListGradeLevels(ctx context.Context, evaluatorID string) ([]string, error)
	ReplaceSubjects(ctx context.Context, evaluatorID string, subjects []string) error
	ReplaceGradeLevels(ctx context.Context, evaluatorID string, gradeLevels []string) error
}

type evaluatorAssignmentRepo struct {
	db *gorm.DB
}

// NewEvaluatorAssignmentRepo creates the GORM-backed implementation.
func NewEvaluatorAssignmentRepo(db *gorm.DB) EvaluatorAssignmentRepository {
	return &evaluatorAssignmentRepo{db: db}
}

func (r *evaluatorAssignmentRepo) Create(ctx context.Context, assignment *model.EvaluatorAssignment) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

func (r *evaluatorAssignmentRepo) GetByID(ctx context.Context, id string) (*model.EvaluatorAssignment, error) {
	var a model.EvaluatorAssignment
	err := r.db.WithContext(ctx).
		Preload("Supervisor").
		Preload("Evaluator").
		Where("assignment_id = ?", id).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *evaluatorAssignmentRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("assignment_id = ?", id).
		Delete(&model.EvaluatorAssignment{}).Error
}

func (r *evaluatorAssignmentRepo) Exists(ctx context.Context, supervisorID, evaluatorID string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.EvaluatorAssignment{}).
		Where("supervisor_id = ? AND evaluator_id = ?", supervisorID, evaluatorID).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *evaluatorAssignmentRepo) ListBySupervisor(ctx context.Context, supervisorID string) ([]model.EvaluatorAssignment, error) {
	var list []model.EvaluatorAssignment
	err := r.db.WithContext(ctx).
		Preload("Evaluator").
		Preload("Evaluator.Department").
		Where("supervisor_id = ?", supervisorID).
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *evaluatorAssignmentRepo) ListSubjects(ctx context.Context, evaluatorID string) ([]string, error) {
	var subjects []string
	err := r.db.WithContext(ctx).Model(&model.EvaluatorSubject{}).
		Where("evaluator_id = ?", evaluatorID).
		Pluck("subject", &subjects).Error
	if err != nil {
		return nil, err
	}
	return subjects, nil
}

func (r *evaluatorAssignmentRepo) ListGradeLevels(ctx context.Context, evaluatorID string) ([]string, error) {
	var levels []string
	err := r.db.WithContext(ctx).Model(&model.EvaluatorGradeLevel{}).
		Where("evaluator_id = ?", evaluatorID).
		Pluck("grade_level", &levels).Error
	if err != nil {
		return nil, err
	}
	return levels, nil
}

func (r *evaluatorAssignmentRepo) ReplaceSubjects(ctx context.Context, evaluatorID string, subjects []string) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("evaluator_id = ?", evaluatorID).
		Delete(&model.EvaluatorSubject{}).Error; err != nil {
		return err
	}
	if len(subjects) == 0 {
		return nil
	}
	rows := make([]model.EvaluatorSubject, 0, len(subjects))
	for _, s := range subjects {
		rows = append(rows, model.EvaluatorSubject{EvaluatorID: evaluatorID, Subject: s})
	}
	return db.Create(&rows).Error
}

func (r *evaluatorAssignmentRepo) ReplaceGradeLevels(ctx context.Context, evaluatorID string, gradeLevels []string) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("evaluator_id = ?", evaluatorID).
		Delete(&model.EvaluatorGradeLevel{}).Error; err != nil {
		return err
	}
	if len(gradeLevels) == 0 {
		return nil
	}
	rows := make([]model.EvaluatorGradeLevel, 0, len(gradeLevels))
	for _, g := range gradeLevels {
		rows = append(rows, model.EvaluatorGradeLevel{EvaluatorID: evaluatorID, GradeLevel: g})
	}
	return db.Create(&rows).Error
}
