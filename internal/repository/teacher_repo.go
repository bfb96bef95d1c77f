package repository

import (
	"context"

	"gorm.io/gorm"

	"adces/internal/model"
)

// TeacherListFilters narrows the teacher listing. A non-nil IDs slice
// restricts results to that set (coordinator assignment scope); an empty
// non-nil slice matches nothing.
type TeacherListFilters struct {
	DepartmentID string
	EvalStatus   string
	Keyword      string
	IDs          []string
}

// TeacherRepository is the teacher data-access interface.
type TeacherRepository interface {
	Create(ctx context.Context, teacher *model.Teacher) error
	GetByID(ctx context.Context, id string) (*model.Teacher, error)
	GetByEmail(ctx context.Context, email string) (*model.Teacher, error)
	Update(ctx context.Context, teacher *model.Teacher) error
	ListWithFilters(ctx context.Context, filters *TeacherListFilters, offset, limit int) ([]model.Teacher, int64, error)
	CountByStatus(ctx context.Context, filters *TeacherListFilters) (map[string]int64, error)
}

type teacherRepo struct {
	db *gorm.DB
}

// NewTeacherRepo creates the GORM-backed TeacherRepository.
func NewTeacherRepo(db *gorm.DB) TeacherRepository {
	return &teacherRepo{db: db}
}

func (r *teacherRepo) Create(ctx context.Context, teacher *model.Teacher) error {
	return r.db.WithContext(ctx).Create(teacher).Error
}

func (r *teacherRepo) GetByID(ctx context.Context, id string) (*model.Teacher, error) {
	var teacher model.Teacher
	err := r.db.WithContext(ctx).
		Preload("Department").
		Where("teacher_id = ?", id).
		First(&teacher).Error
	if err != nil {
		return nil, err
	}
	return &teacher, nil
}

func (r *teacherRepo) GetByEmail(ctx context.Context, email string) (*model.Teacher, error) {
	var teacher model.Teacher
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&teacher).Error
	if err != nil {
		return nil, err
	}
	return &teacher, nil
}

func (r *teacherRepo) Update(ctx context.Context, teacher *model.Teacher) error {
	return r.db.WithContext(ctx).Save(teacher).Error
}

func (r *teacherRepo) applyFilters(db *gorm.DB, filters *TeacherListFilters) *gorm.DB {
	if filters == nil {
		return db
	}
	if filters.DepartmentID != "" {
		db = db.Where("department_id = ?", filters.DepartmentID)
	}
	if filters.EvalStatus != "" {
		db = db.Where("eval_status = ?", filters.EvalStatus)
	}
	if filters.Keyword != "" {
		kw := "%" + filters.Keyword + "%"
		db = db.Where("name ILIKE ? OR email ILIKE ?", kw, kw)
	}
	if filters.IDs != nil {
		db = db.Where("teacher_id IN ?", filters.IDs)
	}
	return db
}

func (r *teacherRepo) ListWithFilters(ctx context.Context, filters *TeacherListFilters, offset, limit int) ([]model.Teacher, int64, error) {
	var teachers []model.Teacher
	var total int64

	// an empty scoped set matches nothing; skip the query entirely
	if filters != nil && filters.IDs != nil && len(filters.IDs) == 0 {
		return nil, 0, nil
	}

	db := r.applyFilters(r.db.WithContext(ctx).Model(&model.Teacher{}), filters)

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("Department").
		Offset(offset).Limit(limit).
		Order("name").
		Find(&teachers).Error; err != nil {
		return nil, 0, err
	}

	return teachers, total, nil
}

func (r *teacherRepo) CountByStatus(ctx context.Context, filters *TeacherListFilters) (map[string]int64, error) {
	if filters != nil && filters.IDs != nil && len(filters.IDs) == 0 {
		return map[string]int64{}, nil
	}

	type row struct {
		EvalStatus string
		N          int64
	}
	var rows []row

	db := r.applyFilters(r.db.WithContext(ctx).Model(&model.Teacher{}), filters)
	if err := db.Select("eval_status, COUNT(*) AS n").Group("eval_status").Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make(map[string]int64, len(rows))
	for _, rw := range rows {
		out[rw.EvalStatus] = rw.N
	}
	return out, nil
}
