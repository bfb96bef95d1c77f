package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository aggregates every data-access interface. InTransaction runs
// a function with a Repository bound to one transaction; a returned
// error rolls everything back.
type Repository struct {
	db *gorm.DB

	User                UserRepository
	Department          DepartmentRepository
	Teacher             TeacherRepository
	Evaluation          EvaluationRepository
	TeacherAssignment   TeacherAssignmentRepository
	EvaluatorAssignment EvaluatorAssignmentRepository
	Schedule            ScheduleRepository
	Audit               AuditRepository

	InTransaction func(ctx context.Context, fn func(txRepo *Repository) error) error
}

// NewRepository builds the aggregate over a GORM connection.
func NewRepository(db *gorm.DB) *Repository {
	r := &Repository{
		db:                  db,
		User:                NewUserRepo(db),
		Department:          NewDepartmentRepo(db),
		Teacher:             NewTeacherRepo(db),
		Evaluation:          NewEvaluationRepo(db),
		TeacherAssignment:   NewTeacherAssignmentRepo(db),
		EvaluatorAssignment: NewEvaluatorAssignmentRepo(db),
		Schedule:            NewScheduleRepo(db),
		Audit:               NewAuditRepo(db),
	}
	r.InTransaction = func(ctx context.Context, fn func(txRepo *Repository) error) error {
		return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return fn(NewRepository(tx))
		})
	}
	return r
}
