package service

import (
	"context"

	"adces/internal/policy"
	"adces/internal/repository"
)

// visibleTeacherIDs resolves the exact teacher-id set a coordinator may
// reach: assignment edges narrowed by any declared specialization.
// Returns (nil, nil) for roles whose scope is departmental or
// institution-wide; callers translate that into a department filter (or
// none) instead of an ID set.
func visibleTeacherIDs(ctx context.Context, repo *repository.Repository, actor policy.Actor) ([]string, error) {
	if !policy.IsCoordinator(actor.Role) {
		return nil, nil
	}

	assignments, err := repo.TeacherAssignment.ListByEvaluator(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	spec, err := loadSpecialization(ctx, repo, actor)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(assignments))
	for _, a := range assignments {
		if a.Teacher == nil {
			continue
		}
		scope := policy.TeacherScope{
			DepartmentID: a.Teacher.DepartmentID,
			Subject:      a.Teacher.Subject,
			GradeLevel:   a.Teacher.GradeLevel,
		}
		if policy.CanReachTeacher(actor, scope, true, spec) {
			ids = append(ids, a.TeacherID)
		}
	}
	return ids, nil
}

// loadSpecialization fetches a coordinator's declared subjects and grade
// levels. Other roles get the empty specialization.
func loadSpecialization(ctx context.Context, repo *repository.Repository, actor policy.Actor) (policy.Specialization, error) {
	var spec policy.Specialization

	switch actor.Role {
	case policy.RoleSubjectCoordinator:
		subjects, err := repo.EvaluatorAssignment.ListSubjects(ctx, actor.ID)
		if err != nil {
			return spec, err
		}
		spec.Subjects = subjects
	case policy.RoleGradeLevelCoordinator:
		levels, err := repo.EvaluatorAssignment.ListGradeLevels(ctx, actor.ID)
		if err != nil {
			return spec, err
		}
		spec.GradeLevels = levels
	}

	return spec, nil
}

// scopedTeacherFilters builds the repository filter expressing the
// actor's visibility: coordinators get an explicit ID set, deans and
// principals a department restriction, institution-wide roles and EDP
// no restriction.
func scopedTeacherFilters(ctx context.Context, repo *repository.Repository, actor policy.Actor) (*repository.TeacherListFilters, error) {
	filters := &repository.TeacherListFilters{}

	switch {
	case actor.Role == policy.RoleEDP, policy.IsInstitutionWide(actor.Role):
		// unrestricted
	case policy.IsCoordinator(actor.Role):
		ids, err := visibleTeacherIDs(ctx, repo, actor)
		if err != nil {
			return nil, err
		}
		if ids == nil {
			ids = []string{}
		}
		filters.IDs = ids
	default: // dean, principal
		filters.DepartmentID = actor.DepartmentID
	}

	return filters, nil
}

// canReachTeacherID runs the full policy check for one teacher,
// resolving the assignment edge and specialization as needed.
func canReachTeacherID(ctx context.Context, repo *repository.Repository, actor policy.Actor, teacherID string) (bool, error) {
	teacher, err := repo.Teacher.GetByID(ctx, teacherID)
	if err != nil {
		return false, err
	}

	assigned := false
	if policy.IsCoordinator(actor.Role) {
		assigned, err = repo.TeacherAssignment.Exists(ctx, actor.ID, teacherID)
		if err != nil {
			return false, err
		}
	}

	spec, err := loadSpecialization(ctx, repo, actor)
	if err != nil {
		return false, err
	}

	scope := policy.TeacherScope{
		DepartmentID: teacher.DepartmentID,
		Subject:      teacher.Subject,
		GradeLevel:   teacher.GradeLevel,
	}
	return policy.CanReachTeacher(actor, scope, assigned, spec), nil
}

// scopedEvaluationFilters expresses the actor's evaluation visibility:
// coordinators see their own submissions, deans and principals their
// department, institution-wide roles and EDP everything.
func scopedEvaluationFilters(actor policy.Actor) *repository.EvaluationListFilters {
	filters := &repository.EvaluationListFilters{}

	switch {
	case actor.Role == policy.RoleEDP, policy.IsInstitutionWide(actor.Role):
		// unrestricted
	case policy.IsCoordinator(actor.Role):
		filters.EvaluatorID = actor.ID
	default: // dean, principal
		filters.DepartmentID = actor.DepartmentID
	}

	return filters
}
