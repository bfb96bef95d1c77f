package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"adces/internal/dto"
	"adces/internal/model"
	"adces/internal/policy"
	"adces/internal/repository"
)

const otherDeptID = "99999999-9999-9999-9999-999999999999"

func seedAssignmentFixtures(t *testing.T, repo *repository.Repository) {
	t.Helper()
	seedObservationFixtures(t, repo)
	ctx := context.Background()

	if err := repo.Department.Create(ctx, &model.Department{
		DepartmentID: otherDeptID, Code: "JHS", Name: "Junior High School", IsActive: true,
	}); err != nil {
		t.Fatalf("seed department: %v", err)
	}
	if err := repo.User.Create(ctx, &model.User{
		UserID: testCoordID, Name: "Coord Santos", Email: "coord.santos@example.edu",
		Role: policy.RoleSubjectCoordinator, DepartmentID: testDeptID, IsActive: true,
	}); err != nil {
		t.Fatalf("seed coordinator: %v", err)
	}
}

func TestAssignTeacher(t *testing.T) {
	repo := newMockRepository()
	seedAssignmentFixtures(t, repo)
	svc := NewAssignmentService(repo, zap.NewNop())

	resp, err := svc.AssignTeacher(context.Background(), &dto.AssignTeacherRequest{
		EvaluatorID: testCoordID,
		TeacherID:   testTeacherID,
		Subject:     "Mathematics",
	}, deanActor())
	if err != nil {
		t.Fatalf("AssignTeacher: %v", err)
	}
	if resp.Evaluator == nil || resp.Evaluator.ID != testCoordID {
		t.Error("response missing evaluator")
	}

	// same edge twice
	if _, err := svc.AssignTeacher(context.Background(), &dto.AssignTeacherRequest{
		EvaluatorID: testCoordID,
		TeacherID:   testTeacherID,
	}, deanActor()); !errors.Is(err, ErrAssignmentExists) {
		t.Fatalf("duplicate AssignTeacher error = %v, want ErrAssignmentExists", err)
	}
}

func TestAssignTeacherRejectsNonCoordinator(t *testing.T) {
	repo := newMockRepository()
	seedAssignmentFixtures(t, repo)
	ctx := context.Background()

	if err := repo.User.Create(ctx, &model.User{
		UserID: "55555555-5555-5555-5555-555555555555", Name: "Other Dean",
		Email: "other.dean@example.edu", Role: policy.RoleDean,
		DepartmentID: testDeptID, IsActive: true,
	}); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	svc := NewAssignmentService(repo, zap.NewNop())
	_, err := svc.AssignTeacher(ctx, &dto.AssignTeacherRequest{
		EvaluatorID: "55555555-5555-5555-5555-555555555555",
		TeacherID:   testTeacherID,
	}, deanActor())
	if !errors.Is(err, ErrNotAnEvaluator) {
		t.Fatalf("AssignTeacher error = %v, want ErrNotAnEvaluator", err)
	}
}

func TestAssignTeacherCrossDepartment(t *testing.T) {
	repo := newMockRepository()
	seedAssignmentFixtures(t, repo)
	ctx := context.Background()

	if err := repo.Teacher.Create(ctx, &model.Teacher{
		TeacherID: "66666666-6666-6666-6666-666666666666", Name: "Outside Teacher",
		Email: "outside@example.edu", DepartmentID: otherDeptID,
		EvalStatus: model.TeacherEvalPending,
	}); err != nil {
		t.Fatalf("seed teacher: %v", err)
	}

	svc := NewAssignmentService(repo, zap.NewNop())
	_, err := svc.AssignTeacher(ctx, &dto.AssignTeacherRequest{
		EvaluatorID: testCoordID,
		TeacherID:   "66666666-6666-6666-6666-666666666666",
	}, deanActor())
	if !errors.Is(err, ErrCrossDepartment) {
		t.Fatalf("AssignTeacher error = %v, want ErrCrossDepartment", err)
	}
}

func TestAssignCoordinator(t *testing.T) {
	repo := newMockRepository()
	seedAssignmentFixtures(t, repo)
	svc := NewAssignmentService(repo, zap.NewNop())
	ctx := context.Background()

	resp, err := svc.AssignCoordinator(ctx, &dto.AssignCoordinatorRequest{EvaluatorID: testCoordID}, deanActor())
	if err != nil {
		t.Fatalf("AssignCoordinator: %v", err)
	}

	list, err := svc.ListCoordinators(ctx, testDeanID)
	if err != nil {
		t.Fatalf("ListCoordinators: %v", err)
	}
	if len(list) != 1 || list[0].ID != resp.ID {
		t.Fatalf("ListCoordinators = %d entries, want the created edge", len(list))
	}

	// only the owning supervisor may remove the edge
	otherDean := policy.Actor{ID: "55555555-5555-5555-5555-555555555555", Role: policy.RoleDean, DepartmentID: testDeptID}
	if err := svc.UnassignCoordinator(ctx, resp.ID, otherDean); !errors.Is(err, ErrAssignmentNotManaged) {
		t.Errorf("UnassignCoordinator by other dean error = %v, want ErrAssignmentNotManaged", err)
	}
	if err := svc.UnassignCoordinator(ctx, resp.ID, deanActor()); err != nil {
		t.Fatalf("UnassignCoordinator: %v", err)
	}
}

func TestSetSpecializationMatchesRole(t *testing.T) {
	repo := newMockRepository()
	seedAssignmentFixtures(t, repo)
	svc := NewAssignmentService(repo, zap.NewNop())
	ctx := context.Background()

	// grade levels on a subject coordinator
	_, err := svc.SetSpecialization(ctx, testCoordID, &dto.SetSpecializationRequest{
		GradeLevels: []string{"Grade 11"},
	}, deanActor())
	if !errors.Is(err, ErrSpecializationRole) {
		t.Fatalf("SetSpecialization error = %v, want ErrSpecializationRole", err)
	}

	resp, err := svc.SetSpecialization(ctx, testCoordID, &dto.SetSpecializationRequest{
		Subjects: []string{"Mathematics", "Physics"},
	}, deanActor())
	if err != nil {
		t.Fatalf("SetSpecialization: %v", err)
	}
	if len(resp.Subjects) != 2 {
		t.Errorf("subjects = %v, want two entries", resp.Subjects)
	}
	if len(resp.GradeLevels) != 0 {
		t.Errorf("grade levels = %v, want none", resp.GradeLevels)
	}
}
