package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"adces/internal/dto"
	"adces/internal/model"
	"adces/internal/policy"
	"adces/internal/repository"
	"adces/internal/rubric"
)

const (
	testDeptID    = "11111111-1111-1111-1111-111111111111"
	testTeacherID = "22222222-2222-2222-2222-222222222222"
	testDeanID    = "33333333-3333-3333-3333-333333333333"
	testCoordID   = "44444444-4444-4444-4444-444444444444"
)

func seedObservationFixtures(t *testing.T, repo *repository.Repository) {
	t.Helper()
	ctx := context.Background()

	if err := repo.Department.Create(ctx, &model.Department{
		DepartmentID: testDeptID, Code: "SHS", Name: "Senior High School", IsActive: true,
	}); err != nil {
		t.Fatalf("seed department: %v", err)
	}
	if err := repo.Teacher.Create(ctx, &model.Teacher{
		TeacherID: testTeacherID, Name: "Ana Reyes", Email: "ana.reyes@example.edu",
		DepartmentID: testDeptID, Subject: "Mathematics", GradeLevel: "Grade 11",
		EvalStatus: model.TeacherEvalPending,
	}); err != nil {
		t.Fatalf("seed teacher: %v", err)
	}
	if err := repo.User.Create(ctx, &model.User{
		UserID: testDeanID, Name: "Dean Cruz", Email: "dean.cruz@example.edu",
		Role: policy.RoleDean, DepartmentID: testDeptID, IsActive: true,
	}); err != nil {
		t.Fatalf("seed dean: %v", err)
	}
}

func deanActor() policy.Actor {
	return policy.Actor{ID: testDeanID, Role: policy.RoleDean, DepartmentID: testDeptID}
}

func TestEvaluationCreateDraft(t *testing.T) {
	repo := newMockRepository()
	seedObservationFixtures(t, repo)
	svc := NewEvaluationService(repo, zap.NewNop())

	resp, err := svc.Create(context.Background(), &dto.CreateEvaluationRequest{
		TeacherID:       testTeacherID,
		ObservationDate: "2026-02-10",
		Ratings: dto.RatingsRequest{
			Communications: []int{5, 4, 5, 4, 4},
			Management:     []int{4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4},
			Assessment:     []int{5, 5, 4, 4, 5, 5},
		},
		Strengths: "Clear learning goals",
	}, deanActor())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if resp.Status != model.EvaluationDraft {
		t.Errorf("status = %q, want draft", resp.Status)
	}
	if resp.OverallAverage == 0 {
		t.Error("overall average not computed")
	}
	if resp.Label == rubric.LabelNotRated {
		t.Errorf("label = %q for a fully rated form", resp.Label)
	}
	if got := resp.Categories[rubric.CategoryCommunications].Average; got != 4.4 {
		t.Errorf("communications average = %v, want 4.4", got)
	}
}

func TestEvaluationCreateDuplicateDate(t *testing.T) {
	repo := newMockRepository()
	seedObservationFixtures(t, repo)
	svc := NewEvaluationService(repo, zap.NewNop())

	req := &dto.CreateEvaluationRequest{TeacherID: testTeacherID, ObservationDate: "2026-02-10"}
	if _, err := svc.Create(context.Background(), req, deanActor()); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	if _, err := svc.Create(context.Background(), req, deanActor()); !errors.Is(err, ErrEvaluationExists) {
		t.Fatalf("second Create error = %v, want ErrEvaluationExists", err)
	}
}

func TestEvaluationUpdateRules(t *testing.T) {
	repo := newMockRepository()
	seedObservationFixtures(t, repo)
	svc := NewEvaluationService(repo, zap.NewNop())
	ctx := context.Background()

	created, err := svc.Create(ctx, &dto.CreateEvaluationRequest{
		TeacherID:       testTeacherID,
		ObservationDate: "2026-02-10",
		Ratings:         dto.RatingsRequest{Communications: []int{3, 3, 3, 3, 3}},
	}, deanActor())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	stranger := policy.Actor{ID: testCoordID, Role: policy.RoleDean, DepartmentID: testDeptID}
	if _, err := svc.Update(ctx, created.ID, &dto.UpdateEvaluationRequest{}, stranger); !errors.Is(err, ErrNotEvaluationOwner) {
		t.Errorf("Update by non-owner error = %v, want ErrNotEvaluationOwner", err)
	}

	strengths := "Good pacing"
	updated, err := svc.Update(ctx, created.ID, &dto.UpdateEvaluationRequest{
		Strengths: &strengths,
		Ratings:   &dto.RatingsRequest{Communications: []int{5, 5, 5, 5, 5}},
	}, deanActor())
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Strengths != strengths {
		t.Errorf("strengths = %q, want %q", updated.Strengths, strengths)
	}
	if got := updated.Categories[rubric.CategoryCommunications].Average; got != 5.0 {
		t.Errorf("communications average after update = %v, want 5.0", got)
	}

	if _, err := svc.Complete(ctx, created.ID, deanActor()); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if _, err := svc.Update(ctx, created.ID, &dto.UpdateEvaluationRequest{Strengths: &strengths}, deanActor()); !errors.Is(err, ErrEvaluationCompleted) {
		t.Errorf("Update after completion error = %v, want ErrEvaluationCompleted", err)
	}
}

func TestEvaluationCompleteRequiresRatings(t *testing.T) {
	repo := newMockRepository()
	seedObservationFixtures(t, repo)
	svc := NewEvaluationService(repo, zap.NewNop())
	ctx := context.Background()

	created, err := svc.Create(ctx, &dto.CreateEvaluationRequest{
		TeacherID:       testTeacherID,
		ObservationDate: "2026-02-10",
	}, deanActor())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.Complete(ctx, created.ID, deanActor()); !errors.Is(err, ErrEvaluationEmpty) {
		t.Fatalf("Complete error = %v, want ErrEvaluationEmpty", err)
	}
}

func TestMarkTeacherDoneWithPendingDraft(t *testing.T) {
	repo := newMockRepository()
	seedObservationFixtures(t, repo)
	svc := NewEvaluationService(repo, zap.NewNop())
	ctx := context.Background()

	created, err := svc.Create(ctx, &dto.CreateEvaluationRequest{
		TeacherID:       testTeacherID,
		ObservationDate: "2026-02-10",
		Ratings:         dto.RatingsRequest{Communications: []int{4, 4, 4, 4, 4}},
	}, deanActor())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := repo.Schedule.Create(ctx, &model.ObservationSchedule{
		TeacherID: testTeacherID, EvaluatorID: testDeanID,
		ObserveDate: time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC),
		StartTime:   "09:00", EndTime: "10:00",
	}); err != nil {
		t.Fatalf("seed schedule: %v", err)
	}

	resp, err := svc.MarkTeacherDone(ctx, testTeacherID, deanActor())
	if err != nil {
		t.Fatalf("MarkTeacherDone: %v", err)
	}
	if !resp.EvaluationUpdated {
		t.Error("EvaluationUpdated = false, want true with a pending draft")
	}

	eval, err := repo.Evaluation.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("reload evaluation: %v", err)
	}
	if eval.Status != model.EvaluationCompleted {
		t.Errorf("evaluation status = %q, want completed", eval.Status)
	}

	teacher, err := repo.Teacher.GetByID(ctx, testTeacherID)
	if err != nil {
		t.Fatalf("reload teacher: %v", err)
	}
	if teacher.EvalStatus != model.TeacherEvalDone {
		t.Errorf("teacher status = %q, want done", teacher.EvalStatus)
	}

	schedules, err := repo.Schedule.ListByTeacher(ctx, testTeacherID)
	if err != nil {
		t.Fatalf("reload schedules: %v", err)
	}
	for _, schedule := range schedules {
		if !schedule.IsCleared {
			t.Error("schedule not cleared by mark-done")
		}
	}

	logs, _, err := repo.Audit.List(ctx, 0, 10)
	if err != nil {
		t.Fatalf("audit list: %v", err)
	}
	found := false
	for _, entry := range logs {
		if entry.Action == model.AuditEvaluationDone {
			found = true
		}
	}
	if !found {
		t.Error("mark-done wrote no audit entry")
	}
}

func TestMarkTeacherDoneWithoutEvaluation(t *testing.T) {
	repo := newMockRepository()
	seedObservationFixtures(t, repo)
	svc := NewEvaluationService(repo, zap.NewNop())

	resp, err := svc.MarkTeacherDone(context.Background(), testTeacherID, deanActor())
	if err != nil {
		t.Fatalf("MarkTeacherDone: %v", err)
	}
	if resp.EvaluationUpdated {
		t.Error("EvaluationUpdated = true with no evaluation on record")
	}
	if resp.Message == "" {
		t.Error("message empty; caller needs to know no form existed")
	}

	teacher, err := repo.Teacher.GetByID(context.Background(), testTeacherID)
	if err != nil {
		t.Fatalf("reload teacher: %v", err)
	}
	if teacher.EvalStatus != model.TeacherEvalDone {
		t.Errorf("teacher status = %q, want done even without a form", teacher.EvalStatus)
	}
}

func TestEvaluationListCoordinatorSeesOwnOnly(t *testing.T) {
	repo := newMockRepository()
	seedObservationFixtures(t, repo)
	ctx := context.Background()

	// one form by the dean, one by the coordinator
	for _, e := range []*model.Evaluation{
		{TeacherID: testTeacherID, EvaluatorID: testDeanID, ObservationDate: time.Date(2026, 2, 9, 0, 0, 0, 0, time.UTC), Status: model.EvaluationCompleted},
		{TeacherID: testTeacherID, EvaluatorID: testCoordID, ObservationDate: time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC), Status: model.EvaluationDraft},
	} {
		if err := repo.Evaluation.Create(ctx, e); err != nil {
			t.Fatalf("seed evaluation: %v", err)
		}
	}

	svc := NewEvaluationService(repo, zap.NewNop())
	coordinator := policy.Actor{ID: testCoordID, Role: policy.RoleSubjectCoordinator, DepartmentID: testDeptID}

	list, total, err := svc.List(ctx, &dto.EvaluationListRequest{}, coordinator)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 1 || len(list) != 1 {
		t.Fatalf("coordinator sees %d evaluations, want 1", total)
	}
}
