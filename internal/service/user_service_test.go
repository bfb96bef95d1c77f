package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"adces/internal/dto"
	"adces/internal/model"
	"adces/internal/policy"
)

const edpID = "77777777-7777-7777-7777-777777777777"

func TestUserCreateIssuesTempPassword(t *testing.T) {
	repo := newMockRepository()
	seedObservationFixtures(t, repo)
	svc := NewUserService(repo, zap.NewNop())

	resp, err := svc.Create(context.Background(), &dto.CreateUserRequest{
		Name:         "New Principal",
		Email:        "principal@example.edu",
		Role:         policy.RolePrincipal,
		DepartmentID: testDeptID,
	}, edpID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if resp.TempPassword == "" {
		t.Fatal("no temporary password issued")
	}
	if !resp.User.MustChangePassword {
		t.Error("MustChangePassword = false on a provisioned account")
	}

	stored, err := repo.User.GetByID(context.Background(), resp.User.ID)
	if err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte(resp.TempPassword)); err != nil {
		t.Error("stored hash does not match the issued temporary password")
	}

	logs, _, err := repo.Audit.List(context.Background(), 0, 10)
	if err != nil {
		t.Fatalf("audit list: %v", err)
	}
	if len(logs) == 0 || logs[0].Action != model.AuditUserCreated {
		t.Error("user creation wrote no audit entry")
	}
}

func TestUserCreateDuplicateEmail(t *testing.T) {
	repo := newMockRepository()
	seedObservationFixtures(t, repo)
	svc := NewUserService(repo, zap.NewNop())

	req := &dto.CreateUserRequest{
		Name: "A", Email: "dup@example.edu",
		Role: policy.RoleDean, DepartmentID: testDeptID,
	}
	if _, err := svc.Create(context.Background(), req, edpID); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	if _, err := svc.Create(context.Background(), req, edpID); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("second Create error = %v, want ErrEmailExists", err)
	}
}

func TestUserDeactivateSelf(t *testing.T) {
	repo := newMockRepository()
	seedObservationFixtures(t, repo)
	svc := NewUserService(repo, zap.NewNop())

	if err := svc.Deactivate(context.Background(), testDeanID, testDeanID); !errors.Is(err, ErrUserSelfDeactivate) {
		t.Fatalf("Deactivate error = %v, want ErrUserSelfDeactivate", err)
	}
}

func TestUserResetPassword(t *testing.T) {
	repo := newMockRepository()
	seedObservationFixtures(t, repo)
	svc := NewUserService(repo, zap.NewNop())

	resp, err := svc.ResetPassword(context.Background(), testDeanID, edpID)
	if err != nil {
		t.Fatalf("ResetPassword: %v", err)
	}
	if resp.TempPassword == "" {
		t.Fatal("no temporary password issued")
	}

	stored, err := repo.User.GetByID(context.Background(), testDeanID)
	if err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if !stored.MustChangePassword {
		t.Error("MustChangePassword = false after reset")
	}
}

func TestImportUsersMixedRows(t *testing.T) {
	repo := newMockRepository()
	seedObservationFixtures(t, repo)
	svc := NewUserService(repo, zap.NewNop())

	rows := []ImportUserRow{
		{Row: 2, Name: "Valid One", Email: "one@example.edu", Role: policy.RoleDean, DepartmentCode: "SHS"},
		{Row: 3, Name: "Bad Role", Email: "two@example.edu", Role: "janitor", DepartmentCode: "SHS"},
		{Row: 4, Name: "Bad Dept", Email: "three@example.edu", Role: policy.RoleDean, DepartmentCode: "NOPE"},
		{Row: 5, Name: "", Email: "four@example.edu", Role: policy.RoleDean, DepartmentCode: "SHS"},
		{Row: 6, Name: "Valid Two", Email: "five@example.edu", Role: policy.RoleChairperson, DepartmentCode: "shs"},
	}

	resp, err := svc.ImportUsers(context.Background(), rows, edpID)
	if err != nil {
		t.Fatalf("ImportUsers: %v", err)
	}

	if resp.Success != 2 {
		t.Errorf("success = %d, want 2", resp.Success)
	}
	if resp.Failed != 3 {
		t.Errorf("failed = %d, want 3", resp.Failed)
	}
	if len(resp.Errors) != 3 {
		t.Fatalf("errors = %d entries, want 3", len(resp.Errors))
	}
	for _, importErr := range resp.Errors {
		if importErr.Reason == "" {
			t.Errorf("row %d rejected with no reason", importErr.Row)
		}
	}

	// row 6 used a lower-case department code
	if _, err := repo.User.GetByEmail(context.Background(), "five@example.edu"); err != nil {
		t.Error("lower-case department code row was not imported")
	}
}

func TestGenerateTempPassword(t *testing.T) {
	password, err := generateTempPassword(10)
	if err != nil {
		t.Fatalf("generateTempPassword: %v", err)
	}
	if len(password) != 10 {
		t.Fatalf("length = %d, want 10", len(password))
	}
	if !strings.ContainsAny(password, "23456789") {
		t.Error("password contains no digit")
	}
}
