package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"adces/config"
	"adces/internal/dto"
	"adces/internal/model"
	"adces/internal/policy"
	"adces/internal/repository"
	"adces/pkg/jwt"
)

func newAuthFixture(t *testing.T) (AuthService, *repository.Repository) {
	t.Helper()

	cfg := &config.Config{}
	cfg.Auth.JWTSecret = "unit-test-secret-0123456789"
	cfg.Auth.AccessTokenTTL = 15 * time.Minute
	cfg.Auth.RefreshTokenTTL = 24 * time.Hour

	repo := newMockRepository()
	seedObservationFixtures(t, repo)

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	if err := repo.User.Create(context.Background(), &model.User{
		UserID: edpID, Name: "EDP Admin", Email: "edp@example.edu",
		PasswordHash: string(hash), Role: policy.RoleEDP,
		DepartmentID: testDeptID, IsActive: true,
	}); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	return NewAuthService(cfg, repo, jwt.NewManager(&cfg.Auth), nil, zap.NewNop()), repo
}

func TestLogin(t *testing.T) {
	svc, _ := newAuthFixture(t)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "edp@example.edu",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Error("login issued empty tokens")
	}
	if resp.User.Role != policy.RoleEDP {
		t.Errorf("user role = %q", resp.User.Role)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "edp@example.edu",
		Password: "wrong",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("Login error = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginUnknownEmailSameError(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@example.edu",
		Password: "whatever",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("Login error = %v, want ErrInvalidCredentials (no account enumeration)", err)
	}
}

func TestLoginDisabledAccount(t *testing.T) {
	svc, repo := newAuthFixture(t)
	ctx := context.Background()

	user, err := repo.User.GetByID(ctx, edpID)
	if err != nil {
		t.Fatalf("load user: %v", err)
	}
	user.IsActive = false
	if err := repo.User.Update(ctx, user); err != nil {
		t.Fatalf("disable user: %v", err)
	}

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "edp@example.edu", Password: "correct-horse"})
	if !errors.Is(err, ErrAccountDisabled) {
		t.Fatalf("Login error = %v, want ErrAccountDisabled", err)
	}
}

func TestRefreshTokenRejectsAccessToken(t *testing.T) {
	svc, _ := newAuthFixture(t)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "edp@example.edu",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if _, err := svc.RefreshToken(context.Background(), resp.AccessToken); !errors.Is(err, jwt.ErrTokenInvalid) {
		t.Fatalf("RefreshToken with access token error = %v, want ErrTokenInvalid", err)
	}
	if _, err := svc.RefreshToken(context.Background(), resp.RefreshToken); err != nil {
		t.Fatalf("RefreshToken with refresh token: %v", err)
	}
}

func TestChangePassword(t *testing.T) {
	svc, repo := newAuthFixture(t)
	ctx := context.Background()

	err := svc.ChangePassword(ctx, edpID, &dto.ChangePasswordRequest{
		OldPassword: "bad-guess",
		NewPassword: "new-password-1",
	})
	if !errors.Is(err, ErrWrongOldPassword) {
		t.Fatalf("ChangePassword error = %v, want ErrWrongOldPassword", err)
	}

	if err := svc.ChangePassword(ctx, edpID, &dto.ChangePasswordRequest{
		OldPassword: "correct-horse",
		NewPassword: "new-password-1",
	}); err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}

	user, err := repo.User.GetByID(ctx, edpID)
	if err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if user.MustChangePassword {
		t.Error("MustChangePassword still set after change")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("new-password-1")); err != nil {
		t.Error("new password does not verify")
	}
}
