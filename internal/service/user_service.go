package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"adces/internal/dto"
	"adces/internal/model"
	"adces/internal/policy"
	"adces/internal/repository"
)

var (
	ErrEmailExists        = errors.New("email already in use")
	ErrDepartmentNotFound = errors.New("department not found")
	ErrInvalidRole        = errors.New("invalid role")
	ErrUserSelfDeactivate = errors.New("cannot deactivate own account")
)

// UserService handles EDP account provisioning.
type UserService interface {
	Create(ctx context.Context, req *dto.CreateUserRequest, callerID string) (*dto.CreateUserResponse, error)
	GetByID(ctx context.Context, id string) (*dto.UserResponse, error)
	List(ctx context.Context, req *dto.UserListRequest) ([]dto.UserResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdateUserRequest, callerID string) (*dto.UserResponse, error)
	Deactivate(ctx context.Context, id string, callerID string) error
	ResetPassword(ctx context.Context, id string, callerID string) (*dto.ResetPasswordResponse, error)
	ParseImportFile(reader io.Reader) ([]ImportUserRow, error)
	ImportUsers(ctx context.Context, rows []ImportUserRow, callerID string) (*dto.ImportUserResponse, error)
}

// ImportUserRow is one parsed row of the bulk-import workbook.
type ImportUserRow struct {
	Row            int
	Name           string
	Email          string
	Role           string
	DepartmentCode string
}

type userService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewUserService creates the UserService.
func NewUserService(repo *repository.Repository, logger *zap.Logger) UserService {
	return &userService{repo: repo, logger: logger}
}

func (s *userService) Create(ctx context.Context, req *dto.CreateUserRequest, callerID string) (*dto.CreateUserResponse, error) {
	if !policy.IsValidRole(req.Role) {
		return nil, ErrInvalidRole
	}

	if _, err := s.repo.User.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if _, err := s.repo.Department.GetByID(ctx, req.DepartmentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDepartmentNotFound
		}
		return nil, err
	}

	tempPassword, err := generateTempPassword(10)
	if err != nil {
		s.logger.Error("temp password generation failed", zap.Error(err))
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("password hashing failed", zap.Error(err))
		return nil, err
	}

	user := &model.User{
		Name:               req.Name,
		Email:              req.Email,
		PasswordHash:       string(hash),
		Role:               req.Role,
		DepartmentID:       req.DepartmentID,
		IsActive:           true,
		MustChangePassword: true,
		BaseModel:          model.BaseModel{CreatedBy: &callerID},
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		s.logger.Error("user create failed", zap.Error(err))
		return nil, err
	}

	s.audit(ctx, callerID, model.AuditUserCreated, "user", user.UserID, user.Email)

	created, err := s.repo.User.GetByID(ctx, user.UserID)
	if err != nil {
		return nil, err
	}

	return &dto.CreateUserResponse{
		User:         toUserResponse(created),
		TempPassword: tempPassword,
	}, nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("user lookup failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toUserResponse(user), nil
}

func (s *userService) List(ctx context.Context, req *dto.UserListRequest) ([]dto.UserResponse, int64, error) {
	filters := &repository.UserListFilters{
		DepartmentID: req.DepartmentID,
		Role:         req.Role,
		Keyword:      req.Keyword,
	}

	users, total, err := s.repo.User.ListWithFilters(ctx, filters, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("user list failed", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		result = append(result, *toUserResponse(&users[i]))
	}
	return result, total, nil
}

func (s *userService) Update(ctx context.Context, id string, req *dto.UpdateUserRequest, callerID string) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("user lookup failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		existing, err := s.repo.User.GetByEmail(ctx, *req.Email)
		if err == nil && existing.UserID != id {
			return nil, ErrEmailExists
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user.Email = *req.Email
	}
	if req.DepartmentID != nil {
		if _, err := s.repo.Department.GetByID(ctx, *req.DepartmentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrDepartmentNotFound
			}
			return nil, err
		}
		user.DepartmentID = *req.DepartmentID
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	user.UpdatedBy = &callerID

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("user update failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	updated, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toUserResponse(updated), nil
}

// Deactivate disables the account. Accounts are never hard-deleted; the
// audit trail and evaluation history keep referencing them.
func (s *userService) Deactivate(ctx context.Context, id string, callerID string) error {
	if id == callerID {
		return ErrUserSelfDeactivate
	}

	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		s.logger.Error("user lookup failed", zap.String("id", id), zap.Error(err))
		return err
	}

	user.IsActive = false
	user.UpdatedBy = &callerID

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("user deactivate failed", zap.String("id", id), zap.Error(err))
		return err
	}

	s.audit(ctx, callerID, model.AuditUserDeactivated, "user", id, user.Email)
	return nil
}

func (s *userService) ResetPassword(ctx context.Context, id string, callerID string) (*dto.ResetPasswordResponse, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("user lookup failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	tempPassword, err := generateTempPassword(10)
	if err != nil {
		s.logger.Error("temp password generation failed", zap.Error(err))
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("password hashing failed", zap.Error(err))
		return nil, err
	}

	user.PasswordHash = string(hash)
	user.MustChangePassword = true
	user.UpdatedBy = &callerID

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("password reset failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	s.audit(ctx, callerID, model.AuditPasswordReset, "user", id, user.Email)

	return &dto.ResetPasswordResponse{TempPassword: tempPassword}, nil
}

// ── bulk Excel import ──

const maxImportRows = 500

var (
	ErrImportNoData      = errors.New("workbook has no data rows (first row is the header)")
	ErrImportTooManyRows = fmt.Errorf("workbook exceeds the %d-row import limit", maxImportRows)
	ErrImportBadHeader   = errors.New("workbook header is missing a required column (name/email/role/department)")
)

// ParseImportFile reads the bulk-import workbook into rows.
func (s *userService) ParseImportFile(reader io.Reader) ([]ImportUserRow, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	excelRows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("reading worksheet: %w", err)
	}

	if len(excelRows) < 2 {
		return nil, ErrImportNoData
	}

	colIndex := parseHeaderIndex(excelRows[0])
	if colIndex["name"] < 0 || colIndex["email"] < 0 || colIndex["role"] < 0 || colIndex["department"] < 0 {
		return nil, ErrImportBadHeader
	}

	var rows []ImportUserRow
	for i := 1; i < len(excelRows); i++ {
		row := excelRows[i]
		item := ImportUserRow{Row: i + 1}

		if idx := colIndex["name"]; idx < len(row) {
			item.Name = strings.TrimSpace(row[idx])
		}
		if idx := colIndex["email"]; idx < len(row) {
			item.Email = strings.TrimSpace(row[idx])
		}
		if idx := colIndex["role"]; idx < len(row) {
			item.Role = strings.ToLower(strings.TrimSpace(row[idx]))
		}
		if idx := colIndex["department"]; idx < len(row) {
			item.DepartmentCode = strings.TrimSpace(row[idx])
		}

		if item.Name == "" && item.Email == "" && item.Role == "" && item.DepartmentCode == "" {
			continue
		}

		rows = append(rows, item)
	}

	if len(rows) == 0 {
		return nil, ErrImportNoData
	}
	if len(rows) > maxImportRows {
		return nil, ErrImportTooManyRows
	}

	return rows, nil
}

// parseHeaderIndex maps required column names to their positions.
func parseHeaderIndex(header []string) map[string]int {
	idx := map[string]int{
		"name":       -1,
		"email":      -1,
		"role":       -1,
		"department": -1,
	}
	for i, h := range header {
		lower := strings.ToLower(strings.TrimSpace(h))
		if _, ok := idx[lower]; ok {
			idx[lower] = i
		}
	}
	return idx
}

// ImportUsers validates every row first, then creates all valid rows in
// one transaction. Any write failure rolls back the whole batch.
func (s *userService) ImportUsers(ctx context.Context, rows []ImportUserRow, callerID string) (*dto.ImportUserResponse, error) {
	resp := &dto.ImportUserResponse{Total: len(rows)}

	deptMap, err := s.buildDepartmentCodeMap(ctx)
	if err != nil {
		s.logger.Error("department list failed", zap.Error(err))
		return nil, err
	}

	// phase one: validation, no writes
	type validatedRow struct {
		row      ImportUserRow
		dept     *model.Department
		hash     []byte
		password string
	}
	var validRows []validatedRow

	for _, row := range rows {
		if row.Name == "" || row.Email == "" || row.Role == "" || row.DepartmentCode == "" {
			resp.Failed++
			resp.Errors = append(resp.Errors, dto.ImportUserError{
				Row: row.Row, Reason: "required field is empty",
			})
			continue
		}

		if !policy.IsValidRole(row.Role) {
			resp.Failed++
			resp.Errors = append(resp.Errors, dto.ImportUserError{
				Row: row.Row, Reason: fmt.Sprintf("unknown role: %s", row.Role),
			})
			continue
		}

		dept, ok := deptMap[strings.ToUpper(row.DepartmentCode)]
		if !ok {
			resp.Failed++
			resp.Errors = append(resp.Errors, dto.ImportUserError{
				Row: row.Row, Reason: fmt.Sprintf("unknown department code: %s", row.DepartmentCode),
			})
			continue
		}

		if _, err := s.repo.User.GetByEmail(ctx, row.Email); err == nil {
			resp.Failed++
			resp.Errors = append(resp.Errors, dto.ImportUserError{
				Row: row.Row, Reason: fmt.Sprintf("email already in use: %s", row.Email),
			})
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		tempPassword, err := generateTempPassword(10)
		if err != nil {
			resp.Failed++
			resp.Errors = append(resp.Errors, dto.ImportUserError{
				Row: row.Row, Reason: "password generation failed",
			})
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
		if err != nil {
			resp.Failed++
			resp.Errors = append(resp.Errors, dto.ImportUserError{
				Row: row.Row, Reason: "password hashing failed",
			})
			continue
		}

		validRows = append(validRows, validatedRow{row: row, dept: dept, hash: hash, password: tempPassword})
	}

	// phase two: transactional batch create
	if len(validRows) > 0 {
		err := s.repo.InTransaction(ctx, func(txRepo *repository.Repository) error {
			for _, vr := range validRows {
				user := &model.User{
					Name:               vr.row.Name,
					Email:              vr.row.Email,
					PasswordHash:       string(vr.hash),
					Role:               vr.row.Role,
					DepartmentID:       vr.dept.DepartmentID,
					IsActive:           true,
					MustChangePassword: true,
					BaseModel:          model.BaseModel{CreatedBy: &callerID},
				}
				if err := txRepo.User.Create(ctx, user); err != nil {
					return fmt.Errorf("row %d failed to write, import rolled back: %w", vr.row.Row, err)
				}
			}
			return nil
		})
		if err != nil {
			s.logger.Error("user import transaction failed", zap.Error(err))
			return nil, err
		}
		resp.Success = len(validRows)
	}

	return resp, nil
}

// ── helpers ──

func (s *userService) buildDepartmentCodeMap(ctx context.Context) (map[string]*model.Department, error) {
	departments, err := s.repo.Department.List(ctx)
	if err != nil {
		return nil, err
	}
	m := make(map[string]*model.Department, len(departments))
	for i := range departments {
		m[strings.ToUpper(departments[i].Code)] = &departments[i]
	}
	return m, nil
}

func (s *userService) audit(ctx context.Context, actorID, action, entity, entityID, detail string) {
	writeAudit(ctx, s.repo.Audit, s.logger, actorID, action, entity, entityID, detail)
}

// generateTempPassword builds a random password containing at least one
// letter and one digit.
func generateTempPassword(length int) (string, error) {
	const letters = "abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ"
	const digits = "23456789"
	const all = letters + digits

	if length < 4 {
		length = 10
	}

	result := make([]byte, length)

	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(letters))))
	if err != nil {
		return "", err
	}
	result[0] = letters[n.Int64()]

	n, err = rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
	if err != nil {
		return "", err
	}
	result[1] = digits[n.Int64()]

	for i := 2; i < length; i++ {
		n, err = rand.Int(rand.Reader, big.NewInt(int64(len(all))))
		if err != nil {
			return "", err
		}
		result[i] = all[n.Int64()]
	}

	// Fisher-Yates shuffle so the guaranteed characters are not positional
	for i := length - 1; i > 0; i-- {
		j, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return "", err
		}
		result[i], result[j.Int64()] = result[j.Int64()], result[i]
	}

	return string(result), nil
}
