package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"adces/internal/model"
	"adces/internal/repository"
)

// In-memory repository fakes. Each backs one data-access interface with
// a map so service tests run without a database.

func newMockRepository() *repository.Repository {
	repo := &repository.Repository{
		User:                &mockUserRepo{users: map[string]*model.User{}},
		Department:          &mockDepartmentRepo{departments: map[string]*model.Department{}},
		Teacher:             &mockTeacherRepo{teachers: map[string]*model.Teacher{}},
		Evaluation:          &mockEvaluationRepo{evaluations: map[string]*model.Evaluation{}},
		TeacherAssignment:   &mockTeacherAssignmentRepo{assignments: map[string]*model.TeacherAssignment{}},
		EvaluatorAssignment: &mockEvaluatorAssignmentRepo{assignments: map[string]*model.EvaluatorAssignment{}, subjects: map[string][]string{}, gradeLevels: map[string][]string{}},
		Schedule:            &mockScheduleRepo{schedules: map[string]*model.ObservationSchedule{}},
		Audit:               &mockAuditRepo{},
	}
	// no real rollback: transactional tests assert the happy path and
	// pre-transaction failures
	repo.InTransaction = func(ctx context.Context, fn func(txRepo *repository.Repository) error) error {
		return fn(repo)
	}
	return repo
}

// ── users ──

type mockUserRepo struct {
	users     map[string]*model.User
	createErr error
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	if user.UserID == "" {
		user.UserID = uuid.NewString()
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *user
	return &copied, nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, user := range m.users {
		if strings.EqualFold(user.Email, email) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	if _, ok := m.users[user.UserID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *user
	m.users[user.UserID] = &copied
	return nil
}

func (m *mockUserRepo) ListWithFilters(_ context.Context, filters *repository.UserListFilters, offset, limit int) ([]model.User, int64, error) {
	var matched []model.User
	for _, user := range m.users {
		if filters.DepartmentID != "" && user.DepartmentID != filters.DepartmentID {
			continue
		}
		if filters.Role != "" && user.Role != filters.Role {
			continue
		}
		matched = append(matched, *user)
	}
	return paginate(matched, offset, limit), int64(len(matched)), nil
}

// ── departments ──

type mockDepartmentRepo struct {
	departments map[string]*model.Department
}

func (m *mockDepartmentRepo) Create(_ context.Context, dept *model.Department) error {
	if dept.DepartmentID == "" {
		dept.DepartmentID = uuid.NewString()
	}
	m.departments[dept.DepartmentID] = dept
	return nil
}

func (m *mockDepartmentRepo) GetByID(_ context.Context, id string) (*model.Department, error) {
	dept, ok := m.departments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *dept
	return &copied, nil
}

func (m *mockDepartmentRepo) GetByCode(_ context.Context, code string) (*model.Department, error) {
	for _, dept := range m.departments {
		if strings.EqualFold(dept.Code, code) {
			copied := *dept
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDepartmentRepo) List(_ context.Context) ([]model.Department, error) {
	var list []model.Department
	for _, dept := range m.departments {
		list = append(list, *dept)
	}
	return list, nil
}

func (m *mockDepartmentRepo) Update(_ context.Context, dept *model.Department) error {
	if _, ok := m.departments[dept.DepartmentID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *dept
	m.departments[dept.DepartmentID] = &copied
	return nil
}

// ── teachers ──

type mockTeacherRepo struct {
	teachers map[string]*model.Teacher
}

func (m *mockTeacherRepo) Create(_ context.Context, teacher *model.Teacher) error {
	if teacher.TeacherID == "" {
		teacher.TeacherID = uuid.NewString()
	}
	m.teachers[teacher.TeacherID] = teacher
	return nil
}

func (m *mockTeacherRepo) GetByID(_ context.Context, id string) (*model.Teacher, error) {
	teacher, ok := m.teachers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *teacher
	return &copied, nil
}

func (m *mockTeacherRepo) GetByEmail(_ context.Context, email string) (*model.Teacher, error) {
	for _, teacher := range m.teachers {
		if strings.EqualFold(teacher.Email, email) {
			copied := *teacher
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTeacherRepo) Update(_ context.Context, teacher *model.Teacher) error {
	if _, ok := m.teachers[teacher.TeacherID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *teacher
	m.teachers[teacher.TeacherID] = &copied
	return nil
}

func (m *mockTeacherRepo) matches(teacher *model.Teacher, filters *repository.TeacherListFilters) bool {
	if filters.DepartmentID != "" && teacher.DepartmentID != filters.DepartmentID {
		return false
	}
	if filters.EvalStatus != "" && teacher.EvalStatus != filters.EvalStatus {
		return false
	}
	if filters.IDs != nil {
		found := false
		for _, id := range filters.IDs {
			if id == teacher.TeacherID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (m *mockTeacherRepo) ListWithFilters(_ context.Context, filters *repository.TeacherListFilters, offset, limit int) ([]model.Teacher, int64, error) {
	var matched []model.Teacher
	for _, teacher := range m.teachers {
		if m.matches(teacher, filters) {
			matched = append(matched, *teacher)
		}
	}
	return paginate(matched, offset, limit), int64(len(matched)), nil
}

func (m *mockTeacherRepo) CountByStatus(_ context.Context, filters *repository.TeacherListFilters) (map[string]int64, error) {
	counts := map[string]int64{}
	for _, teacher := range m.teachers {
		if m.matches(teacher, filters) {
			counts[teacher.EvalStatus]++
		}
	}
	return counts, nil
}

// ── evaluations ──

type mockEvaluationRepo struct {
	evaluations map[string]*model.Evaluation
	updateErr   error
}

func (m *mockEvaluationRepo) Create(_ context.Context, eval *model.Evaluation) error {
	if eval.EvaluationID == "" {
		eval.EvaluationID = uuid.NewString()
	}
	for i := range eval.Details {
		eval.Details[i].EvaluationID = eval.EvaluationID
	}
	m.evaluations[eval.EvaluationID] = eval
	return nil
}

func (m *mockEvaluationRepo) GetByID(_ context.Context, id string) (*model.Evaluation, error) {
	eval, ok := m.evaluations[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *eval
	return &copied, nil
}

func (m *mockEvaluationRepo) GetByTeacherEvaluatorDate(_ context.Context, teacherID, evaluatorID string, date time.Time) (*model.Evaluation, error) {
	for _, eval := range m.evaluations {
		if eval.TeacherID == teacherID && eval.EvaluatorID == evaluatorID && eval.ObservationDate.Equal(date) {
			copied := *eval
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEvaluationRepo) GetLatestByTeacher(_ context.Context, teacherID string) (*model.Evaluation, error) {
	var latest *model.Evaluation
	for _, eval := range m.evaluations {
		if eval.TeacherID != teacherID {
			continue
		}
		if latest == nil || eval.ObservationDate.After(latest.ObservationDate) {
			latest = eval
		}
	}
	if latest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *latest
	return &copied, nil
}

func (m *mockEvaluationRepo) Update(_ context.Context, eval *model.Evaluation) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	stored, ok := m.evaluations[eval.EvaluationID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	details := stored.Details
	copied := *eval
	copied.Details = details
	m.evaluations[eval.EvaluationID] = &copied
	return nil
}

func (m *mockEvaluationRepo) ReplaceDetails(_ context.Context, evaluationID string, details []model.EvaluationDetail) error {
	eval, ok := m.evaluations[evaluationID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for i := range details {
		details[i].EvaluationID = evaluationID
	}
	eval.Details = details
	return nil
}

func (m *mockEvaluationRepo) matches(eval *model.Evaluation, filters *repository.EvaluationListFilters) bool {
	if filters.TeacherID != "" && eval.TeacherID != filters.TeacherID {
		return false
	}
	if filters.EvaluatorID != "" && eval.EvaluatorID != filters.EvaluatorID {
		return false
	}
	if filters.Status != "" && eval.Status != filters.Status {
		return false
	}
	if filters.DepartmentID != "" {
		if eval.Teacher == nil || eval.Teacher.DepartmentID != filters.DepartmentID {
			return false
		}
	}
	return true
}

func (m *mockEvaluationRepo) ListWithFilters(_ context.Context, filters *repository.EvaluationListFilters, offset, limit int) ([]model.Evaluation, int64, error) {
	var matched []model.Evaluation
	for _, eval := range m.evaluations {
		if m.matches(eval, filters) {
			matched = append(matched, *eval)
		}
	}
	return paginate(matched, offset, limit), int64(len(matched)), nil
}

func (m *mockEvaluationRepo) ListAll(_ context.Context, filters *repository.EvaluationListFilters) ([]model.Evaluation, error) {
	var matched []model.Evaluation
	for _, eval := range m.evaluations {
		if m.matches(eval, filters) {
			matched = append(matched, *eval)
		}
	}
	return matched, nil
}

// ── teacher assignments ──

type mockTeacherAssignmentRepo struct {
	assignments map[string]*model.TeacherAssignment
}

func (m *mockTeacherAssignmentRepo) Create(_ context.Context, assignment *model.TeacherAssignment) error {
	if assignment.AssignmentID == "" {
		assignment.AssignmentID = uuid.NewString()
	}
	m.assignments[assignment.AssignmentID] = assignment
	return nil
}

func (m *mockTeacherAssignmentRepo) GetByID(_ context.Context, id string) (*model.TeacherAssignment, error) {
	assignment, ok := m.assignments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *assignment
	return &copied, nil
}

func (m *mockTeacherAssignmentRepo) Delete(_ context.Context, id string) error {
	delete(m.assignments, id)
	return nil
}

func (m *mockTeacherAssignmentRepo) Exists(_ context.Context, evaluatorID, teacherID string) (bool, error) {
	for _, assignment := range m.assignments {
		if assignment.EvaluatorID == evaluatorID && assignment.TeacherID == teacherID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockTeacherAssignmentRepo) ListByEvaluator(_ context.Context, evaluatorID string) ([]model.TeacherAssignment, error) {
	var list []model.TeacherAssignment
	for _, assignment := range m.assignments {
		if assignment.EvaluatorID == evaluatorID {
			list = append(list, *assignment)
		}
	}
	return list, nil
}

func (m *mockTeacherAssignmentRepo) ListTeacherIDsByEvaluator(_ context.Context, evaluatorID string) ([]string, error) {
	var ids []string
	for _, assignment := range m.assignments {
		if assignment.EvaluatorID == evaluatorID {
			ids = append(ids, assignment.TeacherID)
		}
	}
	return ids, nil
}

// ── evaluator assignments and specialization ──

type mockEvaluatorAssignmentRepo struct {
	assignments map[string]*model.EvaluatorAssignment
	subjects    map[string][]string
	gradeLevels map[string][]string
}

func (m *mockEvaluatorAssignmentRepo) Create(_ context.Context, assignment *model.EvaluatorAssignment) error {
	if assignment.AssignmentID == "" {
		assignment.AssignmentID = uuid.NewString()
	}
	m.assignments[assignment.AssignmentID] = assignment
	return nil
}

func (m *mockEvaluatorAssignmentRepo) GetByID(_ context.Context, id string) (*model.EvaluatorAssignment, error) {
	assignment, ok := m.assignments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *assignment
	return &copied, nil
}

func (m *mockEvaluatorAssignmentRepo) Delete(_ context.Context, id string) error {
	delete(m.assignments, id)
	return nil
}

func (m *mockEvaluatorAssignmentRepo) Exists(_ context.Context, supervisorID, evaluatorID string) (bool, error) {
	for _, assignment := range m.assignments {
		if assignment.SupervisorID == supervisorID && assignment.EvaluatorID == evaluatorID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockEvaluatorAssignmentRepo) ListBySupervisor(_ context.Context, supervisorID string) ([]model.EvaluatorAssignment, error) {
	var list []model.EvaluatorAssignment
	for _, assignment := range m.assignments {
		if assignment.SupervisorID == supervisorID {
			list = append(list, *assignment)
		}
	}
	return list, nil
}

func (m *mockEvaluatorAssignmentRepo) ListSubjects(_ context.Context, evaluatorID string) ([]string, error) {
	return m.subjects[evaluatorID], nil
}

func (m *mockEvaluatorAssignmentRepo) ListGradeLevels(_ context.Context, evaluatorID string) ([]string, error) {
	return m.gradeLevels[evaluatorID], nil
}

func (m *mockEvaluatorAssignmentRepo) ReplaceSubjects(_ context.Context, evaluatorID string, subjects []string) error {
	m.subjects[evaluatorID] = subjects
	return nil
}

func (m *mockEvaluatorAssignmentRepo) ReplaceGradeLevels(_ context.Context, evaluatorID string, gradeLevels []string) error {
	m.gradeLevels[evaluatorID] = gradeLevels
	return nil
}

// ── schedules ──

type mockScheduleRepo struct {
	schedules map[string]*model.ObservationSchedule
}

func (m *mockScheduleRepo) Create(_ context.Context, schedule *model.ObservationSchedule) error {
	if schedule.ScheduleID == "" {
		schedule.ScheduleID = uuid.NewString()
	}
	m.schedules[schedule.ScheduleID] = schedule
	return nil
}

func (m *mockScheduleRepo) GetByID(_ context.Context, id string) (*model.ObservationSchedule, error) {
	schedule, ok := m.schedules[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *schedule
	return &copied, nil
}

func (m *mockScheduleRepo) ListByEvaluator(_ context.Context, evaluatorID string, includeCleared bool) ([]model.ObservationSchedule, error) {
	var list []model.ObservationSchedule
	for _, schedule := range m.schedules {
		if schedule.EvaluatorID != evaluatorID {
			continue
		}
		if !includeCleared && schedule.IsCleared {
			continue
		}
		list = append(list, *schedule)
	}
	return list, nil
}

func (m *mockScheduleRepo) ListByTeacher(_ context.Context, teacherID string) ([]model.ObservationSchedule, error) {
	var list []model.ObservationSchedule
	for _, schedule := range m.schedules {
		if schedule.TeacherID == teacherID {
			list = append(list, *schedule)
		}
	}
	return list, nil
}

func (m *mockScheduleRepo) ClearByTeacher(_ context.Context, teacherID string) error {
	for _, schedule := range m.schedules {
		if schedule.TeacherID == teacherID {
			schedule.IsCleared = true
		}
	}
	return nil
}

// ── audit ──

type mockAuditRepo struct {
	entries []*model.AuditLog
}

func (m *mockAuditRepo) Create(_ context.Context, entry *model.AuditLog) error {
	if entry.LogID == "" {
		entry.LogID = uuid.NewString()
	}
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockAuditRepo) List(_ context.Context, offset, limit int) ([]model.AuditLog, int64, error) {
	var all []model.AuditLog
	for _, entry := range m.entries {
		all = append(all, *entry)
	}
	return paginate(all, offset, limit), int64(len(all)), nil
}

func paginate[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return nil
	}
	end := offset + limit
	if limit <= 0 || end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
