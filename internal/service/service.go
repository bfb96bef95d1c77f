package service

import (
	"go.uber.org/zap"

	"adces/config"
	"adces/internal/repository"
	"adces/pkg/jwt"
	"adces/pkg/mail"
	"adces/pkg/redis"
)

// Service aggregates every business-logic interface.
type Service struct {
	Auth       AuthService
	User       UserService
	Department DepartmentService
	Teacher    TeacherService
	Assignment AssignmentService
	Evaluation EvaluationService
	Report     ReportService
	Schedule   ScheduleService
	Export     ExportService
	Audit      AuditService
}

// NewService wires the service aggregate.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	mailer mail.Mailer,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:       NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		User:       NewUserService(repo, logger),
		Department: NewDepartmentService(repo, logger),
		Teacher:    NewTeacherService(repo, logger),
		Assignment: NewAssignmentService(repo, logger),
		Evaluation: NewEvaluationService(repo, logger),
		Report:     NewReportService(repo, logger),
		Schedule:   NewScheduleService(repo, mailer, logger),
		Export:     NewExportService(repo, logger),
		Audit:      NewAuditService(repo, logger),
	}
}
