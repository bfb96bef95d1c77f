package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"adces/internal/service"
	"adces/pkg/jwt"
	"adces/pkg/response"
)

// Handler aggregates every HTTP handler group.
type Handler struct {
	Auth       *AuthHandler
	User       *UserHandler
	Department *DepartmentHandler
	Teacher    *TeacherHandler
	Assignment *AssignmentHandler
	Evaluation *EvaluationHandler
	Report     *ReportHandler
	Schedule   *ScheduleHandler
	Export     *ExportHandler
}

// NewHandler wires the handler aggregate.
func NewHandler(svc *service.Service, logger *zap.Logger) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(svc.Auth, logger),
		User:       NewUserHandler(svc.User, logger),
		Department: NewDepartmentHandler(svc.Department, logger),
		Teacher:    NewTeacherHandler(svc.Teacher, logger),
		Assignment: NewAssignmentHandler(svc.Assignment, logger),
		Evaluation: NewEvaluationHandler(svc.Evaluation, logger),
		Report:     NewReportHandler(svc.Report, svc.Audit, logger),
		Schedule:   NewScheduleHandler(svc.Schedule, logger),
		Export:     NewExportHandler(svc.Export, logger),
	}
}

// respondError translates service sentinels into envelope codes. Errors
// with no mapping become a generic 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, jwt.ErrTokenExpired),
		errors.Is(err, jwt.ErrTokenInvalid):
		response.Unauthorized(c, response.CodeUnauthorized, err.Error())

	case errors.Is(err, service.ErrAccountDisabled),
		errors.Is(err, service.ErrTeacherNotVisible),
		errors.Is(err, service.ErrAssignmentNotManaged),
		errors.Is(err, service.ErrEvaluatorInactive):
		response.Forbidden(c, response.CodeForbidden, err.Error())

	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrDepartmentNotFound),
		errors.Is(err, service.ErrTeacherNotFound),
		errors.Is(err, service.ErrAssignmentNotFound),
		errors.Is(err, service.ErrEvaluationNotFound),
		errors.Is(err, service.ErrScheduleNotFound):
		response.NotFound(c, response.CodeNotFound, err.Error())

	case errors.Is(err, service.ErrEmailExists),
		errors.Is(err, service.ErrDepartmentCodeExists),
		errors.Is(err, service.ErrTeacherEmailInUse),
		errors.Is(err, service.ErrAssignmentExists),
		errors.Is(err, service.ErrEvaluationExists):
		response.Conflict(c, response.CodeConflict, err.Error())

	case errors.Is(err, service.ErrWrongOldPassword),
		errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, service.ErrUserSelfDeactivate),
		errors.Is(err, service.ErrNotAnEvaluator),
		errors.Is(err, service.ErrNotACoordinator),
		errors.Is(err, service.ErrCrossDepartment),
		errors.Is(err, service.ErrSpecializationRole),
		errors.Is(err, service.ErrEvaluationCompleted),
		errors.Is(err, service.ErrNotEvaluationOwner),
		errors.Is(err, service.ErrEvaluationEmpty),
		errors.Is(err, service.ErrScheduleTimes),
		errors.Is(err, service.ErrImportNoData),
		errors.Is(err, service.ErrImportTooManyRows),
		errors.Is(err, service.ErrImportBadHeader):
		response.BadRequest(c, response.CodeDomain, err.Error())

	default:
		response.InternalError(c)
	}
}
