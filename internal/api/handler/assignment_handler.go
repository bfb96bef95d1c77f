package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"adces/internal/dto"
	"adces/internal/service"
	"adces/pkg/response"
)

// AssignmentHandler serves /assignments routes.
type AssignmentHandler struct {
	svc    service.AssignmentService
	logger *zap.Logger
}

// NewAssignmentHandler creates the AssignmentHandler.
func NewAssignmentHandler(svc service.AssignmentService, logger *zap.Logger) *AssignmentHandler {
	return &AssignmentHandler{svc: svc, logger: logger}
}

// AssignTeacher handles POST /assignments/teachers.
func (h *AssignmentHandler) AssignTeacher(c *gin.Context) {
	var req dto.AssignTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, response.CodeValidation, err.Error())
		return
	}

	resp, err := h.svc.AssignTeacher(c.Request.Context(), &req, currentActor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Created(c, resp)
}

// UnassignTeacher handles DELETE /assignments/teachers/:id.
func (h *AssignmentHandler) UnassignTeacher(c *gin.Context) {
	if err := h.svc.UnassignTeacher(c.Request.Context(), c.Param("id"), currentActor(c)); err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, nil)
}

// ListTeacherAssignments handles GET /assignments/teachers. Evaluators
// see their own; deans and principals may query another evaluator.
func (h *AssignmentHandler) ListTeacherAssignments(c *gin.Context) {
	evaluatorID := c.Query("evaluator_id")
	if evaluatorID == "" {
		evaluatorID = currentUserID(c)
	}

	list, err := h.svc.ListTeacherAssignments(c.Request.Context(), evaluatorID)
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, list)
}

// AssignCoordinator handles POST /assignments/coordinators.
func (h *AssignmentHandler) AssignCoordinator(c *gin.Context) {
	var req dto.AssignCoordinatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, response.CodeValidation, err.Error())
		return
	}

	resp, err := h.svc.AssignCoordinator(c.Request.Context(), &req, currentActor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Created(c, resp)
}

// UnassignCoordinator handles DELETE /assignments/coordinators/:id.
func (h *AssignmentHandler) UnassignCoordinator(c *gin.Context) {
	if err := h.svc.UnassignCoordinator(c.Request.Context(), c.Param("id"), currentActor(c)); err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, nil)
}

// ListCoordinators handles GET /assignments/coordinators.
func (h *AssignmentHandler) ListCoordinators(c *gin.Context) {
	list, err := h.svc.ListCoordinators(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, list)
}

// SetSpecialization handles PUT /assignments/evaluators/:id/specialization.
func (h *AssignmentHandler) SetSpecialization(c *gin.Context) {
	var req dto.SetSpecializationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, response.CodeValidation, err.Error())
		return
	}

	resp, err := h.svc.SetSpecialization(c.Request.Context(), c.Param("id"), &req, currentActor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, resp)
}

// GetSpecialization handles GET /assignments/evaluators/:id/specialization.
func (h *AssignmentHandler) GetSpecialization(c *gin.Context) {
	resp, err := h.svc.GetSpecialization(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, resp)
}
