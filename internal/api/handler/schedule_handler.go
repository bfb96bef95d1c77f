package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"adces/internal/dto"
	"adces/internal/service"
	"adces/pkg/response"
)

// ScheduleHandler serves /schedules routes.
type ScheduleHandler struct {
	svc    service.ScheduleService
	logger *zap.Logger
}

// NewScheduleHandler creates the ScheduleHandler.
func NewScheduleHandler(svc service.ScheduleService, logger *zap.Logger) *ScheduleHandler {
	return &ScheduleHandler{svc: svc, logger: logger}
}

// Create handles POST /schedules.
func (h *ScheduleHandler) Create(c *gin.Context) {
	var req dto.CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, response.CodeValidation, err.Error())
		return
	}

	resp, err := h.svc.Create(c.Request.Context(), &req, currentActor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Created(c, resp)
}

// ListMine handles GET /schedules.
func (h *ScheduleHandler) ListMine(c *gin.Context) {
	includeCleared := c.Query("include_cleared") == "true"

	list, err := h.svc.ListMine(c.Request.Context(), currentActor(c), includeCleared)
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, list)
}

// ListByTeacher handles GET /teachers/:id/schedules.
func (h *ScheduleHandler) ListByTeacher(c *gin.Context) {
	list, err := h.svc.ListByTeacher(c.Request.Context(), c.Param("id"), currentActor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, list)
}
