package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"adces/internal/dto"
	"adces/internal/service"
	"adces/pkg/response"
)

// EvaluationHandler serves /evaluations routes.
type EvaluationHandler struct {
	svc    service.EvaluationService
	logger *zap.Logger
}

// NewEvaluationHandler creates the EvaluationHandler.
func NewEvaluationHandler(svc service.EvaluationService, logger *zap.Logger) *EvaluationHandler {
	return &EvaluationHandler{svc: svc, logger: logger}
}

// Create handles POST /evaluations: a new draft observation form.
func (h *EvaluationHandler) Create(c *gin.Context) {
	var req dto.CreateEvaluationRequest
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

// Get handles GET /evaluations/:id.
func (h *EvaluationHandler) Get(c *gin.Context) {
	resp, err := h.svc.GetByID(c.Request.Context(), c.Param("id"), currentActor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, resp)
}

// List handles GET /evaluations. Results are scoped to the caller.
func (h *EvaluationHandler) List(c *gin.Context) {
	var req dto.EvaluationListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, response.CodeValidation, err.Error())
		return
	}

	list, total, err := h.svc.List(c.Request.Context(), &req, currentActor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// Update handles PUT /evaluations/:id (drafts only).
func (h *EvaluationHandler) Update(c *gin.Context) {
	var req dto.UpdateEvaluationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, response.CodeValidation, err.Error())
		return
	}

	resp, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req, currentActor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, resp)
}

// Complete handles POST /evaluations/:id/complete.
func (h *EvaluationHandler) Complete(c *gin.Context) {
	resp, err := h.svc.Complete(c.Request.Context(), c.Param("id"), currentActor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, resp)
}

// MarkTeacherDone handles POST /teachers/:id/mark-done.
func (h *EvaluationHandler) MarkTeacherDone(c *gin.Context) {
	resp, err := h.svc.MarkTeacherDone(c.Request.Context(), c.Param("id"), currentActor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, resp)
}
