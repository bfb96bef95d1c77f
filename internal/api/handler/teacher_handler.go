package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"adces/internal/dto"
	"adces/internal/service"
	"adces/pkg/response"
)

// TeacherHandler serves /teachers routes.
type TeacherHandler struct {
	svc    service.TeacherService
	logger *zap.Logger
}

// NewTeacherHandler creates the TeacherHandler.
func NewTeacherHandler(svc service.TeacherService, logger *zap.Logger) *TeacherHandler {
	return &TeacherHandler{svc: svc, logger: logger}
}

// Create handles POST /teachers.
func (h *TeacherHandler) Create(c *gin.Context) {
	var req dto.CreateTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, response.CodeValidation, err.Error())
		return
	}

	resp, err := h.svc.Create(c.Request.Context(), &req, currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Created(c, resp)
}

// Get handles GET /teachers/:id.
func (h *TeacherHandler) Get(c *gin.Context) {
	resp, err := h.svc.GetByID(c.Request.Context(), c.Param("id"), currentActor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, resp)
}

// List handles GET /teachers. Results are scoped to the caller.
func (h *TeacherHandler) List(c *gin.Context) {
	var req dto.TeacherListRequest
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

// Update handles PUT /teachers/:id.
func (h *TeacherHandler) Update(c *gin.Context) {
	var req dto.UpdateTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, response.CodeValidation, err.Error())
		return
	}

	resp, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req, currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, resp)
}
