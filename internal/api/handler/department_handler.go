package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"adces/internal/dto"
	"adces/internal/service"
	"adces/pkg/response"
)

// DepartmentHandler serves /departments routes.
type DepartmentHandler struct {
	svc    service.DepartmentService
	logger *zap.Logger
}

// NewDepartmentHandler creates the DepartmentHandler.
func NewDepartmentHandler(svc service.DepartmentService, logger *zap.Logger) *DepartmentHandler {
	return &DepartmentHandler{svc: svc, logger: logger}
}

// Create handles POST /departments.
func (h *DepartmentHandler) Create(c *gin.Context) {
	var req dto.CreateDepartmentRequest
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

// Get handles GET /departments/:id.
func (h *DepartmentHandler) Get(c *gin.Context) {
	resp, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, resp)
}

// List handles GET /departments.
func (h *DepartmentHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, list)
}

// Update handles PUT /departments/:id.
func (h *DepartmentHandler) Update(c *gin.Context) {
	var req dto.UpdateDepartmentRequest
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
