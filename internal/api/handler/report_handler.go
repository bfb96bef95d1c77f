package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"adces/internal/dto"
	"adces/internal/service"
	"adces/pkg/response"
)

// ReportHandler serves the dashboard, report listing and audit trail.
type ReportHandler struct {
	svc    service.ReportService
	audit  service.AuditService
	logger *zap.Logger
}

// NewReportHandler creates the ReportHandler.
func NewReportHandler(svc service.ReportService, audit service.AuditService, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{svc: svc, audit: audit, logger: logger}
}

// Dashboard handles GET /reports/dashboard.
func (h *ReportHandler) Dashboard(c *gin.Context) {
	resp, err := h.svc.Dashboard(c.Request.Context(), currentActor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, resp)
}

// Rows handles GET /reports/evaluations.
func (h *ReportHandler) Rows(c *gin.Context) {
	rows, err := h.svc.ReportRows(c.Request.Context(), currentActor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, rows)
}

// AuditLog handles GET /audit.
func (h *ReportHandler) AuditLog(c *gin.Context) {
	var req dto.PaginationRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, response.CodeValidation, err.Error())
		return
	}

	list, total, err := h.audit.List(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}
