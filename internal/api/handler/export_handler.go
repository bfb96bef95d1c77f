package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"adces/internal/service"
)

// ExportHandler serves /export download routes.
type ExportHandler struct {
	svc    service.ExportService
	logger *zap.Logger
}

// NewExportHandler creates the ExportHandler.
func NewExportHandler(svc service.ExportService, logger *zap.Logger) *ExportHandler {
	return &ExportHandler{svc: svc, logger: logger}
}

// EvaluationsXLSX handles GET /export/evaluations.xlsx.
func (h *ExportHandler) EvaluationsXLSX(c *gin.Context) {
	file, err := h.svc.EvaluationsXLSX(c.Request.Context(), currentActor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	writeDownload(c, file)
}

// EvaluationPDF handles GET /export/evaluations/:id.pdf.
func (h *ExportHandler) EvaluationPDF(c *gin.Context) {
	file, err := h.svc.EvaluationPDF(c.Request.Context(), c.Param("id"), currentActor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	writeDownload(c, file)
}

// ScheduleICS handles GET /export/schedule.ics.
func (h *ExportHandler) ScheduleICS(c *gin.Context) {
	file, err := h.svc.ScheduleICS(c.Request.Context(), currentActor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	writeDownload(c, file)
}

func writeDownload(c *gin.Context, file *service.ExportFile) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
