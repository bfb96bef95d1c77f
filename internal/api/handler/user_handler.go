package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"adces/internal/dto"
	"adces/internal/service"
	"adces/pkg/response"
)

// maxImportUpload caps the bulk-import workbook size.
const maxImportUpload = 5 << 20

// UserHandler serves /users routes (EDP account provisioning).
type UserHandler struct {
	svc    service.UserService
	logger *zap.Logger
}

// NewUserHandler creates the UserHandler.
func NewUserHandler(svc service.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{svc: svc, logger: logger}
}

// Create handles POST /users.
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
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

// Get handles GET /users/:id.
func (h *UserHandler) Get(c *gin.Context) {
	resp, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, resp)
}

// List handles GET /users.
func (h *UserHandler) List(c *gin.Context) {
	var req dto.UserListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, response.CodeValidation, err.Error())
		return
	}

	list, total, err := h.svc.List(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// Update handles PUT /users/:id.
func (h *UserHandler) Update(c *gin.Context) {
	var req dto.UpdateUserRequest
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

// Deactivate handles DELETE /users/:id.
func (h *UserHandler) Deactivate(c *gin.Context) {
	if err := h.svc.Deactivate(c.Request.Context(), c.Param("id"), currentUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, nil)
}

// ResetPassword handles POST /users/:id/reset-password.
func (h *UserHandler) ResetPassword(c *gin.Context) {
	resp, err := h.svc.ResetPassword(c.Request.Context(), c.Param("id"), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, resp)
}

// Import handles POST /users/import with an Excel upload.
func (h *UserHandler) Import(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, response.CodeValidation, "missing file upload")
		return
	}
	if fileHeader.Size > maxImportUpload {
		response.Error(c, 413, response.CodeValidation, "workbook exceeds the upload size limit")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.Error("import upload open failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	defer file.Close()

	rows, err := h.svc.ParseImportFile(file)
	if err != nil {
		respondError(c, err)
		return
	}

	resp, err := h.svc.ImportUsers(c.Request.Context(), rows, currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, resp)
}
