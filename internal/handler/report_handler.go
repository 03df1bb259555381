package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/fims-api/internal/dto"
	"github.com/noah-isme/fims-api/internal/models"
	"github.com/noah-isme/fims-api/internal/service"
	appErrors "github.com/noah-isme/fims-api/pkg/errors"
	"github.com/noah-isme/fims-api/pkg/response"
)

// ReportHandler exposes anomaly report endpoints.
type ReportHandler struct {
	service *service.ReportService
}

// NewReportHandler constructs handler.
func NewReportHandler(svc *service.ReportService) *ReportHandler {
	return &ReportHandler{service: svc}
}

// List godoc
// @Summary List anomaly reports
// @Tags Reports
// @Produce json
// @Param status query string false "Status filter"
// @Param severity query string false "Severity filter"
// @Param pageNumber query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {array} dto.ReportListItem
// @Router /reports [get]
func (h *ReportHandler) List(c *gin.Context) {
	filter := models.ReportFilter{
		Status:   c.Query("status"),
		Severity: c.Query("severity"),
		Page:     intQuery(c, "pageNumber"),
		PageSize: intQuery(c, "pageSize"),
	}
	items, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items)
}

// Create godoc
// @Summary File an anomaly report
// @Tags Reports
// @Accept json
// @Produce json
// @Param payload body dto.CreateReportRequest true "Report payload"
// @Success 201 {object} dto.CreatedReport
// @Failure 400 {object} response.MessageBody
// @Router /reports [post]
func (h *ReportHandler) Create(c *gin.Context) {
	var req dto.CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid report payload"))
		return
	}
	created, err := h.service.Create(c.Request.Context(), req, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Location", fmt.Sprintf("%s/%d", c.Request.URL.Path, created.ReportID))
	response.JSON(c, http.StatusCreated, created)
}

// UploadAttachment godoc
// @Summary Attach a file to a report
// @Tags Reports
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Report ID"
// @Param file formData file true "Attachment"
// @Success 200 {object} dto.UploadAttachmentResponse
// @Failure 400 {object} response.MessageBody
// @Failure 404 {object} response.MessageBody
// @Router /reports/{id}/attachments [post]
func (h *ReportHandler) UploadAttachment(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "file is required"))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "unable to read file"))
		return
	}
	defer file.Close()

	upload := service.AttachmentUpload{
		Filename: fileHeader.Filename,
		Size:     fileHeader.Size,
		Content:  file,
	}
	res, err := h.service.UploadAttachment(c.Request.Context(), id, upload, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res)
}
