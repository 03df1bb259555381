package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/fims-api/internal/dto"
	"github.com/noah-isme/fims-api/internal/models"
	"github.com/noah-isme/fims-api/internal/service"
	appErrors "github.com/noah-isme/fims-api/pkg/errors"
	"github.com/noah-isme/fims-api/pkg/response"
)

// InspectionHandler exposes inspection task endpoints.
type InspectionHandler struct {
	service *service.InspectionService
}

// NewInspectionHandler constructs handler.
func NewInspectionHandler(svc *service.InspectionService) *InspectionHandler {
	return &InspectionHandler{service: svc}
}

// List godoc
// @Summary List inspection tasks
// @Tags Inspections
// @Produce json
// @Param status query string false "Status filter"
// @Param pageNumber query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {array} dto.InspectionListItem
// @Router /inspections [get]
func (h *InspectionHandler) List(c *gin.Context) {
	filter := models.InspectionFilter{
		Status:   c.Query("status"),
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

// Get godoc
// @Summary Inspection task detail
// @Tags Inspections
// @Produce json
// @Param id path int true "Inspection ID"
// @Success 200 {object} dto.InspectionDetail
// @Failure 404 {object} response.MessageBody
// @Router /inspections/{id} [get]
func (h *InspectionHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	detail, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, detail)
}

// Create godoc
// @Summary Create inspection task
// @Tags Inspections
// @Accept json
// @Produce json
// @Param payload body dto.CreateInspectionRequest true "Inspection payload"
// @Success 201 {object} dto.CreatedInspection
// @Failure 400 {object} response.MessageBody
// @Router /inspections [post]
func (h *InspectionHandler) Create(c *gin.Context) {
	var req dto.CreateInspectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid inspection payload"))
		return
	}
	created, err := h.service.Create(c.Request.Context(), req, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Location", fmt.Sprintf("%s/%d", c.Request.URL.Path, created.InspectionID))
	response.JSON(c, http.StatusCreated, created)
}

// Update godoc
// @Summary Update inspection task
// @Tags Inspections
// @Accept json
// @Produce json
// @Param id path int true "Inspection ID"
// @Param payload body dto.UpdateInspectionRequest true "Fields to update"
// @Success 200 {object} response.MessageBody
// @Failure 404 {object} response.MessageBody
// @Router /inspections/{id} [put]
func (h *InspectionHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.UpdateInspectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid inspection payload"))
		return
	}
	if err := h.service.Update(c.Request.Context(), id, req, claimsFromContext(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "inspection updated")
}

// Delete godoc
// @Summary Delete inspection task
// @Tags Inspections
// @Produce json
// @Param id path int true "Inspection ID"
// @Success 200 {object} response.MessageBody
// @Failure 400 {object} response.MessageBody
// @Failure 404 {object} response.MessageBody
// @Router /inspections/{id} [delete]
func (h *InspectionHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.service.Delete(c.Request.Context(), id, claimsFromContext(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "inspection deleted")
}

func pathID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, appErrors.Clone(appErrors.ErrValidation, "invalid id")
	}
	return id, nil
}

func intQuery(c *gin.Context, name string) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return 0
	}
	return v
}
