package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/fims-api/internal/service"
	"github.com/noah-isme/fims-api/pkg/export"
	"github.com/noah-isme/fims-api/pkg/response"
)

// DashboardHandler exposes dashboard aggregation endpoints.
type DashboardHandler struct {
	service *service.DashboardService
	pdf     *export.PDFExporter
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(svc *service.DashboardService, pdf *export.PDFExporter) *DashboardHandler {
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &DashboardHandler{service: svc, pdf: pdf}
}

// Summary godoc
// @Summary Daily dashboard summary
// @Tags Dashboard
// @Produce json
// @Success 200 {object} dto.DashboardSummary
// @Router /dashboard/summary [get]
func (h *DashboardHandler) Summary(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary)
}

// IssueChart godoc
// @Summary Issue type distribution
// @Tags Dashboard
// @Produce json
// @Param days query int false "Window in days"
// @Success 200 {array} dto.ChartPoint
// @Router /dashboard/chart-issues [get]
func (h *DashboardHandler) IssueChart(c *gin.Context) {
	points, err := h.service.IssueChart(c.Request.Context(), intQuery(c, "days"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, points)
}

// ExportSummary godoc
// @Summary Export dashboard summary as PDF
// @Tags Dashboard
// @Produce application/pdf
// @Success 200 {file} binary
// @Router /dashboard/summary/export [get]
func (h *DashboardHandler) ExportSummary(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	points, err := h.service.IssueChart(c.Request.Context(), 0)
	if err != nil {
		response.Error(c, err)
		return
	}

	data := export.Dataset{
		Headers: []string{"Metric", "Value"},
		Rows: []map[string]string{
			{"Metric": "Tasks today", "Value": fmt.Sprintf("%d", summary.TodayTaskCount)},
			{"Metric": "Completed today", "Value": fmt.Sprintf("%d", summary.CompletedTaskCount)},
			{"Metric": "Completion rate (%)", "Value": fmt.Sprintf("%.2f", summary.CompletionRate)},
			{"Metric": "Total reports", "Value": fmt.Sprintf("%d", summary.TotalReports)},
			{"Metric": "Critical open reports", "Value": fmt.Sprintf("%d", summary.CriticalReportsCount)},
			{"Metric": "Overdue tasks", "Value": fmt.Sprintf("%d", summary.OverdueTaskCount)},
		},
	}
	for _, p := range points {
		data.Rows = append(data.Rows, map[string]string{
			"Metric": "Issues: " + p.Label,
			"Value":  fmt.Sprintf("%d", p.Value),
		})
	}

	doc, err := h.pdf.Render(data, "Facility Inspection Summary")
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="dashboard-summary.pdf"`)
	c.Data(http.StatusOK, "application/pdf", doc)
}
