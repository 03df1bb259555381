package dto

import (
	"time"

	"github.com/noah-isme/fims-api/internal/models"
)

// ReportListItem is one row of the report list, enriched with the reporter
// display name and the count of attached files.
type ReportListItem struct {
	ReportID        int64                 `json:"reportId"`
	InspectionID    int64                 `json:"inspectionId"`
	ReportedByName  string                `json:"reportedByName"`
	IssueType       string                `json:"issueType"`
	Severity        models.ReportSeverity `json:"severity"`
	Status          models.ReportStatus   `json:"status"`
	Description     string                `json:"description"`
	AttachmentCount int                   `json:"attachmentCount"`
	ReportedAt      time.Time             `json:"reportedAt"`
}

// CreateReportRequest is the payload for filing an anomaly report.
type CreateReportRequest struct {
	InspectionID    int64    `json:"inspectionId" validate:"required"`
	IssueType       string   `json:"issueType" validate:"required"`
	Severity        *string  `json:"severity" validate:"omitempty,oneof=Low Medium High Critical"`
	Description     string   `json:"description" validate:"required"`
	GPSLatitude     *float64 `json:"gpsLatitude" validate:"omitempty,gte=-90,lte=90"`
	GPSLongitude    *float64 `json:"gpsLongitude" validate:"omitempty,gte=-180,lte=180"`
	WorkOrderNumber *string  `json:"workOrderNumber"`
}

// CreatedReport is the 201 body for a newly filed report.
type CreatedReport struct {
	ReportID     int64                 `json:"reportId"`
	InspectionID int64                 `json:"inspectionId"`
	IssueType    string                `json:"issueType"`
	Severity     models.ReportSeverity `json:"severity"`
	Status       models.ReportStatus   `json:"status"`
	Description  string                `json:"description"`
	ReportedAt   time.Time             `json:"reportedAt"`
}

// UploadAttachmentResponse acknowledges a stored attachment.
type UploadAttachmentResponse struct {
	Message      string `json:"message"`
	AttachmentID int64  `json:"attachmentId"`
	FileName     string `json:"fileName"`
	FileSize     int64  `json:"fileSize"`
}
