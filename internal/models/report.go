package models

import "time"

// ReportSeverity is the ordinal urgency classification of an anomaly report.
type ReportSeverity string

const (
	SeverityLow      ReportSeverity = "Low"
	SeverityMedium   ReportSeverity = "Medium"
	SeverityHigh     ReportSeverity = "High"
	SeverityCritical ReportSeverity = "Critical"
)

// ReportStatus enumerates the handling states of a report.
type ReportStatus string

const (
	ReportPending    ReportStatus = "Pending"
	ReportInProgress ReportStatus = "InProgress"
	ReportResolved   ReportStatus = "Resolved"
	ReportClosed     ReportStatus = "Closed"
)

// Report is an anomaly observed during or after an inspection. Every report
// references an existing inspection; the service checks this at creation.
type Report struct {
	ID              int64          `db:"report_id" json:"report_id"`
	InspectionID    int64          `db:"inspection_id" json:"inspection_id"`
	ReportedBy      int64          `db:"reported_by" json:"reported_by"`
	IssueType       string         `db:"issue_type" json:"issue_type"`
	Severity        ReportSeverity `db:"severity" json:"severity"`
	Status          ReportStatus   `db:"status" json:"status"`
	Description     string         `db:"description" json:"description"`
	GPSLatitude     *float64       `db:"gps_latitude" json:"gps_latitude,omitempty"`
	GPSLongitude    *float64       `db:"gps_longitude" json:"gps_longitude,omitempty"`
	WorkOrderNumber *string        `db:"work_order_number" json:"work_order_number,omitempty"`
	ReportedAt      time.Time      `db:"reported_at" json:"reported_at"`
	UpdatedAt       time.Time      `db:"updated_at" json:"updated_at"`
}

// ReportFilter captures list query criteria.
type ReportFilter struct {
	Status   string
	Severity string
	Page     int
	PageSize int
}
