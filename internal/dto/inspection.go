package dto

import (
	"time"

	"github.com/noah-isme/fims-api/internal/models"
)

// InspectionListItem is one row of the inspection list, enriched with the
// assignee display name and the remaining calendar days until the due date
// (negative when overdue).
type InspectionListItem struct {
	InspectionID  int64                   `json:"inspectionId"`
	TaskCode      string                  `json:"taskCode"`
	Location      string                  `json:"location"`
	AssignedTo    string                  `json:"assignedToName"`
	Status        models.InspectionStatus `json:"status"`
	DueDate       time.Time               `json:"dueDate"`
	DaysRemaining int                     `json:"daysRemaining"`
	CreatedAt     time.Time               `json:"createdAt"`
}

// InspectionDetail carries the full record plus display names and the count
// of reports filed against the task.
type InspectionDetail struct {
	InspectionID        int64                     `json:"inspectionId"`
	TaskCode            string                    `json:"taskCode"`
	Location            string                    `json:"location"`
	LocationDescription *string                   `json:"locationDescription,omitempty"`
	AssignedToName      string                    `json:"assignedToName"`
	CreatedByName       string                    `json:"createdByName"`
	Status              models.InspectionStatus   `json:"status"`
	DueDate             time.Time                 `json:"dueDate"`
	CompletedDate       *time.Time                `json:"completedDate,omitempty"`
	Priority            models.InspectionPriority `json:"priority"`
	Description         *string                   `json:"description,omitempty"`
	ReportCount         int                       `json:"reportCount"`
	CreatedAt           time.Time                 `json:"createdAt"`
}

// CreateInspectionRequest is the payload for scheduling a new task.
type CreateInspectionRequest struct {
	Location            string     `json:"location" validate:"required"`
	LocationDescription *string    `json:"locationDescription"`
	AssignedToUserID    int64      `json:"assignedToUserId" validate:"required"`
	DueDate             time.Time  `json:"dueDate" validate:"required"`
	Priority            *string    `json:"priority" validate:"omitempty,oneof=Low Medium High"`
	Description         *string    `json:"description"`
	Frequency           *string    `json:"frequency"`
}

// UpdateInspectionRequest applies partial updates; nil fields are untouched.
type UpdateInspectionRequest struct {
	Location    *string    `json:"location"`
	Status      *string    `json:"status" validate:"omitempty,oneof=NotStarted InProgress Completed Cancelled"`
	Priority    *string    `json:"priority" validate:"omitempty,oneof=Low Medium High"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
}

// CreatedInspection is the 201 body for a newly scheduled task.
type CreatedInspection struct {
	InspectionID int64                   `json:"inspectionId"`
	TaskCode     string                  `json:"taskCode"`
	Location     string                  `json:"location"`
	Status       models.InspectionStatus `json:"status"`
	DueDate      time.Time               `json:"dueDate"`
	CreatedAt    time.Time               `json:"createdAt"`
}
