package models

import "time"

// InspectionStatus enumerates the lifecycle states of an inspection task.
type InspectionStatus string

const (
	InspectionNotStarted InspectionStatus = "NotStarted"
	InspectionInProgress InspectionStatus = "InProgress"
	InspectionCompleted  InspectionStatus = "Completed"
	InspectionCancelled  InspectionStatus = "Cancelled"
)

// InspectionPriority ranks scheduled tasks.
type InspectionPriority string

const (
	PriorityLow    InspectionPriority = "Low"
	PriorityMedium InspectionPriority = "Medium"
	PriorityHigh   InspectionPriority = "High"
)

// Inspection is a scheduled facility inspection task.
//
// CompletedDate is stamped exactly once, in the update that first moves the
// status to Completed; it is never backdated or cleared afterwards.
type Inspection struct {
	ID                  int64              `db:"inspection_id" json:"inspection_id"`
	TaskCode            string             `db:"task_code" json:"task_code"`
	Location            string             `db:"location" json:"location"`
	LocationDescription *string            `db:"location_description" json:"location_description,omitempty"`
	AssignedTo          int64              `db:"assigned_to" json:"assigned_to"`
	CreatedBy           int64              `db:"created_by" json:"created_by"`
	Status              InspectionStatus   `db:"status" json:"status"`
	DueDate             time.Time          `db:"due_date" json:"due_date"`
	CompletedDate       *time.Time         `db:"completed_date" json:"completed_date,omitempty"`
	Priority            InspectionPriority `db:"priority" json:"priority"`
	Description         *string            `db:"description" json:"description,omitempty"`
	Frequency           *string            `db:"frequency" json:"frequency,omitempty"`
	CreatedAt           time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time          `db:"updated_at" json:"updated_at"`
}

// InspectionFilter captures list query criteria.
type InspectionFilter struct {
	Status   string
	Page     int
	PageSize int
}

// InspectionUpdate holds the partial field set applied by an update; nil
// fields keep their stored value.
type InspectionUpdate struct {
	Location    *string
	Status      *InspectionStatus
	Priority    *InspectionPriority
	Description *string
	DueDate     *time.Time
}
