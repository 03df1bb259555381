package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Facility Inspection Management API",
        "description": "Back-office API for inspection tasks, anomaly reports and dashboards",
        "version": "1.0.0"
    },
    "basePath": "/api",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Authentication", "description": "Access token issuance"},
        {"name": "Inspections", "description": "Inspection task management"},
        {"name": "Reports", "description": "Anomaly reports and attachments"},
        {"name": "Dashboard", "description": "Daily rollups and charts"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate user",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/LoginResponse"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/MessageBody"}}
                }
            }
        },
        "/inspections": {
            "get": {
                "tags": ["Inspections"],
                "summary": "List inspection tasks",
                "parameters": [
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "pageNumber", "in": "query", "type": "integer"},
                    {"name": "pageSize", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/InspectionListItem"}}}
                }
            },
            "post": {
                "tags": ["Inspections"],
                "summary": "Create inspection task",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateInspectionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/CreatedInspection"}},
                    "400": {"description": "Validation failure", "schema": {"$ref": "#/definitions/MessageBody"}}
                }
            }
        },
        "/inspections/{id}": {
            "get": {
                "tags": ["Inspections"],
                "summary": "Inspection task detail",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/InspectionDetail"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/MessageBody"}}
                }
            },
            "put": {
                "tags": ["Inspections"],
                "summary": "Update inspection task",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateInspectionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/MessageBody"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/MessageBody"}}
                }
            },
            "delete": {
                "tags": ["Inspections"],
                "summary": "Delete inspection task",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/MessageBody"}},
                    "400": {"description": "Task has related reports", "schema": {"$ref": "#/definitions/MessageBody"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/MessageBody"}}
                }
            }
        },
        "/reports": {
            "get": {
                "tags": ["Reports"],
                "summary": "List anomaly reports",
                "parameters": [
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "severity", "in": "query", "type": "string"},
                    {"name": "pageNumber", "in": "query", "type": "integer"},
                    {"name": "pageSize", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/ReportListItem"}}}
                }
            },
            "post": {
                "tags": ["Reports"],
                "summary": "File an anomaly report",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateReportRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/CreatedReport"}},
                    "400": {"description": "Validation failure", "schema": {"$ref": "#/definitions/MessageBody"}}
                }
            }
        },
        "/reports/{id}/attachments": {
            "post": {
                "tags": ["Reports"],
                "summary": "Attach a file to a report",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "file", "in": "formData", "required": true, "type": "file"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/UploadAttachmentResponse"}},
                    "400": {"description": "File rejected", "schema": {"$ref": "#/definitions/MessageBody"}},
                    "404": {"description": "Report not found", "schema": {"$ref": "#/definitions/MessageBody"}}
                }
            }
        },
        "/dashboard/summary": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Daily dashboard summary",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/DashboardSummary"}}
                }
            }
        },
        "/dashboard/summary/export": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Export dashboard summary as PDF",
                "produces": ["application/pdf"],
                "responses": {
                    "200": {"description": "PDF document"}
                }
            }
        },
        "/dashboard/chart-issues": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Issue type distribution",
                "parameters": [
                    {"name": "days", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/ChartPoint"}}}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["email", "password"]
        },
        "LoginResponse": {
            "type": "object",
            "properties": {
                "accessToken": {"type": "string"},
                "expiresIn": {"type": "integer"},
                "user": {"type": "object"},
                "issuedAt": {"type": "string"}
            }
        },
        "InspectionListItem": {
            "type": "object",
            "properties": {
                "inspectionId": {"type": "integer"},
                "taskCode": {"type": "string"},
                "location": {"type": "string"},
                "assignedToName": {"type": "string"},
                "status": {"type": "string"},
                "priority": {"type": "string"},
                "dueDate": {"type": "string"},
                "daysRemaining": {"type": "integer"},
                "createdAt": {"type": "string"}
            }
        },
        "InspectionDetail": {
            "type": "object",
            "properties": {
                "inspectionId": {"type": "integer"},
                "taskCode": {"type": "string"},
                "location": {"type": "string"},
                "locationDescription": {"type": "string"},
                "assignedToName": {"type": "string"},
                "createdByName": {"type": "string"},
                "status": {"type": "string"},
                "priority": {"type": "string"},
                "dueDate": {"type": "string"},
                "completedDate": {"type": "string"},
                "description": {"type": "string"},
                "frequency": {"type": "string"},
                "reportCount": {"type": "integer"},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "CreateInspectionRequest": {
            "type": "object",
            "properties": {
                "location": {"type": "string"},
                "locationDescription": {"type": "string"},
                "assignedToUserId": {"type": "integer"},
                "dueDate": {"type": "string"},
                "priority": {"type": "string"},
                "description": {"type": "string"},
                "frequency": {"type": "string"}
            },
            "required": ["location", "assignedToUserId", "dueDate"]
        },
        "UpdateInspectionRequest": {
            "type": "object",
            "properties": {
                "location": {"type": "string"},
                "locationDescription": {"type": "string"},
                "assignedToUserId": {"type": "integer"},
                "dueDate": {"type": "string"},
                "status": {"type": "string"},
                "priority": {"type": "string"},
                "description": {"type": "string"},
                "frequency": {"type": "string"}
            }
        },
        "CreatedInspection": {
            "type": "object",
            "properties": {
                "inspectionId": {"type": "integer"},
                "taskCode": {"type": "string"},
                "status": {"type": "string"},
                "createdAt": {"type": "string"}
            }
        },
        "ReportListItem": {
            "type": "object",
            "properties": {
                "reportId": {"type": "integer"},
                "inspectionId": {"type": "integer"},
                "reportedByName": {"type": "string"},
                "issueType": {"type": "string"},
                "severity": {"type": "string"},
                "status": {"type": "string"},
                "description": {"type": "string"},
                "attachmentCount": {"type": "integer"},
                "reportedAt": {"type": "string"}
            }
        },
        "CreateReportRequest": {
            "type": "object",
            "properties": {
                "inspectionId": {"type": "integer"},
                "issueType": {"type": "string"},
                "severity": {"type": "string"},
                "description": {"type": "string"},
                "gpsLatitude": {"type": "number"},
                "gpsLongitude": {"type": "number"},
                "workOrderNumber": {"type": "string"}
            },
            "required": ["inspectionId", "issueType", "description"]
        },
        "CreatedReport": {
            "type": "object",
            "properties": {
                "reportId": {"type": "integer"},
                "inspectionId": {"type": "integer"},
                "issueType": {"type": "string"},
                "severity": {"type": "string"},
                "status": {"type": "string"},
                "description": {"type": "string"},
                "reportedAt": {"type": "string"}
            }
        },
        "UploadAttachmentResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "attachmentId": {"type": "integer"},
                "fileName": {"type": "string"},
                "fileSize": {"type": "integer"}
            }
        },
        "DashboardSummary": {
            "type": "object",
            "properties": {
                "todayTaskCount": {"type": "integer"},
                "completedTaskCount": {"type": "integer"},
                "completionRate": {"type": "number"},
                "totalReports": {"type": "integer"},
                "criticalReportsCount": {"type": "integer"},
                "overdueTaskCount": {"type": "integer"},
                "lastUpdated": {"type": "string"}
            }
        },
        "ChartPoint": {
            "type": "object",
            "properties": {
                "label": {"type": "string"},
                "value": {"type": "integer"}
            }
        },
        "MessageBody": {
            "type": "object",
            "properties": {
                "message": {"type": "string"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
