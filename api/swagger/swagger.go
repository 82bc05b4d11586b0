package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Home PPR API",
        "description": "Household equipment maintenance tracker",
        "version": "0.1.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Equipment", "description": "Equipment records and service schedule"},
        {"name": "Dashboard", "description": "Counters and monthly chart series"},
        {"name": "Export", "description": "Calendar and table downloads"},
        {"name": "Photos", "description": "Equipment photo attachments"},
        {"name": "Auth", "description": "Operator login"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/equipment": {
            "get": {
                "tags": ["Equipment"],
                "summary": "List equipment with derived schedule",
                "parameters": [
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "q", "in": "query", "type": "string"},
                    {"name": "horizon", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Equipment"],
                "summary": "Add equipment",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AddEquipmentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/equipment/upcoming": {
            "get": {
                "tags": ["Equipment"],
                "summary": "List records due within the horizon",
                "parameters": [
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "q", "in": "query", "type": "string"},
                    {"name": "horizon", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/equipment/overdue": {
            "get": {
                "tags": ["Equipment"],
                "summary": "List records whose due date has passed",
                "parameters": [
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "q", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/equipment/{id}": {
            "get": {
                "tags": ["Equipment"],
                "summary": "Get one equipment record",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Equipment"],
                "summary": "Overwrite the editable fields of a record",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/EditEquipmentRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/equipment/{id}/service": {
            "post": {
                "tags": ["Equipment"],
                "summary": "Stamp the last service date with today",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/equipment/{id}/archive": {
            "post": {
                "tags": ["Equipment"],
                "summary": "Flip a record between active and archived",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/equipment/{id}/photo": {
            "get": {
                "tags": ["Photos"],
                "summary": "Serve the stored photo of a record",
                "produces": ["image/jpeg"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            },
            "post": {
                "tags": ["Photos"],
                "summary": "Attach a photo to a record",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "photo", "in": "formData", "required": true, "type": "file"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/dashboard/summary": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Active, upcoming and overdue counters",
                "parameters": [
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "q", "in": "query", "type": "string"},
                    {"name": "horizon", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/dashboard/monthly": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Service counts bucketed by month",
                "parameters": [
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "q", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/export/ics": {
            "get": {
                "tags": ["Export"],
                "summary": "Download service reminders as an iCalendar file",
                "produces": ["text/calendar"],
                "parameters": [
                    {"name": "horizon", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/export/csv": {
            "get": {
                "tags": ["Export"],
                "summary": "Download the filtered schedule as CSV",
                "produces": ["text/csv"],
                "parameters": [
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "q", "in": "query", "type": "string"},
                    {"name": "horizon", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/export/pdf": {
            "get": {
                "tags": ["Export"],
                "summary": "Download the filtered schedule as PDF",
                "produces": ["application/pdf"],
                "parameters": [
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "q", "in": "query", "type": "string"},
                    {"name": "horizon", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Operator login",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "Equipment": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "model": {"type": "string"},
                "serial": {"type": "string"},
                "last_service_date": {"type": "string"},
                "interval_days": {"type": "integer"},
                "consumables": {"type": "string"},
                "notes": {"type": "string"},
                "photo": {"type": "string"},
                "status": {"type": "string"}
            }
        },
        "EquipmentSchedule": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "model": {"type": "string"},
                "serial": {"type": "string"},
                "last_service_date": {"type": "string"},
                "interval_days": {"type": "integer"},
                "consumables": {"type": "string"},
                "notes": {"type": "string"},
                "photo": {"type": "string"},
                "status": {"type": "string"},
                "next_service_date": {"type": "string"},
                "days_to_next": {"type": "integer"}
            }
        },
        "AddEquipmentRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "model": {"type": "string"},
                "serial": {"type": "string"},
                "last_service_date": {"type": "string"},
                "interval_days": {"type": "integer"},
                "consumables": {"type": "string"},
                "notes": {"type": "string"}
            },
            "required": ["name"]
        },
        "EditEquipmentRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "model": {"type": "string"},
                "serial": {"type": "string"},
                "last_service_date": {"type": "string"},
                "interval_days": {"type": "integer"},
                "consumables": {"type": "string"},
                "notes": {"type": "string"}
            },
            "required": ["name"]
        },
        "DashboardSummary": {
            "type": "object",
            "properties": {
                "active_count": {"type": "integer"},
                "upcoming_count": {"type": "integer"},
                "overdue_count": {"type": "integer"}
            }
        },
        "MonthCount": {
            "type": "object",
            "properties": {
                "month": {"type": "string"},
                "count": {"type": "integer"}
            }
        },
        "LoginRequest": {
            "type": "object",
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["username", "password"]
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
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
