// Package docs holds the Swagger document served under /swagger. Keep it in step with the handler annotations.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/periods": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["periods"],
                "summary": "List accounting periods",
                "parameters": [
                    {"enum": ["OPEN", "CLOSED", "LOCKED"], "type": "string", "description": "Filter by status", "name": "status", "in": "query"},
                    {"type": "integer", "description": "Filter by the year the period starts in", "name": "year", "in": "query"},
                    {"type": "string", "description": "Organization scope", "name": "organizationId", "in": "query"},
                    {"type": "string", "description": "Organization scope", "name": "X-Organization-ID", "in": "header"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ListPeriodsResponse"}},
                    "400": {"description": "Invalid query", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Failed to list periods", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["periods"],
                "summary": "Create an accounting period",
                "parameters": [
                    {"type": "string", "description": "Organization scope, used when the body has none", "name": "X-Organization-ID", "in": "header"},
                    {"description": "Period details", "name": "period", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreatePeriodRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.PeriodResponse"}},
                    "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "409": {"description": "Overlapping period", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Failed to create period", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/periods/current": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["periods"],
                "summary": "Get the current accounting period",
                "parameters": [
                    {"type": "string", "description": "Reference date (YYYY-MM-DD)", "name": "asOf", "in": "query"},
                    {"type": "string", "description": "Organization scope", "name": "organizationId", "in": "query"},
                    {"type": "string", "description": "Organization scope", "name": "X-Organization-ID", "in": "header"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.CurrentPeriodResponse"}},
                    "400": {"description": "Invalid query", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Failed to find current period", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/periods/{periodID}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["periods"],
                "summary": "Get an accounting period",
                "parameters": [{"type": "string", "description": "Period ID", "name": "periodID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.PeriodResponse"}},
                    "404": {"description": "Period not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Failed to retrieve period", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["periods"],
                "summary": "Delete an accounting period",
                "parameters": [{"type": "string", "description": "Period ID", "name": "periodID", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Period not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "422": {"description": "Period is closed or locked", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Failed to delete period", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "patch": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["periods"],
                "summary": "Update an accounting period",
                "parameters": [
                    {"type": "string", "description": "Period ID", "name": "periodID", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "period", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.UpdatePeriodRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.PeriodResponse"}},
                    "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "Period not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "409": {"description": "Overlapping period", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "422": {"description": "Period is closed or locked", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Failed to update period", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/periods/{periodID}/close": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["periods"],
                "summary": "Close an accounting period",
                "parameters": [
                    {"type": "string", "description": "Period ID", "name": "periodID", "in": "path", "required": true},
                    {"description": "Close options", "name": "close", "in": "body", "schema": {"$ref": "#/definitions/dto.ClosePeriodRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ClosePeriodResponse"}},
                    "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "Period not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "409": {"description": "Period is busy", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "422": {"description": "Period cannot be closed", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Failed to close period", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "dto.CreatePeriodRequest": {
            "type": "object",
            "required": ["endDate", "name", "periodType", "startDate"],
            "properties": {
                "endDate": {"type": "string", "example": "2024-01-31"},
                "name": {"type": "string", "maxLength": 100},
                "notes": {"type": "string", "maxLength": 2000},
                "organizationId": {"type": "string"},
                "periodType": {"type": "string", "enum": ["MONTH", "QUARTER", "YEAR"]},
                "startDate": {"type": "string", "example": "2024-01-01"}
            }
        },
        "dto.UpdatePeriodRequest": {
            "type": "object",
            "properties": {
                "endDate": {"type": "string"},
                "name": {"type": "string", "maxLength": 100, "minLength": 1},
                "notes": {"type": "string", "maxLength": 2000},
                "periodType": {"type": "string", "enum": ["MONTH", "QUARTER", "YEAR"]},
                "startDate": {"type": "string"}
            }
        },
        "dto.ClosePeriodRequest": {
            "type": "object",
            "properties": {
                "force": {"type": "boolean"},
                "notes": {"type": "string", "maxLength": 2000}
            }
        },
        "dto.PeriodResponse": {
            "type": "object",
            "properties": {
                "closedAt": {"type": "string"},
                "closedBy": {"type": "string"},
                "createdAt": {"type": "string"},
                "createdBy": {"type": "string"},
                "endDate": {"type": "string"},
                "lastUpdatedAt": {"type": "string"},
                "lastUpdatedBy": {"type": "string"},
                "name": {"type": "string"},
                "notes": {"type": "string"},
                "organizationId": {"type": "string"},
                "periodID": {"type": "string"},
                "periodType": {"type": "string"},
                "startDate": {"type": "string"},
                "status": {"type": "string"}
            }
        },
        "dto.ListPeriodsResponse": {
            "type": "object",
            "properties": {
                "periods": {"type": "array", "items": {"$ref": "#/definitions/dto.PeriodResponse"}}
            }
        },
        "dto.CurrentPeriodResponse": {
            "type": "object",
            "properties": {
                "period": {"$ref": "#/definitions/dto.PeriodResponse"}
            }
        },
        "dto.ReconciliationSummaryResponse": {
            "type": "object",
            "properties": {
                "totalCredits": {"type": "number"},
                "totalDebits": {"type": "number"},
                "transactionCount": {"type": "integer"},
                "unbalancedEntries": {"type": "integer"}
            }
        },
        "dto.ClosePeriodResponse": {
            "type": "object",
            "properties": {
                "period": {"$ref": "#/definitions/dto.PeriodResponse"},
                "summary": {"$ref": "#/definitions/dto.ReconciliationSummaryResponse"}
            }
        },
        "handlers.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "field": {"type": "string"},
                "resourceId": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Ledger Periods API",
	Description:      "Accounting period lifecycle and period-close reconciliation.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
