package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "HuskyTracks API",
        "description": "Campus lost-and-found service for Northeastern University",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Authentication", "description": "Institutional login"},
        {"name": "Lost items", "description": "Reporting and triage of lost items"},
        {"name": "Admin", "description": "Account management and analytics"},
        {"name": "Notifications", "description": "Match notification emails"},
        {"name": "Meta", "description": "Identity, dashboard routing, campus locations"}
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
        "/api/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate user",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Non-institutional email or missing fields"},
                    "401": {"description": "Invalid credentials"},
                    "404": {"description": "Unknown account"},
                    "429": {"description": "Too many attempts"}
                }
            }
        },
        "/api/me": {
            "get": {
                "tags": ["Meta"],
                "summary": "Current identity",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthenticated"}
                }
            }
        },
        "/api/dashboard": {
            "get": {
                "tags": ["Meta"],
                "summary": "Dashboard routing for the authenticated role",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthenticated"}
                }
            }
        },
        "/api/locations": {
            "get": {
                "tags": ["Meta"],
                "summary": "Campus location catalog",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/register-test-users": {
            "post": {
                "tags": ["Meta"],
                "summary": "Register fixture accounts (flag-gated)",
                "responses": {
                    "201": {"description": "Created"},
                    "500": {"description": "Seeding failed"}
                }
            }
        },
        "/api/lost-items": {
            "post": {
                "tags": ["Lost items"],
                "summary": "Report a lost item",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "title", "in": "formData", "type": "string", "required": true},
                    {"name": "description", "in": "formData", "type": "string", "required": true},
                    {"name": "category", "in": "formData", "type": "string"},
                    {"name": "locationName", "in": "formData", "type": "string"},
                    {"name": "coordinates", "in": "formData", "type": "string", "description": "JSON [lng, lat] pair"},
                    {"name": "submittedBy", "in": "formData", "type": "string", "required": true},
                    {"name": "image", "in": "formData", "type": "file"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation failed"}
                }
            },
            "get": {
                "tags": ["Lost items"],
                "summary": "List reports for a submitter",
                "parameters": [
                    {"name": "email", "in": "query", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Missing email"}
                }
            }
        },
        "/api/lost-items/supervisor": {
            "get": {
                "tags": ["Lost items"],
                "summary": "List items annotated for a supervisor location",
                "parameters": [
                    {"name": "location", "in": "query", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Missing location"}
                }
            }
        },
        "/api/lost-items/{id}": {
            "patch": {
                "tags": ["Lost items"],
                "summary": "Update item status",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/StatusUpdateRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid status or transition"},
                    "404": {"description": "Item not found"}
                }
            }
        },
        "/api/send-match-email": {
            "post": {
                "tags": ["Notifications"],
                "summary": "Send a match notification",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/MatchNotificationRequest"}}
                ],
                "responses": {
                    "200": {"description": "Sent"},
                    "400": {"description": "Validation failed"},
                    "500": {"description": "Email sending failed"}
                }
            }
        },
        "/api/admin/users": {
            "get": {
                "tags": ["Admin"],
                "summary": "List supervisor and admin accounts",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden"}
                }
            }
        },
        "/api/admin/create-user": {
            "post": {
                "tags": ["Admin"],
                "summary": "Create an account",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateUserRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Validation failed"},
                    "409": {"description": "Account already exists"}
                }
            }
        },
        "/api/admin/users/{id}": {
            "patch": {
                "tags": ["Admin"],
                "summary": "Update an account",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateUserRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "User not found"}
                }
            },
            "delete": {
                "tags": ["Admin"],
                "summary": "Delete an account",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "204": {"description": "Deleted"},
                    "404": {"description": "User not found"}
                }
            }
        },
        "/api/admin/all-lost-items": {
            "get": {
                "tags": ["Admin"],
                "summary": "List every report",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/admin/analytics": {
            "get": {
                "tags": ["Admin"],
                "summary": "Analytics snapshot",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/admin/analytics/export": {
            "get": {
                "tags": ["Admin"],
                "summary": "Export analytics as CSV or PDF",
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "Attachment"},
                    "400": {"description": "Unsupported format"}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "StatusUpdateRequest": {
            "type": "object",
            "required": ["status"],
            "properties": {
                "status": {"type": "string", "enum": ["Pending", "Matched", "Returned", "Transferred to NUPD"]}
            }
        },
        "MatchNotificationRequest": {
            "type": "object",
            "required": ["to", "itemTitle", "locationName"],
            "properties": {
                "to": {"type": "string"},
                "itemTitle": {"type": "string"},
                "locationName": {"type": "string"},
                "supervisorName": {"type": "string"},
                "supervisorEmail": {"type": "string"}
            }
        },
        "CreateUserRequest": {
            "type": "object",
            "required": ["email", "password", "role"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"},
                "role": {"type": "string", "enum": ["student", "supervisor", "admin"]},
                "location": {"type": "string"}
            }
        },
        "UpdateUserRequest": {
            "type": "object",
            "properties": {
                "role": {"type": "string", "enum": ["student", "supervisor", "admin"]},
                "location": {"type": "string"}
            }
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
