package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Timetable API",
        "description": "Class session timetable with filtered daily and weekly views",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "in": "header", "name": "Authorization"}
    },
    "tags": [
        {"name": "Timetable", "description": "Class sessions and timetable views"},
        {"name": "Authentication", "description": "Registration and login sessions"},
        {"name": "Operations", "description": "Probes and metrics"}
    ],
    "paths": {
        "/health": {
            "get": {
                "tags": ["Operations"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "tags": ["Operations"],
                "summary": "Readiness probe",
                "description": "Pings the database and session store.",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "A dependency is unavailable"}
                }
            }
        },
        "/api/timetable/": {
            "get": {
                "tags": ["Timetable"],
                "summary": "List class sessions",
                "description": "Ordered Monday first, then by start time. Filters are exact; day is case-insensitive.",
                "parameters": [
                    {"$ref": "#/parameters/day"},
                    {"$ref": "#/parameters/department"},
                    {"$ref": "#/parameters/year"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ClassSessionList"}}
                }
            },
            "post": {
                "tags": ["Timetable"],
                "summary": "Create class session",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ClassSessionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ClassSession"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/api/timetable/daily/": {
            "get": {
                "tags": ["Timetable"],
                "summary": "Today's class sessions",
                "parameters": [
                    {"$ref": "#/parameters/department"},
                    {"$ref": "#/parameters/year"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ClassSessionList"}}
                }
            }
        },
        "/api/timetable/weekly/": {
            "get": {
                "tags": ["Timetable"],
                "summary": "The whole week of class sessions",
                "parameters": [
                    {"$ref": "#/parameters/department"},
                    {"$ref": "#/parameters/year"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ClassSessionList"}}
                }
            }
        },
        "/api/timetable/export/": {
            "get": {
                "tags": ["Timetable"],
                "summary": "Export the timetable as CSV or PDF",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]},
                    {"$ref": "#/parameters/day"},
                    {"$ref": "#/parameters/department"},
                    {"$ref": "#/parameters/year"}
                ],
                "responses": {
                    "200": {"description": "Attachment", "schema": {"type": "file"}},
                    "400": {"description": "Unsupported format", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/api/timetable/{id}/": {
            "parameters": [
                {"name": "id", "in": "path", "required": true, "type": "string", "format": "uuid"}
            ],
            "get": {
                "tags": ["Timetable"],
                "summary": "Get class session",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ClassSession"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            },
            "put": {
                "tags": ["Timetable"],
                "summary": "Replace class session",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ClassSessionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ClassSession"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            },
            "patch": {
                "tags": ["Timetable"],
                "summary": "Partially update class session",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ClassSessionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ClassSession"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            },
            "delete": {
                "tags": ["Timetable"],
                "summary": "Delete class session",
                "responses": {
                    "204": {"description": "Deleted"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/api/register/": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Register an account",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/User"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/api/login/": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Log in",
                "description": "Returns the user with an access token and sets an HttpOnly session cookie.",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/LoginResponse"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/api/logout/": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Log out",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/MessageBody"}}
                }
            }
        }
    },
    "parameters": {
        "day": {"name": "day", "in": "query", "type": "string", "description": "MON, TUE, WED, THU, FRI, SAT or SUN"},
        "department": {"name": "department", "in": "query", "type": "string"},
        "year": {"name": "year", "in": "query", "type": "string"}
    },
    "definitions": {
        "ClassSession": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "format": "uuid"},
                "class_name": {"type": "string"},
                "day": {"type": "string", "enum": ["MON", "TUE", "WED", "THU", "FRI", "SAT", "SUN"]},
                "start_time": {"type": "string", "example": "08:00:00"},
                "end_time": {"type": "string", "example": "09:30:00"},
                "subject": {"type": "string"},
                "faculty": {"type": "string"},
                "room": {"type": "string"},
                "type": {"type": "string", "enum": ["LECTURE", "LAB", "TUTORIAL", "SEMINAR"]},
                "department": {"type": "string"},
                "year": {"type": "string"}
            }
        },
        "ClassSessionList": {
            "type": "array",
            "items": {"$ref": "#/definitions/ClassSession"}
        },
        "ClassSessionRequest": {
            "type": "object",
            "required": ["class_name", "day", "start_time", "end_time", "subject", "faculty", "room", "department", "year"],
            "properties": {
                "class_name": {"type": "string", "maxLength": 100},
                "day": {"type": "string", "enum": ["MON", "TUE", "WED", "THU", "FRI", "SAT", "SUN"]},
                "start_time": {"type": "string", "example": "08:00"},
                "end_time": {"type": "string", "example": "09:30"},
                "subject": {"type": "string", "maxLength": 100},
                "faculty": {"type": "string", "maxLength": 100},
                "room": {"type": "string", "maxLength": 50},
                "type": {"type": "string", "enum": ["LECTURE", "LAB", "TUTORIAL", "SEMINAR"], "default": "LECTURE"},
                "department": {"type": "string", "maxLength": 100},
                "year": {"type": "string", "maxLength": 10}
            }
        },
        "RegisterRequest": {
            "type": "object",
            "required": ["username", "password"],
            "properties": {
                "username": {"type": "string", "maxLength": 150},
                "email": {"type": "string", "format": "email"},
                "password": {"type": "string", "minLength": 8},
                "first_name": {"type": "string"},
                "last_name": {"type": "string"}
            }
        },
        "LoginRequest": {
            "type": "object",
            "required": ["username", "password"],
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "User": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "format": "uuid"},
                "username": {"type": "string"},
                "email": {"type": "string"},
                "first_name": {"type": "string"},
                "last_name": {"type": "string"}
            }
        },
        "LoginResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "format": "uuid"},
                "username": {"type": "string"},
                "email": {"type": "string"},
                "first_name": {"type": "string"},
                "last_name": {"type": "string"},
                "access_token": {"type": "string"},
                "expires_in": {"type": "integer"}
            }
        },
        "MessageBody": {
            "type": "object",
            "properties": {
                "message": {"type": "string"}
            }
        },
        "ErrorBody": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "code": {"type": "string"},
                "fields": {"type": "object", "additionalProperties": {"type": "string"}}
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
