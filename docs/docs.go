// Package docs registers the ClinicDesk OpenAPI document served at /swagger.
// Keep it in step with the handler annotations.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support",
            "email": "admin@hospital.com"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "description": "Check API and database health",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "503": {"description": "Service Unavailable", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/login": {
            "post": {
                "consumes": ["application/x-www-form-urlencoded"],
                "tags": ["Auth"],
                "summary": "Login user",
                "description": "Verify credentials and set the session cookie",
                "parameters": [
                    {"type": "string", "description": "Username", "name": "username", "in": "formData", "required": true},
                    {"type": "string", "description": "Password", "name": "password", "in": "formData", "required": true}
                ],
                "responses": {"302": {"description": "Found"}}
            }
        },
        "/register/patient": {
            "post": {
                "consumes": ["application/x-www-form-urlencoded"],
                "tags": ["Auth"],
                "summary": "Register patient",
                "parameters": [
                    {"type": "string", "description": "Username", "name": "username", "in": "formData", "required": true},
                    {"type": "string", "description": "Email", "name": "email", "in": "formData", "required": true},
                    {"type": "string", "description": "Password", "name": "password", "in": "formData", "required": true},
                    {"type": "string", "description": "Date of birth (YYYY-MM-DD)", "name": "dob", "in": "formData"}
                ],
                "responses": {"302": {"description": "Found"}}
            }
        },
        "/forgot-password": {
            "post": {
                "consumes": ["application/x-www-form-urlencoded"],
                "tags": ["Auth"],
                "summary": "Request password reset",
                "parameters": [
                    {"type": "string", "description": "Account email", "name": "email", "in": "formData", "required": true}
                ],
                "responses": {"302": {"description": "Found"}}
            }
        },
        "/reset-password/{token}": {
            "post": {
                "consumes": ["application/x-www-form-urlencoded"],
                "tags": ["Auth"],
                "summary": "Reset password",
                "parameters": [
                    {"type": "string", "description": "Reset token", "name": "token", "in": "path", "required": true},
                    {"type": "string", "description": "New password", "name": "new_password", "in": "formData", "required": true},
                    {"type": "string", "description": "Confirmation", "name": "confirm_password", "in": "formData", "required": true}
                ],
                "responses": {"302": {"description": "Found"}}
            }
        },
        "/departments": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Directory"],
                "summary": "List departments",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Department"}}}
                }
            }
        },
        "/search_doctors": {
            "get": {
                "description": "Active doctors filtered by specialization substring and, when a valid date is given, an open availability window on that date",
                "produces": ["application/json"],
                "tags": ["Directory"],
                "summary": "Search doctors",
                "parameters": [
                    {"type": "string", "description": "Specialization contains", "name": "specialization", "in": "query"},
                    {"type": "string", "description": "Available on (YYYY-MM-DD)", "name": "date", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.DoctorSummary"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/book_appointment": {
            "post": {
                "consumes": ["application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["Appointments"],
                "summary": "Book appointment",
                "parameters": [
                    {"type": "integer", "description": "Doctor ID", "name": "doctor_id", "in": "formData", "required": true},
                    {"type": "string", "description": "Date (YYYY-MM-DD)", "name": "date", "in": "formData", "required": true},
                    {"type": "string", "description": "Time (HH:MM)", "name": "time", "in": "formData", "required": true},
                    {"type": "string", "description": "Symptoms", "name": "symptoms", "in": "formData"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/response.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Response"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/response.Response"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/cancel_appointment/{id}": {
            "post": {
                "tags": ["Appointments"],
                "summary": "Cancel appointment",
                "parameters": [
                    {"type": "integer", "description": "Appointment ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {"302": {"description": "Found"}}
            }
        },
        "/complete_appointment/{id}": {
            "post": {
                "consumes": ["application/x-www-form-urlencoded"],
                "tags": ["Appointments"],
                "summary": "Complete appointment",
                "parameters": [
                    {"type": "integer", "description": "Appointment ID", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "Diagnosis", "name": "diagnosis", "in": "formData", "required": true},
                    {"type": "string", "description": "Prescription", "name": "prescription", "in": "formData", "required": true},
                    {"type": "string", "description": "Notes", "name": "notes", "in": "formData"}
                ],
                "responses": {"302": {"description": "Found"}}
            }
        },
        "/doctor/availability": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Doctor"],
                "summary": "List availability",
                "parameters": [
                    {"type": "string", "description": "Only this date (YYYY-MM-DD)", "name": "date", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            },
            "post": {
                "consumes": ["application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["Doctor"],
                "summary": "Declare availability",
                "parameters": [
                    {"type": "string", "description": "Date (YYYY-MM-DD)", "name": "date", "in": "formData", "required": true},
                    {"type": "string", "description": "Start (HH:MM)", "name": "start_time", "in": "formData", "required": true},
                    {"type": "string", "description": "End (HH:MM)", "name": "end_time", "in": "formData", "required": true}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/response.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/doctor/availability/{id}/toggle": {
            "post": {
                "produces": ["application/json"],
                "tags": ["Doctor"],
                "summary": "Toggle availability",
                "parameters": [
                    {"type": "integer", "description": "Availability ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/admin/appointments": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Admin"],
                "summary": "Appointment log",
                "parameters": [
                    {"type": "integer", "description": "Page number", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Page size", "name": "limit", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/admin/add_doctor": {
            "post": {
                "consumes": ["application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["Admin"],
                "summary": "Add doctor",
                "parameters": [
                    {"type": "string", "description": "Username", "name": "username", "in": "formData", "required": true},
                    {"type": "string", "description": "Email", "name": "email", "in": "formData", "required": true},
                    {"type": "string", "description": "Specialization", "name": "specialization", "in": "formData", "required": true},
                    {"type": "integer", "description": "Department", "name": "department_id", "in": "formData", "required": true},
                    {"type": "string", "description": "License number", "name": "license_number", "in": "formData"},
                    {"type": "integer", "description": "Years of experience", "name": "experience", "in": "formData"},
                    {"type": "number", "description": "Consultation fee", "name": "consultation_fee", "in": "formData"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/response.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/admin/reset_database": {
            "post": {
                "description": "Drops all data and recreates the default admin and departments. Requires confirm_code=RESET.",
                "consumes": ["application/x-www-form-urlencoded"],
                "tags": ["Admin"],
                "summary": "Reset database",
                "parameters": [
                    {"type": "string", "description": "Type RESET to confirm", "name": "confirm_code", "in": "formData", "required": true}
                ],
                "responses": {"302": {"description": "Found"}}
            }
        }
    },
    "definitions": {
        "models.Department": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "description": {"type": "string"}
            }
        },
        "models.DoctorSummary": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "specialization": {"type": "string"},
                "department": {"type": "string"},
                "experience": {"type": "integer"},
                "consultation_fee": {"type": "number"}
            }
        },
        "response.Response": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "data": {},
                "error": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "SessionCookie": {
            "type": "apiKey",
            "name": "session_token",
            "in": "cookie"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "ClinicDesk API",
	Description:      "Clinic scheduling: departments, doctor availability, appointment booking and treatments.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
