// Package docs holds the OpenAPI description served at /swagger/*.
// It is kept by hand in the layout swag emits; update it alongside the
// handler annotations. It carries paths only, no model definitions.
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
        "/api/auth/login": {"post": {"tags": ["auth"], "summary": "Login", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}, "429": {"description": "Too Many Requests"}}}},
        "/api/auth/logout": {"post": {"tags": ["auth"], "summary": "Logout", "responses": {"200": {"description": "OK"}}}},
        "/api/auth/me": {"get": {"security": [{"SessionCookie": []}], "tags": ["auth"], "summary": "Current user", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}},
        "/api/auth/register": {"post": {"tags": ["auth"], "summary": "Register a new user", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "409": {"description": "Conflict"}}}},
        "/api/profile": {"put": {"security": [{"SessionCookie": []}], "tags": ["profile"], "summary": "Update profile", "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}}}},
        "/api/profile/password": {"put": {"security": [{"SessionCookie": []}], "tags": ["profile"], "summary": "Change password", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}},
        "/api/requests": {
            "get": {"security": [{"SessionCookie": []}], "tags": ["requests"], "summary": "List shipment requests", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"SessionCookie": []}], "tags": ["requests"], "summary": "Create a shipment request", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/api/requests/stats": {"get": {"security": [{"SessionCookie": []}], "tags": ["requests"], "summary": "Request counts per status", "responses": {"200": {"description": "OK"}}}},
        "/api/requests/{id}": {
            "get": {"security": [{"SessionCookie": []}], "tags": ["requests"], "summary": "Get a shipment request", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"security": [{"SessionCookie": []}], "tags": ["requests"], "summary": "Update a shipment request", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/api/requests/{id}/status": {"patch": {"security": [{"SessionCookie": []}], "tags": ["requests"], "summary": "Change request status", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}},
        "/api/activity-logs": {"get": {"security": [{"SessionCookie": []}], "tags": ["activity"], "summary": "List activity log entries", "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}},
        "/api/users": {"get": {"security": [{"SessionCookie": []}], "tags": ["users"], "summary": "List users", "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}},
        "/api/users/{id}/role": {"patch": {"security": [{"SessionCookie": []}], "tags": ["users"], "summary": "Change a user's role", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}},
        "/api/public/requests": {"post": {"tags": ["public"], "summary": "Submit a request without an account", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "429": {"description": "Too Many Requests"}}}},
        "/api/public/track": {"get": {"tags": ["public"], "summary": "Track requests by client phone", "parameters": [{"type": "string", "name": "phone", "in": "query", "required": true}], "responses": {"200": {"description": "OK"}}}},
        "/api/public/track/{number}": {"get": {"tags": ["public"], "summary": "Track a request by number", "parameters": [{"type": "string", "name": "number", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/health": {"get": {"tags": ["health"], "summary": "Liveness probe", "responses": {"200": {"description": "OK"}}}},
        "/health/ready": {"get": {"tags": ["health"], "summary": "Readiness probe", "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}}}
    },
    "securityDefinitions": {
        "SessionCookie": {"type": "apiKey", "name": "Authorization", "in": "header", "description": "Bearer <token>, or the cargo_sid cookie"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "cargo-desk API",
	Description:      "Cargo request desk: staff request management, sessions and public tracking.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
