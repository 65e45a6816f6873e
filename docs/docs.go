// Package docs holds the generated OpenAPI description served by the
// Swagger UI route. Regenerate with:
//
//	swag init -g cmd/server/main.go -o docs
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
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/auth/register": {
            "post": {"tags": ["Auth"], "summary": "Create an admin account"}
        },
        "/auth/login": {
            "post": {"tags": ["Auth"], "summary": "Sign in and receive a bearer token"}
        },
        "/auth/logout": {
            "post": {"tags": ["Auth"], "summary": "Sign out the current session", "security": [{"BearerAuth": []}]}
        },
        "/users": {
            "get": {"tags": ["Auth"], "summary": "List admin accounts (paginated)", "security": [{"BearerAuth": []}]}
        },
        "/officials": {
            "get": {"tags": ["Officials"], "summary": "List federation officials (paginated)", "security": [{"BearerAuth": []}]},
            "post": {"tags": ["Officials"], "summary": "Create a federation official", "security": [{"BearerAuth": []}]}
        },
        "/officials/{id}": {
            "get": {"tags": ["Officials"], "summary": "Get one official", "security": [{"BearerAuth": []}]},
            "put": {"tags": ["Officials"], "summary": "Update an official", "security": [{"BearerAuth": []}]},
            "delete": {"tags": ["Officials"], "summary": "Delete an official", "security": [{"BearerAuth": []}]}
        },
        "/barangays": {
            "get": {"tags": ["Barangays"], "summary": "List barangays (paginated)", "security": [{"BearerAuth": []}]},
            "post": {"tags": ["Barangays"], "summary": "Create a barangay", "security": [{"BearerAuth": []}]}
        },
        "/barangays/names": {
            "get": {"tags": ["Barangays"], "summary": "List all barangay names", "security": [{"BearerAuth": []}]}
        },
        "/barangays/{id}": {
            "get": {"tags": ["Barangays"], "summary": "Get one barangay", "security": [{"BearerAuth": []}]},
            "put": {"tags": ["Barangays"], "summary": "Rename a barangay", "security": [{"BearerAuth": []}]},
            "delete": {"tags": ["Barangays"], "summary": "Delete a barangay", "security": [{"BearerAuth": []}]}
        },
        "/citizens": {
            "get": {"tags": ["Citizens"], "summary": "List senior citizens (paginated)", "security": [{"BearerAuth": []}]},
            "post": {"tags": ["Citizens"], "summary": "Register a senior citizen", "security": [{"BearerAuth": []}]}
        },
        "/citizens/recycle-bin": {
            "get": {"tags": ["Citizens"], "summary": "List soft-deleted citizens (paginated)", "security": [{"BearerAuth": []}]}
        },
        "/citizens/{id}": {
            "get": {"tags": ["Citizens"], "summary": "Get one senior citizen", "security": [{"BearerAuth": []}]},
            "put": {"tags": ["Citizens"], "summary": "Update a senior citizen", "security": [{"BearerAuth": []}]},
            "delete": {"tags": ["Citizens"], "summary": "Move a citizen to the recycle bin", "security": [{"BearerAuth": []}]}
        },
        "/citizens/{id}/restore": {
            "post": {"tags": ["Citizens"], "summary": "Restore a citizen from the recycle bin", "security": [{"BearerAuth": []}]}
        },
        "/citizens/{id}/purge": {
            "delete": {"tags": ["Citizens"], "summary": "Permanently delete a binned citizen", "security": [{"BearerAuth": []}]}
        },
        "/sms/credentials": {
            "get": {"tags": ["SMS"], "summary": "Get gateway credentials (key masked)", "security": [{"BearerAuth": []}]},
            "put": {"tags": ["SMS"], "summary": "Save gateway credentials", "security": [{"BearerAuth": []}]}
        },
        "/sms/broadcast": {
            "post": {"tags": ["SMS"], "summary": "Send an SMS broadcast", "security": [{"BearerAuth": []}]}
        },
        "/sms/logs": {
            "get": {"tags": ["SMS"], "summary": "List past broadcast attempts (paginated)", "security": [{"BearerAuth": []}]}
        },
        "/audit-logs": {
            "get": {"tags": ["Audit"], "summary": "List audit-trail entries (paginated)", "security": [{"BearerAuth": []}]}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "OSCA Admin Backend API",
	Description:      "Administrative backend for a municipal Office of Senior Citizens Affairs: registry, officials, SMS broadcasts, and audit trail.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
