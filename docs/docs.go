// Package docs registers the OpenAPI description served at /swagger/*.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
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
        "/auth/register": {"post": {"tags": ["auth"], "summary": "Sign up as a customer"}},
        "/auth/login": {"post": {"tags": ["auth"], "summary": "Login"}},
        "/auth/logout": {"post": {"tags": ["auth"], "summary": "Logout", "security": [{"BearerAuth": []}]}},
        "/me": {
            "get": {"tags": ["profile"], "summary": "Current identity", "security": [{"BearerAuth": []}]},
            "put": {"tags": ["profile"], "summary": "Update profile", "security": [{"BearerAuth": []}]}
        },
        "/projects": {
            "get": {"tags": ["projects"], "summary": "List projects", "security": [{"BearerAuth": []}]},
            "post": {"tags": ["projects"], "summary": "Create a project", "security": [{"BearerAuth": []}]}
        },
        "/projects/{id}": {"get": {"tags": ["projects"], "summary": "Get a project", "security": [{"BearerAuth": []}]}},
        "/projects/{id}/status": {"patch": {"tags": ["projects"], "summary": "Advance project status", "security": [{"BearerAuth": []}]}},
        "/chat/messages": {
            "get": {"tags": ["chat"], "summary": "Poll chat messages", "security": [{"BearerAuth": []}]},
            "post": {"tags": ["chat"], "summary": "Send a chat message", "security": [{"BearerAuth": []}]}
        },
        "/chat/unread": {"get": {"tags": ["chat"], "summary": "Unread message count", "security": [{"BearerAuth": []}]}},
        "/chat/read": {"post": {"tags": ["chat"], "summary": "Mark chat as read", "security": [{"BearerAuth": []}]}},
        "/posts": {"get": {"tags": ["posts"], "summary": "List published posts"}},
        "/posts/{slug}": {"get": {"tags": ["posts"], "summary": "Get a published post"}},
        "/admin/posts": {"post": {"tags": ["posts"], "summary": "Create a post", "security": [{"BearerAuth": []}]}},
        "/admin/posts/{id}": {
            "put": {"tags": ["posts"], "summary": "Update a post", "security": [{"BearerAuth": []}]},
            "delete": {"tags": ["posts"], "summary": "Delete a post", "security": [{"BearerAuth": []}]}
        },
        "/uploads": {"post": {"tags": ["uploads"], "summary": "Upload an attachment", "security": [{"BearerAuth": []}]}},
        "/uploads/{id}": {"get": {"tags": ["uploads"], "summary": "Download an attachment"}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Protolab Portal API",
	Description:      "Marketing site and role-gated customer/admin portal backend.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
