// Package docs registers the OpenAPI document served under /swagger.
// Regenerate with `swag init -g cmd/main.go` after changing handler annotations.
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
    "paths": {
        "/health": {
            "get": {"tags": ["system"], "summary": "Health check", "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}}
        },
        "/auth/signup": {
            "post": {"tags": ["auth"], "summary": "Sign up", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.SignupRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.AuthPayload"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/errorResponse"}}
                }}
        },
        "/auth/login": {
            "post": {"tags": ["auth"], "summary": "Log in", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.LoginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.AuthPayload"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorResponse"}}
                }}
        },
        "/api/v1/feed": {
            "get": {"tags": ["links"], "summary": "Feed", "produces": ["application/json"],
                "description": "Filtered, paginated and ordered links plus the filtered total. orderBy is field[:asc|desc] and may repeat; a field without a direction is ignored.",
                "parameters": [
                    {"type": "string", "in": "query", "name": "filter"},
                    {"type": "integer", "in": "query", "name": "skip"},
                    {"type": "integer", "in": "query", "name": "take"},
                    {"type": "array", "items": {"type": "string"}, "collectionFormat": "multi", "in": "query", "name": "orderBy"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Feed"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}}
                }}
        },
        "/api/v1/links": {
            "post": {"tags": ["links"], "summary": "Post link", "security": [{"BearerAuth": []}],
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.PostLinkRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Link"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errorResponse"}}
                }}
        },
        "/api/v1/links/{id}": {
            "get": {"tags": ["links"], "summary": "Get link", "produces": ["application/json"],
                "parameters": [{"type": "integer", "in": "path", "name": "id", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.LinkDetail"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorResponse"}}
                }},
            "patch": {"tags": ["links"], "summary": "Update link", "security": [{"BearerAuth": []}],
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "in": "path", "name": "id", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.UpdateLinkRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Link"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorResponse"}}
                }},
            "delete": {"tags": ["links"], "summary": "Delete link", "security": [{"BearerAuth": []}], "produces": ["application/json"],
                "parameters": [{"type": "integer", "in": "path", "name": "id", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Link"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorResponse"}}
                }}
        },
        "/api/v1/links/{id}/vote": {
            "post": {"tags": ["links"], "summary": "Vote for link", "security": [{"BearerAuth": []}], "produces": ["application/json"],
                "parameters": [{"type": "integer", "in": "path", "name": "id", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Vote"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorResponse"}}
                }}
        }
    },
    "definitions": {
        "errorResponse": {"type": "object", "properties": {"error": {"type": "string"}}},
        "handlers.SignupRequest": {"type": "object", "required": ["email", "password", "name"],
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}, "name": {"type": "string"}}},
        "handlers.LoginRequest": {"type": "object", "required": ["email", "password"],
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}},
        "handlers.PostLinkRequest": {"type": "object", "required": ["description", "url"],
            "properties": {"description": {"type": "string"}, "url": {"type": "string"}}},
        "handlers.UpdateLinkRequest": {"type": "object",
            "properties": {"description": {"type": "string"}, "url": {"type": "string"}}},
        "models.User": {"type": "object",
            "properties": {"id": {"type": "integer"}, "email": {"type": "string"}, "name": {"type": "string"}}},
        "models.AuthPayload": {"type": "object",
            "properties": {"token": {"type": "string"}, "user": {"$ref": "#/definitions/models.User"}}},
        "models.Link": {"type": "object",
            "properties": {"id": {"type": "integer"}, "description": {"type": "string"}, "url": {"type": "string"},
                "createdAt": {"type": "string", "format": "date-time"}, "postedById": {"type": "integer"}}},
        "models.LinkDetail": {"type": "object",
            "properties": {"id": {"type": "integer"}, "description": {"type": "string"}, "url": {"type": "string"},
                "createdAt": {"type": "string", "format": "date-time"}, "postedById": {"type": "integer"},
                "postedBy": {"$ref": "#/definitions/models.User"},
                "voters": {"type": "array", "items": {"$ref": "#/definitions/models.User"}}}},
        "models.Feed": {"type": "object",
            "properties": {"id": {"type": "string"}, "count": {"type": "integer"},
                "links": {"type": "array", "items": {"$ref": "#/definitions/models.Link"}}}},
        "models.Vote": {"type": "object",
            "properties": {"link": {"$ref": "#/definitions/models.Link"}, "user": {"$ref": "#/definitions/models.User"}}}
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "linkfeed API",
	Description:      "Link sharing with accounts, votes and a filterable feed.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
