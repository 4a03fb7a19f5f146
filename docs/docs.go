// Package docs holds the swagger spec served at /swagger. Regenerate with `swag init -g cmd/main.go`.
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
        "/events": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "Record a storefront event",
                "parameters": [
                    {"description": "Event", "name": "event", "in": "body", "required": true, "schema": {"$ref": "#/definitions/entity.CreateEventRequest"}}
                ],
                "responses": {
                    "200": {"description": "Duplicate page view", "schema": {"$ref": "#/definitions/response.TrackEvent"}},
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/response.TrackEvent"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.TrackEvent"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/response.TrackEvent"}}
                }
            }
        },
        "/admin/auth": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Admin login",
                "parameters": [
                    {"description": "Credentials", "name": "credentials", "in": "body", "required": true, "schema": {"$ref": "#/definitions/request.AdminLogin"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/wrapper.ResponseWrapper"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/wrapper.ErrorWrapper"}}
                }
            }
        },
        "/admin/auth/logout": {
            "post": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Admin logout",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/wrapper.SuccessWrapper"}}
                }
            }
        },
        "/admin/analytics/dashboard": {
            "get": {
                "produces": ["application/json"],
                "tags": ["/api/v1/admin/analytics"],
                "summary": "Dashboard analytics",
                "parameters": [
                    {"type": "string", "name": "startDate", "in": "query"},
                    {"type": "string", "name": "endDate", "in": "query"},
                    {"type": "string", "name": "period", "in": "query"},
                    {"type": "integer", "name": "days", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/wrapper.ResponseWrapper"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/wrapper.ErrorWrapper"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/wrapper.ErrorWrapper"}}
                }
            }
        },
        "/admin/analytics/traffic": {
            "get": {
                "produces": ["application/json"],
                "tags": ["/api/v1/admin/analytics"],
                "summary": "Traffic analytics",
                "parameters": [
                    {"type": "string", "name": "startDate", "in": "query"},
                    {"type": "string", "name": "endDate", "in": "query"},
                    {"type": "string", "name": "period", "in": "query"},
                    {"type": "integer", "name": "days", "in": "query"},
                    {"type": "string", "name": "granularity", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/wrapper.ResponseWrapper"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/wrapper.ErrorWrapper"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/wrapper.ErrorWrapper"}}
                }
            }
        },
        "/admin/analytics/products": {
            "get": {
                "produces": ["application/json"],
                "tags": ["/api/v1/admin/analytics"],
                "summary": "Product analytics",
                "parameters": [
                    {"type": "string", "name": "startDate", "in": "query"},
                    {"type": "string", "name": "endDate", "in": "query"},
                    {"type": "string", "name": "period", "in": "query"},
                    {"type": "integer", "name": "days", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/wrapper.ResponseWrapper"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/wrapper.ErrorWrapper"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/wrapper.ErrorWrapper"}}
                }
            }
        },
        "/admin/analytics/retention/purge": {
            "post": {
                "produces": ["application/json"],
                "tags": ["/api/v1/admin/analytics"],
                "summary": "Purge old events",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Purge"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/wrapper.ErrorWrapper"}}
                }
            }
        }
    },
    "definitions": {
        "entity.CreateEventRequest": {
            "type": "object",
            "required": ["event_type"],
            "properties": {
                "event_type": {"type": "string"},
                "entity_type": {"type": "string"},
                "entity_id": {"type": "string"},
                "page_url": {"type": "string"},
                "session_id": {"type": "string"},
                "user_id": {"type": "string"},
                "metadata": {"type": "object", "additionalProperties": true}
            }
        },
        "request.AdminLogin": {
            "type": "object",
            "required": ["username", "password"],
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "response.TrackEvent": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "event_id": {"type": "integer"},
                "duplicate": {"type": "boolean"},
                "error": {"type": "string"}
            }
        },
        "response.Purge": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "deleted": {"type": "integer"},
                "cutoff": {"type": "string"}
            }
        },
        "wrapper.ResponseWrapper": {
            "type": "object",
            "properties": {
                "data": {},
                "success": {"type": "boolean"}
            }
        },
        "wrapper.ErrorWrapper": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "success": {"type": "boolean"}
            }
        },
        "wrapper.SuccessWrapper": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "success": {"type": "boolean"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Parts analytics API",
	Description:      "Storefront event ingestion and admin analytics",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
