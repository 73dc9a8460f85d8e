// Package docs holds the OpenAPI description served under /swagger/.
// Regenerate with: swag init -g cmd/server/main.go -o docs
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
            "get": {
                "description": "Returns all events, newest first. An empty list is not an error.",
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "List events",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.EventListResponse"}},
                    "500": {"description": "internal error", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            },
            "post": {
                "description": "Multipart form: any scalar fields plus an image file part. The image is uploaded first and its URL stored in the image field; id, image and timestamps are server-generated.",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "Create a new event",
                "parameters": [
                    {"type": "string", "description": "Event slug (normalized to lower case)", "name": "slug", "in": "formData", "required": true},
                    {"type": "file", "description": "Event image", "name": "image", "in": "formData", "required": true}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/controllers.EventResponse"}},
                    "400": {"description": "malformed body, missing or blank slug, missing image", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "409": {"description": "slug already exists", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "413": {"description": "body too large", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "500": {"description": "upload or persistence failure", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/events/{slug}": {
            "get": {
                "description": "Returns a single event. The slug is trimmed and lower-cased before lookup.",
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "Get an event by slug",
                "parameters": [
                    {"type": "string", "description": "Event slug", "name": "slug", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.EventResponse"}},
                    "400": {"description": "invalid slug", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "404": {"description": "event not found", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "500": {"description": "database connection error or internal error", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        }
    },
    "definitions": {
        "controllers.EventListResponse": {
            "type": "object",
            "properties": {
                "events": {"type": "array", "items": {"$ref": "#/definitions/domain.Event"}},
                "message": {"type": "string"}
            }
        },
        "controllers.EventResponse": {
            "type": "object",
            "properties": {
                "event": {"$ref": "#/definitions/domain.Event"},
                "message": {"type": "string"}
            }
        },
        "domain.Event": {
            "type": "object",
            "additionalProperties": {"type": "string"},
            "properties": {
                "id": {"type": "string"},
                "slug": {"type": "string"},
                "image": {"type": "string"},
                "created_at": {"type": "string", "format": "date-time"},
                "updated_at": {"type": "string", "format": "date-time"}
            }
        },
        "helpers.APIResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "message": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "DevEvent API",
	Description:      "Event listing service: browse events by slug and create events with an uploaded image.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
