// Package docs registers the OpenAPI description served at /swagger.
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
        "/api/health": {
            "get": {"tags": ["health"], "summary": "Service health", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}
        },
        "/api/party": {
            "get": {"tags": ["party"], "summary": "Active party", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/party.Response"}}}}
        },
        "/api/party/stats": {
            "get": {"tags": ["party"], "summary": "Attendance statistics for the active party", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/party.Stats"}}, "404": {"description": "Party not found"}}}
        },
        "/api/rsvp": {
            "post": {
                "tags": ["rsvp"], "summary": "Submit an RSVP for the active party",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/rsvp.SubmitRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/rsvp.SubmitResponse"}}, "400": {"description": "Invalid input or duplicate"}, "404": {"description": "Party not found"}, "500": {"description": "Persistence failure"}}
            }
        },
        "/api/rsvp/{code}": {
            "get": {
                "tags": ["rsvp"], "summary": "Look up an RSVP by confirmation code", "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "code", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "RSVP not found"}}
            }
        },
        "/api/guests": {
            "get": {"tags": ["guests"], "summary": "Guest list of the active party, newest first", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/rsvp.RSVP"}}}}}
        },
        "/api/guests/export": {
            "get": {
                "tags": ["guests"], "summary": "Download the guest list", "produces": ["application/octet-stream"],
                "parameters": [{"type": "string", "name": "format", "in": "query", "enum": ["csv", "excel", "pdf"]}],
                "responses": {"200": {"description": "File"}, "400": {"description": "Unsupported format"}}
            }
        },
        "/api/guests/stream": {
            "get": {"tags": ["guests"], "summary": "Server-sent events for guest list changes", "produces": ["text/event-stream"], "responses": {"200": {"description": "Event stream"}, "503": {"description": "Live feed is not configured"}}}
        },
        "/api/guest/{code}": {
            "put": {
                "tags": ["guests"], "summary": "Update a guest's name and/or phone",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "code", "in": "path", "required": true}, {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/rsvp.UpdateRequest"}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Nothing to update"}, "404": {"description": "RSVP not found"}}
            },
            "delete": {
                "tags": ["guests"], "summary": "Remove a guest by confirmation code", "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "code", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "RSVP not found"}}
            }
        },
        "/api/clear-guests": {
            "delete": {"tags": ["guests"], "summary": "Delete every RSVP of the active party", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}
        },
        "/api/audit-logs": {
            "get": {
                "tags": ["AuditLog"], "summary": "Recent audit log entries", "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "action", "in": "query"}, {"type": "string", "name": "status", "in": "query"}, {"type": "integer", "name": "limit", "in": "query"}],
                "responses": {"200": {"description": "OK"}}
            }
        }
    },
    "definitions": {
        "party.Response": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"}, "title": {"type": "string"}, "description": {"type": "string"},
                "date": {"type": "string"}, "time": {"type": "string"}, "address": {"type": "string"},
                "max_guests": {"type": "integer"}, "is_rsvp_open": {"type": "boolean"}, "rsvp_deadline": {"type": "string"},
                "contact_email": {"type": "string"}, "contact_phone": {"type": "string"}
            }
        },
        "party.Stats": {
            "type": "object",
            "properties": {
                "total_rsvps": {"type": "integer"}, "total_attending": {"type": "integer"}, "max_guests": {"type": "integer"},
                "available_spots": {"type": "integer"}, "is_rsvp_open": {"type": "boolean"}
            }
        },
        "rsvp.RSVP": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"}, "name": {"type": "string"}, "email": {"type": "string"}, "phone": {"type": "string"},
                "attending": {"type": "string", "enum": ["yes", "no", "maybe"]}, "number_of_guests": {"type": "integer"},
                "dietary_restrictions": {"type": "string"}, "message": {"type": "string"},
                "confirmation_code": {"type": "string"}, "submitted_at": {"type": "string"}
            }
        },
        "rsvp.SubmitRequest": {
            "type": "object",
            "required": ["name", "email", "attending", "number_of_guests"],
            "properties": {
                "name": {"type": "string"}, "email": {"type": "string"}, "phone": {"type": "string"},
                "attending": {"type": "string", "enum": ["yes", "no", "maybe"]}, "number_of_guests": {"type": "integer", "minimum": 1},
                "dietary_restrictions": {"type": "string"}, "message": {"type": "string"}
            }
        },
        "rsvp.SubmitResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}, "confirmation_code": {"type": "string"}}
        },
        "rsvp.UpdateRequest": {
            "type": "object",
            "properties": {"name": {"type": "string"}, "phone": {"type": "string"}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Party RSVP API",
	Description:      "RSVP collection and guest management for a birthday party.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
