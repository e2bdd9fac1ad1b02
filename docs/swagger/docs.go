// Package swagger registers the OpenAPI description served at /swagger/.
package swagger

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
        "/quota/upload-token": {
            "get": {
                "produces": ["application/json"],
                "tags": ["quota"],
                "summary": "Issue an upload token",
                "description": "Verifies the credential, computes the caller's remaining quota, and returns a short-lived signed token embedding callerId, storageLeftInBytes, and path.",
                "parameters": [
                    {"type": "string", "name": "token", "in": "query", "required": true, "description": "Bearer credential"},
                    {"type": "string", "name": "path", "in": "query", "required": true, "description": "Intended upload path"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Envelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Envelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/response.Envelope"}}
                }
            }
        },
        "/quota/remaining": {
            "get": {
                "produces": ["application/json"],
                "tags": ["quota"],
                "summary": "Read remaining quota",
                "description": "Returns the caller's remaining storage in bytes. Negative values mean the caller is over quota.",
                "parameters": [
                    {"type": "string", "name": "token", "in": "query", "required": true, "description": "Bearer credential"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Envelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/response.Envelope"}}
                }
            }
        },
        "/quota/objects": {
            "delete": {
                "produces": ["application/json"],
                "tags": ["quota"],
                "summary": "Delete all objects",
                "description": "Deletes every object under the caller's namespace to reclaim quota. On partial failure the call reports failure and can be retried safely.",
                "parameters": [
                    {"type": "string", "name": "token", "in": "query", "required": true, "description": "Bearer credential"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Envelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/response.Envelope"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/response.Envelope"}}
                }
            }
        },
        "/profile/tier": {
            "get": {
                "produces": ["application/json"],
                "tags": ["profile"],
                "summary": "Read subscription tier",
                "parameters": [
                    {"type": "string", "name": "token", "in": "query", "required": true, "description": "Bearer credential"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Envelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/response.Envelope"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["profile"],
                "summary": "Update subscription tier",
                "parameters": [
                    {"type": "string", "name": "token", "in": "query", "required": true, "description": "Bearer credential"},
                    {"name": "request", "in": "body", "required": true, "schema": {"type": "object", "properties": {"tier": {"type": "string"}}}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Envelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Envelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/response.Envelope"}}
                }
            }
        }
    },
    "definitions": {
        "response.Envelope": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "data": {},
                "error": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Loftdrive Quota API",
	Description:      "Storage quota accounting and upload-token issuance over an S3-compatible blob store.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
