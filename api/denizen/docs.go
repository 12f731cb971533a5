// Package denizen registers the Swagger document served at /swagger/.
package denizen

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/livez": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Health Check Endpoint",
                "responses": {
                    "200": {"description": "status, uptime, version", "schema": {"$ref": "#/definitions/profilesdk.HealthResponse"}}
                }
            }
        },
        "/readyz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Readiness Check Endpoint",
                "responses": {
                    "200": {"description": "status, uptime, version, checks", "schema": {"$ref": "#/definitions/profilesdk.HealthResponse"}},
                    "503": {"description": "service not ready", "schema": {"$ref": "#/definitions/profilesdk.HealthResponse"}}
                }
            }
        },
        "/v1/denizens": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Denizens"],
                "summary": "Create denizen",
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/profilesdk.CreateDenizenRequest"}}
                ],
                "responses": {
                    "201": {"description": "id of the new denizen", "schema": {"$ref": "#/definitions/profilesdk.CreateDenizenResponse"}},
                    "400": {"description": "Missing username or password, malformed email", "schema": {"$ref": "#/definitions/profilesdk.ErrorResponse"}},
                    "409": {"description": "Username already taken", "schema": {"$ref": "#/definitions/profilesdk.ErrorResponse"}},
                    "429": {"description": "Rate limited", "schema": {"$ref": "#/definitions/profilesdk.ErrorResponse"}}
                }
            }
        },
        "/v1/denizens/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Denizens"],
                "summary": "Read denizen",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true, "description": "Denizen id (ULID)"}
                ],
                "responses": {
                    "200": {"description": "id, username, email", "schema": {"$ref": "#/definitions/profilesdk.DenizenResponse"}},
                    "400": {"description": "Malformed id", "schema": {"$ref": "#/definitions/profilesdk.ErrorResponse"}},
                    "404": {"description": "Unknown denizen", "schema": {"$ref": "#/definitions/profilesdk.ErrorResponse"}}
                }
            }
        },
        "/v1/denizens/{id}/profile": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Profile"],
                "summary": "Read profile",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true, "description": "Denizen id (ULID)"}
                ],
                "responses": {
                    "200": {"description": "Profile", "schema": {"$ref": "#/definitions/profilesdk.ProfileInfo"}},
                    "400": {"description": "Malformed id", "schema": {"$ref": "#/definitions/profilesdk.ErrorResponse"}},
                    "404": {"description": "Unknown denizen", "schema": {"$ref": "#/definitions/profilesdk.ErrorResponse"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "tags": ["Profile"],
                "summary": "Update profile",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true, "description": "Denizen id (ULID)"},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/profilesdk.ProfileUpdateRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Malformed id, body or email", "schema": {"$ref": "#/definitions/profilesdk.ErrorResponse"}},
                    "404": {"description": "Unknown denizen", "schema": {"$ref": "#/definitions/profilesdk.ErrorResponse"}}
                }
            }
        },
        "/v1/denizens/{id}/password": {
            "put": {
                "consumes": ["application/json"],
                "tags": ["Profile"],
                "summary": "Change password",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true, "description": "Denizen id (ULID)"},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/profilesdk.PasswordChangeRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Malformed id or body, empty new password", "schema": {"$ref": "#/definitions/profilesdk.ErrorResponse"}},
                    "403": {"description": "Old password is incorrect", "schema": {"$ref": "#/definitions/profilesdk.ErrorResponse"}},
                    "404": {"description": "Unknown denizen", "schema": {"$ref": "#/definitions/profilesdk.ErrorResponse"}},
                    "429": {"description": "Rate limited", "schema": {"$ref": "#/definitions/profilesdk.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "profilesdk.CreateDenizenRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"},
                "username": {"type": "string"}
            }
        },
        "profilesdk.CreateDenizenResponse": {
            "type": "object",
            "properties": {"id": {"type": "string"}}
        },
        "profilesdk.DenizenResponse": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "id": {"type": "string"},
                "username": {"type": "string"}
            }
        },
        "profilesdk.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "error_description": {"type": "string"}
            }
        },
        "profilesdk.HealthChecks": {
            "type": "object",
            "properties": {"database": {"type": "string"}}
        },
        "profilesdk.HealthResponse": {
            "type": "object",
            "properties": {
                "checks": {"$ref": "#/definitions/profilesdk.HealthChecks"},
                "status": {"type": "string"},
                "uptime": {"type": "string"},
                "version": {"type": "string"}
            }
        },
        "profilesdk.OAuthLink": {
            "type": "object",
            "properties": {
                "provider": {"type": "string"},
                "user_id": {"type": "string"}
            }
        },
        "profilesdk.PasswordChangeRequest": {
            "type": "object",
            "properties": {
                "new_password": {"type": "string"},
                "old_password": {"type": "string"}
            }
        },
        "profilesdk.ProfileInfo": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "first_name": {"type": "string"},
                "group": {"type": "string"},
                "id": {"type": "string"},
                "last_name": {"type": "string"},
                "oauth": {"type": "array", "items": {"$ref": "#/definitions/profilesdk.OAuthLink"}},
                "power_mode": {"type": "boolean"},
                "username": {"type": "string"}
            }
        },
        "profilesdk.ProfileUpdateRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "first_name": {"type": "string"},
                "group": {"type": "string"},
                "last_name": {"type": "string"},
                "power_mode": {"type": "boolean"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Kotoed Denizen Service API",
	Description:      "Denizen accounts and the profile editor backend: profile reads, partial profile updates and password changes.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
