// Package docs registers the OpenAPI document served under /swagger.
// Regenerate with `swag init -g cmd/server/main.go` after changing the
// handler annotations.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/birthdays": {
            "get": {
                "description": "Return every stored birthday record",
                "produces": ["application/json"],
                "tags": ["birthdays"],
                "summary": "List birthdays",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {"$ref": "#/definitions/models.Birthday"}
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}
                    }
                }
            },
            "put": {
                "description": "Replace name, birthday, idea and link of an existing record",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["birthdays"],
                "summary": "Update a birthday",
                "parameters": [
                    {
                        "description": "Record with id",
                        "name": "birthday",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/models.BirthdayInput"}
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/handlers.MessageResponse"}
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {"$ref": "#/definitions/handlers.ValidationErrorResponse"}
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}
                    }
                }
            },
            "post": {
                "description": "Store a new birthday record",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["birthdays"],
                "summary": "Create a birthday",
                "parameters": [
                    {
                        "description": "Record without id",
                        "name": "birthday",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/models.BirthdayInput"}
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {"$ref": "#/definitions/handlers.MessageResponse"}
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {"$ref": "#/definitions/handlers.ValidationErrorResponse"}
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}
                    }
                }
            },
            "delete": {
                "description": "Remove the record with the given id",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["birthdays"],
                "summary": "Delete a birthday",
                "parameters": [
                    {
                        "description": "Object carrying the id",
                        "name": "birthday",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/models.BirthdayInput"}
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/handlers.MessageResponse"}
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {"$ref": "#/definitions/handlers.ValidationErrorResponse"}
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}
                    }
                }
            }
        }
    },
    "definitions": {
        "handlers.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
        },
        "handlers.MessageResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "message": {"type": "string"}
            }
        },
        "handlers.ValidationErrorResponse": {
            "type": "object",
            "properties": {
                "errors": {
                    "type": "array",
                    "items": {"type": "string"}
                }
            }
        },
        "models.Birthday": {
            "type": "object",
            "properties": {
                "birthday": {"type": "string", "example": "1990-01-01"},
                "createdAt": {"type": "string"},
                "id": {"type": "integer"},
                "idea": {"type": "string"},
                "link": {"type": "string"},
                "name": {"type": "string"}
            }
        },
        "models.BirthdayInput": {
            "type": "object",
            "properties": {
                "birthday": {"type": "string", "example": "1990-01-01"},
                "id": {"type": "integer"},
                "idea": {"type": "string"},
                "link": {"type": "string"},
                "name": {"type": "string"}
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
	Title:            "Birthday Tracker API",
	Description:      "Stores birthdays and gift ideas",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
