// Package docs registers the swagger document for the HTTP API. Regenerate
// with `swag init -g cmd/app/main.go -o internal/docs` after changing handler
// annotations.
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
        "/bookings": {
            "post": {
                "security": [{"BasicAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["bookings"],
                "summary": "Book a ticket",
                "parameters": [
                    {"type": "string", "description": "Client request key", "name": "Idempotency-Key", "in": "header"},
                    {"description": "Booking request", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.createBookingRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/api.bookingResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/flights": {
            "get": {
                "produces": ["application/json"],
                "tags": ["flights"],
                "summary": "Search flights by route",
                "parameters": [
                    {"type": "string", "description": "Origin city", "name": "origin", "in": "query", "required": true},
                    {"type": "string", "description": "Destination city", "name": "destination", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Flight"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/stats": {
            "get": {
                "security": [{"BasicAuth": []}],
                "produces": ["application/json"],
                "tags": ["bookings"],
                "summary": "Flight, ticket and user counts",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Statistics"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/tickets": {
            "get": {
                "security": [{"BasicAuth": []}],
                "produces": ["application/json"],
                "tags": ["bookings"],
                "summary": "List tickets visible to the caller, highest priority first",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Ticket"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "api.bookingResponse": {
            "type": "object",
            "properties": {
                "ticket": {"$ref": "#/definitions/domain.Ticket"},
                "warning": {"type": "string"}
            }
        },
        "api.createBookingRequest": {
            "type": "object",
            "properties": {
                "cabin_class": {"type": "string"},
                "customer_age": {"type": "integer"},
                "customer_email": {"type": "string"},
                "customer_name": {"type": "string"},
                "flight_number": {"type": "string"}
            }
        },
        "api.errorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
        },
        "domain.Customer": {
            "type": "object",
            "properties": {
                "age": {"type": "integer"},
                "email": {"type": "string"},
                "name": {"type": "string"}
            }
        },
        "domain.Flight": {
            "type": "object",
            "properties": {
                "departure_time": {"type": "string"},
                "destination": {"type": "string"},
                "flight_number": {"type": "string"},
                "origin": {"type": "string"}
            }
        },
        "domain.Statistics": {
            "type": "object",
            "properties": {
                "flight_count": {"type": "integer"},
                "ticket_count": {"type": "integer"},
                "user_count": {"type": "integer"}
            }
        },
        "domain.Ticket": {
            "type": "object",
            "properties": {
                "cabin_class": {"type": "string", "enum": ["ECONOMY", "BUSINESS", "FIRST"]},
                "customer": {"$ref": "#/definitions/domain.Customer"},
                "flight": {"$ref": "#/definitions/domain.Flight"},
                "id": {"type": "string"},
                "issued_at": {"type": "string"},
                "price": {"type": "number"}
            }
        }
    },
    "securityDefinitions": {
        "BasicAuth": {"type": "basic"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "skybook API",
	Description:      "Flight search and ticket booking.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
