// Package docs registers the OpenAPI document served under /swagger.
// Regenerate with: swag init -g cmd/api/main.go
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
        "/clients": {
            "get": {
                "description": "Returns every client ordered alphabetically by name",
                "produces": ["application/json"],
                "tags": ["Clients"],
                "summary": "List clients",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Client"}}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/domain.APIError"}}
                }
            },
            "post": {
                "description": "Registers a client. When a client with the same name (ignoring case) exists, it is returned unchanged with status 200.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Clients"],
                "summary": "Create client",
                "parameters": [
                    {"description": "Client data", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.CreateClientRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Client"}},
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.Client"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/domain.APIError"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/domain.APIError"}}
                }
            }
        },
        "/offers": {
            "get": {
                "description": "Returns every offer, most recently created first",
                "produces": ["application/json"],
                "tags": ["Offers"],
                "summary": "List offers",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Offer"}}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/domain.APIError"}}
                }
            },
            "post": {
                "description": "Creates an offer for an existing client, or registers the new client given by newClientName first.\nPrice and cost may be sent as numbers or strings. Dates accept YYYY-MM-DD or RFC 3339.\nValidation failures return a single localized message.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Offers"],
                "summary": "Create offer",
                "parameters": [
                    {"description": "Offer data", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.CreateOfferRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.CreateOfferResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/domain.APIError"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/domain.APIError"}}
                }
            }
        },
        "/offers/next-number": {
            "get": {
                "description": "Returns one more than the largest trailing number of existing offer numbers, formatted OF-0000. The suggestion is not reserved.",
                "produces": ["application/json"],
                "tags": ["Offers"],
                "summary": "Suggest next offer number",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.NextOfferNumberResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/domain.APIError"}}
                }
            }
        },
        "/dashboard": {
            "get": {
                "description": "Returns the filtered offers joined with client names, newest first, with totals and a per-status summary.",
                "produces": ["application/json"],
                "tags": ["Dashboard"],
                "summary": "Get dashboard",
                "parameters": [
                    {"type": "string", "description": "Client ID", "name": "clientId", "in": "query"},
                    {"type": "array", "items": {"enum": ["draft", "in_review", "sent", "won", "lost"], "type": "string"}, "collectionFormat": "multi", "description": "Statuses", "name": "status", "in": "query"},
                    {"type": "string", "description": "Created on or after", "name": "createdFrom", "in": "query"},
                    {"type": "string", "description": "Created on or before", "name": "createdTo", "in": "query"},
                    {"type": "string", "description": "Valid until on or after", "name": "validFrom", "in": "query"},
                    {"type": "string", "description": "Valid until on or before", "name": "validTo", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.DashboardView"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/domain.APIError"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/domain.APIError"}}
                }
            }
        },
        "/dashboard/columns": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Dashboard"],
                "summary": "Get visible dashboard columns",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.ColumnsResponse"}}
                }
            },
            "put": {
                "description": "Unknown and repeated column ids are dropped. An empty selection shows every column.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Dashboard"],
                "summary": "Set visible dashboard columns",
                "parameters": [
                    {"description": "Columns in display order", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.UpdateColumnsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.ColumnsResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/domain.APIError"}}
                }
            }
        }
    },
    "definitions": {
        "domain.APIError": {
            "type": "object",
            "properties": {
                "detail": {"type": "string"},
                "errors": {"type": "object", "additionalProperties": {"type": "string"}},
                "status": {"type": "integer"},
                "title": {"type": "string"},
                "type": {"type": "string"}
            }
        },
        "domain.Client": {
            "type": "object",
            "properties": {
                "createdAt": {"type": "string"},
                "email": {"type": "string"},
                "id": {"type": "string"},
                "name": {"type": "string"}
            }
        },
        "domain.CreateClientRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "email": {"type": "string", "maxLength": 254},
                "name": {"type": "string", "maxLength": 200}
            }
        },
        "domain.CreateOfferRequest": {
            "type": "object",
            "properties": {
                "clientId": {"type": "string"},
                "cost": {"type": "string"},
                "createdAt": {"type": "string"},
                "margin": {"type": "number"},
                "newClientEmail": {"type": "string", "maxLength": 254},
                "newClientName": {"type": "string", "maxLength": 200},
                "offerNumber": {"type": "string", "maxLength": 50},
                "price": {"type": "string"},
                "status": {"type": "string"},
                "validUntil": {"type": "string"}
            }
        },
        "domain.CreateOfferResponse": {
            "type": "object",
            "properties": {
                "client": {"$ref": "#/definitions/domain.Client"},
                "nextOfferNumber": {"type": "string"},
                "offer": {"$ref": "#/definitions/domain.Offer"}
            }
        },
        "domain.Offer": {
            "type": "object",
            "properties": {
                "clientId": {"type": "string"},
                "cost": {"type": "number"},
                "createdAt": {"type": "string"},
                "id": {"type": "string"},
                "margin": {"type": "number"},
                "offerNumber": {"type": "string"},
                "price": {"type": "number"},
                "status": {"$ref": "#/definitions/domain.OfferStatus"},
                "validUntil": {"type": "string"}
            }
        },
        "domain.OfferStatus": {
            "type": "string",
            "enum": ["draft", "in_review", "sent", "won", "lost"]
        },
        "domain.ColumnKey": {
            "type": "string",
            "enum": ["offerNumber", "client", "price", "cost", "margin", "createdAt", "validUntil", "status"]
        },
        "domain.ColumnsResponse": {
            "type": "object",
            "properties": {
                "columns": {"type": "array", "items": {"$ref": "#/definitions/domain.ColumnKey"}}
            }
        },
        "domain.UpdateColumnsRequest": {
            "type": "object",
            "required": ["columns"],
            "properties": {
                "columns": {"type": "array", "items": {"$ref": "#/definitions/domain.ColumnKey"}}
            }
        },
        "domain.NextOfferNumberResponse": {
            "type": "object",
            "properties": {
                "offerNumber": {"type": "string"}
            }
        },
        "domain.OfferDisplay": {
            "type": "object",
            "properties": {
                "cost": {"type": "string"},
                "createdAt": {"type": "string"},
                "margin": {"type": "string"},
                "price": {"type": "string"},
                "status": {"type": "string"},
                "validUntil": {"type": "string"}
            }
        },
        "domain.DashboardOffer": {
            "type": "object",
            "properties": {
                "clientId": {"type": "string"},
                "clientName": {"type": "string"},
                "cost": {"type": "number"},
                "createdAt": {"type": "string"},
                "display": {"$ref": "#/definitions/domain.OfferDisplay"},
                "id": {"type": "string"},
                "margin": {"type": "number"},
                "offerNumber": {"type": "string"},
                "price": {"type": "number"},
                "status": {"$ref": "#/definitions/domain.OfferStatus"},
                "validUntil": {"type": "string"}
            }
        },
        "domain.DashboardTotals": {
            "type": "object",
            "properties": {
                "cost": {"type": "number"},
                "count": {"type": "integer"},
                "margin": {"type": "number"},
                "value": {"type": "number"}
            }
        },
        "domain.TotalsDisplay": {
            "type": "object",
            "properties": {
                "cost": {"type": "string"},
                "margin": {"type": "string"},
                "value": {"type": "string"}
            }
        },
        "domain.StatusCount": {
            "type": "object",
            "properties": {
                "count": {"type": "integer"},
                "label": {"type": "string"},
                "status": {"$ref": "#/definitions/domain.OfferStatus"}
            }
        },
        "domain.DashboardView": {
            "type": "object",
            "properties": {
                "columns": {"type": "array", "items": {"$ref": "#/definitions/domain.ColumnKey"}},
                "offers": {"type": "array", "items": {"$ref": "#/definitions/domain.DashboardOffer"}},
                "statusSummary": {"type": "array", "items": {"$ref": "#/definitions/domain.StatusCount"}},
                "totals": {"$ref": "#/definitions/domain.DashboardTotals"},
                "totalsDisplay": {"$ref": "#/definitions/domain.TotalsDisplay"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Offer Tracker API",
	Description:      "Clients, offers and the offer dashboard",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
