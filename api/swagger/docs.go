// Package swagger registers the API description served under /swagger.
// Regenerate with: swag init -g cmd/api/main.go -o api/swagger
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
        "/api/settings/{user_id}": {
            "get": {"tags": ["settings"], "summary": "Get FOP settings", "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "user_id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}},
            "patch": {"tags": ["settings"], "summary": "Update FOP settings", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "user_id", "in": "path", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/api/tax/calculate": {
            "get": {"tags": ["tax"], "summary": "Calculate taxes", "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "user_id", "in": "query", "required": true},
                    {"type": "string", "name": "annual_income", "in": "query"},
                    {"type": "string", "name": "monthly_income", "in": "query"},
                    {"type": "string", "name": "period", "in": "query"}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}}
        },
        "/api/tax/calendar": {
            "get": {"tags": ["tax"], "summary": "Payment calendar", "produces": ["application/json"],
                "parameters": [{"type": "integer", "name": "group", "in": "query"}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/api/transactions": {
            "get": {"tags": ["transactions"], "summary": "List transactions", "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "user_id", "in": "query", "required": true},
                    {"type": "string", "name": "start_date", "in": "query"},
                    {"type": "string", "name": "end_date", "in": "query"},
                    {"type": "string", "name": "type", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"},
                    {"type": "integer", "name": "offset", "in": "query"}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}},
            "post": {"tags": ["transactions"], "summary": "Create transaction", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "422": {"description": "Rate unavailable, retry with manual_rate"}}}
        },
        "/api/transactions/summary": {
            "get": {"tags": ["statistics"], "summary": "Ledger summary", "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "user_id", "in": "query", "required": true},
                    {"type": "string", "name": "end_date", "in": "query"}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/api/transactions/{id}": {
            "get": {"tags": ["transactions"], "summary": "Get transaction", "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true},
                    {"type": "string", "name": "user_id", "in": "query", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "patch": {"tags": ["transactions"], "summary": "Patch transaction", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true},
                    {"type": "string", "name": "user_id", "in": "query", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}, "422": {"description": "Unprocessable Entity"}}},
            "delete": {"tags": ["transactions"], "summary": "Delete transaction", "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true},
                    {"type": "string", "name": "user_id", "in": "query", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/api/categories": {
            "get": {"tags": ["categories"], "summary": "List categories", "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "user_id", "in": "query"}],
                "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["categories"], "summary": "Create category", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/api/categories/{id}": {
            "patch": {"tags": ["categories"], "summary": "Rename category", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true},
                    {"type": "string", "name": "user_id", "in": "query", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "delete": {"tags": ["categories"], "summary": "Delete category", "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true},
                    {"type": "string", "name": "user_id", "in": "query", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/api/profile": {
            "post": {"tags": ["profile"], "summary": "Create profile", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "409": {"description": "Conflict"}}}
        },
        "/api/profile/{user_id}": {
            "get": {"tags": ["profile"], "summary": "Get profile", "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "user_id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "patch": {"tags": ["profile"], "summary": "Update profile", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "user_id", "in": "path", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}},
            "delete": {"tags": ["profile"], "summary": "Delete profile", "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "user_id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/api/statistics/periods": {
            "get": {"tags": ["statistics"], "summary": "Totals per period", "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "user_id", "in": "query", "required": true},
                    {"type": "string", "name": "group_by", "in": "query"},
                    {"type": "string", "name": "start_date", "in": "query", "required": true},
                    {"type": "string", "name": "end_date", "in": "query", "required": true}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/api/audit-logs": {
            "get": {"tags": ["audit"], "summary": "Get audit logs", "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "user_id", "in": "query", "required": true},
                    {"type": "integer", "name": "limit", "in": "query"},
                    {"type": "integer", "name": "offset", "in": "query"}],
                "responses": {"200": {"description": "OK"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "FOP Assistant API",
	Description:      "Tax calculation and multi-currency ledger for Ukrainian sole proprietors (FOP).",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
