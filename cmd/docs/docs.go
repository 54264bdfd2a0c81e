// Package docs registers the OpenAPI description of the ledger API with swag.
// Regenerate with: swag init -g cmd/ledger_backend/main.go -o cmd/docs
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
        "/tenants/{tenantID}/ledger/accounts": {
            "get": {"tags": ["accounts"], "summary": "List accounts", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["accounts"], "summary": "Create a new account", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}, "400": {"description": "Validation error"}}}
        },
        "/tenants/{tenantID}/ledger/accounts/seed": {
            "post": {"tags": ["accounts"], "summary": "Seed the default chart of accounts", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/tenants/{tenantID}/ledger/accounts/{accountID}": {
            "get": {"tags": ["accounts"], "summary": "Get an account by ID", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "404": {"description": "Account not found"}}},
            "put": {"tags": ["accounts"], "summary": "Update an account", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "409": {"description": "Account is protected"}}},
            "delete": {"tags": ["accounts"], "summary": "Delete an account", "security": [{"BearerAuth": []}], "responses": {"204": {"description": "No Content"}, "409": {"description": "Account is protected"}}}
        },
        "/tenants/{tenantID}/ledger/accounts/{accountID}/protection": {
            "get": {"tags": ["accounts"], "summary": "Get account protection status", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/tenants/{tenantID}/ledger/accounts/{accountID}/balance": {
            "get": {"tags": ["accounts"], "summary": "Get account balance", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/tenants/{tenantID}/ledger/vouchers": {
            "get": {"tags": ["vouchers"], "summary": "List vouchers", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["vouchers"], "summary": "Post a voucher", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}, "400": {"description": "Itemized validation errors with totals"}, "503": {"description": "Concurrent posting conflict, retry"}}}
        },
        "/tenants/{tenantID}/ledger/vouchers/validate": {
            "post": {"tags": ["vouchers"], "summary": "Validate voucher entries", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/tenants/{tenantID}/ledger/vouchers/{voucherID}": {
            "get": {"tags": ["vouchers"], "summary": "Get a voucher by ID", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "404": {"description": "Voucher not found"}}}
        },
        "/tenants/{tenantID}/ledger/vouchers/{voucherID}/cancel": {
            "patch": {"tags": ["vouchers"], "summary": "Cancel a voucher", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "409": {"description": "Voucher already cancelled"}}}
        },
        "/tenants/{tenantID}/ledger/reports/trial-balance": {
            "get": {"tags": ["reports"], "summary": "Generate trial balance report", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/tenants/{tenantID}/ledger/reports/profit-loss": {
            "get": {"tags": ["reports"], "summary": "Generate profit and loss report", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "400": {"description": "Missing or invalid dates"}}}
        },
        "/tenants/{tenantID}/ledger/reports/balance-sheet": {
            "get": {"tags": ["reports"], "summary": "Generate balance sheet report", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/tenants/{tenantID}/ledger/reports/general-ledger/{accountID}": {
            "get": {"tags": ["reports"], "summary": "Generate an account's general ledger", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "404": {"description": "Account not found"}}}
        },
        "/tenants/{tenantID}/ledger/reports/cash-flow": {
            "get": {"tags": ["reports"], "summary": "Generate cash flow report", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "400": {"description": "Missing or invalid dates"}}}
        },
        "/tenants/{tenantID}/ledger/reports/integrity-check": {
            "get": {"tags": ["reports"], "summary": "Run a ledger integrity check", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Fuelizer Ledger API",
	Description:      "Multi-tenant general ledger for fuel station operations.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
