// Package docs serves the swagger document of the api. Regenerate it from the handler
// annotations with `swag init -g app/api/main.go -o app/api/docs`.
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
        "/auction": {"get": {"tags": ["auction"], "summary": "Get auction status", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}},
        "/auction/minimumBid": {"get": {"tags": ["auction"], "summary": "Get minimum bid", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}},
        "/auction/events": {"get": {"tags": ["auction"], "summary": "List auction events", "produces": ["application/json"], "parameters": [{"type": "integer", "name": "offset", "in": "query"}, {"type": "integer", "name": "limit", "in": "query"}], "responses": {"200": {"description": "OK"}}}},
        "/auction/events/recent": {"get": {"tags": ["auction"], "summary": "List recent auction events", "produces": ["application/json"], "parameters": [{"type": "integer", "name": "limit", "in": "query"}], "responses": {"200": {"description": "OK"}}}},
        "/auction/configure": {"post": {"security": [{"ApiKeyAuth": []}], "tags": ["auction"], "summary": "Set minimum bid increase", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "403": {"description": "Forbidden"}, "409": {"description": "Conflict"}}}},
        "/auction/beneficiary": {"post": {"security": [{"ApiKeyAuth": []}], "tags": ["auction"], "summary": "Set beneficiary", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "403": {"description": "Forbidden"}}}},
        "/auction/start": {"post": {"security": [{"ApiKeyAuth": []}], "tags": ["auction"], "summary": "Start auction", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "403": {"description": "Forbidden"}, "409": {"description": "Conflict"}}}},
        "/auction/bid": {"post": {"security": [{"ApiKeyAuth": []}], "tags": ["auction"], "summary": "Place a bid", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "402": {"description": "Payment Required"}, "409": {"description": "Conflict"}, "422": {"description": "Unprocessable Entity"}}}},
        "/auction/cancel": {"post": {"security": [{"ApiKeyAuth": []}], "tags": ["auction"], "summary": "Cancel auction", "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "409": {"description": "Conflict"}}}},
        "/auction/settle": {"post": {"security": [{"ApiKeyAuth": []}], "tags": ["auction"], "summary": "Settle auction", "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}}}},
        "/auction/items/withdraw": {"post": {"security": [{"ApiKeyAuth": []}], "tags": ["auction"], "summary": "Withdraw a held item", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}, "409": {"description": "Conflict"}}}},
        "/access/holder": {"get": {"tags": ["access"], "summary": "Get role holder", "responses": {"200": {"description": "OK"}}}},
        "/access/transfer": {"post": {"security": [{"ApiKeyAuth": []}], "tags": ["access"], "summary": "Transfer role", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "403": {"description": "Forbidden"}}}},
        "/access/renounce": {"post": {"security": [{"ApiKeyAuth": []}], "tags": ["access"], "summary": "Renounce role", "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}},
        "/ledger/deposit": {"post": {"tags": ["ledger"], "summary": "Credit a deposit", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "409": {"description": "Conflict"}}}},
        "/ledger/{address}": {"get": {"tags": ["ledger"], "summary": "Get balance", "parameters": [{"type": "string", "name": "address", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}},
        "/ledger/{address}/withdraw": {"post": {"tags": ["ledger"], "summary": "Withdraw balance", "parameters": [{"type": "string", "name": "address", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}},
        "/custody/items": {
            "get": {"tags": ["custody"], "summary": "List held items", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"ApiKeyAuth": []}], "tags": ["custody"], "summary": "Deposit an item", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "403": {"description": "Forbidden"}, "409": {"description": "Conflict"}}}
        },
        "/auth/nonce/{address}": {"get": {"tags": ["auth"], "summary": "Issue sign-in nonce", "parameters": [{"type": "string", "name": "address", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}},
        "/auth/sign": {"post": {"tags": ["auth"], "summary": "Sign in", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}},
        "/auth/signingMsgTemplate": {"get": {"tags": ["auth"], "summary": "Get signing message template", "responses": {"200": {"description": "OK"}}}},
        "/ens/resolve/{name}": {"get": {"tags": ["ens"], "summary": "Resolve an ens name", "parameters": [{"type": "string", "name": "name", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}}},
        "/ens/reverse-resolve/{address}": {"get": {"tags": ["ens"], "summary": "Reverse resolve an address", "parameters": [{"type": "string", "name": "address", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}},
        "/health": {"get": {"tags": ["health"], "summary": "Liveness of storage and cache", "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}}}
    },
    "securityDefinitions": {
        "ApiKeyAuth": {
            "description": "retrive token from #/auth/post_auth_sign and apply with ` + "`" + `bearer {token}` + "`" + `",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "",
	Schemes:          []string{},
	Title:            "Auction API",
	Description:      "English auction with pull-based refunds.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
