// Package docs registers the OpenAPI description served at /swagger.
// Regenerate the paths section with `swag init -g cmd/api/main.go`.
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
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/auth/register": {"post": {"tags": ["auth"], "summary": "Register a new user", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}},
        "/auth/login": {"post": {"tags": ["auth"], "summary": "Login", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}},
        "/auth/me": {"get": {"tags": ["auth"], "summary": "Current user", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}},
        "/users/search": {"get": {"tags": ["users"], "summary": "Search users", "responses": {"200": {"description": "OK"}}}},
        "/users/profile": {"put": {"tags": ["users"], "summary": "Update own profile", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}},
        "/users/{username}": {"get": {"tags": ["users"], "summary": "Get profile", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/users/{username}/follow": {"put": {"tags": ["users"], "summary": "Follow / unfollow", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}}},
        "/users/{username}/followers": {"get": {"tags": ["users"], "summary": "List followers", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/users/{username}/following": {"get": {"tags": ["users"], "summary": "List following", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/posts": {"post": {"tags": ["posts"], "summary": "Create post", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}},
        "/posts/feed": {"get": {"tags": ["posts"], "summary": "Feed", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/posts/user/{username}": {"get": {"tags": ["posts"], "summary": "Posts by user", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/posts/{id}": {
            "get": {"tags": ["posts"], "summary": "Get post", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "delete": {"tags": ["posts"], "summary": "Delete post", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}}
        },
        "/posts/{id}/like": {"put": {"tags": ["posts"], "summary": "Like / unlike", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/posts/{id}/comment": {"post": {"tags": ["posts"], "summary": "Comment", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Social Network API",
	Description:      "Accounts, follow graph, posts, likes, comments and feeds.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
