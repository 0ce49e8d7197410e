// Package docs registers the swagger description served at /swagger/*.
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
        "/register": {
            "get": {"produces": ["text/html"], "tags": ["auth"], "summary": "Registration page", "responses": {"200": {"description": "OK"}}},
            "post": {
                "consumes": ["application/x-www-form-urlencoded"],
                "produces": ["text/plain"],
                "tags": ["auth"],
                "summary": "Register a new user",
                "parameters": [
                    {"type": "string", "description": "Username", "name": "username", "in": "formData", "required": true},
                    {"type": "string", "description": "Password (at most 72 bytes)", "name": "password", "in": "formData", "required": true}
                ],
                "responses": {
                    "303": {"description": "See Other"},
                    "409": {"description": "user already exists", "schema": {"type": "string"}},
                    "422": {"description": "validation failure", "schema": {"type": "string"}}
                }
            }
        },
        "/login": {
            "get": {"produces": ["text/html"], "tags": ["auth"], "summary": "Login page", "responses": {"200": {"description": "OK"}}},
            "post": {
                "consumes": ["application/x-www-form-urlencoded"],
                "produces": ["text/plain"],
                "tags": ["auth"],
                "summary": "Login",
                "parameters": [
                    {"type": "string", "description": "Username", "name": "username", "in": "formData", "required": true},
                    {"type": "string", "description": "Password", "name": "password", "in": "formData", "required": true}
                ],
                "responses": {
                    "303": {"description": "See Other"},
                    "401": {"description": "invalid credentials", "schema": {"type": "string"}}
                }
            }
        },
        "/logout": {
            "post": {"tags": ["auth"], "summary": "Logout", "responses": {"303": {"description": "See Other"}}}
        },
        "/dashboard": {
            "get": {"produces": ["text/html"], "tags": ["blog"], "summary": "Blog feed", "responses": {"200": {"description": "OK"}}}
        },
        "/create": {
            "post": {
                "consumes": ["application/x-www-form-urlencoded"],
                "tags": ["blog"],
                "summary": "Create a post",
                "parameters": [
                    {"type": "string", "description": "Title", "name": "title", "in": "formData", "required": true},
                    {"type": "string", "description": "Body", "name": "content", "in": "formData"}
                ],
                "responses": {
                    "303": {"description": "See Other"},
                    "422": {"description": "validation failure", "schema": {"type": "string"}}
                }
            }
        },
        "/post/{id}": {
            "get": {
                "produces": ["text/html"],
                "tags": ["blog"],
                "summary": "View a post",
                "parameters": [{"type": "string", "description": "Post id", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "not found", "schema": {"type": "string"}}}
            }
        },
        "/edit/{id}": {
            "get": {
                "produces": ["text/html"],
                "tags": ["blog"],
                "summary": "Edit page",
                "parameters": [{"type": "string", "description": "Post id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "not your resource", "schema": {"type": "string"}},
                    "404": {"description": "not found", "schema": {"type": "string"}}
                }
            },
            "post": {
                "consumes": ["application/x-www-form-urlencoded"],
                "tags": ["blog", "todo"],
                "summary": "Update a post (blog) or rename a task (todo)",
                "parameters": [{"type": "string", "description": "Resource id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "303": {"description": "See Other"},
                    "403": {"description": "not your resource", "schema": {"type": "string"}},
                    "404": {"description": "not found", "schema": {"type": "string"}}
                }
            }
        },
        "/delete/{id}": {
            "post": {
                "tags": ["blog", "notes", "todo"],
                "summary": "Delete an owned resource",
                "parameters": [{"type": "string", "description": "Resource id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "303": {"description": "See Other"},
                    "403": {"description": "not your resource", "schema": {"type": "string"}},
                    "404": {"description": "not found", "schema": {"type": "string"}}
                }
            }
        },
        "/notes": {
            "get": {"produces": ["text/html"], "tags": ["notes"], "summary": "My notes", "responses": {"200": {"description": "OK"}}},
            "post": {
                "consumes": ["application/x-www-form-urlencoded"],
                "tags": ["notes"],
                "summary": "Add a note",
                "parameters": [{"type": "string", "description": "Note text", "name": "note", "in": "formData", "required": true}],
                "responses": {"303": {"description": "See Other"}}
            }
        },
        "/notes/{id}/edit": {
            "get": {
                "produces": ["text/html"],
                "tags": ["notes"],
                "summary": "Edit page",
                "parameters": [{"type": "string", "description": "Note id", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "403": {"description": "not your resource"}, "404": {"description": "not found"}}
            },
            "post": {
                "consumes": ["application/x-www-form-urlencoded"],
                "tags": ["notes"],
                "summary": "Update a note",
                "parameters": [
                    {"type": "string", "description": "Note id", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "Note text", "name": "note", "in": "formData", "required": true}
                ],
                "responses": {"303": {"description": "See Other"}, "403": {"description": "not your resource"}, "404": {"description": "not found"}}
            }
        },
        "/add": {
            "post": {
                "consumes": ["application/x-www-form-urlencoded"],
                "tags": ["todo"],
                "summary": "Add a task",
                "parameters": [{"type": "string", "description": "Task text", "name": "task", "in": "formData", "required": true}],
                "responses": {"303": {"description": "See Other"}}
            }
        },
        "/complete/{id}": {
            "post": {
                "tags": ["todo"],
                "summary": "Complete a task",
                "parameters": [{"type": "string", "description": "Task id", "name": "id", "in": "path", "required": true}],
                "responses": {"303": {"description": "See Other"}, "403": {"description": "not your resource"}, "404": {"description": "not found"}}
            }
        },
        "/reopen/{id}": {
            "post": {
                "tags": ["todo"],
                "summary": "Reopen a task",
                "parameters": [{"type": "string", "description": "Task id", "name": "id", "in": "path", "required": true}],
                "responses": {"303": {"description": "See Other"}}
            }
        },
        "/health": {
            "get": {"produces": ["application/json"], "tags": ["health"], "summary": "Liveness probe", "responses": {"200": {"description": "OK"}}}
        },
        "/health/ready": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Readiness probe",
                "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}
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
	Title:            "inkpad web apps",
	Description:      "Blog, notes and to-do applications sharing session authentication and ownership checks.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
