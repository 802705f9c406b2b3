package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Defense Scheduler API",
        "description": "Constrained multi-objective scheduling engine for thesis/interim defense sessions",
        "version": "0.1.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {
                        "description": "Ready"
                    }
                }
            }
        },
        "/api/v1/algorithms": {
            "get": {
                "summary": "List registered algorithm tags and their published parameters",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/api/v1/algorithms/{tag}/run": {
            "post": {
                "summary": "Execute an algorithm run",
                "parameters": [
                    {
                        "name": "tag",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "unknown tag or invalid parameters"
                    }
                }
            }
        },
        "/api/v1/runs/{id}": {
            "get": {
                "summary": "Fetch a persisted run record",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "run not found"
                    }
                }
            }
        },
        "/api/v1/schedule": {
            "get": {
                "summary": "List the persisted schedule, optionally filtered by is_makeup",
                "parameters": [
                    {
                        "name": "is_makeup",
                        "in": "query",
                        "required": false,
                        "type": "boolean"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/api/v1/progress": {
            "get": {
                "summary": "Subscribe to the caller's algorithm progress stream (server-sent events)",
                "responses": {
                    "200": {
                        "description": "text/event-stream"
                    }
                }
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
