// Package docs holds the swagger document served under /api/docs
package docs

import "github.com/swaggo/swag/v2"

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
        "/crawls": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Crawls"],
                "summary": "List recent crawl tasks",
                "parameters": [
                    {"type": "string", "description": "Only tasks for this product", "name": "product_id", "in": "query"},
                    {"type": "integer", "description": "Max tasks (1-20), default 20", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "ok", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Task"}}},
                    "422": {"description": "limit out of range", "schema": {"$ref": "#/definitions/httpkit.Envelope"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Crawls"],
                "summary": "Start a crawl task",
                "description": "Starts a background harvest for one product and returns its task id",
                "parameters": [
                    {"description": "Crawl request", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.StartInput"}}
                ],
                "responses": {
                    "202": {"description": "accepted", "schema": {"$ref": "#/definitions/domain.StartResp"}},
                    "409": {"description": "product already crawling", "schema": {"$ref": "#/definitions/httpkit.Envelope"}},
                    "429": {"description": "start rate exceeded", "schema": {"$ref": "#/definitions/httpkit.Envelope"}}
                }
            }
        },
        "/crawls/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Crawls"],
                "summary": "Get a crawl task with its result",
                "parameters": [
                    {"type": "string", "description": "Task id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "ok", "schema": {"$ref": "#/definitions/domain.Task"}},
                    "404": {"description": "unknown task", "schema": {"$ref": "#/definitions/httpkit.Envelope"}}
                }
            }
        },
        "/schedule/run": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Schedule"],
                "summary": "Run the daily crawl now",
                "description": "Starts a task for every scheduled product not yet crawled today",
                "responses": {
                    "200": {"description": "ok", "schema": {"$ref": "#/definitions/domain.RunReport"}},
                    "401": {"description": "missing or bad token", "schema": {"$ref": "#/definitions/httpkit.Envelope"}}
                }
            }
        },
        "/schedule/history": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Schedule"],
                "summary": "Task counts per day",
                "parameters": [
                    {"type": "integer", "description": "Window in days (1-90), default 7", "name": "days", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "ok", "schema": {"$ref": "#/definitions/domain.HistoryResp"}}
                }
            }
        },
        "/meta/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Meta"],
                "summary": "Health check",
                "responses": {"200": {"description": "ok", "schema": {"$ref": "#/definitions/http.HealthResponse"}}}
            }
        },
        "/meta/version": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Meta"],
                "summary": "Build and version info",
                "responses": {"200": {"description": "ok", "schema": {"$ref": "#/definitions/version.BuildInfo"}}}
            }
        },
        "/meta/service": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Meta"],
                "summary": "Service info, uptime and next scheduled crawl",
                "responses": {"200": {"description": "ok", "schema": {"$ref": "#/definitions/http.ServiceResponse"}}}
            }
        }
    },
    "definitions": {
        "domain.StartInput": {
            "type": "object",
            "required": ["product_id"],
            "properties": {
                "product_id": {"type": "string", "example": "10032280299715"},
                "product_url": {"type": "string", "example": "https://item.jd.com/10032280299715.html"},
                "max_pages": {"type": "integer", "example": 10},
                "days_limit": {"type": "integer", "example": 30}
            }
        },
        "domain.StartResp": {
            "type": "object",
            "properties": {
                "task_id": {"type": "string"},
                "status": {"type": "string", "example": "running"}
            }
        },
        "domain.Task": {
            "type": "object",
            "properties": {
                "task_id": {"type": "string"},
                "product_id": {"type": "string"},
                "product_url": {"type": "string"},
                "max_pages": {"type": "integer"},
                "days_limit": {"type": "integer"},
                "trigger": {"type": "string", "enum": ["api", "schedule"]},
                "status": {"type": "string", "enum": ["running", "completed", "failed"]},
                "total_comments": {"type": "integer"},
                "processed_comments": {"type": "integer"},
                "error": {"type": "string"},
                "started_at": {"type": "string", "format": "date-time"},
                "finished_at": {"type": "string", "format": "date-time"},
                "result": {"$ref": "#/definitions/domain.Result"}
            }
        },
        "domain.Result": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "task_id": {"type": "string"},
                "product_id": {"type": "string"},
                "total_comments": {"type": "integer"},
                "processed_comments": {"type": "integer"},
                "comments": {"type": "array", "items": {"$ref": "#/definitions/domain.Comment"}},
                "product": {"$ref": "#/definitions/jd.ProductInfo"},
                "error": {"type": "string"},
                "crawl_time": {"type": "string", "format": "date-time"}
            }
        },
        "domain.Comment": {
            "type": "object",
            "properties": {
                "comment_id": {"type": "string"},
                "user_id": {"type": "string"},
                "comment_content": {"type": "string"},
                "comment_time": {"type": "string", "example": "2025-09-01 10:00:00"},
                "star_rating": {"type": "integer", "minimum": 1, "maximum": 5},
                "useful_vote_count": {"type": "integer"},
                "reply_count": {"type": "integer"},
                "user_level": {"type": "string"},
                "user_level_name": {"type": "string"},
                "phone_model": {"type": "string"},
                "product_color": {"type": "string"},
                "product_size": {"type": "string"},
                "is_mobile": {"type": "boolean"},
                "is_purchased": {"type": "boolean"},
                "images": {"type": "array", "items": {"type": "string"}},
                "raw_data": {"type": "object"},
                "sentiment": {"type": "string", "enum": ["positive", "negative", "neutral"]},
                "keywords": {"type": "array", "items": {"type": "string"}}
            }
        },
        "jd.ProductInfo": {
            "type": "object",
            "properties": {
                "product_id": {"type": "string"},
                "product_url": {"type": "string"},
                "title": {"type": "string"},
                "price": {"type": "string"},
                "status": {"type": "string", "enum": ["active", "unknown"]}
            }
        },
        "domain.RunReport": {
            "type": "object",
            "properties": {
                "executed_at": {"type": "string", "format": "date-time"},
                "products_processed": {"type": "integer"},
                "results": {"type": "array", "items": {"$ref": "#/definitions/domain.ProductResult"}}
            }
        },
        "domain.ProductResult": {
            "type": "object",
            "properties": {
                "product_id": {"type": "string"},
                "status": {"type": "string", "enum": ["started", "skipped", "failed"]},
                "task_id": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "domain.HistoryResp": {
            "type": "object",
            "properties": {
                "days": {"type": "integer"},
                "history": {"type": "array", "items": {"$ref": "#/definitions/domain.DayStats"}}
            }
        },
        "domain.DayStats": {
            "type": "object",
            "properties": {
                "date": {"type": "string", "example": "2025-09-01"},
                "total": {"type": "integer"},
                "completed": {"type": "integer"},
                "failed": {"type": "integer"},
                "running": {"type": "integer"},
                "total_comments": {"type": "integer"}
            }
        },
        "http.HealthResponse": {
            "type": "object",
            "properties": {
                "ok": {"type": "boolean", "example": true},
                "service": {"type": "string", "example": "reviewharvest-api"},
                "started": {"type": "string"},
                "now": {"type": "string"}
            }
        },
        "http.ServiceResponse": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "started": {"type": "string"},
                "uptime": {"type": "integer"},
                "next_crawl": {"type": "string"},
                "modules": {"type": "array", "items": {"type": "string"}}
            }
        },
        "version.BuildInfo": {
            "type": "object",
            "properties": {
                "service": {"type": "string"},
                "version": {"type": "string"},
                "commit": {"type": "string"},
                "date": {"type": "string"}
            }
        },
        "httpkit.Envelope": {
            "type": "object",
            "properties": {
                "status_code": {"type": "integer"},
                "status": {"type": "string"},
                "code": {"type": "integer"},
                "error": {"type": "string"},
                "request_id": {"type": "string"},
                "data": {}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Bearer token for the schedule trigger",
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
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "ReviewHarvest API",
	Description:      "Fetches JD product reviews, filters them by recency and annotates sentiment and keywords.",
	InfoInstanceName: "api",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
