// Package docs registers the OpenAPI description served under /swagger/.
// Regenerate with: swag init -g cmd/api/main.go
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/movies": {
            "get": {
                "description": "Returns every catalog title in catalog order. Any of them can be passed to /recommendations.",
                "produces": ["application/json"],
                "tags": ["movies"],
                "summary": "List catalog titles",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/recommend.TitlesResponse"}
                    }
                }
            }
        },
        "/movies/{id}/poster": {
            "get": {
                "description": "Returns the poster URL for a catalog movie by TMDB id, or the placeholder when none is available.",
                "produces": ["application/json"],
                "tags": ["movies"],
                "summary": "Resolve a movie poster",
                "parameters": [
                    {"type": "integer", "description": "TMDB movie id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/recommend.PosterResponse"}
                    },
                    "400": {
                        "description": "Invalid id",
                        "schema": {"$ref": "#/definitions/respond.ErrorBody"}
                    },
                    "404": {
                        "description": "Id not in the catalog",
                        "schema": {"$ref": "#/definitions/respond.ErrorBody"}
                    }
                }
            }
        },
        "/recommendations": {
            "get": {
                "description": "Returns up to limit movies most similar to title, best first, each with a poster URL.\nPoster lookups that fail fall back to a placeholder image and never fail the request.",
                "produces": ["application/json"],
                "tags": ["recommendations"],
                "summary": "Recommend similar movies",
                "parameters": [
                    {"type": "string", "description": "Exact catalog title", "name": "title", "in": "query", "required": true},
                    {"type": "integer", "description": "Number of results (default 10)", "name": "limit", "in": "query"},
                    {"type": "boolean", "description": "Resolve poster URLs (default true)", "name": "posters", "in": "query"}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/recommend.RecommendationsResponse"}
                    },
                    "400": {
                        "description": "Missing title or invalid parameter",
                        "schema": {"$ref": "#/definitions/respond.ErrorBody"}
                    },
                    "404": {
                        "description": "Title not in the catalog",
                        "schema": {"$ref": "#/definitions/respond.ErrorBody"}
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {"$ref": "#/definitions/respond.ErrorBody"}
                    }
                }
            }
        }
    },
    "definitions": {
        "recommend.PosterResponse": {
            "type": "object",
            "properties": {
                "movie_id": {"type": "integer", "example": 597},
                "poster_url": {"type": "string", "example": "https://image.tmdb.org/t/p/w500/9xjZS2rlVxm8SFx8kPC3aIGCOYQ.jpg"},
                "title": {"type": "string", "example": "Titanic"}
            }
        },
        "recommend.RecommendationDTO": {
            "type": "object",
            "properties": {
                "movie_id": {"type": "integer", "example": 24428},
                "poster_url": {"type": "string", "example": "https://image.tmdb.org/t/p/w500/RYMX2wcKCBAr24UyPD7xwmjaTn.jpg"},
                "score": {"type": "number", "example": 0.8},
                "title": {"type": "string", "example": "The Avengers"}
            }
        },
        "recommend.RecommendationsResponse": {
            "type": "object",
            "properties": {
                "count": {"type": "integer", "example": 1},
                "message": {"type": "string"},
                "recommendations": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/recommend.RecommendationDTO"}
                },
                "title": {"type": "string", "example": "Avatar"}
            }
        },
        "recommend.TitlesResponse": {
            "type": "object",
            "properties": {
                "count": {"type": "integer", "example": 2},
                "titles": {
                    "type": "array",
                    "items": {"type": "string"},
                    "example": ["Avatar", "Titanic"]
                }
            }
        },
        "respond.ErrorBody": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Movie Recommender API",
	Description:      "Content-based movie recommendations from a precomputed similarity catalog, with TMDB posters.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
