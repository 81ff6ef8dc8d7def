// Package docs registers the OpenAPI document of the API with swag.
// Keep it in step with the route annotations in the handler packages.
package docs

import "github.com/swaggo/swag/v2"

const docTemplate = `{
  "openapi": "3.1.0",
  "info": {
    "title": "{{.Title}}",
    "description": "{{escape .Description}}",
    "version": "{{.Version}}"
  },
  "components": {
    "securitySchemes": {
      "BearerAuth": {"type": "http", "scheme": "bearer"}
    },
    "schemas": {
      "AnalyzeInput": {
        "type": "object",
        "required": ["text"],
        "properties": {
          "text": {"type": "string", "maxLength": 10000, "example": "yaar this movie is bahut accha"},
          "detailed": {"type": "boolean"}
        }
      },
      "BatchInput": {
        "type": "object",
        "required": ["texts"],
        "properties": {
          "texts": {"type": "array", "minItems": 1, "maxItems": 256, "items": {"type": "string"}}
        }
      },
      "CorrectionInput": {
        "type": "object",
        "required": ["text", "correct_language"],
        "properties": {
          "text": {"type": "string", "example": "mai aaj bahut khush hai"},
          "signature": {"type": "string"},
          "detected_language": {"type": "string", "example": "hin"},
          "correct_language": {"type": "string", "example": "mar"},
          "annotator_id": {"type": "string"},
          "comment": {"type": "string"}
        }
      },
      "TextInput": {
        "type": "object",
        "required": ["text"],
        "properties": {"text": {"type": "string"}}
      },
      "ReloadInput": {
        "type": "object",
        "properties": {"file": {"type": "string", "example": "hindi.json"}}
      },
      "Decision": {
        "type": "object",
        "properties": {
          "language": {"type": "string", "example": "hin"},
          "languages": {"type": "array", "items": {"type": "string"}},
          "script": {"type": "string", "example": "Latin"},
          "confidence": {"type": "number", "example": 0.82},
          "method": {"type": "string", "example": "pattern"},
          "is_code_mixed": {"type": "boolean"},
          "code_mixing_score": {"type": "number"},
          "needs_conversion": {"type": "boolean"}
        }
      }
    }
  },
  "paths": {
    "/codemix/analyze": {
      "post": {
        "tags": ["Codemix"],
        "summary": "Identify the language of a text",
        "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/AnalyzeInput"}}}},
        "responses": {"200": {"description": "decision, or the detailed result", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Decision"}}}}}
      }
    },
    "/codemix/analyze/batch": {
      "post": {
        "tags": ["Codemix"],
        "summary": "Identify the languages of many texts",
        "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/BatchInput"}}}},
        "responses": {"200": {"description": "one result per text, in order"}}
      }
    },
    "/codemix/corrections": {
      "post": {
        "tags": ["Codemix"],
        "summary": "Submit the correct language for a text",
        "security": [{"BearerAuth": []}],
        "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/CorrectionInput"}}}},
        "responses": {"200": {"description": "receipt"}, "401": {"description": "missing or invalid token"}}
      }
    },
    "/codemix/suggestions": {
      "post": {
        "tags": ["Codemix"],
        "summary": "Languages users proposed for texts shaped like this one",
        "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/TextInput"}}}},
        "responses": {"200": {"description": "suggestions"}}
      }
    },
    "/codemix/stats": {
      "get": {"tags": ["Codemix"], "summary": "Cache and engine statistics", "responses": {"200": {"description": "statistics"}}}
    },
    "/codemix/dictionaries/{code}": {
      "post": {
        "tags": ["Codemix"],
        "summary": "Install or replace one romanized dictionary",
        "security": [{"BearerAuth": []}],
        "parameters": [{"name": "code", "in": "path", "required": true, "schema": {"type": "string"}}],
        "responses": {"200": {"description": "loaded languages and version"}}
      }
    },
    "/codemix/dictionaries/reload": {
      "post": {
        "tags": ["Codemix"],
        "summary": "Reload dictionaries from the dictionary directory",
        "security": [{"BearerAuth": []}],
        "requestBody": {"content": {"application/json": {"schema": {"$ref": "#/components/schemas/ReloadInput"}}}},
        "responses": {"200": {"description": "loaded languages and version"}}
      }
    },
    "/meta/health": {"get": {"tags": ["Meta"], "summary": "Liveness", "responses": {"200": {"description": "ok"}}}},
    "/meta/ready": {"get": {"tags": ["Meta"], "summary": "Readiness of the configured stores", "responses": {"200": {"description": "probes"}}}},
    "/meta/version": {"get": {"tags": ["Meta"], "summary": "Build information", "responses": {"200": {"description": "build"}}}},
    "/meta/engine": {"get": {"tags": ["Meta"], "summary": "Oracle and dictionaries the engine runs with", "responses": {"200": {"description": "engine"}}}}
  }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	BasePath:         "/api/v1",
	Title:            "Codemix API",
	Description:      "Language identification for code mixed and romanized Indic text",
	InfoInstanceName: "codemix",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
