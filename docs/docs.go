// Package docs holds the OpenAPI description of the eKYC API.
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
        "/": {
            "get": {
                "produces": ["application/json"],
                "summary": "Service banner",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.MessageResponse"}}
                }
            }
        },
        "/api/health": {
            "get": {
                "produces": ["application/json"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.HealthResponse"}}
                }
            }
        },
        "/ekyc": {
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "summary": "Extract and merge both faces of an identity card",
                "parameters": [
                    {"type": "file", "name": "id_front", "in": "formData", "required": true},
                    {"type": "file", "name": "id_back", "in": "formData", "required": true},
                    {"type": "file", "name": "selfie", "in": "formData"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.EKYCResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/api/document": {
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "summary": "Extract the fields of a single document image",
                "parameters": [
                    {"type": "file", "name": "document", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.DocumentResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/api/extract": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "summary": "Extract the fields of an OCR token stream",
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.ExtractRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.RecordData"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/api/ekyc/tokens": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "summary": "Extract and merge the token streams of both card faces",
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.MergeTokensRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.EKYCResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "models.MessageResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}}
        },
        "models.HealthResponse": {
            "type": "object",
            "properties": {"ok": {"type": "boolean"}, "engine": {"type": "string"}}
        },
        "models.ErrorResponse": {
            "type": "object",
            "properties": {"status": {"type": "string"}, "message": {"type": "string"}}
        },
        "models.ExtractRequest": {
            "type": "object",
            "properties": {
                "tokens": {"type": "array", "items": {"type": "string"}},
                "confidence": {"type": "number"}
            }
        },
        "models.MergeTokensRequest": {
            "type": "object",
            "properties": {
                "front": {"$ref": "#/definitions/models.ExtractRequest"},
                "back": {"$ref": "#/definitions/models.ExtractRequest"}
            }
        },
        "models.RecordData": {
            "type": "object",
            "properties": {
                "document_type": {"type": "string", "enum": ["National ID", "Passport", "Unknown"]},
                "full_name": {"type": "string"},
                "first_name": {"type": "string"},
                "middle_name": {"type": "string"},
                "last_name": {"type": "string"},
                "id_number": {"type": "string"},
                "passport_number": {"type": "string"},
                "date_of_birth": {"type": "string"},
                "place_of_birth": {"type": "string"},
                "gender": {"type": "string"},
                "date_of_issue": {"type": "string"},
                "date_of_expiry": {"type": "string"},
                "card_color": {"type": "string"},
                "holder_type": {"type": "string"},
                "confidence": {"type": "number"},
                "raw_text": {"type": "string"}
            }
        },
        "models.DocumentResponse": {
            "allOf": [
                {"$ref": "#/definitions/models.RecordData"},
                {"type": "object", "properties": {"extracted_texts": {"type": "array", "items": {"type": "string"}}}}
            ]
        },
        "models.OCRData": {
            "type": "object",
            "properties": {
                "document_type": {"type": "string"},
                "full_name": {"type": "string"},
                "first_name": {"type": "string"},
                "middle_name": {"type": "string"},
                "last_name": {"type": "string"},
                "id_number": {"type": "string"},
                "passport_number": {"type": "string"},
                "date_of_birth": {"type": "string"},
                "place_of_birth": {"type": "string"},
                "gender": {"type": "string"},
                "date_of_issue": {"type": "string"},
                "date_of_expiry": {"type": "string"},
                "card_color": {"type": "string"},
                "holder_type": {"type": "string"},
                "raw_text_front": {"type": "string"},
                "raw_text_back": {"type": "string"},
                "confidence_front": {"type": "number"},
                "confidence_back": {"type": "number"},
                "extracted_texts": {"type": "array", "items": {"type": "string"}}
            }
        },
        "models.SideCheckData": {
            "type": "object",
            "properties": {
                "id_number_match": {"type": "boolean"},
                "name_similarity": {"type": "number"},
                "name_match": {"type": "boolean"},
                "consistent": {"type": "boolean"}
            }
        },
        "models.EKYCResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "ocr_data": {"$ref": "#/definitions/models.OCRData"},
                "is_expired": {"type": "boolean"},
                "side_check": {"$ref": "#/definitions/models.SideCheckData"}
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
	Title:            "eKYC OCR API",
	Description:      "Field extraction for Brunei identity cards and passports.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
