package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Timetable Wizard API",
        "description": "Constraint and fixed-slot wizard for school timetables, plus weekly load audits.",
        "version": "0.1.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "tags": [
        {
            "name": "TimeGrid",
            "description": "Bell schedules per school level"
        },
        {
            "name": "Wizard",
            "description": "Constraint and fixed-slot wizard sessions"
        },
        {
            "name": "Audit",
            "description": "Weekly load report audits"
        }
    ],
    "paths": {
        "/timegrid/{level}": {
            "get": {
                "tags": [
                    "TimeGrid"
                ],
                "summary": "Weekly grid of a school level",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Unknown level",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "level",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "Anaokulu, İlkokul or Ortaokul"
                    }
                ]
            }
        },
        "/wizard/sessions": {
            "post": {
                "tags": [
                    "Wizard"
                ],
                "summary": "Start a wizard session",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "201": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/wizard/sessions/{id}": {
            "get": {
                "tags": [
                    "Wizard"
                ],
                "summary": "Get a wizard session",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "403": {
                        "description": "Session belongs to another user",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "Session ID"
                    }
                ]
            },
            "delete": {
                "tags": [
                    "Wizard"
                ],
                "summary": "Delete a wizard session",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "Session ID"
                    }
                ]
            }
        },
        "/wizard/sessions/{id}/cursor": {
            "put": {
                "tags": [
                    "Wizard"
                ],
                "summary": "Move the wizard selection",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "Session ID"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/UpdateCursorRequest"
                        }
                    }
                ]
            }
        },
        "/wizard/sessions/{id}/constraints/toggle": {
            "post": {
                "tags": [
                    "Wizard"
                ],
                "summary": "Toggle a constraint cell",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "409": {
                        "description": "SESSION_VERSION_CONFLICT",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "422": {
                        "description": "INVALID_PERIOD",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "Session ID"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ToggleConstraintRequest"
                        }
                    }
                ]
            }
        },
        "/wizard/sessions/{id}/constraints/bulk": {
            "post": {
                "tags": [
                    "Wizard"
                ],
                "summary": "Set every cell of an entity to one kind",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "409": {
                        "description": "SESSION_VERSION_CONFLICT",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "Session ID"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/BulkSetConstraintsRequest"
                        }
                    }
                ]
            }
        },
        "/wizard/sessions/{id}/constraints/lookup": {
            "get": {
                "tags": [
                    "Wizard"
                ],
                "summary": "Find the constraint of one cell",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "Session ID"
                    },
                    {
                        "name": "entity_type",
                        "in": "query",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "entity_id",
                        "in": "query",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "day",
                        "in": "query",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "period",
                        "in": "query",
                        "required": true,
                        "type": "string"
                    }
                ]
            }
        },
        "/wizard/sessions/{id}/constraints/{entityId}": {
            "delete": {
                "tags": [
                    "Wizard"
                ],
                "summary": "Remove every constraint of an entity",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "Session ID"
                    },
                    {
                        "name": "entityId",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "expected_version",
                        "in": "query",
                        "type": "integer",
                        "description": "Expected session version"
                    }
                ]
            }
        },
        "/wizard/sessions/{id}/fixed-slots": {
            "post": {
                "tags": [
                    "Wizard"
                ],
                "summary": "Pin a lesson",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "201": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "409": {
                        "description": "CLASS_SLOT_TAKEN or TEACHER_SLOT_TAKEN; meta.conflict holds the existing slot",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "422": {
                        "description": "INVALID_PERIOD",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "Session ID"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/AddFixedSlotRequest"
                        }
                    }
                ]
            }
        },
        "/wizard/sessions/{id}/fixed-slots/by-teacher": {
            "get": {
                "tags": [
                    "Wizard"
                ],
                "summary": "Pinned lessons grouped by teacher",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "Session ID"
                    }
                ]
            }
        },
        "/wizard/sessions/{id}/fixed-slots/{slotId}": {
            "delete": {
                "tags": [
                    "Wizard"
                ],
                "summary": "Unpin a lesson",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "Session ID"
                    },
                    {
                        "name": "slotId",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "expected_version",
                        "in": "query",
                        "type": "integer",
                        "description": "Expected session version"
                    }
                ]
            }
        },
        "/wizard/sessions/{id}/reconciliation": {
            "get": {
                "tags": [
                    "Wizard"
                ],
                "summary": "Split session records into live and orphaned ones",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "Session ID"
                    }
                ]
            }
        },
        "/audits/load": {
            "post": {
                "tags": [
                    "Audit"
                ],
                "summary": "Audit a weekly load report",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Empty report or unsupported format",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "format",
                        "in": "query",
                        "type": "string",
                        "enum": [
                            "json",
                            "text",
                            "csv",
                            "pdf"
                        ]
                    },
                    {
                        "name": "report",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "string"
                        }
                    }
                ],
                "consumes": [
                    "text/plain"
                ],
                "produces": [
                    "application/json",
                    "text/plain",
                    "text/csv",
                    "application/pdf"
                ]
            }
        },
        "/audits/cache": {
            "delete": {
                "tags": [
                    "Audit"
                ],
                "summary": "Drop cached load audits",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                }
            }
        }
    },
    "definitions": {
        "ToggleConstraintRequest": {
            "type": "object",
            "properties": {
                "entityType": {
                    "type": "string"
                },
                "entityId": {
                    "type": "string"
                },
                "level": {
                    "type": "string"
                },
                "day": {
                    "type": "string"
                },
                "period": {
                    "type": "string"
                },
                "kind": {
                    "type": "string"
                },
                "reason": {
                    "type": "string"
                },
                "expectedVersion": {
                    "type": "integer"
                }
            },
            "required": [
                "entityType",
                "entityId",
                "kind",
                "day",
                "period"
            ]
        },
        "BulkSetConstraintsRequest": {
            "type": "object",
            "properties": {
                "entityType": {
                    "type": "string"
                },
                "entityId": {
                    "type": "string"
                },
                "level": {
                    "type": "string"
                },
                "kind": {
                    "type": "string"
                },
                "expectedVersion": {
                    "type": "integer"
                }
            },
            "required": [
                "entityType",
                "entityId",
                "kind"
            ]
        },
        "AddFixedSlotRequest": {
            "type": "object",
            "properties": {
                "teacherId": {
                    "type": "string"
                },
                "classId": {
                    "type": "string"
                },
                "subjectId": {
                    "type": "string"
                },
                "level": {
                    "type": "string"
                },
                "day": {
                    "type": "string"
                },
                "period": {
                    "type": "string"
                },
                "expectedVersion": {
                    "type": "integer"
                }
            },
            "required": [
                "teacherId",
                "classId",
                "subjectId",
                "day",
                "period"
            ]
        },
        "UpdateCursorRequest": {
            "type": "object",
            "properties": {
                "entityType": {
                    "type": "string"
                },
                "entityId": {
                    "type": "string"
                },
                "level": {
                    "type": "string"
                },
                "kind": {
                    "type": "string"
                }
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                },
                "status": {
                    "type": "integer"
                }
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "object"
                },
                "error": {
                    "$ref": "#/definitions/APIError"
                },
                "meta": {
                    "type": "object"
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
