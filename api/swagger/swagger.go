package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "DC Physics API",
        "description": "Backend for the DC Physics e-learning platform",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Authentication", "description": "Registration, verification, login and sessions"},
        {"name": "Catalog", "description": "Chapters, topics and full-course products"},
        {"name": "Entitlements", "description": "Purchases, progress, quiz attempts and bookmarks"},
        {"name": "Quizzes", "description": "Per-chapter quiz management"},
        {"name": "Notes", "description": "Supplementary study material"},
        {"name": "Announcements", "description": "Teacher broadcast feed"},
        {"name": "Teacher", "description": "Public teacher profile"},
        {"name": "Students", "description": "Teacher-facing roster"},
        {"name": "Tutor", "description": "AI physics tutor"}
    ],
    "paths": {
        "/auth/register": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Register a student account",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Email already registered"}
                }
            }
        },
        "/auth/send-code": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Send a verification code",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SendCodeRequest"}}
                ],
                "responses": {
                    "202": {"description": "Accepted"}
                }
            }
        },
        "/auth/verify": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Verify email with a pending code",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/VerifyEmailRequest"}}
                ],
                "responses": {
                    "200": {"description": "Verified"},
                    "400": {"description": "Invalid or expired code"}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate a student or the teacher",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"},
                    "403": {"description": "Account not verified; a fresh code was sent"}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["Authentication"],
                "summary": "End the current session",
                "responses": {
                    "204": {"description": "Logged out"}
                }
            }
        },
        "/auth/session": {
            "get": {
                "tags": ["Authentication"],
                "summary": "Poll single-session validity",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["Authentication"],
                "summary": "Current user snapshot",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Authentication"],
                "summary": "Update own profile",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateDetailsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/auth/change-password": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Change password",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ChangePasswordRequest"}}
                ],
                "responses": {
                    "204": {"description": "Changed"},
                    "403": {"description": "Incorrect old password"}
                }
            }
        },
        "/auth/reset-password": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Reset a forgotten password",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ResetPasswordRequest"}}
                ],
                "responses": {
                    "200": {"description": "New password generated and emailed"},
                    "404": {"description": "Email not found"}
                }
            }
        },
        "/catalog/chapters": {
            "get": {
                "tags": ["Catalog"],
                "summary": "List chapters with topics",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/catalog/chapters/{chapterId}": {
            "get": {
                "tags": ["Catalog"],
                "summary": "Get one chapter",
                "parameters": [
                    {"name": "chapterId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/catalog/courses": {
            "get": {
                "tags": ["Catalog"],
                "summary": "List full-course products",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/catalog/chapters/{chapterId}/topics/{topicId}/video": {
            "put": {
                "tags": ["Catalog"],
                "summary": "Update a topic's video (teacher)",
                "parameters": [
                    {"name": "chapterId", "in": "path", "required": true, "type": "string"},
                    {"name": "topicId", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateTopicVideoRequest"}}
                ],
                "responses": {
                    "204": {"description": "Updated"},
                    "404": {"description": "Topic not found"}
                }
            }
        },
        "/me/entitlements": {
            "get": {
                "tags": ["Entitlements"],
                "summary": "Entitlement snapshot with unlocked chapters",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/me/purchases": {
            "post": {
                "tags": ["Entitlements"],
                "summary": "Purchase a course or chapter (idempotent)",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/PurchaseRequest"}}
                ],
                "responses": {
                    "204": {"description": "Recorded"},
                    "404": {"description": "Unknown item"}
                }
            }
        },
        "/me/progress": {
            "post": {
                "tags": ["Entitlements"],
                "summary": "Mark a topic watched (monotonic)",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/MarkWatchedRequest"}}
                ],
                "responses": {
                    "204": {"description": "Recorded"}
                }
            }
        },
        "/me/quiz-attempts": {
            "post": {
                "tags": ["Entitlements"],
                "summary": "Submit a quiz attempt (overwrites previous)",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RecordQuizAttemptRequest"}}
                ],
                "responses": {
                    "200": {"description": "Result with pass/fail"}
                }
            }
        },
        "/me/bookmarks": {
            "post": {
                "tags": ["Entitlements"],
                "summary": "Add a video bookmark",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AddBookmarkRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"}
                }
            }
        },
        "/me/bookmarks/{id}": {
            "delete": {
                "tags": ["Entitlements"],
                "summary": "Delete a bookmark",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Deleted"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/chapters/{chapterId}/quiz": {
            "get": {
                "tags": ["Quizzes"],
                "summary": "Get the quiz for a chapter",
                "parameters": [
                    {"name": "chapterId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "No quiz"}
                }
            },
            "put": {
                "tags": ["Quizzes"],
                "summary": "Create or replace the chapter quiz (teacher)",
                "parameters": [
                    {"name": "chapterId", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SaveQuizRequest"}}
                ],
                "responses": {
                    "200": {"description": "Saved"}
                }
            }
        },
        "/notes": {
            "get": {
                "tags": ["Notes"],
                "summary": "List notes",
                "parameters": [
                    {"name": "class_level", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            },
            "post": {
                "tags": ["Notes"],
                "summary": "Create a note (teacher)",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateNoteRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"}
                }
            }
        },
        "/notes/{id}": {
            "delete": {
                "tags": ["Notes"],
                "summary": "Delete a note (teacher)",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Deleted"}
                }
            }
        },
        "/announcements": {
            "get": {
                "tags": ["Announcements"],
                "summary": "List announcements, newest first",
                "responses": {
                    "200": {"description": "OK"}
                }
            },
            "post": {
                "tags": ["Announcements"],
                "summary": "Post an announcement (teacher)",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateAnnouncementRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"}
                }
            }
        },
        "/announcements/{id}": {
            "delete": {
                "tags": ["Announcements"],
                "summary": "Delete an announcement (teacher)",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Deleted"}
                }
            }
        },
        "/teacher/profile": {
            "get": {
                "tags": ["Teacher"],
                "summary": "Public teacher profile",
                "responses": {
                    "200": {"description": "OK"}
                }
            },
            "put": {
                "tags": ["Teacher"],
                "summary": "Update the teacher profile (teacher)",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateTeacherProfileRequest"}}
                ],
                "responses": {
                    "200": {"description": "Updated"}
                }
            }
        },
        "/students": {
            "get": {
                "tags": ["Students"],
                "summary": "List students (teacher)",
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "verified", "in": "query", "type": "boolean"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "page_size", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/roster": {
            "get": {
                "tags": ["Students"],
                "summary": "Roster with entitlement aggregates (teacher)",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/students/roster/export": {
            "get": {
                "tags": ["Students"],
                "summary": "Download the roster as CSV or PDF (teacher)",
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File download"}
                }
            }
        },
        "/tutor/ask": {
            "post": {
                "tags": ["Tutor"],
                "summary": "Ask the physics tutor",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AskTutorRequest"}}
                ],
                "responses": {
                    "200": {"description": "Answer, possibly a fallback message"}
                }
            }
        }
    },
    "definitions": {
        "RegisterRequest": {
            "type": "object",
            "required": ["name", "email", "password"],
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string", "minLength": 8}
            }
        },
        "SendCodeRequest": {
            "type": "object",
            "required": ["email"],
            "properties": {
                "email": {"type": "string"}
            }
        },
        "VerifyEmailRequest": {
            "type": "object",
            "required": ["email", "code"],
            "properties": {
                "email": {"type": "string"},
                "code": {"type": "string", "minLength": 6, "maxLength": 6}
            }
        },
        "LoginRequest": {
            "type": "object",
            "required": ["email", "role", "password"],
            "properties": {
                "email": {"type": "string"},
                "role": {"type": "string", "enum": ["STUDENT", "TEACHER"]},
                "password": {"type": "string"}
            }
        },
        "UpdateDetailsRequest": {
            "type": "object",
            "required": ["name", "class_level"],
            "properties": {
                "name": {"type": "string"},
                "class_level": {"type": "integer", "enum": [11, 12]}
            }
        },
        "ChangePasswordRequest": {
            "type": "object",
            "required": ["old_password", "new_password"],
            "properties": {
                "old_password": {"type": "string"},
                "new_password": {"type": "string", "minLength": 8}
            }
        },
        "ResetPasswordRequest": {
            "type": "object",
            "required": ["email"],
            "properties": {
                "email": {"type": "string"}
            }
        },
        "UpdateTopicVideoRequest": {
            "type": "object",
            "required": ["video_url"],
            "properties": {
                "video_url": {"type": "string"}
            }
        },
        "PurchaseRequest": {
            "type": "object",
            "required": ["item_type", "item_id"],
            "properties": {
                "item_type": {"type": "string", "enum": ["COURSE", "CHAPTER"]},
                "item_id": {"type": "string"}
            }
        },
        "MarkWatchedRequest": {
            "type": "object",
            "required": ["topic_id"],
            "properties": {
                "topic_id": {"type": "string"}
            }
        },
        "RecordQuizAttemptRequest": {
            "type": "object",
            "required": ["chapter_id", "total_questions"],
            "properties": {
                "chapter_id": {"type": "string"},
                "score": {"type": "integer"},
                "total_questions": {"type": "integer"}
            }
        },
        "AddBookmarkRequest": {
            "type": "object",
            "required": ["chapter_id"],
            "properties": {
                "chapter_id": {"type": "string"},
                "timestamp": {"type": "integer"},
                "note": {"type": "string"}
            }
        },
        "SaveQuizRequest": {
            "type": "object",
            "required": ["questions"],
            "properties": {
                "questions": {"type": "array", "items": {"$ref": "#/definitions/Question"}}
            }
        },
        "Question": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "text": {"type": "string"},
                "options": {"type": "array", "items": {"type": "string"}},
                "correct_option_index": {"type": "integer"}
            }
        },
        "CreateNoteRequest": {
            "type": "object",
            "required": ["title", "type", "class_level"],
            "properties": {
                "title": {"type": "string"},
                "content": {"type": "string"},
                "url": {"type": "string"},
                "type": {"type": "string", "enum": ["TEXT", "PDF"]},
                "class_level": {"type": "integer", "enum": [11, 12]},
                "chapter_id": {"type": "string"}
            }
        },
        "CreateAnnouncementRequest": {
            "type": "object",
            "required": ["content"],
            "properties": {
                "content": {"type": "string"}
            }
        },
        "UpdateTeacherProfileRequest": {
            "type": "object",
            "required": ["name", "bio"],
            "properties": {
                "name": {"type": "string"},
                "bio": {"type": "string"},
                "image": {"type": "string"},
                "qualifications": {"type": "string"},
                "experience": {"type": "string"},
                "students_count": {"type": "string"},
                "lectures_count": {"type": "string"},
                "rating": {"type": "string"}
            }
        },
        "AskTutorRequest": {
            "type": "object",
            "required": ["question"],
            "properties": {
                "question": {"type": "string"},
                "context": {"type": "string"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
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
