// Package docs 注册 myzAI Studio 的 Swagger 文档
// 路由注释位于 internal/handler，变更接口后用 swag init 重新生成更完整的定义
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "SessionToken": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/health": {"get": {"tags": ["系统"], "summary": "健康检查", "responses": {"200": {"description": "OK"}}}},
        "/ready": {"get": {"tags": ["系统"], "summary": "就绪检查", "responses": {"200": {"description": "OK"}, "503": {"description": "依赖不可用"}}}},
        "/api/v1/sessions": {"post": {"tags": ["会话"], "summary": "创建会话", "responses": {"201": {"description": "Created"}}}},
        "/api/v1/lyrics/options": {"get": {"tags": ["歌词"], "summary": "歌词可选项", "responses": {"200": {"description": "OK"}}}},
        "/api/v1/lyrics": {"post": {
            "tags": ["歌词"], "summary": "生成歌词",
            "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/GenerateLyricsRequest"}}],
            "responses": {"200": {"description": "OK"}, "400": {"description": "请求参数错误"}, "409": {"description": "已有请求在途"}, "502": {"description": "模型调用失败"}}
        }},
        "/api/v1/art": {"post": {
            "tags": ["封面"], "summary": "生成专辑封面",
            "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/GenerateArtRequest"}}],
            "responses": {"200": {"description": "OK"}, "400": {"description": "请求参数错误"}, "409": {"description": "已有请求在途"}, "422": {"description": "响应中没有图片"}, "502": {"description": "模型调用失败"}}
        }},
        "/api/v1/artworks": {"get": {"tags": ["封面"], "summary": "封面列表", "responses": {"200": {"description": "OK"}, "503": {"description": "未配置持久化"}}}},
        "/api/v1/artworks/{id}": {
            "get": {"tags": ["封面"], "summary": "封面详情", "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "封面不存在"}}},
            "delete": {"tags": ["封面"], "summary": "删除封面", "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "封面不存在"}}}
        },
        "/api/v1/artworks/{id}/download": {"get": {"tags": ["封面"], "summary": "下载封面", "produces": ["image/png"], "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}], "responses": {"200": {"description": "图片"}, "404": {"description": "封面不存在"}}}},
        "/api/v1/chat": {"post": {
            "tags": ["对话"], "summary": "继续对话",
            "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/ChatRequest"}}],
            "responses": {"200": {"description": "OK"}, "400": {"description": "请求参数错误"}, "404": {"description": "对话不存在"}, "409": {"description": "已有请求在途"}, "502": {"description": "模型调用失败"}}
        }},
        "/api/v1/conversations": {
            "get": {"tags": ["对话"], "summary": "对话列表", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["对话"], "summary": "创建对话", "responses": {"201": {"description": "Created"}, "503": {"description": "未配置持久化"}}}
        },
        "/api/v1/conversations/{id}": {
            "get": {"tags": ["对话"], "summary": "对话详情", "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "对话不存在"}}},
            "delete": {"tags": ["对话"], "summary": "删除对话", "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "对话不存在"}}}
        }
    },
    "definitions": {
        "GenerateLyricsRequest": {
            "type": "object", "required": ["topic"],
            "properties": {"topic": {"type": "string"}, "genre": {"type": "string"}, "mood": {"type": "string"}, "structure": {"type": "string"}}
        },
        "GenerateArtRequest": {
            "type": "object", "required": ["prompt"],
            "properties": {"prompt": {"type": "string"}}
        },
        "ChatMessage": {
            "type": "object",
            "properties": {"id": {"type": "string"}, "role": {"type": "string", "enum": ["user", "model"]}, "content": {"type": "string"}, "timestamp": {"type": "string"}, "is_error": {"type": "boolean"}}
        },
        "ChatRequest": {
            "type": "object", "required": ["message"],
            "properties": {"conversation_id": {"type": "string"}, "message": {"type": "string"}, "history": {"type": "array", "items": {"$ref": "#/definitions/ChatMessage"}}}
        }
    }
}`

// SwaggerInfo 文档元信息
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "myzAI Studio API",
	Description:      "AI lyrics, album art and music brainstorming.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
