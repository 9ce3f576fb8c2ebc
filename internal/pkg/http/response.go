package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// 错误码（HTTP 状态码 * 100 + 序号）
const (
	CodeInvalidRequest     = 40001
	CodeInvalidSession     = 40101
	CodeNotFound           = 40401
	CodeBusy               = 40901
	CodeNoImage            = 42201
	CodeInternal           = 50001
	CodeUpstreamFailed     = 50201
	CodeServiceUnavailable = 50301
)

// ErrorResponse 错误响应（所有API共用）
type ErrorResponse struct {
	Code    int    `json:"code"`             // 错误码（非0表示错误）
	Message string `json:"message"`          // 错误消息
	Detail  string `json:"detail,omitempty"` // 错误详情（可选）
}

// SuccessResponse 成功响应（所有API共用）
type SuccessResponse struct {
	Code    int         `json:"code"`           // 状态码（0表示成功）
	Message string      `json:"message"`        // 响应消息
	Data    interface{} `json:"data,omitempty"` // 响应数据（可选）
}

// NewSuccessResponse 创建成功响应
func NewSuccessResponse(message string, data interface{}) *SuccessResponse {
	return &SuccessResponse{
		Code:    0,
		Message: message,
		Data:    data,
	}
}

// NewErrorResponse 创建错误响应
func NewErrorResponse(code int, message string, detail ...string) *ErrorResponse {
	resp := &ErrorResponse{
		Code:    code,
		Message: message,
	}
	if len(detail) > 0 && detail[0] != "" {
		resp.Detail = detail[0]
	}
	return resp
}

// OK 写入 200 成功响应
func OK(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, NewSuccessResponse(message, data))
}

// Created 写入 201 成功响应
func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, NewSuccessResponse(message, data))
}

// Fail 写入错误响应；状态码由错误码推导
func Fail(c *gin.Context, code int, message string, detail ...string) {
	c.JSON(code/100, NewErrorResponse(code, message, detail...))
}
