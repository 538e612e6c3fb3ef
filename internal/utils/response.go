package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorBody 统一错误响应结构（与上游数据管线的 API 约定一致）
type ErrorBody struct {
	Detail string `json:"detail"` // 人类可读的错误描述
}

// Text 返回纯文本成功响应
func Text(c *gin.Context, body string) {
	c.String(http.StatusOK, body)
}

// JSON 返回 JSON 成功响应（裸值：数字、字符串、对象或数组）
func JSON(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Detail 返回带状态码的错误响应
func Detail(c *gin.Context, code int, detail string) {
	c.JSON(code, ErrorBody{Detail: detail})
}

// NotFound 返回404错误
func NotFound(c *gin.Context, detail string) {
	if detail == "" {
		detail = "Not found"
	}
	Detail(c, http.StatusNotFound, detail)
}

// BadRequest 返回400错误
func BadRequest(c *gin.Context, detail string) {
	Detail(c, http.StatusBadRequest, detail)
}

// Unauthorized 返回401错误
func Unauthorized(c *gin.Context, detail string) {
	if detail == "" {
		detail = "未登录"
	}
	Detail(c, http.StatusUnauthorized, detail)
}

// InternalServerError 返回500错误
func InternalServerError(c *gin.Context, detail string) {
	if detail == "" {
		detail = "服务器内部错误"
	}
	Detail(c, http.StatusInternalServerError, detail)
}
