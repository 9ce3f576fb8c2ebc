package studio

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"myzai/internal/ai"
	"myzai/internal/pkg/ctxutil"
	httputil "myzai/internal/pkg/http"
	"myzai/internal/pkg/inflight"
	"myzai/internal/pkg/logger"
	"myzai/internal/service"
)

// ErrorResponse 错误响应类型别名（使用共用的 http.ErrorResponse）
type ErrorResponse = httputil.ErrorResponse

// 分页默认值
const (
	defaultLimit = 20
	maxLimit     = 100
)

// sessionID 获取当前会话ID，会话中间件未设置时回退到客户端IP
func sessionID(c *gin.Context) string {
	if id, ok := ctxutil.GetSessionID(c.Request.Context()); ok {
		return id
	}
	return "anon:" + c.ClientIP()
}

// pagination 解析 limit/offset 查询参数
func pagination(c *gin.Context) (int64, int64) {
	limit, err := strconv.ParseInt(c.Query("limit"), 10, 64)
	if err != nil || limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	offset, err := strconv.ParseInt(c.Query("offset"), 10, 64)
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}

// fail 将 Service 错误转换为统一响应
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		httputil.Fail(c, httputil.CodeInvalidRequest, "Invalid request body", err.Error())
	case errors.Is(err, service.ErrNotFound):
		httputil.Fail(c, httputil.CodeNotFound, "Resource not found", err.Error())
	case errors.Is(err, inflight.ErrBusy):
		httputil.Fail(c, httputil.CodeBusy, "Request already in progress")
	case errors.Is(err, ai.ErrNoImage):
		httputil.Fail(c, httputil.CodeNoImage, "Could not generate image. Try a different prompt.")
	case errors.Is(err, ai.ErrRequestFailed):
		httputil.Fail(c, httputil.CodeUpstreamFailed, "request failed")
	case errors.Is(err, service.ErrPersistenceDisabled):
		httputil.Fail(c, httputil.CodeServiceUnavailable, "Database not available")
	default:
		l := logger.Ctx(c.Request.Context())
		l.Error().Err(err).Str("path", c.FullPath()).Msg("request failed with internal error")
		httputil.Fail(c, httputil.CodeInternal, "Internal server error")
	}
}
