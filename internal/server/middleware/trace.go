package middleware

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/trace"

	"myzai/internal/pkg/ctxutil"
)

// TraceIDHeader 响应中的 trace ID 头
const TraceIDHeader = "X-Trace-ID"

// Trace OpenTelemetry 追踪中间件
func Trace(serviceName string) gin.HandlerFunc {
	return otelgin.Middleware(serviceName)
}

// TraceContext 将 trace_id 注入到 Context 与响应头
func TraceContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		span := trace.SpanFromContext(c.Request.Context())
		if span.SpanContext().IsValid() {
			traceID := span.SpanContext().TraceID().String()

			c.Set("trace_id", traceID)
			c.Request = c.Request.WithContext(ctxutil.WithTraceID(c.Request.Context(), traceID))
			c.Header(TraceIDHeader, traceID)
		}

		c.Next()
	}
}
