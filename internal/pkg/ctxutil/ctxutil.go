package ctxutil

import "context"

// 使用私有类型避免与其他 context key 冲突
type (
	sessionIDKeyType struct{}
	requestIDKeyType struct{}
	traceIDKeyType   struct{}
)

var (
	sessionIDKey = sessionIDKeyType{}
	requestIDKey = requestIDKeyType{}
	traceIDKey   = traceIDKeyType{}
)

// WithSessionID 将会话 ID 注入到 context 中
// 说明：由会话中间件在解析令牌（或回退到客户端 IP）后调用
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return withString(ctx, sessionIDKey, sessionID)
}

// GetSessionID 从 context 中解析会话 ID
func GetSessionID(ctx context.Context) (string, bool) {
	return getString(ctx, sessionIDKey)
}

// WithRequestID 注入请求 ID
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return withString(ctx, requestIDKey, requestID)
}

// GetRequestID 解析请求 ID
func GetRequestID(ctx context.Context) (string, bool) {
	return getString(ctx, requestIDKey)
}

// WithTraceID 注入 trace ID
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return withString(ctx, traceIDKey, traceID)
}

// GetTraceID 解析 trace ID
func GetTraceID(ctx context.Context) (string, bool) {
	return getString(ctx, traceIDKey)
}

func withString(ctx context.Context, key any, value string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, key, value)
}

func getString(ctx context.Context, key any) (string, bool) {
	if ctx == nil {
		return "", false
	}
	v, ok := ctx.Value(key).(string)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}
