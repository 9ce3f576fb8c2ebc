package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"myzai/internal/pkg/ctxutil"
	httputil "myzai/internal/pkg/http"
	"myzai/internal/pkg/jwt"
)

// Session 会话中间件
// 携带 Bearer 令牌时校验并使用令牌中的会话ID；未携带时以 anon:<客户端IP> 作为会话
func Session(jwtUtil *jwt.JWT) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := "anon:" + c.ClientIP()

		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				abortInvalidSession(c, "invalid authorization header")
				return
			}

			claims, err := jwtUtil.ValidateToken(parts[1])
			if err != nil {
				abortInvalidSession(c, err.Error())
				return
			}
			sessionID = claims.SessionID
		}

		c.Set("session_id", sessionID)
		c.Request = c.Request.WithContext(ctxutil.WithSessionID(c.Request.Context(), sessionID))

		c.Next()
	}
}

func abortInvalidSession(c *gin.Context, detail string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, httputil.NewErrorResponse(httputil.CodeInvalidSession, "Invalid session token", detail))
}
