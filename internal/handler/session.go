package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	httputil "myzai/internal/pkg/http"
	"myzai/internal/pkg/id"
	"myzai/internal/pkg/jwt"
	"myzai/internal/pkg/logger"
)

// SessionHandler 匿名会话处理器
type SessionHandler struct {
	jwt *jwt.JWT
}

// NewSessionHandler 创建会话处理器
func NewSessionHandler(jwtUtil *jwt.JWT) *SessionHandler {
	return &SessionHandler{jwt: jwtUtil}
}

// SessionResponseData 会话令牌
type SessionResponseData struct {
	SessionID string    `json:"session_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Create 签发匿名会话令牌
// @Summary      创建会话
// @Description  签发匿名会话令牌，后续请求通过 Authorization: Bearer <token> 携带
// @Tags         会话
// @Produce      json
// @Success      201  {object}  httputil.SuccessResponse{data=SessionResponseData}
// @Failure      500  {object}  httputil.ErrorResponse
// @Router       /api/v1/sessions [post]
func (h *SessionHandler) Create(c *gin.Context) {
	sessionID := id.NewV7()

	token, expiresAt, err := h.jwt.GenerateToken(sessionID)
	if err != nil {
		l := logger.Ctx(c.Request.Context())
		l.Error().Err(err).Msg("failed to sign session token")
		httputil.Fail(c, httputil.CodeInternal, "Failed to create session")
		return
	}

	httputil.Created(c, "created", SessionResponseData{
		SessionID: sessionID,
		Token:     token,
		ExpiresAt: expiresAt,
	})
}
