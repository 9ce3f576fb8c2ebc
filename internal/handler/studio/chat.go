package studio

import (
	"github.com/gin-gonic/gin"

	httputil "myzai/internal/pkg/http"
	"myzai/internal/service"
)

// Chat 继续对话
// @Summary      继续对话
// @Description  无 conversation_id 时重放请求中的 history；有 conversation_id 时使用已保存的对话
// @Tags         对话
// @Accept       json
// @Produce      json
// @Param        request  body      service.ChatRequest  true  "对话请求"
// @Success      200      {object}  httputil.SuccessResponse{data=service.ChatResult}
// @Failure      400      {object}  ErrorResponse  "请求参数错误"
// @Failure      404      {object}  ErrorResponse  "对话不存在"
// @Failure      409      {object}  ErrorResponse  "已有请求在途"
// @Failure      502      {object}  ErrorResponse  "模型调用失败"
// @Router       /api/v1/chat [post]
func (h *Handler) Chat(c *gin.Context) {
	var req service.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.Fail(c, httputil.CodeInvalidRequest, "Invalid request body", err.Error())
		return
	}

	result, err := h.studioService.Chat(c.Request.Context(), sessionID(c), &req)
	if err != nil {
		fail(c, err)
		return
	}

	httputil.OK(c, "success", result)
}
