package studio

import (
	"github.com/gin-gonic/gin"

	httputil "myzai/internal/pkg/http"
)

// CreateConversationRequest 创建对话请求
type CreateConversationRequest struct {
	Title string `json:"title"` // 标题（可选）
}

// CreateConversation 创建对话
// @Summary      创建对话
// @Description  创建以欢迎语开场的对话
// @Tags         对话
// @Accept       json
// @Produce      json
// @Param        request  body      CreateConversationRequest  false  "对话标题"
// @Success      201      {object}  httputil.SuccessResponse{data=model.Conversation}
// @Failure      503      {object}  ErrorResponse  "未配置持久化"
// @Router       /api/v1/conversations [post]
func (h *Handler) CreateConversation(c *gin.Context) {
	var req CreateConversationRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httputil.Fail(c, httputil.CodeInvalidRequest, "Invalid request body", err.Error())
			return
		}
	}

	conv, err := h.studioService.CreateConversation(c.Request.Context(), sessionID(c), req.Title)
	if err != nil {
		fail(c, err)
		return
	}

	httputil.Created(c, "created", conv)
}

// ListConversations 查询对话列表
// @Summary      对话列表
// @Tags         对话
// @Produce      json
// @Param        limit   query     int  false  "每页数量（默认20，最大100）"
// @Param        offset  query     int  false  "偏移量"
// @Success      200     {object}  httputil.SuccessResponse{data=[]model.Conversation}
// @Router       /api/v1/conversations [get]
func (h *Handler) ListConversations(c *gin.Context) {
	limit, offset := pagination(c)

	convs, err := h.studioService.ListConversations(c.Request.Context(), sessionID(c), limit, offset)
	if err != nil {
		fail(c, err)
		return
	}

	httputil.OK(c, "success", convs)
}

// GetConversation 获取对话
// @Summary      对话详情
// @Tags         对话
// @Produce      json
// @Param        id   path      string  true  "对话ID"
// @Success      200  {object}  httputil.SuccessResponse{data=model.Conversation}
// @Failure      404  {object}  ErrorResponse  "对话不存在"
// @Router       /api/v1/conversations/{id} [get]
func (h *Handler) GetConversation(c *gin.Context) {
	conv, err := h.studioService.GetConversation(c.Request.Context(), sessionID(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}

	httputil.OK(c, "success", conv)
}

// DeleteConversation 删除对话
// @Summary      删除对话
// @Tags         对话
// @Produce      json
// @Param        id   path      string  true  "对话ID"
// @Success      200  {object}  httputil.SuccessResponse
// @Failure      404  {object}  ErrorResponse  "对话不存在"
// @Router       /api/v1/conversations/{id} [delete]
func (h *Handler) DeleteConversation(c *gin.Context) {
	if err := h.studioService.DeleteConversation(c.Request.Context(), sessionID(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	httputil.OK(c, "deleted", nil)
}
