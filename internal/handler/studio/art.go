package studio

import (
	"github.com/gin-gonic/gin"

	httputil "myzai/internal/pkg/http"
)

// GenerateArtRequest 生成封面请求
type GenerateArtRequest struct {
	Prompt string `json:"prompt" binding:"required"` // 画面描述
}

// GenerateArt 生成专辑封面
// @Summary      生成专辑封面
// @Description  根据描述生成 1:1 封面，图片以 data URL 返回；配置存储后同时保存
// @Tags         封面
// @Accept       json
// @Produce      json
// @Param        request  body      GenerateArtRequest  true  "封面描述"
// @Success      200      {object}  httputil.SuccessResponse{data=service.ArtResult}
// @Failure      400      {object}  ErrorResponse  "请求参数错误"
// @Failure      409      {object}  ErrorResponse  "已有请求在途"
// @Failure      422      {object}  ErrorResponse  "响应中没有图片"
// @Failure      502      {object}  ErrorResponse  "模型调用失败"
// @Router       /api/v1/art [post]
func (h *Handler) GenerateArt(c *gin.Context) {
	var req GenerateArtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.Fail(c, httputil.CodeInvalidRequest, "Invalid request body", err.Error())
		return
	}

	result, err := h.studioService.GenerateAlbumArt(c.Request.Context(), sessionID(c), req.Prompt)
	if err != nil {
		fail(c, err)
		return
	}

	httputil.OK(c, "success", result)
}
