package studio

import (
	"github.com/gin-gonic/gin"

	"myzai/internal/model"
	httputil "myzai/internal/pkg/http"
)

// GenerateLyricsRequest 生成歌词请求
type GenerateLyricsRequest struct {
	Topic     string `json:"topic" binding:"required"` // 主题（必填）
	Genre     string `json:"genre"`                    // 曲风，默认 Pop
	Mood      string `json:"mood"`                     // 情绪，默认 Energetic
	Structure string `json:"structure"`                // 结构，默认 Verse-Chorus-Verse-Chorus-Bridge-Chorus
}

// LyricsOptions 歌词可选项
type LyricsOptions struct {
	Genres           []string `json:"genres"`
	Moods            []string `json:"moods"`
	DefaultGenre     string   `json:"default_genre"`
	DefaultMood      string   `json:"default_mood"`
	DefaultStructure string   `json:"default_structure"`
}

// LyricsOptions 获取曲风、情绪选项
// @Summary      歌词可选项
// @Description  返回界面使用的曲风、情绪列表及默认结构；其他取值同样被接受
// @Tags         歌词
// @Produce      json
// @Success      200  {object}  httputil.SuccessResponse{data=LyricsOptions}
// @Router       /api/v1/lyrics/options [get]
func (h *Handler) LyricsOptions(c *gin.Context) {
	httputil.OK(c, "success", LyricsOptions{
		Genres:           model.Genres,
		Moods:            model.Moods,
		DefaultGenre:     model.DefaultGenre,
		DefaultMood:      model.DefaultMood,
		DefaultStructure: model.DefaultStructure,
	})
}

// GenerateLyrics 生成歌词
// @Summary      生成歌词
// @Description  根据主题、曲风、情绪与结构生成带段落标记的歌词
// @Tags         歌词
// @Accept       json
// @Produce      json
// @Param        request  body      GenerateLyricsRequest  true  "歌词参数"
// @Success      200      {object}  httputil.SuccessResponse{data=service.LyricsResult}
// @Failure      400      {object}  ErrorResponse  "请求参数错误"
// @Failure      409      {object}  ErrorResponse  "已有请求在途"
// @Failure      502      {object}  ErrorResponse  "模型调用失败"
// @Router       /api/v1/lyrics [post]
func (h *Handler) GenerateLyrics(c *gin.Context) {
	var req GenerateLyricsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.Fail(c, httputil.CodeInvalidRequest, "Invalid request body", err.Error())
		return
	}

	result, err := h.studioService.GenerateLyrics(c.Request.Context(), sessionID(c), model.LyricsConfig{
		Topic:     req.Topic,
		Genre:     req.Genre,
		Mood:      req.Mood,
		Structure: req.Structure,
	})
	if err != nil {
		fail(c, err)
		return
	}

	httputil.OK(c, "success", result)
}
