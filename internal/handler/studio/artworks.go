package studio

import (
	"io"
	"strconv"

	"github.com/gin-gonic/gin"

	"myzai/internal/model"
	httputil "myzai/internal/pkg/http"
	"myzai/internal/pkg/logger"
)

// ListArtworksResponseData 封面列表
type ListArtworksResponseData struct {
	Artworks []*model.Artwork `json:"artworks"`
	Total    int64            `json:"total"`
	Limit    int64            `json:"limit"`
	Offset   int64            `json:"offset"`
}

// ListArtworks 查询已保存的封面
// @Summary      封面列表
// @Tags         封面
// @Produce      json
// @Param        limit   query     int  false  "每页数量（默认20，最大100）"
// @Param        offset  query     int  false  "偏移量"
// @Success      200     {object}  httputil.SuccessResponse{data=ListArtworksResponseData}
// @Failure      503     {object}  ErrorResponse  "未配置持久化"
// @Router       /api/v1/artworks [get]
func (h *Handler) ListArtworks(c *gin.Context) {
	limit, offset := pagination(c)

	arts, total, err := h.studioService.ListArtworks(c.Request.Context(), sessionID(c), limit, offset)
	if err != nil {
		fail(c, err)
		return
	}

	httputil.OK(c, "success", ListArtworksResponseData{
		Artworks: arts,
		Total:    total,
		Limit:    limit,
		Offset:   offset,
	})
}

// GetArtwork 获取封面详情
// @Summary      封面详情
// @Description  返回封面元数据与下载链接
// @Tags         封面
// @Produce      json
// @Param        id   path      string  true  "封面ID"
// @Success      200  {object}  httputil.SuccessResponse{data=service.ArtworkDetail}
// @Failure      404  {object}  ErrorResponse  "封面不存在"
// @Router       /api/v1/artworks/{id} [get]
func (h *Handler) GetArtwork(c *gin.Context) {
	detail, err := h.studioService.GetArtwork(c.Request.Context(), sessionID(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	if detail.DownloadURL == "" {
		detail.DownloadURL = "/api/v1/artworks/" + detail.ID + "/download"
	}

	httputil.OK(c, "success", detail)
}

// DownloadArtwork 下载封面图片
// @Summary      下载封面
// @Tags         封面
// @Produce      image/png
// @Param        id   path      string  true  "封面ID"
// @Success      200  {file}    binary  "图片"
// @Failure      404  {object}  ErrorResponse  "封面不存在"
// @Router       /api/v1/artworks/{id}/download [get]
func (h *Handler) DownloadArtwork(c *gin.Context) {
	ctx := c.Request.Context()

	art, body, err := h.studioService.OpenArtwork(ctx, sessionID(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	defer body.Close()

	c.Header("Content-Type", art.ContentType)
	c.Header("Content-Disposition", `attachment; filename="`+model.ArtFileName(art.ContentType, art.CreatedAt)+`"`)
	if art.FileSize > 0 {
		c.Header("Content-Length", strconv.FormatInt(art.FileSize, 10))
	}

	if _, err := io.Copy(c.Writer, body); err != nil {
		l := logger.Ctx(ctx)
		l.Warn().Err(err).Str("artwork_id", art.ID).Msg("failed to stream artwork")
	}
}

// DeleteArtwork 删除封面
// @Summary      删除封面
// @Tags         封面
// @Produce      json
// @Param        id   path      string  true  "封面ID"
// @Success      200  {object}  httputil.SuccessResponse
// @Failure      404  {object}  ErrorResponse  "封面不存在"
// @Router       /api/v1/artworks/{id} [delete]
func (h *Handler) DeleteArtwork(c *gin.Context) {
	if err := h.studioService.DeleteArtwork(c.Request.Context(), sessionID(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	httputil.OK(c, "deleted", nil)
}
