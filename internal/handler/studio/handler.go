package studio

import (
	"myzai/internal/service"
)

// Handler 工作室模块处理器
// 歌词、封面、对话以及可选的对话/封面管理接口都通过这个结构体访问Service
type Handler struct {
	studioService *service.StudioService
}

// NewHandler 创建工作室模块处理器
func NewHandler(studioService *service.StudioService) *Handler {
	return &Handler{
		studioService: studioService,
	}
}
