package component

import (
	"context"
	"fmt"

	"myzai/internal/ai/gemini"
	"myzai/internal/config"
	"myzai/internal/pkg/ark"
)

// ImageModel 图片生成能力
// 响应中没有图片时返回 (nil, "", nil)
type ImageModel interface {
	Generate(ctx context.Context, prompt string) (data []byte, mimeType string, err error)
}

// NewImageModel 创建图片模型
// 支持 Provider: gemini, ark
func NewImageModel(ctx context.Context, cfg *config.AIConfig) (ImageModel, error) {
	img := cfg.Image
	switch img.Provider {
	case "gemini", "":
		cli, err := gemini.NewContentGenerator(ctx, &gemini.Config{
			APIKey:  cfg.ImageAPIKey(),
			BaseURL: img.BaseURL,
		})
		if err != nil {
			return nil, err
		}
		return gemini.NewImageModel(cli, &gemini.ImageModelConfig{
			Model:       img.Model,
			AspectRatio: img.AspectRatio,
		})
	case "ark":
		return ark.NewImageClient(&ark.ImageConfig{
			APIKey:      cfg.ImageAPIKey(),
			BaseURL:     img.BaseURL,
			Model:       img.Model,
			AspectRatio: img.AspectRatio,
		})
	default:
		return nil, fmt.Errorf("unsupported image provider: %s", img.Provider)
	}
}
