package ark

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/volcengine/volcengine-go-sdk/service/arkruntime"
	"github.com/volcengine/volcengine-go-sdk/service/arkruntime/model"
)

// 默认值
const (
	DefaultBaseURL    = "https://ark.cn-beijing.volces.com/api/v3"
	DefaultImageModel = "doubao-seedream-3-0-t2i-250415"
)

// ImageConfig Ark 图片生成配置
type ImageConfig struct {
	APIKey      string // API Key（必需）
	BaseURL     string // API 基础 URL（可选）
	Model       string // 模型名称（可选）
	AspectRatio string // 宽高比（可选，默认 1:1）
}

// imagesAPI GenerateImages 调用抽象
type imagesAPI interface {
	GenerateImages(ctx context.Context, request model.GenerateImagesRequest) (model.ImagesResponse, error)
}

// arkImages 适配 *arkruntime.Client，SDK 的请求选项类型未导出
type arkImages struct {
	client *arkruntime.Client
}

func (a arkImages) GenerateImages(ctx context.Context, request model.GenerateImagesRequest) (model.ImagesResponse, error) {
	return a.client.GenerateImages(ctx, request)
}

// ImageClient Ark 图片生成客户端
type ImageClient struct {
	client imagesAPI
	model  string
	size   string
}

// NewImageClient 创建 Ark 图片生成客户端
func NewImageClient(cfg *ImageConfig) (*ImageClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("ark api key is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	modelName := cfg.Model
	if modelName == "" {
		modelName = DefaultImageModel
	}

	arkClient := arkruntime.NewClientWithApiKey(cfg.APIKey, arkruntime.WithBaseUrl(baseURL))
	return newImageClient(arkImages{client: arkClient}, modelName, cfg.AspectRatio), nil
}

func newImageClient(api imagesAPI, modelName, aspectRatio string) *ImageClient {
	return &ImageClient{
		client: api,
		model:  modelName,
		size:   SizeForAspectRatio(aspectRatio),
	}
}

// Generate 生成图片
// 响应中没有图片数据时返回 (nil, "", nil)
func (c *ImageClient) Generate(ctx context.Context, prompt string) ([]byte, string, error) {
	responseFormat := "b64_json"
	watermark := false
	size := c.size

	input := model.GenerateImagesRequest{
		Model:          c.model,
		Prompt:         prompt,
		Size:           &size,
		ResponseFormat: &responseFormat,
		Watermark:      &watermark,
	}

	output, err := c.client.GenerateImages(ctx, input)
	if err != nil {
		log.Error().Err(err).Str("model", c.model).Msg("failed to call Ark GenerateImages API")
		return nil, "", fmt.Errorf("ark GenerateImages: %w", err)
	}

	for _, img := range output.Data {
		if img == nil || img.B64Json == nil || *img.B64Json == "" {
			continue
		}
		data, err := base64.StdEncoding.DecodeString(*img.B64Json)
		if err != nil {
			return nil, "", fmt.Errorf("failed to decode base64 image data: %w", err)
		}
		return data, http.DetectContentType(data), nil
	}
	return nil, "", nil
}

// SizeForAspectRatio 将宽高比换算为 Seedream 支持的尺寸
func SizeForAspectRatio(ratio string) string {
	switch ratio {
	case "16:9":
		return "1280x720"
	case "9:16":
		return "720x1280"
	case "4:3":
		return "1152x864"
	case "3:4":
		return "864x1152"
	default:
		return "1024x1024"
	}
}
