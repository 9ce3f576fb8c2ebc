// Package gemini 封装 Google GenAI SDK：
// 文本能力以 eino BaseChatModel 的形式提供，图片能力提取响应中的内联图片。
package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// 默认模型
const (
	DefaultTextModel  = "gemini-2.5-flash"
	DefaultImageModel = "gemini-2.5-flash-image"
)

// ContentGenerator GenerateContent 调用抽象，*genai.Models 满足该接口
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Config 客户端配置
type Config struct {
	APIKey  string
	BaseURL string // 可选，代理地址
}

// NewContentGenerator 使用 API Key 创建 Gemini API 客户端
func NewContentGenerator(ctx context.Context, cfg *Config) (ContentGenerator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}

	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return client.Models, nil
}
