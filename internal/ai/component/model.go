package component

import (
	"context"
	"fmt"

	arkext "github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"

	"myzai/internal/ai/gemini"
	"myzai/internal/config"
)

// NewChatModel 创建文本模型（歌词与对话共用）
// 支持多种 Provider: gemini, openai, azure, ark
func NewChatModel(ctx context.Context, cfg *config.AIConfig) (model.BaseChatModel, error) {
	switch cfg.Provider {
	case "gemini", "":
		return newGeminiChatModel(ctx, cfg)
	case "openai":
		return newOpenAIChatModel(ctx, cfg)
	case "azure":
		return newAzureChatModel(ctx, cfg)
	case "ark":
		return newArkChatModel(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported AI provider: %s", cfg.Provider)
	}
}

// newGeminiChatModel 创建 Gemini ChatModel
func newGeminiChatModel(ctx context.Context, cfg *config.AIConfig) (model.BaseChatModel, error) {
	cli, err := gemini.NewContentGenerator(ctx, &gemini.Config{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
	})
	if err != nil {
		return nil, err
	}

	conf := &gemini.ChatModelConfig{Model: cfg.Model}
	conf.Temperature, conf.MaxTokens, conf.TopP = sampling(&cfg.Options)
	return gemini.NewChatModel(cli, conf)
}

// newOpenAIChatModel 创建 OpenAI ChatModel
func newOpenAIChatModel(ctx context.Context, cfg *config.AIConfig) (model.BaseChatModel, error) {
	modelCfg := &openai.ChatModelConfig{
		Model:  cfg.Model,
		APIKey: cfg.APIKey,
	}

	// Base URL (用于代理或兼容 API)
	if cfg.BaseURL != "" {
		modelCfg.BaseURL = cfg.BaseURL
	}
	modelCfg.Temperature, modelCfg.MaxTokens, modelCfg.TopP = sampling(&cfg.Options)

	return openai.NewChatModel(ctx, modelCfg)
}

// newAzureChatModel 创建 Azure OpenAI ChatModel
func newAzureChatModel(ctx context.Context, cfg *config.AIConfig) (model.BaseChatModel, error) {
	modelCfg := &openai.ChatModelConfig{
		Model:   cfg.Model,
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
		ByAzure: true,
	}
	modelCfg.Temperature, modelCfg.MaxTokens, modelCfg.TopP = sampling(&cfg.Options)

	return openai.NewChatModel(ctx, modelCfg)
}

// newArkChatModel 创建 Ark ChatModel（使用 eino-ext 模块）
func newArkChatModel(ctx context.Context, cfg *config.AIConfig) (model.BaseChatModel, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://ark.cn-beijing.volces.com/api/v3"
	}

	modelName := cfg.Model
	if modelName == "" {
		modelName = "doubao-seed-1-6-flash-250615"
	}

	modelCfg := &arkext.ChatModelConfig{
		Model:   modelName,
		APIKey:  cfg.APIKey,
		BaseURL: baseURL,
	}
	modelCfg.Temperature, modelCfg.MaxTokens, modelCfg.TopP = sampling(&cfg.Options)

	return arkext.NewChatModel(ctx, modelCfg)
}

// sampling 将配置中的采样参数转换为可选指针，零值表示使用模型默认值
func sampling(opts *config.AIOptionsConfig) (temperature *float32, maxTokens *int, topP *float32) {
	if opts.Temperature > 0 {
		t := float32(opts.Temperature)
		temperature = &t
	}
	if opts.MaxTokens > 0 {
		m := opts.MaxTokens
		maxTokens = &m
	}
	if opts.TopP > 0 {
		p := float32(opts.TopP)
		topP = &p
	}
	return temperature, maxTokens, topP
}
