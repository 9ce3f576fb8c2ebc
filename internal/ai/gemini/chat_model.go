package gemini

import (
	"context"
	"errors"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"
)

// ChatModelConfig 文本模型配置
type ChatModelConfig struct {
	Model       string
	Temperature *float32
	MaxTokens   *int
	TopP        *float32
}

// ChatModel 基于 GenAI 的 eino 文本模型
type ChatModel struct {
	cli  ContentGenerator
	conf ChatModelConfig
}

var _ model.BaseChatModel = (*ChatModel)(nil)

// NewChatModel 创建文本模型
func NewChatModel(cli ContentGenerator, conf *ChatModelConfig) (*ChatModel, error) {
	if cli == nil {
		return nil, errors.New("content generator is required")
	}
	c := ChatModelConfig{}
	if conf != nil {
		c = *conf
	}
	if c.Model == "" {
		c.Model = DefaultTextModel
	}
	return &ChatModel{cli: cli, conf: c}, nil
}

// Generate 同步生成
// system 消息合并为 SystemInstruction，其余消息按顺序映射为 user/model 轮次
func (m *ChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	options := model.GetCommonOptions(&model.Options{
		Model:       &m.conf.Model,
		Temperature: m.conf.Temperature,
		MaxTokens:   m.conf.MaxTokens,
		TopP:        m.conf.TopP,
	}, opts...)

	system, contents := toContents(input)
	if len(contents) == 0 {
		return nil, errors.New("no user content to send")
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: system,
		Temperature:       options.Temperature,
		TopP:              options.TopP,
	}
	if options.MaxTokens != nil {
		config.MaxOutputTokens = int32(*options.MaxTokens)
	}

	resp, err := m.cli.GenerateContent(ctx, *options.Model, contents, config)
	if err != nil {
		return nil, err
	}

	msg := schema.AssistantMessage(responseText(resp), nil)
	if usage := resp.UsageMetadata; usage != nil {
		msg.ResponseMeta = &schema.ResponseMeta{
			Usage: &schema.TokenUsage{
				PromptTokens:     int(usage.PromptTokenCount),
				CompletionTokens: int(usage.CandidatesTokenCount),
				TotalTokens:      int(usage.TotalTokenCount),
			},
		}
	}
	return msg, nil
}

// Stream 以单个分片的形式返回完整结果
func (m *ChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	msg, err := m.Generate(ctx, input, opts...)
	if err != nil {
		return nil, err
	}
	return schema.StreamReaderFromArray([]*schema.Message{msg}), nil
}

// toContents 转换 eino 消息
func toContents(input []*schema.Message) (*genai.Content, []*genai.Content) {
	var systemParts []string
	contents := make([]*genai.Content, 0, len(input))

	for _, msg := range input {
		if msg == nil {
			continue
		}
		switch msg.Role {
		case schema.System:
			systemParts = append(systemParts, msg.Content)
		case schema.User:
			contents = append(contents, genai.NewContentFromText(msg.Content, genai.RoleUser))
		case schema.Assistant:
			contents = append(contents, genai.NewContentFromText(msg.Content, genai.RoleModel))
		}
	}

	var system *genai.Content
	if len(systemParts) > 0 {
		system = &genai.Content{Parts: []*genai.Part{{Text: strings.Join(systemParts, "\n\n")}}}
	}
	return system, contents
}

// responseText 拼接首个候选的文本分片，跳过思考分片
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	cand := resp.Candidates[0]
	if cand == nil || cand.Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range cand.Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		sb.WriteString(part.Text)
	}
	return sb.String()
}
