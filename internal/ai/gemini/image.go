package gemini

import (
	"context"
	"errors"

	"google.golang.org/genai"
)

// DefaultAspectRatio 专辑封面为正方形
const DefaultAspectRatio = "1:1"

// ImageModelConfig 图片模型配置
type ImageModelConfig struct {
	Model       string
	AspectRatio string
}

// ImageModel 基于 GenAI 的图片生成
type ImageModel struct {
	cli  ContentGenerator
	conf ImageModelConfig
}

// NewImageModel 创建图片模型
func NewImageModel(cli ContentGenerator, conf *ImageModelConfig) (*ImageModel, error) {
	if cli == nil {
		return nil, errors.New("content generator is required")
	}
	c := ImageModelConfig{}
	if conf != nil {
		c = *conf
	}
	if c.Model == "" {
		c.Model = DefaultImageModel
	}
	if c.AspectRatio == "" {
		c.AspectRatio = DefaultAspectRatio
	}
	return &ImageModel{cli: cli, conf: c}, nil
}

// Generate 生成图片
// 响应中没有内联图片时返回 (nil, "", nil)，由调用方决定如何提示
func (m *ImageModel) Generate(ctx context.Context, prompt string) ([]byte, string, error) {
	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}
	config := &genai.GenerateContentConfig{
		ImageConfig: &genai.ImageConfig{AspectRatio: m.conf.AspectRatio},
	}

	resp, err := m.cli.GenerateContent(ctx, m.conf.Model, contents, config)
	if err != nil {
		return nil, "", err
	}

	data, mimeType := FirstInlineImage(resp)
	return data, mimeType, nil
}

// FirstInlineImage 返回首个候选中第一个携带内联数据的分片
func FirstInlineImage(resp *genai.GenerateContentResponse) ([]byte, string) {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, ""
	}
	cand := resp.Candidates[0]
	if cand == nil || cand.Content == nil {
		return nil, ""
	}
	for _, part := range cand.Content.Parts {
		if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
			return part.InlineData.Data, part.InlineData.MIMEType
		}
	}
	return nil, ""
}
