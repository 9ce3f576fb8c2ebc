package chain

import (
	"context"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"myzai/internal/ai/prompt"
	"myzai/internal/model"
)

// DefaultLyricsTemperature 歌词生成温度
const DefaultLyricsTemperature = 0.7

// NoLyricsGenerated 模型未返回文本时的占位结果
const NoLyricsGenerated = "No lyrics generated."

// LyricsChain 歌词生成链
// 工作流: LyricsConfig -> 提示词 -> ChatModel -> 歌词文本
type LyricsChain struct {
	chatModel   einomodel.BaseChatModel
	temperature float32
}

// NewLyricsChain 创建歌词生成链，temperature<=0 时使用默认值
func NewLyricsChain(chatModel einomodel.BaseChatModel, temperature float64) *LyricsChain {
	if temperature <= 0 {
		temperature = DefaultLyricsTemperature
	}
	return &LyricsChain{
		chatModel:   chatModel,
		temperature: float32(temperature),
	}
}

// Run 生成歌词
func (c *LyricsChain) Run(ctx context.Context, cfg model.LyricsConfig) (*Result, error) {
	messages := []*schema.Message{
		schema.SystemMessage(prompt.LyricsSystemInstruction),
		schema.UserMessage(prompt.Lyrics(cfg)),
	}

	resp, err := c.chatModel.Generate(ctx, messages, einomodel.WithTemperature(c.temperature))
	if err != nil {
		return nil, err
	}

	result := newResult(resp)
	if result.Text == "" {
		result.Text = NoLyricsGenerated
	}
	return result, nil
}
