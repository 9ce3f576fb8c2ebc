package ai

import (
	"context"
	"errors"
	"fmt"
	"time"

	einomodel "github.com/cloudwego/eino/components/model"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"myzai/internal/ai/chain"
	"myzai/internal/ai/component"
	"myzai/internal/config"
	"myzai/internal/model"
	"myzai/internal/pkg/logger"
	"myzai/internal/pkg/metrics"
	"myzai/internal/pkg/tracer"
)

// ErrRequestFailed 远端调用失败，所有失败原因统一为这一类
var ErrRequestFailed = errors.New("request failed")

// ErrNoImage 响应中没有图片
var ErrNoImage = chain.ErrNoImage

// 操作名称（日志与指标）
const (
	OpLyrics = "lyrics"
	OpArt    = "art"
	OpChat   = "chat"
)

// Client AI 能力层客户端
// 职责: 三个对外调用（歌词、封面、对话），统一错误类别
type Client struct {
	lyricsChain   *chain.LyricsChain
	chatChain     *chain.ChatChain
	albumArtChain *chain.AlbumArtChain
}

// NewClient 根据配置创建 AI 客户端，API Key 在启动时读取
func NewClient(ctx context.Context, cfg *config.AIConfig) (*Client, error) {
	chatModel, err := component.NewChatModel(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	imageModel, err := component.NewImageModel(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create image model: %w", err)
	}

	return NewClientWithModels(chatModel, imageModel, cfg.Lyrics.Temperature), nil
}

// NewClientWithModels 使用已有模型创建客户端
func NewClientWithModels(chatModel einomodel.BaseChatModel, imageModel component.ImageModel, lyricsTemperature float64) *Client {
	return &Client{
		lyricsChain:   chain.NewLyricsChain(chatModel, lyricsTemperature),
		chatChain:     chain.NewChatChain(chatModel),
		albumArtChain: chain.NewAlbumArtChain(imageModel),
	}
}

// GenerateLyrics 根据参数生成歌词
func (c *Client) GenerateLyrics(ctx context.Context, cfg model.LyricsConfig) (string, error) {
	ctx, span := tracer.Start(ctx, "ai.lyrics")
	defer span.End()

	start := time.Now()
	res, err := c.lyricsChain.Run(ctx, cfg)
	metrics.RecordAICall(OpLyrics, start, err)
	if err != nil {
		return "", failed(ctx, OpLyrics, err)
	}

	metrics.RecordTokens(OpLyrics, res.PromptTokens, res.OutputTokens)
	return res.Text, nil
}

// GenerateAlbumArt 根据描述生成封面
// 返回的 data 为解码后的图片字节，供保存使用
func (c *Client) GenerateAlbumArt(ctx context.Context, description string) (*model.GeneratedImage, []byte, error) {
	ctx, span := tracer.Start(ctx, "ai.art")
	defer span.End()

	start := time.Now()
	art, err := c.albumArtChain.Run(ctx, description)
	metrics.RecordAICall(OpArt, start, err)
	if err != nil {
		if errors.Is(err, chain.ErrNoImage) {
			span.SetStatus(codes.Error, err.Error())
			return nil, nil, err
		}
		return nil, nil, failed(ctx, OpArt, err)
	}
	return art.Image, art.Data, nil
}

// ContinueChat 重放历史并追加新消息，返回模型回复
func (c *Client) ContinueChat(ctx context.Context, history []model.ChatMessage, message string) (string, error) {
	ctx, span := tracer.Start(ctx, "ai.chat")
	defer span.End()

	start := time.Now()
	res, err := c.chatChain.Run(ctx, history, message)
	metrics.RecordAICall(OpChat, start, err)
	if err != nil {
		return "", failed(ctx, OpChat, err)
	}

	metrics.RecordTokens(OpChat, res.PromptTokens, res.OutputTokens)
	return res.Text, nil
}

// failed 记录原始错误并归入 ErrRequestFailed
func failed(ctx context.Context, op string, err error) error {
	span := trace.SpanFromContext(ctx)
	span.RecordError(err)
	span.SetStatus(codes.Error, "request failed")

	l := logger.Ctx(ctx)
	l.Error().Err(err).Str("operation", op).Msg("AI request failed")
	return fmt.Errorf("%w: %s: %v", ErrRequestFailed, op, err)
}
