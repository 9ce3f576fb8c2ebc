package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"myzai/internal/model"
	"myzai/internal/pkg/id"
	"myzai/internal/pkg/inflight"
	"myzai/internal/pkg/logger"
	"myzai/internal/pkg/metrics"
	"myzai/internal/pkg/storage"
)

var (
	ErrInvalidInput        = errors.New("invalid request")
	ErrNotFound            = errors.New("not found")
	ErrPersistenceDisabled = errors.New("persistence is not configured")
	ErrInvalidHistoryRole  = errors.New("history role must be user or model")
)

const (
	// downloadURLExpiry 封面下载链接有效期
	downloadURLExpiry = time.Hour

	defaultConversationTitle = "New session"
)

// AIClient AI 能力层
type AIClient interface {
	GenerateLyrics(ctx context.Context, cfg model.LyricsConfig) (string, error)
	GenerateAlbumArt(ctx context.Context, description string) (*model.GeneratedImage, []byte, error)
	ContinueChat(ctx context.Context, history []model.ChatMessage, message string) (string, error)
}

// ConversationStore 对话持久化
type ConversationStore interface {
	Create(ctx context.Context, conv *model.Conversation) error
	FindByID(ctx context.Context, sessionID, id string) (*model.Conversation, error)
	ListBySession(ctx context.Context, sessionID string, limit, offset int64) ([]*model.Conversation, error)
	AppendMessages(ctx context.Context, sessionID, id string, msgs ...model.ChatMessage) error
	Delete(ctx context.Context, sessionID, id string) error
}

// ArtworkStore 封面元数据持久化
type ArtworkStore interface {
	Create(ctx context.Context, art *model.Artwork) error
	FindByID(ctx context.Context, sessionID, id string) (*model.Artwork, error)
	ListBySession(ctx context.Context, sessionID string, limit, offset int64) ([]*model.Artwork, int64, error)
	Delete(ctx context.Context, sessionID, id string) error
}

// StudioDeps 服务依赖；Conversations、Artworks、Storage 可为空，为空时对应持久化关闭
type StudioDeps struct {
	AI            AIClient
	Guard         inflight.Guard
	Conversations ConversationStore
	Artworks      ArtworkStore
	Storage       storage.Storage
}

// StudioService 创作工作室服务 - 业务逻辑层
// 职责: 参数校验、忙碌标记、调用 AI 层、可选的持久化
type StudioService struct {
	ai      AIClient
	guard   inflight.Guard
	convs   ConversationStore
	arts    ArtworkStore
	storage storage.Storage
}

// NewStudioService 创建工作室服务
func NewStudioService(deps StudioDeps) *StudioService {
	guard := deps.Guard
	if guard == nil {
		guard = inflight.NewMemoryGuard()
	}
	return &StudioService{
		ai:      deps.AI,
		guard:   guard,
		convs:   deps.Conversations,
		arts:    deps.Artworks,
		storage: deps.Storage,
	}
}

// ConversationsEnabled 是否启用对话持久化
func (s *StudioService) ConversationsEnabled() bool {
	return s.convs != nil
}

// ArtworksEnabled 是否启用封面保存
func (s *StudioService) ArtworksEnabled() bool {
	return s.arts != nil && s.storage != nil
}

// LyricsResult 歌词生成结果
type LyricsResult struct {
	Lyrics string             `json:"lyrics"`
	Config model.LyricsConfig `json:"config"` // 填充默认值后实际使用的参数
}

// GenerateLyrics 生成歌词
func (s *StudioService) GenerateLyrics(ctx context.Context, sessionID string, cfg model.LyricsConfig) (*LyricsResult, error) {
	if !cfg.Ready() {
		return nil, fmt.Errorf("%w: topic is required", ErrInvalidInput)
	}
	cfg = cfg.WithDefaults()

	release, err := s.acquire(ctx, sessionID, inflight.ActionLyrics)
	if err != nil {
		return nil, err
	}
	defer release()

	lyrics, err := s.ai.GenerateLyrics(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &LyricsResult{Lyrics: lyrics, Config: cfg}, nil
}

// ArtResult 封面生成结果
type ArtResult struct {
	Image   *model.GeneratedImage `json:"image"`
	Artwork *model.Artwork        `json:"artwork,omitempty"` // 已保存时返回
	Data    []byte                `json:"-"`
}

// GenerateAlbumArt 生成封面
// 启用保存时上传图片并记录元数据，保存失败只记录日志
func (s *StudioService) GenerateAlbumArt(ctx context.Context, sessionID, prompt string) (*ArtResult, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, fmt.Errorf("%w: prompt is required", ErrInvalidInput)
	}

	release, err := s.acquire(ctx, sessionID, inflight.ActionArt)
	if err != nil {
		return nil, err
	}
	defer release()

	img, data, err := s.ai.GenerateAlbumArt(ctx, prompt)
	if err != nil {
		return nil, err
	}

	result := &ArtResult{Image: img, Data: data}
	if s.ArtworksEnabled() {
		art, err := s.saveArtwork(ctx, sessionID, img, data)
		if err != nil {
			l := logger.Ctx(ctx)
			l.Warn().Err(err).Msg("failed to save artwork")
		} else {
			result.Artwork = art
		}
	}
	return result, nil
}

func (s *StudioService) saveArtwork(ctx context.Context, sessionID string, img *model.GeneratedImage, data []byte) (*model.Artwork, error) {
	art := &model.Artwork{
		ID:          id.New(),
		SessionID:   sessionID,
		Prompt:      img.Prompt,
		StorageType: s.storage.GetStorageType(),
		ContentType: img.MIMEType,
		FileSize:    int64(len(data)),
		CreatedAt:   time.Now(),
	}
	art.StorageKey = artworkKey(sessionID, art.ID, img.MIMEType)

	if _, err := s.storage.Upload(ctx, art.StorageKey, bytes.NewReader(data), img.MIMEType); err != nil {
		return nil, err
	}
	if err := s.arts.Create(ctx, art); err != nil {
		if delErr := s.storage.Delete(ctx, art.StorageKey); delErr != nil {
			l := logger.Ctx(ctx)
			l.Warn().Err(delErr).Str("storage_key", art.StorageKey).Msg("failed to remove orphaned artwork")
		}
		return nil, err
	}
	return art, nil
}

// artworkKey 存储路径: artworks/{session}/{id}.{ext}
func artworkKey(sessionID, artworkID, mimeType string) string {
	session := strings.NewReplacer(":", "_", "/", "_", "\\", "_").Replace(sessionID)
	return fmt.Sprintf("artworks/%s/%s.%s", session, artworkID, model.ImageExtension(mimeType))
}

// ChatRequest 对话请求
// ConversationID 非空时从数据库加载历史并保存本轮消息，否则重放 History
type ChatRequest struct {
	ConversationID string              `json:"conversation_id,omitempty"`
	Message        string              `json:"message" binding:"required"`
	History        []model.ChatMessage `json:"history,omitempty"`
}

// ChatResult 对话结果
type ChatResult struct {
	ConversationID string            `json:"conversation_id,omitempty"`
	Message        model.ChatMessage `json:"message"` // 本轮用户消息
	Reply          model.ChatMessage `json:"reply"`
}

// Chat 继续对话
func (s *StudioService) Chat(ctx context.Context, sessionID string, req *ChatRequest) (*ChatResult, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, fmt.Errorf("%w: message is required", ErrInvalidInput)
	}

	history := req.History
	if req.ConversationID != "" {
		if s.convs == nil {
			return nil, ErrPersistenceDisabled
		}
		conv, err := s.findConversation(ctx, sessionID, req.ConversationID)
		if err != nil {
			return nil, err
		}
		history = conv.Messages
	} else {
		for _, h := range history {
			if h.Role != model.RoleUser && h.Role != model.RoleModel {
				return nil, fmt.Errorf("%w: %w", ErrInvalidInput, ErrInvalidHistoryRole)
			}
		}
	}

	release, err := s.acquire(ctx, sessionID, inflight.ActionChat)
	if err != nil {
		return nil, err
	}
	defer release()

	userMsg := newChatMessage(model.RoleUser, req.Message)
	replyText, err := s.ai.ContinueChat(ctx, history, req.Message)
	if err != nil {
		if req.ConversationID != "" {
			errMsg := newChatMessage(model.RoleModel, model.ChatErrorMessage)
			errMsg.IsError = true
			s.appendMessages(ctx, sessionID, req.ConversationID, userMsg, errMsg)
		}
		return nil, err
	}

	reply := newChatMessage(model.RoleModel, replyText)
	if req.ConversationID != "" {
		s.appendMessages(ctx, sessionID, req.ConversationID, userMsg, reply)
	}

	return &ChatResult{
		ConversationID: req.ConversationID,
		Message:        userMsg,
		Reply:          reply,
	}, nil
}

func (s *StudioService) appendMessages(ctx context.Context, sessionID, conversationID string, msgs ...model.ChatMessage) {
	if err := s.convs.AppendMessages(ctx, sessionID, conversationID, msgs...); err != nil {
		l := logger.Ctx(ctx)
		l.Warn().Err(err).Str("conversation_id", conversationID).Msg("failed to save chat messages")
	}
}

// CreateConversation 创建对话，以欢迎语开场
func (s *StudioService) CreateConversation(ctx context.Context, sessionID, title string) (*model.Conversation, error) {
	if s.convs == nil {
		return nil, ErrPersistenceDisabled
	}
	if strings.TrimSpace(title) == "" {
		title = defaultConversationTitle
	}

	conv := &model.Conversation{
		ID:        id.New(),
		SessionID: sessionID,
		Title:     title,
		Messages:  []model.ChatMessage{newChatMessage(model.RoleModel, model.WelcomeMessage)},
	}
	if err := s.convs.Create(ctx, conv); err != nil {
		return nil, err
	}
	return conv, nil
}

// GetConversation 获取对话（含消息）
func (s *StudioService) GetConversation(ctx context.Context, sessionID, conversationID string) (*model.Conversation, error) {
	if s.convs == nil {
		return nil, ErrPersistenceDisabled
	}
	return s.findConversation(ctx, sessionID, conversationID)
}

// ListConversations 查询会话下的对话
func (s *StudioService) ListConversations(ctx context.Context, sessionID string, limit, offset int64) ([]*model.Conversation, error) {
	if s.convs == nil {
		return nil, ErrPersistenceDisabled
	}
	return s.convs.ListBySession(ctx, sessionID, limit, offset)
}

// DeleteConversation 删除对话
func (s *StudioService) DeleteConversation(ctx context.Context, sessionID, conversationID string) error {
	if s.convs == nil {
		return ErrPersistenceDisabled
	}
	if !id.IsValid(conversationID) {
		return fmt.Errorf("%w: conversation", ErrNotFound)
	}
	return notFound(s.convs.Delete(ctx, sessionID, conversationID), "conversation")
}

// ArtworkDetail 封面详情
type ArtworkDetail struct {
	*model.Artwork
	DownloadURL string `json:"download_url,omitempty"`
}

// ListArtworks 查询会话下已保存的封面
func (s *StudioService) ListArtworks(ctx context.Context, sessionID string, limit, offset int64) ([]*model.Artwork, int64, error) {
	if !s.ArtworksEnabled() {
		return nil, 0, ErrPersistenceDisabled
	}
	return s.arts.ListBySession(ctx, sessionID, limit, offset)
}

// GetArtwork 获取封面元数据与下载链接
func (s *StudioService) GetArtwork(ctx context.Context, sessionID, artworkID string) (*ArtworkDetail, error) {
	if !s.ArtworksEnabled() {
		return nil, ErrPersistenceDisabled
	}
	art, err := s.findArtwork(ctx, sessionID, artworkID)
	if err != nil {
		return nil, err
	}

	url, err := s.storage.GetDownloadURL(ctx, art.StorageKey, downloadURLExpiry)
	if err != nil {
		l := logger.Ctx(ctx)
		l.Warn().Err(err).Str("artwork_id", art.ID).Msg("failed to get download URL")
	}
	return &ArtworkDetail{Artwork: art, DownloadURL: url}, nil
}

// OpenArtwork 打开封面图片流，调用方负责关闭
func (s *StudioService) OpenArtwork(ctx context.Context, sessionID, artworkID string) (*model.Artwork, io.ReadCloser, error) {
	if !s.ArtworksEnabled() {
		return nil, nil, ErrPersistenceDisabled
	}
	art, err := s.findArtwork(ctx, sessionID, artworkID)
	if err != nil {
		return nil, nil, err
	}

	body, err := s.storage.Download(ctx, art.StorageKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: artwork file", ErrNotFound)
		}
		return nil, nil, err
	}
	return art, body, nil
}

// DeleteArtwork 删除封面记录与图片
func (s *StudioService) DeleteArtwork(ctx context.Context, sessionID, artworkID string) error {
	if !s.ArtworksEnabled() {
		return ErrPersistenceDisabled
	}
	art, err := s.findArtwork(ctx, sessionID, artworkID)
	if err != nil {
		return err
	}

	if err := s.storage.Delete(ctx, art.StorageKey); err != nil && !errors.Is(err, storage.ErrNotFound) {
		return err
	}
	return notFound(s.arts.Delete(ctx, sessionID, artworkID), "artwork")
}

// acquire 占用忙碌标记
func (s *StudioService) acquire(ctx context.Context, sessionID, action string) (func(), error) {
	release, err := s.guard.Acquire(ctx, inflight.Key(sessionID, action))
	if err != nil {
		if errors.Is(err, inflight.ErrBusy) {
			metrics.BusyRejectedTotal.WithLabelValues(action).Inc()
		}
		return nil, err
	}
	return release, nil
}

func newChatMessage(role, content string) model.ChatMessage {
	return model.ChatMessage{
		ID:        id.New(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	}
}

// findConversation 按会话查找对话，ID 格式不合法时直接视为不存在
func (s *StudioService) findConversation(ctx context.Context, sessionID, conversationID string) (*model.Conversation, error) {
	if !id.IsValid(conversationID) {
		return nil, fmt.Errorf("%w: conversation", ErrNotFound)
	}
	conv, err := s.convs.FindByID(ctx, sessionID, conversationID)
	if err != nil {
		return nil, notFound(err, "conversation")
	}
	return conv, nil
}

func (s *StudioService) findArtwork(ctx context.Context, sessionID, artworkID string) (*model.Artwork, error) {
	if !id.IsValid(artworkID) {
		return nil, fmt.Errorf("%w: artwork", ErrNotFound)
	}
	art, err := s.arts.FindByID(ctx, sessionID, artworkID)
	if err != nil {
		return nil, notFound(err, "artwork")
	}
	return art, nil
}

// notFound 将 mongo.ErrNoDocuments 转换为 ErrNotFound
func notFound(err error, what string) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("%w: %s", ErrNotFound, what)
	}
	return err
}
