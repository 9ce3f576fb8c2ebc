package ui

import (
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"myzai/internal/ai"
	"myzai/internal/model"
)

// 界面提示
const (
	LyricsFailedAlert = "Failed to generate lyrics. Please try again."
	ArtFailedAlert    = "Error generating art."
	NoImageAlert      = "Could not generate image. Try a different prompt."
)

// LyricsState 歌词页状态
// 请求在途时 Generate 不可用，结束（成功或失败）后恢复
type LyricsState struct {
	mu     sync.Mutex
	config model.LyricsConfig
	busy   bool
	lyrics string
	alert  string
}

// NewLyricsState 创建歌词页状态，曲风、情绪、结构使用默认值
func NewLyricsState() *LyricsState {
	return &LyricsState{config: model.LyricsConfig{}.WithDefaults()}
}

// LyricsView 渲染快照
type LyricsView struct {
	Config      model.LyricsConfig
	Busy        bool
	CanGenerate bool
	Lyrics      string
	Alert       string
}

// Update 修改输入
func (s *LyricsState) Update(fn func(cfg *model.LyricsConfig)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.config)
}

// View 返回当前快照
func (s *LyricsState) View() LyricsView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return LyricsView{
		Config:      s.config,
		Busy:        s.busy,
		CanGenerate: !s.busy && s.config.Ready(),
		Lyrics:      s.lyrics,
		Alert:       s.alert,
	}
}

// Start 开始一次生成；主题为空或已有请求在途时返回 false，不发起调用
func (s *LyricsState) Start() (model.LyricsConfig, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy || !s.config.Ready() {
		return model.LyricsConfig{}, false
	}
	s.busy = true
	s.alert = ""
	return s.config, true
}

// Finish 结束生成
func (s *LyricsState) Finish(lyrics string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false
	if err != nil {
		s.alert = LyricsFailedAlert
		return
	}
	s.lyrics = lyrics
}

// ArtState 封面页状态
type ArtState struct {
	mu     sync.Mutex
	prompt string
	busy   bool
	image  *model.GeneratedImage
	data   []byte
	alert  string
}

// NewArtState 创建封面页状态
func NewArtState() *ArtState {
	return &ArtState{}
}

// ArtView 渲染快照
type ArtView struct {
	Prompt      string
	Busy        bool
	CanGenerate bool
	Image       *model.GeneratedImage
	Alert       string
}

// SetPrompt 修改描述
func (s *ArtState) SetPrompt(prompt string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompt = prompt
}

// View 返回当前快照
func (s *ArtState) View() ArtView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ArtView{
		Prompt:      s.prompt,
		Busy:        s.busy,
		CanGenerate: !s.busy && strings.TrimSpace(s.prompt) != "",
		Image:       s.image,
		Alert:       s.alert,
	}
}

// Start 开始一次生成
func (s *ArtState) Start() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy || strings.TrimSpace(s.prompt) == "" {
		return "", false
	}
	s.busy = true
	s.alert = ""
	return s.prompt, true
}

// Finish 结束生成；没有图片与调用失败使用不同提示
func (s *ArtState) Finish(img *model.GeneratedImage, data []byte, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false
	switch {
	case errors.Is(err, ai.ErrNoImage):
		s.alert = NoImageAlert
	case err != nil:
		s.alert = ArtFailedAlert
	default:
		s.image = img
		s.data = data
	}
}

// Download 返回当前图片与下载文件名，没有图片时 ok 为 false
func (s *ArtState) Download(now time.Time) (name string, data []byte, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.image == nil || len(s.data) == 0 {
		return "", nil, false
	}
	return model.ArtFileName(s.image.MIMEType, now), s.data, true
}

// ChatState 对话页状态
type ChatState struct {
	mu       sync.Mutex
	messages []model.ChatMessage
	busy     bool
	now      func() time.Time
	nextID   int
}

// NewChatState 创建对话页状态，以欢迎语开场
func NewChatState() *ChatState {
	s := &ChatState{now: time.Now}
	s.append(model.RoleModel, model.WelcomeMessage, false)
	return s
}

// ChatView 渲染快照
type ChatView struct {
	Messages []model.ChatMessage
	Busy     bool
}

// View 返回当前快照
func (s *ChatState) View() ChatView {
	s.mu.Lock()
	defer s.mu.Unlock()
	msgs := make([]model.ChatMessage, len(s.messages))
	copy(msgs, s.messages)
	return ChatView{Messages: msgs, Busy: s.busy}
}

// Start 发送消息：记录用户消息并返回发送前的历史
// 消息为空或已有请求在途时返回 false
func (s *ChatState) Start(input string) ([]model.ChatMessage, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy || strings.TrimSpace(input) == "" {
		return nil, false
	}

	history := make([]model.ChatMessage, len(s.messages))
	copy(history, s.messages)

	s.append(model.RoleUser, input, false)
	s.busy = true
	return history, true
}

// Finish 记录回复；失败时追加错误消息
func (s *ChatState) Finish(reply string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false
	if err != nil {
		s.append(model.RoleModel, model.ChatErrorMessage, true)
		return
	}
	s.append(model.RoleModel, reply, false)
}

// append 调用方持有锁
func (s *ChatState) append(role, content string, isError bool) {
	s.nextID++
	s.messages = append(s.messages, model.ChatMessage{
		ID:        "local-" + strconv.Itoa(s.nextID),
		Role:      role,
		Content:   content,
		Timestamp: s.now(),
		IsError:   isError,
	})
}
