package model

import (
	"fmt"
	"strings"
	"time"
)

// 默认歌词参数
const (
	DefaultGenre     = "Pop"
	DefaultMood      = "Energetic"
	DefaultStructure = "Verse-Chorus-Verse-Chorus-Bridge-Chorus"
)

// Genres 可选曲风（仅作为界面选项，其他取值原样透传）
var Genres = []string{"Pop", "Rock", "Hip Hop", "R&B", "Country", "Electronic", "Jazz", "Metal", "Cyberpunk"}

// Moods 可选情绪
var Moods = []string{"Happy", "Sad", "Energetic", "Chill", "Dark", "Romantic", "Aggressive", "Melancholic"}

// LyricsConfig 歌词生成参数
type LyricsConfig struct {
	Topic     string `json:"topic" bson:"topic"`
	Genre     string `json:"genre" bson:"genre"`
	Mood      string `json:"mood" bson:"mood"`
	Structure string `json:"structure" bson:"structure"`
}

// WithDefaults 为空字段填充默认值
func (c LyricsConfig) WithDefaults() LyricsConfig {
	if strings.TrimSpace(c.Genre) == "" {
		c.Genre = DefaultGenre
	}
	if strings.TrimSpace(c.Mood) == "" {
		c.Mood = DefaultMood
	}
	if strings.TrimSpace(c.Structure) == "" {
		c.Structure = DefaultStructure
	}
	return c
}

// Ready 必填字段（主题）非空
func (c LyricsConfig) Ready() bool {
	return strings.TrimSpace(c.Topic) != ""
}

// 对话角色
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// WelcomeMessage 对话开场白
const WelcomeMessage = "Hello! I'm myzAI. I can help with chord progressions, theory, or band name ideas. What are we working on?"

// ChatErrorMessage 对话请求失败时写入记录的提示，IsError 为 true，仅用于界面标记
const ChatErrorMessage = "Sorry, I encountered a connection glitch. Try again?"

// ChatMessage 对话消息
type ChatMessage struct {
	ID        string    `json:"id" bson:"id"`
	Role      string    `json:"role" bson:"role" binding:"required,oneof=user model"`
	Content   string    `json:"content" bson:"content"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
	IsError   bool      `json:"is_error,omitempty" bson:"is_error,omitempty"`
}

// GeneratedImage 生成的封面
type GeneratedImage struct {
	URL      string `json:"url"` // data:<mime>;base64,<payload>
	Prompt   string `json:"prompt"`
	MIMEType string `json:"mime_type"`
}

// ImageExtension 根据 MIME 类型返回文件扩展名（不含点号），未知类型按 png 处理
func ImageExtension(mimeType string) string {
	switch strings.ToLower(mimeType) {
	case "image/jpeg", "image/jpg":
		return "jpg"
	case "image/webp":
		return "webp"
	case "image/gif":
		return "gif"
	default:
		return "png"
	}
}

// ArtFileName 封面下载文件名: myzAI-art-<unix毫秒>.<ext>
func ArtFileName(mimeType string, t time.Time) string {
	return fmt.Sprintf("myzAI-art-%d.%s", t.UnixMilli(), ImageExtension(mimeType))
}
