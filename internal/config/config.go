package config

import (
	"errors"
	"fmt"
	"time"
)

// Config 应用配置根结构
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	AI      AIConfig      `mapstructure:"ai"`
	Log     LogConfig     `mapstructure:"log"`
	Mongo   MongoConfig   `mapstructure:"mongo"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Storage StorageConfig `mapstructure:"storage"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Tracing TracingConfig `mapstructure:"tracing"`
}

// ServerConfig HTTP 服务器配置
type ServerConfig struct {
	Host           string        `mapstructure:"host"`
	Port           int           `mapstructure:"port"`
	Mode           string        `mapstructure:"mode"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
}

// AIConfig AI 服务配置
// Provider/Model 用于文本（歌词、对话），Image 用于专辑封面
type AIConfig struct {
	Provider string          `mapstructure:"provider"`
	APIKey   string          `mapstructure:"api_key"`
	Model    string          `mapstructure:"model"`
	BaseURL  string          `mapstructure:"base_url"`
	Options  AIOptionsConfig `mapstructure:"options"`
	Lyrics   LyricsConfig    `mapstructure:"lyrics"`
	Image    ImageConfig     `mapstructure:"image"`
}

// AIOptionsConfig AI 模型参数
type AIOptionsConfig struct {
	Temperature float64 `mapstructure:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens"`
	TopP        float64 `mapstructure:"top_p"`
}

// LyricsConfig 歌词生成参数
type LyricsConfig struct {
	Temperature float64 `mapstructure:"temperature"`
}

// ImageConfig 封面生成配置
type ImageConfig struct {
	Provider    string `mapstructure:"provider"` // gemini, ark
	Model       string `mapstructure:"model"`
	APIKey      string `mapstructure:"api_key"` // 为空时复用 ai.api_key
	BaseURL     string `mapstructure:"base_url"`
	AspectRatio string `mapstructure:"aspect_ratio"`
}

// LogConfig 日志配置 (Zerolog)
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	FilePath   string `mapstructure:"file_path"`
	TimeFormat string `mapstructure:"time_format"`
}

// MongoConfig MongoDB 配置
// URI 为空时不启用对话与封面的持久化
type MongoConfig struct {
	URI         string `mapstructure:"uri"`
	Database    string `mapstructure:"database"`
	MaxPoolSize uint64 `mapstructure:"max_pool_size"`
	MinPoolSize uint64 `mapstructure:"min_pool_size"`
}

// RedisConfig Redis 配置
// Addr 为空时忙碌标记退化为进程内实现
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	BusyTTL  time.Duration `mapstructure:"busy_ttl"`
}

// AuthConfig 会话令牌配置
type AuthConfig struct {
	JWTSecret     string        `mapstructure:"jwt_secret"`
	SessionExpiry time.Duration `mapstructure:"session_expiry"`
}

// StorageConfig 存储配置
type StorageConfig struct {
	Type  string       `mapstructure:"type"` // local, oss; 为空时不保存封面
	Local *LocalConfig `mapstructure:"local,omitempty"`
	OSS   *OSSConfig   `mapstructure:"oss,omitempty"`
}

// LocalConfig 本地文件系统配置
type LocalConfig struct {
	BasePath string `mapstructure:"base_path"` // 基础路径
	BaseURL  string `mapstructure:"base_url"`  // 基础URL（用于生成访问URL）
}

// OSSConfig 阿里云OSS配置
type OSSConfig struct {
	Endpoint        string `mapstructure:"endpoint"`          // OSS端点
	Bucket          string `mapstructure:"bucket"`            // Bucket名称
	AccessKeyID     string `mapstructure:"access_key_id"`     // AccessKey ID
	AccessKeySecret string `mapstructure:"access_key_secret"` // AccessKey Secret
}

// MetricsConfig 指标与追踪配置
type MetricsConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	Path        string `mapstructure:"path"`
	ServiceName string `mapstructure:"service_name"`
}

// TracingConfig OpenTelemetry 追踪配置
type TracingConfig struct {
	Enabled    bool    `mapstructure:"enabled"`
	Endpoint   string  `mapstructure:"endpoint"` // OTLP gRPC 地址
	SampleRate float64 `mapstructure:"sample_rate"`
}

var (
	validModes          = map[string]bool{"debug": true, "release": true, "test": true}
	validTextProviders  = map[string]bool{"gemini": true, "openai": true, "azure": true, "ark": true}
	validImageProviders = map[string]bool{"gemini": true, "ark": true}
	validStorageTypes   = map[string]bool{"": true, "local": true, "oss": true}
)

// Validate 验证配置有效性
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return errors.New("invalid server port")
	}
	if !validModes[c.Server.Mode] {
		return errors.New("invalid server mode, must be debug/release/test")
	}
	if err := c.Storage.ValidateStorage(); err != nil {
		return err
	}
	return c.AI.Validate()
}

// Validate 验证 AI 配置，CLI 子命令不启动服务器时单独调用
func (c *AIConfig) Validate() error {
	if !validTextProviders[c.Provider] {
		return fmt.Errorf("unsupported AI provider: %s", c.Provider)
	}
	if !validImageProviders[c.Image.Provider] {
		return fmt.Errorf("unsupported image provider: %s", c.Image.Provider)
	}
	if c.APIKey == "" {
		return errors.New("ai.api_key is required (env: MYZAI_AI_API_KEY or API_KEY)")
	}
	return nil
}

// ImageAPIKey 返回图片服务使用的 API Key
func (c *AIConfig) ImageAPIKey() string {
	if c.Image.APIKey != "" {
		return c.Image.APIKey
	}
	return c.APIKey
}

// ValidateStorage 验证存储类型
func (c *StorageConfig) ValidateStorage() error {
	if !validStorageTypes[c.Type] {
		return fmt.Errorf("unsupported storage type: %s", c.Type)
	}
	return nil
}
