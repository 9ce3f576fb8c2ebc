package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrNotFound 文件不存在
var ErrNotFound = errors.New("file not found")

// Storage 封面文件存储接口
type Storage interface {
	// Upload 上传文件，返回可访问的URL（可能为空）
	Upload(ctx context.Context, key string, data io.Reader, contentType string) (string, error)

	// Download 下载文件，不存在时返回 ErrNotFound
	Download(ctx context.Context, key string) (io.ReadCloser, error)

	// GetDownloadURL 获取下载URL；后端无法直接提供时返回空字符串
	GetDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, error)

	// Delete 删除文件，文件不存在视为成功
	Delete(ctx context.Context, key string) error

	// Exists 检查文件是否存在
	Exists(ctx context.Context, key string) (bool, error)

	// GetStorageType 获取存储类型
	GetStorageType() string
}

// StorageType 存储类型
type StorageType string

const (
	StorageTypeLocal StorageType = "local" // 本地文件系统
	StorageTypeOSS   StorageType = "oss"   // 阿里云OSS
)
