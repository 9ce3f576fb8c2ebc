package rediscli

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"myzai/internal/config"
)

// Client Redis 连接封装
type Client struct {
	client *redis.Client
}

// New 创建 Redis 客户端并测试连接
func New(cfg *config.RedisConfig) (*Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return &Client{client: client}, nil
}

// Ping 检查连接（就绪检查使用）
func (c *Client) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close 关闭连接
func (c *Client) Close() error {
	return c.client.Close()
}

// Raw 获取原始客户端
func (c *Client) Raw() *redis.Client {
	return c.client
}
