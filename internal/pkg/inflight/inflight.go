// Package inflight 实现"忙碌标记"：同一会话的同一操作同时只允许一个请求在途。
// 第二个请求立即失败（不等待、不排队），请求结束（成功或失败）后释放。
package inflight

import (
	"context"
	"errors"
	"sync"
)

// ErrBusy 同一操作已有请求在途
var ErrBusy = errors.New("request already in progress")

// 操作名称
const (
	ActionLyrics = "lyrics"
	ActionArt    = "art"
	ActionChat   = "chat"
)

// Guard 忙碌标记
type Guard interface {
	// Acquire 占用 key；已被占用时返回 ErrBusy。
	// 返回的 release 可重复调用。
	Acquire(ctx context.Context, key string) (release func(), err error)
}

// Key 生成忙碌标记 key
func Key(sessionID, action string) string {
	return sessionID + ":" + action
}

// MemoryGuard 进程内实现
type MemoryGuard struct {
	mu   sync.Mutex
	busy map[string]struct{}
}

// NewMemoryGuard 创建进程内忙碌标记
func NewMemoryGuard() *MemoryGuard {
	return &MemoryGuard{busy: make(map[string]struct{})}
}

// Acquire 占用 key
func (g *MemoryGuard) Acquire(_ context.Context, key string) (func(), error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.busy[key]; ok {
		return nil, ErrBusy
	}
	g.busy[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.busy, key)
			g.mu.Unlock()
		})
	}, nil
}

// Busy 查询 key 是否被占用
func (g *MemoryGuard) Busy(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.busy[key]
	return ok
}
