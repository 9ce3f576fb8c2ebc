package cmd

import (
	"context"
	"fmt"

	"myzai/internal/ai"
	"myzai/internal/pkg/logger"
	"myzai/internal/service"
)

// cliSessionID 命令行与终端界面共用的本地会话
const cliSessionID = "cli"

// newLocalStudio 创建不带持久化的工作室服务，供命令行与终端界面使用
func newLocalStudio(ctx context.Context) (*service.StudioService, error) {
	cfg := GetConfig()
	if err := cfg.AI.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	client, err := ai.NewClient(ctx, &cfg.AI)
	if err != nil {
		return nil, fmt.Errorf("failed to create AI client: %w", err)
	}
	return service.NewStudioService(service.StudioDeps{AI: client}), nil
}

// redirectLog 将日志输出改到 output，stdout 留给命令结果
func redirectLog(output string) error {
	cfg := GetConfig()
	if cfg.Log.Output != "" && cfg.Log.Output != "stdout" {
		return nil
	}
	logCfg := cfg.Log
	logCfg.Output = output
	return logger.Init(&logCfg)
}
