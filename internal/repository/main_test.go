package repository

// 仓库层测试依赖真实 MongoDB：
//
//	MYZAI_TEST_MONGO_URI=mongodb://localhost:27017 go test ./internal/repository -v
//
// 未设置时跳过。每个测试使用独立的临时数据库，结束后删除。

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// newTestDB 连接测试库，未配置 MYZAI_TEST_MONGO_URI 时跳过
func newTestDB(t *testing.T) *mongo.Database {
	t.Helper()

	uri := os.Getenv("MYZAI_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("MYZAI_TEST_MONGO_URI 未设置，跳过 MongoDB 仓库测试")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Fatalf("连接 MongoDB 失败: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		t.Fatalf("MongoDB 不可用: %v", err)
	}

	db := client.Database("myzai_test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12])
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = db.Drop(ctx)
		_ = client.Disconnect(ctx)
	})
	return db
}
