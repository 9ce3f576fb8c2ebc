package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"myzai/internal/model"
)

// EnsureIndexes 创建所有模型的索引
// 在应用启动时调用，模型需实现 Model 接口
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	return EnsureAllIndexes(ctx, db,
		&model.Conversation{},
		&model.Artwork{},
	)
}
