package model

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Artwork 已保存的专辑封面
// 图片本体存放在存储后端（local/oss），这里只记录元数据
type Artwork struct {
	ID          string    `bson:"id" json:"id"`                 // 封面ID（UUID）
	SessionID   string    `bson:"session_id" json:"session_id"` // 所属会话
	Prompt      string    `bson:"prompt" json:"prompt"`         // 生成描述
	StorageKey  string    `bson:"storage_key" json:"storage_key"`
	StorageType string    `bson:"storage_type" json:"storage_type"`
	ContentType string    `bson:"content_type" json:"content_type"`
	FileSize    int64     `bson:"file_size" json:"file_size"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}

// Collection 返回集合名称
func (a *Artwork) Collection() string {
	return "artworks"
}

// EnsureIndexes 创建和维护索引
func (a *Artwork) EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection(a.Collection())
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{bson.E{Key: "id", Value: 1}},
			Options: options.Index().SetName("idx_id").SetUnique(true),
		},
		{
			Keys:    bson.D{bson.E{Key: "session_id", Value: 1}, bson.E{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_session_created"),
		},
	}
	_, err := coll.Indexes().CreateMany(ctx, indexes)
	return err
}
