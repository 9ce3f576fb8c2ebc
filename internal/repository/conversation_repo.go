package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"myzai/internal/model"
)

// ConversationRepo 对话仓库
// 使用UUID作为ID，查询一律带上 session_id，避免跨会话访问
type ConversationRepo struct {
	collection *mongo.Collection
}

// NewConversationRepo 创建对话仓库
func NewConversationRepo(db *mongo.Database) *ConversationRepo {
	var conv model.Conversation
	return &ConversationRepo{
		collection: db.Collection(conv.Collection()),
	}
}

// Create 创建对话
func (r *ConversationRepo) Create(ctx context.Context, conv *model.Conversation) error {
	now := time.Now()
	conv.CreatedAt = now
	conv.UpdatedAt = now
	if conv.Messages == nil {
		conv.Messages = []model.ChatMessage{}
	}

	_, err := r.collection.InsertOne(ctx, conv)
	return err
}

// FindByID 根据 ID 查询，未找到时返回 mongo.ErrNoDocuments
func (r *ConversationRepo) FindByID(ctx context.Context, sessionID, id string) (*model.Conversation, error) {
	var conv model.Conversation
	err := r.collection.FindOne(ctx, bson.M{"id": id, "session_id": sessionID}).Decode(&conv)
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

// ListBySession 查询会话下的对话列表（不含消息）
func (r *ConversationRepo) ListBySession(ctx context.Context, sessionID string, limit, offset int64) ([]*model.Conversation, error) {
	opts := options.Find().
		SetSort(bson.D{bson.E{Key: "updated_at", Value: -1}}).
		SetLimit(limit).
		SetSkip(offset).
		SetProjection(bson.M{"messages": 0})

	cursor, err := r.collection.Find(ctx, bson.M{"session_id": sessionID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	convs := []*model.Conversation{}
	if err := cursor.All(ctx, &convs); err != nil {
		return nil, err
	}
	return convs, nil
}

// AppendMessages 按顺序追加消息
func (r *ConversationRepo) AppendMessages(ctx context.Context, sessionID, id string, msgs ...model.ChatMessage) error {
	update := bson.M{
		"$push": bson.M{"messages": bson.M{"$each": msgs}},
		"$set":  bson.M{"updated_at": time.Now()},
	}

	res, err := r.collection.UpdateOne(ctx, bson.M{"id": id, "session_id": sessionID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Delete 删除对话
func (r *ConversationRepo) Delete(ctx context.Context, sessionID, id string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"id": id, "session_id": sessionID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
