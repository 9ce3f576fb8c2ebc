package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"myzai/internal/model"
)

// ArtworkRepo 封面仓库
type ArtworkRepo struct {
	collection *mongo.Collection
}

// NewArtworkRepo 创建封面仓库
func NewArtworkRepo(db *mongo.Database) *ArtworkRepo {
	var art model.Artwork
	return &ArtworkRepo{
		collection: db.Collection(art.Collection()),
	}
}

// Create 创建封面记录
func (r *ArtworkRepo) Create(ctx context.Context, art *model.Artwork) error {
	if art.CreatedAt.IsZero() {
		art.CreatedAt = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, art)
	return err
}

// FindByID 根据 ID 查询
func (r *ArtworkRepo) FindByID(ctx context.Context, sessionID, id string) (*model.Artwork, error) {
	var art model.Artwork
	err := r.collection.FindOne(ctx, bson.M{"id": id, "session_id": sessionID}).Decode(&art)
	if err != nil {
		return nil, err
	}
	return &art, nil
}

// ListBySession 查询会话下的封面，按创建时间倒序
func (r *ArtworkRepo) ListBySession(ctx context.Context, sessionID string, limit, offset int64) ([]*model.Artwork, int64, error) {
	filter := bson.M{"session_id": sessionID}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{bson.E{Key: "created_at", Value: -1}}).
		SetLimit(limit).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	arts := []*model.Artwork{}
	if err := cursor.All(ctx, &arts); err != nil {
		return nil, 0, err
	}
	return arts, total, nil
}

// Delete 删除封面记录
func (r *ArtworkRepo) Delete(ctx context.Context, sessionID, id string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"id": id, "session_id": sessionID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
