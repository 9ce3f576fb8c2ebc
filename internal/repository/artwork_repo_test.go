package repository

import (
	"context"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"myzai/internal/model"
)

func TestArtworkRepo(t *testing.T) {
	db := newTestDB(t)
	repo := NewArtworkRepo(db)
	ctx := context.Background()

	Convey("ArtworkRepo", t, func() {
		base := time.Now().Truncate(time.Millisecond)
		for i, id := range []string{"a-1", "a-2", "a-3"} {
			So(repo.Create(ctx, &model.Artwork{
				ID:          id,
				SessionID:   "s-1",
				Prompt:      "neon city",
				StorageKey:  "artworks/" + id + ".png",
				StorageType: "local",
				ContentType: "image/png",
				CreatedAt:   base.Add(time.Duration(i) * time.Second),
			}), ShouldBeNil)
		}
		So(repo.Create(ctx, &model.Artwork{ID: "b-1", SessionID: "s-2"}), ShouldBeNil)
		Reset(func() {
			_, _ = db.Collection((&model.Artwork{}).Collection()).DeleteMany(ctx, bson.M{})
		})

		Convey("ListBySession 按创建时间倒序并返回总数", func() {
			arts, total, err := repo.ListBySession(ctx, "s-1", 2, 0)
			So(err, ShouldBeNil)
			So(total, ShouldEqual, 3)
			So(len(arts), ShouldEqual, 2)
			So(arts[0].ID, ShouldEqual, "a-3")
			So(arts[1].ID, ShouldEqual, "a-2")

			arts, total, err = repo.ListBySession(ctx, "s-1", 2, 2)
			So(err, ShouldBeNil)
			So(total, ShouldEqual, 3)
			So(len(arts), ShouldEqual, 1)
			So(arts[0].ID, ShouldEqual, "a-1")
		})

		Convey("FindByID 不跨会话", func() {
			art, err := repo.FindByID(ctx, "s-1", "a-1")
			So(err, ShouldBeNil)
			So(art.StorageKey, ShouldEqual, "artworks/a-1.png")

			_, err = repo.FindByID(ctx, "s-2", "a-1")
			So(err, ShouldEqual, mongo.ErrNoDocuments)
		})

		Convey("Create 未设置时间时补当前时间", func() {
			art := &model.Artwork{ID: "a-4", SessionID: "s-1"}
			So(repo.Create(ctx, art), ShouldBeNil)
			So(art.CreatedAt.IsZero(), ShouldBeFalse)
		})

		Convey("Delete 仅删除本会话的记录", func() {
			So(repo.Delete(ctx, "s-2", "a-1"), ShouldEqual, mongo.ErrNoDocuments)
			So(repo.Delete(ctx, "s-1", "a-1"), ShouldBeNil)

			_, total, err := repo.ListBySession(ctx, "s-1", 10, 0)
			So(err, ShouldBeNil)
			So(total, ShouldEqual, 2)
		})
	})
}
